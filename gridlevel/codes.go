package gridlevel

// A CodeSource hands out unique integer codes. Codes must be
// deterministic and never reused within a run; the leveler draws a
// fixed set at construction and one more per emitted repeat block.
type CodeSource interface {
	Next() int
}

// Sequence is a monotonically increasing CodeSource.
type Sequence struct{ n int }

func NewSequence(start int) *Sequence { return &Sequence{n: start} }

func (s *Sequence) Next() int {
	v := s.n
	s.n++
	return v
}
