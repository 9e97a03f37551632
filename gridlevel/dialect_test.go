package gridlevel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect("LinuxCNC")
	assert.NoError(t, err)
	assert.Equal(t, LinuxCNC, d)

	d, err = ParseDialect("mach3")
	assert.NoError(t, err)
	assert.Equal(t, Mach3, d)

	_, err = ParseDialect("grbl")
	assert.Error(t, err)
}

func TestSubst(t *testing.T) {
	assert.Equal(t, "o10 call [1.5] [2]\n", subst("o{1} call [{2}] [{3}]\n", 10, 1.5, 2))

	// surplus arguments are ignored
	assert.Equal(t, "M98 P10 L5\n", subst("M98 P{1} L{2}\n", 10, 5, 77, "x"))

	// unmatched slots expand to nothing
	assert.Equal(t, "#9=1\nM98 P4\n", subst("#9={2}\n{4}M98 P{1}\n", 4, 1))
}

func TestDialect_MaxProbePoints(t *testing.T) {
	assert.Equal(t, 4501, LinuxCNC.maxProbePoints())
	assert.Equal(t, 500, Mach3.maxProbePoints())
	assert.Equal(t, 500, Mach4.maxProbePoints())
	assert.Equal(t, 500, Custom.maxProbePoints())
}

func TestDialectSyntax(t *testing.T) {
	syn := dialectSyntax(Mach3, 110, 111)
	assert.Equal(t, "#110={2}\n{4}#111={3}\n{4}M98 P{1}\n", syn.callSub2)
	assert.Equal(t, "#110", syn.argX)
	assert.Equal(t, "#2002", syn.probeResult)

	syn = dialectSyntax(LinuxCNC, 0, 0)
	assert.Equal(t, "G38.2", syn.probe)
	assert.Equal(t, "#1", syn.argX)
	assert.False(t, Custom.HasSubroutines())
	assert.True(t, Mach4.HasSubroutines())
}
