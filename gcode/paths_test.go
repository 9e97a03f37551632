package gcode

import (
	"bytes"
	"testing"

	"github.com/mastercactapus/autolevel/coord"
	"github.com/stretchr/testify/assert"
)

func TestExtractPaths(t *testing.T) {
	prog := `
G21 G90
G0 X0 Y0
G1 X10 Y0
G1 X10 Y5
G0 X20 Y20
G1 X25 Y20
`
	paths, err := ExtractPaths(bytes.NewBufferString(prog))
	assert.NoError(t, err)
	assert.Equal(t, []coord.Path{
		{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5}},
		{{X: 20, Y: 20}, {X: 25, Y: 20}},
	}, paths)
}

func TestExtractPaths_Relative(t *testing.T) {
	prog := `
G91
G1 X10
G1 Y5
`
	paths, err := ExtractPaths(bytes.NewBufferString(prog))
	assert.NoError(t, err)
	assert.Equal(t, []coord.Path{
		{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5}},
	}, paths)
}

func TestExtractPaths_Inches(t *testing.T) {
	paths, err := ExtractPaths(bytes.NewBufferString("G20\nG1 X1\n"))
	assert.NoError(t, err)
	assert.Equal(t, []coord.Path{
		{{X: 0, Y: 0}, {X: 25.4, Y: 0}},
	}, paths)
}

func TestExtractPaths_Unsupported(t *testing.T) {
	_, err := ExtractPaths(bytes.NewBufferString("G2 X1 Y1 I0.5 J0\n"))
	assert.Error(t, err)
}
