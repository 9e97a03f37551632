package config

import (
	"testing"

	"github.com/mastercactapus/autolevel/gridlevel"
	"github.com/stretchr/testify/assert"
)

const sampleJob = `
dialect       = "linuxcnc"
metric        = true
metric_output = true
quantization  = 0.001

probe {
  x_distance = 10
  y_distance = 10
  feed       = 100
  on         = "M64 P0"
  off        = "M65 P0"
}

heights {
  work  = -0.05
  safe  = 5
  probe = 1
}

tile {
  x      = 2
  y      = 1
  width  = 100
  height = 80
}
`

func TestDecode(t *testing.T) {
	job, err := Decode("job.hcl", []byte(sampleJob))
	assert.NoError(t, err)

	assert.Equal(t, "linuxcnc", job.Dialect)
	assert.Equal(t, 10.0, job.Probe.XDistance)
	assert.Equal(t, -0.05, job.Heights.Work)
	assert.NotNil(t, job.Tile)
	assert.Equal(t, 2, job.Tile.X)

	cfg, err := job.Leveler()
	assert.NoError(t, err)
	assert.Equal(t, gridlevel.LinuxCNC, cfg.Dialect)
	assert.True(t, cfg.Tile.Enabled)
	assert.Equal(t, 100.0, cfg.Tile.BoardWidth)
	assert.Equal(t, 0.001, cfg.QuantizationError)

	_, err = gridlevel.New(cfg)
	assert.NoError(t, err)
}

func TestDecode_NoTile(t *testing.T) {
	src := `
dialect = "mach3"

probe {
  x_distance = 5
  y_distance = 5
  feed       = 50
}

heights {
  work  = -0.002
  safe  = 0.2
  probe = 0.04
}
`
	job, err := Decode("job.hcl", []byte(src))
	assert.NoError(t, err)
	assert.Nil(t, job.Tile)

	cfg, err := job.Leveler()
	assert.NoError(t, err)
	assert.Equal(t, gridlevel.Mach3, cfg.Dialect)
	assert.False(t, cfg.Tile.Enabled)
}

func TestDecode_BadDialect(t *testing.T) {
	src := `
dialect = "grbl"

probe {
  x_distance = 5
  y_distance = 5
  feed       = 50
}

heights {
  work  = -1
  safe  = 5
  probe = 1
}
`
	job, err := Decode("job.hcl", []byte(src))
	assert.NoError(t, err)

	_, err = job.Leveler()
	assert.Error(t, err)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode("job.hcl", []byte(`dialect = `))
	assert.Error(t, err)
}
