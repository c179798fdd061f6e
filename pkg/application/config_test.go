package application

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "This is a secret message", cfg.Message)
	assert.Equal(t, "00112233445566778899aabbccddeeff", cfg.Key)
	assert.Len(t, cfg.Intensities(), 26)

	key, err := cfg.KeyBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}, key)
}

func TestConfig_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "default", mutate: func(c *Config) {}},
		{name: "uncoded baseline", mutate: func(c *Config) { c.Codec = "none" }},
		{name: "single level", mutate: func(c *Config) { c.MinFlips, c.MaxFlips = 4, 4 }},
		{name: "empty text", mutate: func(c *Config) { c.Message = "" }, wantErr: true},
		{name: "short key", mutate: func(c *Config) { c.Key = "0011" }, wantErr: true},
		{name: "non hex key", mutate: func(c *Config) { c.Key = "zz112233445566778899aabbccddeeff" }, wantErr: true},
		{name: "negative min", mutate: func(c *Config) { c.MinFlips = -1 }, wantErr: true},
		{name: "max below min", mutate: func(c *Config) { c.MinFlips, c.MaxFlips = 10, 5 }, wantErr: true},
		{name: "zero step", mutate: func(c *Config) { c.Step = 0 }, wantErr: true},
		{name: "zero trials", mutate: func(c *Config) { c.Trials = 0 }, wantErr: true},
		{name: "unknown codec", mutate: func(c *Config) { c.Codec = "crc" }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	var nilCfg *Config
	assert.ErrorIs(t, nilCfg.Validate(), ErrInvalidConfig)
}

func TestConfig_Intensities(t *testing.T) {
	cfg := Default()
	cfg.MinFlips, cfg.MaxFlips, cfg.Step = 2, 11, 3
	assert.Equal(t, []int{2, 5, 8, 11}, cfg.Intensities())

	cfg.MaxFlips = 12
	assert.Equal(t, []int{2, 5, 8, 11}, cfg.Intensities())

	cfg.Step = 0
	assert.Nil(t, cfg.Intensities())
}

func TestLoadBytes(t *testing.T) {
	cfg, err := LoadBytes([]byte(`
message = "Hola mundo"
max_flips = 100
step = 10
trials = 50
seed = 7
codec = "none"
`))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "Hola mundo", cfg.Message)
	assert.Equal(t, DefaultKey, cfg.Key, "los campos ausentes conservan el valor por defecto")
	assert.Equal(t, 100, cfg.MaxFlips)
	assert.Equal(t, 10, cfg.Step)
	assert.Equal(t, 50, cfg.Trials)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, "none", cfg.Codec)

	_, err = LoadBytes([]byte("message = "))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tolerance.toml")
	require.NoError(t, os.WriteFile(path, []byte("min_flips = 3\nmax_flips = 4\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, cfg.Intensities())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "failed to load config file")
}

func TestMostrarConfiguracion(t *testing.T) {
	cfg := Default()
	cfg.Trials = 10
	cfg.Seed = 99

	var buf bytes.Buffer
	cfg.MostrarConfiguracion(&buf)
	out := buf.String()
	assert.Contains(t, out, `"This is a secret message"`)
	assert.Contains(t, out, "HAMMING")
	assert.Contains(t, out, "0..25 (paso 1)")
	assert.Contains(t, out, "Repeticiones por nivel: 10")
	assert.Contains(t, out, "Semilla: 99")
}
