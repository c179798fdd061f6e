package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Diegoval-Dev/R-Lab2/tolerance-go/pkg/application"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRoot_DefaultRun(t *testing.T) {
	stdout, stderr, err := execute(t, "--seed", "1", "--escape")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	require.Len(t, lines, 2+26)
	assert.True(t, strings.HasPrefix(lines[0], "Ciphertext (Hamming encoded): "))
	assert.Len(t, strings.TrimPrefix(lines[0], "Ciphertext (Hamming encoded): "), 128)
	assert.Equal(t, "0 bits flipped -> "+application.DefaultMessage, lines[2])
	assert.Equal(t, "1 bits flipped -> "+application.DefaultMessage, lines[3])
	assert.True(t, strings.HasPrefix(lines[27], "25 bits flipped -> "))

	assert.Contains(t, stderr, "Configuración")
}

func TestRoot_FlagsAndMetrics(t *testing.T) {
	stdout, _, err := execute(t,
		"-m", "Hola", "--min", "0", "--max", "4", "--step", "2",
		"-n", "3", "--seed", "9", "--hex=false", "--escape", "--metrics", "--log-level", "error")
	require.NoError(t, err)

	assert.NotContains(t, stdout, "Ciphertext")
	assert.Contains(t, stdout, "0 bits flipped -> Hola")
	assert.Contains(t, stdout, "2 bits flipped -> ")
	assert.Contains(t, stdout, "4 bits flipped -> ")
	assert.Contains(t, stdout, "Estadísticas por nivel (3 repeticiones")
	assert.Contains(t, stdout, "tolerance_pipeline_bits_flipped_total 18")
	assert.Contains(t, stdout, "tolerance_pipeline_encoded_bits 256")
}

func TestRoot_ConfigFileWithOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tolerance.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
message = "desde archivo"
max_flips = 1
codec = "none"
show_hex = false
escape = true
seed = 3
`), 0o644))

	stdout, _, err := execute(t, "-c", path, "--max", "0")
	require.NoError(t, err)
	assert.Equal(t, "0 bits flipped -> desde archivo\n", stdout)
}

func TestRoot_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "bad key", args: []string{"--key", "00"}, want: "configuración inválida"},
		{name: "bad codec", args: []string{"--codec", "crc"}, want: "codec desconocido"},
		{name: "max below min", args: []string{"--min", "5", "--max", "1"}, want: "max_flips"},
		{name: "missing file", args: []string{"-c", "/nonexistent/tolerance.toml"}, want: "failed to load config file"},
		{name: "positional args", args: []string{"extra"}, want: "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
