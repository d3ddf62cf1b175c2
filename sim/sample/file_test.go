package sample

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/swarmpack/sim"
)

func TestLoad_ParsesRows(t *testing.T) {
	input := "x,y\n# corner\n-5,-5\n5, -5\n0.25,1e-3\n"

	points, err := Load(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []sim.Point2D{{X: -5, Y: -5}, {X: 5, Y: -5}, {X: 0.25, Y: 0.001}}, points)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bad value after first row", "1,2\n3,oops\n"},
		{"wrong field count", "1,2\n3,4,5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}

	_, err := Load(strings.NewReader("1,2\nnope,3\n"))
	assert.True(t, errors.Is(err, sim.ErrInvalidArgument), "got %v", err)
}

func TestLoad_NonFiniteRejected(t *testing.T) {
	for _, input := range []string{"x,y\nNaN,0\n", "x,y\n1,2\n+Inf,3\n", "0,-inf\n"} {
		_, err := Load(strings.NewReader(input))
		assert.ErrorIs(t, err, sim.ErrInvalidArgument, "input %q", input)
	}
}

func TestLoad_Empty(t *testing.T) {
	points, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestWriteThenLoadFile(t *testing.T) {
	points := Text("ok", DefaultTextOptions("ok"))
	require.NotEmpty(t, points)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, points))
	path := filepath.Join(t.TempDir(), "points.csv")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, points, got)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.csv"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
