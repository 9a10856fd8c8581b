package main

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportPNG(t *testing.T) {
	target := filepath.Join(t.TempDir(), "path.png")
	path := []Waypoint{{X: -55, Y: 16.5}, {X: -44, Y: 46.5, Timeout: 1000}, {X: 0, Y: 0, Timeout: 1000}}

	require.NoError(t, ExportPNG(target, path, NewDefaultConfig().Field, 256))

	f, err := os.Open(target)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
	assert.Equal(t, 256, img.Bounds().Dy())
}

func TestExportPNGEmptyPath(t *testing.T) {
	target := filepath.Join(t.TempDir(), "empty.png")
	assert.Error(t, ExportPNG(target, nil, NewDefaultConfig().Field, 256))
	assert.NoFileExists(t, target)
}

func TestExportCode(t *testing.T) {
	target := filepath.Join(t.TempDir(), "auto.cpp")
	code := Serialize([]Waypoint{{X: 1, Y: 2}})

	require.NoError(t, exportCode(target, code))
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, code, string(data))
}

func TestRenderField(t *testing.T) {
	e := newTestEditor(t, 0)
	e.Resize(96, 48)
	_, err := e.Append(Waypoint{X: -36, Y: 0})
	require.NoError(t, err)
	_, err = e.Append(Waypoint{X: 36, Y: 0})
	require.NoError(t, err)

	lines := renderField(e, 96, 48, -1)
	require.Len(t, lines, 48)
	field := strings.Join(lines, "\n")
	assert.Contains(t, field, "(0)")
	assert.Contains(t, field, "(1)")
	assert.Contains(t, field, "─")
	assert.Contains(t, field, "┼")
}
