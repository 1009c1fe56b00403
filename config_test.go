package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkboard/tool"
)

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".inkboardrc")
	require.NoError(t, os.WriteFile(path, []byte(`
save_directory = "~/drawings"
confirmations = false
canvas_width = 1024
canvas_height = 768
history_limit = 50
debounce_ms = 250
log_file = ""
tool = "Rectangle"

[defaults]
fill = "#ff0000"
stroke_width = 4
font_family = "Go Mono"
`), 0644))

	config, err := loadConfigFile(path, "/home/ink")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/home/ink", "drawings"), config.SaveDirectory)
	assert.False(t, config.Confirmations)
	assert.Equal(t, 1024.0, config.CanvasWidth)
	assert.Equal(t, 768.0, config.CanvasHeight)
	assert.Equal(t, 50, config.HistoryLimit)
	assert.Equal(t, 250*time.Millisecond, config.DebounceDelay())
	assert.Empty(t, config.LogFile)
	assert.Equal(t, tool.Rectangle, config.Tool())

	a := config.Attributes()
	assert.Equal(t, "#ff0000", a.Fill)
	assert.Equal(t, "#000000", a.Stroke)
	assert.Equal(t, 4.0, a.StrokeWidth)
	assert.Equal(t, 1.0, a.Opacity)
	assert.Equal(t, "Go Mono", a.FontFamily)
}

func TestLoadConfigFileMissing(t *testing.T) {
	config, err := loadConfigFile(filepath.Join(t.TempDir(), "absent"), "/home/ink")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), config)
}

func TestLoadConfigFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".inkboardrc")
	require.NoError(t, os.WriteFile(path, []byte("canvas_width = \"wide\""), 0644))

	config, err := loadConfigFile(path, "/home/ink")
	assert.Error(t, err)
	assert.Equal(t, defaultConfig(), config)
}

func TestLoadConfigFileFixesBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".inkboardrc")
	require.NoError(t, os.WriteFile(path, []byte("canvas_width = -5\nhistory_limit = -1\ndebounce_ms = -10\ntool = \"lasso\"\n"), 0644))

	config, err := loadConfigFile(path, "/home/ink")
	require.NoError(t, err)
	assert.Equal(t, 800.0, config.CanvasWidth)
	assert.Equal(t, 600.0, config.CanvasHeight)
	assert.Zero(t, config.HistoryLimit)
	assert.Zero(t, config.DebounceMS)
	assert.Equal(t, tool.Select, config.Tool())
}

func TestGetSavePath(t *testing.T) {
	config := defaultConfig()
	assert.Equal(t, "a.json", config.GetSavePath("a.json"))

	dir := filepath.Join(t.TempDir(), "saves")
	config.SaveDirectory = dir
	assert.Equal(t, filepath.Join(dir, "a.json"), config.GetSavePath("a.json"))
	assert.DirExists(t, dir)
	assert.Equal(t, "/tmp/x.png", config.GetSavePath("/tmp/x.png"))
}
