package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"inkboard/attrs"
	"inkboard/tool"
)

type Config struct {
	SaveDirectory string         `toml:"save_directory"`
	Confirmations bool           `toml:"confirmations"`
	CanvasWidth   float64        `toml:"canvas_width"`
	CanvasHeight  float64        `toml:"canvas_height"`
	HistoryLimit  int            `toml:"history_limit"`
	DebounceMS    int            `toml:"debounce_ms"`
	LogFile       string         `toml:"log_file"`
	StartTool     string         `toml:"tool"`
	Defaults      DefaultsConfig `toml:"defaults"`
}

// DefaultsConfig overrides the attributes stamped on new shapes. Zero
// values keep the built-in defaults.
type DefaultsConfig struct {
	Fill        string  `toml:"fill"`
	Stroke      string  `toml:"stroke"`
	StrokeWidth float64 `toml:"stroke_width"`
	Opacity     float64 `toml:"opacity"`
	FontFamily  string  `toml:"font_family"`
	FontSize    float64 `toml:"font_size"`
}

func defaultConfig() *Config {
	return &Config{
		SaveDirectory: "",
		Confirmations: true,
		CanvasWidth:   800,
		CanvasHeight:  600,
		HistoryLimit:  0,
		DebounceMS:    100,
		LogFile:       "inkboard.log",
		StartTool:     "select",
	}
}

// loadConfig reads ~/.inkboardrc. A missing file gives the defaults.
func loadConfig() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return defaultConfig(), nil
	}
	return loadConfigFile(filepath.Join(homeDir, ".inkboardrc"), homeDir)
}

func loadConfigFile(path, homeDir string) (*Config, error) {
	config := defaultConfig()
	if _, err := toml.DecodeFile(path, config); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return config, nil
		}
		return defaultConfig(), fmt.Errorf("config %s: %w", path, err)
	}

	if value := config.SaveDirectory; value != "" {
		if strings.HasPrefix(value, "~") {
			value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
		}
		if !filepath.IsAbs(value) {
			if absPath, err := filepath.Abs(value); err == nil {
				value = absPath
			}
		}
		config.SaveDirectory = value
	}
	if config.CanvasWidth <= 0 || config.CanvasHeight <= 0 {
		config.CanvasWidth, config.CanvasHeight = 800, 600
	}
	if config.HistoryLimit < 0 {
		config.HistoryLimit = 0
	}
	if config.DebounceMS < 0 {
		config.DebounceMS = 0
	}
	if _, err := tool.Parse(config.StartTool); err != nil {
		config.StartTool = "select"
	}
	return config, nil
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" || filepath.IsAbs(filename) {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}

// Tool is the tool active at startup.
func (c *Config) Tool() tool.Tool {
	t, err := tool.Parse(c.StartTool)
	if err != nil {
		return tool.Select
	}
	return t
}

func (c *Config) DebounceDelay() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// Attributes returns the built-in defaults with the configured overrides.
func (c *Config) Attributes() attrs.Attributes {
	a := attrs.Defaults()
	d := c.Defaults
	if d.Fill != "" {
		a.Fill = d.Fill
	}
	if d.Stroke != "" {
		a.Stroke = d.Stroke
	}
	if d.StrokeWidth > 0 {
		a.StrokeWidth = d.StrokeWidth
	}
	if d.Opacity > 0 && d.Opacity <= 1 {
		a.Opacity = d.Opacity
	}
	if d.FontFamily != "" {
		a.FontFamily = d.FontFamily
	}
	if d.FontSize > 0 {
		a.FontSize = d.FontSize
	}
	return a
}
