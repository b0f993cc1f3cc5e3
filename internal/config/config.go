package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/arcanaland/flashdeck/internal/source"
)

// Presentation styles
const (
	StyleSwap  = "swap"
	StyleDrag  = "drag"
	StyleStack = "stack"
)

// Config represents the application configuration
type Config struct {
	DefaultSource  string `toml:"default_source" env:"FLASHDECK_SOURCE"`
	Style          string `toml:"style" env:"FLASHDECK_STYLE"`
	TickMS         int    `toml:"tick_ms" env:"FLASHDECK_TICK_MS"`
	TransitionMS   int    `toml:"transition_ms" env:"FLASHDECK_TRANSITION_MS"`
	DragThreshold  int    `toml:"drag_threshold" env:"FLASHDECK_DRAG_THRESHOLD"`
	StrictReadTime bool   `toml:"strict_read_time" env:"FLASHDECK_STRICT_READ_TIME"`
	LogLevel       string `toml:"log_level" env:"FLASHDECK_LOG_LEVEL"`
	LogFormat      string `toml:"log_format" env:"FLASHDECK_LOG_FORMAT"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		DefaultSource: source.DefaultSource,
		Style:         StyleSwap,
		TickMS:        250,
		TransitionMS:  220,
		DragThreshold: 6,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// TickInterval is the countdown refresh cadence
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.TickMS) * time.Millisecond
}

// Transition is the card change delay
func (c *Config) Transition() time.Duration {
	return time.Duration(c.TransitionMS) * time.Millisecond
}

// Validate checks value ranges
func (c *Config) Validate() error {
	switch c.Style {
	case StyleSwap, StyleDrag, StyleStack:
	default:
		return fmt.Errorf("style must be one of swap, drag, stack (got %q)", c.Style)
	}
	if c.TickMS <= 0 {
		return fmt.Errorf("tick_ms must be positive (got %d)", c.TickMS)
	}
	if c.TransitionMS < 0 {
		return fmt.Errorf("transition_ms must not be negative (got %d)", c.TransitionMS)
	}
	if c.DragThreshold <= 0 {
		return fmt.Errorf("drag_threshold must be positive (got %d)", c.DragThreshold)
	}
	return nil
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetDeckLibraryPath returns the path to the deck library
func GetDeckLibraryPath() string {
	return filepath.Join(GetXDGDataHome(), "flashdeck", "decks")
}

// GetLogFilePath returns the log file used while the viewer owns the terminal
func GetLogFilePath() string {
	return filepath.Join(GetXDGDataHome(), "flashdeck", "flashdeck.log")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "flashdeck", "config.toml")
}

// LoadConfig loads the config file, creating it with defaults on first use.
// FLASHDECK_* environment variables override file values.
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := writeConfig(configPath, Default()); err != nil {
			return nil, err
		}
	}

	// Keys missing from the file keep their defaults
	config := Default()
	if err := cleanenv.ReadConfig(configPath, config); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}

	return config, nil
}

func writeConfig(configPath string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	return nil
}

// ResolveSource maps a source argument to something the fetcher can read.
// URLs pass through; names found in the deck library (with or without
// ".json") resolve there; anything else is treated as a path.
func ResolveSource(src string) string {
	if src == "" || source.IsURL(src) {
		return src
	}

	libraryPath := GetDeckLibraryPath()
	candidates := []string{filepath.Join(libraryPath, src)}
	if !strings.HasSuffix(src, ".json") {
		candidates = append(candidates, filepath.Join(libraryPath, src+".json"))
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}

	return src
}

// GetDefaultSource returns the default source from config
func GetDefaultSource() (string, error) {
	config, err := LoadConfig()
	if err != nil {
		return "", err
	}
	return config.DefaultSource, nil
}

// SetDefaultSource sets the default source in the config file
func SetDefaultSource(src string) error {
	configPath := GetConfigFilePath()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := writeConfig(configPath, Default()); err != nil {
			return err
		}
	}

	// Decode the file alone so environment overrides are not persisted
	config := Default()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return fmt.Errorf("error decoding config file: %w", err)
	}
	config.DefaultSource = src

	return writeConfig(configPath, config)
}
