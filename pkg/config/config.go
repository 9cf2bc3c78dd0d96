package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Extensions    []string `yaml:"extensions"`
	ExpectedModel string   `yaml:"expected_model"`
	ModelMatch    string   `yaml:"model_match"` // "exact" or "substring"
	Backend       string   `yaml:"backend"`     // "goexif", "exiftool", "auto"
	MaxWorkers    int      `yaml:"max_workers"`
	Editor        string   `yaml:"editor"`

	// UI Settings
	ColorTheme string `yaml:"color_theme"`

	// Watch mode
	WatchDebounceMS int `yaml:"watch_debounce_ms"`

	// Chart export
	ChartOutput string `yaml:"chart_output"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		Extensions:      []string{"jpg", "jpeg", "nef"},
		ExpectedModel:   "NIKON Z 6",
		ModelMatch:      "exact",
		Backend:         "goexif",
		MaxWorkers:      1,
		Editor:          "",
		ColorTheme:      "auto",
		WatchDebounceMS: 500,
		ChartOutput:     "shutter-history.html",
	}
}

// DefaultPath returns the default config file location
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "shuttercheck.yaml"
	}
	return filepath.Join(home, ".config", "shuttercheck", "config.yaml")
}

// Load reads configuration from the specified file path
func Load(path string) (*Config, error) {
	// Start with default config
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		// A missing config file is fine; defaults apply.
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply defaults for essential values if missing
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = []string{"jpg", "jpeg", "nef"}
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 1
	}
	if cfg.WatchDebounceMS <= 0 {
		cfg.WatchDebounceMS = 500
	}
	if cfg.ChartOutput == "" {
		cfg.ChartOutput = "shutter-history.html"
	}
	if !isValidModelMatch(cfg.ModelMatch) {
		cfg.ModelMatch = "exact"
	}
	if !isValidBackend(cfg.Backend) {
		cfg.Backend = "goexif"
	}

	return cfg, nil
}

// Save persists the current configuration to the specified file path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func isValidModelMatch(mode string) bool {
	return mode == "exact" || mode == "substring"
}

func isValidBackend(backend string) bool {
	switch backend {
	case "goexif", "exiftool", "auto":
		return true
	}
	return false
}
