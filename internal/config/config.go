package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/LFroesch/trio/internal/classify"
	"github.com/LFroesch/trio/internal/listing"
	"github.com/LFroesch/trio/internal/logger"
)

const defaultOrder = "dirs-first"

// Config holds all trio configuration
type Config struct {
	Tags       []string          `json:"tags"`
	ShowHidden bool              `json:"show_hidden"`
	Order      string            `json:"order"`
	Editor     string            `json:"editor"`  // falls back to $EDITOR
	Viewers    map[string]string `json:"viewers"` // kind name -> program
	Trash      bool              `json:"trash"`   // purge to the desktop trash
	Watch      bool              `json:"watch"`
}

// Default returns the config written on first start
func Default() *Config {
	return &Config{
		Tags:    []string{},
		Order:   defaultOrder,
		Viewers: make(map[string]string),
	}
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "trio", "trio-config.json"), nil
}

// Load reads config from ~/.config/trio/trio-config.json
func Load() *Config {
	configPath, err := GetConfigPath()
	if err != nil {
		logger.Error("Failed to get home directory: %v", err)
		return Default()
	}
	return LoadFrom(configPath)
}

// LoadFrom reads config from path, writing defaults there when the file
// does not exist yet.
func LoadFrom(configPath string) *Config {
	data, err := os.ReadFile(configPath)
	if err != nil {
		cfg := Default()
		if err := SaveTo(cfg, configPath); err != nil {
			logger.Warn("Failed to save default config: %v", err)
		}
		return cfg
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		logger.Warn("Failed to parse config file %s: %v, using defaults", configPath, err)
		return Default()
	}

	config.normalize()
	return config
}

// normalize repairs values a hand-edited file may have broken
func (c *Config) normalize() {
	if c.Order == "" {
		c.Order = defaultOrder
	} else if _, ok := listing.ParseOrder(c.Order); !ok {
		logger.Warn("Unknown order %q, using %s", c.Order, defaultOrder)
		c.Order = defaultOrder
	}

	if c.Viewers == nil {
		c.Viewers = make(map[string]string)
	}
	for kind := range c.Viewers {
		if _, ok := classify.ParseKind(kind); !ok {
			logger.Warn("Unknown viewer kind %q, ignoring", kind)
			delete(c.Viewers, kind)
		}
	}

	tags := make([]string, 0, len(c.Tags))
	for _, tag := range c.Tags {
		if !contains(tags, tag) {
			tags = append(tags, tag)
		}
	}
	c.Tags = tags
}

// ListOrder returns the configured order
func (c *Config) ListOrder() listing.Order {
	order, _ := listing.ParseOrder(c.Order)
	return order
}

// Viewer returns the program configured for a kind of file, if any
func (c *Config) Viewer(kind classify.Kind) string {
	return c.Viewers[kind.String()]
}

// Save writes config to ~/.config/trio/trio-config.json
func Save(config *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		logger.Error("Failed to get home directory: %v", err)
		return fmt.Errorf("cannot get home directory: %w", err)
	}
	return SaveTo(config, configPath)
}

// SaveTo writes config to configPath
func SaveTo(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		logger.Error("Failed to create config directory %s: %v", configDir, err)
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		logger.Error("Failed to marshal config: %v", err)
		return fmt.Errorf("cannot marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		logger.Error("Failed to write config file %s: %v", configPath, err)
		return fmt.Errorf("cannot write config file: %w", err)
	}

	return nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
