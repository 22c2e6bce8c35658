// Package project handles application-level persistence: user preferences
// and full-data backups. Grid documents themselves are owned by the
// binding layer.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// maxRecentFiles caps the recent-files list in the config.
const maxRecentFiles = 10

// AppConfig holds application-wide preferences.
type AppConfig struct {
	// Default scalar parameters applied to new documents
	DefaultGravityMultiplier   float64 `json:"default_gravity_multiplier"`
	DefaultContainerMultiplier float64 `json:"default_container_multiplier"`
	DefaultPlanetaryInfluence  float64 `json:"default_planetary_influence"`

	// Application preferences
	LastDirectory string   `json:"last_directory"`
	RecentFiles   []string `json:"recent_files"`
	Theme         string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultGravityMultiplier:   1.0,
		DefaultContainerMultiplier: 1.0,
		DefaultPlanetaryInfluence:  1.0,
		RecentFiles:                []string{},
		Theme:                      "system",
	}
}

// AddRecentFile prepends path to the recent-files list, removing any
// earlier occurrence and trimming the list to its cap.
func (c *AppConfig) AddRecentFile(path string) {
	recent := []string{path}
	for _, p := range c.RecentFiles {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentFiles {
		recent = recent[:maxRecentFiles]
	}
	c.RecentFiles = recent
}

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.gridcalc/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".gridcalc")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from the given path.
// If the file does not exist, it returns DefaultAppConfig with no error.
func LoadAppConfig(path string) (AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultAppConfig(), nil
		}
		return AppConfig{}, err
	}
	var config AppConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return AppConfig{}, err
	}
	// Ensure RecentFiles is never nil
	if config.RecentFiles == nil {
		config.RecentFiles = []string{}
	}
	return config, nil
}
