package config

import (
	"encoding/json"
	"fmt"
	"os"

	"stempel/internal/paths"
)

// Settings represents the structure of $STEMPEL_HOME/settings.json
type Settings struct {
	BlobDir       string `json:"blob_dir,omitempty"`
	DatabasePath  string `json:"database_path,omitempty"`
	Debug         *bool  `json:"debug,omitempty"`
	EmployeeID    string `json:"employee_id,omitempty"`
	IdentityToken string `json:"identity_token,omitempty"`
	MaxLogFiles   *int   `json:"max_log_files,omitempty"`
	TokenSecret   string `json:"token_secret,omitempty"`
}

// LoadSettings loads settings from $STEMPEL_HOME/settings.json (or
// ~/.stempel/settings.json if not set).
// Returns empty Settings if file doesn't exist (not an error)
func LoadSettings() (*Settings, error) {
	path := paths.GetSettingsPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil // Not an error, use defaults
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	if settings.DatabasePath != "" {
		settings.DatabasePath = paths.ExpandPath(settings.DatabasePath)
	}
	if settings.BlobDir != "" {
		settings.BlobDir = paths.ExpandPath(settings.BlobDir)
	}

	return &settings, nil
}

// SaveSettings saves settings to $STEMPEL_HOME/settings.json
func SaveSettings(settings *Settings) error {
	path := paths.GetSettingsPath()
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}
