package paths

import (
	"os"
	"path/filepath"
)

// GetStempelHome returns STEMPEL_HOME or ~/.stempel default
func GetStempelHome() string {
	stempelHome := os.Getenv("STEMPEL_HOME")
	if stempelHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".stempel"
		}
		return filepath.Join(homeDir, ".stempel")
	}
	return ExpandPath(stempelHome)
}

// GetDBPath returns $STEMPEL_HOME/sessions.db
func GetDBPath() string {
	return filepath.Join(GetStempelHome(), "sessions.db")
}

// GetBlobPath returns $STEMPEL_HOME/blobs
func GetBlobPath() string {
	return filepath.Join(GetStempelHome(), "blobs")
}

// GetSettingsPath returns $STEMPEL_HOME/settings.json
func GetSettingsPath() string {
	return filepath.Join(GetStempelHome(), "settings.json")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
