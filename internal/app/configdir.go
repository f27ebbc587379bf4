package app

import (
	"os"
	"path/filepath"
)

const appName = "incidentlens"

// GetAppConfigDir returns the path to the application's configuration directory.
// The directory is not created.
func GetAppConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, appName), nil
}
