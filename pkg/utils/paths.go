package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// GetDefaultDataPathOnly returns a system-appropriate default directory for
// journal data
func GetDefaultDataPathOnly() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "daysay"
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(homeDir, "AppData", "Roaming", "daysay")
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", "daysay")
	default: // Primarily Linux, but also other UNIX-like systems.
		return filepath.Join(homeDir, ".local", "share", "daysay")
	}
}

// ResolveAndEnsureDataPath expands and absolutizes providedPath (or the
// default when empty) and makes sure the directory exists.
func ResolveAndEnsureDataPath(providedPath string) (string, error) {
	targetPath := providedPath
	if targetPath == "" {
		targetPath = GetDefaultDataPathOnly()
	}

	if strings.HasPrefix(targetPath, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory to expand path '%s': %w", targetPath, err)
		}
		targetPath = filepath.Join(homeDir, targetPath[2:])
	}

	absPath, err := filepath.Abs(targetPath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path for '%s': %w", targetPath, err)
	}
	targetPath = absPath

	if _, err := os.Stat(targetPath); os.IsNotExist(err) {
		if err := os.MkdirAll(targetPath, 0755); err != nil {
			return "", fmt.Errorf("failed to create data directory '%s': %w", targetPath, err)
		}
	} else if err != nil {
		return "", fmt.Errorf("failed to stat data directory '%s': %w", targetPath, err)
	}

	return targetPath, nil
}
