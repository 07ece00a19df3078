package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755
)

var (
	// ConfigDir is the global configuration directory (~/.resumedesk)
	ConfigDir string

	// DatabasePath is the SQLite database file for the upload journal
	DatabasePath string

	// LogFile receives the structured log; the TUI owns the terminal
	LogFile string

	// SettingsFile is the global settings file
	SettingsFile string

	// KeybindsFile holds user keybinding overrides
	KeybindsFile string
)

// Initialize sets up the configuration directory and paths
// It creates ~/.resumedesk/ if it doesn't exist
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	return InitializeAt(filepath.Join(homeDir, ".resumedesk"))
}

// InitializeAt is Initialize rooted at dir
func InitializeAt(dir string) error {
	ConfigDir = dir
	DatabasePath = filepath.Join(ConfigDir, "resumedesk.db")
	LogFile = filepath.Join(ConfigDir, "resumedesk.log")
	SettingsFile = filepath.Join(ConfigDir, "config.yaml")
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.json")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	// Create default settings file if it doesn't exist
	if _, err := os.Stat(SettingsFile); os.IsNotExist(err) {
		if err := os.WriteFile(SettingsFile, []byte(defaultSettingsYAML), FilePermissions); err != nil {
			return fmt.Errorf("failed to create settings file: %w", err)
		}
	}

	return nil
}

// GetSettingsFilePath returns the settings file path (local or global).
// A resumedesk.yaml / .json / .jsonc in the working directory wins over the global file.
func GetSettingsFilePath() string {
	for _, name := range []string{"resumedesk.yaml", "resumedesk.yml", "resumedesk.json", "resumedesk.jsonc"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return SettingsFile
}

// ExpandHome expands a leading ~/ to the user's home directory
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, path[2:]), nil
}

const defaultSettingsYAML = `# resumedesk settings
api_url: http://localhost:8000
# api_token: ""
# seconds, 0 disables the client-side timeout
request_timeout: 0
journal: true
log_level: info
# start_dir: ~/Documents
`
