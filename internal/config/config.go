package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// MatchConfig holds default matching settings
type MatchConfig struct {
	Threshold  float64 `toml:"threshold"`
	MaxResults int     `toml:"max_results"` // 0 = unlimited
	CaseFold   bool    `toml:"case_fold"`
}

// DisplayConfig holds display settings
type DisplayConfig struct {
	ShowDistance bool `toml:"show_distance"`
}

// UserConfig holds user-configurable settings loaded from TOML
type UserConfig struct {
	Match   MatchConfig   `toml:"match"`
	Display DisplayConfig `toml:"display"`
}

// Config holds application configuration
type Config struct {
	ListsPath   string
	HistoryPath string
	ConfigPath  string
	User        *UserConfig
}

// DefaultUserConfig returns the default user configuration
func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Match: MatchConfig{
			Threshold:  0.6,
			MaxResults: 10,
			CaseFold:   false,
		},
		Display: DisplayConfig{
			ShowDistance: false,
		},
	}
}

// Load returns the configuration with resolved paths
func Load() (*Config, error) {
	listsPath, err := getListsPath()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(listsPath)
	historyPath := filepath.Join(dir, "strmatch_history")
	configPath := filepath.Join(dir, "config.toml")

	cfg := &Config{
		ListsPath:   listsPath,
		HistoryPath: historyPath,
		ConfigPath:  configPath,
		User:        DefaultUserConfig(),
	}

	// Try to load user config from file
	if err := cfg.loadUserConfig(); err != nil {
		// Only return error if it's not a "file not found" error
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	return cfg, nil
}

// loadUserConfig loads user configuration from TOML file
func (c *Config) loadUserConfig() error {
	data, err := os.ReadFile(c.ConfigPath)
	if err != nil {
		return err
	}

	// Start with defaults
	userCfg := DefaultUserConfig()

	// Decode TOML over defaults (missing values keep defaults)
	if _, err := toml.Decode(string(data), userCfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	c.User = userCfg
	return nil
}

// CreateDefaultConfigFile creates the config file with default values if it doesn't exist
func (c *Config) CreateDefaultConfigFile() error {
	// Check if file already exists
	if _, err := os.Stat(c.ConfigPath); err == nil {
		return nil // File exists, don't overwrite
	}

	// Ensure directory exists
	if err := c.EnsureConfigDir(); err != nil {
		return err
	}

	defaultConfig := `[match]
threshold = 0.6
max_results = 10     # 0 = unlimited
case_fold = false

[display]
show_distance = false
`

	return os.WriteFile(c.ConfigPath, []byte(defaultConfig), 0644)
}

// FormatConfig returns the current configuration as a formatted string
func (c *Config) FormatConfig() string {
	return fmt.Sprintf(`Configuration file: %s

[match]
threshold = %.2f
max_results = %d
case_fold = %t

[display]
show_distance = %t
`, c.ConfigPath, c.User.Match.Threshold, c.User.Match.MaxResults,
		c.User.Match.CaseFold, c.User.Display.ShowDistance)
}

// getListsPath returns the word list file path based on priority:
// 1. $STRMATCH_DB environment variable
// 2. $XDG_CONFIG_HOME/strmatch/lists.toml
// 3. ~/.config/strmatch/lists.toml
func getListsPath() (string, error) {
	// Check STRMATCH_DB env var first
	if envPath := os.Getenv("STRMATCH_DB"); envPath != "" {
		return envPath, nil
	}

	// Check XDG_CONFIG_HOME
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "strmatch", "lists.toml"), nil
	}

	// Default to ~/.config/strmatch
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", "strmatch", "lists.toml"), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist
func (c *Config) EnsureConfigDir() error {
	dir := filepath.Dir(c.ListsPath)
	return os.MkdirAll(dir, 0755)
}

// ExpandPath expands ~, ., and environment variables in a path
func ExpandPath(path string) (string, error) {
	// Expand ~ to home directory
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}

	// Expand environment variables
	path = os.ExpandEnv(path)

	// Convert to absolute path (handles . and ..)
	return filepath.Abs(path)
}
