// Package config handles the XDG configuration directory, config.toml, and
// file paths.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// ConfigFile is the optional settings filename inside the config dir.
	ConfigFile = "config.toml"

	// DefaultTodoFile is the task file, relative to the working directory.
	DefaultTodoFile = "todos.json"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"
)

// File is the on-disk shape of config.toml.
type File struct {
	TodoFile string `toml:"todo_file"`
	LogLevel string `toml:"log_level"`
	PushList string `toml:"push_list"`
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// TodoFile is the task file path. Relative paths resolve against the
	// working directory.
	TodoFile string

	// LogLevel is the configured log level name.
	LogLevel string

	// PushList is the Google Tasks list name used by push when --list is
	// not given. Empty means the default list.
	PushList string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{Dir: dir, TodoFile: DefaultTodoFile}, nil
}

// Load creates a Config like New and applies config.toml when present.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	var f File
	if _, err := toml.DecodeFile(cfg.ConfigPath(), &f); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}
	cfg.apply(f)
	return cfg, nil
}

func (c *Config) apply(f File) {
	if f.TodoFile != "" {
		c.TodoFile = f.TodoFile
	}
	if f.LogLevel != "" {
		c.LogLevel = f.LogLevel
	}
	if f.PushList != "" {
		c.PushList = f.PushList
	}
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path to config.toml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// TodoPath returns the task file path.
func (c *Config) TodoPath() string {
	if c.TodoFile == "" {
		return DefaultTodoFile
	}
	return c.TodoFile
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
