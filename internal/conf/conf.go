// Package conf loads the YAML configuration file.
package conf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
)

// AppName is the directory name used under the XDG config and data homes.
const AppName = "dayplan"

type Bootstrap struct {
	Logging Logging `yaml:"logging" json:"logging"`
	Storage Storage `yaml:"storage" json:"storage"`
	UI      UI      `yaml:"ui" json:"ui"`
}

type Logging struct {
	Level string `yaml:"level" json:"level"`
	// Path is a log file; empty means stderr (discarded in the TUI).
	Path string `yaml:"path" json:"path"`
}

type Storage struct {
	Driver string `yaml:"driver" json:"driver"` // file | nutsdb | mysql | memory
	Path   string `yaml:"path" json:"path"`
	DSN    string `yaml:"dsn" json:"dsn"`
	Key    string `yaml:"key" json:"key"`
	Codec  string `yaml:"codec" json:"codec"` // json | cbor
}

type UI struct {
	Theme string `yaml:"theme" json:"theme"` // classic | neon | mono
	Color string `yaml:"color" json:"color"` // auto | always | never
	Group bool   `yaml:"group" json:"group"`
}

// Default returns the configuration used when no file is present.
func Default() *Bootstrap {
	return &Bootstrap{
		Logging: Logging{Level: "warn"},
		Storage: Storage{
			Driver: "file",
			Path:   DefaultDataDir(),
			Key:    "todos",
			Codec:  "json",
		},
		UI: UI{Theme: "classic", Color: "auto"},
	}
}

// DefaultConfigPath is $XDG_CONFIG_HOME/dayplan/config.yaml, falling back
// to ~/.config/dayplan/config.yaml.
func DefaultConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName, "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(AppName, "config.yaml")
	}
	return filepath.Join(home, ".config", AppName, "config.yaml")
}

// DefaultDataDir is $XDG_DATA_HOME/dayplan, falling back to
// ~/.local/share/dayplan.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".local", "share", AppName)
}

// Load reads path over the defaults. An empty path means
// DefaultConfigPath; a missing default file is not an error, a missing
// explicit one is.
func Load(path string) (*Bootstrap, error) {
	bc := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return bc, nil
		}
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	c := config.New(config.WithSource(file.NewSource(path)))
	defer c.Close()

	if err := c.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := c.Scan(bc); err != nil {
		return nil, fmt.Errorf("scan config: %w", err)
	}
	return bc, nil
}
