// Package config loads thispc settings from a YAML file in the user config
// directory. A missing file means defaults; command-line flags win over both.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

const AppName = "thispc"

const (
	StoreRegistry = "registry"
	StoreFile     = "file"
)

type Settings struct {
	Store     string `yaml:"store"`
	StoreFile string `yaml:"store_file"`
	LogLevel  string `yaml:"log_level"`
	NoColor   bool   `yaml:"no_color"`
	NoEmoji   bool   `yaml:"no_emoji"`
}

func Default() Settings {
	s := Settings{Store: StoreFile, LogLevel: "warn"}
	if runtime.GOOS == "windows" {
		s.Store = StoreRegistry
	}
	if dir, err := Dir(); err == nil {
		s.StoreFile = filepath.Join(dir, "store.yaml")
	}
	return s
}

// Dir is the per-user config directory, falling back to the home directory
// like the desktop build did for saved folders.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil || strings.TrimSpace(base) == "" {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", fmt.Errorf("locate config dir: %w", errors.Join(err, herr))
		}
		base = home
	}
	return filepath.Join(base, AppName), nil
}

// Path returns the config file location; THISPC_CONFIG overrides it.
func Path() (string, error) {
	if p := strings.TrimSpace(os.Getenv("THISPC_CONFIG")); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads path over the defaults. An empty path resolves through Path.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		p, err := Path()
		if err != nil {
			return s, nil
		}
		path = p
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &s); err != nil {
		return s, fmt.Errorf("parse config %s: %w", path, err)
	}
	return s, s.Validate()
}

func (s Settings) Validate() error {
	switch s.Store {
	case StoreRegistry:
	case StoreFile:
		if strings.TrimSpace(s.StoreFile) == "" {
			return errors.New("store_file is required for the file store")
		}
	default:
		return fmt.Errorf("unknown store %q (want %s or %s)", s.Store, StoreRegistry, StoreFile)
	}
	return nil
}
