// Package storage provides the on-disk state of dk: persisted settings
// written by dk and the user-managed config file.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

const (
	// appDir is the name of the dk directory under the user config dir.
	appDir = "dk"
	// settingsFile holds key/value settings written by dk.
	settingsFile = "settings.yaml"
)

// Storage provides access to a dk state directory.
type Storage struct {
	root string // path to the state directory
}

// DefaultDir returns the default state directory, $XDG_CONFIG_HOME/dk or
// the platform equivalent.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(base, appDir), nil
}

// Open returns a Storage rooted at dir, creating the directory if needed.
// Returns error if dir exists and is not a directory.
func Open(dir string) (*Storage, error) {
	info, err := os.Stat(dir)
	switch {
	case err == nil:
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", dir)
		}
	case os.IsNotExist(err):
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	default:
		return nil, fmt.Errorf("failed to access %s: %w", dir, err)
	}

	return &Storage{root: dir}, nil
}

// Root returns the state directory.
func (s *Storage) Root() string {
	return s.root
}

// SettingsPath returns the path to the settings file.
func (s *Storage) SettingsPath() string {
	return filepath.Join(s.root, settingsFile)
}

// Get returns the value stored under key.
// The boolean is false when the key has never been set.
func (s *Storage) Get(key string) (string, bool, error) {
	settings, err := s.loadSettings()
	if err != nil {
		return "", false, err
	}
	v, ok := settings[key]
	return v, ok, nil
}

// Set stores value under key, replacing any previous value.
func (s *Storage) Set(key, value string) error {
	settings, err := s.loadSettings()
	if err != nil {
		return err
	}
	settings[key] = value
	return s.saveSettings(settings)
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Storage) Delete(key string) error {
	settings, err := s.loadSettings()
	if err != nil {
		return err
	}
	if _, ok := settings[key]; !ok {
		return nil
	}
	delete(settings, key)
	return s.saveSettings(settings)
}

// Keys returns all stored keys in sorted order.
func (s *Storage) Keys() ([]string, error) {
	settings, err := s.loadSettings()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Storage) loadSettings() (map[string]string, error) {
	settings := make(map[string]string)

	data, err := os.ReadFile(s.SettingsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", settingsFile, err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", settingsFile, err)
	}
	if settings == nil {
		settings = make(map[string]string)
	}
	return settings, nil
}

// saveSettings writes the settings file through a temp file so a crash
// never leaves a truncated file behind.
func (s *Storage) saveSettings(settings map[string]string) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	tmp, err := os.CreateTemp(s.root, settingsFile+".*")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", settingsFile, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", settingsFile, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", settingsFile, err)
	}
	if err := os.Rename(tmpPath, s.SettingsPath()); err != nil {
		return fmt.Errorf("failed to write %s: %w", settingsFile, err)
	}
	return nil
}
