// Package config holds the user's settings: the recent-files list and
// display options.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable that overrides the settings path.
const EnvPath = "TREKCALC_SETTINGS"

// MaxRecent is how many recent files are remembered.
const MaxRecent = 5

// Settings represents the settings.yaml file.
type Settings struct {
	RecentFiles []string       `yaml:"recent_files"`
	Display     DisplaySettings `yaml:"display"`
	LogLevel    string         `yaml:"log_level"`
}

// DisplaySettings controls how amounts are shown.
type DisplaySettings struct {
	Currency string `yaml:"currency"` // ISO code, e.g. "NPR"
	Color    bool   `yaml:"color"`
}

// Default returns settings for a first run.
func Default() *Settings {
	return &Settings{
		RecentFiles: []string{},
		Display: DisplaySettings{
			Currency: "NPR",
			Color:    true,
		},
		LogLevel: "warn",
	}
}

// DefaultPath returns $TREKCALC_SETTINGS if set, otherwise settings.yaml in
// the user's configuration directory.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(dir, "trekcalc", "settings.yaml"), nil
}

// Load reads a settings file from disk.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}
	s.RecentFiles = normalize(s.RecentFiles)
	return s, nil
}

// normalize cleans every entry, drops blanks and repeats, and keeps at most
// MaxRecent of them in their original order.
func normalize(paths []string) []string {
	recent := make([]string, 0, MaxRecent)
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		p = clean(p)
		if seen[p] {
			continue
		}
		seen[p] = true
		recent = append(recent, p)
		if len(recent) == MaxRecent {
			break
		}
	}
	return recent
}

// LoadOrCreate loads the settings at path, writing defaults there first if
// the file does not exist yet.
func LoadOrCreate(path string) (*Settings, error) {
	s, err := Load(path)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	s = Default()
	if err := Save(path, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Save writes settings to a YAML file, creating its directory.
func Save(path string, s *Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating settings dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// Touch moves path to the front of the recent list, inserting it if needed
// and dropping the oldest entries beyond MaxRecent.
func (s *Settings) Touch(path string) {
	path = clean(path)
	recent := make([]string, 0, MaxRecent)
	recent = append(recent, path)
	for _, p := range s.RecentFiles {
		if p == path {
			continue
		}
		if len(recent) == MaxRecent {
			break
		}
		recent = append(recent, p)
	}
	s.RecentFiles = recent
}

// Forget removes path from the recent list. It reports whether it was there.
// An entry matches when it equals path as given or in cleaned form.
func (s *Settings) Forget(path string) bool {
	cleaned := clean(path)
	for i, p := range s.RecentFiles {
		if p == path || p == cleaned {
			s.RecentFiles = append(s.RecentFiles[:i], s.RecentFiles[i+1:]...)
			return true
		}
	}
	return false
}

// Prune removes every recent entry for which exists returns false and
// returns the removed paths.
func (s *Settings) Prune(exists func(string) bool) []string {
	var kept, removed []string
	for _, p := range s.RecentFiles {
		if exists(p) {
			kept = append(kept, p)
		} else {
			removed = append(removed, p)
		}
	}
	if kept == nil {
		kept = []string{}
	}
	s.RecentFiles = kept
	return removed
}

// MostRecent returns the first recent file, if any.
func (s *Settings) MostRecent() (string, bool) {
	if len(s.RecentFiles) == 0 {
		return "", false
	}
	return s.RecentFiles[0], true
}

// FileExists reports whether path names an existing file. It is the usual
// argument to Prune.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func clean(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
