package expedition

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/trekcalc/trekcalc/internal/log"
)

// Ext is the file extension of expedition documents.
const Ext = ".json"

// Store loads and saves expedition documents on disk.
type Store struct {
	log *log.Logger
}

// NewStore creates a Store that reports recovered problems to logger.
func NewStore(logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Discard()
	}
	return &Store{log: logger.WithComponent(log.ComponentStore)}
}

// Load reads an expedition from path. A missing file yields an error wrapping
// fs.ErrNotExist; an unusable document yields ErrMalformed. In both cases
// nothing is returned, so the caller keeps whatever it had open before.
func (s *Store) Load(path string) (*Expedition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening expedition: %w", err)
	}
	defer f.Close()

	exp, shapeErrs, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	if len(shapeErrs) > 0 {
		msgs := make([]string, len(shapeErrs))
		for i, e := range shapeErrs {
			msgs[i] = e.Error()
		}
		s.log.Warn("ledger does not match participants and days, starting it fresh",
			"path", path, "problems", strings.Join(msgs, "; "))
	}
	s.log.Debug("loaded expedition", "path", path, "name", exp.Name, "days", exp.DurationDays)
	return exp, nil
}

// Save writes the whole document to path. The data goes to a temporary file
// in the same directory which then replaces path, so path is either fully
// written or left as it was.
func (s *Store) Save(path string, exp *Expedition) error {
	var buf bytes.Buffer
	if err := Encode(&buf, exp); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".trekcalc-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("writing expedition: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("syncing expedition: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("closing expedition: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		cleanup()
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("replacing %s: %w", path, err)
	}

	s.log.Debug("saved expedition", "path", path)
	return nil
}

// Create saves a new expedition in dir under a file name derived from its
// name that does not overwrite anything, and returns the path used.
func (s *Store) Create(dir string, exp *Expedition) (string, error) {
	path, err := UniqueFilename(filepath.Join(dir, FileBase(exp.Name)+Ext))
	if err != nil {
		return "", fmt.Errorf("choosing file name: %w", err)
	}
	if err := s.Save(path, exp); err != nil {
		return "", err
	}
	return path, nil
}

// FileBase turns a trek name into a file name without extension.
func FileBase(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		return "expedition"
	}
	return name
}

// UniqueFilename returns path if nothing exists there, otherwise the first of
// "name(1).ext", "name(2).ext", ... that is free. A stat failure other than
// "not found" is returned as is.
func UniqueFilename(path string) (string, error) {
	taken, err := exists(path)
	if err != nil || !taken {
		return path, err
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s(%d)%s", base, n, ext)
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}
