package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/OCharnyshevich/quadhut/internal/config"
)

// ErrResource marks a cache, config or result file that could not be
// created, read or written.
var ErrResource = errors.New("resource unavailable")

// Storage handles file-based persistence for the config, the seed base
// cache and the result log.
type Storage struct {
	dir string
	log *slog.Logger
}

// New creates a new Storage rooted at dir, creating it as needed.
func New(dir string, log *slog.Logger) (*Storage, error) {
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: expand %s: %w", ErrResource, dir, err)
	}
	if err := os.MkdirAll(expanded, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create directory %s: %w", ErrResource, expanded, err)
	}
	return &Storage{dir: expanded, log: log}, nil
}

// Path resolves name against the storage directory. Absolute and
// home-relative names are kept as they are.
func (s *Storage) Path(name string) (string, error) {
	p, err := homedir.Expand(name)
	if err != nil {
		return "", fmt.Errorf("%w: expand %s: %w", ErrResource, name, err)
	}
	if filepath.IsAbs(p) {
		return p, nil
	}
	return filepath.Join(s.dir, p), nil
}

// LoadConfig reads the named JSON file into cfg. If the file does not
// exist, cfg is unchanged and false is returned.
func (s *Storage) LoadConfig(name string, cfg *config.Config) (bool, error) {
	path, err := s.Path(name)
	if err != nil {
		return false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: read config: %w", ErrResource, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return false, fmt.Errorf("%w: parse config %s: %w", config.ErrConfig, path, err)
	}
	s.log.Info("loaded config from file", "path", path)
	return true, nil
}

// SaveConfig writes cfg to the named file atomically.
func (s *Storage) SaveConfig(name string, cfg *config.Config) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')
	return atomicWrite(path, data)
}

// atomicWrite writes data to path using a temp file + rename.
func atomicWrite(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("%w: write temp file: %w", ErrResource, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: rename temp file: %w", ErrResource, err)
	}
	return nil
}
