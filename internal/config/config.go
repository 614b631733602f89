package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/OCharnyshevich/quadhut/pkg/world/layer"
	"github.com/OCharnyshevich/quadhut/pkg/world/structure"
)

// ErrConfig marks invalid user-supplied configuration.
var ErrConfig = errors.New("invalid configuration")

// Config holds the search configuration.
type Config struct {
	RegionX int    `json:"region_x"`
	RegionZ int    `json:"region_z"`
	Version string `json:"version"`

	// Seed base solver parameters, used when the base file is missing.
	Threads int `json:"threads"`
	Quality int `json:"quality"`

	BaseFile   string `json:"base_file"` // "" = derived from version and quality
	BaseURL    string `json:"base_url"`  // go-getter source fetched on a cache miss
	ResultFile string `json:"result_file"`

	// Filter tuning. These trade a small miss rate for speed.
	ProbeOffsets   []int64 `json:"probe_offsets"`
	CheckpointMask int64   `json:"checkpoint_mask"`
	EarlyThreshold int     `json:"early_threshold"`
	LateThreshold  int     `json:"late_threshold"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:        "1.7",
		Threads:        6,
		Quality:        1,
		ResultFile:     "save.txt",
		ProbeOffsets:   []int64{0x53, 0x54, 0x55, 0x56, 0x57},
		CheckpointMask: 0xfff,
		EarlyThreshold: 1,
		LateThreshold:  2,
	}
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
//
// fromFile must be decoded onto DefaultConfig() so that fields absent from
// the file carry their defaults. Tuning fields have no flags and are copied
// as they are, zero thresholds included.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["version"] && fromFile.Version != "" {
		cfg.Version = fromFile.Version
	}
	if !explicitFlags["threads"] && fromFile.Threads > 0 {
		cfg.Threads = fromFile.Threads
	}
	if !explicitFlags["quality"] {
		cfg.Quality = fromFile.Quality
	}
	if !explicitFlags["bases"] && fromFile.BaseFile != "" {
		cfg.BaseFile = fromFile.BaseFile
	}
	if !explicitFlags["bases-url"] && fromFile.BaseURL != "" {
		cfg.BaseURL = fromFile.BaseURL
	}
	if !explicitFlags["out"] && fromFile.ResultFile != "" {
		cfg.ResultFile = fromFile.ResultFile
	}
	cfg.ProbeOffsets = slices.Clone(fromFile.ProbeOffsets)
	cfg.CheckpointMask = fromFile.CheckpointMask
	cfg.EarlyThreshold = fromFile.EarlyThreshold
	cfg.LateThreshold = fromFile.LateThreshold
}

// GameVersion parses the configured version.
func (c *Config) GameVersion() (layer.Version, error) {
	v, err := layer.ParseVersion(c.Version)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return v, nil
}

// Structure returns the witch hut placement config for the version.
func (c *Config) Structure() (structure.Config, error) {
	v, err := c.GameVersion()
	if err != nil {
		return structure.Config{}, err
	}
	if v.AtLeast(layer.MC1_13) {
		return structure.SwampHut, nil
	}
	return structure.Feature, nil
}

// SeedBaseFile returns the seed base cache path.
func (c *Config) SeedBaseFile() (string, error) {
	if c.BaseFile != "" {
		return c.BaseFile, nil
	}
	v, err := c.GameVersion()
	if err != nil {
		return "", err
	}
	family := "1_7"
	if v.AtLeast(layer.MC1_13) {
		family = "1_13"
	}
	return fmt.Sprintf("quadhutbases_%s_Q%d.txt", family, c.Quality), nil
}

// Validate checks that the configuration is usable for a search.
func (c *Config) Validate() error {
	if _, err := c.GameVersion(); err != nil {
		return err
	}
	if c.Threads <= 0 {
		return fmt.Errorf("%w: threads must be positive, got %d", ErrConfig, c.Threads)
	}
	if c.Quality < 0 || c.Quality >= structure.Feature.ChunkRange/2 {
		return fmt.Errorf("%w: quality %d out of range", ErrConfig, c.Quality)
	}
	if len(c.ProbeOffsets) == 0 {
		return fmt.Errorf("%w: at least one probe offset is required", ErrConfig)
	}
	for _, off := range c.ProbeOffsets {
		if off < 0 || off > 0xffff {
			return fmt.Errorf("%w: probe offset %#x outside the high-bit space", ErrConfig, off)
		}
	}
	if c.CheckpointMask <= 0 || c.CheckpointMask&(c.CheckpointMask+1) != 0 || c.CheckpointMask > 0xffff {
		return fmt.Errorf("%w: checkpoint mask %#x must be 2^n-1 below 0x10000", ErrConfig, c.CheckpointMask)
	}
	if c.EarlyThreshold < 0 || c.LateThreshold < 0 || c.EarlyThreshold > 3 || c.LateThreshold > 3 {
		return fmt.Errorf("%w: thresholds must be within [0, 3]", ErrConfig)
	}
	if c.ResultFile == "" {
		return fmt.Errorf("%w: result file is required", ErrConfig)
	}
	return nil
}
