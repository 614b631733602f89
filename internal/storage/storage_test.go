package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/OCharnyshevich/quadhut/internal/config"
	"github.com/OCharnyshevich/quadhut/pkg/world/structure"
)

type fakeSolver struct {
	bases []int64
	calls int
}

func (f *fakeSolver) Search(_ context.Context, _ structure.Config) ([]int64, error) {
	f.calls++
	return f.bases, nil
}

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	st, err := New(t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return st
}

func TestEnsureGeneratesOnMiss(t *testing.T) {
	st := newTestStorage(t)
	solver := &fakeSolver{bases: []int64{3, 1 << 40, 0xffffffffffff}}

	cache, err := st.BaseCache("bases.txt", structure.Feature, solver, "")
	if err != nil {
		t.Fatalf("BaseCache: %v", err)
	}
	if err := cache.Ensure(context.Background()); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if err := cache.Ensure(context.Background()); err != nil {
		t.Fatalf("second Ensure: %v", err)
	}
	if solver.calls != 1 {
		t.Fatalf("solver called %d times, want 1", solver.calls)
	}

	got, err := cache.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !slices.Equal(got, solver.bases) {
		t.Fatalf("Load() = %v, want %v", got, solver.bases)
	}
}

func TestEnsureKeepsExistingFile(t *testing.T) {
	st := newTestStorage(t)
	path := filepath.Join(st.dir, "bases.txt")
	if err := os.WriteFile(path, []byte("42\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	solver := &fakeSolver{}
	cache, err := st.BaseCache("bases.txt", structure.Feature, solver, "")
	if err != nil {
		t.Fatalf("BaseCache: %v", err)
	}
	if err := cache.Ensure(context.Background()); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if solver.calls != 0 {
		t.Fatal("solver ran although the cache exists")
	}
}

func TestEnsureFetchesFromURL(t *testing.T) {
	st := newTestStorage(t)
	solver := &fakeSolver{}
	cache, err := st.BaseCache("bases.txt", structure.SwampHut, solver, "https://example.invalid/bases.txt")
	if err != nil {
		t.Fatalf("BaseCache: %v", err)
	}

	var gotSrc string
	cache.fetch = func(_ context.Context, dst, src string) error {
		gotSrc = src
		return os.WriteFile(dst, []byte("7\n\n11\n"), 0o644)
	}

	if err := cache.Ensure(context.Background()); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if gotSrc != "https://example.invalid/bases.txt" {
		t.Errorf("fetched %q", gotSrc)
	}
	if solver.calls != 0 {
		t.Error("solver ran although a URL was configured")
	}

	got, err := cache.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !slices.Equal(got, []int64{7, 11}) {
		t.Fatalf("Load() = %v", got)
	}
}

func TestEnsureRejectsCorruptFetch(t *testing.T) {
	st := newTestStorage(t)
	cache, err := st.BaseCache("bases.txt", structure.SwampHut, &fakeSolver{}, "https://example.invalid/bases.txt")
	if err != nil {
		t.Fatalf("BaseCache: %v", err)
	}
	cache.fetch = func(_ context.Context, dst, _ string) error {
		return os.WriteFile(dst, []byte("<html>not found</html>\n"), 0o644)
	}

	if err := cache.Ensure(context.Background()); !errors.Is(err, ErrResource) {
		t.Fatalf("Ensure() = %v, want ErrResource", err)
	}
	if _, err := os.Stat(cache.Path()); !os.IsNotExist(err) {
		t.Fatal("corrupt download was installed as the cache")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content *string
	}{
		{"missing", nil},
		{"garbage", ptr("12\nabc\n")},
		{"high bits", ptr("281474976710656\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newTestStorage(t)
			if tt.content != nil {
				if err := os.WriteFile(filepath.Join(st.dir, "b.txt"), []byte(*tt.content), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			cache, err := st.BaseCache("b.txt", structure.Feature, &fakeSolver{}, "")
			if err != nil {
				t.Fatalf("BaseCache: %v", err)
			}
			if _, err := cache.Load(); !errors.Is(err, ErrResource) {
				t.Fatalf("Load() = %v, want ErrResource", err)
			}
		})
	}
}

func TestResultLogRoundTrip(t *testing.T) {
	st := newTestStorage(t)
	seeds := []int64{0, 1, -1, 1234567890123, math.MaxInt64, math.MinInt64, -4172144997902289642}

	var mirror bytes.Buffer
	log, err := st.OpenResults("save.txt", &mirror)
	if err != nil {
		t.Fatalf("OpenResults: %v", err)
	}
	if err := log.Header("1.7", -2, 3); err != nil {
		t.Fatalf("Header: %v", err)
	}
	for _, s := range seeds[:4] {
		if err := log.Record(s); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	if err := log.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Reopening appends.
	log, err = st.OpenResults("save.txt", &mirror)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	for _, s := range seeds[4:] {
		if err := log.Record(s); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	if err := log.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if err := log.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(log.Path())
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := ReadResults(f)
	if err != nil {
		t.Fatalf("ReadResults: %v", err)
	}
	if !slices.Equal(got, seeds) {
		t.Fatalf("round trip = %v, want %v", got, seeds)
	}

	if !strings.HasPrefix(mirror.String(), "Using version: 1.7 at position -1024 1536 (region: -2 3)\n") {
		t.Errorf("mirror header = %q", mirror.String())
	}
	mirrored, err := ReadResults(strings.NewReader(strings.SplitN(mirror.String(), "\n", 2)[1]))
	if err != nil {
		t.Fatalf("ReadResults(mirror): %v", err)
	}
	if !slices.Equal(mirrored, seeds) {
		t.Errorf("mirror = %v, want %v", mirrored, seeds)
	}
}

func TestFlushPersistsBeforeClose(t *testing.T) {
	st := newTestStorage(t)
	log, err := st.OpenResults("save.txt", nil)
	if err != nil {
		t.Fatalf("OpenResults: %v", err)
	}
	defer log.Close()

	if err := log.Record(-77); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := log.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	data, err := os.ReadFile(log.Path())
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "-77\n" {
		t.Fatalf("log content = %q, want %q", data, "-77\n")
	}
}

func TestConfigRoundTrip(t *testing.T) {
	st := newTestStorage(t)

	cfg := config.DefaultConfig()
	found, err := st.LoadConfig("quadhut.json", cfg)
	if err != nil || found {
		t.Fatalf("LoadConfig on missing file = %v, %v", found, err)
	}

	cfg.Version = "1.14"
	cfg.ProbeOffsets = []int64{1, 2, 3}
	if err := st.SaveConfig("quadhut.json", cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded := &config.Config{}
	found, err = st.LoadConfig("quadhut.json", loaded)
	if err != nil || !found {
		t.Fatalf("LoadConfig = %v, %v", found, err)
	}
	if loaded.Version != "1.14" || !slices.Equal(loaded.ProbeOffsets, cfg.ProbeOffsets) {
		t.Fatalf("loaded %+v", loaded)
	}
}

func TestLoadConfigOntoDefaults(t *testing.T) {
	st := newTestStorage(t)
	data := []byte(`{"early_threshold": 0, "late_threshold": 0, "version": "1.14"}`)
	if err := os.WriteFile(filepath.Join(st.dir, "tuning.json"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	fromFile := config.DefaultConfig()
	if _, err := st.LoadConfig("tuning.json", fromFile); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	cfg := config.DefaultConfig()
	config.Merge(cfg, fromFile, map[string]bool{})

	if cfg.EarlyThreshold != 0 || cfg.LateThreshold != 0 {
		t.Errorf("thresholds = %d/%d, want 0/0", cfg.EarlyThreshold, cfg.LateThreshold)
	}
	if cfg.CheckpointMask != 0xfff || len(cfg.ProbeOffsets) != 5 || cfg.Quality != 1 {
		t.Errorf("fields absent from the file lost their defaults: %+v", cfg)
	}
	if cfg.Version != "1.14" {
		t.Errorf("Version = %q, want 1.14", cfg.Version)
	}
}

func TestWriteReadBases(t *testing.T) {
	bases := []int64{0, 5, 0xffffffffffff}
	var buf bytes.Buffer
	if err := WriteBases(&buf, bases); err != nil {
		t.Fatalf("WriteBases: %v", err)
	}
	got, err := ReadBases(&buf)
	if err != nil {
		t.Fatalf("ReadBases: %v", err)
	}
	if !slices.Equal(got, bases) {
		t.Fatalf("ReadBases() = %v", got)
	}
}

func ptr(s string) *string { return &s }
