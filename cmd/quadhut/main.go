package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/OCharnyshevich/quadhut/internal/config"
	"github.com/OCharnyshevich/quadhut/internal/quadbase"
	"github.com/OCharnyshevich/quadhut/internal/search"
	"github.com/OCharnyshevich/quadhut/internal/storage"
	"github.com/OCharnyshevich/quadhut/pkg/world/layer"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.DefaultConfig()

	var (
		configFile  string
		dir         string
		writeConfig bool
		verbose     bool
	)
	flag.StringVar(&configFile, "config", "", "JSON config file, relative to -dir")
	flag.StringVar(&dir, "dir", ".", "directory holding the seed base cache and result log")
	flag.StringVar(&cfg.Version, "version", cfg.Version, "game version")
	flag.IntVar(&cfg.Threads, "threads", cfg.Threads, "seed base solver threads")
	flag.IntVar(&cfg.Quality, "quality", cfg.Quality, "seed base quality, lower is tighter")
	flag.StringVar(&cfg.BaseFile, "bases", cfg.BaseFile, "seed base cache file (default derived from version and quality)")
	flag.StringVar(&cfg.BaseURL, "bases-url", cfg.BaseURL, "go-getter source for the seed base cache")
	flag.StringVar(&cfg.ResultFile, "out", cfg.ResultFile, "result log file")
	flag.BoolVar(&writeConfig, "write-config", false, "write the effective config to -config and exit")
	flag.BoolVar(&verbose, "v", false, "log every seed base")
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := execute(ctx, cfg, configFile, dir, writeConfig, log); err != nil {
		log.Error("quadhut failed", "error", err)
		return exitCode(err)
	}
	return 0
}

func execute(ctx context.Context, cfg *config.Config, configFile, dir string, writeConfig bool, log *slog.Logger) error {
	st, err := storage.New(dir, log)
	if err != nil {
		return err
	}

	if configFile != "" {
		explicit := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

		fromFile := config.DefaultConfig()
		found, err := st.LoadConfig(configFile, fromFile)
		if err != nil {
			return err
		}
		if found {
			config.Merge(cfg, fromFile, explicit)
			log.Info("loaded config", "file", configFile)
		}
	}

	if writeConfig {
		if configFile == "" {
			return fmt.Errorf("%w: -write-config needs -config", config.ErrConfig)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := st.SaveConfig(configFile, cfg); err != nil {
			return err
		}
		log.Info("config written", "file", configFile)
		return nil
	}

	if flag.NArg() > 0 {
		if err := applyPositional(cfg, flag.Args()); err != nil {
			return err
		}
	} else {
		p := &prompter{
			in:     bufio.NewScanner(os.Stdin),
			out:    os.Stdout,
			notice: os.Stderr,
			prompt: term.IsTerminal(int(os.Stdin.Fd())),
		}
		if err := interactive(cfg, p); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	return searchRegion(ctx, cfg, st, log)
}

func searchRegion(ctx context.Context, cfg *config.Config, st *storage.Storage, log *slog.Logger) error {
	version, err := cfg.GameVersion()
	if err != nil {
		return err
	}
	sc, err := cfg.Structure()
	if err != nil {
		return err
	}
	baseFile, err := cfg.SeedBaseFile()
	if err != nil {
		return err
	}

	solver := quadbase.New(cfg.Threads, cfg.Quality, log)
	cache, err := st.BaseCache(baseFile, sc, solver, cfg.BaseURL)
	if err != nil {
		return err
	}
	if err := cache.Ensure(ctx); err != nil {
		return err
	}
	bases, err := cache.Load()
	if err != nil {
		return err
	}
	log.Info("seed bases loaded", "file", cache.Path(), "count", len(bases))

	results, err := st.OpenResults(cfg.ResultFile, os.Stdout)
	if err != nil {
		return err
	}
	defer results.Close()

	if err := results.Header(version.String(), cfg.RegionX, cfg.RegionZ); err != nil {
		return err
	}

	stack := layer.NewStack(layer.Init(), version, nil)
	region := search.Region{X: cfg.RegionX, Z: cfg.RegionZ}
	tuning := search.Tuning{
		ProbeOffsets:   cfg.ProbeOffsets,
		CheckpointMask: cfg.CheckpointMask,
		EarlyThreshold: cfg.EarlyThreshold,
		LateThreshold:  cfg.LateThreshold,
	}

	searcher, err := search.New(sc, region, tuning, stack, stack.Layer(layer.StageBiome256), results, log)
	if err != nil {
		return err
	}

	log.Info("search started",
		"version", version,
		"structure", sc.Name,
		"region_x", region.X,
		"region_z", region.Z,
		"results", results.Path(),
	)
	stats, err := searcher.Run(ctx, bases)
	log.Info("search finished", "stats", stats)
	return err
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	switch {
	case errors.Is(err, config.ErrConfig):
		return 2
	case errors.Is(err, context.Canceled):
		return 130
	default:
		return 1
	}
}
