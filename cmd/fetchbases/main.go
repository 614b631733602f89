package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/OCharnyshevich/quadhut/internal/config"
	"github.com/OCharnyshevich/quadhut/internal/quadbase"
	"github.com/OCharnyshevich/quadhut/internal/storage"
)

// fetchbases (re)builds a seed base cache, either by downloading it from a
// go-getter source or by running the solver locally when no source is set.
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.DefaultConfig()

	var (
		src = flag.String("src", "", "go-getter source, e.g. https://host/quadhutbases_1_7_Q1.txt or s3::...")
		dir = flag.String("dir", ".", "cache directory")
	)
	flag.StringVar(&cfg.Version, "version", cfg.Version, "game version the bases are for")
	flag.IntVar(&cfg.Quality, "quality", cfg.Quality, "seed base quality")
	flag.IntVar(&cfg.Threads, "threads", cfg.Threads, "solver threads when generating locally")
	flag.StringVar(&cfg.BaseFile, "o", cfg.BaseFile, "output file (default derived from version and quality)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	path, n, err := rebuild(ctx, cfg, *src, *dir, logger)
	if err != nil {
		return err
	}
	log.Default().Printf("done building seed bases %s (%d bases)", path, n)
	return nil
}

// rebuild replaces the seed base cache described by cfg and returns its
// path and the number of bases it holds.
func rebuild(ctx context.Context, cfg *config.Config, src, dir string, logger *slog.Logger) (string, int, error) {
	if err := cfg.Validate(); err != nil {
		return "", 0, err
	}
	sc, err := cfg.Structure()
	if err != nil {
		return "", 0, err
	}
	name, err := cfg.SeedBaseFile()
	if err != nil {
		return "", 0, err
	}

	st, err := storage.New(dir, logger)
	if err != nil {
		return "", 0, err
	}
	cache, err := st.BaseCache(name, sc, quadbase.New(cfg.Threads, cfg.Quality, logger), src)
	if err != nil {
		return "", 0, err
	}

	if err := os.Remove(cache.Path()); err != nil && !os.IsNotExist(err) {
		return "", 0, fmt.Errorf("%w: remove old cache: %w", storage.ErrResource, err)
	}

	log.Default().Printf("start building seed bases %s", cache.Path())

	if err := cache.Ensure(ctx); err != nil {
		return "", 0, err
	}
	bases, err := cache.Load()
	if err != nil {
		return "", 0, err
	}
	return cache.Path(), len(bases), nil
}
