package quadbase

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/OCharnyshevich/quadhut/pkg/world/structure"
)

const (
	lowBits   = 20
	lowCount  = 1 << lowBits
	upperBits = 48 - lowBits

	// chunkSize is the number of upper-bit values one worker job scans.
	chunkSize = 1 << 22
)

// quadRegions are the four regions of a quad base, and whether the
// structure must sit in the high (true) or low part of the chunk range on
// each axis to be close to the shared corner.
var quadRegions = [4]struct {
	rx, rz       int
	highX, highZ bool
}{
	{0, 0, true, true},
	{0, 1, true, false},
	{1, 0, false, true},
	{1, 1, false, false},
}

// IsQuadBase reports whether the four structures of regions (0,0)..(1,1)
// all lie within quality chunks of the corner they share.
func IsQuadBase(cfg structure.Config, seed int64, quality int) bool {
	upper := cfg.ChunkRange - quality - 1
	lower := quality
	for _, r := range quadRegions {
		x, z := structure.ChunkOffsets(cfg, seed, r.rx, r.rz)
		if !inRange(x, r.highX, upper, lower) || !inRange(z, r.highZ, upper, lower) {
			return false
		}
	}
	return true
}

func inRange(v int, high bool, upper, lower int) bool {
	if high {
		return v >= upper
	}
	return v <= lower
}

// Solver searches the 48-bit structure seed space for quad bases.
type Solver struct {
	Threads int
	Quality int
	// UpperLimit bounds the values of bits 20..47 that are scanned. Zero
	// scans all of them.
	UpperLimit int64

	log *slog.Logger
}

// New creates a Solver using threads workers.
func New(threads, quality int, log *slog.Logger) *Solver {
	return &Solver{Threads: threads, Quality: quality, log: log}
}

// Search returns every quad base for cfg in ascending order.
func (s *Solver) Search(ctx context.Context, cfg structure.Config) ([]int64, error) {
	if s.Quality < 0 || s.Quality >= cfg.ChunkRange/2 {
		return nil, fmt.Errorf("quality %d out of range [0, %d)", s.Quality, cfg.ChunkRange/2)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	upperEnd := s.UpperLimit
	if upperEnd <= 0 {
		upperEnd = 1 << upperBits
	}

	lows := LowCandidates(cfg, s.Quality)
	s.log.Info("quad base search started",
		"structure", cfg.Name,
		"quality", s.Quality,
		"threads", s.Threads,
		"lowCandidates", len(lows),
	)

	var (
		mu      sync.Mutex
		results []int64
	)
	g, ctx := errgroup.WithContext(ctx)
	if s.Threads > 0 {
		g.SetLimit(s.Threads)
	}

	for _, low := range lows {
		for start := int64(0); start < upperEnd; start += chunkSize {
			end := min(start+chunkSize, upperEnd)
			g.Go(func() error {
				found, err := scan(ctx, cfg, s.Quality, low, start, end)
				if err != nil {
					return err
				}
				if len(found) > 0 {
					mu.Lock()
					results = append(results, found...)
					mu.Unlock()
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("quad base search: %w", err)
	}

	slices.Sort(results)
	s.log.Info("quad base search finished", "structure", cfg.Name, "bases", len(results))
	return results, nil
}

func scan(ctx context.Context, cfg structure.Config, quality int, low, start, end int64) ([]int64, error) {
	var found []int64
	for hi := start; hi < end; hi++ {
		if hi&0xffff == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		seed := hi<<lowBits | low
		if IsQuadBase(cfg, seed, quality) {
			found = append(found, seed)
		}
	}
	return found, nil
}

// LowCandidates returns the values of the low 20 seed bits that can belong
// to a quad base. Since the chunk range is a multiple of 8, bits 17..19 of
// each placement draw fix the chunk offset modulo 8, and those bits depend
// only on the low 20 bits of the seed.
func LowCandidates(cfg structure.Config, quality int) []int64 {
	upper := cfg.ChunkRange - quality - 1
	lower := quality

	var highMask, lowMask uint8
	for v := 0; v < cfg.ChunkRange; v++ {
		if v >= upper {
			highMask |= 1 << (v & 7)
		}
		if v <= lower {
			lowMask |= 1 << (v & 7)
		}
	}
	allowed := func(v int, high bool) bool {
		if high {
			return highMask&(1<<v) != 0
		}
		return lowMask&(1<<v) != 0
	}

	var lows []int64
	for low := int64(0); low < lowCount; low++ {
		ok := true
		for _, r := range quadRegions {
			x8, z8 := lowOffsets(cfg, low, r.rx, r.rz)
			if !allowed(x8, r.highX) || !allowed(z8, r.highZ) {
				ok = false
				break
			}
		}
		if ok {
			lows = append(lows, low)
		}
	}
	return lows
}

// lowOffsets returns the chunk offsets modulo 8 using only the low 20
// bits of every intermediate value.
func lowOffsets(cfg structure.Config, low int64, rx, rz int) (int, int) {
	const m = lowCount - 1
	s := (structure.RegionSeed(cfg, low, rx, rz) ^ 0x5DEECE66D) & m
	s = (s*0x5DEECE66D + 0xB) & m
	x := int(s>>17) & 7
	s = (s*0x5DEECE66D + 0xB) & m
	z := int(s>>17) & 7
	return x, z
}
