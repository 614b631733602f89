package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/OCharnyshevich/quadhut/pkg/world/layer"
	"github.com/OCharnyshevich/quadhut/pkg/world/structure"
)

// Generator is the full biome generator used for verification.
type Generator interface {
	ApplySeed(seed int64)
	BiomeAt(x, z int) int
}

// MacroStage is the coarse biome stage checked before full generation.
type MacroStage interface {
	SetWorldSeed(seed int64)
	GenArea(out []int, x, z, w, h int)
	NewBuffer(w, h int) ([]int, error)
}

// Sink receives confirmed seeds. Flush is called once per seed base.
type Sink interface {
	Record(seed int64) error
	Flush() error
}

// Verifier confirms candidates by running full biome generation.
type Verifier struct {
	gen Generator
}

// NewVerifier creates a Verifier backed by gen.
func NewVerifier(gen Generator) *Verifier {
	return &Verifier{gen: gen}
}

// Verify reports whether all four positions are swampland for seed.
func (v *Verifier) Verify(seed int64, pos [4]structure.Pos) bool {
	v.gen.ApplySeed(seed)
	for _, p := range pos {
		if v.gen.BiomeAt(p.X, p.Z) != layer.Swampland {
			return false
		}
	}
	return true
}

// Stats summarises a search run.
type Stats struct {
	Bases       int
	PreFiltered int
	Abandoned   int
	Exhausted   int
	Candidates  int
	Results     int
}

// LogValue implements slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bases", s.Bases),
		slog.Int("prefiltered", s.PreFiltered),
		slog.Int("abandoned", s.Abandoned),
		slog.Int("exhausted", s.Exhausted),
		slog.Int("candidates", s.Candidates),
		slog.Int("results", s.Results),
	)
}

// Searcher runs the quad search over a list of seed bases, one base at a
// time. It is not safe for concurrent use: the generator, macro stage and
// sample buffer all belong to the single search loop.
type Searcher struct {
	structure structure.Config
	region    Region

	prefilter *PreFilter
	enum      *Enumerator
	verifier  *Verifier
	sink      Sink
	log       *slog.Logger
}

// New creates a Searcher for the quad at region r.
func New(sc structure.Config, r Region, t Tuning, gen Generator, macro MacroStage, sink Sink, log *slog.Logger) (*Searcher, error) {
	enum, err := NewEnumerator(t, macro)
	if err != nil {
		return nil, fmt.Errorf("macro sample buffer: %w", err)
	}
	return &Searcher{
		structure: sc,
		region:    r,
		prefilter: NewPreFilter(t.ProbeOffsets),
		enum:      enum,
		verifier:  NewVerifier(gen),
		sink:      sink,
		log:       log,
	}, nil
}

// Run searches every base in order. Results are flushed after each base;
// ctx is only checked between bases, so a cancelled run stops on a flush
// boundary.
func (s *Searcher) Run(ctx context.Context, bases []int64) (Stats, error) {
	var stats Stats
	for i, base := range bases {
		if err := ctx.Err(); err != nil {
			s.log.Info("search interrupted", "base", i, "of", len(bases))
			return stats, err
		}
		stats.Bases++

		found, state, err := s.searchBase(base, &stats)
		if err != nil {
			return stats, err
		}
		if err := s.sink.Flush(); err != nil {
			return stats, err
		}

		s.log.Debug("seed base done",
			"index", i,
			"base", base,
			"state", state,
			"visited", s.enum.Visited(),
			"found", found,
		)
		if (i+1)%256 == 0 {
			s.log.Info("progress", "done", i+1, "of", len(bases), "stats", stats)
		}
	}
	return stats, nil
}

func (s *Searcher) searchBase(base int64, stats *Stats) (int, State, error) {
	moved := Translate(base, s.region)
	pos := Locate(s.structure, base, s.region)

	if !s.prefilter.ShouldScan(moved, s.region) {
		stats.PreFiltered++
		return 0, StatePreFiltered, nil
	}

	found := 0
	for seed := range s.enum.Candidates(moved, s.region) {
		stats.Candidates++
		if !s.verifier.Verify(seed, pos) {
			continue
		}
		s.enum.Confirm()
		if err := s.sink.Record(seed); err != nil {
			return found, StateEnumerating, err
		}
		found++
		stats.Results++
	}

	state := s.enum.State()
	switch state {
	case StateAbandoned:
		stats.Abandoned++
	case StateExhausted:
		stats.Exhausted++
	}
	return found, state, nil
}
