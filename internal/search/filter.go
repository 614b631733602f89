package search

import (
	"iter"

	"github.com/OCharnyshevich/quadhut/pkg/world/layer"
)

// highCount is the size of the high-bit search space of one seed base.
const highCount = 1 << 16

// Tuning holds the filter parameters. The defaults miss about one quad
// seed in 500 in exchange for a ~12x speedup.
type Tuning struct {
	// ProbeOffsets are the high-bit values sampled by the pre-filter.
	ProbeOffsets []int64
	// CheckpointMask selects the candidates at which the neighbourhood
	// density check runs (j&mask == mask).
	CheckpointMask int64
	// EarlyThreshold applies at the first checkpoint, LateThreshold after.
	EarlyThreshold int
	LateThreshold  int
}

// swampDraw seeds rng for seed at cell (x, z) and reports whether the
// biome stage's first draw there would turn a lush cell into swampland.
func swampDraw(rng *layer.RNG, seed, x, z int64) bool {
	rng.SetWorldSeed(seed)
	rng.SetChunkSeed(x, z)
	return rng.NextInt(6) == layer.SwampDraw
}

// PreFilter decides from a few high-bit probes whether a seed base is worth
// enumerating at all.
//
// Turning a lush climate cell into swampland depends only on the biome
// stage's first draw at that cell, not on the surroundings. The zoom stages
// also make biomes leak towards negative coordinates, so most quads have a
// swamp at the south-east macro cell.
type PreFilter struct {
	offsets []int64
	rng     layer.RNG
}

// NewPreFilter creates a PreFilter probing the given high-bit offsets.
func NewPreFilter(offsets []int64) *PreFilter {
	return &PreFilter{offsets: offsets, rng: layer.NewRNG(layer.BiomeSalt)}
}

// ShouldScan reports whether any probe hits for the (translated) base.
func (f *PreFilter) ShouldScan(base int64, r Region) bool {
	cx, cz := r.macroCell()
	for _, off := range f.offsets {
		if swampDraw(&f.rng, base+off<<48, cx, cz) {
			return true
		}
	}
	return false
}

// State is where the enumeration of a seed base ended.
type State int

const (
	StateLoaded State = iota
	StatePreFiltered
	StateEnumerating
	StateAbandoned
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StatePreFiltered:
		return "prefiltered"
	case StateEnumerating:
		return "enumerating"
	case StateAbandoned:
		return "abandoned"
	case StateExhausted:
		return "exhausted"
	}
	return "unknown"
}

// Enumerator walks the high-bit space of one seed base at a time and yields
// the world seeds that survive the cheap filters.
type Enumerator struct {
	tuning Tuning
	macro  MacroStage
	buf    []int
	rng    layer.RNG

	hits    int
	visited int
	state   State
}

// NewEnumerator creates an Enumerator checking candidates against the
// macro biome stage.
func NewEnumerator(t Tuning, macro MacroStage) (*Enumerator, error) {
	buf, err := macro.NewBuffer(1, 1)
	if err != nil {
		return nil, err
	}
	return &Enumerator{
		tuning: t,
		macro:  macro,
		buf:    buf,
		rng:    layer.NewRNG(layer.BiomeSalt),
	}, nil
}

// Confirm tells the enumerator that the last yielded seed was verified.
func (e *Enumerator) Confirm() {
	e.hits++
}

// State returns where the last enumeration stopped.
func (e *Enumerator) State() State {
	return e.state
}

// Visited returns how many high-bit values the last enumeration examined.
func (e *Enumerator) Visited() int {
	return e.visited
}

// Candidates returns the world seeds of the (translated) base that pass the
// cheap filters, in ascending high-bit order. The sequence stops early when
// the neighbourhood of the quad looks too dry to be worth finishing.
func (e *Enumerator) Candidates(base int64, r Region) iter.Seq[int64] {
	return func(yield func(int64) bool) {
		e.hits, e.visited, e.state = 0, 0, StateEnumerating
		cx, cz := r.macroCell()
		mask := e.tuning.CheckpointMask

		for j := int64(0); j < highCount; j++ {
			e.visited++
			seed := base + j<<48

			if !swampDraw(&e.rng, seed, cx, cz) {
				continue
			}

			if e.hits == 0 && j&mask == mask {
				if e.neighbourSwamps(cx, cz) < e.threshold(j) {
					e.state = StateAbandoned
					return
				}
			}

			e.macro.SetWorldSeed(seed)
			e.macro.GenArea(e.buf, int(cx), int(cz), 1, 1)
			if e.buf[0] != layer.Swampland {
				continue
			}

			if !yield(seed) {
				return
			}
		}
		e.state = StateExhausted
	}
}

// neighbourSwamps counts swamp draws at the west, north and north-west
// macro cells. The rng must already carry the candidate's world seed.
func (e *Enumerator) neighbourSwamps(cx, cz int64) int {
	n := 0
	for _, c := range [3][2]int64{{cx - 1, cz}, {cx, cz - 1}, {cx - 1, cz - 1}} {
		e.rng.SetChunkSeed(c[0], c[1])
		if e.rng.NextInt(6) == layer.SwampDraw {
			n++
		}
	}
	return n
}

func (e *Enumerator) threshold(j int64) int {
	if j > e.tuning.CheckpointMask+1 {
		return e.tuning.LateThreshold
	}
	return e.tuning.EarlyThreshold
}
