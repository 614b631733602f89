package layer

import (
	"errors"
	"fmt"
)

// ErrAllocation is returned when a sample buffer cannot be allocated.
var ErrAllocation = errors.New("allocation failed")

// MapFunc fills out with the w×h area at (x, z) of the layer's grid.
// out is row-major with z as the outer index.
type MapFunc func(l *Layer, out []int, x, z, w, h int)

// Layer is one stage of the biome stack. Each layer owns its RNG, so a
// layer (and every stack containing it) must not be shared between
// goroutines.
type Layer struct {
	Scale  int
	Salt   int64
	Parent *Layer
	Map    MapFunc

	table *Table
	rng   RNG
}

func newLayer(t *Table, scale int, salt int64, parent *Layer, fn MapFunc) *Layer {
	return &Layer{
		Scale:  scale,
		Salt:   salt,
		Parent: parent,
		Map:    fn,
		table:  t,
		rng:    NewRNG(salt),
	}
}

// SetWorldSeed seeds this layer and all of its ancestors.
func (l *Layer) SetWorldSeed(seed int64) {
	if l.Parent != nil {
		l.Parent.SetWorldSeed(seed)
	}
	l.rng.SetWorldSeed(seed)
}

// GenArea generates the w×h area at (x, z) in this layer's coordinates.
func (l *Layer) GenArea(out []int, x, z, w, h int) {
	l.Map(l, out[:w*h], x, z, w, h)
}

// NewBuffer allocates a sample buffer for a w×h area of this layer.
func (l *Layer) NewBuffer(w, h int) ([]int, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("sample buffer %dx%d at 1:%d: %w", w, h, l.Scale, ErrAllocation)
	}
	return make([]int, w*h), nil
}

func (l *Layer) parentArea(x, z, w, h int) []int {
	buf := make([]int, w*h)
	l.Parent.GenArea(buf, x, z, w, h)
	return buf
}

func (l *Layer) setChunkSeed(x, z int) {
	l.rng.SetChunkSeed(int64(x), int64(z))
}

func (l *Layer) nextInt(n int) int {
	return l.rng.NextInt(n)
}
