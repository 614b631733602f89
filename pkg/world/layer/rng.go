package layer

// LCG constants shared by every stage of the layer stack.
const (
	lcgMul = 6364136223846793005
	lcgAdd = 1442695040888963407
)

// RNG is the per-stage pseudo-random state. A stage salt is mixed into a
// world seed once, then re-mixed with each cell coordinate before drawing.
// Not safe for concurrent use.
type RNG struct {
	baseSeed  int64
	worldSeed int64
	chunkSeed int64
}

// NewRNG returns an RNG for a stage with the given salt.
func NewRNG(salt int64) RNG {
	return RNG{baseSeed: stageSeed(salt)}
}

func stageSeed(salt int64) int64 {
	s := salt
	for i := 0; i < 3; i++ {
		s *= s*lcgMul + lcgAdd
		s += salt
	}
	return s
}

// SetWorldSeed mixes the world seed with the stage salt.
func (r *RNG) SetWorldSeed(seed int64) {
	ws := seed
	for i := 0; i < 3; i++ {
		ws *= ws*lcgMul + lcgAdd
		ws += r.baseSeed
	}
	r.worldSeed = ws
}

// SetChunkSeed positions the stream at a cell of the stage's grid.
func (r *RNG) SetChunkSeed(x, z int64) {
	cs := r.worldSeed
	cs *= cs*lcgMul + lcgAdd
	cs += x
	cs *= cs*lcgMul + lcgAdd
	cs += z
	cs *= cs*lcgMul + lcgAdd
	cs += x
	cs *= cs*lcgMul + lcgAdd
	cs += z
	r.chunkSeed = cs
}

// NextInt draws a value in [0, n) and advances the stream.
func (r *RNG) NextInt(n int) int {
	ret := int((r.chunkSeed >> 24) % int64(n))
	if ret < 0 {
		ret += n
	}
	r.chunkSeed *= r.chunkSeed*lcgMul + lcgAdd
	r.chunkSeed += r.worldSeed
	return ret
}
