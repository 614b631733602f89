package structure

// Java LCG constants used by the structure placement RNG.
const (
	javaMul  = 0x5DEECE66D
	javaAdd  = 0xB
	mask48   = (1 << 48) - 1
	regionXM = 341873128712
	regionZM = 132897987541
)

// Config describes how one structure type is placed on its region grid.
type Config struct {
	Name       string
	Salt       int64
	RegionSize int // in chunks
	ChunkRange int // valid chunk offsets inside a region
}

var (
	// Feature is the pre-1.13 feature config shared by temples and huts.
	Feature = Config{Name: "feature", Salt: 14357617, RegionSize: 32, ChunkRange: 24}
	// SwampHut is the 1.13+ witch hut config.
	SwampHut = Config{Name: "swamp hut", Salt: 14357620, RegionSize: 32, ChunkRange: 24}
)

// Pos is a block position.
type Pos struct {
	X, Z int
}

// RegionSeed returns the placement seed of region (rx, rz) before the
// Java scrambling step.
func RegionSeed(cfg Config, seed int64, rx, rz int) int64 {
	return int64(rx)*regionXM + int64(rz)*regionZM + seed + cfg.Salt
}

// ChunkOffsets returns the chunk offsets within region (rx, rz) that the
// structure is placed at.
func ChunkOffsets(cfg Config, seed int64, rx, rz int) (int, int) {
	s := (RegionSeed(cfg, seed, rx, rz) ^ javaMul) & mask48
	s = (s*javaMul + javaAdd) & mask48
	x := int(int32(s>>17)) % cfg.ChunkRange
	s = (s*javaMul + javaAdd) & mask48
	z := int(int32(s>>17)) % cfg.ChunkRange
	return x, z
}

// PosAt returns the block position of the structure attempt in region
// (rx, rz) for a world seed. Only the low 48 bits of seed matter.
func PosAt(cfg Config, seed int64, rx, rz int) Pos {
	x, z := ChunkOffsets(cfg, seed, rx, rz)
	return Pos{
		X: ((rx*cfg.RegionSize + x) << 4) + 8,
		Z: ((rz*cfg.RegionSize + z) << 4) + 8,
	}
}

// Move translates a seed base so that the structure placement found at
// region (0, 0) appears at region (rx, rz) instead.
func Move(base int64, rx, rz int) int64 {
	return (base - int64(rx)*regionXM - int64(rz)*regionZM) & mask48
}
