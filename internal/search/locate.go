package search

import "github.com/OCharnyshevich/quadhut/pkg/world/structure"

// RegionBlocks is the side of a region in blocks (16 blocks per chunk,
// 32 chunks per region).
const RegionBlocks = 16 * 32

// Region addresses a 512×512-block area.
type Region struct {
	X, Z int
}

// RegionOfBlock converts block coordinates to a region. Division truncates
// toward zero.
func RegionOfBlock(x, z int64) Region {
	return Region{X: int(x / RegionBlocks), Z: int(z / RegionBlocks)}
}

// BlockOrigin returns the block coordinates of the region's corner.
func (r Region) BlockOrigin() (int64, int64) {
	return int64(r.X) * RegionBlocks, int64(r.Z) * RegionBlocks
}

// macroCell returns the 1:256 cell at the south-east corner of the quad.
func (r Region) macroCell() (int64, int64) {
	return int64(r.X)<<1 + 2, int64(r.Z)<<1 + 2
}

// Translate moves a seed base so its quad lands on region r.
func Translate(base int64, r Region) int64 {
	return structure.Move(base, r.X, r.Z)
}

// Locate returns the four structure positions of the quad formed by base
// at region r.
func Locate(cfg structure.Config, base int64, r Region) [4]structure.Pos {
	moved := Translate(base, r)
	return [4]structure.Pos{
		structure.PosAt(cfg, moved, r.X, r.Z),
		structure.PosAt(cfg, moved, r.X, r.Z+1),
		structure.PosAt(cfg, moved, r.X+1, r.Z),
		structure.PosAt(cfg, moved, r.X+1, r.Z+1),
	}
}
