package layer

func mapIsland(l *Layer, out []int, x, z, w, h int) {
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			l.setChunkSeed(x+i, z+j)
			v := 0
			if l.nextInt(10) == 0 {
				v = 1
			}
			out[j*w+i] = v
		}
	}
	// The origin is always land.
	if x <= 0 && z <= 0 && x+w > 0 && z+h > 0 {
		out[-z*w-x] = 1
	}
}

func mapZoom(l *Layer, out []int, x, z, w, h int) {
	px, pz := x>>1, z>>1
	pw := ((x + w) >> 1) - px + 2
	ph := ((z + h) >> 1) - pz + 2
	p := l.parentArea(px, pz, pw, ph)

	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			ax, az := x+i, z+j
			cx, cz := (ax>>1)-px, (az>>1)-pz

			a := p[cz*pw+cx]
			b := p[(cz+1)*pw+cx]
			c := p[cz*pw+cx+1]
			d := p[(cz+1)*pw+cx+1]

			l.setChunkSeed(ax&^1, az&^1)
			south := l.choose(a, b)
			east := l.choose(a, c)
			diag := l.selectModeOrRandom(a, b, c, d)

			switch {
			case ax&1 == 0 && az&1 == 0:
				out[j*w+i] = a
			case ax&1 == 0:
				out[j*w+i] = south
			case az&1 == 0:
				out[j*w+i] = east
			default:
				out[j*w+i] = diag
			}
		}
	}
}

func (l *Layer) choose(a, b int) int {
	if l.nextInt(2) == 0 {
		return a
	}
	return b
}

func (l *Layer) selectModeOrRandom(a, b, c, d int) int {
	switch {
	case b == c && c == d:
		return b
	case a == b && a == c:
		return a
	case a == b && a == d:
		return a
	case a == c && a == d:
		return a
	case a == b && c != d:
		return a
	case a == c && b != d:
		return a
	case a == d && b != c:
		return a
	case b == c && a != d:
		return b
	case b == d && a != c:
		return b
	case c == d && a != b:
		return c
	}
	return [4]int{a, b, c, d}[l.nextInt(4)]
}

// cross walks the area with a one-cell border from the parent and hands
// each cell with its four direct neighbours and four diagonals to fn.
func cross(l *Layer, out []int, x, z, w, h int, fn func(ax, az int, n neighbourhood) int) {
	pw, ph := w+2, h+2
	p := l.parentArea(x-1, z-1, pw, ph)
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			n := neighbourhood{
				center: p[(j+1)*pw+i+1],
				north:  p[j*pw+i+1],
				south:  p[(j+2)*pw+i+1],
				west:   p[(j+1)*pw+i],
				east:   p[(j+1)*pw+i+2],
				nw:     p[j*pw+i],
				ne:     p[j*pw+i+2],
				sw:     p[(j+2)*pw+i],
				se:     p[(j+2)*pw+i+2],
			}
			out[j*w+i] = fn(x+i, z+j, n)
		}
	}
}

type neighbourhood struct {
	center                   int
	north, south, west, east int
	nw, ne, sw, se           int
}

func (n neighbourhood) anyDirect(pred func(int) bool) bool {
	return pred(n.north) || pred(n.south) || pred(n.west) || pred(n.east)
}

func (n neighbourhood) anyDiagonal(pred func(int) bool) bool {
	return pred(n.nw) || pred(n.ne) || pred(n.sw) || pred(n.se)
}

func isZero(v int) bool    { return v == 0 }
func isNonZero(v int) bool { return v != 0 }

func mapAddIsland(l *Layer, out []int, x, z, w, h int) {
	cross(l, out, x, z, w, h, func(ax, az int, n neighbourhood) int {
		switch {
		case n.center == 0 && n.anyDiagonal(isNonZero):
			l.setChunkSeed(ax, az)
			if l.nextInt(3) == 0 {
				return 1
			}
			return 0
		case n.center != 0 && n.anyDiagonal(isZero):
			l.setChunkSeed(ax, az)
			if l.nextInt(5) == 0 {
				return 0
			}
		}
		return n.center
	})
}

func mapRemoveTooMuchOcean(l *Layer, out []int, x, z, w, h int) {
	cross(l, out, x, z, w, h, func(ax, az int, n neighbourhood) int {
		if n.center == 0 && !n.anyDirect(isNonZero) {
			l.setChunkSeed(ax, az)
			if l.nextInt(2) == 0 {
				return 1
			}
		}
		return n.center
	})
}

func mapSnow(l *Layer, out []int, x, z, w, h int) {
	l.Parent.GenArea(out, x, z, w, h)
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			if out[j*w+i] == climateOcean {
				continue
			}
			l.setChunkSeed(x+i, z+j)
			switch l.nextInt(6) {
			case 0:
				out[j*w+i] = climateFreezing
			case 1:
				out[j*w+i] = climateCold
			default:
				out[j*w+i] = climateWarm
			}
		}
	}
}

func mapCoolWarm(l *Layer, out []int, x, z, w, h int) {
	cross(l, out, x, z, w, h, func(_, _ int, n neighbourhood) int {
		if n.center == climateWarm && n.anyDirect(func(v int) bool {
			return v == climateCold || v == climateFreezing
		}) {
			return climateLush
		}
		return n.center
	})
}

func mapHeatIce(l *Layer, out []int, x, z, w, h int) {
	cross(l, out, x, z, w, h, func(_, _ int, n neighbourhood) int {
		if n.center == climateFreezing && n.anyDirect(func(v int) bool {
			return v == climateWarm || v == climateLush
		}) {
			return climateCold
		}
		return n.center
	})
}

// mapBiome turns climate categories into biomes. The first draw after
// seeding a cell picks the biome, so a lush cell becomes swampland exactly
// when that draw is SwampDraw.
func mapBiome(l *Layer, out []int, x, z, w, h int) {
	l.Parent.GenArea(out, x, z, w, h)
	t := l.table
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			v := out[j*w+i]
			if v == climateOcean {
				out[j*w+i] = Ocean
				continue
			}
			l.setChunkSeed(x+i, z+j)
			switch v {
			case climateWarm:
				out[j*w+i] = t.warm[l.nextInt(len(t.warm))]
			case climateLush:
				out[j*w+i] = t.lush[l.nextInt(len(t.lush))]
			case climateCold:
				out[j*w+i] = t.cold[l.nextInt(len(t.cold))]
			case climateFreezing:
				out[j*w+i] = t.snow[l.nextInt(len(t.snow))]
			}
		}
	}
}

func mapHills(l *Layer, out []int, x, z, w, h int) {
	cross(l, out, x, z, w, h, func(ax, az int, n neighbourhood) int {
		l.setChunkSeed(ax, az)
		if l.nextInt(3) != 0 {
			return n.center
		}
		hill := l.table.Hills(n.center)
		if hill == n.center {
			return n.center
		}
		if n.north == n.center && n.south == n.center && n.west == n.center && n.east == n.center {
			return hill
		}
		return n.center
	})
}

// mapHills113 is the 1.13 hills stage: identical to mapHills except that
// enclosed swamps may turn into their mutated variant.
func mapHills113(l *Layer, out []int, x, z, w, h int) {
	cross(l, out, x, z, w, h, func(ax, az int, n neighbourhood) int {
		l.setChunkSeed(ax, az)
		if l.nextInt(3) != 0 {
			return n.center
		}
		hill := l.table.Hills(n.center)
		if n.center == Swampland {
			if l.nextInt(8) != 0 {
				return n.center
			}
			hill = SwampHills
		}
		if hill == n.center {
			return n.center
		}
		if n.north == n.center && n.south == n.center && n.west == n.center && n.east == n.center {
			return hill
		}
		return n.center
	})
}

func mapSmooth(l *Layer, out []int, x, z, w, h int) {
	cross(l, out, x, z, w, h, func(ax, az int, n neighbourhood) int {
		v := n.center
		if n.west == n.east && n.north == n.south {
			l.setChunkSeed(ax, az)
			if l.nextInt(2) == 0 {
				return n.west
			}
			return n.north
		}
		if n.west == n.east {
			v = n.west
		}
		if n.north == n.south {
			v = n.north
		}
		return v
	})
}
