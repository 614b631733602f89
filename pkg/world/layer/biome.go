package layer

// Biome IDs, numbered as in the 1.7 protocol.
const (
	Ocean            = 0
	Plains           = 1
	Desert           = 2
	ExtremeHills     = 3
	Forest           = 4
	Taiga            = 5
	Swampland        = 6
	River            = 7
	FrozenOcean      = 10
	IcePlains        = 12
	IceMountains     = 13
	MushroomIsland   = 14
	DesertHills      = 17
	ForestHills      = 18
	TaigaHills       = 19
	Jungle           = 21
	JungleHills      = 22
	DeepOcean        = 24
	BirchForest      = 27
	BirchForestHills = 28
	RoofedForest     = 29
	ColdTaiga        = 30
	ColdTaigaHills   = 31
	MegaTaiga        = 32
	MegaTaigaHills   = 33
	Savanna          = 35
	SavannaPlateau   = 36

	// SwampHills is the mutated swamp variant introduced to the hills stage
	// in 1.13.
	SwampHills = Swampland + 128
)

// Climate categories produced by the snow stage before biome assignment.
const (
	climateOcean    = 0
	climateWarm     = 1
	climateLush     = 2
	climateCold     = 3
	climateFreezing = 4
)

// SwampDraw is the draw of the biome stage's NextInt(6) that turns a lush
// cell into swampland.
const SwampDraw = 5

// BiomeSalt is the salt of the 1:256 biome stage.
const BiomeSalt = 200

// Table holds the biome definitions every stage reads from. It is built once
// by Init and never modified afterwards.
type Table struct {
	names map[int]string
	hills map[int]int

	warm, lush, cold, snow []int
}

// Init builds the biome table.
func Init() *Table {
	return &Table{
		names: map[int]string{
			Ocean:            "Ocean",
			Plains:           "Plains",
			Desert:           "Desert",
			ExtremeHills:     "Extreme Hills",
			Forest:           "Forest",
			Taiga:            "Taiga",
			Swampland:        "Swampland",
			River:            "River",
			FrozenOcean:      "Frozen Ocean",
			IcePlains:        "Ice Plains",
			IceMountains:     "Ice Mountains",
			MushroomIsland:   "Mushroom Island",
			DesertHills:      "Desert Hills",
			ForestHills:      "Forest Hills",
			TaigaHills:       "Taiga Hills",
			Jungle:           "Jungle",
			JungleHills:      "Jungle Hills",
			DeepOcean:        "Deep Ocean",
			BirchForest:      "Birch Forest",
			BirchForestHills: "Birch Forest Hills",
			RoofedForest:     "Roofed Forest",
			ColdTaiga:        "Cold Taiga",
			ColdTaigaHills:   "Cold Taiga Hills",
			MegaTaiga:        "Mega Taiga",
			MegaTaigaHills:   "Mega Taiga Hills",
			Savanna:          "Savanna",
			SavannaPlateau:   "Savanna Plateau",
			SwampHills:       "Swampland M",
		},
		hills: map[int]int{
			Desert:      DesertHills,
			Forest:      ForestHills,
			BirchForest: BirchForestHills,
			Taiga:       TaigaHills,
			MegaTaiga:   MegaTaigaHills,
			ColdTaiga:   ColdTaigaHills,
			IcePlains:   IceMountains,
			Jungle:      JungleHills,
			Savanna:     SavannaPlateau,
			Plains:      Forest,
		},
		warm: []int{Desert, Desert, Desert, Savanna, Savanna, Plains},
		lush: []int{Forest, RoofedForest, ExtremeHills, Plains, BirchForest, Swampland},
		cold: []int{Forest, ExtremeHills, Taiga, Plains},
		snow: []int{IcePlains, IcePlains, IcePlains, ColdTaiga},
	}
}

// Name returns the display name of a biome ID.
func (t *Table) Name(id int) string {
	if n, ok := t.names[id]; ok {
		return n
	}
	return "Unknown"
}

// Hills returns the hill variant of id, or id itself when it has none.
func (t *Table) Hills(id int) int {
	if h, ok := t.hills[id]; ok {
		return h
	}
	return id
}

// IsOceanic reports whether id is one of the ocean biomes.
func IsOceanic(id int) bool {
	return id == Ocean || id == DeepOcean || id == FrozenOcean
}
