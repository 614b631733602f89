package layer

// Stage identifies one layer of the stack. Stage names carry the scale the
// stage outputs at.
type Stage int

const (
	StageIsland4096 Stage = iota
	StageZoom2048
	StageAddIsland2048
	StageZoom1024
	StageAddIsland1024
	StageRemoveOcean1024
	StageSnow1024
	StageCoolWarm1024
	StageHeatIce1024
	StageZoom512
	StageZoom256
	StageAddIsland256
	StageBiome256
	StageZoom128
	StageZoom64
	StageHills64
	StageZoom32
	StageZoom16
	StageZoom8
	StageZoom4
	StageSmooth4
	StageZoom2
	StageZoom1

	numStages
)

type stageDef struct {
	scale int
	salt  int64
	fn    MapFunc
}

// baseStages is the 1.7 stack, shared by every supported version. Each
// stage's parent is the one before it.
var baseStages = [numStages]stageDef{
	StageIsland4096:      {4096, 1, mapIsland},
	StageZoom2048:        {2048, 2000, mapZoom},
	StageAddIsland2048:   {2048, 1, mapAddIsland},
	StageZoom1024:        {1024, 2001, mapZoom},
	StageAddIsland1024:   {1024, 2, mapAddIsland},
	StageRemoveOcean1024: {1024, 2, mapRemoveTooMuchOcean},
	StageSnow1024:        {1024, 2, mapSnow},
	StageCoolWarm1024:    {1024, 2, mapCoolWarm},
	StageHeatIce1024:     {1024, 2, mapHeatIce},
	StageZoom512:         {512, 2002, mapZoom},
	StageZoom256:         {256, 2003, mapZoom},
	StageAddIsland256:    {256, 4, mapAddIsland},
	StageBiome256:        {256, BiomeSalt, mapBiome},
	StageZoom128:         {128, 1000, mapZoom},
	StageZoom64:          {64, 1001, mapZoom},
	StageHills64:         {64, 1000, mapHills},
	StageZoom32:          {32, 1000, mapZoom},
	StageZoom16:          {16, 1001, mapZoom},
	StageZoom8:           {8, 1002, mapZoom},
	StageZoom4:           {4, 1003, mapZoom},
	StageSmooth4:         {4, 1000, mapSmooth},
	StageZoom2:           {2, 1004, mapZoom},
	StageZoom1:           {1, 1005, mapZoom},
}

// versionStages lists the stages a version substitutes into the base
// stack. Land biomes are unchanged since 1.7 apart from the modified
// variants the 1.13 hills stage produces.
var versionStages = map[Version]map[Stage]MapFunc{
	MC1_13:   {StageHills64: mapHills113},
	MC1_13_2: {StageHills64: mapHills113},
	MC1_14:   {StageHills64: mapHills113},
	MC1_15:   {StageHills64: mapHills113},
}

// Stack is a complete biome generator for one version.
type Stack struct {
	Version Version

	table  *Table
	layers [numStages]*Layer
}

// NewStack builds the stack for v. Entries in overrides replace the
// corresponding stage after the version's own substitutions are applied.
func NewStack(t *Table, v Version, overrides map[Stage]MapFunc) *Stack {
	s := &Stack{Version: v, table: t}
	var parent *Layer
	for st := Stage(0); st < numStages; st++ {
		def := baseStages[st]
		fn := def.fn
		if sub, ok := versionStages[v][st]; ok {
			fn = sub
		}
		if sub, ok := overrides[st]; ok {
			fn = sub
		}
		s.layers[st] = newLayer(t, def.scale, def.salt, parent, fn)
		parent = s.layers[st]
	}
	return s
}

// Layer returns the layer for a stage.
func (s *Stack) Layer(st Stage) *Layer {
	return s.layers[st]
}

// Table returns the biome table the stack was built with.
func (s *Stack) Table() *Table {
	return s.table
}

// ApplySeed seeds every stage with the world seed.
func (s *Stack) ApplySeed(seed int64) {
	s.layers[numStages-1].SetWorldSeed(seed)
}

// BiomeAt returns the full-resolution biome at block (x, z) for the seed
// last applied.
func (s *Stack) BiomeAt(x, z int) int {
	var out [1]int
	s.layers[numStages-1].GenArea(out[:], x, z, 1, 1)
	return out[0]
}
