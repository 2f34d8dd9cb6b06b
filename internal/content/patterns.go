package content

import (
	"math/rand"
	"slices"

	"github.com/phrazzld/lexiplay/internal/domain"
)

// patternShape describes how a level's repeating unit is built: the number
// of distinct shapes, how often the first shape repeats at the start of the
// unit, and the visible sequence length.
type patternShape struct {
	distinct int
	lead     int
	length   int
}

var patternLevels = [domain.MaxLevel + 1]patternShape{
	{distinct: 2, lead: 1, length: 4}, // AB AB
	{distinct: 2, lead: 1, length: 5}, // ABABA
	{distinct: 3, lead: 1, length: 6}, // ABC ABC
	{distinct: 2, lead: 2, length: 7}, // AAB AAB A
	{distinct: 4, lead: 1, length: 7}, // ABCD ABC
}

func buildPatternPool(level int) []domain.ShapePattern {
	spec := patternLevels[domain.ClampLevel(level)]
	shapes := domain.AllShapes()

	pool := make([]domain.ShapePattern, 0, len(shapes))
	for offset := range shapes {
		var unit []domain.Shape
		for i := 0; i < spec.lead; i++ {
			unit = append(unit, shapes[offset])
		}
		for i := 1; i < spec.distinct; i++ {
			unit = append(unit, shapes[(offset+i*2)%len(shapes)])
		}

		sequence := make([]domain.Shape, spec.length)
		for i := range sequence {
			sequence[i] = unit[i%len(unit)]
		}
		pool = append(pool, domain.ShapePattern{
			Sequence: sequence,
			Answer:   unit[spec.length%len(unit)],
		})
	}
	return pool
}

// Tile pool sizing
const (
	tilePatternsPerLevel = 8
	tileFillRatio        = 0.4
	maxGridSize          = 6
)

// GridSize returns the memory grid edge length used at a level.
func GridSize(level int) int {
	return min(3+domain.ClampLevel(level), maxGridSize)
}

func buildTilePool(level int) []domain.TilePattern {
	level = domain.ClampLevel(level)
	size := GridSize(level)
	active := int(float64(size*size)*tileFillRatio + 0.5)

	pool := make([]domain.TilePattern, 0, tilePatternsPerLevel)
	for i := 0; i < tilePatternsPerLevel; i++ {
		rng := rand.New(rand.NewSource(int64(level*1000 + i)))
		tiles := rng.Perm(size * size)[:active]
		slices.Sort(tiles)
		pool = append(pool, domain.TilePattern{GridSize: size, Tiles: tiles})
	}
	return pool
}
