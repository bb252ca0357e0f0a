// Package ai implements the heuristic tetris player: board feature
// extraction, weighted evaluation and the exhaustive placement search.
package ai

import (
	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
)

// FeatureCount is the length of a feature vector.
const FeatureCount = 8

// Features is the heuristic description of a board.
type Features struct {
	FullRows         int
	Holes            int
	HoleDepth        int
	Bumpiness        int
	DeepWells        int
	DeltaHeight      int
	ShallowWells     int
	PatternDiversity int
}

// Vector returns the features in weight order: full rows, holes, hole depth,
// bumpiness, deep wells, delta height, shallow wells, pattern diversity.
func (f Features) Vector() [FeatureCount]float64 {
	return [FeatureCount]float64{
		float64(f.FullRows),
		float64(f.Holes),
		float64(f.HoleDepth),
		float64(f.Bumpiness),
		float64(f.DeepWells),
		float64(f.DeltaHeight),
		float64(f.ShallowWells),
		float64(f.PatternDiversity),
	}
}

// Extract computes every feature of b. Column heights are computed once and
// shared by the height-based features.
func Extract(b *core.Board) Features {
	heights := ColumnHeights(b)
	return Features{
		FullRows:         FullRows(b),
		Holes:            Holes(b),
		HoleDepth:        HoleDepth(b),
		Bumpiness:        Bumpiness(heights),
		DeepWells:        DeepWells(heights),
		DeltaHeight:      DeltaHeight(heights),
		ShallowWells:     ShallowWells(heights),
		PatternDiversity: PatternDiversity(heights),
	}
}

// ColumnHeights returns, per column, the distance from the floor to the top
// of the highest settled block, or 0 for an empty column.
func ColumnHeights(b *core.Board) []int {
	heights := make([]int, b.Width())
	for c := 0; c < b.Width(); c++ {
		for r := 0; r < b.Height(); r++ {
			if b.Filled(r, c) {
				heights[c] = b.Height() - r
				break
			}
		}
	}
	return heights
}

// FullRows counts rows whose every cell is settled.
func FullRows(b *core.Board) int {
	return len(b.CompletedRows())
}

// Holes counts empty cells that have a settled cell directly above them.
func Holes(b *core.Board) int {
	holes := 0
	for r := 1; r < b.Height(); r++ {
		for c := 0; c < b.Width(); c++ {
			if !b.Filled(r, c) && b.Filled(r-1, c) {
				holes++
			}
		}
	}
	return holes
}

// HoleDepth sums, for every hole, how far below its column's top block it
// sits.
func HoleDepth(b *core.Board) int {
	depth := 0
	for c := 0; c < b.Width(); c++ {
		top := -1
		for r := 0; r < b.Height(); r++ {
			if top < 0 {
				if b.Filled(r, c) {
					top = r
				}
				continue
			}
			if !b.Filled(r, c) && b.Filled(r-1, c) {
				depth += r - top
			}
		}
	}
	return depth
}

// Bumpiness sums absolute height differences of adjacent columns.
func Bumpiness(heights []int) int {
	sum := 0
	for i := 1; i < len(heights); i++ {
		sum += abs(heights[i] - heights[i-1])
	}
	return sum
}

// wellDepth returns how much lower column i is than its shallower
// neighbour. Edge columns only compare against their single neighbour.
func wellDepth(heights []int, i int) (int, bool) {
	depth, found := 0, false
	if i > 0 {
		depth, found = heights[i-1]-heights[i], true
	}
	if i < len(heights)-1 {
		right := heights[i+1] - heights[i]
		if !found || right < depth {
			depth = right
		}
		found = true
	}
	return depth, found
}

// DeepWells sums the depth of every well deeper than one row.
func DeepWells(heights []int) int {
	sum := 0
	for i := range heights {
		if d, ok := wellDepth(heights, i); ok && d > 1 {
			sum += d
		}
	}
	return sum
}

// ShallowWells counts wells exactly one row deep.
func ShallowWells(heights []int) int {
	count := 0
	for i := range heights {
		if d, ok := wellDepth(heights, i); ok && d == 1 {
			count++
		}
	}
	return count
}

// PatternDiversity counts the distinct signed height steps between adjacent
// columns.
func PatternDiversity(heights []int) int {
	if len(heights) < 2 {
		return 0
	}
	seen := intmap.New[int, struct{}](len(heights))
	for i := 1; i < len(heights); i++ {
		seen.Put(heights[i]-heights[i-1], struct{}{})
	}
	return seen.Len()
}

// DeltaHeight is the spread between the tallest and shortest column.
func DeltaHeight(heights []int) int {
	if len(heights) == 0 {
		return 0
	}
	lo, hi := heights[0], heights[0]
	for _, h := range heights[1:] {
		lo = min(lo, h)
		hi = max(hi, h)
	}
	return hi - lo
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
