package ai

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrWeightCount is returned when a weight vector does not have one entry
// per feature.
var ErrWeightCount = errors.New("ai: weight vector must have 8 entries")

// Weights scores a Features vector as a dot product. Entries follow the
// order of Features.Vector.
type Weights [FeatureCount]float64

// DefaultWeights rewards cleared rows and penalises holes, jagged surfaces
// and tall stacks.
var DefaultWeights = Weights{1.0, -1.0, -0.5, -0.5, -0.5, -0.5, -0.1, -0.2}

// FeatureNames labels each weight slot.
var FeatureNames = [FeatureCount]string{
	"full_rows",
	"holes",
	"hole_depth",
	"bumpiness",
	"deep_wells",
	"delta_height",
	"shallow_wells",
	"pattern_diversity",
}

// ParseWeights converts a slice into Weights, failing on any length other
// than FeatureCount.
func ParseWeights(values []float64) (Weights, error) {
	var w Weights
	if len(values) != FeatureCount {
		return w, fmt.Errorf("%w: got %d", ErrWeightCount, len(values))
	}
	copy(w[:], values)
	return w, nil
}

// Score returns the weighted sum of f.
func (w Weights) Score(f Features) float64 {
	v := f.Vector()
	total := 0.0
	for i := range w {
		total += w[i] * v[i]
	}
	return total
}

// String formats the weights as a comma separated list, the same form
// ParseWeightString accepts.
func (w Weights) String() string {
	parts := make([]string, len(w))
	for i, v := range w {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

// ParseWeightString parses a comma separated weight list.
func ParseWeightString(s string) (Weights, error) {
	fields := strings.Split(s, ",")
	values := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return Weights{}, fmt.Errorf("ai: invalid weight %q: %w", f, err)
		}
		values = append(values, v)
	}
	return ParseWeights(values)
}
