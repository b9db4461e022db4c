package economy

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// LaborMarket models how strong the candidate pool is on a given day.
// Quality drifts smoothly from day to day instead of jumping, so a good
// hiring week tends to stay good for a while.
type LaborMarket struct {
	noise opensimplex.Noise
	// Spread is the largest efficiency shift, in points, applied to candidates.
	Spread int
}

// NewLaborMarket creates a labor market from a seed.
func NewLaborMarket(seed int64) *LaborMarket {
	return &LaborMarket{
		noise:  opensimplex.NewNormalized(seed),
		Spread: 5,
	}
}

// Quality returns the pool quality for a day in [0, 1]; 0.5 is neutral.
func (m *LaborMarket) Quality(day int) float64 {
	if m == nil {
		return 0.5
	}
	q := octaveNoise(m.noise, float64(day), 0, 3, 0.08, 0.5)
	return math.Max(0, math.Min(1, q))
}

// EfficiencyShift converts the day's quality into a whole-point efficiency
// adjustment in [-Spread, Spread].
func (m *LaborMarket) EfficiencyShift(day int) int {
	if m == nil {
		return 0
	}
	return int(math.Round((m.Quality(day) - 0.5) * 2 * float64(m.Spread)))
}

// octaveNoise layers several frequencies of noise.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
