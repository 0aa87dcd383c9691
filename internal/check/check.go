package check

import "math"

// normal draws a standard-normal sample from a uniform source using the
// Box-Muller transform. math/rand/v2 carries Float64 but no NormFloat64, so
// the transform is spelled out here rather than reaching for math/rand (v1)
// just for one distribution.
func normal(uniform func() float64) float64 {
	u1, u2 := uniform(), uniform()
	for u1 <= 0 {
		u1 = uniform()
	}
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// Roll samples a check: mean is the acting stat value, stdDev comes from
// config.Simulation.CheckStandardDeviation. uniform must return values in
// [0, 1); pass rand.Float64 from math/rand/v2 in production code, and a
// seeded stub in tests for determinism.
func Roll(mean float64, stdDev float64, d Difficulty, uniform func() float64) (int, Result) {
	sample := mean + stdDev*normal(uniform)
	total := int(math.Round(sample))
	return total, classify(total, d)
}

// OpposedTieBreak decides who wins when an opposed check ties.
type OpposedTieBreak int

const (
	// TieFavorsInitiator means the side that initiated the contest (the
	// first stat) wins ties.
	TieFavorsInitiator OpposedTieBreak = iota
	// TieFavorsDefender means the second stat wins ties.
	TieFavorsDefender
)

// Opposed rolls two checks against the same difficulty and reports which
// side (true = first, false = second) prevails, breaking ties per
// tieBreak. Both totals are returned for callers that need to render the
// margin.
func Opposed(meanA, meanB, stdDev float64, d Difficulty, tieBreak OpposedTieBreak, uniform func() float64) (firstWins bool, totalA, totalB int) {
	totalA, _ = Roll(meanA, stdDev, d, uniform)
	totalB, _ = Roll(meanB, stdDev, d, uniform)
	switch {
	case totalA > totalB:
		return true, totalA, totalB
	case totalB > totalA:
		return false, totalA, totalB
	default:
		return tieBreak == TieFavorsInitiator, totalA, totalB
	}
}
