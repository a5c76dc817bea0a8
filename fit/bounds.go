package fit

import "math"

// Bounds builds one closed interval per base value:
//
//	[p - |p|*factor, p + |p|*factor]
//
// The half-width scales with the magnitude of the base parameter, so the
// interval stays ordered (Min <= Max) for negative bases too, and a zero
// base collapses to the single admissible point {0}.
//
// Complexity: O(len(base)).
func Bounds(base []float64, factor float64) []Bound {
	out := make([]Bound, len(base))
	for i, p := range base {
		span := math.Abs(p) * factor
		out[i] = Bound{Min: p - span, Max: p + span}
	}

	return out
}

// BoundsScaled is Bounds with a per-parameter width factor.
//
// Errors: ErrFactorLength if factors does not align with base.
func BoundsScaled(base, factors []float64) ([]Bound, error) {
	if len(factors) != len(base) {
		return nil, ErrFactorLength
	}
	out := make([]Bound, len(base))
	for i, p := range base {
		span := math.Abs(p) * factors[i]
		out[i] = Bound{Min: p - span, Max: p + span}
	}

	return out, nil
}

// Score grades a parameter vector against its bounds: 0 when every
// parameter lies inside its closed interval (edges count as inside),
// Rejected (-Inf) as soon as any parameter escapes. The verdict is
// binary; distance from the interval never matters.
//
// Errors: ErrBoundsLength if bounds does not align with params.
//
// Complexity: O(len(params)).
func Score(params []float64, bounds []Bound) (float64, error) {
	if len(bounds) != len(params) {
		return 0, ErrBoundsLength
	}
	for i, p := range params {
		if p < bounds[i].Min || p > bounds[i].Max {
			return Rejected, nil
		}
	}

	return 0, nil
}
