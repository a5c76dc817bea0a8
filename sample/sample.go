package sample

import (
	"math"

	"gonum.org/v1/gonum/stat/combin"

	"github.com/thermograd/gibbs/core"
)

// Constitution produces the candidate internal-coordinate point set for
// one phase.
//
// Description:
//
//	The set seeds a minimum-energy search, so it always contains every
//	pure endmember (the corners of each sublattice simplex) plus
//	opts.Density additional points spread over the interior by a Halton
//	low-discrepancy stream mapped through the exponential-spacing
//	transform (u → −ln u, normalized per sublattice), which distributes
//	points uniformly over each occupancy simplex.
//
// Steps:
//  1. If opts.Points is non-nil, validate the override against the phase
//     shape (length, range, per-sublattice sums within SumTolerance) and
//     return a copy, bypassing sampling entirely.
//  2. Enumerate endmembers in cartesian order over the sorted
//     constituents of each sublattice.
//  3. For a stoichiometric phase (zero free DOF) stop: the single
//     endmember is the whole configuration space.
//  4. Append opts.Density interior points; point n uses Halton index
//     opts.HaltonOffset+n+1 with one prime base per mixing coordinate.
//
// Determinism: no RNG; identical inputs give bit-identical output.
//
// Errors: ErrNilPhase, ErrBadDensity, and the override validation
// sentinels ErrPointLength, ErrPointRange, ErrPointSum.
//
// Complexity: O((E+Density)·D) for E endmembers, D internal DOF.
func Constitution(ph *core.Phase, opts Options) ([][]float64, error) {
	if ph == nil {
		return nil, ErrNilPhase
	}

	// 1) Caller override: validate and copy, no sampling.
	if opts.Points != nil {
		if err := ValidatePoints(ph, opts.Points, SumTolerance); err != nil {
			return nil, err
		}
		out := make([][]float64, len(opts.Points))
		for i, p := range opts.Points {
			cp := make([]float64, len(p))
			copy(cp, p)
			out[i] = cp
		}

		return out, nil
	}
	if opts.Density < 0 {
		return nil, ErrBadDensity
	}

	// 2) Endmember corners, cartesian order.
	pts, err := Endmembers(ph)
	if err != nil {
		return nil, err
	}

	// 3) Stoichiometric phases have nothing else to sample.
	if ph.FreeDOF() == 0 {
		return pts, nil
	}

	// 4) Low-discrepancy interior fill.
	return append(pts, simplexFill(ph, opts.Density, opts.HaltonOffset)...), nil
}

// Endmembers enumerates the pure-constituent corner points of ph in
// cartesian order over the sorted constituents of each sublattice. The
// occupied constituent receives 1−(k−1)·MinSiteFraction and the remaining
// k−1 receive MinSiteFraction, keeping y·ln(y) finite at the corners.
//
// Complexity: O(E·D).
func Endmembers(ph *core.Phase) ([][]float64, error) {
	if ph == nil {
		return nil, ErrNilPhase
	}

	var (
		subls = ph.Sublattices()
		lens  = make([]int, len(subls))
	)
	for i, sl := range subls {
		lens[i] = len(sl.Species)
	}

	combos := combin.Cartesian(lens)
	out := make([][]float64, len(combos))
	for c, combo := range combos {
		pt := make([]float64, 0, ph.InternalDOF())
		for s, sl := range subls {
			k := len(sl.Species)
			for j := 0; j < k; j++ {
				switch {
				case k == 1:
					pt = append(pt, 1)
				case j == combo[s]:
					pt = append(pt, 1-float64(k-1)*core.MinSiteFraction)
				default:
					pt = append(pt, core.MinSiteFraction)
				}
			}
		}
		out[c] = pt
	}

	return out, nil
}

// ValidatePoints checks a caller-supplied point set against ph: every
// point must have length ph.InternalDOF(), every occupancy must be finite
// in [0, 1], and each sublattice block must sum to 1 within tol.
//
// Errors: ErrNilPhase, ErrPointLength, ErrPointRange, ErrPointSum.
//
// Complexity: O(P·D).
func ValidatePoints(ph *core.Phase, pts [][]float64, tol float64) error {
	if ph == nil {
		return ErrNilPhase
	}

	subls := ph.Sublattices()
	for _, pt := range pts {
		if len(pt) != ph.InternalDOF() {
			return ErrPointLength
		}
		at := 0
		for _, sl := range subls {
			sum := 0.0
			for j := 0; j < len(sl.Species); j++ {
				y := pt[at]
				at++
				if math.IsNaN(y) || y < 0 || y > 1 {
					return ErrPointRange
				}
				sum += y
			}
			if math.Abs(sum-1) > tol {
				return ErrPointSum
			}
		}
	}

	return nil
}

// simplexFill generates density interior points for a phase with free DOF.
// Point n draws one Halton value per mixing coordinate at index
// offset+n+1, maps each through −ln, and normalizes per sublattice; the
// result is floored at MinSiteFraction with the excess taken back from the
// largest coordinate, so sums stay exactly 1.
func simplexFill(ph *core.Phase, density, offset int) [][]float64 {
	subls := ph.Sublattices()

	// One prime base per mixing coordinate, shared across all points.
	nmix := 0
	for _, sl := range subls {
		if len(sl.Species) > 1 {
			nmix += len(sl.Species)
		}
	}
	bases := primes(nmix)

	out := make([][]float64, 0, density)
	for n := 0; n < density; n++ {
		var (
			idx = offset + n + 1
			pt  = make([]float64, 0, ph.InternalDOF())
			d   = 0
		)
		for _, sl := range subls {
			k := len(sl.Species)
			if k == 1 {
				pt = append(pt, 1)

				continue
			}

			// Exponential spacing: −ln(u) of k Halton draws, normalized,
			// covers the k-simplex uniformly.
			start := len(pt)
			sum := 0.0
			for j := 0; j < k; j++ {
				x := -math.Log(halton(idx, bases[d]))
				d++
				pt = append(pt, x)
				sum += x
			}

			var (
				maxAt = start
				total = 0.0
			)
			for j := start; j < len(pt); j++ {
				pt[j] /= sum
				if pt[j] < core.MinSiteFraction {
					pt[j] = core.MinSiteFraction
				}
				if pt[j] > pt[maxAt] {
					maxAt = j
				}
				total += pt[j]
			}
			// Re-balance the flooring excess into the largest coordinate.
			pt[maxAt] -= total - 1
		}
		out = append(out, pt)
	}

	return out
}

// halton returns element index of the van der Corput sequence in the
// given base, in (0, 1) for index ≥ 1.
func halton(index, base int) float64 {
	var (
		f = 1.0
		r = 0.0
	)
	for i := index; i > 0; i /= base {
		f /= float64(base)
		r += f * float64(i%base)
	}

	return r
}

// primes returns the first n primes by trial division; n is tiny (one per
// mixing coordinate), so simplicity beats a sieve.
func primes(n int) []int {
	out := make([]int, 0, n)
	for cand := 2; len(out) < n; cand++ {
		isPrime := true
		for _, p := range out {
			if p*p > cand {
				break
			}
			if cand%p == 0 {
				isPrime = false

				break
			}
		}
		if isPrime {
			out = append(out, cand)
		}
	}

	return out
}
