// Package sample defines options and sentinel errors for constitution
// sampling.
package sample

import "errors"

// Sentinel errors for sampling operations.
var (
	// ErrNilPhase indicates a nil phase was supplied.
	ErrNilPhase = errors.New("sample: phase must be non-nil")
	// ErrBadDensity indicates a negative point density.
	ErrBadDensity = errors.New("sample: density must be non-negative")
	// ErrPointLength indicates an override point whose length differs from
	// the phase's internal DOF.
	ErrPointLength = errors.New("sample: point length must equal phase internal DOF")
	// ErrPointRange indicates an occupancy outside [0, 1] or non-finite.
	ErrPointRange = errors.New("sample: occupancies must be finite and lie in [0, 1]")
	// ErrPointSum indicates a sublattice whose occupancies do not sum to 1.
	ErrPointSum = errors.New("sample: sublattice occupancies must sum to 1")
)

// DefaultDensity is the number of additional simplex points generated per
// phase beyond the endmembers.
const DefaultDensity = 50

// SumTolerance is the acceptance band for per-sublattice occupancy sums
// when validating caller-supplied points.
const SumTolerance = 1e-8

// Options configures constitution sampling.
//
// Fields:
//   - Density      — extra low-discrepancy points beyond the endmembers.
//     0 yields endmembers only. Ignored for stoichiometric phases.
//   - HaltonOffset — starting offset into the Halton stream. Two calls
//     with different offsets cover different simplex regions, while equal
//     offsets reproduce identical points.
//   - Points       — explicit caller-supplied point set. When non-nil,
//     sampling is bypassed entirely: the points are validated against the
//     phase and returned (copied) as-is. Used when informative points are
//     already known, e.g. from a previous refinement.
//
// Example:
//
//	opts := sample.DefaultOptions()
//	opts.Density = 200
//	pts, err := sample.Constitution(ph, opts)
type Options struct {
	Density      int
	HaltonOffset int
	Points       [][]float64
}

// DefaultOptions returns the standard sampling configuration:
// Density=DefaultDensity, HaltonOffset=0, no override points.
func DefaultOptions() Options {
	return Options{Density: DefaultDensity}
}
