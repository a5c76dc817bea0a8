package solver

import (
	"errors"
)

// Sentinel errors for solver requests. Contract-level errors shared with
// the interfaces in package equil (ErrNoRecords, ErrNilGrid,
// ErrConditionRow, ErrUnknownPhase) are returned from that package
// directly, the way io implementations return io.EOF.
var (
	// ErrNoSets indicates Refine was called with no composition sets.
	ErrNoSets = errors.New("solver: at least one composition set required")
	// ErrNilSet indicates a nil entry in the composition-set slice.
	ErrNilSet = errors.New("solver: composition sets must be non-nil")
	// ErrBatchConditions indicates multi-valued conditions on a refinement
	// path; refinement operates on one condition point at a time.
	ErrBatchConditions = errors.New("solver: refinement requires single-valued conditions")
	// ErrUnknownComponent indicates a composition condition naming a
	// species absent from every supplied phase model.
	ErrUnknownComponent = errors.New("solver: composition condition names an unknown component")
)

// Config tunes the numerical backends.
//   - MaxIterations: optimizer major-iteration cap (default 200). Hitting
//     it encodes non-convergence; it is never an error.
//   - GradientTolerance: stationarity threshold on ‖∇F‖∞ (default 1e-8).
//   - FunctionTolerance: absolute objective-change convergence threshold
//     (default 1e-12).
//   - ConstraintWeight: quadratic penalty weight on overall-composition
//     residuals (default 1e8).
//   - ConstraintTol: largest |X_mix − X_target| still accepted as
//     converged (default 1e-4).
//   - FractionTol: phase-fraction floor; starting-point support below it
//     is discarded and refined sets below it leave the stable set
//     (default 1e-4).
//   - DerivativeFree: refine with Nelder–Mead instead of BFGS.
//   - KeepTrace: record the objective value at every major iteration.
//   - Verbose: print per-stage progress.
type Config struct {
	MaxIterations     int
	GradientTolerance float64
	FunctionTolerance float64
	ConstraintWeight  float64
	ConstraintTol     float64
	FractionTol       float64
	DerivativeFree    bool
	KeepTrace         bool
	Verbose           bool
}

// DefaultConfig returns production-safe defaults.
func DefaultConfig() Config {
	return Config{
		MaxIterations:     200,
		GradientTolerance: 1e-8,
		FunctionTolerance: 1e-12,
		ConstraintWeight:  1e8,
		ConstraintTol:     1e-4,
		FractionTol:       1e-4,
	}
}

// normalize fills zero or negative numeric fields with defaults.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.MaxIterations <= 0 {
		c.MaxIterations = def.MaxIterations
	}
	if c.GradientTolerance <= 0 {
		c.GradientTolerance = def.GradientTolerance
	}
	if c.FunctionTolerance <= 0 {
		c.FunctionTolerance = def.FunctionTolerance
	}
	if c.ConstraintWeight <= 0 {
		c.ConstraintWeight = def.ConstraintWeight
	}
	if c.ConstraintTol <= 0 {
		c.ConstraintTol = def.ConstraintTol
	}
	if c.FractionTol <= 0 {
		c.FractionTol = def.FractionTol
	}
}
