// Package equil defines composition sets, solver capability interfaces,
// statuses, and sentinel errors for the equil subpackage of
// github.com/thermograd/gibbs.
package equil

import (
	"errors"

	"github.com/thermograd/gibbs/calc"
	"github.com/thermograd/gibbs/core"
)

// Sentinel errors for equilibrium orchestration.
var (
	// ErrNilGrid indicates a nil evaluated grid.
	ErrNilGrid = errors.New("equil: grid must be non-nil")
	// ErrEmptyGrid indicates a grid with no physical points to select.
	ErrEmptyGrid = errors.New("equil: grid must contain at least one physical point")
	// ErrNoRecords indicates an empty phase-record list.
	ErrNoRecords = errors.New("equil: at least one phase record required")
	// ErrNilSolver indicates a nil refinement backend.
	ErrNilSolver = errors.New("equil: solver must be non-nil")
	// ErrNilStarter indicates a nil starting-point backend.
	ErrNilStarter = errors.New("equil: starting-point policy must be non-nil")
	// ErrBatchConditions indicates multi-valued conditions where a single
	// point was required.
	ErrBatchConditions = errors.New("equil: conditions must be single-valued")
	// ErrConditionRow indicates a condition row index outside the cross
	// product, or one whose state-variable values are not on the grid.
	ErrConditionRow = errors.New("equil: condition row not on the grid")
	// ErrUnknownPhase indicates a grid point whose phase label matches no
	// supplied record.
	ErrUnknownPhase = errors.New("equil: grid point references an unknown phase record")
	// ErrTooManyPhases indicates a starting point with more composition
	// sets than a result row can hold.
	ErrTooManyPhases = errors.New("equil: more stable phases than result vertices")
)

// Status is the per-condition progress of an equilibrium call.
//
// The machine is linear and retry-free:
//
//	StatusSampled → StatusStarted → (StatusConverged | StatusNotConverged)
type Status int

const (
	// StatusSampled: the grid exists, no starting point chosen yet.
	StatusSampled Status = iota
	// StatusStarted: a starting point was selected; not yet refined.
	StatusStarted
	// StatusConverged: refinement met its stationarity criterion.
	StatusConverged
	// StatusNotConverged: refinement exhausted its limits first.
	StatusNotConverged
)

// String renders the status for logs and test output.
func (s Status) String() string {
	switch s {
	case StatusSampled:
		return "SAMPLED"
	case StatusStarted:
		return "STARTED"
	case StatusConverged:
		return "CONVERGED"
	case StatusNotConverged:
		return "NOT_CONVERGED"
	default:
		return "UNKNOWN"
	}
}

// Refinement reports one solver invocation.
type Refinement struct {
	// Converged is true when the stationarity criterion was met within
	// the configured limits.
	Converged bool
	// Iterations is the iteration count consumed.
	Iterations int
}

// Solver is the local refinement capability: mutate the given composition
// sets in place toward a stationary point under fixed single-valued
// conditions. Non-convergence is encoded in the Refinement, not the
// error; errors are reserved for structural misuse.
type Solver interface {
	Refine(sets []*CompositionSet, conds core.Conditions) (Refinement, error)
}

// StartingPointer builds a mass-balance-feasible multi-phase starting
// point for condition row c of the grid. It is the opaque collaborator
// behind the full equilibrium path; SinglePhaseStart is the cheap
// single-set alternative.
type StartingPointer interface {
	StartingPoint(records []calc.PhaseRecord, conds core.Conditions, grid *calc.Grid, c int) ([]*CompositionSet, error)
}

// StartFunc adapts a plain function to the StartingPointer interface.
type StartFunc func(records []calc.PhaseRecord, conds core.Conditions, grid *calc.Grid, c int) ([]*CompositionSet, error)

// StartingPoint calls f.
func (f StartFunc) StartingPoint(records []calc.PhaseRecord, conds core.Conditions, grid *calc.Grid, c int) ([]*CompositionSet, error) {
	return f(records, conds, grid, c)
}

// GlobalSolver handles a full, possibly batched solve: starting points
// per condition row, refinement with phase-set changes (phases entering
// and leaving the stable set), and assembly into a grid-shaped Result.
type GlobalSolver interface {
	SolveAll(records []calc.PhaseRecord, conds core.Conditions, grid *calc.Grid, start StartingPointer) (*Result, error)
}
