package equil

import (
	"github.com/thermograd/gibbs/calc"
	"github.com/thermograd/gibbs/core"
)

// Constrained performs a cheap constrained equilibrium: one composition
// set, fixed single-valued conditions, local refinement in place.
//
// Description:
//
//	This is deliberately a single-phase-constrained approximation, not
//	a true multi-phase equilibrium: the starting set comes from the
//	global-cheapest selection (mass-balance-agnostic) and the solver
//	refines exactly that one set. The returned energy is
//	NP × composition energy of the refined set.
//
// Steps:
//  1. Validate the solver and adjust conditions (composition clamping,
//     shape checks).
//  2. Require single-valued conditions; no batching on this path.
//  3. Select the starting set via SinglePhaseStart.
//  4. Refine in place via slv. Non-convergence is encoded in the
//     returned flag, never as an error; there are no retries.
//
// Errors: ErrNilSolver, condition errors from core, and the
// SinglePhaseStart sentinels. Solver structural errors pass through.
//
// Complexity: O(Points) selection plus the solver's own cost.
func Constrained(records []calc.PhaseRecord, conds core.Conditions, grid *calc.Grid, slv Solver) (converged bool, energy float64, err error) {
	// 1) Request validation.
	if slv == nil {
		return false, 0, ErrNilSolver
	}
	adjusted, err := conds.Adjust()
	if err != nil {
		return false, 0, err
	}

	// 2) Point calculation only.
	if !adjusted.SinglePoint() {
		return false, 0, ErrBatchConditions
	}

	// 3) Global-cheapest single-set start.
	cs, err := SinglePhaseStart(records, adjusted, grid)
	if err != nil {
		return false, 0, err
	}

	// 4) In-place refinement; failure is a result, not an error.
	ref, err := slv.Refine([]*CompositionSet{cs}, adjusted)
	if err != nil {
		return false, 0, err
	}

	return ref.Converged, cs.WeightedEnergy(), nil
}

// Equilibrium performs the full equilibrium pass: a mass-balanced
// multi-phase starting point per condition row, refined by a global
// solver that handles phase-set changes, over a possibly batched
// condition map (full cross product).
//
// The heavy lifting is delegated: start supplies per-row starting
// points, gs drives refinement and assembles the grid-shaped Result.
// Conditions are adjusted (composition clamping) before delegation, so
// backends always see cleaned maps.
//
// Errors: ErrNoRecords, ErrNilGrid, ErrNilStarter, ErrNilSolver,
// condition errors from core; backend structural errors pass through.
func Equilibrium(records []calc.PhaseRecord, conds core.Conditions, grid *calc.Grid, start StartingPointer, gs GlobalSolver) (*Result, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	if grid == nil {
		return nil, ErrNilGrid
	}
	if start == nil {
		return nil, ErrNilStarter
	}
	if gs == nil {
		return nil, ErrNilSolver
	}
	adjusted, err := conds.Adjust()
	if err != nil {
		return nil, err
	}

	return gs.SolveAll(records, adjusted, grid, start)
}

// NoRefinement is the no-solve shortcut: identical inputs to Equilibrium
// minus the solver, returning the starting-point stage directly as the
// "equilibrium" result. Rows carry StatusStarted and the mixture energy
// of the unrefined starting sets. No solver is ever invoked; use it for
// coarse screening passes where refinement cost is not justified.
//
// For identical inputs its output equals the starting stage of the full
// Equilibrium path: both adjust conditions the same way and consult the
// same StartingPointer per condition row.
//
// Errors: ErrNoRecords, ErrNilGrid, ErrNilStarter, ErrTooManyPhases,
// condition errors from core; starting-point errors pass through.
//
// Complexity: O(NumConds · starting-point cost).
func NoRefinement(records []calc.PhaseRecord, conds core.Conditions, grid *calc.Grid, start StartingPointer) (*Result, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	if grid == nil {
		return nil, ErrNilGrid
	}
	if start == nil {
		return nil, ErrNilStarter
	}
	adjusted, err := conds.Adjust()
	if err != nil {
		return nil, err
	}
	ix, err := core.NewIndexer(adjusted)
	if err != nil {
		return nil, err
	}

	res := NewResult(ix, grid.Components, grid.MaxDOF)
	for c := 0; c < ix.Len(); c++ {
		sets, err := start.StartingPoint(records, adjusted, grid, c)
		if err != nil {
			return nil, err
		}
		if err = res.SetRow(c, sets, StatusStarted); err != nil {
			return nil, err
		}
	}

	return res, nil
}
