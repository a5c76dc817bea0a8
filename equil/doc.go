// Package equil drives equilibrium refinement: starting-point selection
// over an evaluated grid, constrained single-set solves, batched global
// solves, and the no-refinement shortcut.
//
// What:
//
//   - CompositionSet is the mutable unit of solver state: one phase's
//     internal coordinates, phase fraction, and cached energy/gradient.
//   - SinglePhaseStart picks the globally cheapest physical grid point
//     and wraps it in one composition set with fraction 1.0.
//   - Constrained refines that single set in place under fixed
//     single-valued conditions and reports (converged, NP×energy).
//   - Equilibrium delegates a possibly batched condition map to a
//     GlobalSolver, producing a grid-shaped Result of converged states.
//   - NoRefinement produces the same starting-stage Result without ever
//     invoking a solver, for coarse screening passes.
//
// Solver backends plug in through small capability interfaces (Solver,
// StartingPointer, GlobalSolver); package solver provides the defaults.
//
// State machine, per call:
//
//	SAMPLED → STARTED → (CONVERGED | NOT_CONVERGED)
//
// There are no retries here: a failed convergence is encoded in the
// result (never thrown) and the outer fitting loop decides what to do
// with that parameter set.
//
// The cheap path is deliberately approximate: SinglePhaseStart ignores
// overall mass balance (it is a local heuristic, not an equilibrium
// guess), and Constrained refines exactly one composition set. Both are
// documented behavior, not accidents; the mass-balanced multi-phase
// start lives behind StartingPointer.
//
// Errors:
//
//   - ErrNilGrid, ErrEmptyGrid, ErrNoRecords, ErrNilSolver, ErrNilStarter:
//     malformed request.
//   - ErrBatchConditions: Constrained/SinglePhaseStart with multi-valued
//     conditions.
//   - ErrUnknownPhase: a grid point labeled with a phase no record covers.
//   - ErrTooManyPhases: more stable phases than a result row can hold.
package equil
