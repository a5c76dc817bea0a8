// Package solver provides the default numerical backends behind the
// capability interfaces of package equil: local refinement, mass-balanced
// starting points, and the batch global driver.
//
// What:
//
//   - Local (equil.Solver): refines composition sets in place by
//     minimizing Σ NPᵢ·GMᵢ + w·Σ (X_mix − X_target)² with softmax-reduced
//     coordinates and analytic gradients, via gonum optimize (BFGS, or
//     Nelder–Mead with Config.DerivativeFree).
//   - LPStart (equil.StartingPointer): picks a mass-balance-feasible
//     multi-phase support by linear programming over the evaluated grid
//     (gonum lp.Simplex), falling back to the global-cheapest single set
//     when there is nothing to balance or the LP cannot be solved.
//   - Global (equil.GlobalSolver): one starting point and refinement per
//     condition row, with single-pass pruning of vanished phases.
//
// Quick start:
//
//	cfg := solver.DefaultConfig()
//	res, err := equil.Equilibrium(records, conds, grid,
//	    solver.NewLPStart(cfg), solver.NewGlobal(cfg))
//
// Convergence policy:
//
// Numerical failure is a result, not an error. Iteration limits and
// composition residuals beyond Config.ConstraintTol surface as
// Converged=false, LP infeasibility as a fallback starting point, and a
// line search stalling at floating-point precision counts as ordinary
// termination. Errors are reserved for malformed requests (nil grids,
// unknown components, batch conditions on a single-point path) and for
// records rejecting evaluation outright.
//
// Determinism:
//
// Identical inputs produce identical outputs: no randomness, sorted
// component and phase orders, first-occurrence tie-breaks, and the
// optimizer always seeds its starting state from the sets themselves.
//
// Errors:
//
//   - ErrNoSets, ErrNilSet: malformed set slices.
//   - ErrBatchConditions: multi-valued conditions on a refinement path.
//   - ErrUnknownComponent: composition condition over a species no phase
//     model carries.
//   - Contract errors (equil.ErrNoRecords, equil.ErrNilGrid,
//     equil.ErrConditionRow, equil.ErrUnknownPhase) are returned from
//     package equil directly.
package solver
