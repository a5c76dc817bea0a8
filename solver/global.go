package solver

import (
	"fmt"

	"github.com/thermograd/gibbs/calc"
	"github.com/thermograd/gibbs/core"
	"github.com/thermograd/gibbs/equil"
)

// Global drives a full equilibrium pass: one starting point and local
// refinement per condition row of the cross product, with single-pass
// phase-set pruning in between.
//
// Pruning is the only phase-set change this driver performs: after
// refinement, sets whose fraction fell below Config.FractionTol leave
// the stable set, survivors are renormalized, and the reduced set is
// refined once more as a continuation. There are no retries and no
// re-seeding; a row that fails to converge is recorded as such and the
// pass moves on.
type Global struct {
	cfg   Config
	local *Local
}

// NewGlobal returns a batch driver with cfg normalized; the same config
// parameterizes its inner Local refiner.
func NewGlobal(cfg Config) *Global {
	cfg.normalize()

	return &Global{cfg: cfg, local: NewLocal(cfg)}
}

// SolveAll implements equil.GlobalSolver.
//
// Steps:
//  1. Validate the request; adjust (clamp) conditions.
//  2. Allocate the condition-shaped result.
//  3. Per condition row: starting point → refine → prune below
//     FractionTol → refine the survivors → record the row with
//     StatusConverged or StatusNotConverged.
//
// Errors: equil.ErrNoRecords, equil.ErrNilGrid, equil.ErrNilStarter,
// ErrNoSets, condition errors from core; starting-point and refinement
// errors pass through. Non-convergence is never an error.
//
// Complexity: O(NumConds · refinement cost).
func (g *Global) SolveAll(records []calc.PhaseRecord, conds core.Conditions, grid *calc.Grid, start equil.StartingPointer) (*equil.Result, error) {
	// 1) Request validation.
	if len(records) == 0 {
		return nil, equil.ErrNoRecords
	}
	if grid == nil {
		return nil, equil.ErrNilGrid
	}
	if start == nil {
		return nil, equil.ErrNilStarter
	}
	adjusted, err := conds.Adjust()
	if err != nil {
		return nil, err
	}
	ix, err := core.NewIndexer(adjusted)
	if err != nil {
		return nil, err
	}

	// 2) Condition-shaped result.
	var (
		res  = equil.NewResult(ix, grid.Components, grid.MaxDOF)
		full []float64
	)

	// 3) Row loop.
	for c := 0; c < ix.Len(); c++ {
		sets, rowErr := start.StartingPoint(records, adjusted, grid, c)
		if rowErr != nil {
			return nil, rowErr
		}
		if len(sets) == 0 {
			return nil, ErrNoSets
		}

		// Fixed single-valued conditions for this row.
		full = ix.At(c, full)
		rowConds := make(core.Conditions, len(full))
		for i, name := range ix.Names() {
			rowConds[name] = []float64{full[i]}
		}

		ref, rowErr := g.local.Refine(sets, rowConds)
		if rowErr != nil {
			return nil, rowErr
		}

		// Prune vanished phases and continue with the survivors.
		if kept := prune(sets, g.cfg.FractionTol); len(kept) < len(sets) {
			sets = kept
			if ref, rowErr = g.local.Refine(sets, rowConds); rowErr != nil {
				return nil, rowErr
			}
		}

		status := equil.StatusNotConverged
		if ref.Converged {
			status = equil.StatusConverged
		}
		if rowErr = res.SetRow(c, sets, status); rowErr != nil {
			return nil, rowErr
		}
		if g.cfg.Verbose {
			fmt.Printf("Global: row %d/%d, %d phases, %d iterations, %s\n",
				c+1, ix.Len(), len(sets), ref.Iterations, status)
		}
	}

	return res, nil
}

// prune drops sets whose phase fraction fell below tol and renormalizes
// the survivors to unit total. When everything is below tol the heaviest
// set is kept alone at fraction 1 (the row degenerated to one phase).
func prune(sets []*equil.CompositionSet, tol float64) []*equil.CompositionSet {
	var (
		kept  = sets[:0:len(sets)]
		total = 0.0
	)
	for _, cs := range sets {
		if cs.NP >= tol {
			kept = append(kept, cs)
			total += cs.NP
		}
	}
	if len(kept) == 0 {
		best := sets[0]
		for _, cs := range sets[1:] {
			if cs.NP > best.NP {
				best = cs
			}
		}
		best.NP = 1

		return []*equil.CompositionSet{best}
	}
	if len(kept) < len(sets) {
		for _, cs := range kept {
			cs.NP /= total
		}
	}

	return kept
}
