package solver

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/thermograd/gibbs/calc"
	"github.com/thermograd/gibbs/core"
	"github.com/thermograd/gibbs/equil"
)

// lpTol is the pivot tolerance handed to lp.Simplex.
const lpTol = 1e-10

// LPStart builds mass-balance-feasible multi-phase starting points by
// linear programming over the evaluated grid.
//
// For condition row c it solves
//
//	min Σₖ fₖ·GMₖ   s.t.   Σₖ fₖ·Xₖ,c = X_target,c  (per condition)
//	                        Σₖ fₖ = 1,   fₖ ≥ 0
//
// over the physical grid points k of that row. Injected reference points
// are excluded (they are tagged non-physical and bound to no record), as
// are points with non-finite values. The support of the basic solution —
// at most one point per constraint plus one — becomes the starting
// composition sets, fractions renormalized over the surviving support.
//
// Degraded paths fall back to the global-cheapest single set: condition
// maps without composition conditions (nothing to balance), rows with no
// usable points, and LP failures (infeasible targets outside the sampled
// composition hull, unbounded or singular systems). The engine prefers a
// crude start over refusing to start; refinement then reports whatever
// convergence it honestly reaches.
type LPStart struct {
	cfg Config
}

// NewLPStart returns a starting-point builder with cfg normalized.
func NewLPStart(cfg Config) *LPStart {
	cfg.normalize()

	return &LPStart{cfg: cfg}
}

// StartingPoint implements equil.StartingPointer.
//
// Steps:
//  1. Validate the request and locate the grid value row for condition
//     row c (the grid may span fewer axes than the condition map).
//  2. Resolve composition conditions against the grid's component
//     universe; none present ⇒ cheapest-single fallback.
//  3. Collect physical, finite candidate points.
//  4. Solve the standard-form LP; failures fall back.
//  5. Wrap the support in composition sets bound to their records,
//     refreshed at the row's true state variables.
//
// Errors: equil.ErrNoRecords, equil.ErrNilGrid, equil.ErrConditionRow,
// equil.ErrUnknownPhase, ErrUnknownComponent; record evaluation errors
// pass through. LP infeasibility is not an error.
func (sp *LPStart) StartingPoint(records []calc.PhaseRecord, conds core.Conditions, grid *calc.Grid, c int) ([]*equil.CompositionSet, error) {
	// 1) Request validation and row mapping.
	if len(records) == 0 {
		return nil, equil.ErrNoRecords
	}
	if grid == nil {
		return nil, equil.ErrNilGrid
	}
	ix, err := core.NewIndexer(conds)
	if err != nil {
		return nil, err
	}
	if c < 0 || c >= ix.Len() {
		return nil, equil.ErrConditionRow
	}
	row := grid.RowIndex(ix.Names(), ix.At(c, nil))
	if row < 0 {
		return nil, equil.ErrConditionRow
	}

	// 2) Composition targets → grid component columns.
	var (
		full    = ix.At(c, nil)
		targets []float64
		cols    []int
	)
	for i, name := range ix.Names() {
		if !core.IsComposition(name) {
			continue
		}
		var (
			species = core.CompositionSpecies(name)
			col     = -1
		)
		for j, comp := range grid.Components {
			if comp == species {
				col = j

				break
			}
		}
		if col < 0 {
			return nil, ErrUnknownComponent
		}
		targets = append(targets, full[i])
		cols = append(cols, col)
	}
	if len(targets) == 0 {
		if sp.cfg.Verbose {
			fmt.Println("LPStart: no composition conditions, cheapest-single start")
		}

		return equil.CheapestStart{}.StartingPoint(records, conds, grid, c)
	}

	// 3) Candidate points: physical with finite values.
	var (
		values = grid.Row(row)
		phys   = make([]int, 0, grid.Points)
	)
	for p := 0; p < grid.Points; p++ {
		if grid.Fake[p] || math.IsNaN(values[p]) || math.IsInf(values[p], 0) {
			continue
		}
		phys = append(phys, p)
	}
	if len(phys) == 0 {
		return equil.CheapestStart{}.StartingPoint(records, conds, grid, c)
	}

	// 4) Standard-form LP over the candidates.
	var (
		m    = len(targets)
		n    = len(phys)
		cost = make([]float64, n)
		a    = mat.NewDense(m+1, n, nil)
		b    = make([]float64, m+1)
	)
	for k, p := range phys {
		cost[k] = values[p]
		x := grid.XAt(p)
		for j, col := range cols {
			a.Set(j, k, x[col])
		}
		a.Set(m, k, 1)
	}
	copy(b, targets)
	b[m] = 1

	_, frac, lpErr := lp.Simplex(cost, a, b, lpTol, nil)
	if lpErr != nil {
		if sp.cfg.Verbose {
			fmt.Printf("LPStart: %v, cheapest-single start\n", lpErr)
		}

		return equil.CheapestStart{}.StartingPoint(records, conds, grid, c)
	}

	// 5) Support → composition sets, fractions renormalized.
	byName := make(map[string]calc.PhaseRecord, len(records))
	for _, rec := range records {
		if rec != nil {
			byName[rec.Phase().Name()] = rec
		}
	}

	var (
		support []int
		total   = 0.0
	)
	for k, f := range frac {
		if f > sp.cfg.FractionTol {
			support = append(support, k)
			total += f
		}
	}
	if len(support) == 0 {
		// Pathologically spread solution: keep the heaviest point.
		best := 0
		for k, f := range frac {
			if f > frac[best] {
				best = k
			}
		}
		support = []int{best}
		total = frac[best]
	}

	var (
		statevars = equil.StateVarValues(ix, c, nil)
		sets      = make([]*equil.CompositionSet, 0, len(support))
	)
	for _, k := range support {
		p := phys[k]
		rec, ok := byName[grid.Phases[p]]
		if !ok {
			return nil, equil.ErrUnknownPhase
		}
		cs, csErr := equil.NewCompositionSet(rec)
		if csErr != nil {
			return nil, csErr
		}
		if err = cs.Update(grid.YAt(p)[:rec.DOF()], frac[k]/total, statevars); err != nil {
			return nil, err
		}
		sets = append(sets, cs)
	}
	if sp.cfg.Verbose {
		fmt.Printf("LPStart: row %d, %d candidate points, %d-phase support\n", row, n, len(sets))
	}

	return sets, nil
}
