package equil

import (
	"github.com/thermograd/gibbs/calc"
	"github.com/thermograd/gibbs/core"
)

// SinglePhaseStart selects the globally cheapest physical grid point and
// wraps it in one composition set with phase fraction 1.0.
//
// Description:
//
//	This is the fast-path selection policy: a local, mass-balance-
//	agnostic heuristic, not a true equilibrium guess. The selected
//	point may be arbitrarily far from any overall-composition
//	condition; it is simply the minimum of the evaluated property over
//	the whole grid (ties broken by first occurrence in the sorted-
//	phase, sampling order). Injected reference points are excluded:
//	they are tagged non-physical and bound to no record.
//
// Failure mode:
//
//	When every physical point carries the large-energy sentinel, the
//	minimum is still selected and the set is built around it; the
//	subsequent refinement then reliably fails to converge. This is
//	intentional fail-fast behavior, not an error path.
//
// Steps:
//  1. Validate shapes: records present, grid non-nil with a single
//     condition row, conditions single-valued.
//  2. Argmin over the grid's physical points.
//  3. Bind the point's phase label to its record (ErrUnknownPhase when
//     no record matches).
//  4. Build the set: coordinates truncated to the record's own DOF
//     (padding dropped), fraction 1.0, cached values refreshed at the
//     condition's true state variables (composition conditions are
//     constraints, not energy axes, and are excluded).
//
// Errors: ErrNoRecords, ErrNilGrid, ErrEmptyGrid, ErrBatchConditions,
// ErrUnknownPhase; record evaluation errors pass through.
//
// Complexity: O(Points + DOF).
func SinglePhaseStart(records []calc.PhaseRecord, conds core.Conditions, grid *calc.Grid) (*CompositionSet, error) {
	// 1) Shape validation.
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	if grid == nil {
		return nil, ErrNilGrid
	}
	if !conds.SinglePoint() || grid.NumConds != 1 {
		return nil, ErrBatchConditions
	}
	ix, err := core.NewIndexer(conds)
	if err != nil {
		return nil, err
	}

	return cheapestSet(records, ix, grid, 0, 0)
}

// CheapestStart adapts the global-cheapest policy to the StartingPointer
// interface: for each condition row it selects the cheapest physical
// grid point and returns a single composition set at fraction 1.0. Same
// mass-balance-agnostic heuristic as SinglePhaseStart, generalized to
// batched condition maps.
type CheapestStart struct{}

// StartingPoint implements StartingPointer via the per-row argmin.
//
// Errors: ErrNoRecords, ErrNilGrid, ErrEmptyGrid, ErrConditionRow (row
// out of range or not on the grid's coordinate axes), ErrUnknownPhase.
func (CheapestStart) StartingPoint(records []calc.PhaseRecord, conds core.Conditions, grid *calc.Grid, c int) ([]*CompositionSet, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	if grid == nil {
		return nil, ErrNilGrid
	}
	ix, err := core.NewIndexer(conds)
	if err != nil {
		return nil, err
	}
	if c < 0 || c >= ix.Len() {
		return nil, ErrConditionRow
	}

	// The grid may be narrower than the condition map (no composition
	// axes); locate its matching value row.
	row := grid.RowIndex(ix.Names(), ix.At(c, nil))
	if row < 0 {
		return nil, ErrConditionRow
	}

	cs, err := cheapestSet(records, ix, grid, c, row)
	if err != nil {
		return nil, err
	}

	return []*CompositionSet{cs}, nil
}

// cheapestSet builds one fraction-1.0 composition set around the
// cheapest physical point of grid value row `row`, refreshed at the
// true state variables of condition row `c`.
func cheapestSet(records []calc.PhaseRecord, ix *core.Indexer, grid *calc.Grid, c, row int) (*CompositionSet, error) {
	// Global-cheapest physical point of the row.
	p := grid.ArgminPhysical(row)
	if p < 0 {
		return nil, ErrEmptyGrid
	}

	// Phase-record lookup by label.
	var rec calc.PhaseRecord
	for _, r := range records {
		if r != nil && r.Phase().Name() == grid.Phases[p] {
			rec = r

			break
		}
	}
	if rec == nil {
		return nil, ErrUnknownPhase
	}

	// Single-set construction at fraction 1.0.
	cs, err := NewCompositionSet(rec)
	if err != nil {
		return nil, err
	}
	if err = cs.Update(grid.YAt(p)[:rec.DOF()], 1.0, StateVarValues(ix, c, nil)); err != nil {
		return nil, err
	}

	return cs, nil
}

// StateVarValues extracts the true-state-variable values of condition
// row c: the At row filtered down to non-composition names, order
// preserved (sorted). This is the vector phase records evaluate at; dst
// is reused when capacity allows.
func StateVarValues(ix *core.Indexer, c int, dst []float64) []float64 {
	var (
		full = ix.At(c, nil)
		out  = dst[:0]
	)
	for i, name := range ix.Names() {
		if !core.IsComposition(name) {
			out = append(out, full[i])
		}
	}

	return out
}
