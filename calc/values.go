package calc

import (
	"math"

	"github.com/thermograd/gibbs/core"
)

// ValueOptions configures a single-record evaluation pass.
//
// Fields:
//   - Output      — property name; "" means OutputEnergy.
//   - Components  — global sorted component universe; nil derives it from
//     the record's own phase.
//   - MaxDOF      — padded coordinate width across all phases being
//     processed together; 0 means the record's own DOF.
//   - FakePoints  — prepend one pure-component reference point per
//     component, tagged non-physical.
//   - Paired      — pair point i with condition i (no cross product).
//   - LargeEnergy — infeasibility sentinel; 0 means DefaultLargeEnergy.
type ValueOptions struct {
	Output      string
	Components  []string
	MaxDOF      int
	FakePoints  bool
	Paired      bool
	LargeEnergy float64
}

// ComputePhaseValues evaluates one phase record over a point set under
// the given conditions, producing a single-phase Grid.
//
// Steps:
//  1. Validate shapes: record non-nil, points non-empty, every point of
//     length rec.DOF() (fatal ErrDOFMismatch), padding width ≥ DOF.
//  2. When FakePoints is set, prepend one point per component: identity
//     mole fractions, NaN coordinates, sentinel value, Fake=true, label
//     FakePhaseName. These seed degenerate composition regions downstream
//     and are excluded from mass-balance-sensitive logic via the tag.
//  3. For each real point, accumulate component moles from the sublattice
//     model (site count × occupancy × atoms). A zero-mass point (all
//     vacancies) is infeasible: it receives the sentinel for every
//     condition and never wins a minimum-energy selection.
//  4. Evaluate the record at every (condition, point) combination —
//     the full cross product in broadcast mode, the aligned pairs in
//     Paired mode. Composition conditions ("X_*"), if present, stay
//     coordinate axes: the record sees only the true state variables.
//
// Evaluation errors abort (structural); NaN/Inf results are carried
// through as values.
//
// Complexity: O(NumConds · Points · DOF).
func ComputePhaseValues(rec PhaseRecord, ix *core.Indexer, pts [][]float64, o ValueOptions) (*Grid, error) {
	// 1) Shape validation.
	if rec == nil {
		return nil, ErrNilRecord
	}
	if ix == nil {
		return nil, core.ErrNoConditions
	}
	if len(pts) == 0 {
		return nil, ErrNoPoints
	}
	dof := rec.DOF()
	for _, pt := range pts {
		if len(pt) != dof {
			return nil, ErrDOFMismatch
		}
	}

	if o.Output == "" {
		o.Output = OutputEnergy
	}
	if o.LargeEnergy == 0 {
		o.LargeEnergy = DefaultLargeEnergy
	}
	if o.MaxDOF == 0 {
		o.MaxDOF = dof
	}
	if o.MaxDOF < dof {
		return nil, ErrBadMaxDOF
	}
	if o.Components == nil {
		o.Components = core.Components(rec.Phase())
	}

	var (
		names    = ix.Names()
		numConds = ix.Len()
		coords   = make([][]float64, len(names))
	)
	for i, name := range names {
		src := ix.Coord(name)
		cp := make([]float64, len(src))
		copy(cp, src)
		coords[i] = cp
	}
	if o.Paired {
		// One condition value per point, no cross product.
		for _, arr := range coords {
			if len(arr) != len(pts) {
				return nil, ErrPairedLength
			}
		}
		numConds = 1
	}

	// 2) Allocate the grid, NaN-padding the coordinate block up front.
	var (
		nc   = len(o.Components)
		fake = 0
	)
	if o.FakePoints {
		fake = nc
	}
	var (
		npts = fake + len(pts)
		g    = &Grid{
			Output:     o.Output,
			Paired:     o.Paired,
			Components: o.Components,
			StateVars:  names,
			Coords:     coords,
			NumConds:   numConds,
			MaxDOF:     o.MaxDOF,
			Points:     npts,
			Phases:     make([]string, npts),
			Fake:       make([]bool, npts),
			Y:          make([]float64, npts*o.MaxDOF),
			X:          make([]float64, npts*nc),
			Values:     make([]float64, numConds*npts),
		}
	)
	for i := range g.Y {
		g.Y[i] = math.NaN()
	}

	for f := 0; f < fake; f++ {
		g.Phases[f] = FakePhaseName
		g.Fake[f] = true
		g.X[f*nc+f] = 1
		for c := 0; c < numConds; c++ {
			g.Values[c*npts+f] = o.LargeEnergy
		}
	}

	// 3) Mole fractions and feasibility per real point.
	var (
		weights, columns = MoleWeights(rec.Phase(), o.Components)
		zeroMass         = make([]bool, len(pts))
	)
	for p, pt := range pts {
		var (
			at    = fake + p
			xrow  = g.X[at*nc : (at+1)*nc]
			total = 0.0
		)
		copy(g.Y[at*o.MaxDOF:], pt)
		g.Phases[at] = rec.Phase().Name()
		for d, y := range pt {
			m := weights[d] * y
			total += m
			if columns[d] >= 0 {
				xrow[columns[d]] += m
			}
		}
		if total <= 0 {
			zeroMass[p] = true
			for c := 0; c < numConds; c++ {
				g.Values[c*npts+at] = o.LargeEnergy
			}

			continue
		}
		for i := range xrow {
			xrow[i] /= total
		}
	}

	// 4) Evaluation over conditions × points. Composition conditions are
	// coordinate axes only: the evaluator receives the true state
	// variables, still sorted by name.
	keep := make([]int, 0, len(names))
	for i, name := range names {
		if !core.IsComposition(name) {
			keep = append(keep, i)
		}
	}
	var (
		full      = make([]float64, len(names))
		statevars = make([]float64, len(keep))
	)
	if o.Paired {
		for p, pt := range pts {
			if zeroMass[p] {
				continue
			}
			for k, i := range keep {
				statevars[k] = coords[i][p]
			}
			v, err := rec.Evaluate(o.Output, statevars, pt)
			if err != nil {
				return nil, err
			}
			g.Values[fake+p] = v
		}

		return g, nil
	}

	for c := 0; c < numConds; c++ {
		full = ix.At(c, full)
		for k, i := range keep {
			statevars[k] = full[i]
		}
		row := g.Values[c*npts : (c+1)*npts]
		for p, pt := range pts {
			if zeroMass[p] {
				continue
			}
			v, err := rec.Evaluate(o.Output, statevars, pt)
			if err != nil {
				return nil, err
			}
			row[fake+p] = v
		}
	}

	return g, nil
}

// MoleWeights flattens a phase's sublattice model for mole accounting:
// for internal coordinate d (sublattice s, constituent k), weights[d] is
// sites_s·atoms_k and columns[d] is the component column of constituent k
// in components, or −1 when the constituent is a vacancy or untracked.
//
// Complexity: O(DOF·C); build once per phase per pass, not per point.
func MoleWeights(ph *core.Phase, components []string) (weights []float64, columns []int) {
	dof := ph.InternalDOF()
	weights = make([]float64, 0, dof)
	columns = make([]int, 0, dof)
	for _, sl := range ph.Sublattices() {
		for _, sp := range sl.Species {
			weights = append(weights, sl.Sites*sp.Atoms)
			col := -1
			if !sp.IsVacancy() {
				for i, name := range components {
					if name == sp.Name {
						col = i

						break
					}
				}
			}
			columns = append(columns, col)
		}
	}

	return weights, columns
}
