package equil

import (
	"math"

	"github.com/thermograd/gibbs/core"
)

// Result is the grid-shaped outcome of an equilibrium pass: one row per
// external-condition combination, each row holding up to MaxVertices
// stable phases with their fractions, coordinates, and compositions.
//
// Layout mirrors calc.Grid: StateVars/Coords as in core.Indexer, rows in
// row-major cross-product order. Vertex slots beyond the stable phase
// count carry an empty label, zero fraction, and NaN coordinates.
type Result struct {
	// Components is the sorted non-vacant component universe.
	Components []string
	// StateVars is the sorted state-variable names.
	StateVars []string
	// Coords holds per-state-variable value arrays, parallel to StateVars.
	Coords [][]float64
	// NumConds is the condition-row count.
	NumConds int
	// MaxVertices is the per-row phase capacity: len(Components)+1.
	MaxVertices int
	// MaxDOF is the padded internal-coordinate width.
	MaxDOF int
	// Phases holds NumConds×MaxVertices phase labels ("" for empty slots).
	Phases []string
	// NP holds NumConds×MaxVertices phase fractions.
	NP []float64
	// X holds NumConds×MaxVertices×len(Components) mole fractions.
	X []float64
	// Y holds NumConds×MaxVertices×MaxDOF internal coordinates, NaN pad.
	Y []float64
	// GM holds the mixture energy Σ NP·E per row.
	GM []float64
	// Status holds the per-row state-machine position.
	Status []Status
}

// NewResult allocates an empty result for the given condition cross
// product: every row starts at StatusSampled with NaN energy and empty
// vertex slots.
func NewResult(ix *core.Indexer, components []string, maxDOF int) *Result {
	var (
		names  = ix.Names()
		nconds = ix.Len()
		nverts = len(components) + 1
		coords = make([][]float64, len(names))
	)
	for i, name := range names {
		src := ix.Coord(name)
		cp := make([]float64, len(src))
		copy(cp, src)
		coords[i] = cp
	}

	r := &Result{
		Components:  components,
		StateVars:   names,
		Coords:      coords,
		NumConds:    nconds,
		MaxVertices: nverts,
		MaxDOF:      maxDOF,
		Phases:      make([]string, nconds*nverts),
		NP:          make([]float64, nconds*nverts),
		X:           make([]float64, nconds*nverts*len(components)),
		Y:           make([]float64, nconds*nverts*maxDOF),
		GM:          make([]float64, nconds),
		Status:      make([]Status, nconds),
	}
	for i := range r.Y {
		r.Y[i] = math.NaN()
	}
	for c := range r.GM {
		r.GM[c] = math.NaN()
	}

	return r
}

// SetRow writes the composition sets of condition row c: phase labels,
// fractions, coordinates (padded), mole fractions, mixture energy, and
// the row status. Unused vertex slots are reset to empty.
//
// Errors: ErrTooManyPhases when len(sets) exceeds MaxVertices.
//
// Complexity: O(MaxVertices·(DOF+C)).
func (r *Result) SetRow(c int, sets []*CompositionSet, status Status) error {
	if len(sets) > r.MaxVertices {
		return ErrTooManyPhases
	}

	var (
		nc   = len(r.Components)
		gm   = 0.0
		xbuf []float64
	)
	for v := 0; v < r.MaxVertices; v++ {
		var (
			slot = c*r.MaxVertices + v
			yrow = r.Y[slot*r.MaxDOF : (slot+1)*r.MaxDOF]
			xrow = r.X[slot*nc : (slot+1)*nc]
		)
		for d := range yrow {
			yrow[d] = math.NaN()
		}
		for i := range xrow {
			xrow[i] = 0
		}
		if v >= len(sets) {
			r.Phases[slot] = ""
			r.NP[slot] = 0

			continue
		}

		cs := sets[v]
		r.Phases[slot] = cs.Phase().Name()
		r.NP[slot] = cs.NP
		copy(yrow, cs.Y)
		xbuf = cs.MoleFractions(r.Components, xbuf)
		copy(xrow, xbuf)
		gm += cs.WeightedEnergy()
	}

	r.GM[c] = gm
	r.Status[c] = status

	return nil
}

// RowPhases returns the non-empty phase labels of row c, in vertex order.
func (r *Result) RowPhases(c int) []string {
	out := make([]string, 0, r.MaxVertices)
	for v := 0; v < r.MaxVertices; v++ {
		if name := r.Phases[c*r.MaxVertices+v]; name != "" {
			out = append(out, name)
		}
	}

	return out
}

// RowNP returns the fractions of the non-empty vertices of row c.
func (r *Result) RowNP(c int) []float64 {
	out := make([]float64, 0, r.MaxVertices)
	for v := 0; v < r.MaxVertices; v++ {
		slot := c*r.MaxVertices + v
		if r.Phases[slot] != "" {
			out = append(out, r.NP[slot])
		}
	}

	return out
}

// VertexY returns the padded coordinates of vertex v in row c. Aliased;
// read-only.
func (r *Result) VertexY(c, v int) []float64 {
	slot := c*r.MaxVertices + v

	return r.Y[slot*r.MaxDOF : (slot+1)*r.MaxDOF]
}

// VertexX returns the mole fractions of vertex v in row c. Aliased;
// read-only.
func (r *Result) VertexX(c, v int) []float64 {
	var (
		nc   = len(r.Components)
		slot = c*r.MaxVertices + v
	)

	return r.X[slot*nc : (slot+1)*nc]
}

// Converged reports whether every condition row converged.
func (r *Result) Converged() bool {
	for _, s := range r.Status {
		if s != StatusConverged {
			return false
		}
	}

	return true
}
