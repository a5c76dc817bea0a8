package calc

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Grid is the uniform evaluated dataset for one or more phases: the
// concatenation, along the points axis, of (phase label, fake tag,
// internal coordinates, mole fractions, property values) tuples, sharing
// one set of external-condition coordinates.
//
// Layout:
//   - StateVars/Coords mirror the core.Indexer that produced the grid:
//     names sorted lexicographically, conditions walked row-major, so
//     condition index c decodes as in core.Indexer.At.
//   - Y is Points×MaxDOF, row-major, padded with NaN beyond each point's
//     own DOF. X is Points×len(Components), row-major, mole fractions of
//     the non-vacant components. Values is NumConds×Points, row-major.
//   - Fake marks injected pure-component reference points; downstream
//     mass-balance-sensitive logic must exclude them.
//
// A Grid is write-once: stages that produce one never mutate it after
// return, so sharing across goroutines is safe once published.
type Grid struct {
	// Output is the evaluated property name (e.g. "GM").
	Output string
	// Paired marks non-broadcast evaluation: Values has one condition row
	// and entry p pairs point p with the p-th condition values.
	Paired bool
	// Components is the sorted non-vacant component universe.
	Components []string
	// StateVars is the sorted state-variable names.
	StateVars []string
	// Coords holds the per-state-variable value arrays, parallel to
	// StateVars.
	Coords [][]float64
	// NumConds is the number of condition rows in Values.
	NumConds int
	// MaxDOF is the padded internal-coordinate width.
	MaxDOF int
	// Points is the total point count across all phases.
	Points int
	// Phases labels each point with its phase name (FakePhaseName for
	// injected reference points).
	Phases []string
	// Fake tags non-physical injected points.
	Fake []bool
	// Y is the padded internal-coordinate block, Points×MaxDOF.
	Y []float64
	// X is the mole-fraction block, Points×len(Components).
	X []float64
	// Values is the property block, NumConds×Points.
	Values []float64
}

// ValueAt returns the property value at condition row c, point p.
func (g *Grid) ValueAt(c, p int) float64 {
	return g.Values[c*g.Points+p]
}

// Row returns the property values of one condition row. The slice aliases
// the grid; treat it as read-only.
func (g *Grid) Row(c int) []float64 {
	return g.Values[c*g.Points : (c+1)*g.Points]
}

// YAt returns point p's padded internal coordinates (length MaxDOF).
// Aliased; read-only.
func (g *Grid) YAt(p int) []float64 {
	return g.Y[p*g.MaxDOF : (p+1)*g.MaxDOF]
}

// XAt returns point p's component mole fractions. Aliased; read-only.
func (g *Grid) XAt(p int) []float64 {
	n := len(g.Components)

	return g.X[p*n : (p+1)*n]
}

// ArgminValue returns the index of the minimum value in condition row c,
// ties broken by first occurrence. NaN entries never win; if the whole
// row is NaN, index 0 is returned.
//
// Complexity: O(Points).
func (g *Grid) ArgminValue(c int) int {
	return floats.MinIdx(g.Row(c))
}

// RowIndex locates the grid's condition row matching the given
// state-variable values. names/values describe one full condition point
// (names sorted, values parallel); the grid may carry fewer axes than
// names — extra axes (e.g. composition conditions on an equilibrium
// condition map) are simply not part of the lookup. Matching is by exact
// value equality; −1 when any grid axis is absent from names or its
// value is not on the grid's coordinate array.
//
// Complexity: O(axes · axis length).
func (g *Grid) RowIndex(names []string, values []float64) int {
	row := 0
	for i, sv := range g.StateVars {
		at := -1
		for k, name := range names {
			if name == sv {
				at = k

				break
			}
		}
		if at < 0 {
			return -1
		}
		coord := g.Coords[i]
		pos := -1
		for j, v := range coord {
			if v == values[at] {
				pos = j

				break
			}
		}
		if pos < 0 {
			return -1
		}
		row = row*len(coord) + pos
	}

	return row
}

// ArgminPhysical returns the index of the minimum value in condition row
// c among non-fake points, ties broken by first occurrence; −1 when the
// grid holds no physical points. Injected reference points are excluded
// because they are not bound to any phase record.
//
// Complexity: O(Points).
func (g *Grid) ArgminPhysical(c int) int {
	var (
		row  = g.Row(c)
		best = math.Inf(1)
		at   = -1
	)
	for p, v := range row {
		if g.Fake[p] {
			continue
		}
		if at < 0 {
			at = p
		}
		if v < best {
			best = v
			at = p
		}
	}

	return at
}

// UpdateParameters copies params into every record's live parameter
// vector. This is the destructive, shared side effect an outer fitting
// loop performs between evaluations: every calculation using these
// records afterwards sees the new values.
//
// Errors: ErrNilRecord, ErrParamLength (any record whose vector length
// differs).
//
// Complexity: O(records · len(params)).
func UpdateParameters(records []PhaseRecord, params []float64) error {
	for _, rec := range records {
		if rec == nil {
			return ErrNilRecord
		}
		dst := rec.Parameters()
		if len(dst) != len(params) {
			return ErrParamLength
		}
		copy(dst, params)
	}

	return nil
}

// MaxDOF returns the widest internal-DOF count across records.
func MaxDOF(records []PhaseRecord) int {
	widest := 0
	for _, rec := range records {
		if rec != nil && rec.DOF() > widest {
			widest = rec.DOF()
		}
	}

	return widest
}
