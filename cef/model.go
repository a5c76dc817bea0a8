package cef

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/thermograd/gibbs/calc"
	"github.com/thermograd/gibbs/core"
)

// Model is a compound-energy-formalism evaluator for one phase: the
// reference implementation of the calc.PhaseRecord contract.
//
// Per formula unit the energy is
//
//	F(T, y) = Σ_em G_em·Π_s y_{s,em}                    (reference surface)
//	        + R·T·Σ_s aₛ·Σ_k y_{s,k}·ln y_{s,k}         (ideal mixing)
//	        + Σ_s Σ_{i<j} Σ_ν L_{s,i,j,ν}·y_i·y_j·(y_i−y_j)^ν   (excess)
//
// and the reported GM is F divided by the moles of atoms per formula
// unit, M(y) = Σ_s aₛ·Σ_k atoms_k·y_{s,k} (vacancies contribute zero).
//
// Parameter vector layout, aliased through Parameters():
//
//	params = [ G_em... , L... ]
//
// Endmember coefficients come first, one per element of the cartesian
// product of sublattice constituents with the last sublattice varying
// fastest. Interaction coefficients follow: sublattices in order, within
// each sublattice every constituent pair i<j in index order, and per pair
// the Redlich-Kister coefficients L₀..L_{order−1}. A phase of all
// single-constituent sublattices has one endmember and no pairs.
//
// The vector is retained, not copied: mutating it (directly or through
// calc.UpdateParameters) changes all subsequent evaluations. A Model is
// therefore not safe for concurrent use with in-place updates; Clone
// gives an isolated instance.
type Model struct {
	ph      *core.Phase
	names   []string
	tIndex  int
	rkOrder int
	params  []float64

	// Layout, frozen at construction.
	offsets []int
	sizes   []int
	nEm     int
	pairs   []pair
	weights []float64

	// Endmember selection scratch, reused across evaluations.
	sel []int
}

// pair is one in-sublattice interaction: absolute coordinate offsets of
// the two constituents and the first of its L coefficients in params.
type pair struct {
	i, j int
	base int
}

var _ calc.PhaseRecord = (*Model)(nil)

// ParamCount returns the parameter-vector length NewRecord expects for
// ph at the given Redlich-Kister order: the endmember count plus order
// coefficients per in-sublattice constituent pair. A nil phase or a
// negative order counts zero.
func ParamCount(ph *core.Phase, rkOrder int) int {
	if ph == nil || rkOrder < 0 {
		return 0
	}
	var (
		nEm   = 1
		pairs = 0
	)
	for _, sl := range ph.Sublattices() {
		k := len(sl.Species)
		nEm *= k
		pairs += k * (k - 1) / 2
	}

	return nEm + rkOrder*pairs
}

// NewRecord builds a compound-energy model for ph and returns it as the
// phase's record.
//
// statevars lists the true state-variable names exactly as evaluation
// vectors will supply them (the caller's sorted order, see
// core.Conditions.Split); it must include core.StateTemperature. params
// is the flat coefficient vector in the layout documented on Model and
// is aliased, not copied. rkOrder is the number of Redlich-Kister
// coefficients carried per constituent pair; zero disables the excess
// term.
//
// Errors: ErrNilPhase, ErrNoTemperature, ErrBadRKOrder, ErrParamCount.
func NewRecord(ph *core.Phase, statevars []string, rkOrder int, params []float64) (*Model, error) {
	// 1) Validation.
	if ph == nil {
		return nil, ErrNilPhase
	}
	tIndex := -1
	for i, name := range statevars {
		if name == core.StateTemperature {
			tIndex = i

			break
		}
	}
	if tIndex < 0 {
		return nil, ErrNoTemperature
	}
	if rkOrder < 0 {
		return nil, ErrBadRKOrder
	}
	if len(params) != ParamCount(ph, rkOrder) {
		return nil, ErrParamCount
	}

	m := &Model{
		ph:      ph,
		names:   append([]string(nil), statevars...),
		tIndex:  tIndex,
		rkOrder: rkOrder,
		params:  params,
		nEm:     1,
	}

	// 2) Coordinate layout per sublattice.
	offset := 0
	for _, sl := range ph.Sublattices() {
		k := len(sl.Species)
		m.offsets = append(m.offsets, offset)
		m.sizes = append(m.sizes, k)
		m.nEm *= k
		offset += k
	}
	m.sel = make([]int, len(m.sizes))

	// 3) Interaction pairs in parameter order, after the endmember block.
	base := m.nEm
	for s, sl := range ph.Sublattices() {
		for i := 0; i < len(sl.Species); i++ {
			for j := i + 1; j < len(sl.Species); j++ {
				m.pairs = append(m.pairs, pair{
					i:    m.offsets[s] + i,
					j:    m.offsets[s] + j,
					base: base,
				})
				base += rkOrder
			}
		}
	}

	// 4) Atom weights for the per-mole-of-atoms normalization.
	m.weights, _ = calc.MoleWeights(ph, core.Components(ph))

	return m, nil
}

// Phase returns the phase this model evaluates.
func (m *Model) Phase() *core.Phase { return m.ph }

// DOF returns the internal degrees of freedom (total constituent count).
func (m *Model) DOF() int { return m.ph.InternalDOF() }

// Parameters returns the live coefficient vector, aliased.
func (m *Model) Parameters() []float64 { return m.params }

// Evaluate returns the molar Gibbs energy at the given state variables
// and internal coordinates. The only supported output is
// calc.OutputEnergy; zero-mass coordinates yield non-finite values, not
// errors.
//
// Errors: ErrUnknownOutput, ErrStateVarLength, calc.ErrDOFMismatch.
func (m *Model) Evaluate(output string, statevars, y []float64) (float64, error) {
	if err := m.check(output, statevars, y); err != nil {
		return 0, err
	}

	return m.gibbs(statevars[m.tIndex], y, nil), nil
}

// Gradient writes ∂GM/∂y into dst at fixed state variables, from the
// analytic derivatives of the three energy terms pushed through the
// per-mole-of-atoms quotient.
//
// Errors: ErrUnknownOutput, ErrStateVarLength, calc.ErrDOFMismatch (a
// wrong dst length included).
func (m *Model) Gradient(output string, statevars, y []float64, dst []float64) error {
	if err := m.check(output, statevars, y); err != nil {
		return err
	}
	if len(dst) != m.ph.InternalDOF() {
		return calc.ErrDOFMismatch
	}
	m.gibbs(statevars[m.tIndex], y, dst)

	return nil
}

// Clone returns a model with an isolated parameter vector, for use when
// several calculations must not observe each other's in-place updates.
// The immutable layout (phase, offsets, pairs, weights) is shared.
func (m *Model) Clone() *Model {
	c := *m
	c.params = append([]float64(nil), m.params...)
	c.sel = make([]int, len(m.sel))

	return &c
}

// check validates one evaluation request.
func (m *Model) check(output string, statevars, y []float64) error {
	if output != calc.OutputEnergy {
		return ErrUnknownOutput
	}
	if len(statevars) != len(m.names) {
		return ErrStateVarLength
	}
	if len(y) != m.ph.InternalDOF() {
		return calc.ErrDOFMismatch
	}

	return nil
}

// gibbs evaluates GM = F(T, y)/M(y) and, when grad is non-nil, fills it
// with dGM/dy through the quotient rule dGM/dy_d = (dF/dy_d − GM·w_d)/M.
func (m *Model) gibbs(T float64, y []float64, grad []float64) float64 {
	if grad != nil {
		for d := range grad {
			grad[d] = 0
		}
	}

	// 1) Reference surface. The endmember index decomposes with the last
	// sublattice varying fastest.
	value := 0.0
	for e := 0; e < m.nEm; e++ {
		rem := e
		for s := len(m.sizes) - 1; s >= 0; s-- {
			m.sel[s] = m.offsets[s] + rem%m.sizes[s]
			rem /= m.sizes[s]
		}
		var (
			g    = m.params[e]
			prod = 1.0
		)
		for _, d := range m.sel {
			prod *= y[d]
		}
		value += g * prod
		if grad != nil {
			for s, d := range m.sel {
				partial := g
				for s2, d2 := range m.sel {
					if s2 != s {
						partial *= y[d2]
					}
				}
				grad[d] += partial
			}
		}
	}

	// 2) Ideal mixing, vacancies included; occupancies floored so the
	// logarithms stay finite at simplex corners.
	rt := GasConstant * T
	for s, sl := range m.ph.Sublattices() {
		for k := 0; k < m.sizes[s]; k++ {
			var (
				d  = m.offsets[s] + k
				yv = math.Max(y[d], core.MinSiteFraction)
			)
			value += rt * sl.Sites * yv * math.Log(yv)
			if grad != nil {
				grad[d] += rt * sl.Sites * (math.Log(yv) + 1)
			}
		}
	}

	// 3) Redlich-Kister excess per in-sublattice constituent pair.
	for _, pr := range m.pairs {
		var (
			yi = y[pr.i]
			yj = y[pr.j]
			dl = yi - yj
			pw = 1.0 // dl^ν
			dp = 0.0 // ν·dl^(ν−1)
		)
		for ord := 0; ord < m.rkOrder; ord++ {
			l := m.params[pr.base+ord]
			value += l * yi * yj * pw
			if grad != nil {
				grad[pr.i] += l * (yj*pw + yi*yj*dp)
				grad[pr.j] += l * (yi*pw - yi*yj*dp)
			}
			dp = float64(ord+1) * pw
			pw *= dl
		}
	}

	// 4) Per-mole-of-atoms normalization through the quotient rule.
	mass := floats.Dot(m.weights, y)
	gm := value / mass
	if grad != nil {
		for d := range grad {
			grad[d] = (grad[d] - gm*m.weights[d]) / mass
		}
	}

	return gm
}
