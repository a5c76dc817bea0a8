package equil

import (
	"github.com/thermograd/gibbs/calc"
	"github.com/thermograd/gibbs/core"
)

// CompositionSet is the mutable state unit of refinement: one phase's
// internal coordinates, its fraction of the overall mixture, and cached
// energy/gradient at the current state. A set lives for one equilibrium
// call; the caller that constructs it owns it exclusively and passes it
// by reference into a Solver, which mutates it in place.
type CompositionSet struct {
	rec calc.PhaseRecord

	// Y is the internal-coordinate vector, length Record().DOF().
	Y []float64
	// NP is the phase fraction of this set in the overall mixture.
	NP float64
	// Energy is the cached property value at (statevars, Y).
	Energy float64
	// Grad is the cached ∂Energy/∂Y, parallel to Y.
	Grad []float64

	statevars []float64
}

// NewCompositionSet binds an empty set to a phase record. Coordinates
// start zeroed; call Update before reading Energy or Grad.
func NewCompositionSet(rec calc.PhaseRecord) (*CompositionSet, error) {
	if rec == nil {
		return nil, calc.ErrNilRecord
	}
	dof := rec.DOF()

	return &CompositionSet{
		rec:  rec,
		Y:    make([]float64, dof),
		Grad: make([]float64, dof),
	}, nil
}

// Record returns the bound phase record.
func (cs *CompositionSet) Record() calc.PhaseRecord { return cs.rec }

// Phase returns the bound phase.
func (cs *CompositionSet) Phase() *core.Phase { return cs.rec.Phase() }

// StateVars returns the cached state-variable values of the last Update,
// ordered by sorted state-variable name. Read-only.
func (cs *CompositionSet) StateVars() []float64 { return cs.statevars }

// Update sets the coordinates, fraction, and state variables, then
// re-evaluates the cached energy and gradient. y and statevars are
// copied; the caller keeps ownership.
//
// Errors: calc.ErrDOFMismatch on a wrong-length y; evaluation errors
// from the record pass through.
//
// Complexity: one Evaluate plus one Gradient call.
func (cs *CompositionSet) Update(y []float64, np float64, statevars []float64) error {
	if len(y) != cs.rec.DOF() {
		return calc.ErrDOFMismatch
	}
	copy(cs.Y, y)
	cs.NP = np

	if cap(cs.statevars) < len(statevars) {
		cs.statevars = make([]float64, len(statevars))
	} else {
		cs.statevars = cs.statevars[:len(statevars)]
	}
	copy(cs.statevars, statevars)

	e, err := cs.rec.Evaluate(calc.OutputEnergy, cs.statevars, cs.Y)
	if err != nil {
		return err
	}
	if err = cs.rec.Gradient(calc.OutputEnergy, cs.statevars, cs.Y, cs.Grad); err != nil {
		return err
	}
	cs.Energy = e

	return nil
}

// WeightedEnergy returns NP × Energy, the set's contribution to the
// mixture energy.
func (cs *CompositionSet) WeightedEnergy() float64 { return cs.NP * cs.Energy }

// MoleFractions appends the set's overall component mole fractions (in
// the given component order) into dst. Vacancies carry no mass and are
// excluded. A zero-mass configuration yields all zeros.
func (cs *CompositionSet) MoleFractions(components []string, dst []float64) []float64 {
	if cap(dst) < len(components) {
		dst = make([]float64, len(components))
	} else {
		dst = dst[:len(components)]
	}
	for i := range dst {
		dst[i] = 0
	}

	weights, columns := calc.MoleWeights(cs.Phase(), components)
	total := 0.0
	for d, y := range cs.Y {
		m := weights[d] * y
		total += m
		if columns[d] >= 0 {
			dst[columns[d]] += m
		}
	}
	if total > 0 {
		for i := range dst {
			dst[i] /= total
		}
	}

	return dst
}

// Clone returns an independent deep copy sharing only the phase record.
// Used when a refinement path wants a scratch copy it can abandon.
func (cs *CompositionSet) Clone() *CompositionSet {
	cp := &CompositionSet{
		rec:    cs.rec,
		Y:      make([]float64, len(cs.Y)),
		NP:     cs.NP,
		Energy: cs.Energy,
		Grad:   make([]float64, len(cs.Grad)),
	}
	copy(cp.Y, cs.Y)
	copy(cp.Grad, cs.Grad)
	if cs.statevars != nil {
		cp.statevars = make([]float64, len(cs.statevars))
		copy(cp.statevars, cs.statevars)
	}

	return cp
}
