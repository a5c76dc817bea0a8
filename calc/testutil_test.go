package calc_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thermograd/gibbs/calc"
	"github.com/thermograd/gibbs/core"
)

// errBadOutput mimics a record rejecting an unknown property name.
var errBadOutput = errors.New("stub: unknown output")

// stubRecord is a hand-rolled PhaseRecord whose energy is an arbitrary
// closure over (parameters, statevars, y). Gradient uses central
// differences; accuracy is plenty for adapter-level tests.
type stubRecord struct {
	ph     *core.Phase
	params []float64
	eval   func(params, statevars, y []float64) float64
}

func newStub(ph *core.Phase, params []float64, eval func(params, statevars, y []float64) float64) *stubRecord {
	return &stubRecord{ph: ph, params: params, eval: eval}
}

func (r *stubRecord) Phase() *core.Phase    { return r.ph }
func (r *stubRecord) DOF() int              { return r.ph.InternalDOF() }
func (r *stubRecord) Parameters() []float64 { return r.params }

func (r *stubRecord) Evaluate(output string, statevars, y []float64) (float64, error) {
	if output != calc.OutputEnergy {
		return 0, errBadOutput
	}

	return r.eval(r.params, statevars, y), nil
}

func (r *stubRecord) Gradient(output string, statevars, y, dst []float64) error {
	if output != calc.OutputEnergy {
		return errBadOutput
	}

	const h = 1e-6
	buf := make([]float64, len(y))
	copy(buf, y)
	for d := range y {
		buf[d] = y[d] + h
		hi := r.eval(r.params, statevars, buf)
		buf[d] = y[d] - h
		lo := r.eval(r.params, statevars, buf)
		buf[d] = y[d]
		dst[d] = (hi - lo) / (2 * h)
	}

	return nil
}

// makePhase constructs a phase or fails the test.
func makePhase(t testing.TB, name string, subls ...core.Sublattice) *core.Phase {
	t.Helper()
	ph, err := core.NewPhase(name, subls)
	require.NoError(t, err, "phase %q must construct", name)

	return ph
}

// binarySubl returns a one-sublattice (AL,NI) model with the given sites.
func binarySubl(t testing.TB, sites float64) core.Sublattice {
	t.Helper()
	al, err := core.NewSpecies("AL", 1)
	require.NoError(t, err)
	ni, err := core.NewSpecies("NI", 1)
	require.NoError(t, err)

	sl, err := core.NewSublattice(sites, al, ni)
	require.NoError(t, err)

	return sl
}

// linearEval returns a simple well-behaved energy:
// params[0] + params[1]·T + slope·y[0], with T read at index tAt of the
// sorted state variables.
func linearEval(tAt int, slope float64) func(params, statevars, y []float64) float64 {
	return func(params, statevars, y []float64) float64 {
		return params[0] + params[1]*statevars[tAt] + slope*y[0]
	}
}
