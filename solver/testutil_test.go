package solver_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thermograd/gibbs/calc"
	"github.com/thermograd/gibbs/core"
	"github.com/thermograd/gibbs/equil"
)

// analyticRecord is a PhaseRecord over closures for both the energy and
// its exact coordinate gradient; refinement tests need consistent
// derivatives, not finite differences.
type analyticRecord struct {
	ph     *core.Phase
	params []float64
	eval   func(params, statevars, y []float64) float64
	grad   func(params, statevars, y, dst []float64)
}

func (r *analyticRecord) Phase() *core.Phase    { return r.ph }
func (r *analyticRecord) DOF() int              { return r.ph.InternalDOF() }
func (r *analyticRecord) Parameters() []float64 { return r.params }

func (r *analyticRecord) Evaluate(output string, statevars, y []float64) (float64, error) {
	if output != calc.OutputEnergy {
		return 0, errBadOutput
	}

	return r.eval(r.params, statevars, y), nil
}

func (r *analyticRecord) Gradient(output string, statevars, y, dst []float64) error {
	if output != calc.OutputEnergy {
		return errBadOutput
	}
	r.grad(r.params, statevars, y, dst)

	return nil
}

// errBadOutput mimics a record rejecting an unknown property name.
var errBadOutput = errors.New("stub: unknown output")

// binaryPhase returns a one-sublattice (AL,NI) substitutional phase.
func binaryPhase(t testing.TB, name string) *core.Phase {
	t.Helper()
	al, err := core.NewSpecies("AL", 1)
	require.NoError(t, err)
	ni, err := core.NewSpecies("NI", 1)
	require.NoError(t, err)
	sl, err := core.NewSublattice(1, al, ni)
	require.NoError(t, err)
	ph, err := core.NewPhase(name, []core.Sublattice{sl})
	require.NoError(t, err)

	return ph
}

// purePhase returns a stoichiometric phase holding the named species in
// singleton sublattices with the given site counts, e.g. AL3NI as
// purePhase(t, "AL3NI", []string{"AL", "NI"}, []float64{3, 1}).
func purePhase(t testing.TB, name string, species []string, sites []float64) *core.Phase {
	t.Helper()
	require.Equal(t, len(species), len(sites))

	subls := make([]core.Sublattice, len(species))
	for i, spName := range species {
		sp, err := core.NewSpecies(spName, 1)
		require.NoError(t, err)
		sl, err := core.NewSublattice(sites[i], sp)
		require.NoError(t, err)
		subls[i] = sl
	}
	ph, err := core.NewPhase(name, subls)
	require.NoError(t, err)

	return ph
}

// wellRecord is a quadratic well over the first coordinate of a binary
// substitutional phase: E = depth + curv·(y0 − center)².
func wellRecord(t testing.TB, name string, depth, curv, center float64) *analyticRecord {
	t.Helper()

	return &analyticRecord{
		ph:     binaryPhase(t, name),
		params: []float64{depth, curv, center},
		eval: func(p, _, y []float64) float64 {
			d := y[0] - p[2]

			return p[0] + p[1]*d*d
		},
		grad: func(p, _, y, dst []float64) {
			dst[0] = 2 * p[1] * (y[0] - p[2])
			dst[1] = 0
		},
	}
}

// constRecord is a flat-energy record over the given phase.
func constRecord(ph *core.Phase, energy float64) *analyticRecord {
	return &analyticRecord{
		ph:     ph,
		params: []float64{energy},
		eval:   func(p, _, _ []float64) float64 { return p[0] },
		grad: func(_, _, _, dst []float64) {
			for d := range dst {
				dst[d] = 0
			}
		},
	}
}

// startedSet wraps a record into a composition set updated to the given
// state, failing the test on any error.
func startedSet(t testing.TB, rec calc.PhaseRecord, y []float64, np float64, statevars []float64) *equil.CompositionSet {
	t.Helper()
	cs, err := equil.NewCompositionSet(rec)
	require.NoError(t, err)
	require.NoError(t, cs.Update(y, np, statevars))

	return cs
}

// buildGrid samples and evaluates records over conds.
func buildGrid(t testing.TB, records []calc.PhaseRecord, conds core.Conditions, density int, fakes bool) *calc.Grid {
	t.Helper()
	opts := calc.DefaultOptions()
	opts.Density = density
	opts.FakePoints = fakes

	g, err := calc.Calculate(records, conds, opts)
	require.NoError(t, err)

	return g
}
