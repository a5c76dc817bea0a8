package equil_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thermograd/gibbs/calc"
	"github.com/thermograd/gibbs/core"
	"github.com/thermograd/gibbs/equil"
)

// errBadOutput mimics a record rejecting an unknown property name.
var errBadOutput = errors.New("stub: unknown output")

// stubRecord is a hand-rolled PhaseRecord whose energy is an arbitrary
// closure over (parameters, statevars, y). Gradient uses central
// differences; accuracy is plenty for orchestration-level tests. The
// last statevars vector seen by Evaluate is retained for inspection.
type stubRecord struct {
	ph     *core.Phase
	params []float64
	eval   func(params, statevars, y []float64) float64

	lastStateVars []float64
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
	r.lastStateVars = append(r.lastStateVars[:0], statevars...)

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

// constRecords builds single-sublattice (AL,NI) records with constant
// energies, one per (name, energy) pair, in the given order.
func constRecords(t *testing.T, names []string, energies []float64) []calc.PhaseRecord {
	t.Helper()
	require.Equal(t, len(names), len(energies))

	recs := make([]calc.PhaseRecord, len(names))
	for i, name := range names {
		e := energies[i]
		recs[i] = newStub(makePhase(t, name, binarySubl(t, 1)), []float64{e, 0},
			func(p, _, _ []float64) float64 { return p[0] })
	}

	return recs
}

// buildGrid samples and evaluates the records over conds, failing the
// test on any error.
func buildGrid(t *testing.T, records []calc.PhaseRecord, conds core.Conditions, density int) *calc.Grid {
	t.Helper()
	opts := calc.DefaultOptions()
	opts.Density = density

	g, err := calc.Calculate(records, conds, opts)
	require.NoError(t, err)

	return g
}

// countingSolver implements equil.Solver by recording every call and
// returning a canned refinement outcome.
type countingSolver struct {
	calls     int
	lastSets  []*equil.CompositionSet
	lastConds core.Conditions

	refinement equil.Refinement
	err        error
}

func (s *countingSolver) Refine(sets []*equil.CompositionSet, conds core.Conditions) (equil.Refinement, error) {
	s.calls++
	s.lastSets = sets
	s.lastConds = conds

	return s.refinement, s.err
}

// countingGlobal implements equil.GlobalSolver by delegating every row
// to the starting point and marking it converged, counting calls.
type countingGlobal struct {
	calls int
}

func (g *countingGlobal) SolveAll(records []calc.PhaseRecord, conds core.Conditions, grid *calc.Grid, start equil.StartingPointer) (*equil.Result, error) {
	g.calls++
	ix, err := core.NewIndexer(conds)
	if err != nil {
		return nil, err
	}

	res := equil.NewResult(ix, grid.Components, grid.MaxDOF)
	for c := 0; c < ix.Len(); c++ {
		sets, err := start.StartingPoint(records, conds, grid, c)
		if err != nil {
			return nil, err
		}
		if err = res.SetRow(c, sets, equil.StatusConverged); err != nil {
			return nil, err
		}
	}

	return res, nil
}
