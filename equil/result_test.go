package equil_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thermograd/gibbs/core"
	"github.com/thermograd/gibbs/equil"
)

// mustIndexer builds a condition indexer or fails the test.
func mustIndexer(t *testing.T, c core.Conditions) *core.Indexer {
	t.Helper()
	ix, err := core.NewIndexer(c)
	require.NoError(t, err)

	return ix
}

// TestNewResult_Shape verifies allocation: condition-shaped rows, one
// spare vertex beyond the component count, NaN padding everywhere.
func TestNewResult_Shape(t *testing.T) {
	ix := mustIndexer(t, core.Conditions{"P": {1e5}, "T": {300, 400, 500}})
	res := equil.NewResult(ix, []string{"AL", "NI"}, 4)

	assert.Equal(t, 3, res.NumConds)
	assert.Equal(t, 3, res.MaxVertices, "components+1 vertex slots")
	assert.Equal(t, []string{"P", "T"}, res.StateVars)
	assert.Len(t, res.Phases, 9)
	assert.Len(t, res.Y, 9*4)

	for c := 0; c < res.NumConds; c++ {
		assert.True(t, math.IsNaN(res.GM[c]), "unset rows carry NaN energy")
		assert.Equal(t, equil.StatusSampled, res.Status[c])
		assert.Empty(t, res.RowPhases(c))
	}
	assert.False(t, res.Converged())
}

// TestResult_SetRow verifies a filled row: labels, fractions, padded
// coordinates, mole fractions, mixture energy, status, and the reset of
// unused vertex slots.
func TestResult_SetRow(t *testing.T) {
	ix := mustIndexer(t, core.Conditions{"T": {300, 400}})
	res := equil.NewResult(ix, []string{"AL", "NI"}, 4)

	mk := func(name string, e, np, y0 float64) *equil.CompositionSet {
		rec := newStub(makePhase(t, name, binarySubl(t, 1)), []float64{e, 0},
			func(p, _, _ []float64) float64 { return p[0] })
		cs, err := equil.NewCompositionSet(rec)
		require.NoError(t, err)
		require.NoError(t, cs.Update([]float64{y0, 1 - y0}, np, []float64{300}))

		return cs
	}

	liquid := mk("LIQUID", -1000, 0.25, 0.4)
	bcc := mk("BCC_A2", -2000, 0.75, 0.8)
	require.NoError(t, res.SetRow(1, []*equil.CompositionSet{liquid, bcc}, equil.StatusConverged))

	assert.Equal(t, []string{"LIQUID", "BCC_A2"}, res.RowPhases(1))
	assert.Equal(t, []float64{0.25, 0.75}, res.RowNP(1))
	assert.InDelta(t, 0.25*-1000+0.75*-2000, res.GM[1], 1e-9)
	assert.Equal(t, equil.StatusConverged, res.Status[1])

	y := res.VertexY(1, 0)
	assert.Equal(t, 0.4, y[0])
	assert.Equal(t, 0.6, y[1])
	assert.True(t, math.IsNaN(y[2]), "width beyond the phase DOF stays NaN")

	x := res.VertexX(1, 1)
	assert.InDelta(t, 0.8, x[0], 1e-12, "AL fraction of the second vertex")
	assert.InDelta(t, 0.2, x[1], 1e-12)

	assert.Equal(t, "", res.Phases[1*res.MaxVertices+2], "spare slot stays empty")
	assert.Equal(t, 0.0, res.NP[1*res.MaxVertices+2])

	// Row 0 untouched.
	assert.True(t, math.IsNaN(res.GM[0]))
	assert.Equal(t, equil.StatusSampled, res.Status[0])
}

// TestResult_SetRowOverflow verifies the vertex-capacity sentinel.
func TestResult_SetRowOverflow(t *testing.T) {
	ix := mustIndexer(t, core.Conditions{"T": {300}})
	res := equil.NewResult(ix, []string{"AL", "NI"}, 2)

	sets := make([]*equil.CompositionSet, res.MaxVertices+1)
	for i := range sets {
		rec := newStub(makePhase(t, "LIQUID", binarySubl(t, 1)), []float64{0, 0},
			func(_, _, _ []float64) float64 { return 0 })
		cs, err := equil.NewCompositionSet(rec)
		require.NoError(t, err)
		sets[i] = cs
	}

	err := res.SetRow(0, sets, equil.StatusConverged)
	assert.ErrorIs(t, err, equil.ErrTooManyPhases)
}

// TestResult_Converged verifies the all-rows conjunction.
func TestResult_Converged(t *testing.T) {
	ix := mustIndexer(t, core.Conditions{"T": {300, 400}})
	res := equil.NewResult(ix, []string{"AL", "NI"}, 2)

	require.NoError(t, res.SetRow(0, nil, equil.StatusConverged))
	assert.False(t, res.Converged(), "one unconverged row is enough")

	require.NoError(t, res.SetRow(1, nil, equil.StatusConverged))
	assert.True(t, res.Converged())
}
