package sample_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thermograd/gibbs/core"
	"github.com/thermograd/gibbs/sample"
)

// binaryPhase builds the (AL,NI)3(AL,NI)1 test model.
func binaryPhase(t *testing.T) *core.Phase {
	t.Helper()
	al, err := core.NewSpecies("AL", 1)
	require.NoError(t, err)
	ni, err := core.NewSpecies("NI", 1)
	require.NoError(t, err)

	ph, err := core.NewPhase("GAMMA_PRIME", []core.Sublattice{
		{Sites: 3, Species: []core.Species{al, ni}},
		{Sites: 1, Species: []core.Species{al, ni}},
	})
	require.NoError(t, err)

	return ph
}

// stoichPhase builds the fully determined AL2NI model (all singletons).
func stoichPhase(t *testing.T) *core.Phase {
	t.Helper()
	al, err := core.NewSpecies("AL", 1)
	require.NoError(t, err)
	ni, err := core.NewSpecies("NI", 1)
	require.NoError(t, err)

	ph, err := core.NewPhase("AL2NI", []core.Sublattice{
		{Sites: 2, Species: []core.Species{al}},
		{Sites: 1, Species: []core.Species{ni}},
	})
	require.NoError(t, err)

	return ph
}

// TestConstitution_StoichiometricSinglePoint verifies the degenerate
// contract: zero free DOF yields exactly one all-ones point, regardless
// of the requested density.
func TestConstitution_StoichiometricSinglePoint(t *testing.T) {
	ph := stoichPhase(t)

	opts := sample.DefaultOptions()
	opts.Density = 500

	pts, err := sample.Constitution(ph, opts)
	require.NoError(t, err)
	require.Len(t, pts, 1, "stoichiometric phase must yield exactly one point")
	assert.Equal(t, []float64{1, 1}, pts[0], "the trivial coordinate is all ones")
}

// TestConstitution_SublatticeSums verifies that every sampled point's
// per-sublattice occupancies sum to 1 and stay inside the floored range.
func TestConstitution_SublatticeSums(t *testing.T) {
	ph := binaryPhase(t)

	opts := sample.DefaultOptions()
	opts.Density = 200

	pts, err := sample.Constitution(ph, opts)
	require.NoError(t, err)
	require.Len(t, pts, 4+200, "4 endmembers plus the requested density")

	for i, pt := range pts {
		require.Len(t, pt, ph.InternalDOF())
		assert.InDelta(t, 1.0, pt[0]+pt[1], 1e-12, "point %d sublattice 1 sum", i)
		assert.InDelta(t, 1.0, pt[2]+pt[3], 1e-12, "point %d sublattice 2 sum", i)
		for _, y := range pt {
			assert.GreaterOrEqual(t, y, core.MinSiteFraction, "point %d occupancy floor", i)
			assert.LessOrEqual(t, y, 1.0, "point %d occupancy ceiling", i)
		}
	}
}

// TestConstitution_Deterministic verifies bit-identical output across two
// calls with identical inputs.
func TestConstitution_Deterministic(t *testing.T) {
	ph := binaryPhase(t)

	a, err := sample.Constitution(ph, sample.DefaultOptions())
	require.NoError(t, err)
	b, err := sample.Constitution(ph, sample.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, a, b, "identical inputs must reproduce identical points")
}

// TestConstitution_EndmembersFirst verifies the point ordering contract:
// endmembers in cartesian order over the sorted constituents, then fill.
func TestConstitution_EndmembersFirst(t *testing.T) {
	ph := binaryPhase(t)

	pts, err := sample.Constitution(ph, sample.Options{Density: 0})
	require.NoError(t, err)
	require.Len(t, pts, 4, "density 0 must yield endmembers only")

	var (
		hi = 1 - core.MinSiteFraction
		lo = core.MinSiteFraction
	)
	assert.Equal(t, []float64{hi, lo, hi, lo}, pts[0], "AL|AL corner first")
	assert.Equal(t, []float64{hi, lo, lo, hi}, pts[1], "AL|NI next")
	assert.Equal(t, []float64{lo, hi, hi, lo}, pts[2], "NI|AL next")
	assert.Equal(t, []float64{lo, hi, lo, hi}, pts[3], "NI|NI last")
}

// TestConstitution_HaltonOffset verifies that distinct offsets cover
// distinct interior points while equal offsets reproduce.
func TestConstitution_HaltonOffset(t *testing.T) {
	ph := binaryPhase(t)

	base := sample.Options{Density: 10}
	shift := sample.Options{Density: 10, HaltonOffset: 7}

	a, err := sample.Constitution(ph, base)
	require.NoError(t, err)
	b, err := sample.Constitution(ph, shift)
	require.NoError(t, err)
	c, err := sample.Constitution(ph, shift)
	require.NoError(t, err)

	assert.NotEqual(t, a[4:], b[4:], "different offsets must fill differently")
	assert.Equal(t, b, c, "equal offsets must reproduce")
}

// TestConstitution_Override verifies the explicit-points bypass: points
// are validated, copied, and returned unchanged in order.
func TestConstitution_Override(t *testing.T) {
	ph := binaryPhase(t)

	given := [][]float64{
		{0.25, 0.75, 0.5, 0.5},
		{0.6, 0.4, 0.1, 0.9},
	}
	pts, err := sample.Constitution(ph, sample.Options{Points: given})
	require.NoError(t, err)
	require.Equal(t, given, pts, "override must pass through in order")

	// The result must be an isolated copy.
	given[0][0] = 0.99
	assert.Equal(t, 0.25, pts[0][0], "mutating the input must not reach the output")
}

// TestConstitution_OverrideValidation verifies the shape sentinels on
// caller-supplied points.
func TestConstitution_OverrideValidation(t *testing.T) {
	ph := binaryPhase(t)

	_, err := sample.Constitution(ph, sample.Options{Points: [][]float64{{0.5, 0.5}}})
	assert.ErrorIs(t, err, sample.ErrPointLength, "short point must error")

	_, err = sample.Constitution(ph, sample.Options{Points: [][]float64{{0.7, 0.7, 0.5, 0.5}}})
	assert.ErrorIs(t, err, sample.ErrPointSum, "sum 1.4 must error")

	_, err = sample.Constitution(ph, sample.Options{Points: [][]float64{{-0.1, 1.1, 0.5, 0.5}}})
	assert.ErrorIs(t, err, sample.ErrPointRange, "negative occupancy must error")

	nan := math.NaN()
	_, err = sample.Constitution(ph, sample.Options{Points: [][]float64{{nan, 1, 0.5, 0.5}}})
	assert.ErrorIs(t, err, sample.ErrPointRange, "NaN occupancy must error")
}

// TestConstitution_BadRequest verifies ErrNilPhase and ErrBadDensity.
func TestConstitution_BadRequest(t *testing.T) {
	_, err := sample.Constitution(nil, sample.DefaultOptions())
	assert.ErrorIs(t, err, sample.ErrNilPhase)

	_, err = sample.Constitution(binaryPhase(t), sample.Options{Density: -1})
	assert.ErrorIs(t, err, sample.ErrBadDensity)
}

// TestEndmembers_Count verifies the cartesian count Π kₛ for a wider
// model with a vacancy sublattice.
func TestEndmembers_Count(t *testing.T) {
	al, err := core.NewSpecies("AL", 1)
	require.NoError(t, err)
	cr, err := core.NewSpecies("CR", 1)
	require.NoError(t, err)
	ni, err := core.NewSpecies("NI", 1)
	require.NoError(t, err)

	ph, err := core.NewPhase("BCC_A2", []core.Sublattice{
		{Sites: 1, Species: []core.Species{al, cr, ni}},
		{Sites: 3, Species: []core.Species{ni, core.Vacancy()}},
	})
	require.NoError(t, err)

	ems, err := sample.Endmembers(ph)
	require.NoError(t, err)
	assert.Len(t, ems, 3*2, "endmember count must be the product of constituent counts")
}
