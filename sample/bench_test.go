package sample_test

import (
	"testing"

	"github.com/thermograd/gibbs/core"
	"github.com/thermograd/gibbs/sample"
)

// benchPhase builds a ternary two-sublattice model (3×3 constituents).
func benchPhase(b *testing.B) *core.Phase {
	b.Helper()
	al, _ := core.NewSpecies("AL", 1)
	cr, _ := core.NewSpecies("CR", 1)
	ni, _ := core.NewSpecies("NI", 1)

	ph, err := core.NewPhase("FCC_L12", []core.Sublattice{
		{Sites: 3, Species: []core.Species{al, cr, ni}},
		{Sites: 1, Species: []core.Species{al, cr, ni}},
	})
	if err != nil {
		b.Fatalf("phase construction: %v", err)
	}

	return ph
}

// BenchmarkConstitution_Density50 measures the default sampling pass.
func BenchmarkConstitution_Density50(b *testing.B) {
	ph := benchPhase(b)
	opts := sample.DefaultOptions()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := sample.Constitution(ph, opts); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkConstitution_Density500 measures a dense screening pass.
func BenchmarkConstitution_Density500(b *testing.B) {
	ph := benchPhase(b)
	opts := sample.Options{Density: 500}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := sample.Constitution(ph, opts); err != nil {
			b.Fatal(err)
		}
	}
}
