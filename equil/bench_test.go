package equil_test

import (
	"testing"

	"github.com/thermograd/gibbs/calc"
	"github.com/thermograd/gibbs/core"
	"github.com/thermograd/gibbs/equil"
)

// benchGrid builds a three-phase ternary grid over a temperature batch.
func benchGrid(b *testing.B, conds core.Conditions) ([]calc.PhaseRecord, *calc.Grid) {
	b.Helper()
	al, _ := core.NewSpecies("AL", 1)
	cr, _ := core.NewSpecies("CR", 1)
	ni, _ := core.NewSpecies("NI", 1)
	sl, err := core.NewSublattice(1, al, cr, ni)
	if err != nil {
		b.Fatal(err)
	}

	names := []string{"LIQUID", "FCC_A1", "BCC_A2"}
	records := make([]calc.PhaseRecord, len(names))
	for i, name := range names {
		ph, perr := core.NewPhase(name, []core.Sublattice{sl})
		if perr != nil {
			b.Fatal(perr)
		}
		records[i] = &benchRecord{ph: ph, params: []float64{float64(-1000 * (i + 1))}}
	}

	g, err := calc.Calculate(records, conds, calc.DefaultOptions())
	if err != nil {
		b.Fatal(err)
	}

	return records, g
}

type benchRecord struct {
	ph     *core.Phase
	params []float64
}

func (r *benchRecord) Phase() *core.Phase    { return r.ph }
func (r *benchRecord) DOF() int              { return r.ph.InternalDOF() }
func (r *benchRecord) Parameters() []float64 { return r.params }

func (r *benchRecord) Evaluate(_ string, statevars, y []float64) (float64, error) {
	return r.params[0] + statevars[len(statevars)-1]*y[0]*y[1], nil
}

func (r *benchRecord) Gradient(_ string, statevars, y, dst []float64) error {
	t := statevars[len(statevars)-1]
	dst[0] = t * y[1]
	dst[1] = t * y[0]
	dst[2] = 0

	return nil
}

// BenchmarkSinglePhaseStart measures the argmin selection plus set
// construction on a fixed grid.
func BenchmarkSinglePhaseStart(b *testing.B) {
	conds := core.Conditions{"P": {101325}, "T": {500}}
	records, grid := benchGrid(b, conds)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := equil.SinglePhaseStart(records, conds, grid); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkNoRefinement measures the screening pass over a temperature
// batch: per-row selection and result assembly, no solver.
func BenchmarkNoRefinement(b *testing.B) {
	conds := core.Conditions{"P": {101325}, "T": {300, 400, 500, 600}}
	records, grid := benchGrid(b, conds)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := equil.NoRefinement(records, conds, grid, equil.CheapestStart{}); err != nil {
			b.Fatal(err)
		}
	}
}
