package calc_test

import (
	"fmt"

	"github.com/thermograd/gibbs/calc"
	"github.com/thermograd/gibbs/core"
)

// exampleRecord is a minimal PhaseRecord with a fixed molar energy.
type exampleRecord struct {
	ph     *core.Phase
	params []float64
}

func (r *exampleRecord) Phase() *core.Phase    { return r.ph }
func (r *exampleRecord) DOF() int              { return r.ph.InternalDOF() }
func (r *exampleRecord) Parameters() []float64 { return r.params }

func (r *exampleRecord) Evaluate(_ string, _, y []float64) (float64, error) {
	// A shallow well centered on the equimolar configuration.
	d := y[0] - 0.5

	return r.params[0] + 100*d*d, nil
}

func (r *exampleRecord) Gradient(_ string, _, y, dst []float64) error {
	dst[0] = 200 * (y[0] - 0.5)
	dst[1] = 0

	return nil
}

// ExampleCalculate evaluates two candidate phases over a small
// temperature sweep and reports the assembled grid shape plus the
// cheapest phase at each condition.
func ExampleCalculate() {
	al, _ := core.NewSpecies("AL", 1)
	ni, _ := core.NewSpecies("NI", 1)
	sl, _ := core.NewSublattice(1, al, ni)

	liquid, _ := core.NewPhase("LIQUID", []core.Sublattice{sl})
	bcc, _ := core.NewPhase("BCC_A2", []core.Sublattice{sl})

	records := []calc.PhaseRecord{
		&exampleRecord{ph: liquid, params: []float64{-500}},
		&exampleRecord{ph: bcc, params: []float64{-800}},
	}

	opts := calc.DefaultOptions()
	opts.Density = 10

	g, err := calc.Calculate(records, core.Conditions{"P": {101325}, "T": {300, 600}}, opts)
	if err != nil {
		fmt.Println("calculate failed:", err)

		return
	}

	fmt.Println("condition rows:", g.NumConds)
	fmt.Println("points:", g.Points)
	for c := 0; c < g.NumConds; c++ {
		fmt.Printf("row %d cheapest phase: %s\n", c, g.Phases[g.ArgminValue(c)])
	}
	// Output:
	// condition rows: 2
	// points: 24
	// row 0 cheapest phase: BCC_A2
	// row 1 cheapest phase: BCC_A2
}
