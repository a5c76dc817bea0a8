package equil_test

import (
	"fmt"

	"github.com/thermograd/gibbs/calc"
	"github.com/thermograd/gibbs/core"
	"github.com/thermograd/gibbs/equil"
)

// exampleRecord is a minimal PhaseRecord whose molar energy is linear in
// temperature: params[0] + params[1]·T.
type exampleRecord struct {
	ph     *core.Phase
	params []float64
}

func (r *exampleRecord) Phase() *core.Phase    { return r.ph }
func (r *exampleRecord) DOF() int              { return r.ph.InternalDOF() }
func (r *exampleRecord) Parameters() []float64 { return r.params }

func (r *exampleRecord) Evaluate(_ string, statevars, _ []float64) (float64, error) {
	return r.params[0] + r.params[1]*statevars[0], nil
}

func (r *exampleRecord) Gradient(_ string, _, _, dst []float64) error {
	for d := range dst {
		dst[d] = 0
	}

	return nil
}

// ExampleNoRefinement sweeps two temperatures across two candidate
// phases and reads off the unrefined stable phase per condition row —
// the screening shortcut that skips the solver entirely.
func ExampleNoRefinement() {
	al, _ := core.NewSpecies("AL", 1)
	ni, _ := core.NewSpecies("NI", 1)
	sl, _ := core.NewSublattice(1, al, ni)

	liquid, _ := core.NewPhase("LIQUID", []core.Sublattice{sl})
	bcc, _ := core.NewPhase("BCC_A2", []core.Sublattice{sl})

	// LIQUID is flat; BCC_A2 destabilizes with temperature.
	records := []calc.PhaseRecord{
		&exampleRecord{ph: liquid, params: []float64{-2000, 0}},
		&exampleRecord{ph: bcc, params: []float64{-3000, 2}},
	}

	conds := core.Conditions{"T": {400, 700}}

	opts := calc.DefaultOptions()
	opts.Density = 10
	grid, err := calc.Calculate(records, conds, opts)
	if err != nil {
		fmt.Println("calculate failed:", err)

		return
	}

	res, err := equil.NoRefinement(records, conds, grid, equil.CheapestStart{})
	if err != nil {
		fmt.Println("equilibrium failed:", err)

		return
	}

	for c := 0; c < res.NumConds; c++ {
		fmt.Printf("T=%.0f: %s GM=%.0f %s\n",
			res.Coords[0][c], res.RowPhases(c)[0], res.GM[c], res.Status[c])
	}
	// Output:
	// T=400: BCC_A2 GM=-2200 STARTED
	// T=700: LIQUID GM=-2000 STARTED
}
