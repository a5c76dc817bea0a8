package solver

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"

	"github.com/thermograd/gibbs/calc"
	"github.com/thermograd/gibbs/core"
	"github.com/thermograd/gibbs/equil"
)

// Local refines composition sets in place under fixed single-valued
// conditions by penalized energy minimization.
//
// Method:
//
//	Per-sublattice occupancies are reparameterized through a softmax, so
//	the simplex constraints (positivity, unit sums) hold by construction
//	and the optimizer works on unconstrained variables. With more than
//	one set, phase fractions go through a softmax of their own, keeping
//	ΣNP = 1. The objective is
//
//	    F = Σᵢ NPᵢ·GMᵢ(yᵢ) + w·Σ_c (X_mix,c − X_target,c)²
//
//	with analytic gradients (record gradient composed with the softmax
//	Jacobian; mole fractions are ratios of linear forms in y).
//	Minimization runs under gonum optimize (BFGS by default,
//	Nelder–Mead when Config.DerivativeFree).
//
// Convergence is the conjunction of the optimizer verdict and the
// composition residual: ‖X_mix − X_target‖∞ ≤ Config.ConstraintTol.
// A line search that stalls at floating-point precision counts as a
// termination (the residual gate still applies); hitting the iteration
// limit or missing the residual tolerance is encoded in
// Refinement.Converged, never as an error. Errors are reserved for
// malformed requests and records rejecting evaluation.
//
// A Local is not safe for concurrent use: Refine overwrites Trace.
type Local struct {
	cfg Config

	// Trace holds the objective value at each major iteration of the
	// last Refine call when Config.KeepTrace is set.
	Trace []float64
}

// NewLocal returns a refiner with cfg normalized.
func NewLocal(cfg Config) *Local {
	cfg.normalize()

	return &Local{cfg: cfg}
}

// Refine implements equil.Solver.
//
// Steps:
//  1. Validate sets and conditions; adjust (clamp) composition targets.
//  2. Frame the problem: component universe across the sets' phases,
//     target columns, one softmax block per multi-constituent sublattice,
//     one for phase fractions when refining several sets.
//  3. Zero free variables (stoichiometric single set): no optimization,
//     verdict from the residual alone.
//  4. Minimize from the sets' current state; evaluation errors captured
//     in the closure abort afterwards.
//  5. Write the best state back through CompositionSet.Update (occupancy
//     floors reapplied) and re-measure the residual on the updated sets.
//
// Errors: ErrNoSets, ErrNilSet, ErrBatchConditions, ErrUnknownComponent,
// condition errors from core; record evaluation errors pass through.
//
// Complexity: O(MaxIterations · S·(DOF + C)) objective work plus the
// optimizer's own linear algebra.
func (l *Local) Refine(sets []*equil.CompositionSet, conds core.Conditions) (equil.Refinement, error) {
	// 1) Request validation.
	if len(sets) == 0 {
		return equil.Refinement{}, ErrNoSets
	}
	for _, cs := range sets {
		if cs == nil {
			return equil.Refinement{}, ErrNilSet
		}
	}
	if !conds.SinglePoint() {
		return equil.Refinement{}, ErrBatchConditions
	}
	adjusted, err := conds.Adjust()
	if err != nil {
		return equil.Refinement{}, err
	}
	ix, err := core.NewIndexer(adjusted)
	if err != nil {
		return equil.Refinement{}, err
	}

	// 2) Problem framing.
	prob, err := frameProblem(sets, ix, l.cfg.ConstraintWeight)
	if err != nil {
		return equil.Refinement{}, err
	}
	if l.cfg.KeepTrace {
		l.Trace = l.Trace[:0]
	}

	// 3) Nothing to move: a single stoichiometric set. The verdict is
	// the residual of the state the starting point already cached.
	if prob.dim == 0 {
		residual := prob.residual(sets)
		converged := residual <= l.cfg.ConstraintTol
		if l.cfg.Verbose {
			fmt.Printf("Local: 0 variables, residual %.3g, converged=%v\n", residual, converged)
		}

		return equil.Refinement{Converged: converged}, nil
	}

	// 4) Unconstrained minimization from the current state.
	x0 := prob.encode(make([]float64, prob.dim))
	p := optimize.Problem{
		Func: prob.value,
		Grad: prob.gradient,
	}
	settings := &optimize.Settings{
		MajorIterations:   l.cfg.MaxIterations,
		GradientThreshold: l.cfg.GradientTolerance,
		Converger: &optimize.FunctionConverge{
			Absolute:   l.cfg.FunctionTolerance,
			Iterations: convergeWindow,
		},
	}
	if l.cfg.KeepTrace {
		settings.Recorder = &traceRecorder{trace: &l.Trace}
	}
	var method optimize.Method = &optimize.BFGS{}
	if l.cfg.DerivativeFree {
		method = &optimize.NelderMead{}
	}

	result, optErr := optimize.Minimize(p, x0, settings, method)
	if prob.evalErr != nil {
		return equil.Refinement{}, prob.evalErr
	}
	if result == nil {
		// Optimizer bailed before producing a location; the sets keep
		// their starting state.
		return equil.Refinement{}, nil
	}

	// 5) Write back and re-measure at the final state.
	if err = prob.apply(result.X, sets); err != nil {
		return equil.Refinement{}, err
	}
	var (
		residual   = prob.residual(sets)
		terminated = (optErr == nil && optimConverged(result.Status)) || stalled(optErr)
		converged  = terminated && residual <= l.cfg.ConstraintTol
		ref        = equil.Refinement{Converged: converged, Iterations: result.Stats.MajorIterations}
	)
	if l.cfg.Verbose {
		fmt.Printf("Local: %d sets, %d variables, %d iterations, residual %.3g, converged=%v\n",
			len(sets), prob.dim, ref.Iterations, residual, converged)
	}

	return ref, nil
}

// convergeWindow is the iteration span the objective must stay within
// FunctionTolerance before the converger fires.
const convergeWindow = 20

// stalled reports whether the optimizer stopped because it could not
// make further progress at floating-point precision. A stall is a
// termination, not a failure: the residual gate still decides the
// verdict.
func stalled(err error) bool {
	return errors.Is(err, optimize.ErrLinesearcherFailure) ||
		errors.Is(err, optimize.ErrNoProgress)
}

// optimConverged maps optimizer termination statuses onto the converged
// side of the verdict; iteration and evaluation limits fall through.
func optimConverged(s optimize.Status) bool {
	switch s {
	case optimize.Success,
		optimize.FunctionThreshold,
		optimize.FunctionConvergence,
		optimize.GradientThreshold,
		optimize.StepConvergence,
		optimize.MethodConverge:
		return true
	default:
		return false
	}
}

// traceRecorder appends the objective value of every major iteration to
// an external slice.
type traceRecorder struct {
	trace *[]float64
}

func (r *traceRecorder) Init() error { return nil }

func (r *traceRecorder) Record(loc *optimize.Location, op optimize.Operation, _ *optimize.Stats) error {
	if op == optimize.MajorIteration {
		*r.trace = append(*r.trace, loc.F)
	}

	return nil
}

// block is one softmax-reduced sublattice: set index, coordinate range
// within that set's Y, and variable range within the flat vector.
type block struct {
	set      int
	yLo, yHi int
	xLo, xHi int
}

// refineProblem carries the framed objective: sets, fixed state
// variables, composition targets, softmax blocks, and scratch buffers.
// value and gradient are closures over this state for gonum optimize.
type refineProblem struct {
	sets       []*equil.CompositionSet
	statevars  []float64
	components []string
	targets    []float64
	targetCols []int
	weight     float64

	blocks []block
	npBase int // flat offset of the phase-fraction block; −1 when fixed
	dim    int

	// Per-set sublattice flattening, built once.
	molW [][]float64
	molC [][]int

	// Scratch reused across objective calls.
	y    [][]float64
	np   []float64
	gy   [][]float64
	gSet [][]float64
	xmix []float64
	xbuf []float64

	evalErr error
}

// frameProblem builds the reduced coordinate system over the sets'
// current state and resolves composition conditions against the sets'
// component universe.
func frameProblem(sets []*equil.CompositionSet, ix *core.Indexer, weight float64) (*refineProblem, error) {
	phases := make([]*core.Phase, len(sets))
	for i, cs := range sets {
		phases[i] = cs.Phase()
	}

	prob := &refineProblem{
		sets:       sets,
		statevars:  equil.StateVarValues(ix, 0, nil),
		components: core.Components(phases...),
		weight:     weight,
		npBase:     -1,
	}

	// Composition conditions → component columns.
	for _, name := range ix.Names() {
		if !core.IsComposition(name) {
			continue
		}
		var (
			species = core.CompositionSpecies(name)
			col     = -1
		)
		for i, comp := range prob.components {
			if comp == species {
				col = i

				break
			}
		}
		if col < 0 {
			return nil, ErrUnknownComponent
		}
		prob.targets = append(prob.targets, ix.Coord(name)[0])
		prob.targetCols = append(prob.targetCols, col)
	}

	// One softmax block per multi-constituent sublattice.
	for s, cs := range sets {
		offset := 0
		for _, sl := range cs.Phase().Sublattices() {
			k := len(sl.Species)
			if k > 1 {
				prob.blocks = append(prob.blocks, block{
					set: s,
					yLo: offset, yHi: offset + k,
					xLo: prob.dim, xHi: prob.dim + k,
				})
				prob.dim += k
			}
			offset += k
		}
		w, c := calc.MoleWeights(cs.Phase(), prob.components)
		prob.molW = append(prob.molW, w)
		prob.molC = append(prob.molC, c)
	}
	if len(sets) > 1 {
		prob.npBase = prob.dim
		prob.dim += len(sets)
	}

	// Scratch sized to the sets.
	prob.np = make([]float64, len(sets))
	prob.xmix = make([]float64, len(prob.components))
	for _, cs := range sets {
		dof := cs.Record().DOF()
		prob.y = append(prob.y, make([]float64, dof))
		prob.gy = append(prob.gy, make([]float64, dof))
		prob.gSet = append(prob.gSet, make([]float64, dof))
	}

	return prob, nil
}

// encode packs the sets' current state into the flat variable vector:
// log-occupancies per block, log-fractions for the NP block. Softmax of
// a log vector reproduces the original values exactly (up to shift).
func (p *refineProblem) encode(x []float64) []float64 {
	for _, b := range p.blocks {
		y := p.sets[b.set].Y
		for i := 0; i < b.xHi-b.xLo; i++ {
			x[b.xLo+i] = math.Log(math.Max(y[b.yLo+i], core.MinSiteFraction))
		}
	}
	if p.npBase >= 0 {
		for s, cs := range p.sets {
			x[p.npBase+s] = math.Log(math.Max(cs.NP, 1e-12))
		}
	}

	return x
}

// decode expands the flat vector into per-set occupancies and phase
// fractions in the scratch buffers. Occupancies of singleton sublattices
// and the fractions of a fixed-NP solve come from the sets unchanged.
func (p *refineProblem) decode(x []float64) {
	for s, cs := range p.sets {
		copy(p.y[s], cs.Y)
		p.np[s] = cs.NP
	}
	for _, b := range p.blocks {
		softmax(p.y[b.set][b.yLo:b.yHi], x[b.xLo:b.xHi])
	}
	if p.npBase >= 0 {
		softmax(p.np, x[p.npBase:p.npBase+len(p.sets)])
	}
}

// mix fills p.xmix with the NP-weighted overall mole fractions of the
// decoded state and returns the per-set atom totals in dst (reused).
func (p *refineProblem) mix(dst []float64) []float64 {
	if cap(dst) < len(p.sets) {
		dst = make([]float64, len(p.sets))
	} else {
		dst = dst[:len(p.sets)]
	}
	for c := range p.xmix {
		p.xmix[c] = 0
	}
	for s := range p.sets {
		var (
			w     = p.molW[s]
			cols  = p.molC[s]
			total = floats.Dot(w, p.y[s])
		)
		dst[s] = total
		if total <= 0 {
			continue
		}
		for d, yv := range p.y[s] {
			if cols[d] >= 0 {
				p.xmix[cols[d]] += p.np[s] * w[d] * yv / total
			}
		}
	}

	return dst
}

// value is the penalized objective F(x).
func (p *refineProblem) value(x []float64) float64 {
	p.decode(x)

	total := 0.0
	for s, cs := range p.sets {
		e, err := cs.Record().Evaluate(calc.OutputEnergy, p.statevars, p.y[s])
		if err != nil {
			p.evalErr = err

			return math.Inf(1)
		}
		total += p.np[s] * e
	}

	p.xbuf = p.mix(p.xbuf)
	for j, col := range p.targetCols {
		d := p.xmix[col] - p.targets[j]
		total += p.weight * d * d
	}

	return total
}

// gradient fills grad with ∂F/∂x at x: the record gradients and the
// penalty's linear-form derivatives, pushed through the softmax Jacobian
// dy_d/dz_e = y_d(δ_de − y_e) block by block.
func (p *refineProblem) gradient(grad, x []float64) {
	for i := range grad {
		grad[i] = 0
	}
	p.decode(x)

	// Per-set energy and dE/dy at the decoded state.
	energies := make([]float64, len(p.sets))
	for s, cs := range p.sets {
		e, err := cs.Record().Evaluate(calc.OutputEnergy, p.statevars, p.y[s])
		if err != nil {
			p.evalErr = err

			return
		}
		if err = cs.Record().Gradient(calc.OutputEnergy, p.statevars, p.y[s], p.gy[s]); err != nil {
			p.evalErr = err

			return
		}
		energies[s] = e
	}

	p.xbuf = p.mix(p.xbuf)
	totals := p.xbuf

	// ∂F/∂y per set: NP·dE/dy plus the penalty through x_c = P_c/Q.
	for s := range p.sets {
		var (
			g     = p.gSet[s]
			w     = p.molW[s]
			cols  = p.molC[s]
			total = totals[s]
		)
		for d := range g {
			g[d] = p.np[s] * p.gy[s][d]
		}
		if total <= 0 {
			continue
		}
		for j, col := range p.targetCols {
			var (
				delta = p.xmix[col] - p.targets[j]
				xc    = 0.0
			)
			for d, yv := range p.y[s] {
				if cols[d] == col {
					xc += w[d] * yv
				}
			}
			xc /= total
			for d := range g {
				ind := 0.0
				if cols[d] == col {
					ind = 1.0
				}
				g[d] += 2 * p.weight * delta * p.np[s] * w[d] * (ind - xc) / total
			}
		}
	}

	// Softmax chain per occupancy block.
	for _, b := range p.blocks {
		var (
			y   = p.y[b.set][b.yLo:b.yHi]
			g   = p.gSet[b.set][b.yLo:b.yHi]
			dot = 0.0
		)
		for d := range y {
			dot += g[d] * y[d]
		}
		for e := range y {
			grad[b.xLo+e] = y[e] * (g[e] - dot)
		}
	}

	// Softmax chain over phase fractions: ∂F/∂NPᵢ = Eᵢ + 2w·ΣΔX_c·xᵢ,c.
	if p.npBase >= 0 {
		var (
			h   = make([]float64, len(p.sets))
			dot = 0.0
		)
		for s := range p.sets {
			h[s] = energies[s]
			if totals[s] <= 0 {
				continue
			}
			var (
				w    = p.molW[s]
				cols = p.molC[s]
			)
			for j, col := range p.targetCols {
				xc := 0.0
				for d, yv := range p.y[s] {
					if cols[d] == col {
						xc += w[d] * yv
					}
				}
				xc /= totals[s]
				h[s] += 2 * p.weight * (p.xmix[col] - p.targets[j]) * xc
			}
		}
		for s := range p.sets {
			dot += h[s] * p.np[s]
		}
		for s := range p.sets {
			grad[p.npBase+s] = p.np[s] * (h[s] - dot)
		}
	}
}

// apply writes the state at x back into the sets. Occupancy floors are
// reapplied block by block (softmax tails can underflow to zero) and the
// cached energy/gradient refresh through Update.
func (p *refineProblem) apply(x []float64, sets []*equil.CompositionSet) error {
	p.decode(x)
	for _, b := range p.blocks {
		clampSimplex(p.y[b.set][b.yLo:b.yHi])
	}
	for s, cs := range sets {
		if err := cs.Update(p.y[s], p.np[s], p.statevars); err != nil {
			return err
		}
	}

	return nil
}

// residual returns ‖X_mix − X_target‖∞ over the sets' cached state; 0
// when no composition conditions constrain the solve.
func (p *refineProblem) residual(sets []*equil.CompositionSet) float64 {
	if len(p.targets) == 0 {
		return 0
	}

	for c := range p.xmix {
		p.xmix[c] = 0
	}
	for _, cs := range sets {
		p.xbuf = cs.MoleFractions(p.components, p.xbuf)
		for c, v := range p.xbuf {
			p.xmix[c] += cs.NP * v
		}
	}

	worst := 0.0
	for j, col := range p.targetCols {
		if d := math.Abs(p.xmix[col] - p.targets[j]); d > worst {
			worst = d
		}
	}

	return worst
}

// softmax fills dst with the shifted-exponential normalization of z.
func softmax(dst, z []float64) {
	m := floats.Max(z)
	sum := 0.0
	for i, v := range z {
		e := math.Exp(v - m)
		dst[i] = e
		sum += e
	}
	floats.Scale(1/sum, dst)
}

// clampSimplex floors each entry at MinSiteFraction and renormalizes to
// unit sum, keeping ln y finite at simplex corners.
func clampSimplex(y []float64) {
	sum := 0.0
	for i, v := range y {
		if v < core.MinSiteFraction {
			v = core.MinSiteFraction
			y[i] = v
		}
		sum += v
	}
	floats.Scale(1/sum, y)
}
