package calc

import (
	"sort"

	"github.com/thermograd/gibbs/core"
	"github.com/thermograd/gibbs/sample"
)

// Assemble merges per-phase grids into one dataset, concatenating along
// the points axis only. All other axes must already match: state-variable
// names and coordinate values are compared exactly (bit-for-bit), and
// output name, component universe, padding width, and pairing mode must
// agree — any disagreement is a fatal usage error, never silently
// truncated.
//
// A single input is passed through unchanged (no concatenation, same
// pointer). Input order is preserved; Calculate supplies phases sorted by
// name, so assembled point order is deterministic.
//
// Errors: ErrNoResults, ErrNilResult, ErrConditionMismatch,
// ErrSchemaMismatch.
//
// Complexity: O(total values).
func Assemble(grids ...*Grid) (*Grid, error) {
	if len(grids) == 0 {
		return nil, ErrNoResults
	}
	for _, g := range grids {
		if g == nil {
			return nil, ErrNilResult
		}
	}
	if len(grids) == 1 {
		return grids[0], nil
	}

	head := grids[0]
	for _, g := range grids[1:] {
		if g.Output != head.Output || g.Paired != head.Paired || g.MaxDOF != head.MaxDOF ||
			!equalStrings(g.Components, head.Components) {
			return nil, ErrSchemaMismatch
		}
		if g.NumConds != head.NumConds || !equalStrings(g.StateVars, head.StateVars) {
			return nil, ErrConditionMismatch
		}
		for i, arr := range g.Coords {
			if !equalFloats(arr, head.Coords[i]) {
				return nil, ErrConditionMismatch
			}
		}
	}

	total := 0
	for _, g := range grids {
		total += g.Points
	}

	out := &Grid{
		Output:     head.Output,
		Paired:     head.Paired,
		Components: head.Components,
		StateVars:  head.StateVars,
		Coords:     head.Coords,
		NumConds:   head.NumConds,
		MaxDOF:     head.MaxDOF,
		Points:     total,
		Phases:     make([]string, 0, total),
		Fake:       make([]bool, 0, total),
		Y:          make([]float64, 0, total*head.MaxDOF),
		X:          make([]float64, 0, total*len(head.Components)),
		Values:     make([]float64, 0, head.NumConds*total),
	}
	for _, g := range grids {
		out.Phases = append(out.Phases, g.Phases...)
		out.Fake = append(out.Fake, g.Fake...)
		out.Y = append(out.Y, g.Y...)
		out.X = append(out.X, g.X...)
	}
	for c := 0; c < head.NumConds; c++ {
		for _, g := range grids {
			out.Values = append(out.Values, g.Row(c)...)
		}
	}

	return out, nil
}

// Calculate runs the full sampling-and-evaluation pass over a set of
// phase records and external conditions, returning the assembled grid.
//
// Steps:
//  1. Validate records (non-nil, unique phase names) and order them by
//     phase name; iteration, sampling, and concatenation all follow this
//     order so identical inputs produce bit-identical grids.
//  2. When opts.Parameters is set, copy it into every record first (the
//     shared in-place mutation an outer fitting loop relies on).
//  3. Sample each phase via opts.Sampler (default sample.Constitution),
//     honoring per-phase explicit overrides in opts.PointsByPhase.
//  4. Evaluate each record over its points; reference points are injected
//     only into the first sorted phase's block when opts.FakePoints.
//  5. Assemble the per-phase results along the points axis.
//
// Errors: ErrNoRecords, ErrNilRecord, ErrDuplicatePhase, ErrParamLength,
// condition errors from core, and the evaluation/assembly sentinels.
//
// Complexity: O(phases · NumConds · points · DOF).
func Calculate(records []PhaseRecord, conds core.Conditions, opts Options) (*Grid, error) {
	// 1) Record validation and canonical ordering.
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	sorted := make([]PhaseRecord, len(records))
	copy(sorted, records)
	for _, rec := range sorted {
		if rec == nil {
			return nil, ErrNilRecord
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Phase().Name() < sorted[j].Phase().Name()
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Phase().Name() == sorted[i].Phase().Name() {
			return nil, ErrDuplicatePhase
		}
	}

	if opts.Output == "" {
		opts.Output = OutputEnergy
	}
	if opts.LargeEnergy == 0 {
		opts.LargeEnergy = DefaultLargeEnergy
	}
	sampler := opts.Sampler
	if sampler == nil {
		sampler = sample.Constitution
	}

	// 2) Shared parameter-vector update.
	if opts.Parameters != nil {
		if err := UpdateParameters(sorted, opts.Parameters); err != nil {
			return nil, err
		}
	}

	ix, err := core.NewIndexer(conds)
	if err != nil {
		return nil, err
	}

	var (
		phases = make([]*core.Phase, len(sorted))
		maxDOF = MaxDOF(sorted)
	)
	for i, rec := range sorted {
		phases[i] = rec.Phase()
	}
	components := core.Components(phases...)

	// 3–4) Per-phase sampling and evaluation, in sorted order.
	results := make([]*Grid, len(sorted))
	for i, rec := range sorted {
		sopts := sample.Options{Density: opts.Density, HaltonOffset: opts.HaltonOffset}
		if ov, ok := opts.PointsByPhase[rec.Phase().Name()]; ok {
			sopts.Points = ov
		}
		pts, serr := sampler(rec.Phase(), sopts)
		if serr != nil {
			return nil, serr
		}

		results[i], err = ComputePhaseValues(rec, ix, pts, ValueOptions{
			Output:      opts.Output,
			Components:  components,
			MaxDOF:      maxDOF,
			FakePoints:  opts.FakePoints && i == 0,
			Paired:      opts.Paired,
			LargeEnergy: opts.LargeEnergy,
		})
		if err != nil {
			return nil, err
		}
	}

	// 5) Deterministic concatenation.
	return Assemble(results...)
}

// equalStrings reports element-wise equality.
func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// equalFloats reports exact element-wise equality (no tolerance: the
// coordinate axes of mergeable results must be the same values, not
// nearby ones).
func equalFloats(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
