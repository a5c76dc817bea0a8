// Package calc defines the phase-record contract, the grid dataset, and
// sentinel errors for the calc subpackage of github.com/thermograd/gibbs.
package calc

import (
	"errors"

	"github.com/thermograd/gibbs/core"
	"github.com/thermograd/gibbs/sample"
)

// Sentinel errors for evaluation and assembly.
var (
	// ErrNilRecord indicates a nil phase record.
	ErrNilRecord = errors.New("calc: phase record must be non-nil")
	// ErrNoRecords indicates an empty record list.
	ErrNoRecords = errors.New("calc: at least one phase record required")
	// ErrDuplicatePhase indicates two records bound to the same phase name.
	ErrDuplicatePhase = errors.New("calc: duplicate phase name across records")
	// ErrNoPoints indicates an empty point set for a phase.
	ErrNoPoints = errors.New("calc: at least one point required per phase")
	// ErrDOFMismatch indicates a point whose length differs from the
	// record's internal-DOF count. Fatal: no silent truncation.
	ErrDOFMismatch = errors.New("calc: point length must equal record internal DOF")
	// ErrBadMaxDOF indicates a padding width smaller than the record DOF.
	ErrBadMaxDOF = errors.New("calc: max DOF must be at least the record internal DOF")
	// ErrParamLength indicates a parameter vector whose length differs
	// from a record's own vector.
	ErrParamLength = errors.New("calc: parameter vector length must match record")
	// ErrPairedLength indicates paired (non-broadcast) conditions whose
	// value arrays do not align one-to-one with the points.
	ErrPairedLength = errors.New("calc: paired conditions must carry one value per point")
	// ErrNoResults indicates assembly over zero per-phase results.
	ErrNoResults = errors.New("calc: at least one phase result required")
	// ErrNilResult indicates a nil per-phase result in assembly.
	ErrNilResult = errors.New("calc: phase result must be non-nil")
	// ErrConditionMismatch indicates per-phase results whose condition
	// coordinates differ in names, shape, or values. Fatal usage error.
	ErrConditionMismatch = errors.New("calc: condition coordinates must match across phase results")
	// ErrSchemaMismatch indicates per-phase results that disagree on
	// output name, component list, DOF padding, or pairing mode.
	ErrSchemaMismatch = errors.New("calc: phase results must share output, components, and padding")
)

const (
	// OutputEnergy is the default evaluated property: molar Gibbs energy.
	OutputEnergy = "GM"
	// FakePhaseName labels injected pure-component reference points.
	FakePhaseName = "_FAKE_"
	// DefaultLargeEnergy is the sentinel assigned to infeasible points so
	// they never win a minimum-energy selection.
	DefaultLargeEnergy = 1e10
)

// PhaseRecord is an opaque, externally constructed evaluator bound to one
// phase.
//
// Contracts:
//   - DOF() equals Phase().InternalDOF(); every y passed to Evaluate or
//     Gradient has exactly that length.
//   - Parameters() returns the record's live parameter vector, aliased:
//     mutating it in place changes all subsequent evaluations. Two
//     concurrent calculations therefore need distinct record instances
//     (or external serialization); see UpdateParameters.
//   - Evaluate maps (output name, state-variable values in the caller's
//     sorted order, internal coordinates) to a scalar property value.
//     The vector carries true state variables only (T, P, N — see
//     core.Conditions.Split); composition conditions never reach it.
//     Unknown outputs and malformed shapes are errors; numerically bad
//     results are values (NaN/Inf), not errors.
//   - Gradient writes ∂output/∂y into dst (length DOF()) at fixed state
//     variables.
type PhaseRecord interface {
	Phase() *core.Phase
	DOF() int
	Parameters() []float64
	Evaluate(output string, statevars, y []float64) (float64, error)
	Gradient(output string, statevars, y []float64, dst []float64) error
}

// Sampler is the pluggable point-generation primitive used by Calculate.
// The default is sample.Constitution.
type Sampler func(ph *core.Phase, opts sample.Options) ([][]float64, error)

// Options configures a Calculate pass.
//
// Fields:
//   - Output        — property to evaluate; "" means OutputEnergy.
//   - Density       — extra sampled points per phase beyond endmembers;
//     0 means endmembers only.
//   - HaltonOffset  — offset into the sampling stream (see sample).
//   - PointsByPhase — per-phase explicit point overrides, keyed by phase
//     name; phases absent from the map are sampled normally.
//   - Sampler       — custom sampling primitive; nil means
//     sample.Constitution.
//   - FakePoints    — inject one pure-component reference point per
//     component into the first sorted phase's block.
//   - Paired        — evaluate point i at condition i instead of the full
//     cross product; every condition array must then align with points.
//   - LargeEnergy   — infeasibility sentinel; 0 means DefaultLargeEnergy.
//   - Parameters    — when non-nil, copied into every record's parameter
//     vector before evaluation (in-place, shared side effect).
type Options struct {
	Output        string
	Density       int
	HaltonOffset  int
	PointsByPhase map[string][][]float64
	Sampler       Sampler
	FakePoints    bool
	Paired        bool
	LargeEnergy   float64
	Parameters    []float64
}

// DefaultOptions returns the standard Calculate configuration:
// Output=OutputEnergy, Density=sample.DefaultDensity, broadcast mode,
// LargeEnergy=DefaultLargeEnergy, no fake points, no overrides.
func DefaultOptions() Options {
	return Options{
		Output:      OutputEnergy,
		Density:     sample.DefaultDensity,
		LargeEnergy: DefaultLargeEnergy,
	}
}
