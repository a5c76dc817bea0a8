// Package cef is the in-repo reference implementation of the
// calc.PhaseRecord contract: a compound-energy-formalism Gibbs energy
// model with ideal mixing and Redlich-Kister excess terms.
//
// What:
//
//   - Model evaluates one phase's molar Gibbs energy GM and its analytic
//     coordinate gradient from a flat coefficient vector: endmember
//     energies for the reference surface, R·T-weighted ideal mixing over
//     every sublattice, and per-pair Redlich-Kister interaction terms,
//     normalized per mole of atoms.
//   - NewRecord builds a Model for a phase; ParamCount gives the expected
//     coefficient-vector length for a phase and expansion order.
//   - Clone isolates the parameter vector when calculations run
//     concurrently.
//
// Parameter semantics:
//
// Parameters() aliases the live vector. An outer fitting loop mutates it
// in place between evaluations (see calc.UpdateParameters) and every
// later Evaluate sees the new coefficients. This is deliberate shared
// state: isolation is opt-in through Clone, matching the way records are
// re-parameterized during model selection.
//
// The model supports the calc.OutputEnergy output only; asking for any
// other property returns ErrUnknownOutput. Numerically degenerate
// coordinates (all-vacancy, zero mass) evaluate to non-finite values,
// never errors, so grid assembly can absorb them with its sentinel.
//
// Errors:
//
//   - ErrNilPhase, ErrNoTemperature, ErrBadRKOrder, ErrParamCount:
//     construction.
//   - ErrUnknownOutput, ErrStateVarLength: evaluation requests.
//   - calc.ErrDOFMismatch is returned directly for coordinate-shape
//     violations, the way the rest of the pipeline reports them.
package cef
