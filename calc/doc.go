// Package calc evaluates phase records over sampled points and condition
// grids, and assembles per-phase results into one indexed dataset.
//
// What:
//
//   - PhaseRecord is the capability contract for externally built
//     evaluators: internal-DOF count, an aliased mutable parameter vector,
//     and (state variables, internal coordinates) → property evaluation.
//   - Grid is the uniform dataset: per-point phase labels, fake-point
//     tags, NaN-padded internal coordinates, overall mole fractions, and
//     property values laid out condition-major.
//   - ComputePhaseValues evaluates one record over a point set, injecting
//     pure-component reference ("fake") points on request and assigning
//     the large-energy sentinel to infeasible (zero-mass) points.
//   - Assemble concatenates per-phase grids along the points axis under
//     strict coordinate-equality checks; a single input passes through.
//   - Calculate orchestrates the full pass: sorted-phase iteration,
//     sampling (or caller override), evaluation, assembly.
//
// Why:
//
//	The assembled grid feeds a minimum-energy starting-point selection
//	inside a numerical optimizer, so the layout is deterministic: phases
//	sorted by name, points in sampling order, conditions in the canonical
//	row-major cross-product order of core.Indexer. Identical inputs give
//	bit-identical grids.
//
// Failure taxonomy:
//
//   - Shape and consistency violations (DOF mismatch, coordinate
//     mismatch, paired-length mismatch) are sentinel errors and abort.
//   - Numerical infeasibility is never an error: zero-mass points receive
//     the large-energy sentinel so they cannot win a minimum, and NaN
//     evaluations are carried through without winning selections.
//
// Errors:
//
//   - ErrNilRecord, ErrNoRecords, ErrDuplicatePhase, ErrNoPoints,
//     ErrDOFMismatch, ErrBadMaxDOF, ErrParamLength: request shape.
//   - ErrPairedLength: non-broadcast conditions misaligned with points.
//   - ErrNoResults, ErrConditionMismatch, ErrSchemaMismatch: assembly.
package calc
