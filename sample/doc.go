// Package sample generates candidate internal-configuration points over a
// phase's sublattice-constrained simplexes.
//
// What:
//
//   - Constitution produces, for one phase, an ordered point set: every
//     pure endmember first, then Density additional points spread over the
//     occupancy simplexes by a low-discrepancy (Halton) sequence mapped
//     through the exponential-spacing transform.
//   - Endmembers enumerates just the pure-constituent corner points.
//   - ValidatePoints checks a caller-supplied point set against a phase's
//     shape and per-sublattice sum-to-one constraints.
//
// Why:
//
//   - The equilibrium engine seeds local refinement from the cheapest
//     sampled point, so coverage and determinism matter more than
//     statistical randomness: identical inputs must yield bit-identical
//     point sets. No RNG is involved anywhere.
//
// Guarantees:
//
//   - Every occupancy lies in [MinSiteFraction, 1]; per-sublattice sums
//     equal 1 within 1e-12.
//   - A stoichiometric phase (zero free DOF) yields exactly one point.
//   - Point order is stable: endmembers in cartesian order over the sorted
//     constituents, then Halton points by increasing index.
//
// Complexity:
//
//   - Endmembers: O(E·D) for E endmember combinations, D internal DOF.
//   - Constitution: O((E+Density)·D).
//
// Errors:
//
//   - ErrNilPhase, ErrBadDensity: malformed request.
//   - ErrPointLength, ErrPointRange, ErrPointSum: override validation.
package sample
