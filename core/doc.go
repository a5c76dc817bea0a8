// Package core defines the foundational model types for gibbs: species,
// sublattice phases, and external-condition maps.
//
// What:
//
//   - Species pairs a constituent name with its atom count; vacancies carry
//     zero atoms and are excluded from "real" component accounting.
//   - Phase wraps an ordered sublattice model (site counts + allowed species
//     per sublattice) and exposes the internal degree-of-freedom count that
//     sampling and refinement operate on. Immutable once built.
//   - Conditions maps canonical state-variable names ("T", "P", "N",
//     "X_<SPECIES>") to one or more values; multi-valued maps denote batch
//     calculations over the full cross product.
//   - Indexer walks that cross product in a fixed row-major order over the
//     lexicographically sorted state-variable names.
//
// Why:
//
//   - Every downstream stage (sampling, evaluation, assembly, refinement)
//     keys its determinism on the canonical orderings fixed here: species
//     sorted by name inside each sublattice, state variables sorted by name,
//     cross products walked row-major.
//
// Conventions:
//
//   - The vacancy species is conventionally named "VA" and is the only
//     species with Atoms == 0.
//   - Composition conditions use the "X_" prefix: X_AL is the overall mole
//     fraction of AL. Adjust clamps them away from the simplex boundary.
//
// Errors:
//
//   - ErrEmptyPhaseName, ErrNoSublattices, ErrEmptySublattice,
//     ErrBadSiteCount, ErrDuplicateConstituent, ErrBadSpecies: phase
//     construction violations.
//   - ErrNoConditions, ErrEmptyCondition: malformed condition maps.
package core
