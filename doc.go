// Package gibbs is an in-memory toolkit for fast approximate phase
// equilibrium: sampling sublattice constitutions, evaluating phase
// properties over condition grids, and refining equilibria — built to sit
// inside tight parameter-estimation loops.
//
// What is gibbs?
//
//	A deterministic, allocation-conscious library that brings together:
//		• Core model: species, sublattice phases, state-variable conditions
//		• Sampling: endmember + low-discrepancy constitution point sets
//		• Evaluation: property grids over condition × point cross products
//		• Selection: cheapest-sample starting points for refinement
//		• Refinement: constrained and global equilibrium drivers
//		• Fitting: parameter bounds scoring and AICc model selection
//		• Plots: grid and refinement-trace rendering
//
// Why choose gibbs?
//
//   - Deterministic by construction – identical inputs give bit-identical
//     grids; no time-based randomness anywhere
//   - Shared-parameter aware – phase records alias one parameter vector,
//     so an outer fitting loop mutates once and re-evaluates everywhere
//   - Explicit failure taxonomy – shape errors are sentinels; numerical
//     infeasibility is encoded in results, never thrown
//
// Everything is organized under flat subpackages:
//
//	core/   — Species, Sublattice, Phase, Conditions & canonical ordering
//	sample/ — constitution sampling over sublattice simplexes
//	calc/   — PhaseRecord contract, Grid dataset, Calculate assembly
//	equil/  — composition sets, starting points, equilibrium drivers
//	solver/ — default numerical backends (local refinement, LP start)
//	cef/    — compound-energy-formalism reference records
//	fit/    — parameter bounds predicate & AICc model selection
//	viz/    — gonum/plot renderers for grids and traces
//
// Quick sketch:
//
//	records → sample → calc.Calculate → equil.SinglePhaseStart → solver
//
//	go get github.com/thermograd/gibbs
package gibbs
