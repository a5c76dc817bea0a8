// Package core defines species, sublattice phases, condition maps, and
// sentinel errors for the core subpackage of github.com/thermograd/gibbs.
package core

import (
	"errors"
)

// Sentinel errors for model construction and condition handling.
var (
	// ErrEmptyPhaseName indicates a phase was constructed with an empty name.
	ErrEmptyPhaseName = errors.New("core: phase name must be non-empty")
	// ErrNoSublattices indicates a phase was constructed with no sublattices.
	ErrNoSublattices = errors.New("core: phase must have at least one sublattice")
	// ErrEmptySublattice indicates a sublattice with no allowed species.
	ErrEmptySublattice = errors.New("core: sublattice must allow at least one species")
	// ErrBadSiteCount indicates a non-positive or non-finite sublattice site count.
	ErrBadSiteCount = errors.New("core: sublattice site count must be positive and finite")
	// ErrDuplicateConstituent indicates the same species twice in one sublattice.
	ErrDuplicateConstituent = errors.New("core: duplicate species within a sublattice")
	// ErrBadSpecies indicates an empty species name or a negative atom count.
	ErrBadSpecies = errors.New("core: species name must be non-empty and atoms non-negative")
	// ErrNoConditions indicates an empty condition map where one was required.
	ErrNoConditions = errors.New("core: condition map must name at least one state variable")
	// ErrEmptyCondition indicates a state variable mapped to zero values.
	ErrEmptyCondition = errors.New("core: condition must carry at least one value")
)

// Canonical state-variable names. Composition conditions are formed by
// prefixing a species name with CompositionPrefix (e.g. "X_AL").
const (
	// StateTemperature is the temperature state variable, in kelvin.
	StateTemperature = "T"
	// StatePressure is the pressure state variable, in pascal.
	StatePressure = "P"
	// StateMoles is the total-moles state variable.
	StateMoles = "N"
	// CompositionPrefix marks overall mole-fraction conditions.
	CompositionPrefix = "X_"
)

// Numerical floor constants shared by sampling and condition adjustment.
const (
	// VacancyName is the conventional name of the vacancy species.
	VacancyName = "VA"
	// MinSiteFraction is the smallest site occupancy ever produced or
	// accepted; keeps y·ln(y) terms finite at simplex corners.
	MinSiteFraction = 1e-12
	// MinConditionFraction bounds composition conditions away from the pure
	// ends during Adjust.
	MinConditionFraction = 1e-9
)

// Species is a chemical constituent identified by name and atom count.
// Vacancies carry Atoms == 0 and are excluded from "real" component counts.
type Species struct {
	// Name is the canonical constituent name, by convention upper-case ("AL").
	Name string
	// Atoms is the number of atoms contributed per occupied site.
	Atoms float64
}

// Sublattice is one site group of a phase's crystal model: a site
// multiplicity and the sorted list of species allowed to occupy it.
type Sublattice struct {
	// Sites is the stoichiometric site count (multiplicity) of the group.
	Sites float64
	// Species is the allowed-constituent list, sorted by name, no duplicates.
	Species []Species
}

// Phase identifies one candidate phase and owns its sublattice model.
// A Phase is immutable after construction; all accessors are read-only.
type Phase struct {
	name  string
	subls []Sublattice
	dof   int
}

// Conditions maps canonical state-variable names to one or more values.
// A single-point map carries exactly one value per variable; any variable
// with more than one value switches the calculation into batch mode over
// the cross product of all values.
type Conditions map[string][]float64
