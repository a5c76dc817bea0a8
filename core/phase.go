package core

import (
	"math"
	"sort"
)

// NewSpecies builds a Species after validating name and atom count.
//
// Contracts:
//   - name must be non-empty.
//   - atoms must be finite and ≥ 0 (0 denotes a vacancy-like constituent).
//
// Complexity: O(1).
func NewSpecies(name string, atoms float64) (Species, error) {
	if name == "" || atoms < 0 || math.IsNaN(atoms) || math.IsInf(atoms, 0) {
		return Species{}, ErrBadSpecies
	}

	return Species{Name: name, Atoms: atoms}, nil
}

// Vacancy returns the canonical vacancy species ("VA", zero atoms).
func Vacancy() Species {
	return Species{Name: VacancyName, Atoms: 0}
}

// IsVacancy reports whether s contributes no atoms to the phase.
func (s Species) IsVacancy() bool {
	return s.Atoms == 0
}

// NewSublattice builds a Sublattice with the given site multiplicity and
// allowed species. The constituent list is copied and sorted by name.
//
// Errors: ErrBadSiteCount, ErrEmptySublattice, ErrBadSpecies,
// ErrDuplicateConstituent.
//
// Complexity: O(k·log k) for k constituents.
func NewSublattice(sites float64, species ...Species) (Sublattice, error) {
	if sites <= 0 || math.IsNaN(sites) || math.IsInf(sites, 0) {
		return Sublattice{}, ErrBadSiteCount
	}
	if len(species) == 0 {
		return Sublattice{}, ErrEmptySublattice
	}

	// Copy before sorting: callers keep ownership of their slice.
	cs := make([]Species, len(species))
	copy(cs, species)
	sort.Slice(cs, func(i, j int) bool { return cs[i].Name < cs[j].Name })

	for i, sp := range cs {
		if sp.Name == "" || sp.Atoms < 0 || math.IsNaN(sp.Atoms) || math.IsInf(sp.Atoms, 0) {
			return Sublattice{}, ErrBadSpecies
		}
		if i > 0 && cs[i-1].Name == sp.Name {
			return Sublattice{}, ErrDuplicateConstituent
		}
	}

	return Sublattice{Sites: sites, Species: cs}, nil
}

// NewPhase builds an immutable Phase from a name and its sublattice model.
// Sublattices are re-validated and defensively copied, so the input slice
// may be reused or mutated by the caller afterwards.
//
// Contracts:
//   - name must be non-empty; phases are later iterated sorted by name.
//   - at least one sublattice; each with ≥ 1 species and positive sites.
//
// Complexity: O(S·K·log K) for S sublattices of up to K constituents.
func NewPhase(name string, sublattices []Sublattice) (*Phase, error) {
	if name == "" {
		return nil, ErrEmptyPhaseName
	}
	if len(sublattices) == 0 {
		return nil, ErrNoSublattices
	}

	var (
		subls = make([]Sublattice, len(sublattices))
		dof   int
		err   error
	)
	for i, sl := range sublattices {
		// NewSublattice re-sorts and re-checks; construction is a cold path.
		subls[i], err = NewSublattice(sl.Sites, sl.Species...)
		if err != nil {
			return nil, err
		}
		dof += len(subls[i].Species)
	}

	return &Phase{name: name, subls: subls, dof: dof}, nil
}

// Name returns the phase name.
func (p *Phase) Name() string { return p.name }

// NumSublattices returns the number of site groups in the model.
func (p *Phase) NumSublattices() int { return len(p.subls) }

// Sublattices returns the phase's site groups in model order.
// The returned slice is shared with the Phase; treat it as read-only.
func (p *Phase) Sublattices() []Sublattice { return p.subls }

// InternalDOF returns the internal degree-of-freedom count: the total
// number of site-occupancy coordinates across all sublattices. This is the
// length of every internal-coordinate vector for the phase.
func (p *Phase) InternalDOF() int { return p.dof }

// FreeDOF returns the number of independent occupancies: Σ(kₛ−1) over
// sublattices with kₛ constituents. Zero means the phase is stoichiometric
// (every sublattice fully determined), so sampling yields a single point
// and refinement has nothing to move.
func (p *Phase) FreeDOF() int { return p.dof - len(p.subls) }

// Constituents returns the distinct species allowed anywhere in the phase,
// sorted by name. Allocates; intended for setup paths, not hot loops.
func (p *Phase) Constituents() []Species {
	seen := make(map[string]Species, p.dof)
	for _, sl := range p.subls {
		for _, sp := range sl.Species {
			seen[sp.Name] = sp
		}
	}
	out := make([]Species, 0, len(seen))
	for _, sp := range seen {
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}

// Components returns the sorted union of non-vacant species names across
// the given phases. This is the canonical component ordering used for
// mole-fraction columns and reference points.
//
// Complexity: O(Σ DOF · log C) for C distinct components.
func Components(phases ...*Phase) []string {
	seen := make(map[string]struct{})
	for _, p := range phases {
		for _, sl := range p.subls {
			for _, sp := range sl.Species {
				if sp.IsVacancy() {
					continue
				}
				seen[sp.Name] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

// SortPhases orders phases by name in place and returns the slice.
// Every multi-phase pipeline stage iterates phases in this order.
func SortPhases(phases []*Phase) []*Phase {
	sort.Slice(phases, func(i, j int) bool { return phases[i].name < phases[j].name })

	return phases
}
