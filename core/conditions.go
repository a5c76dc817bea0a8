package core

import (
	"sort"
)

// Point wraps per-variable scalars into a single-point Conditions map.
// Convenience for the common fixed-conditions case.
func Point(vals map[string]float64) Conditions {
	c := make(Conditions, len(vals))
	for name, v := range vals {
		c[name] = []float64{v}
	}

	return c
}

// Clone returns a deep copy of the condition map.
func (c Conditions) Clone() Conditions {
	out := make(Conditions, len(c))
	for name, vals := range c {
		cp := make([]float64, len(vals))
		copy(cp, vals)
		out[name] = cp
	}

	return out
}

// StateVars returns the state-variable names sorted lexicographically.
// This ordering is canonical: every stage that lays out per-variable data
// (grids, records, results) uses it.
func (c Conditions) StateVars() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Split partitions the condition names into true state variables (the
// axes a phase energy function depends on: temperature, pressure, total
// moles) and overall-composition conditions ("X_*"), each sorted
// lexicographically. Evaluators receive values for the first group only;
// the second group constrains equilibrium, not the energy surface.
func (c Conditions) Split() (statevars, compositions []string) {
	for name := range c {
		if IsComposition(name) {
			compositions = append(compositions, name)
		} else {
			statevars = append(statevars, name)
		}
	}
	sort.Strings(statevars)
	sort.Strings(compositions)

	return statevars, compositions
}

// SinglePoint reports whether every state variable maps to exactly one
// value, i.e. the map denotes a point calculation rather than a batch.
func (c Conditions) SinglePoint() bool {
	for _, vals := range c {
		if len(vals) != 1 {
			return false
		}
	}

	return true
}

// NumPoints returns the size of the cross product over all variables.
// An empty map yields 1 (a single unconditioned point).
func (c Conditions) NumPoints() int {
	n := 1
	for _, vals := range c {
		n *= len(vals)
	}

	return n
}

// Adjust validates the map and returns a cleaned deep copy: every variable
// must carry at least one value, and composition conditions are clamped
// into [MinConditionFraction, 1−MinConditionFraction] so downstream solves
// never see an exactly-pure overall composition.
//
// Errors: ErrNoConditions, ErrEmptyCondition.
//
// Complexity: O(total values).
func (c Conditions) Adjust() (Conditions, error) {
	if len(c) == 0 {
		return nil, ErrNoConditions
	}

	out := make(Conditions, len(c))
	for name, vals := range c {
		if len(vals) == 0 {
			return nil, ErrEmptyCondition
		}
		cp := make([]float64, len(vals))
		copy(cp, vals)
		if IsComposition(name) {
			for i, v := range cp {
				if v < MinConditionFraction {
					cp[i] = MinConditionFraction
				} else if v > 1-MinConditionFraction {
					cp[i] = 1 - MinConditionFraction
				}
			}
		}
		out[name] = cp
	}

	return out, nil
}

// IsComposition reports whether name denotes an overall mole-fraction
// condition ("X_<SPECIES>").
func IsComposition(name string) bool {
	return len(name) > len(CompositionPrefix) && name[:len(CompositionPrefix)] == CompositionPrefix
}

// CompositionSpecies extracts the species name from a composition
// condition name; returns "" when name is not a composition condition.
func CompositionSpecies(name string) string {
	if !IsComposition(name) {
		return ""
	}

	return name[len(CompositionPrefix):]
}

// Indexer enumerates the cross product of a condition map in a fixed
// row-major order: state variables sorted by name, the last-sorted
// variable varying fastest. Build once per calculation, then decode any
// flat condition index into its per-variable values.
type Indexer struct {
	names  []string
	values [][]float64
	total  int
}

// NewIndexer validates c and prepares cross-product decoding.
//
// Errors: ErrNoConditions, ErrEmptyCondition.
//
// Complexity: O(V·log V + total values) construction; O(V) per At call.
func NewIndexer(c Conditions) (*Indexer, error) {
	if len(c) == 0 {
		return nil, ErrNoConditions
	}

	var (
		names  = c.StateVars()
		values = make([][]float64, len(names))
		total  = 1
	)
	for i, name := range names {
		vals := c[name]
		if len(vals) == 0 {
			return nil, ErrEmptyCondition
		}
		cp := make([]float64, len(vals))
		copy(cp, vals)
		values[i] = cp
		total *= len(cp)
	}

	return &Indexer{names: names, values: values, total: total}, nil
}

// Len returns the cross-product size.
func (ix *Indexer) Len() int { return ix.total }

// Names returns the sorted state-variable names. Read-only.
func (ix *Indexer) Names() []string { return ix.names }

// Coord returns the value array for one state variable, in input order.
// Read-only; returns nil for unknown names.
func (ix *Indexer) Coord(name string) []float64 {
	for i, n := range ix.names {
		if n == name {
			return ix.values[i]
		}
	}

	return nil
}

// Positions maps each given name to its index within Names(), for
// extracting a subset of an At row; unknown names yield −1.
func (ix *Indexer) Positions(names []string) []int {
	out := make([]int, len(names))
	for k, name := range names {
		out[k] = -1
		for i, n := range ix.names {
			if n == name {
				out[k] = i

				break
			}
		}
	}

	return out
}

// At decodes flat index i into one value per state variable, appended into
// dst (reused when capacity allows). Index layout is row-major: the last
// sorted variable cycles fastest.
//
// Contracts: 0 ≤ i < Len(); violations panic (programmer error).
func (ix *Indexer) At(i int, dst []float64) []float64 {
	if i < 0 || i >= ix.total {
		panic("core: condition index out of range")
	}

	if cap(dst) < len(ix.names) {
		dst = make([]float64, len(ix.names))
	} else {
		dst = dst[:len(ix.names)]
	}
	rem := i
	for k := len(ix.names) - 1; k >= 0; k-- {
		n := len(ix.values[k])
		dst[k] = ix.values[k][rem%n]
		rem /= n
	}

	return dst
}
