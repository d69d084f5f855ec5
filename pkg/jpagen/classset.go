package jpagen

import "sort"

// ClassSet is a set of fully-qualified class names.
// Names are compared by exact, case-sensitive string equality.
type ClassSet map[string]struct{}

// NewClassSet returns a set containing the given names.
func NewClassSet(names ...string) ClassSet {
	s := make(ClassSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Add inserts name and reports whether it was not already present.
func (s ClassSet) Add(name string) bool {
	if _, ok := s[name]; ok {
		return false
	}
	s[name] = struct{}{}
	return true
}

// Contains reports whether name is in the set.
func (s ClassSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Len returns the number of names in the set.
func (s ClassSet) Len() int {
	return len(s)
}

// Difference returns the names in s that are not in other.
// Neither set is modified.
func (s ClassSet) Difference(other ClassSet) ClassSet {
	out := make(ClassSet)
	for n := range s {
		if !other.Contains(n) {
			out[n] = struct{}{}
		}
	}
	return out
}

// Clone returns an independent copy of the set.
func (s ClassSet) Clone() ClassSet {
	out := make(ClassSet, len(s))
	for n := range s {
		out[n] = struct{}{}
	}
	return out
}

// Sorted returns the names in ascending lexicographic order.
func (s ClassSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
