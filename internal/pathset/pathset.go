// Package pathset provides an insertion-ordered set of filesystem paths.
package pathset

// Set keeps paths unique and remembers the order they were added in.
// The zero value is an empty set ready to use.
type Set struct {
	paths []string
	index map[string]int
}

// New builds a set from paths, dropping duplicates.
func New(paths ...string) *Set {
	s := &Set{}
	for _, p := range paths {
		s.Add(p)
	}
	return s
}

// Contains reports membership.
func (s *Set) Contains(path string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[path]
	return ok
}

// Add inserts path; it returns false when it was already present.
func (s *Set) Add(path string) bool {
	if s.Contains(path) {
		return false
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	s.index[path] = len(s.paths)
	s.paths = append(s.paths, path)
	return true
}

// Remove deletes path; it returns false when it was not present.
func (s *Set) Remove(path string) bool {
	i, ok := s.index[path]
	if !ok {
		return false
	}
	s.paths = append(s.paths[:i], s.paths[i+1:]...)
	delete(s.index, path)
	for j := i; j < len(s.paths); j++ {
		s.index[s.paths[j]] = j
	}
	return true
}

// Toggle flips membership and returns the new state.
func (s *Set) Toggle(path string) bool {
	if s.Remove(path) {
		return false
	}
	s.Add(path)
	return true
}

// Len returns the number of paths.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.paths)
}

// Paths returns a copy of the members in insertion order.
func (s *Set) Paths() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.paths))
	copy(out, s.paths)
	return out
}
