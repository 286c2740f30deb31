package delimiters

import "strings"

const separator = "*"

// Pair is a begin/end token pair
type Pair struct {
	Begin string
	End   string
}

// StandardPair is the ${...} pair, also contributed by an absent entry
var StandardPair = Pair{Begin: "${", End: "}"}

// TokenPair returns a pair using the same token to open and close
func TokenPair(token string) Pair {
	return Pair{Begin: token, End: token}
}

// String renders the pair in its configuration form
func (p Pair) String() string {
	if p.Begin == p.End {
		return p.Begin
	}
	return p.Begin + separator + p.End
}

// Set is an ordered collection of unique pairs
type Set struct {
	pairs []Pair
	seen  map[Pair]struct{}
}

// NewSet returns a set holding pairs in order, duplicates dropped
func NewSet(pairs ...Pair) *Set {
	s := &Set{seen: make(map[Pair]struct{})}
	for _, p := range pairs {
		s.Add(p)
	}
	return s
}

// Add appends p unless an equal pair is present. It reports whether p was added.
func (s *Set) Add(p Pair) bool {
	if s.seen == nil {
		s.seen = make(map[Pair]struct{})
	}
	if _, ok := s.seen[p]; ok {
		return false
	}
	s.seen[p] = struct{}{}
	s.pairs = append(s.pairs, p)
	return true
}

// Contains reports whether p is in the set
func (s *Set) Contains(p Pair) bool {
	if s == nil {
		return false
	}
	_, ok := s.seen[p]
	return ok
}

// Len returns the number of pairs
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.pairs)
}

// Pairs returns the pairs in insertion order
func (s *Set) Pairs() []Pair {
	if s == nil {
		return nil
	}
	out := make([]Pair, len(s.pairs))
	copy(out, s.pairs)
	return out
}

// Clone returns an independent copy of the set
func (s *Set) Clone() *Set {
	return NewSet(s.Pairs()...)
}

// Strings renders every pair in configuration form
func (s *Set) Strings() []string {
	out := make([]string, 0, s.Len())
	for _, p := range s.Pairs() {
		out = append(out, p.String())
	}
	return out
}

func (s *Set) String() string {
	return "{" + strings.Join(s.Strings(), ", ") + "}"
}
