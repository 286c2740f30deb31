package delimiters

import (
	"strings"

	"github.com/arthur-debert/templating/pkg/errors"
)

// Kind tags a delimiter specification
type Kind int

const (
	KindAbsent Kind = iota
	KindToken
	KindPair
)

// Spec is one user-supplied delimiter entry: absent, a single token, or an
// explicit begin/end pair.
type Spec struct {
	kind  Kind
	begin string
	end   string
}

// Absent returns the specification for an entry with no value
func Absent() Spec {
	return Spec{kind: KindAbsent}
}

// Token returns the specification for a single token
func Token(t string) Spec {
	return Spec{kind: KindToken, begin: t, end: t}
}

// PairOf returns the specification for an explicit begin/end pair
func PairOf(begin, end string) Spec {
	return Spec{kind: KindPair, begin: begin, end: end}
}

// Kind returns the variant of s
func (s Spec) Kind() Kind {
	return s.kind
}

// Pair returns the pair s contributes. Absent entries contribute StandardPair.
func (s Spec) Pair() Pair {
	if s.kind == KindAbsent {
		return StandardPair
	}
	return Pair{Begin: s.begin, End: s.end}
}

func (s Spec) String() string {
	switch s.kind {
	case KindAbsent:
		return ""
	case KindToken:
		return s.begin
	default:
		return s.begin + separator + s.end
	}
}

// ParseSpec parses a configuration entry. The empty string is the absent
// marker; otherwise the entry splits on its first "*", and an entry without
// one is a single token.
func ParseSpec(s string) (Spec, error) {
	if s == "" {
		return Absent(), nil
	}
	begin, end, found := strings.Cut(s, separator)
	if !found {
		return Token(s), nil
	}
	if begin == "" || end == "" {
		return Spec{}, errors.Newf(errors.ErrInvalidInput, "invalid delimiter '%s': begin and end must both be non-empty", s).
			WithDetail("delimiter", s)
	}
	return PairOf(begin, end), nil
}

// ParseSpecs parses entries in order, failing on the first invalid one
func ParseSpecs(entries []string) ([]Spec, error) {
	specs := make([]Spec, 0, len(entries))
	for _, e := range entries {
		spec, err := ParseSpec(e)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
