package render

import (
	"strings"

	"github.com/arthur-debert/templating/pkg/delimiters"
)

// InterpolateString replaces every delimited property reference in text.
// A nil or empty set uses DefaultDelimiters.
func InterpolateString(text string, set *delimiters.Set, escape string, props map[string]string) string {
	if set.Len() == 0 {
		set = DefaultDelimiters()
	}
	pairs := set.Pairs()

	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(text); {
		rest := text[i:]

		if escape != "" && strings.HasPrefix(rest, escape) {
			if p, ok := beginAt(rest[len(escape):], pairs); ok {
				b.WriteString(p.Begin)
				i += len(escape) + len(p.Begin)
				continue
			}
		}

		if n, ok := expand(&b, rest, pairs, props); ok {
			i += n
			continue
		}

		b.WriteByte(text[i])
		i++
	}
	return b.String()
}

// beginAt returns the first pair whose begin token starts s
func beginAt(s string, pairs []delimiters.Pair) (delimiters.Pair, bool) {
	for _, p := range pairs {
		if p.Begin != "" && strings.HasPrefix(s, p.Begin) {
			return p, true
		}
	}
	return delimiters.Pair{}, false
}

// expand writes the expression starting s, if any, and returns how many
// bytes of s it consumed.
func expand(b *strings.Builder, s string, pairs []delimiters.Pair, props map[string]string) (int, bool) {
	for _, p := range pairs {
		if p.Begin == "" || p.End == "" || !strings.HasPrefix(s, p.Begin) {
			continue
		}
		body := s[len(p.Begin):]
		end := strings.Index(body, p.End)
		if end < 0 {
			continue
		}
		if nl := strings.IndexByte(body[:end], '\n'); nl >= 0 {
			continue
		}

		n := len(p.Begin) + end + len(p.End)
		if value, ok := props[body[:end]]; ok {
			b.WriteString(value)
		} else {
			b.WriteString(s[:n])
		}
		return n, true
	}
	return 0, false
}
