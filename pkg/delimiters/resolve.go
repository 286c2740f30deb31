package delimiters

import (
	"github.com/arthur-debert/templating/pkg/logging"
)

// Resolve computes the delimiter set a renderer should use.
//
// With no custom entries the defaults are returned as they are. Otherwise
// the result starts from the defaults when useDefaults is set and each
// custom entry is appended in order. An absent entry contributes
// StandardPair whether or not the defaults were included.
func Resolve(useDefaults bool, custom []Spec, defaults *Set) *Set {
	logger := logging.GetLogger("delimiters")

	if len(custom) == 0 {
		return defaults.Clone()
	}

	result := NewSet()
	if useDefaults {
		for _, p := range defaults.Pairs() {
			result.Add(p)
		}
	}

	for _, spec := range custom {
		p := spec.Pair()
		if !result.Add(p) {
			logger.Trace().Str("delimiter", p.String()).Msg("Duplicate delimiter ignored")
		}
	}

	logger.Debug().
		Bool("useDefaults", useDefaults).
		Strs("delimiters", result.Strings()).
		Msg("Resolved delimiters")
	return result
}
