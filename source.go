package flatconf

import (
	"gopkg.in/ini.v1"
)

// Sources are opaque values owned by the host. Exactly three shapes are
// recognized:
//
//   - map[string]any: a plain mapping; a nil value counts as absent.
//   - *CLIArgs: the parse result of the generated parser (see Parser).
//   - *ini.Section: a section view attached by FileConfig.Read.
//
// Anything else is rejected at attach time with a ConfigError, and the same
// error guards the lookup path in case a bad source slips through.

// validateSource checks that src is one of the recognized source shapes.
func validateSource(src any) error {
	switch src.(type) {
	case map[string]any, *CLIArgs, *ini.Section:
		return nil
	default:
		return sourceTypeError(src)
	}
}

// lookupValue fetches key from a single source, reporting whether the source
// currently supplies a present value for it.
func lookupValue(src any, key string) (any, bool, error) {
	switch s := src.(type) {
	case map[string]any:
		v, ok := s[key]
		if !ok || v == nil {
			return nil, false, nil
		}
		return v, true, nil
	case *CLIArgs:
		v, ok := s.Value(key)
		return v, ok, nil
	case *ini.Section:
		if !s.HasKey(key) {
			return nil, false, nil
		}
		return s.Key(key).String(), true, nil
	default:
		return nil, false, sourceTypeError(src)
	}
}

// describeSource names a source for dump attribution.
func describeSource(src any) string {
	switch s := src.(type) {
	case map[string]any:
		return "mapping"
	case *CLIArgs:
		return "cli"
	case *ini.Section:
		return "ini:" + s.Name()
	default:
		return "unknown"
	}
}
