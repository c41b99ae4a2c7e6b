package flatconf

import "strings"

// Action describes how the generated CLI flag for a variable behaves.
type Action int

const (
	// ActionNone is the default: the flag takes a single typed argument.
	ActionNone Action = iota

	// ActionStoreTrue makes the flag a no-argument toggle storing true.
	ActionStoreTrue

	// ActionStoreFalse makes the flag a no-argument toggle storing false.
	ActionStoreFalse
)

// Kind is the type tag used to coerce the generated flag's argument.
type Kind int

const (
	// KindAny performs no coercion; the argument is kept as a string.
	KindAny Kind = iota
	KindString
	KindBool
	KindInt
	KindFloat
)

// Variable describes a single configuration variable, with everything needed
// to populate a Config from various sources and to generate its CLI flag.
// Variables are registered once at construction time and never mutated.
type Variable struct {
	// Name is the unique key of the variable, as found in sources.
	// Underscores are allowed; the generated flag spelling replaces them
	// with hyphens.
	Name string

	// Short is an optional single-letter flag alias.
	Short string

	// Action selects the CLI flag behavior.
	Action Action

	// Default is the value used when no source supplies one. nil means no
	// default. Defaults must be of a comparable type so that default
	// tracking can use value equality.
	Default any

	// Type coerces the flag argument during parsing. Ignored for
	// store-true/store-false flags, which never take an argument.
	Type Kind

	// Help is the usage text for the generated flag.
	Help string

	// Metavar names the flag's argument in usage output.
	Metavar string
}

// IsBool reports whether the variable can be interpreted as a boolean:
// its type tag is bool, its action is store-true/store-false, or its
// default is a bool value.
func (v Variable) IsBool() bool {
	if v.Type == KindBool {
		return true
	}
	if v.Action == ActionStoreTrue || v.Action == ActionStoreFalse {
		return true
	}
	_, ok := v.Default.(bool)
	return ok
}

// FlagName is the primary flag spelling: the variable name with underscores
// replaced by hyphens.
func (v Variable) FlagName() string {
	return strings.ReplaceAll(v.Name, "_", "-")
}

// Flags returns the flag spellings to register with a CLI parser: the
// primary --flag, plus -s when a short alias is declared.
func (v Variable) Flags() []string {
	flags := []string{"--" + v.FlagName()}
	if v.Short != "" {
		flags = append(flags, "-"+v.Short)
	}
	return flags
}

// usage renders the pflag usage string. Non-boolean flags embed the metavar
// using pflag's backquote convention so it names the argument in help output.
func (v Variable) usage() string {
	if v.IsBool() || v.Metavar == "" {
		return v.Help
	}
	if v.Help == "" {
		return "`" + v.Metavar + "`"
	}
	return v.Help + " `" + v.Metavar + "`"
}
