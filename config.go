package flatconf

import (
	"reflect"
)

// Config merges an ordered list of sources into one flat configuration.
// Values are resolved by scanning sources front to back; the first source
// supplying a present value wins, and the variable's declared default
// applies when none does.
//
// The variable set is fixed at construction; sources may be attached at
// either end at any time and are never removed. Config is not safe for
// concurrent use: attaches mutate the source list in place, so callers
// sharing one across goroutines must synchronize externally.
type Config struct {
	vars     map[string]Variable
	order    []string // registration order
	sources  []any    // index 0 is the front (highest precedence)
	defaults map[string]any
}

// New creates a Config from the given variables, registered in order.
// It fails with a ConfigError if two variables share a name, or if a
// declared default is of a non-comparable type (default tracking relies on
// value equality).
func New(vars ...Variable) (*Config, error) {
	c := &Config{
		vars:     make(map[string]Variable, len(vars)),
		order:    make([]string, 0, len(vars)),
		defaults: make(map[string]any),
	}

	for _, v := range vars {
		if _, dup := c.vars[v.Name]; dup {
			return nil, configErrorf("duplicate config variable %q", v.Name)
		}
		if v.Default != nil && !reflect.TypeOf(v.Default).Comparable() {
			return nil, configErrorf("config variable %q has default of non-comparable type %T", v.Name, v.Default)
		}

		c.vars[v.Name] = v
		c.order = append(c.order, v.Name)

		if v.Default != nil {
			c.defaults[v.Name] = v.Default
		}
	}

	return c, nil
}

// PushFront attaches a source at the front of the source list, giving it the
// highest precedence. The source must be one of the recognized shapes; on
// rejection the source list is unchanged.
func (c *Config) PushFront(src any) error {
	if err := validateSource(src); err != nil {
		return err
	}

	c.sources = append([]any{src}, c.sources...)
	return nil
}

// PushBack attaches a source at the back of the source list, giving it the
// lowest precedence. The source must be one of the recognized shapes; on
// rejection the source list is unchanged.
func (c *Config) PushBack(src any) error {
	if err := validateSource(src); err != nil {
		return err
	}

	c.sources = append(c.sources, src)
	return nil
}

// Find searches the sources in order for name and returns the first present
// value. If no source supplies one, the variable's default is returned, or
// nil when it has none. Sources stay live: every call re-runs the scan.
func (c *Config) Find(name string) (any, error) {
	for _, src := range c.sources {
		value, ok, err := lookupValue(src, name)
		if err != nil {
			return nil, err
		}
		if ok {
			return value, nil
		}
	}

	return c.defaults[name], nil
}

// DefaultedValues returns the names whose resolved value still equals their
// declared default. A source re-supplying the exact default value does not
// remove a name from this set.
func (c *Config) DefaultedValues() (map[string]bool, error) {
	defaulted := make(map[string]bool)

	for _, name := range c.order {
		def, ok := c.defaults[name]
		if !ok {
			continue
		}

		value, err := c.Find(name)
		if err != nil {
			return nil, err
		}
		if equalValues(value, def) {
			defaulted[name] = true
		}
	}

	return defaulted, nil
}

// ProvidedByCLI returns the names currently supplied by at least one
// CLI-parse-result source. Computed by re-scanning all sources per name.
func (c *Config) ProvidedByCLI() (map[string]bool, error) {
	provided := make(map[string]bool)

	for _, name := range c.order {
		srcs, err := c.sourcesFor(name)
		if err != nil {
			return nil, err
		}
		for _, src := range srcs {
			if _, ok := src.(*CLIArgs); ok {
				provided[name] = true
				break
			}
		}
	}

	return provided, nil
}

// VariablesWithValues returns every declared name whose resolved value is
// present, with that value. The returned map carries no ordering; use
// Values().Pairs() when registration order matters.
func (c *Config) VariablesWithValues() (map[string]any, error) {
	values := make(map[string]any)

	for _, name := range c.order {
		value, err := c.Find(name)
		if err != nil {
			return nil, err
		}
		if value != nil {
			values[name] = value
		}
	}

	return values, nil
}

// Values returns the live view over this config. The view is not a
// snapshot: sources attached after it is obtained are immediately visible.
func (c *Config) Values() *Values {
	return &Values{config: c}
}

// sourcesFor collects the sources that currently supply a present value for
// name, in precedence order.
func (c *Config) sourcesFor(name string) ([]any, error) {
	var supplying []any

	for _, src := range c.sources {
		_, ok, err := lookupValue(src, name)
		if err != nil {
			return nil, err
		}
		if ok {
			supplying = append(supplying, src)
		}
	}

	return supplying, nil
}

// equalValues compares two resolved values. Either side being of a
// non-comparable type means not equal; declared defaults are already
// guaranteed comparable at construction.
func equalValues(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return false
	}
	return a == b
}
