package flatconf

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Parser is a CLI argument parser generated from a Config's variables.
// Boolean-like variables become no-argument toggle flags; all others accept
// one argument, coerced per the variable's Kind.
//
// The parser never injects its own defaults: flags the user did not pass are
// simply absent from the parse result, leaving default handling entirely to
// the Config.
type Parser struct {
	flags *pflag.FlagSet
	vars  []Variable
}

// CLIArgs is the result of parsing command-line arguments. It holds only
// the flags the user actually passed and is attachable to a Config as a
// source.
type CLIArgs struct {
	values map[string]any
}

// Value returns the parsed value for the variable name, if the
// corresponding flag was passed.
func (a *CLIArgs) Value(name string) (any, bool) {
	v, ok := a.values[name]
	return v, ok
}

// NewParser builds a Parser covering every declared variable, in
// registration order.
func (c *Config) NewParser() *Parser {
	vars := make([]Variable, 0, len(c.order))
	for _, name := range c.order {
		vars = append(vars, c.vars[name])
	}

	return &Parser{flags: newFlagSet(vars), vars: vars}
}

func newFlagSet(vars []Variable) *pflag.FlagSet {
	fs := pflag.NewFlagSet("flatconf", pflag.ContinueOnError)
	fs.SortFlags = false

	for _, v := range vars {
		registerFlag(fs, v)
	}

	return fs
}

// FlagSet exposes the underlying flag set so a host can merge it into its
// own command-line handling.
func (p *Parser) FlagSet() *pflag.FlagSet {
	return p.flags
}

// Parse parses args and returns the flags the user passed. Unknown flags
// and malformed values fail with the flag set's parse error. Each call
// parses against a fresh flag set, so a Parser can be reused: flags from an
// earlier call never leak into a later result.
func (p *Parser) Parse(args []string) (*CLIArgs, error) {
	fs := newFlagSet(p.vars)
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse args: %w", err)
	}

	result := &CLIArgs{values: make(map[string]any)}

	for _, v := range p.vars {
		flag := fs.Lookup(v.FlagName())
		if flag == nil || !flag.Changed {
			continue
		}

		value, err := flagValue(fs, v)
		if err != nil {
			return nil, err
		}
		result.values[v.Name] = value
	}

	return result, nil
}

// registerFlag declares the pflag for one variable. Boolean-like variables
// never take a typed argument.
func registerFlag(fs *pflag.FlagSet, v Variable) {
	name, usage := v.FlagName(), v.usage()

	if v.IsBool() {
		fs.BoolP(name, v.Short, false, usage)
		return
	}

	switch v.Type {
	case KindInt:
		fs.IntP(name, v.Short, 0, usage)
	case KindFloat:
		fs.Float64P(name, v.Short, 0, usage)
	default:
		fs.StringP(name, v.Short, "", usage)
	}
}

// flagValue extracts the typed value of a changed flag.
func flagValue(fs *pflag.FlagSet, v Variable) (any, error) {
	name := v.FlagName()

	switch {
	case v.Action == ActionStoreTrue:
		return true, nil
	case v.Action == ActionStoreFalse:
		return false, nil
	case v.IsBool():
		return fs.GetBool(name)
	}

	switch v.Type {
	case KindInt:
		return fs.GetInt(name)
	case KindFloat:
		return fs.GetFloat64(name)
	default:
		return fs.GetString(name)
	}
}
