package flatconf

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DumpOption configures dump behavior using the functional options pattern.
type DumpOption func(*dumpConfig)

type dumpConfig struct {
	format      string // "text", "json", "yaml", or "toml"
	withSources bool   // Annotate each key with the supplying source
	indent      string // Indentation for JSON output
}

// WithSources annotates each key with the source supplying its value.
// Only honored by the text format.
func WithSources() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.withSources = true
	}
}

// AsJSON outputs the resolved configuration as JSON.
func AsJSON() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.format = "json"
	}
}

// AsYAML outputs the resolved configuration as YAML.
func AsYAML() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.format = "yaml"
	}
}

// AsTOML outputs the resolved configuration as TOML.
func AsTOML() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.format = "toml"
	}
}

// WithIndent sets the indentation for JSON output. Default is two spaces.
func WithIndent(indent string) DumpOption {
	return func(cfg *dumpConfig) {
		cfg.indent = indent
	}
}

// Dump writes the resolved configuration (every variable with a present
// value, in registration order for the text format) to w. The default
// format is one "key: value" line per variable.
func (c *Config) Dump(w io.Writer, opts ...DumpOption) error {
	cfg := dumpConfig{format: "text", indent: "  "}
	for _, opt := range opts {
		opt(&cfg)
	}

	values, err := c.VariablesWithValues()
	if err != nil {
		return err
	}

	switch cfg.format {
	case "json":
		return dumpMarshaled(w, values, func(v any) ([]byte, error) {
			if cfg.indent != "" {
				return json.MarshalIndent(v, "", cfg.indent)
			}
			return json.Marshal(v)
		})
	case "yaml":
		return dumpMarshaled(w, values, yaml.Marshal)
	case "toml":
		return dumpMarshaled(w, values, toml.Marshal)
	default:
		return c.dumpText(w, values, cfg)
	}
}

func dumpMarshaled(w io.Writer, values map[string]any, marshal func(any) ([]byte, error)) error {
	data, err := marshal(values)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write error: %w", err)
	}
	if len(data) == 0 || data[len(data)-1] != '\n' {
		if _, err := w.Write([]byte("\n")); err != nil {
			return fmt.Errorf("write error: %w", err)
		}
	}

	return nil
}

func (c *Config) dumpText(w io.Writer, values map[string]any, cfg dumpConfig) error {
	for _, name := range c.order {
		value, ok := values[name]
		if !ok {
			continue
		}

		line := fmt.Sprintf("%s: %v", name, value)
		if cfg.withSources {
			attribution, err := c.attribution(name)
			if err != nil {
				return err
			}
			line += fmt.Sprintf(" (source: %s)", attribution)
		}
		line += "\n"

		if _, err := w.Write([]byte(line)); err != nil {
			return fmt.Errorf("write error: %w", err)
		}
	}

	return nil
}

// attribution names the winning source for name, or "default" when the
// declared default applies.
func (c *Config) attribution(name string) (string, error) {
	srcs, err := c.sourcesFor(name)
	if err != nil {
		return "", err
	}
	if len(srcs) == 0 {
		return "default", nil
	}
	return describeSource(srcs[0]), nil
}
