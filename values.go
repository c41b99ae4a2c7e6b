package flatconf

import (
	"fmt"
	"strconv"

	"github.com/go-viper/mapstructure/v2"
)

// Values is a read-only view into a Config's resolved variables. Every
// access re-runs precedence lookup against the current source state, so
// sources attached after the view was obtained are immediately visible.
type Values struct {
	config *Config
}

// Pair is one (name, value) entry of the view.
type Pair struct {
	Name  string
	Value any
}

// Get resolves name through the owning config. Undeclared names fail with
// an error wrapping ErrUnknownVariable.
func (v *Values) Get(name string) (any, error) {
	if _, ok := v.config.vars[name]; !ok {
		return nil, fmt.Errorf("no config variable %q: %w", name, ErrUnknownVariable)
	}

	return v.config.Find(name)
}

// Names returns the declared variable names in registration order.
func (v *Values) Names() []string {
	names := make([]string, len(v.config.order))
	copy(names, v.config.order)
	return names
}

// Len returns the number of declared variables.
func (v *Values) Len() int {
	return len(v.config.order)
}

// Pairs resolves every declared variable, in registration order. Absent
// values are included as nil.
func (v *Values) Pairs() ([]Pair, error) {
	pairs := make([]Pair, 0, len(v.config.order))

	for _, name := range v.config.order {
		value, err := v.config.Find(name)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, Pair{Name: name, Value: value})
	}

	return pairs, nil
}

// String resolves name and coerces the value to a string. Values sourced
// from ini sections are already strings; other scalars are formatted.
func (v *Values) String(name string) (string, error) {
	value, err := v.Get(name)
	if err != nil {
		return "", err
	}

	switch val := value.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case fmt.Stringer:
		return val.String(), nil
	default:
		return fmt.Sprintf("%v", val), nil
	}
}

// Bool resolves name and coerces the value to a bool. String values are
// parsed with strconv.ParseBool.
func (v *Values) Bool(name string) (bool, error) {
	value, err := v.Get(name)
	if err != nil {
		return false, err
	}

	switch val := value.(type) {
	case bool:
		return val, nil
	case string:
		b, err := strconv.ParseBool(val)
		if err != nil {
			return false, fmt.Errorf("cannot convert %q value %q to bool: %w", name, val, err)
		}
		return b, nil
	default:
		return false, fmt.Errorf("cannot convert %q value of type %T to bool", name, value)
	}
}

// Int64 resolves name and coerces the value to an int64.
func (v *Values) Int64(name string) (int64, error) {
	value, err := v.Get(name)
	if err != nil {
		return 0, err
	}

	switch val := value.(type) {
	case int:
		return int64(val), nil
	case int64:
		return val, nil
	case float64:
		return int64(val), nil
	case string:
		i, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert %q value %q to int64: %w", name, val, err)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("cannot convert %q value of type %T to int64", name, value)
	}
}

// Float64 resolves name and coerces the value to a float64.
func (v *Values) Float64(name string) (float64, error) {
	value, err := v.Get(name)
	if err != nil {
		return 0, err
	}

	switch val := value.(type) {
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case float64:
		return val, nil
	case string:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert %q value %q to float64: %w", name, val, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("cannot convert %q value of type %T to float64", name, value)
	}
}

// Decode resolves all present variables and decodes them into target, which
// must be a pointer to a struct or map. Field names are matched via the
// "flatconf" struct tag, falling back to the field name. Decoding is weakly
// typed so that string values from ini sections fill numeric and boolean
// fields.
func (v *Values) Decode(target any) error {
	flat, err := v.config.VariablesWithValues()
	if err != nil {
		return err
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "flatconf",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}

	if err := decoder.Decode(flat); err != nil {
		return fmt.Errorf("decode config values: %w", err)
	}

	return nil
}
