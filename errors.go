package flatconf

import (
	"errors"
	"fmt"
)

// ConfigError reports configuration errors: an unrecognized source shape,
// or a schema-definition problem (duplicate variable names, a default with
// no equality definition, a file-backed config without a file name).
type ConfigError struct {
	Msg string
}

// Error returns the error message.
func (e *ConfigError) Error() string {
	return "flatconf: " + e.Msg
}

// ErrUnknownVariable is returned by the Values view when a name was never
// declared in the config's schema. Accessors wrap it with the offending key;
// test with errors.Is.
var ErrUnknownVariable = errors.New("unknown configuration variable")

func configErrorf(format string, args ...any) *ConfigError {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}

// sourceTypeError is the shared failure for attach-time validation and the
// defensive check during lookup.
func sourceTypeError(src any) *ConfigError {
	return configErrorf("don't know how to fetch values from config with type %T", src)
}
