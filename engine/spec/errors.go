package spec

import "fmt"

// ConfigurationError reports an input shape the compiler refuses to guess
// about: an unrecognized variant or an unsupported channel/variant
// combination. It always aborts the whole call; no partial tree is returned.
type ConfigurationError struct {
	Detail string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid spec: %s", e.Detail)
}

// NewConfigurationError builds a ConfigurationError from a format string.
func NewConfigurationError(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Detail: fmt.Sprintf(format, args...)}
}
