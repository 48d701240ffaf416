// Package diag collects structured warnings emitted while a spec is being
// normalized and compiled. Warnings are corrective, never fatal: they are
// mirrored to the logger and accumulated so callers and tests can inspect
// exactly which precedence rules fired.
package diag

import (
	"fmt"

	"github.com/vizforge/vizforge/pkg/logger"
)

// Kind identifies the corrective action behind a warning.
type Kind string

const (
	KindFacetDropped        Kind = "facet-dropped"
	KindColumnsDropped      Kind = "columns-dropped"
	KindEncodingOverridden  Kind = "encoding-overridden"
	KindProjectionOverriden Kind = "projection-overridden"
	KindRepeatUnbound       Kind = "repeat-unbound"
	KindMarkRewritten       Kind = "mark-rewritten"
	KindPhaseOrder          Kind = "phase-order"
)

// Warning is one corrective action taken during normalization or compilation.
type Warning struct {
	Kind    Kind
	Message string
	Keyvals []any
}

// Collector accumulates warnings for a single normalize/compile call.
// It is not safe for concurrent use; both pipelines are single-threaded.
type Collector struct {
	warnings []Warning
	log      logger.Logger
}

// NewCollector creates a collector that mirrors warnings to the given logger.
// A nil logger falls back to the process default.
func NewCollector(log logger.Logger) *Collector {
	if log == nil {
		log = logger.GetDefault()
	}
	return &Collector{log: log}
}

// Warnf records a warning and logs it. The format arguments become the
// human-readable message; keyvals carry the offending keys and values.
func (c *Collector) Warnf(kind Kind, format string, args ...any) {
	c.warn(kind, fmt.Sprintf(format, args...))
}

// Warn records a warning with structured key/value context.
func (c *Collector) Warn(kind Kind, msg string, keyvals ...any) {
	c.warn(kind, msg, keyvals...)
}

func (c *Collector) warn(kind Kind, msg string, keyvals ...any) {
	c.warnings = append(c.warnings, Warning{Kind: kind, Message: msg, Keyvals: keyvals})
	c.log.Warn(msg, append([]any{"kind", string(kind)}, keyvals...)...)
}

// Warnings returns all recorded warnings in emission order.
func (c *Collector) Warnings() []Warning {
	return c.warnings
}

// ByKind returns the warnings recorded under a single kind.
func (c *Collector) ByKind(kind Kind) []Warning {
	var out []Warning
	for _, w := range c.warnings {
		if w.Kind == kind {
			out = append(out, w)
		}
	}
	return out
}

// Len reports how many warnings have been recorded.
func (c *Collector) Len() int {
	return len(c.warnings)
}
