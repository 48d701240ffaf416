package normalize

import (
	"github.com/vizforge/vizforge/engine/config"
	"github.com/vizforge/vizforge/engine/spec"
	"github.com/vizforge/vizforge/pkg/diag"
)

// Context is the ephemeral state threaded through a normalization call. It
// is read-only to each recursive step; derived contexts are fresh copies, so
// no branch of the recursion ever observes another branch's state.
type Context struct {
	ParentEncoding   spec.Encoding
	ParentProjection *spec.Projection
	Repeater         *spec.RepeaterValue
	Config           *config.Config
	Diags            *diag.Collector
}

// NewContext creates a root context. A nil config falls back to the
// defaults; a nil collector is created on the spot.
func NewContext(cfg *config.Config, d *diag.Collector) *Context {
	if cfg == nil {
		cfg = config.Default()
	}
	if d == nil {
		d = diag.NewCollector(nil)
	}
	return &Context{Config: cfg, Diags: d}
}

// withRepeater returns a copy of the context carrying a fresh repeater
// binding.
func (c *Context) withRepeater(r *spec.RepeaterValue) *Context {
	out := *c
	out.Repeater = r
	return &out
}

// withParent returns a copy of the context carrying the encoding and
// projection a composition pushes down to its children.
func (c *Context) withParent(enc spec.Encoding, proj *spec.Projection) *Context {
	out := *c
	out.ParentEncoding = enc
	out.ParentProjection = proj
	return &out
}

// hasParentOverrides reports whether an inherited encoding or projection is
// in effect, which disables the unit normalizer chain.
func (c *Context) hasParentOverrides() bool {
	return c.ParentEncoding != nil || c.ParentProjection != nil
}
