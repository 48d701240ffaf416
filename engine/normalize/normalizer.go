// Package normalize rewrites a declarative spec tree into its canonical
// form: facet channels become explicit facet nodes, repeat templates are
// expanded into concatenations, parent encodings and projections are merged
// into their children, and shorthand units run through the mark normalizer
// chain. The output grammar has no repeat variant and no facet channel left
// inside any unit encoding.
package normalize

import (
	"github.com/vizforge/vizforge/engine/config"
	"github.com/vizforge/vizforge/engine/mark"
	"github.com/vizforge/vizforge/engine/spec"
	"github.com/vizforge/vizforge/pkg/diag"
)

// Normalizer drives the recursive rewrite.
type Normalizer struct {
	chain []mark.Rule
}

// New creates a normalizer with the default mark rule chain.
func New() *Normalizer {
	return &Normalizer{chain: mark.DefaultChain()}
}

// NewWithChain creates a normalizer with an explicit rule chain; the slice
// order is the match order.
func NewWithChain(chain []mark.Rule) *Normalizer {
	return &Normalizer{chain: chain}
}

// Normalize rewrites one spec tree into canonical form. Corrective rewrites
// are reported through the context's collector; unsupported shapes abort
// with a configuration error and no partial tree.
func Normalize(node spec.Node, cfg *config.Config, d *diag.Collector) (spec.Node, error) {
	return New().Normalize(node, NewContext(cfg, d))
}

// Normalize dispatches on the node variant.
func (n *Normalizer) Normalize(node spec.Node, ctx *Context) (spec.Node, error) {
	if node == nil {
		return nil, spec.NewConfigurationError("cannot normalize a nil spec node")
	}
	switch s := node.(type) {
	case *spec.Unit:
		if s.Encoding.HasFacetChannels() {
			return n.normalizeFacetedUnit(s, ctx)
		}
		return n.normalizeUnit(s, ctx)
	case *spec.Layer:
		return n.normalizeLayer(s, ctx)
	case *spec.Facet:
		return n.normalizeFacet(s, ctx)
	case *spec.Repeat:
		return n.normalizeRepeat(s, ctx)
	case *spec.Concat:
		children, err := n.normalizeChildren(s.Concat, ctx)
		if err != nil {
			return nil, err
		}
		out := *s
		out.Concat = children
		return &out, nil
	case *spec.HConcat:
		children, err := n.normalizeChildren(s.HConcat, ctx)
		if err != nil {
			return nil, err
		}
		out := *s
		out.HConcat = children
		return &out, nil
	case *spec.VConcat:
		children, err := n.normalizeChildren(s.VConcat, ctx)
		if err != nil {
			return nil, err
		}
		out := *s
		out.VConcat = children
		return &out, nil
	default:
		return nil, spec.NewConfigurationError("unrecognized spec variant %T", node)
	}
}

func (n *Normalizer) normalizeChildren(children []spec.Node, ctx *Context) ([]spec.Node, error) {
	out := make([]spec.Node, 0, len(children))
	for _, child := range children {
		normalized, err := n.Normalize(child, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, normalized)
	}
	return out, nil
}

// normalizeUnit handles units without facet channels. Repeater references
// are resolved first; a unit under an inherited encoding or projection is
// merged and returned without consulting the rule chain, since its ancestors
// already resolved it.
func (n *Normalizer) normalizeUnit(s *spec.Unit, ctx *Context) (spec.Node, error) {
	u := *s
	if ctx.hasParentOverrides() {
		merged := mergeEncoding(ctx.ParentEncoding, u.Encoding, ctx.Diags)
		u.Encoding = replaceRepeaterInEncoding(merged, ctx.Repeater, ctx.Diags)
		u.Projection = mergeProjection(ctx.ParentProjection, u.Projection, ctx.Diags)
		return &u, nil
	}
	u.Encoding = replaceRepeaterInEncoding(u.Encoding, ctx.Repeater, ctx.Diags)
	expanded, matched, err := mark.Apply(n.chain, &u, ctx.Config, ctx.Diags, func(child spec.Node) (spec.Node, error) {
		return n.Normalize(child, ctx)
	})
	if err != nil {
		return nil, err
	}
	if matched {
		return expanded, nil
	}
	return &u, nil
}

// normalizeLayer pushes the layer's own encoding and projection down to its
// children and strips them from the output node.
func (n *Normalizer) normalizeLayer(l *spec.Layer, ctx *Context) (spec.Node, error) {
	childEncoding := ctx.ParentEncoding
	if l.Encoding != nil {
		childEncoding = mergeEncoding(ctx.ParentEncoding, l.Encoding, ctx.Diags)
	}
	childProjection := mergeProjection(ctx.ParentProjection, l.Projection, ctx.Diags)
	childCtx := ctx.withParent(childEncoding, childProjection)
	children, err := n.normalizeChildren(l.Layer, childCtx)
	if err != nil {
		return nil, err
	}
	out := *l
	out.Layer = children
	out.Encoding = nil
	out.Projection = nil
	return &out, nil
}

// normalizeFacet finishes an explicit facet node: repeater references in the
// facet definition are resolved and the inner spec is normalized generically.
func (n *Normalizer) normalizeFacet(f *spec.Facet, ctx *Context) (spec.Node, error) {
	out := *f
	out.Facet = resolveFacetDef(f.Facet, ctx)
	child, err := n.Normalize(f.Spec, ctx)
	if err != nil {
		return nil, err
	}
	out.Spec = child
	return &out, nil
}

func resolveFacetDef(def spec.FacetDef, ctx *Context) spec.FacetDef {
	out := def
	if def.Field != nil {
		if fd, ok := replaceRepeaterInFieldDef(def.Field, ctx.Repeater, ctx.Diags); ok {
			out.Field = fd
		}
	}
	if def.Row != nil {
		if fd, ok := replaceRepeaterInFieldDef(def.Row, ctx.Repeater, ctx.Diags); ok {
			out.Row = fd
		}
	}
	if def.Column != nil {
		if fd, ok := replaceRepeaterInFieldDef(def.Column, ctx.Repeater, ctx.Diags); ok {
			out.Column = fd
		}
	}
	return out
}
