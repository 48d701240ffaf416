package normalize

import (
	"github.com/vizforge/vizforge/engine/spec"
	"github.com/vizforge/vizforge/pkg/diag"
)

// normalizeFacetedUnit promotes the facet channels embedded in a unit
// encoding into an explicit facet node wrapping the remaining unit. Row and
// column take precedence over the facet channel; an explicit column count
// survives only with the single-dimension facet form.
func (n *Normalizer) normalizeFacetedUnit(u *spec.Unit, ctx *Context) (spec.Node, error) {
	rowDef := u.Encoding[spec.ChannelRow]
	columnDef := u.Encoding[spec.ChannelColumn]
	facetDef := u.Encoding[spec.ChannelFacet]

	inner := &spec.Unit{
		Mark:       u.Mark,
		Encoding:   u.Encoding.WithoutFacetChannels(),
		Projection: u.Projection,
		Selection:  u.Selection,
		Width:      u.Width,
		Height:     u.Height,
		View:       u.View,
	}

	outer := &spec.Facet{
		BaseSpec: u.BaseSpec,
		Spec:     inner,
	}

	if rowDef != nil || columnDef != nil {
		if facetDef != nil {
			ctx.Diags.Warn(diag.KindFacetDropped,
				"facet channel is dropped because row and column take precedence",
				"channel", string(spec.ChannelFacet))
		}
		var mapping spec.FacetDef
		if rowDef != nil {
			mapping.Row = extractFacetLayout(rowDef, spec.ChannelRow, outer, ctx)
		}
		if columnDef != nil {
			mapping.Column = extractFacetLayout(columnDef, spec.ChannelColumn, outer, ctx)
		}
		outer.Facet = mapping
		if u.Columns != nil {
			ctx.Diags.Warn(diag.KindColumnsDropped,
				"explicit column count is not supported together with row/column faceting",
				"columns", *u.Columns)
		}
	} else {
		resolved := facetDef
		if fd, ok := replaceRepeaterInFieldDef(facetDef, ctx.Repeater, ctx.Diags); ok {
			resolved = fd
		}
		// A spec-level column count wins; a count declared on the facet
		// channel itself fills in below when the spec declared none.
		outer.Columns = u.Columns
		outer.Facet = spec.FacetDef{
			Field: extractFacetLayout(resolved, spec.ChannelFacet, outer, ctx),
		}
	}

	return n.normalizeFacet(outer, ctx)
}

// extractFacetLayout strips the layout sub-properties off a facet channel
// definition into the facet node's layout record, keyed per axis for
// row/column and flat for the single-dimension form.
func extractFacetLayout(fd *spec.FieldDef, channel spec.Channel, outer *spec.Facet, ctx *Context) *spec.FieldDef {
	if fd == nil {
		return nil
	}
	if !fd.HasLayoutProps() {
		return fd
	}
	if fd.Align != "" {
		if outer.Layout.Align == nil {
			outer.Layout.Align = &spec.RowColValue[string]{}
		}
		outer.Layout.Align.SetAxis(channel, fd.Align)
	}
	if fd.Center != nil {
		if outer.Layout.Center == nil {
			outer.Layout.Center = &spec.RowColValue[bool]{}
		}
		outer.Layout.Center.SetAxis(channel, *fd.Center)
	}
	if fd.Spacing != nil {
		if outer.Layout.Spacing == nil {
			outer.Layout.Spacing = &spec.RowColValue[float64]{}
		}
		outer.Layout.Spacing.SetAxis(channel, *fd.Spacing)
	}
	if fd.Columns != nil {
		if channel == spec.ChannelFacet {
			if outer.Columns == nil {
				outer.Columns = fd.Columns
			}
		} else {
			ctx.Diags.Warn(diag.KindColumnsDropped,
				"column count on a row/column facet channel has no effect",
				"channel", string(channel), "columns", *fd.Columns)
		}
	}
	return fd.StripLayoutProps()
}
