package mark

import (
	"github.com/vizforge/vizforge/engine/config"
	"github.com/vizforge/vizforge/engine/spec"
	"github.com/vizforge/vizforge/pkg/diag"
)

// PathOverlayRule layers point (and, for areas, line) overlays on top of
// path marks when the mark definition or the configuration asks for them.
type PathOverlayRule struct{}

func (r *PathOverlayRule) Name() string { return "path-overlay" }

func (r *PathOverlayRule) Match(u *spec.Unit, cfg *config.Config) bool {
	if !u.Mark.Type.IsPath() {
		return false
	}
	return pointOverlayRequested(u, cfg) || lineOverlayRequested(u, cfg)
}

func (r *PathOverlayRule) Expand(
	u *spec.Unit,
	cfg *config.Config,
	_ *diag.Collector,
	normalize NormalizeFunc,
) (spec.Node, error) {
	// Disable the overlay flags explicitly so the path child does not match
	// this rule again when the expansion is re-normalized.
	off := false
	base := *u
	base.Mark.Point = &off
	base.Mark.Line = &off
	// The path itself keeps nothing but the mark and encoding; shared
	// properties move to the wrapping layer.
	path := &spec.Unit{
		Mark:       base.Mark,
		Encoding:   u.Encoding,
		Projection: u.Projection,
		Selection:  u.Selection,
	}

	children := []spec.Node{path}
	if lineOverlayRequested(u, cfg) {
		border := expansionUnit(spec.MarkLine, "", u.Encoding.Clone())
		border.Mark.Interpolate = u.Mark.Interpolate
		border.Mark.Color = u.Mark.Color
		children = append(children, border)
	}
	if pointOverlayRequested(u, cfg) {
		overlay := expansionUnit(spec.MarkPoint, "", u.Encoding.Clone())
		overlay.Mark.Color = u.Mark.Color
		children = append(children, overlay)
	}

	return normalize(compositeLayer(u, children))
}

func pointOverlayRequested(u *spec.Unit, cfg *config.Config) bool {
	if u.Mark.Point != nil {
		return *u.Mark.Point
	}
	switch u.Mark.Type {
	case spec.MarkLine, spec.MarkTrail:
		return cfg.Line.Point
	case spec.MarkArea:
		return cfg.Area.Point
	default:
		return false
	}
}

func lineOverlayRequested(u *spec.Unit, cfg *config.Config) bool {
	if u.Mark.Type != spec.MarkArea {
		return false
	}
	if u.Mark.Line != nil {
		return *u.Mark.Line
	}
	return cfg.Area.Line
}
