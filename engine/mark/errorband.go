package mark

import (
	"github.com/vizforge/vizforge/engine/config"
	"github.com/vizforge/vizforge/engine/spec"
	"github.com/vizforge/vizforge/pkg/diag"
)

// ErrorBandRule expands an errorband unit into a translucent band area plus
// optional border lines.
type ErrorBandRule struct{}

func (r *ErrorBandRule) Name() string { return "errorband" }

func (r *ErrorBandRule) Match(u *spec.Unit, _ *config.Config) bool {
	return u.Mark.Type == spec.MarkErrorBand
}

func (r *ErrorBandRule) Expand(
	u *spec.Unit,
	cfg *config.Config,
	_ *diag.Collector,
	normalize NormalizeFunc,
) (spec.Node, error) {
	axis, continuous := continuousAxis(u)
	if continuous == nil {
		return nil, spec.NewConfigurationError("errorband requires a continuous x or y encoding")
	}
	extent := u.Mark.Extent
	if extent == "" {
		extent = cfg.ErrorBand.Extent
	}
	lo, hi := extentBounds(extent)
	grouping := groupingEncoding(u, axis)

	band := expansionUnit(spec.MarkArea, "errorband-band", grouping.Clone())
	opacity := 0.3
	if u.Mark.Opacity != nil {
		opacity = *u.Mark.Opacity
	}
	band.Mark.Opacity = &opacity
	band.Mark.Interpolate = u.Mark.Interpolate
	band.Encoding[axis] = aggregated(continuous, lo)
	band.Encoding[secondaryChannel(axis)] = aggregated(continuous, hi)

	children := []spec.Node{band}
	if cfg.ErrorBand.Borders {
		for _, bound := range []string{lo, hi} {
			border := expansionUnit(spec.MarkLine, "errorband-border", grouping.Clone())
			border.Mark.Interpolate = u.Mark.Interpolate
			border.Encoding[axis] = aggregated(continuous, bound)
			children = append(children, border)
		}
	}

	return normalize(compositeLayer(u, children))
}
