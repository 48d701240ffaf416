package mark

import (
	"github.com/vizforge/vizforge/engine/config"
	"github.com/vizforge/vizforge/engine/spec"
	"github.com/vizforge/vizforge/pkg/diag"
)

// ErrorBarRule expands an errorbar unit into a spanning rule plus optional
// end ticks.
type ErrorBarRule struct{}

func (r *ErrorBarRule) Name() string { return "errorbar" }

func (r *ErrorBarRule) Match(u *spec.Unit, _ *config.Config) bool {
	return u.Mark.Type == spec.MarkErrorBar
}

func (r *ErrorBarRule) Expand(
	u *spec.Unit,
	cfg *config.Config,
	_ *diag.Collector,
	normalize NormalizeFunc,
) (spec.Node, error) {
	axis, continuous := continuousAxis(u)
	if continuous == nil {
		return nil, spec.NewConfigurationError("errorbar requires a continuous x or y encoding")
	}
	extent := u.Mark.Extent
	if extent == "" {
		extent = cfg.ErrorBar.Extent
	}
	lo, hi := extentBounds(extent)
	grouping := groupingEncoding(u, axis)

	bar := expansionUnit(spec.MarkRule, "errorbar-rule", grouping.Clone())
	bar.Encoding[axis] = aggregated(continuous, lo)
	bar.Encoding[secondaryChannel(axis)] = aggregated(continuous, hi)

	children := []spec.Node{bar}
	if cfg.ErrorBar.Ticks {
		lower := expansionUnit(spec.MarkTick, "errorbar-tick", grouping.Clone())
		lower.Encoding[axis] = aggregated(continuous, lo)
		upper := expansionUnit(spec.MarkTick, "errorbar-tick", grouping.Clone())
		upper.Encoding[axis] = aggregated(continuous, hi)
		children = append(children, lower, upper)
	}

	return normalize(compositeLayer(u, children))
}
