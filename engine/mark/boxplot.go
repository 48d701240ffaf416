package mark

import (
	"github.com/vizforge/vizforge/engine/config"
	"github.com/vizforge/vizforge/engine/spec"
	"github.com/vizforge/vizforge/pkg/diag"
)

// BoxPlotRule expands a boxplot unit into a whisker rule, a quartile box and
// a median tick layered in the unit's coordinate space.
type BoxPlotRule struct{}

func (r *BoxPlotRule) Name() string { return "boxplot" }

func (r *BoxPlotRule) Match(u *spec.Unit, _ *config.Config) bool {
	return u.Mark.Type == spec.MarkBoxPlot
}

func (r *BoxPlotRule) Expand(
	u *spec.Unit,
	cfg *config.Config,
	_ *diag.Collector,
	normalize NormalizeFunc,
) (spec.Node, error) {
	axis, continuous := continuousAxis(u)
	if continuous == nil {
		return nil, spec.NewConfigurationError("boxplot requires a continuous x or y encoding")
	}
	extent := u.Mark.Extent
	if extent == "" {
		extent = cfg.BoxPlot.Extent
	}
	lo, hi := extentBounds(extent)
	size := u.Mark.Size
	if size == nil {
		s := cfg.BoxPlot.Size
		size = &s
	}
	grouping := groupingEncoding(u, axis)

	whisker := expansionUnit(spec.MarkRule, "boxplot-rule", grouping.Clone())
	whisker.Encoding[axis] = aggregated(continuous, lo)
	whisker.Encoding[secondaryChannel(axis)] = aggregated(continuous, hi)

	box := expansionUnit(spec.MarkBar, "boxplot-box", grouping.Clone())
	box.Mark.Size = size
	box.Encoding[axis] = aggregated(continuous, "q1")
	box.Encoding[secondaryChannel(axis)] = aggregated(continuous, "q3")

	median := expansionUnit(spec.MarkTick, "boxplot-median", grouping.Clone())
	median.Mark.Color = "white"
	median.Mark.Size = size
	median.Encoding[axis] = aggregated(continuous, "median")

	return normalize(compositeLayer(u, []spec.Node{whisker, box, median}))
}
