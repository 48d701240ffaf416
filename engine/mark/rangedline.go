package mark

import (
	"github.com/vizforge/vizforge/engine/config"
	"github.com/vizforge/vizforge/engine/spec"
	"github.com/vizforge/vizforge/pkg/diag"
)

// RangedLineRule rewrites a line unit that encodes both ends of an axis
// (x with x2, or y with y2) into a rule unit, since a line cannot span a
// range.
type RangedLineRule struct{}

func (r *RangedLineRule) Name() string { return "ranged-line" }

func (r *RangedLineRule) Match(u *spec.Unit, _ *config.Config) bool {
	if u.Mark.Type != spec.MarkLine {
		return false
	}
	return hasRange(u.Encoding, spec.ChannelX, spec.ChannelX2) ||
		hasRange(u.Encoding, spec.ChannelY, spec.ChannelY2)
}

func (r *RangedLineRule) Expand(
	u *spec.Unit,
	_ *config.Config,
	d *diag.Collector,
	normalize NormalizeFunc,
) (spec.Node, error) {
	d.Warn(diag.KindMarkRewritten,
		"line mark with a ranged encoding is treated as a rule mark",
		"mark", string(u.Mark.Type))
	out := *u
	out.Mark.Type = spec.MarkRule
	return normalize(&out)
}

func hasRange(e spec.Encoding, primary, secondary spec.Channel) bool {
	_, hasPrimary := e[primary]
	_, hasSecondary := e[secondary]
	return hasPrimary && hasSecondary
}
