package mark

import (
	"github.com/vizforge/vizforge/engine/config"
	"github.com/vizforge/vizforge/engine/spec"
	"github.com/vizforge/vizforge/pkg/diag"
)

// RangeStepRule rewrites the deprecated rangeStep scale property into an
// explicit step-derived view size on the unit.
type RangeStepRule struct{}

func (r *RangeStepRule) Name() string { return "range-step" }

func (r *RangeStepRule) Match(u *spec.Unit, _ *config.Config) bool {
	return rangeStepOn(u, spec.ChannelX) || rangeStepOn(u, spec.ChannelY)
}

func (r *RangeStepRule) Expand(
	u *spec.Unit,
	cfg *config.Config,
	d *diag.Collector,
	normalize NormalizeFunc,
) (spec.Node, error) {
	out := *u
	out.Encoding = u.Encoding.Clone()
	if step, ok := takeRangeStep(out.Encoding, spec.ChannelX, cfg); ok {
		d.Warn(diag.KindMarkRewritten,
			"rangeStep on the x scale is rewritten into an explicit width",
			"channel", string(spec.ChannelX), "step", step)
		if out.Width == nil {
			out.Width = &step
		}
	}
	if step, ok := takeRangeStep(out.Encoding, spec.ChannelY, cfg); ok {
		d.Warn(diag.KindMarkRewritten,
			"rangeStep on the y scale is rewritten into an explicit height",
			"channel", string(spec.ChannelY), "step", step)
		if out.Height == nil {
			out.Height = &step
		}
	}
	return normalize(&out)
}

func rangeStepOn(u *spec.Unit, channel spec.Channel) bool {
	fd, ok := u.Encoding[channel]
	if !ok || fd == nil || fd.Scale == nil {
		return false
	}
	_, ok = fd.Scale["rangeStep"]
	return ok
}

// takeRangeStep removes the rangeStep entry from the channel's scale and
// returns the effective step.
func takeRangeStep(e spec.Encoding, channel spec.Channel, cfg *config.Config) (float64, bool) {
	fd, ok := e[channel]
	if !ok || fd == nil || fd.Scale == nil {
		return 0, false
	}
	raw, ok := fd.Scale["rangeStep"]
	if !ok {
		return 0, false
	}
	cp := *fd
	cp.Scale = make(map[string]any, len(fd.Scale))
	for k, v := range fd.Scale {
		if k == "rangeStep" {
			continue
		}
		cp.Scale[k] = v
	}
	if len(cp.Scale) == 0 {
		cp.Scale = nil
	}
	e[channel] = &cp

	step := cfg.Scale.RangeStep
	switch v := raw.(type) {
	case float64:
		step = v
	case int:
		step = float64(v)
	}
	return step, true
}
