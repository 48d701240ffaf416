package compile

import (
	"github.com/vizforge/vizforge/engine/render"
	"github.com/vizforge/vizforge/engine/spec"
)

// Phase is the typed state tag on a model's component record. Parse phases
// run in a fixed total order; assembly is only legal once every parse phase
// has completed.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseData
	PhaseSelections
	PhaseMarkGroup
	PhaseAxesHeaders
	PhaseLayoutSize
)

func (p Phase) String() string {
	switch p {
	case PhaseNone:
		return "none"
	case PhaseData:
		return "parseData"
	case PhaseSelections:
		return "parseSelections"
	case PhaseMarkGroup:
		return "parseMarkGroup"
	case PhaseAxesHeaders:
		return "parseAxesAndHeaders"
	case PhaseLayoutSize:
		return "parseLayoutSize"
	default:
		return "unknown"
	}
}

// Component accumulates the per-phase artifacts of one model node. Each
// field is written exactly once, by the phase that owns it; later phases
// read but never recompute earlier results.
type Component struct {
	phase Phase

	Data       *render.Data
	Selections map[string]*spec.SelectionDef
	Marks      []*render.Mark
	Axes       []map[string]any
	Headers    []*render.Mark
	LayoutSize map[string]float64
}

// advance moves the component into the given parse phase. Skipping or
// repeating a phase is a configuration error: the ordering discipline is
// part of the compiler contract, not a convention.
func (c *Component) advance(to Phase) error {
	if to != c.phase+1 {
		return spec.NewConfigurationError(
			"phase %s cannot run after %s: parse phases are strictly ordered", to, c.phase)
	}
	c.phase = to
	return nil
}

// Phase returns the last completed parse phase.
func (c *Component) Phase() Phase {
	return c.phase
}

// assembleReady reports whether every parse phase has completed.
func (c *Component) assembleReady() bool {
	return c.phase == PhaseLayoutSize
}
