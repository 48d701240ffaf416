// Package mark implements the non-facet unit normalizer chain: an ordered
// list of rewrite rules that expand shorthand unit specs (composite marks,
// path overlays, ranged lines, range steps) into primitive unit or layer
// subtrees. The chain order is part of the contract: the first matching rule
// wins and consumes the unit.
package mark

import (
	"github.com/vizforge/vizforge/engine/config"
	"github.com/vizforge/vizforge/engine/spec"
	"github.com/vizforge/vizforge/pkg/diag"
)

// NormalizeFunc is the recursive normalization callback handed to a rule so
// its expansion comes back fully normalized.
type NormalizeFunc func(spec.Node) (spec.Node, error)

// Rule is one pluggable unit rewrite: a match predicate plus an expansion.
type Rule interface {
	Name() string
	Match(u *spec.Unit, cfg *config.Config) bool
	Expand(u *spec.Unit, cfg *config.Config, d *diag.Collector, normalize NormalizeFunc) (spec.Node, error)
}

// DefaultChain returns the rules in their fixed order: composite marks
// first, then path overlay, ranged line, range step.
func DefaultChain() []Rule {
	return []Rule{
		&BoxPlotRule{},
		&ErrorBarRule{},
		&ErrorBandRule{},
		&PathOverlayRule{},
		&RangedLineRule{},
		&RangeStepRule{},
	}
}

// Apply runs the chain against a unit. It returns the expansion of the first
// matching rule, or (nil, false, nil) when no rule matches.
func Apply(
	chain []Rule,
	u *spec.Unit,
	cfg *config.Config,
	d *diag.Collector,
	normalize NormalizeFunc,
) (spec.Node, bool, error) {
	for _, rule := range chain {
		if rule.Match(u, cfg) {
			node, err := rule.Expand(u, cfg, d, normalize)
			if err != nil {
				return nil, false, err
			}
			return node, true, nil
		}
	}
	return nil, false, nil
}
