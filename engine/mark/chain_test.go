package mark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vizforge/vizforge/engine/config"
	"github.com/vizforge/vizforge/engine/spec"
	"github.com/vizforge/vizforge/pkg/diag"
)

// identity hands the expansion back unchanged so tests can inspect the raw
// subtree a rule produces.
func identity(n spec.Node) (spec.Node, error) { return n, nil }

type stubRule struct {
	name    string
	matches bool
	out     spec.Node
}

func (s *stubRule) Name() string { return s.name }

func (s *stubRule) Match(*spec.Unit, *config.Config) bool { return s.matches }

func (s *stubRule) Expand(*spec.Unit, *config.Config, *diag.Collector, NormalizeFunc) (spec.Node, error) {
	return s.out, nil
}

func TestDefaultChain(t *testing.T) {
	t.Run("Should keep the fixed rule order", func(t *testing.T) {
		names := make([]string, 0, 6)
		for _, rule := range DefaultChain() {
			names = append(names, rule.Name())
		}
		assert.Equal(t, []string{
			"boxplot", "errorbar", "errorband",
			"path-overlay", "ranged-line", "range-step",
		}, names)
	})
}

func TestApply(t *testing.T) {
	t.Run("Should stop at the first matching rule", func(t *testing.T) {
		want := &spec.Unit{Mark: spec.MarkDef{Type: spec.MarkRule}}
		chain := []Rule{
			&stubRule{name: "first", matches: false},
			&stubRule{name: "second", matches: true, out: want},
			&stubRule{name: "third", matches: true, out: &spec.Unit{}},
		}

		node, matched, err := Apply(chain, &spec.Unit{}, config.Default(), diag.NewCollector(nil), identity)
		require.NoError(t, err)
		assert.True(t, matched)
		assert.Same(t, want, node)
	})

	t.Run("Should report no match when every rule declines", func(t *testing.T) {
		chain := []Rule{&stubRule{name: "only"}}
		node, matched, err := Apply(chain, &spec.Unit{}, config.Default(), diag.NewCollector(nil), identity)
		require.NoError(t, err)
		assert.False(t, matched)
		assert.Nil(t, node)
	})
}

func TestBoxPlotRule(t *testing.T) {
	unit := func() *spec.Unit {
		return &spec.Unit{
			Mark: spec.MarkDef{Type: spec.MarkBoxPlot},
			Encoding: spec.Encoding{
				spec.ChannelX: {Field: spec.FieldRef{Name: "origin"}, Type: "nominal"},
				spec.ChannelY: {Field: spec.FieldRef{Name: "mpg"}, Type: "quantitative"},
			},
		}
	}

	t.Run("Should layer a whisker, a box and a median tick", func(t *testing.T) {
		rule := &BoxPlotRule{}
		require.True(t, rule.Match(unit(), config.Default()))

		node, err := rule.Expand(unit(), config.Default(), diag.NewCollector(nil), identity)
		require.NoError(t, err)

		layer, ok := node.(*spec.Layer)
		require.True(t, ok)
		require.Len(t, layer.Layer, 3)

		whisker := layer.Layer[0].(*spec.Unit)
		assert.Equal(t, spec.MarkRule, whisker.Mark.Type)
		assert.Equal(t, "min", whisker.Encoding[spec.ChannelY].Aggregate)
		assert.Equal(t, "max", whisker.Encoding[spec.ChannelY2].Aggregate)

		box := layer.Layer[1].(*spec.Unit)
		assert.Equal(t, spec.MarkBar, box.Mark.Type)
		assert.Equal(t, "q1", box.Encoding[spec.ChannelY].Aggregate)
		assert.Equal(t, "q3", box.Encoding[spec.ChannelY2].Aggregate)
		require.NotNil(t, box.Mark.Size)
		assert.Equal(t, config.Default().BoxPlot.Size, *box.Mark.Size)

		median := layer.Layer[2].(*spec.Unit)
		assert.Equal(t, spec.MarkTick, median.Mark.Type)
		assert.Equal(t, "median", median.Encoding[spec.ChannelY].Aggregate)

		// The grouping axis survives on every child.
		for _, child := range layer.Layer {
			assert.Equal(t, "origin", child.(*spec.Unit).Encoding[spec.ChannelX].Field.Name)
		}
	})

	t.Run("Should honor an explicit iqr extent", func(t *testing.T) {
		u := unit()
		u.Mark.Extent = "iqr"

		node, err := (&BoxPlotRule{}).Expand(u, config.Default(), diag.NewCollector(nil), identity)
		require.NoError(t, err)

		whisker := node.(*spec.Layer).Layer[0].(*spec.Unit)
		assert.Equal(t, "q1", whisker.Encoding[spec.ChannelY].Aggregate)
		assert.Equal(t, "q3", whisker.Encoding[spec.ChannelY2].Aggregate)
	})

	t.Run("Should fail without a continuous encoding", func(t *testing.T) {
		u := &spec.Unit{Mark: spec.MarkDef{Type: spec.MarkBoxPlot}}
		_, err := (&BoxPlotRule{}).Expand(u, config.Default(), diag.NewCollector(nil), identity)
		require.Error(t, err)
	})
}

func TestErrorBarRule(t *testing.T) {
	unit := func() *spec.Unit {
		return &spec.Unit{
			Mark: spec.MarkDef{Type: spec.MarkErrorBar},
			Encoding: spec.Encoding{
				spec.ChannelX: {Field: spec.FieldRef{Name: "year"}, Type: "ordinal"},
				spec.ChannelY: {Field: spec.FieldRef{Name: "yield"}, Type: "quantitative"},
			},
		}
	}

	t.Run("Should add end ticks when the config asks for them", func(t *testing.T) {
		node, err := (&ErrorBarRule{}).Expand(unit(), config.Default(), diag.NewCollector(nil), identity)
		require.NoError(t, err)

		layer := node.(*spec.Layer)
		require.Len(t, layer.Layer, 3)
		assert.Equal(t, spec.MarkRule, layer.Layer[0].(*spec.Unit).Mark.Type)
		assert.Equal(t, spec.MarkTick, layer.Layer[1].(*spec.Unit).Mark.Type)
		assert.Equal(t, spec.MarkTick, layer.Layer[2].(*spec.Unit).Mark.Type)
		// Default extent is stderr, which maps to confidence bounds.
		assert.Equal(t, "ci0", layer.Layer[0].(*spec.Unit).Encoding[spec.ChannelY].Aggregate)
		assert.Equal(t, "ci1", layer.Layer[0].(*spec.Unit).Encoding[spec.ChannelY2].Aggregate)
	})

	t.Run("Should emit the bare rule when ticks are off", func(t *testing.T) {
		cfg := config.Default()
		cfg.ErrorBar.Ticks = false

		node, err := (&ErrorBarRule{}).Expand(unit(), cfg, diag.NewCollector(nil), identity)
		require.NoError(t, err)
		assert.Len(t, node.(*spec.Layer).Layer, 1)
	})
}

func TestErrorBandRule(t *testing.T) {
	unit := func() *spec.Unit {
		return &spec.Unit{
			Mark: spec.MarkDef{Type: spec.MarkErrorBand},
			Encoding: spec.Encoding{
				spec.ChannelX: {Field: spec.FieldRef{Name: "year"}, Type: "temporal"},
				spec.ChannelY: {Field: spec.FieldRef{Name: "yield"}, Type: "quantitative"},
			},
		}
	}

	t.Run("Should emit a translucent band area", func(t *testing.T) {
		node, err := (&ErrorBandRule{}).Expand(unit(), config.Default(), diag.NewCollector(nil), identity)
		require.NoError(t, err)

		layer := node.(*spec.Layer)
		require.Len(t, layer.Layer, 1)
		band := layer.Layer[0].(*spec.Unit)
		assert.Equal(t, spec.MarkArea, band.Mark.Type)
		require.NotNil(t, band.Mark.Opacity)
		assert.Equal(t, 0.3, *band.Mark.Opacity)
	})

	t.Run("Should add border lines when configured", func(t *testing.T) {
		cfg := config.Default()
		cfg.ErrorBand.Borders = true

		node, err := (&ErrorBandRule{}).Expand(unit(), cfg, diag.NewCollector(nil), identity)
		require.NoError(t, err)

		layer := node.(*spec.Layer)
		require.Len(t, layer.Layer, 3)
		assert.Equal(t, spec.MarkLine, layer.Layer[1].(*spec.Unit).Mark.Type)
		assert.Equal(t, spec.MarkLine, layer.Layer[2].(*spec.Unit).Mark.Type)
	})
}

func TestPathOverlayRule(t *testing.T) {
	t.Run("Should overlay points on a line when the mark asks", func(t *testing.T) {
		on := true
		u := &spec.Unit{
			Mark: spec.MarkDef{Type: spec.MarkLine, Point: &on},
			Encoding: spec.Encoding{
				spec.ChannelX: {Field: spec.FieldRef{Name: "date"}, Type: "temporal"},
			},
		}
		rule := &PathOverlayRule{}
		require.True(t, rule.Match(u, config.Default()))

		node, err := rule.Expand(u, config.Default(), diag.NewCollector(nil), identity)
		require.NoError(t, err)

		layer := node.(*spec.Layer)
		require.Len(t, layer.Layer, 2)
		path := layer.Layer[0].(*spec.Unit)
		assert.Equal(t, spec.MarkLine, path.Mark.Type)
		assert.Equal(t, spec.MarkPoint, layer.Layer[1].(*spec.Unit).Mark.Type)

		// The emitted path must not trigger the rule again.
		assert.False(t, rule.Match(path, config.Default()))
	})

	t.Run("Should overlay line and points on an area", func(t *testing.T) {
		cfg := config.Default()
		cfg.Area.Line = true
		cfg.Area.Point = true
		u := &spec.Unit{
			Mark: spec.MarkDef{Type: spec.MarkArea},
			Encoding: spec.Encoding{
				spec.ChannelX: {Field: spec.FieldRef{Name: "date"}, Type: "temporal"},
			},
		}

		node, err := (&PathOverlayRule{}).Expand(u, cfg, diag.NewCollector(nil), identity)
		require.NoError(t, err)

		layer := node.(*spec.Layer)
		require.Len(t, layer.Layer, 3)
		assert.Equal(t, spec.MarkArea, layer.Layer[0].(*spec.Unit).Mark.Type)
		assert.Equal(t, spec.MarkLine, layer.Layer[1].(*spec.Unit).Mark.Type)
		assert.Equal(t, spec.MarkPoint, layer.Layer[2].(*spec.Unit).Mark.Type)
	})

	t.Run("Should decline when no overlay is requested", func(t *testing.T) {
		u := &spec.Unit{Mark: spec.MarkDef{Type: spec.MarkLine}}
		assert.False(t, (&PathOverlayRule{}).Match(u, config.Default()))
	})
}

func TestRangedLineRule(t *testing.T) {
	t.Run("Should rewrite a ranged line into a rule mark", func(t *testing.T) {
		d := diag.NewCollector(nil)
		u := &spec.Unit{
			Mark: spec.MarkDef{Type: spec.MarkLine},
			Encoding: spec.Encoding{
				spec.ChannelX:  {Field: spec.FieldRef{Name: "start"}},
				spec.ChannelX2: {Field: spec.FieldRef{Name: "end"}},
			},
		}
		rule := &RangedLineRule{}
		require.True(t, rule.Match(u, config.Default()))

		node, err := rule.Expand(u, config.Default(), d, identity)
		require.NoError(t, err)

		assert.Equal(t, spec.MarkRule, node.(*spec.Unit).Mark.Type)
		assert.Len(t, d.ByKind(diag.KindMarkRewritten), 1)
	})

	t.Run("Should ignore a line with a single positional channel", func(t *testing.T) {
		u := &spec.Unit{
			Mark:     spec.MarkDef{Type: spec.MarkLine},
			Encoding: spec.Encoding{spec.ChannelX: {Field: spec.FieldRef{Name: "a"}}},
		}
		assert.False(t, (&RangedLineRule{}).Match(u, config.Default()))
	})
}

func TestRangeStepRule(t *testing.T) {
	t.Run("Should rewrite rangeStep into an explicit width", func(t *testing.T) {
		d := diag.NewCollector(nil)
		u := &spec.Unit{
			Mark: spec.MarkDef{Type: spec.MarkBar},
			Encoding: spec.Encoding{
				spec.ChannelX: {
					Field: spec.FieldRef{Name: "a"},
					Scale: map[string]any{"rangeStep": 17.0, "zero": true},
				},
			},
		}
		rule := &RangeStepRule{}
		require.True(t, rule.Match(u, config.Default()))

		node, err := rule.Expand(u, config.Default(), d, identity)
		require.NoError(t, err)

		out := node.(*spec.Unit)
		require.NotNil(t, out.Width)
		assert.Equal(t, 17.0, *out.Width)
		// The rewritten scale drops the rangeStep key but keeps the rest.
		assert.NotContains(t, out.Encoding[spec.ChannelX].Scale, "rangeStep")
		assert.Contains(t, out.Encoding[spec.ChannelX].Scale, "zero")
		// The rewrite makes the unit stop matching, so the chain terminates.
		assert.False(t, rule.Match(out, config.Default()))
		assert.Len(t, d.ByKind(diag.KindMarkRewritten), 1)
	})

	t.Run("Should fall back to the configured step for a bare flag", func(t *testing.T) {
		u := &spec.Unit{
			Mark: spec.MarkDef{Type: spec.MarkBar},
			Encoding: spec.Encoding{
				spec.ChannelY: {
					Field: spec.FieldRef{Name: "a"},
					Scale: map[string]any{"rangeStep": nil},
				},
			},
		}

		node, err := (&RangeStepRule{}).Expand(u, config.Default(), diag.NewCollector(nil), identity)
		require.NoError(t, err)

		out := node.(*spec.Unit)
		require.NotNil(t, out.Height)
		assert.Equal(t, config.Default().Scale.RangeStep, *out.Height)
	})

	t.Run("Should keep an explicit size over the derived one", func(t *testing.T) {
		width := 400.0
		u := &spec.Unit{
			Mark:  spec.MarkDef{Type: spec.MarkBar},
			Width: &width,
			Encoding: spec.Encoding{
				spec.ChannelX: {
					Field: spec.FieldRef{Name: "a"},
					Scale: map[string]any{"rangeStep": 17.0},
				},
			},
		}

		node, err := (&RangeStepRule{}).Expand(u, config.Default(), diag.NewCollector(nil), identity)
		require.NoError(t, err)
		assert.Equal(t, 400.0, *node.(*spec.Unit).Width)
	})
}
