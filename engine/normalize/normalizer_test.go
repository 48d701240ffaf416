package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vizforge/vizforge/engine/config"
	"github.com/vizforge/vizforge/engine/spec"
	"github.com/vizforge/vizforge/pkg/diag"
)

func TestNormalize(t *testing.T) {
	t.Run("Should pass a plain unit through unchanged", func(t *testing.T) {
		u := &spec.Unit{
			Mark: spec.MarkDef{Type: spec.MarkBar},
			Encoding: spec.Encoding{
				spec.ChannelX: {Field: spec.FieldRef{Name: "a"}, Type: "nominal"},
			},
		}

		out, err := Normalize(u, nil, diag.NewCollector(nil))
		require.NoError(t, err)

		got, ok := out.(*spec.Unit)
		require.True(t, ok)
		assert.Equal(t, spec.MarkBar, got.Mark.Type)
		assert.Equal(t, "a", got.Encoding[spec.ChannelX].Field.Name)
	})

	t.Run("Should fail on a nil node", func(t *testing.T) {
		_, err := Normalize(nil, nil, diag.NewCollector(nil))
		require.Error(t, err)
		var cfgErr *spec.ConfigurationError
		assert.ErrorAs(t, err, &cfgErr)
	})

	t.Run("Should be idempotent", func(t *testing.T) {
		u := &spec.Unit{
			Mark: spec.MarkDef{Type: spec.MarkBoxPlot},
			Encoding: spec.Encoding{
				spec.ChannelX: {Field: spec.FieldRef{Name: "origin"}, Type: "nominal"},
				spec.ChannelY: {Field: spec.FieldRef{Name: "mpg"}, Type: "quantitative"},
			},
		}

		once, err := Normalize(u, nil, diag.NewCollector(nil))
		require.NoError(t, err)
		twice, err := Normalize(once, nil, diag.NewCollector(nil))
		require.NoError(t, err)

		assert.Equal(t, once, twice)
	})

	t.Run("Should push the layer encoding down and strip it from the output", func(t *testing.T) {
		l := &spec.Layer{
			Encoding: spec.Encoding{
				spec.ChannelX: {Field: spec.FieldRef{Name: "date"}, Type: "temporal"},
			},
			Layer: []spec.Node{
				&spec.Unit{
					Mark: spec.MarkDef{Type: spec.MarkLine},
					Encoding: spec.Encoding{
						spec.ChannelY: {Field: spec.FieldRef{Name: "price"}, Type: "quantitative"},
					},
				},
			},
		}

		out, err := Normalize(l, nil, diag.NewCollector(nil))
		require.NoError(t, err)

		got := out.(*spec.Layer)
		assert.Nil(t, got.Encoding)
		child := got.Layer[0].(*spec.Unit)
		assert.Equal(t, "date", child.Encoding[spec.ChannelX].Field.Name)
		assert.Equal(t, "price", child.Encoding[spec.ChannelY].Field.Name)
	})

	t.Run("Should skip the mark rule chain under an inherited encoding", func(t *testing.T) {
		cfg := config.Default()
		cfg.Line.Point = true

		l := &spec.Layer{
			Encoding: spec.Encoding{
				spec.ChannelX: {Field: spec.FieldRef{Name: "date"}, Type: "temporal"},
			},
			Layer: []spec.Node{
				&spec.Unit{Mark: spec.MarkDef{Type: spec.MarkLine}},
			},
		}

		out, err := Normalize(l, cfg, diag.NewCollector(nil))
		require.NoError(t, err)

		// With the chain active, line.point would have expanded the child
		// into a layer. Under an inherited encoding it must stay a unit.
		_, isUnit := out.(*spec.Layer).Layer[0].(*spec.Unit)
		assert.True(t, isUnit)
	})

	t.Run("Should apply the point overlay to a standalone line unit", func(t *testing.T) {
		cfg := config.Default()
		cfg.Line.Point = true

		u := &spec.Unit{
			Mark: spec.MarkDef{Type: spec.MarkLine},
			Encoding: spec.Encoding{
				spec.ChannelX: {Field: spec.FieldRef{Name: "date"}, Type: "temporal"},
				spec.ChannelY: {Field: spec.FieldRef{Name: "price"}, Type: "quantitative"},
			},
		}

		out, err := Normalize(u, cfg, diag.NewCollector(nil))
		require.NoError(t, err)

		_, isLayer := out.(*spec.Layer)
		assert.True(t, isLayer)
	})

	t.Run("Should normalize concat children recursively", func(t *testing.T) {
		v := &spec.VConcat{
			VConcat: []spec.Node{
				&spec.Unit{
					Mark: spec.MarkDef{Type: spec.MarkBar},
					Encoding: spec.Encoding{
						spec.ChannelX:   {Field: spec.FieldRef{Name: "a"}},
						spec.ChannelRow: {Field: spec.FieldRef{Name: "origin"}},
					},
				},
				&spec.Unit{Mark: spec.MarkDef{Type: spec.MarkLine}},
			},
		}

		out, err := Normalize(v, nil, diag.NewCollector(nil))
		require.NoError(t, err)

		got := out.(*spec.VConcat)
		require.Len(t, got.VConcat, 2)
		// The faceted child is promoted in place.
		assert.Equal(t, spec.KindFacet, got.VConcat[0].Kind())
		assert.Equal(t, spec.KindUnit, got.VConcat[1].Kind())
	})
}
