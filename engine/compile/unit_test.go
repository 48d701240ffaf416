package compile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vizforge/vizforge/engine/config"
	"github.com/vizforge/vizforge/engine/spec"
)

func TestUnitModel(t *testing.T) {
	build := func(t *testing.T, u *spec.Unit) Model {
		t.Helper()
		m, err := Build(u, nil, "chart", nil, nil)
		require.NoError(t, err)
		return m
	}

	t.Run("Should derive the data component from the spec data", func(t *testing.T) {
		u := &spec.Unit{Mark: spec.MarkDef{Type: spec.MarkBar}}
		u.Data = &spec.Data{URL: "cars.json"}
		u.Transform = []map[string]any{{"filter": "datum.x > 0"}}

		m := build(t, u)
		parseAll(t, m)

		data := m.Component().Data
		require.NotNil(t, data)
		assert.Equal(t, "chart_data", data.Name)
		assert.Equal(t, "cars.json", data.URL)
		assert.Len(t, data.Transform, 1)
	})

	t.Run("Should emit one mark fed by the unit data", func(t *testing.T) {
		u := &spec.Unit{
			Mark: spec.MarkDef{Type: spec.MarkBar, Style: "bar"},
			Encoding: spec.Encoding{
				spec.ChannelX: {Field: spec.FieldRef{Name: "origin"}, Type: "nominal"},
				spec.ChannelY: {Field: spec.FieldRef{Name: "mpg"}, Aggregate: "mean"},
			},
		}

		m := build(t, u)
		parseAll(t, m)

		marks := m.AssembleMarks()
		require.Len(t, marks, 1)
		mark := marks[0]
		assert.Equal(t, "bar", mark.Type)
		assert.Equal(t, "chart_marks", mark.Name)
		assert.Equal(t, "chart_data", mark.From.Data)
		require.NotNil(t, mark.Encode)
		assert.Equal(t, map[string]any{"field": "origin"}, mark.Encode.Update["x"])
		assert.Equal(t, map[string]any{"field": "mean_mpg"}, mark.Encode.Update["y"])
	})

	t.Run("Should omit the encode entry for an empty encoding", func(t *testing.T) {
		m := build(t, &spec.Unit{Mark: spec.MarkDef{Type: spec.MarkRule}})
		parseAll(t, m)

		marks := m.AssembleMarks()
		require.Len(t, marks, 1)
		assert.Nil(t, marks[0].Encode)
	})

	t.Run("Should build axes for named positional fields only", func(t *testing.T) {
		u := &spec.Unit{
			Mark: spec.MarkDef{Type: spec.MarkPoint},
			Encoding: spec.Encoding{
				spec.ChannelX:     {Field: spec.FieldRef{Name: "a"}, Axis: map[string]any{"grid": true}},
				spec.ChannelY:     {Value: 5},
				spec.ChannelColor: {Field: spec.FieldRef{Name: "c"}},
			},
		}

		m := build(t, u)
		parseAll(t, m)

		axes := m.Component().Axes
		require.Len(t, axes, 1)
		assert.Equal(t, "x", axes[0]["scale"])
		assert.Equal(t, "bottom", axes[0]["orient"])
		assert.Equal(t, "a", axes[0]["title"])
		assert.Equal(t, true, axes[0]["grid"])
	})

	t.Run("Should fall back to the configured view size", func(t *testing.T) {
		m := build(t, &spec.Unit{Mark: spec.MarkDef{Type: spec.MarkBar}})
		parseAll(t, m)

		size := m.Component().LayoutSize
		assert.Equal(t, config.Default().View.ContinuousWidth, size["width"])
		assert.Equal(t, config.Default().View.ContinuousHeight, size["height"])
	})

	t.Run("Should prefer explicit width and height", func(t *testing.T) {
		width, height := 640.0, 480.0
		m := build(t, &spec.Unit{
			Mark:   spec.MarkDef{Type: spec.MarkBar},
			Width:  &width,
			Height: &height,
		})
		parseAll(t, m)

		signals := m.AssembleLayoutSignals()
		require.Len(t, signals, 2)
		assert.Equal(t, "chart_width", signals[0].Name)
		assert.Equal(t, 640.0, signals[0].Value)
		assert.Equal(t, "chart_height", signals[1].Name)
		assert.Equal(t, 480.0, signals[1].Value)
	})

	t.Run("Should emit selection signals and stores in sorted order", func(t *testing.T) {
		u := &spec.Unit{
			Mark: spec.MarkDef{Type: spec.MarkPoint},
			Selection: map[string]*spec.SelectionDef{
				"zoom":  {Type: "interval"},
				"brush": {Type: "interval"},
			},
		}

		m := build(t, u)
		parseAll(t, m)

		signals := m.AssembleSelectionTopLevelSignals(nil)
		require.Len(t, signals, 2)
		assert.Equal(t, "brush", signals[0].Name)
		assert.Equal(t, "brush_tuple", signals[0].Update)
		assert.Equal(t, "zoom", signals[1].Name)

		stores := m.AssembleSelectionData(nil)
		require.Len(t, stores, 2)
		assert.Equal(t, "brush_store", stores[0].Name)
		assert.Equal(t, "zoom_store", stores[1].Name)
	})

	t.Run("Should define the tuple signal each top-level selection signal reads", func(t *testing.T) {
		u := &spec.Unit{
			Mark: spec.MarkDef{Type: spec.MarkPoint},
			Selection: map[string]*spec.SelectionDef{
				"brush": {Type: "interval"},
			},
		}

		m := build(t, u)
		parseAll(t, m)

		unitScope := m.AssembleSignals()
		require.Len(t, unitScope, 1)
		assert.Equal(t, "brush_tuple", unitScope[0].Name)
		assert.Equal(t, map[string]any{"type": "interval"}, unitScope[0].Value)

		// The unit scope never re-declares the top-level signal name.
		topLevel := m.AssembleSelectionTopLevelSignals(nil)
		require.Len(t, topLevel, 1)
		assert.Equal(t, unitScope[0].Name, topLevel[0].Update)
		assert.NotEqual(t, unitScope[0].Name, topLevel[0].Name)
	})

	t.Run("Should report the view style and encode entry only with a view background", func(t *testing.T) {
		plain := build(t, &spec.Unit{Mark: spec.MarkDef{Type: spec.MarkBar}})
		assert.Empty(t, plain.AssembleGroupStyle())
		assert.Nil(t, plain.AssembleGroupEncodeEntry())

		styled := build(t, &spec.Unit{
			Mark: spec.MarkDef{Type: spec.MarkBar},
			View: &spec.ViewBackground{Fill: "#eee", Stroke: "black"},
		})
		assert.Equal(t, "view", styled.AssembleGroupStyle())
		entry := styled.AssembleGroupEncodeEntry()
		assert.Equal(t, map[string]any{"value": "#eee"}, entry["fill"])
		assert.Equal(t, map[string]any{"value": "black"}, entry["stroke"])
	})
}
