package compile

import (
	"github.com/vizforge/vizforge/engine/config"
	"github.com/vizforge/vizforge/engine/render"
	"github.com/vizforge/vizforge/engine/spec"
	"github.com/vizforge/vizforge/pkg/diag"
)

// LayerModel compiles a layer composition. All children share one
// coordinate space, so assembled marks concatenate without group wrappers
// and the layout size is the maximum over the children.
type LayerModel struct {
	baseModel
	layer *spec.Layer
}

func newLayerModel(l *spec.Layer, parent Model, name string, cfg *config.Config, d *diag.Collector) (*LayerModel, error) {
	m := &LayerModel{
		baseModel: baseModel{name: name, parent: parent, config: cfg, diags: d},
		layer:     l,
	}
	children, err := buildChildren(m, l.Layer, name, cfg, d)
	if err != nil {
		return nil, err
	}
	m.children = children
	return m, nil
}

func (m *LayerModel) Spec() spec.Node { return m.layer }

func (m *LayerModel) ParseData() error {
	if err := m.component.advance(PhaseData); err != nil {
		return err
	}
	if src := m.layer.Data; src != nil {
		m.component.Data = &render.Data{
			Name:   dataName(m.name),
			URL:    src.URL,
			Values: src.Values,
			Format: src.Format,
		}
	}
	for _, child := range m.children {
		if err := child.ParseData(); err != nil {
			return err
		}
	}
	return nil
}

func (m *LayerModel) ParseSelections() error {
	if err := m.component.advance(PhaseSelections); err != nil {
		return err
	}
	for _, child := range m.children {
		if err := child.ParseSelections(); err != nil {
			return err
		}
	}
	merged := map[string]*spec.SelectionDef{}
	for _, child := range m.children {
		for key, def := range child.Component().Selections {
			merged[key] = def
		}
	}
	if len(merged) > 0 {
		m.component.Selections = merged
	}
	return nil
}

func (m *LayerModel) ParseMarkGroup() error {
	if err := m.component.advance(PhaseMarkGroup); err != nil {
		return err
	}
	for _, child := range m.children {
		if err := child.ParseMarkGroup(); err != nil {
			return err
		}
	}
	return nil
}

// ParseAxesAndHeaders collects one axis per positional scale across the
// children; the first child to declare a scale wins.
func (m *LayerModel) ParseAxesAndHeaders() error {
	if err := m.component.advance(PhaseAxesHeaders); err != nil {
		return err
	}
	seen := map[string]bool{}
	for _, child := range m.children {
		if err := child.ParseAxesAndHeaders(); err != nil {
			return err
		}
		for _, axis := range child.Component().Axes {
			scale, _ := axis["scale"].(string)
			if scale != "" && seen[scale] {
				continue
			}
			seen[scale] = true
			m.component.Axes = append(m.component.Axes, axis)
		}
	}
	return nil
}

func (m *LayerModel) ParseLayoutSize() error {
	if err := m.component.advance(PhaseLayoutSize); err != nil {
		return err
	}
	var width, height float64
	for _, child := range m.children {
		if err := child.ParseLayoutSize(); err != nil {
			return err
		}
		size := child.Component().LayoutSize
		if size["width"] > width {
			width = size["width"]
		}
		if size["height"] > height {
			height = size["height"]
		}
	}
	if m.layer.Width != nil {
		width = *m.layer.Width
	}
	if m.layer.Height != nil {
		height = *m.layer.Height
	}
	m.component.LayoutSize = map[string]float64{"width": width, "height": height}
	return nil
}

func (m *LayerModel) AssembleSignals() []render.Signal {
	if !m.component.assembleReady() {
		return nil
	}
	var signals []render.Signal
	for _, child := range m.children {
		signals = append(signals, child.AssembleSignals()...)
	}
	return signals
}

func (m *LayerModel) AssembleLayoutSignals() []render.Signal {
	if !m.component.assembleReady() {
		return nil
	}
	return []render.Signal{
		{Name: m.name + "_width", Value: m.component.LayoutSize["width"]},
		{Name: m.name + "_height", Value: m.component.LayoutSize["height"]},
	}
}

func (m *LayerModel) AssembleSelectionTopLevelSignals(acc []render.Signal) []render.Signal {
	for _, child := range m.children {
		acc = child.AssembleSelectionTopLevelSignals(acc)
	}
	return acc
}

func (m *LayerModel) AssembleSelectionData(acc []render.Data) []render.Data {
	for _, child := range m.children {
		acc = child.AssembleSelectionData(acc)
	}
	return acc
}

// AssembleMarks flattens the children's marks in declaration order; layering
// is z-order, not grouping.
func (m *LayerModel) AssembleMarks() []*render.Mark {
	if !m.component.assembleReady() {
		m.diags.Warnf(diag.KindPhaseOrder, "assemble requested before parsing completed on %q", m.name)
		return nil
	}
	var marks []*render.Mark
	for _, child := range m.children {
		marks = append(marks, child.AssembleMarks()...)
	}
	return marks
}

func (m *LayerModel) AssembleLayout() *render.Layout { return nil }

func (m *LayerModel) AssembleGroupStyle() string {
	if m.layer.View != nil {
		return "view"
	}
	return ""
}

func (m *LayerModel) AssembleGroupEncodeEntry() map[string]any {
	if m.layer.View == nil {
		return nil
	}
	update := map[string]any{}
	if m.layer.View.Fill != "" {
		update["fill"] = map[string]any{"value": m.layer.View.Fill}
	}
	if m.layer.View.Stroke != "" {
		update["stroke"] = map[string]any{"value": m.layer.View.Stroke}
	}
	if len(update) == 0 {
		return nil
	}
	return update
}
