package compile

import (
	"github.com/vizforge/vizforge/engine/config"
	"github.com/vizforge/vizforge/engine/render"
	"github.com/vizforge/vizforge/engine/spec"
	"github.com/vizforge/vizforge/pkg/diag"
)

// ConcatModel compiles the concat family (generic, horizontal, vertical).
// It owns an ordered sequence of child models, runs the shared phase
// sequence across its subtree, and assembles concatenation-specific layout
// and group structures. Axis sharing across children is deliberately not
// implemented: each child keeps independent axes.
type ConcatModel struct {
	baseModel
	node    spec.Node
	kind    spec.Kind
	columns *int
}

func newConcatModel(node spec.Node, parent Model, name string, cfg *config.Config, d *diag.Collector) (*ConcatModel, error) {
	m := &ConcatModel{
		baseModel: baseModel{name: name, parent: parent, config: cfg, diags: d},
		node:      node,
		kind:      node.Kind(),
	}
	if c, ok := node.(*spec.Concat); ok {
		m.columns = c.Columns
	}
	children, err := buildChildren(m, spec.Children(node), name, cfg, d)
	if err != nil {
		return nil, err
	}
	m.children = children
	return m, nil
}

func (m *ConcatModel) Spec() spec.Node { return m.node }

// ParseData computes this node's own data component first, then tells each
// child to do the same. The parent may need its data shape before deciding
// what a child inherits, even though concatenation pushes nothing down.
func (m *ConcatModel) ParseData() error {
	if err := m.component.advance(PhaseData); err != nil {
		return err
	}
	if src := m.node.Base().Data; src != nil {
		m.component.Data = &render.Data{
			Name:   dataName(m.name),
			URL:    src.URL,
			Values: src.Values,
			Format: src.Format,
		}
		if src.Name != "" {
			m.component.Data.Source = src.Name
		}
	}
	for _, child := range m.children {
		if err := child.ParseData(); err != nil {
			return err
		}
	}
	return nil
}

// ParseSelections recurses into the children first, then merges every
// child's named selections into this node's mapping by key. Later children
// overwrite earlier ones on collision; this is how a selection defined deep
// in one child becomes referenceable across its siblings.
func (m *ConcatModel) ParseSelections() error {
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

// ParseMarkGroup is a pure fan-out: the concatenation node has no marks of
// its own.
func (m *ConcatModel) ParseMarkGroup() error {
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

// ParseAxesAndHeaders is a pure fan-out: the concatenation node has no axes
// of its own.
func (m *ConcatModel) ParseAxesAndHeaders() error {
	if err := m.component.advance(PhaseAxesHeaders); err != nil {
		return err
	}
	for _, child := range m.children {
		if err := child.ParseAxesAndHeaders(); err != nil {
			return err
		}
	}
	return nil
}

// ParseLayoutSize delegates to the layout-size algorithm scoped to
// concatenation geometry.
func (m *ConcatModel) ParseLayoutSize() error {
	if err := m.component.advance(PhaseLayoutSize); err != nil {
		return err
	}
	for _, child := range m.children {
		if err := child.ParseLayoutSize(); err != nil {
			return err
		}
	}
	m.component.LayoutSize = concatLayoutSize(m)
	return nil
}

func (m *ConcatModel) AssembleSignals() []render.Signal {
	if !m.component.assembleReady() {
		return nil
	}
	var signals []render.Signal
	for _, child := range m.children {
		signals = append(signals, child.AssembleSignals()...)
	}
	return signals
}

// AssembleLayoutSignals is a left-fold over the children, seeded with this
// node's own size signals.
func (m *ConcatModel) AssembleLayoutSignals() []render.Signal {
	if !m.component.assembleReady() {
		return nil
	}
	signals := []render.Signal{
		{Name: m.name + "_width", Value: m.component.LayoutSize["width"]},
		{Name: m.name + "_height", Value: m.component.LayoutSize["height"]},
	}
	for _, child := range m.children {
		signals = append(signals, child.AssembleLayoutSignals()...)
	}
	return signals
}

// AssembleSelectionTopLevelSignals folds each child's contribution onto the
// accumulator in order. The concatenation owns no selections locally; the
// merged component exists for cross-sibling reference, not re-emission.
func (m *ConcatModel) AssembleSelectionTopLevelSignals(acc []render.Signal) []render.Signal {
	for _, child := range m.children {
		acc = child.AssembleSelectionTopLevelSignals(acc)
	}
	return acc
}

// AssembleSelectionData folds each child's store contribution in order.
func (m *ConcatModel) AssembleSelectionData(acc []render.Data) []render.Data {
	for _, child := range m.children {
		acc = child.AssembleSelectionData(acc)
	}
	return acc
}

// AssembleMarks produces one group descriptor per child, in order. Title,
// style and encode-update entry are attached only when present; an absent
// piece is omitted entirely rather than emitted as an empty placeholder.
func (m *ConcatModel) AssembleMarks() []*render.Mark {
	if !m.component.assembleReady() {
		m.diags.Warnf(diag.KindPhaseOrder, "assemble requested before parsing completed on %q", m.name)
		return nil
	}
	groups := make([]*render.Mark, 0, len(m.children))
	for _, child := range m.children {
		group := &render.Mark{
			Type: "group",
			Name: child.Name() + "_group",
		}
		if title := child.Spec().Base().Title; title != "" {
			group.Title = &render.Title{Text: title}
		}
		if style := child.AssembleGroupStyle(); style != "" {
			group.Style = style
		}
		if update := child.AssembleGroupEncodeEntry(); len(update) > 0 {
			group.Encode = &render.Encode{Update: update}
		}
		group.Marks = child.AssembleMarks()
		if layout := child.AssembleLayout(); layout != nil {
			group.Layout = layout
		}
		if axes := child.Component().Axes; len(axes) > 0 {
			group.Axes = axes
		}
		groups = append(groups, group)
	}
	return groups
}

// AssembleLayout returns the concatenation layout: one column for a
// strictly-vertical arrangement, unconstrained otherwise; full bounds; each
// child's row/column band aligned independently.
func (m *ConcatModel) AssembleLayout() *render.Layout {
	layout := &render.Layout{
		Bounds: "full",
		Align:  "each",
	}
	spacing := m.config.Concat.Spacing
	layout.Spacing = &spacing
	switch {
	case m.columns != nil:
		layout.Columns = m.columns
	case m.kind == spec.KindVConcat:
		one := 1
		layout.Columns = &one
	}
	return layout
}

func (m *ConcatModel) AssembleGroupStyle() string { return "" }

func (m *ConcatModel) AssembleGroupEncodeEntry() map[string]any { return nil }
