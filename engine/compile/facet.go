package compile

import (
	"github.com/vizforge/vizforge/engine/config"
	"github.com/vizforge/vizforge/engine/render"
	"github.com/vizforge/vizforge/engine/spec"
	"github.com/vizforge/vizforge/pkg/diag"
)

// FacetModel compiles an explicit facet node: its single child is stamped
// out once per distinct value of the facet fields, so the assembled output
// is one faceted group descriptor plus header descriptors per dimension.
type FacetModel struct {
	baseModel
	facet *spec.Facet
	child Model
}

func newFacetModel(f *spec.Facet, parent Model, name string, cfg *config.Config, d *diag.Collector) (*FacetModel, error) {
	m := &FacetModel{
		baseModel: baseModel{name: name, parent: parent, config: cfg, diags: d},
		facet:     f,
	}
	child, err := Build(f.Spec, m, name+"_child", cfg, d)
	if err != nil {
		return nil, err
	}
	m.child = child
	m.children = []Model{child}
	return m, nil
}

func (m *FacetModel) Spec() spec.Node { return m.facet }

func (m *FacetModel) ParseData() error {
	if err := m.component.advance(PhaseData); err != nil {
		return err
	}
	if src := m.facet.Data; src != nil {
		m.component.Data = &render.Data{
			Name:   dataName(m.name),
			URL:    src.URL,
			Values: src.Values,
			Format: src.Format,
		}
	}
	return m.child.ParseData()
}

func (m *FacetModel) ParseSelections() error {
	if err := m.component.advance(PhaseSelections); err != nil {
		return err
	}
	if err := m.child.ParseSelections(); err != nil {
		return err
	}
	if len(m.child.Component().Selections) > 0 {
		m.component.Selections = m.child.Component().Selections
	}
	return nil
}

func (m *FacetModel) ParseMarkGroup() error {
	if err := m.component.advance(PhaseMarkGroup); err != nil {
		return err
	}
	return m.child.ParseMarkGroup()
}

// ParseAxesAndHeaders builds one header descriptor per facet dimension
// after the child has parsed its own axes.
func (m *FacetModel) ParseAxesAndHeaders() error {
	if err := m.component.advance(PhaseAxesHeaders); err != nil {
		return err
	}
	if err := m.child.ParseAxesAndHeaders(); err != nil {
		return err
	}
	for _, dim := range facetDimensions(&m.facet.Facet) {
		header := &render.Mark{
			Type:  "group",
			Name:  m.name + "_" + dim.kind + "_header",
			Style: dim.kind + "-header",
		}
		if dim.def.Field.Name != "" {
			header.Title = &render.Title{Text: dim.def.Field.Name}
		}
		m.component.Headers = append(m.component.Headers, header)
	}
	return nil
}

func (m *FacetModel) ParseLayoutSize() error {
	if err := m.component.advance(PhaseLayoutSize); err != nil {
		return err
	}
	if err := m.child.ParseLayoutSize(); err != nil {
		return err
	}
	// Cell size is the child's size; the grid dimensions depend on the data
	// and stay symbolic until render time.
	m.component.LayoutSize = m.child.Component().LayoutSize
	return nil
}

func (m *FacetModel) AssembleSignals() []render.Signal {
	if !m.component.assembleReady() {
		return nil
	}
	return m.child.AssembleSignals()
}

func (m *FacetModel) AssembleLayoutSignals() []render.Signal {
	if !m.component.assembleReady() {
		return nil
	}
	signals := []render.Signal{
		{Name: m.name + "_width", Value: m.component.LayoutSize["width"]},
		{Name: m.name + "_height", Value: m.component.LayoutSize["height"]},
	}
	return append(signals, m.child.AssembleLayoutSignals()...)
}

func (m *FacetModel) AssembleSelectionTopLevelSignals(acc []render.Signal) []render.Signal {
	return m.child.AssembleSelectionTopLevelSignals(acc)
}

func (m *FacetModel) AssembleSelectionData(acc []render.Data) []render.Data {
	return m.child.AssembleSelectionData(acc)
}

// AssembleMarks emits the header groups followed by one faceted cell group
// whose body is the child's assembled marks.
func (m *FacetModel) AssembleMarks() []*render.Mark {
	if !m.component.assembleReady() {
		m.diags.Warnf(diag.KindPhaseOrder, "assemble requested before parsing completed on %q", m.name)
		return nil
	}
	groupby := make([]string, 0, 2)
	for _, dim := range facetDimensions(&m.facet.Facet) {
		if dim.def.Field.Name != "" {
			groupby = append(groupby, dim.def.Field.Name)
		}
	}
	cell := &render.Mark{
		Type:  "group",
		Name:  m.name + "_cell",
		Style: "cell",
		From: &render.From{
			Facet: map[string]any{
				"name":    m.name + "_facet",
				"data":    dataName(m.name),
				"groupby": groupby,
			},
		},
		Marks: m.child.AssembleMarks(),
	}
	if axes := m.child.Component().Axes; len(axes) > 0 {
		cell.Axes = axes
	}
	out := make([]*render.Mark, 0, len(m.component.Headers)+1)
	out = append(out, m.component.Headers...)
	return append(out, cell)
}

// AssembleLayout maps the promoted layout record onto the output grid.
func (m *FacetModel) AssembleLayout() *render.Layout {
	layout := &render.Layout{
		Bounds: "full",
		Align:  "all",
	}
	if m.facet.Columns != nil {
		layout.Columns = m.facet.Columns
	}
	if align := m.facet.Layout.Align; align != nil && align.Flat != nil {
		layout.Align = *align.Flat
	}
	spacing := m.config.Facet.Spacing
	if sp := m.facet.Layout.Spacing; sp != nil && sp.Flat != nil {
		spacing = *sp.Flat
	}
	layout.Spacing = &spacing
	return layout
}

func (m *FacetModel) AssembleGroupStyle() string { return "" }

func (m *FacetModel) AssembleGroupEncodeEntry() map[string]any { return nil }

type facetDimension struct {
	kind string
	def  *spec.FieldDef
}

// facetDimensions lists the populated facet dimensions in row, column, flat
// order.
func facetDimensions(def *spec.FacetDef) []facetDimension {
	var dims []facetDimension
	if def.Row != nil {
		dims = append(dims, facetDimension{kind: "row", def: def.Row})
	}
	if def.Column != nil {
		dims = append(dims, facetDimension{kind: "column", def: def.Column})
	}
	if def.Field != nil {
		dims = append(dims, facetDimension{kind: "facet", def: def.Field})
	}
	return dims
}
