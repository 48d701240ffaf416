package compile

import (
	"sort"

	"github.com/vizforge/vizforge/engine/config"
	"github.com/vizforge/vizforge/engine/render"
	"github.com/vizforge/vizforge/engine/spec"
	"github.com/vizforge/vizforge/pkg/diag"
)

// UnitModel compiles a single-view spec: one mark fed by one data source.
type UnitModel struct {
	baseModel
	unit *spec.Unit
}

func newUnitModel(u *spec.Unit, parent Model, name string, cfg *config.Config, d *diag.Collector) *UnitModel {
	return &UnitModel{
		baseModel: baseModel{name: name, parent: parent, config: cfg, diags: d},
		unit:      u,
	}
}

func (m *UnitModel) Spec() spec.Node { return m.unit }

func (m *UnitModel) ParseData() error {
	if err := m.component.advance(PhaseData); err != nil {
		return err
	}
	data := &render.Data{Name: dataName(m.name)}
	if src := m.unit.Data; src != nil {
		data.URL = src.URL
		data.Values = src.Values
		data.Format = src.Format
		if src.Name != "" {
			data.Source = src.Name
		}
	}
	data.Transform = m.unit.Transform
	m.component.Data = data
	return nil
}

func (m *UnitModel) ParseSelections() error {
	if err := m.component.advance(PhaseSelections); err != nil {
		return err
	}
	if len(m.unit.Selection) == 0 {
		return nil
	}
	m.component.Selections = make(map[string]*spec.SelectionDef, len(m.unit.Selection))
	for key, def := range m.unit.Selection {
		m.component.Selections[key] = def
	}
	return nil
}

func (m *UnitModel) ParseMarkGroup() error {
	if err := m.component.advance(PhaseMarkGroup); err != nil {
		return err
	}
	markDef := m.unit.Mark
	out := &render.Mark{
		Type:  string(markDef.Type),
		Name:  m.name + "_marks",
		Style: markDef.Style,
		From:  &render.From{Data: dataName(m.name)},
	}
	if update := m.markEncodeUpdate(); len(update) > 0 {
		out.Encode = &render.Encode{Update: update}
	}
	m.component.Marks = []*render.Mark{out}
	return nil
}

// markEncodeUpdate translates the encoding into a deterministic
// encode-update entry, channels in sorted order.
func (m *UnitModel) markEncodeUpdate() map[string]any {
	if len(m.unit.Encoding) == 0 {
		return nil
	}
	channels := make([]string, 0, len(m.unit.Encoding))
	for c := range m.unit.Encoding {
		channels = append(channels, string(c))
	}
	sort.Strings(channels)
	update := make(map[string]any, len(channels))
	for _, c := range channels {
		fd := m.unit.Encoding[spec.Channel(c)]
		if fd == nil {
			continue
		}
		switch {
		case fd.Value != nil:
			update[c] = map[string]any{"value": fd.Value}
		case fd.Aggregate != "":
			update[c] = map[string]any{"field": fd.Aggregate + "_" + fd.Field.Name}
		case fd.Field.Name != "":
			update[c] = map[string]any{"field": fd.Field.Name}
		}
	}
	return update
}

func (m *UnitModel) ParseAxesAndHeaders() error {
	if err := m.component.advance(PhaseAxesHeaders); err != nil {
		return err
	}
	for _, channel := range []spec.Channel{spec.ChannelX, spec.ChannelY} {
		fd, ok := m.unit.Encoding[channel]
		if !ok || fd == nil || fd.Field.Name == "" {
			continue
		}
		orient := "bottom"
		if channel == spec.ChannelY {
			orient = "left"
		}
		axis := map[string]any{
			"scale":  string(channel),
			"orient": orient,
			"title":  fd.Field.Name,
		}
		for k, v := range fd.Axis {
			axis[k] = v
		}
		m.component.Axes = append(m.component.Axes, axis)
	}
	return nil
}

func (m *UnitModel) ParseLayoutSize() error {
	if err := m.component.advance(PhaseLayoutSize); err != nil {
		return err
	}
	width := m.config.View.ContinuousWidth
	if m.unit.Width != nil {
		width = *m.unit.Width
	}
	height := m.config.View.ContinuousHeight
	if m.unit.Height != nil {
		height = *m.unit.Height
	}
	m.component.LayoutSize = map[string]float64{
		"width":  width,
		"height": height,
	}
	return nil
}

// AssembleSignals emits the unit-scope tuple signal backing each selection.
// The top-level signal of the same selection updates from this tuple, so the
// two lists never carry the same name twice.
func (m *UnitModel) AssembleSignals() []render.Signal {
	if !m.component.assembleReady() {
		m.diags.Warnf(diag.KindPhaseOrder, "assemble requested before parsing completed on %q", m.name)
		return nil
	}
	signals := make([]render.Signal, 0, len(m.component.Selections))
	for _, key := range sortedSelectionKeys(m.component.Selections) {
		def := m.component.Selections[key]
		signals = append(signals, render.Signal{
			Name:  key + "_tuple",
			Value: map[string]any{"type": def.Type},
		})
	}
	return signals
}

func (m *UnitModel) AssembleLayoutSignals() []render.Signal {
	if !m.component.assembleReady() {
		return nil
	}
	return []render.Signal{
		{Name: m.name + "_width", Value: m.component.LayoutSize["width"]},
		{Name: m.name + "_height", Value: m.component.LayoutSize["height"]},
	}
}

func (m *UnitModel) AssembleSelectionTopLevelSignals(acc []render.Signal) []render.Signal {
	for _, key := range sortedSelectionKeys(m.component.Selections) {
		acc = append(acc, render.Signal{Name: key, Update: key + "_tuple"})
	}
	return acc
}

func (m *UnitModel) AssembleSelectionData(acc []render.Data) []render.Data {
	for _, key := range sortedSelectionKeys(m.component.Selections) {
		acc = append(acc, render.Data{Name: key + "_store"})
	}
	return acc
}

func (m *UnitModel) AssembleMarks() []*render.Mark {
	if !m.component.assembleReady() {
		return nil
	}
	return m.component.Marks
}

func (m *UnitModel) AssembleLayout() *render.Layout { return nil }

func (m *UnitModel) AssembleGroupStyle() string {
	if m.unit.View != nil {
		return "view"
	}
	return ""
}

func (m *UnitModel) AssembleGroupEncodeEntry() map[string]any {
	if m.unit.View == nil {
		return nil
	}
	update := map[string]any{}
	if m.unit.View.Fill != "" {
		update["fill"] = map[string]any{"value": m.unit.View.Fill}
	}
	if m.unit.View.Stroke != "" {
		update["stroke"] = map[string]any{"value": m.unit.View.Stroke}
	}
	if m.unit.View.Opacity != nil {
		update["opacity"] = map[string]any{"value": *m.unit.View.Opacity}
	}
	if len(update) == 0 {
		return nil
	}
	return update
}

func sortedSelectionKeys(selections map[string]*spec.SelectionDef) []string {
	keys := make([]string, 0, len(selections))
	for key := range selections {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
