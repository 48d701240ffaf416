// Package render defines the low-level fragment types the compiler
// assembles: group descriptors, signals, data descriptors and layout
// descriptors. The exact schema consumed by a downstream rendering engine is
// out of scope; these types are the output boundary of this module.
package render

// Spec is the assembled top-level output fragment.
type Spec struct {
	Signals []Signal `yaml:"signals,omitempty" json:"signals,omitempty"`
	Data    []Data   `yaml:"data,omitempty"    json:"data,omitempty"`
	Layout  *Layout  `yaml:"layout,omitempty"  json:"layout,omitempty"`
	Marks   []*Mark  `yaml:"marks,omitempty"   json:"marks,omitempty"`
}

// Data describes one data source of the output.
type Data struct {
	Name      string           `yaml:"name"                json:"name"`
	Source    string           `yaml:"source,omitempty"    json:"source,omitempty"`
	URL       string           `yaml:"url,omitempty"       json:"url,omitempty"`
	Values    []map[string]any `yaml:"values,omitempty"    json:"values,omitempty"`
	Format    map[string]any   `yaml:"format,omitempty"    json:"format,omitempty"`
	Transform []map[string]any `yaml:"transform,omitempty" json:"transform,omitempty"`
}

// Signal is a named reactive value of the output.
type Signal struct {
	Name   string `yaml:"name"             json:"name"`
	Value  any    `yaml:"value,omitempty"  json:"value,omitempty"`
	Update string `yaml:"update,omitempty" json:"update,omitempty"`
}

// Layout describes grid placement for a composition group.
type Layout struct {
	Columns *int     `yaml:"columns,omitempty" json:"columns,omitempty"`
	Bounds  string   `yaml:"bounds,omitempty"  json:"bounds,omitempty"`
	Align   string   `yaml:"align,omitempty"   json:"align,omitempty"`
	Spacing *float64 `yaml:"spacing,omitempty" json:"spacing,omitempty"`
}

// Title is a group or view title.
type Title struct {
	Text string `yaml:"text" json:"text"`
}

// Encode carries the encode-update entry of a mark or group.
type Encode struct {
	Update map[string]any `yaml:"update,omitempty" json:"update,omitempty"`
}

// From states which data source feeds a mark.
type From struct {
	Data  string         `yaml:"data,omitempty"  json:"data,omitempty"`
	Facet map[string]any `yaml:"facet,omitempty" json:"facet,omitempty"`
}

// Mark is one renderable item or group descriptor. Group marks nest their
// body in Marks; every optional piece is omitted entirely when absent.
type Mark struct {
	Type    string           `yaml:"type"              json:"type"`
	Name    string           `yaml:"name"              json:"name"`
	Style   string           `yaml:"style,omitempty"   json:"style,omitempty"`
	Title   *Title           `yaml:"title,omitempty"   json:"title,omitempty"`
	From    *From            `yaml:"from,omitempty"    json:"from,omitempty"`
	Encode  *Encode          `yaml:"encode,omitempty"  json:"encode,omitempty"`
	Layout  *Layout          `yaml:"layout,omitempty"  json:"layout,omitempty"`
	Signals []Signal         `yaml:"signals,omitempty" json:"signals,omitempty"`
	Axes    []map[string]any `yaml:"axes,omitempty"    json:"axes,omitempty"`
	Marks   []*Mark          `yaml:"marks,omitempty"   json:"marks,omitempty"`
}
