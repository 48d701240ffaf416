// Package spec defines the declarative visualization spec tree: a closed set
// of variant nodes (unit, layer, facet, repeat, concat family), their
// encodings, and the classifier that tells the variants apart. Spec nodes are
// immutable values created once from user input and consumed by
// normalization.
package spec

// Kind identifies a spec-node variant. The set is closed: every consumer
// switches over it and treats unknown values as a configuration error.
type Kind string

const (
	KindUnit    Kind = "unit"
	KindLayer   Kind = "layer"
	KindFacet   Kind = "facet"
	KindRepeat  Kind = "repeat"
	KindConcat  Kind = "concat"
	KindHConcat Kind = "hconcat"
	KindVConcat Kind = "vconcat"
)

// Node is one spec-tree node. Concrete types are *Unit, *Layer, *Facet,
// *Repeat, *Concat, *HConcat and *VConcat.
type Node interface {
	Kind() Kind
	Base() *BaseSpec
}

// BaseSpec carries the properties shared by every variant.
type BaseSpec struct {
	Name        string           `mapstructure:"name"        yaml:"name,omitempty"        json:"name,omitempty"`
	Description string           `mapstructure:"description" yaml:"description,omitempty" json:"description,omitempty"`
	Title       string           `mapstructure:"title"       yaml:"title,omitempty"       json:"title,omitempty"`
	Data        *Data            `mapstructure:"data"        yaml:"data,omitempty"        json:"data,omitempty"`
	Transform   []map[string]any `mapstructure:"transform"   yaml:"transform,omitempty"   json:"transform,omitempty"`
	Resolve     *Resolve         `mapstructure:"resolve"     yaml:"resolve,omitempty"     json:"resolve,omitempty"`
}

// Data describes where a node's rows come from. Loading the rows is out of
// scope; the compiler only passes the description through.
type Data struct {
	Name   string           `mapstructure:"name"   yaml:"name,omitempty"   json:"name,omitempty"`
	URL    string           `mapstructure:"url"    yaml:"url,omitempty"    json:"url,omitempty"`
	Values []map[string]any `mapstructure:"values" yaml:"values,omitempty" json:"values,omitempty"`
	Format map[string]any   `mapstructure:"format" yaml:"format,omitempty" json:"format,omitempty"`
}

// Resolve states whether scales, axes and legends are shared or independent
// across sibling compositions.
type Resolve struct {
	Scale  map[string]string `mapstructure:"scale"  yaml:"scale,omitempty"  json:"scale,omitempty"`
	Axis   map[string]string `mapstructure:"axis"   yaml:"axis,omitempty"   json:"axis,omitempty"`
	Legend map[string]string `mapstructure:"legend" yaml:"legend,omitempty" json:"legend,omitempty"`
}

// MarkType names a mark. Composite marks (boxplot, errorbar, errorband) are
// shorthands expanded away by normalization; the rest are primitive.
type MarkType string

const (
	MarkArea      MarkType = "area"
	MarkBar       MarkType = "bar"
	MarkCircle    MarkType = "circle"
	MarkLine      MarkType = "line"
	MarkPoint     MarkType = "point"
	MarkRect      MarkType = "rect"
	MarkRule      MarkType = "rule"
	MarkSquare    MarkType = "square"
	MarkText      MarkType = "text"
	MarkTick      MarkType = "tick"
	MarkTrail     MarkType = "trail"
	MarkBoxPlot   MarkType = "boxplot"
	MarkErrorBar  MarkType = "errorbar"
	MarkErrorBand MarkType = "errorband"
)

// IsComposite reports whether the mark is a composite shorthand.
func (m MarkType) IsComposite() bool {
	switch m {
	case MarkBoxPlot, MarkErrorBar, MarkErrorBand:
		return true
	default:
		return false
	}
}

// IsPath reports whether the mark draws a continuous path.
func (m MarkType) IsPath() bool {
	return m == MarkLine || m == MarkArea || m == MarkTrail
}

// MarkDef is a mark with its style properties. A bare string in the input
// document decodes into a MarkDef holding only the type.
type MarkDef struct {
	Type        MarkType `mapstructure:"type"        yaml:"type"                  json:"type"                  validate:"required"`
	Style       string   `mapstructure:"style"       yaml:"style,omitempty"       json:"style,omitempty"`
	Color       string   `mapstructure:"color"       yaml:"color,omitempty"       json:"color,omitempty"`
	Opacity     *float64 `mapstructure:"opacity"     yaml:"opacity,omitempty"     json:"opacity,omitempty"`
	Size        *float64 `mapstructure:"size"        yaml:"size,omitempty"        json:"size,omitempty"`
	Extent      string   `mapstructure:"extent"      yaml:"extent,omitempty"      json:"extent,omitempty"`
	Orient      string   `mapstructure:"orient"      yaml:"orient,omitempty"      json:"orient,omitempty"`
	Interpolate string   `mapstructure:"interpolate" yaml:"interpolate,omitempty" json:"interpolate,omitempty"`
	// Point and Line request overlays on path marks; nil defers to config.
	Point *bool `mapstructure:"point" yaml:"point,omitempty" json:"point,omitempty"`
	Line  *bool `mapstructure:"line"  yaml:"line,omitempty"  json:"line,omitempty"`
}

// Projection configures cartographic projection for geoshape units.
type Projection struct {
	Type   string    `mapstructure:"type"   yaml:"type"             json:"type"`
	Center []float64 `mapstructure:"center" yaml:"center,omitempty" json:"center,omitempty"`
	Rotate []float64 `mapstructure:"rotate" yaml:"rotate,omitempty" json:"rotate,omitempty"`
	Scale  *float64  `mapstructure:"scale"  yaml:"scale,omitempty"  json:"scale,omitempty"`
}

// SelectionDef declares an interactive selection on a unit. Execution of the
// interaction is out of scope; the compiler only threads the definition into
// signals.
type SelectionDef struct {
	Type      string   `mapstructure:"type"      yaml:"type"                json:"type"                validate:"required,oneof=point interval"`
	On        string   `mapstructure:"on"        yaml:"on,omitempty"        json:"on,omitempty"`
	Fields    []string `mapstructure:"fields"    yaml:"fields,omitempty"    json:"fields,omitempty"`
	Encodings []string `mapstructure:"encodings" yaml:"encodings,omitempty" json:"encodings,omitempty"`
	Bind      string   `mapstructure:"bind"      yaml:"bind,omitempty"      json:"bind,omitempty"`
}

// ViewBackground styles the view rectangle behind a unit or layer.
type ViewBackground struct {
	Fill         string   `mapstructure:"fill"         yaml:"fill,omitempty"         json:"fill,omitempty"`
	Stroke       string   `mapstructure:"stroke"       yaml:"stroke,omitempty"       json:"stroke,omitempty"`
	Opacity      *float64 `mapstructure:"opacity"      yaml:"opacity,omitempty"      json:"opacity,omitempty"`
	CornerRadius *float64 `mapstructure:"cornerRadius" yaml:"cornerRadius,omitempty" json:"cornerRadius,omitempty"`
}

// Unit is a single-view spec: one mark plus its encoding.
type Unit struct {
	BaseSpec   `mapstructure:",squash" yaml:",inline" json:",inline"`
	Mark       MarkDef                  `mapstructure:"mark"       yaml:"mark"                 json:"mark"`
	Encoding   Encoding                 `mapstructure:"encoding"   yaml:"encoding,omitempty"   json:"encoding,omitempty"`
	Projection *Projection              `mapstructure:"projection" yaml:"projection,omitempty" json:"projection,omitempty"`
	Selection  map[string]*SelectionDef `mapstructure:"selection"  yaml:"selection,omitempty"  json:"selection,omitempty"`
	Width      *float64                 `mapstructure:"width"      yaml:"width,omitempty"      json:"width,omitempty"`
	Height     *float64                 `mapstructure:"height"     yaml:"height,omitempty"     json:"height,omitempty"`
	View       *ViewBackground          `mapstructure:"view"       yaml:"view,omitempty"       json:"view,omitempty"`
	// Columns is only meaningful on a unit whose encoding embeds a flat
	// facet channel; promotion moves it onto the facet node.
	Columns *int `mapstructure:"columns" yaml:"columns,omitempty" json:"columns,omitempty"`
}

func (u *Unit) Kind() Kind      { return KindUnit }
func (u *Unit) Base() *BaseSpec { return &u.BaseSpec }

// Layer stacks child specs in the same coordinate space. Its encoding and
// projection are inherited by the children during normalization.
type Layer struct {
	BaseSpec   `mapstructure:",squash" yaml:",inline" json:",inline"`
	Layer      []Node          `mapstructure:"-" yaml:"layer"                json:"layer"`
	Encoding   Encoding        `mapstructure:"encoding"   yaml:"encoding,omitempty"   json:"encoding,omitempty"`
	Projection *Projection     `mapstructure:"projection" yaml:"projection,omitempty" json:"projection,omitempty"`
	Width      *float64        `mapstructure:"width"      yaml:"width,omitempty"      json:"width,omitempty"`
	Height     *float64        `mapstructure:"height"     yaml:"height,omitempty"     json:"height,omitempty"`
	View       *ViewBackground `mapstructure:"view"       yaml:"view,omitempty"       json:"view,omitempty"`
}

func (l *Layer) Kind() Kind      { return KindLayer }
func (l *Layer) Base() *BaseSpec { return &l.BaseSpec }

// Facet repeats its inner spec once per distinct value of a field, arranged
// in a grid. In canonical trees every facet is an explicit Facet node; the
// facet channels never survive inside a unit encoding.
type Facet struct {
	BaseSpec `mapstructure:",squash" yaml:",inline" json:",inline"`
	Facet    FacetDef    `mapstructure:"-" yaml:"facet"             json:"facet"`
	Spec     Node        `mapstructure:"-" yaml:"spec"              json:"spec"`
	Columns  *int        `mapstructure:"columns" yaml:"columns,omitempty" json:"columns,omitempty"`
	Layout   FacetLayout `mapstructure:"-" yaml:"-"                 json:"-"`
}

func (f *Facet) Kind() Kind      { return KindFacet }
func (f *Facet) Base() *BaseSpec { return &f.BaseSpec }

// RepeatDef declares the value sequences a repeat template expands over:
// either a flat sequence, or row/column sequences.
type RepeatDef struct {
	Flat   []string `yaml:"repeat,omitempty" json:"repeat,omitempty"`
	Row    []string `yaml:"row,omitempty"    json:"row,omitempty"`
	Column []string `yaml:"column,omitempty" json:"column,omitempty"`
}

// IsFlat reports whether the flat (single-sequence) form is in use.
func (r *RepeatDef) IsFlat() bool {
	return len(r.Flat) > 0
}

// Repeat expands its inner template once per element of the declared value
// sequences. It never survives normalization.
type Repeat struct {
	BaseSpec `mapstructure:",squash" yaml:",inline" json:",inline"`
	Repeat   RepeatDef `mapstructure:"-" yaml:"-"                  json:"-"`
	Spec     Node      `mapstructure:"-" yaml:"spec"               json:"spec"`
	Columns  *int      `mapstructure:"columns" yaml:"columns,omitempty" json:"columns,omitempty"`
}

func (r *Repeat) Kind() Kind      { return KindRepeat }
func (r *Repeat) Base() *BaseSpec { return &r.BaseSpec }

// Concat is generic wrappable concatenation with an optional column count.
type Concat struct {
	BaseSpec `mapstructure:",squash" yaml:",inline" json:",inline"`
	Concat   []Node `mapstructure:"-" yaml:"concat"             json:"concat"`
	Columns  *int   `mapstructure:"columns" yaml:"columns,omitempty" json:"columns,omitempty"`
}

func (c *Concat) Kind() Kind      { return KindConcat }
func (c *Concat) Base() *BaseSpec { return &c.BaseSpec }

// HConcat places children side by side.
type HConcat struct {
	BaseSpec `mapstructure:",squash" yaml:",inline" json:",inline"`
	HConcat  []Node `mapstructure:"-" yaml:"hconcat" json:"hconcat"`
}

func (h *HConcat) Kind() Kind      { return KindHConcat }
func (h *HConcat) Base() *BaseSpec { return &h.BaseSpec }

// VConcat stacks children vertically.
type VConcat struct {
	BaseSpec `mapstructure:",squash" yaml:",inline" json:",inline"`
	VConcat  []Node `mapstructure:"-" yaml:"vconcat" json:"vconcat"`
}

func (v *VConcat) Kind() Kind      { return KindVConcat }
func (v *VConcat) Base() *BaseSpec { return &v.BaseSpec }

// Children returns the ordered child nodes of a composition node, or nil for
// leaf variants.
func Children(n Node) []Node {
	switch s := n.(type) {
	case *Layer:
		return s.Layer
	case *Facet:
		return []Node{s.Spec}
	case *Repeat:
		return []Node{s.Spec}
	case *Concat:
		return s.Concat
	case *HConcat:
		return s.HConcat
	case *VConcat:
		return s.VConcat
	default:
		return nil
	}
}
