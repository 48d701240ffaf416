package spec

// Channel names a visual role a field can be mapped to.
type Channel string

const (
	ChannelX       Channel = "x"
	ChannelY       Channel = "y"
	ChannelX2      Channel = "x2"
	ChannelY2      Channel = "y2"
	ChannelColor   Channel = "color"
	ChannelOpacity Channel = "opacity"
	ChannelSize    Channel = "size"
	ChannelShape   Channel = "shape"
	ChannelDetail  Channel = "detail"
	ChannelOrder   Channel = "order"
	ChannelText    Channel = "text"
	ChannelTooltip Channel = "tooltip"
	ChannelRow     Channel = "row"
	ChannelColumn  Channel = "column"
	ChannelFacet   Channel = "facet"
)

// FacetChannels lists the channels that trigger facet promotion, in the
// precedence order row, column, facet.
var FacetChannels = []Channel{ChannelRow, ChannelColumn, ChannelFacet}

// IsFacet reports whether the channel is one of row, column, facet.
func (c Channel) IsFacet() bool {
	return c == ChannelRow || c == ChannelColumn || c == ChannelFacet
}

// RepeaterKind names which repeat dimension a field reference points at.
type RepeaterKind string

const (
	RepeaterFlat   RepeaterKind = "repeat"
	RepeaterRow    RepeaterKind = "row"
	RepeaterColumn RepeaterKind = "column"
)

// FieldRef is either a literal field name or a reference to the active
// repeater binding ({"repeat": "row"} in the input document).
type FieldRef struct {
	Name   string       `yaml:"name,omitempty"   json:"name,omitempty"`
	Repeat RepeaterKind `yaml:"repeat,omitempty" json:"repeat,omitempty"`
}

// IsRepeat reports whether the reference must be resolved against a repeater
// binding before compilation.
func (f FieldRef) IsRepeat() bool {
	return f.Repeat != ""
}

// IsZero reports whether no field is referenced at all.
func (f FieldRef) IsZero() bool {
	return f.Name == "" && f.Repeat == ""
}

// RepeaterValue is the active repeat binding threaded through normalization.
// A nil member means that dimension is unbound.
type RepeaterValue struct {
	Repeat *string
	Row    *string
	Column *string
}

// Resolve returns the bound value for the referenced dimension, or false
// when the dimension is unbound.
func (r *RepeaterValue) Resolve(kind RepeaterKind) (string, bool) {
	if r == nil {
		return "", false
	}
	var v *string
	switch kind {
	case RepeaterFlat:
		v = r.Repeat
	case RepeaterRow:
		v = r.Row
	case RepeaterColumn:
		v = r.Column
	}
	if v == nil {
		return "", false
	}
	return *v, true
}

// FieldDef defines how one channel maps to data. The layout sub-properties
// (Align, Center, Spacing, Columns) are meaningful only on facet channels and
// are stripped into the facet layout during normalization.
type FieldDef struct {
	Field     FieldRef       `mapstructure:"field"     yaml:"field,omitempty"     json:"field,omitempty"`
	Type      string         `mapstructure:"type"      yaml:"type,omitempty"      json:"type,omitempty"`
	Aggregate string         `mapstructure:"aggregate" yaml:"aggregate,omitempty" json:"aggregate,omitempty"`
	Bin       *bool          `mapstructure:"bin"       yaml:"bin,omitempty"       json:"bin,omitempty"`
	TimeUnit  string         `mapstructure:"timeUnit"  yaml:"timeUnit,omitempty"  json:"timeUnit,omitempty"`
	Value     any            `mapstructure:"value"     yaml:"value,omitempty"     json:"value,omitempty"`
	Scale     map[string]any `mapstructure:"scale"     yaml:"scale,omitempty"     json:"scale,omitempty"`
	Sort      string         `mapstructure:"sort"      yaml:"sort,omitempty"      json:"sort,omitempty"`
	Axis      map[string]any `mapstructure:"axis"      yaml:"axis,omitempty"      json:"axis,omitempty"`
	Header    map[string]any `mapstructure:"header"    yaml:"header,omitempty"    json:"header,omitempty"`

	Align   string   `mapstructure:"align"   yaml:"align,omitempty"   json:"align,omitempty"`
	Center  *bool    `mapstructure:"center"  yaml:"center,omitempty"  json:"center,omitempty"`
	Spacing *float64 `mapstructure:"spacing" yaml:"spacing,omitempty" json:"spacing,omitempty"`
	Columns *int     `mapstructure:"columns" yaml:"columns,omitempty" json:"columns,omitempty"`
}

// HasLayoutProps reports whether any facet layout sub-property is set.
func (fd *FieldDef) HasLayoutProps() bool {
	return fd.Align != "" || fd.Center != nil || fd.Spacing != nil || fd.Columns != nil
}

// StripLayoutProps returns a copy of the definition with the layout
// sub-properties cleared, leaving only the field-definition portion.
func (fd *FieldDef) StripLayoutProps() *FieldDef {
	out := *fd
	out.Align = ""
	out.Center = nil
	out.Spacing = nil
	out.Columns = nil
	return &out
}

// Encoding maps channels to field definitions for a single unit.
type Encoding map[Channel]*FieldDef

// HasFacetChannels reports whether the encoding embeds row, column or facet.
func (e Encoding) HasFacetChannels() bool {
	for _, c := range FacetChannels {
		if _, ok := e[c]; ok {
			return true
		}
	}
	return false
}

// Clone returns a shallow-key, deep-value copy of the encoding.
func (e Encoding) Clone() Encoding {
	if e == nil {
		return nil
	}
	out := make(Encoding, len(e))
	for c, fd := range e {
		if fd != nil {
			cp := *fd
			out[c] = &cp
		} else {
			out[c] = nil
		}
	}
	return out
}

// WithoutFacetChannels returns a copy of the encoding with the facet
// channels removed. The result is nil when nothing remains, so downstream
// consumers can distinguish "no encoding" from "empty encoding".
func (e Encoding) WithoutFacetChannels() Encoding {
	out := make(Encoding, len(e))
	for c, fd := range e {
		if c.IsFacet() {
			continue
		}
		out[c] = fd
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
