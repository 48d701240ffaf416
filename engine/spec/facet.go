package spec

// FacetDef is either a single field definition (flat form) or a mapping
// keyed by row/column. Exactly one form is populated.
type FacetDef struct {
	Field  *FieldDef `yaml:"-"                json:"-"`
	Row    *FieldDef `yaml:"row,omitempty"    json:"row,omitempty"`
	Column *FieldDef `yaml:"column,omitempty" json:"column,omitempty"`
}

// IsMapping reports whether the row/column form is in use.
func (fd *FacetDef) IsMapping() bool {
	return fd.Field == nil
}

// RowColValue holds a layout value either flat (single-dimension facet) or
// keyed per axis (row/column facet).
type RowColValue[T any] struct {
	Flat   *T `yaml:"-"                json:"-"`
	Row    *T `yaml:"row,omitempty"    json:"row,omitempty"`
	Column *T `yaml:"column,omitempty" json:"column,omitempty"`
}

// SetAxis stores a value under the given facet channel: row/column values go
// into their axis slot, a flat facet value into the flat slot.
func (rc *RowColValue[T]) SetAxis(channel Channel, v T) {
	switch channel {
	case ChannelRow:
		rc.Row = &v
	case ChannelColumn:
		rc.Column = &v
	default:
		rc.Flat = &v
	}
}

// IsZero reports whether no value is set in any slot.
func (rc *RowColValue[T]) IsZero() bool {
	return rc == nil || (rc.Flat == nil && rc.Row == nil && rc.Column == nil)
}

// FacetLayout records the alignment, centering and spacing stripped off the
// facet channel definitions during promotion.
type FacetLayout struct {
	Align   *RowColValue[string]  `yaml:"align,omitempty"   json:"align,omitempty"`
	Center  *RowColValue[bool]    `yaml:"center,omitempty"  json:"center,omitempty"`
	Spacing *RowColValue[float64] `yaml:"spacing,omitempty" json:"spacing,omitempty"`
}

// IsZero reports whether no layout property was recorded.
func (fl *FacetLayout) IsZero() bool {
	return fl == nil || (fl.Align.IsZero() && fl.Center.IsZero() && fl.Spacing.IsZero())
}
