package spec

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks structural constraints the decoder cannot express: every
// unit needs a mark, every composition needs at least one child, and a facet
// definition must populate exactly one form.
func Validate(n Node) error {
	if n == nil {
		return NewConfigurationError("nil spec node")
	}
	switch s := n.(type) {
	case *Unit:
		if err := validate.Struct(s); err != nil {
			return fmt.Errorf("unit spec: %w", err)
		}
		return nil
	case *Layer:
		if len(s.Layer) == 0 {
			return NewConfigurationError("layer spec must have at least one child")
		}
		return validateChildren(s.Layer, "layer")
	case *Facet:
		if s.Facet.Field == nil && s.Facet.Row == nil && s.Facet.Column == nil {
			return NewConfigurationError("facet definition must declare a field or a row/column mapping")
		}
		if s.Facet.Field != nil && (s.Facet.Row != nil || s.Facet.Column != nil) {
			return NewConfigurationError("facet definition cannot mix field and row/column forms")
		}
		return Validate(s.Spec)
	case *Repeat:
		if len(s.Repeat.Flat) == 0 && len(s.Repeat.Row) == 0 && len(s.Repeat.Column) == 0 {
			return NewConfigurationError("repeat definition must declare at least one value sequence")
		}
		if len(s.Repeat.Flat) > 0 && (len(s.Repeat.Row) > 0 || len(s.Repeat.Column) > 0) {
			return NewConfigurationError("repeat definition cannot mix flat and row/column forms")
		}
		return Validate(s.Spec)
	case *Concat:
		if len(s.Concat) == 0 {
			return NewConfigurationError("concat spec must have at least one child")
		}
		return validateChildren(s.Concat, "concat")
	case *HConcat:
		if len(s.HConcat) == 0 {
			return NewConfigurationError("hconcat spec must have at least one child")
		}
		return validateChildren(s.HConcat, "hconcat")
	case *VConcat:
		if len(s.VConcat) == 0 {
			return NewConfigurationError("vconcat spec must have at least one child")
		}
		return validateChildren(s.VConcat, "vconcat")
	default:
		return NewConfigurationError("unrecognized spec variant %T", n)
	}
}

func validateChildren(children []Node, key string) error {
	for i, child := range children {
		if err := Validate(child); err != nil {
			return fmt.Errorf("%s[%d]: %w", key, i, err)
		}
	}
	return nil
}
