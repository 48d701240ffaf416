package spec

import (
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"github.com/goccy/go-yaml"
)

// Decode parses a YAML or JSON document into a typed spec tree.
func Decode(doc []byte) (Node, error) {
	var m map[string]any
	if err := yaml.Unmarshal(doc, &m); err != nil {
		return nil, fmt.Errorf("failed to parse spec document: %w", err)
	}
	return FromMap(m)
}

// FromMap builds a typed spec tree from a raw document map.
func FromMap(m map[string]any) (Node, error) {
	kind, err := ClassifyMap(m)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindUnit:
		return unitFromMap(m)
	case KindLayer:
		return layerFromMap(m)
	case KindFacet:
		return facetFromMap(m)
	case KindRepeat:
		return repeatFromMap(m)
	case KindConcat, KindHConcat, KindVConcat:
		return concatFromMap(m, kind)
	default:
		return nil, NewConfigurationError("unhandled spec variant %q", kind)
	}
}

func unitFromMap(m map[string]any) (*Unit, error) {
	var u Unit
	if err := decodeInto(m, &u); err != nil {
		return nil, fmt.Errorf("failed to decode unit spec: %w", err)
	}
	return &u, nil
}

func layerFromMap(m map[string]any) (*Layer, error) {
	var l Layer
	if err := decodeInto(m, &l); err != nil {
		return nil, fmt.Errorf("failed to decode layer spec: %w", err)
	}
	children, err := childListFromMap(m, "layer")
	if err != nil {
		return nil, err
	}
	l.Layer = children
	return &l, nil
}

func facetFromMap(m map[string]any) (*Facet, error) {
	var f Facet
	if err := decodeInto(m, &f); err != nil {
		return nil, fmt.Errorf("failed to decode facet spec: %w", err)
	}
	def, err := facetDefFromValue(m["facet"])
	if err != nil {
		return nil, err
	}
	f.Facet = *def
	child, err := childFromMap(m, "spec")
	if err != nil {
		return nil, err
	}
	f.Spec = child
	return &f, nil
}

func repeatFromMap(m map[string]any) (*Repeat, error) {
	var r Repeat
	if err := decodeInto(m, &r); err != nil {
		return nil, fmt.Errorf("failed to decode repeat spec: %w", err)
	}
	def, err := repeatDefFromValue(m["repeat"])
	if err != nil {
		return nil, err
	}
	r.Repeat = *def
	child, err := childFromMap(m, "spec")
	if err != nil {
		return nil, err
	}
	r.Spec = child
	return &r, nil
}

func concatFromMap(m map[string]any, kind Kind) (Node, error) {
	switch kind {
	case KindConcat:
		var c Concat
		if err := decodeInto(m, &c); err != nil {
			return nil, fmt.Errorf("failed to decode concat spec: %w", err)
		}
		children, err := childListFromMap(m, "concat")
		if err != nil {
			return nil, err
		}
		c.Concat = children
		return &c, nil
	case KindHConcat:
		var h HConcat
		if err := decodeInto(m, &h); err != nil {
			return nil, fmt.Errorf("failed to decode hconcat spec: %w", err)
		}
		children, err := childListFromMap(m, "hconcat")
		if err != nil {
			return nil, err
		}
		h.HConcat = children
		return &h, nil
	default:
		var v VConcat
		if err := decodeInto(m, &v); err != nil {
			return nil, fmt.Errorf("failed to decode vconcat spec: %w", err)
		}
		children, err := childListFromMap(m, "vconcat")
		if err != nil {
			return nil, err
		}
		v.VConcat = children
		return &v, nil
	}
}

func childFromMap(m map[string]any, key string) (Node, error) {
	raw, ok := m[key]
	if !ok {
		return nil, NewConfigurationError("missing %q in %s spec", key, key)
	}
	childMap, ok := raw.(map[string]any)
	if !ok {
		return nil, NewConfigurationError("%q must be a spec object, got %T", key, raw)
	}
	return FromMap(childMap)
}

func childListFromMap(m map[string]any, key string) ([]Node, error) {
	raw, ok := m[key].([]any)
	if !ok {
		return nil, NewConfigurationError("%q must be a list of spec objects", key)
	}
	children := make([]Node, 0, len(raw))
	for i, item := range raw {
		childMap, ok := item.(map[string]any)
		if !ok {
			return nil, NewConfigurationError("%s[%d] must be a spec object, got %T", key, i, item)
		}
		child, err := FromMap(childMap)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", key, i, err)
		}
		children = append(children, child)
	}
	return children, nil
}

func facetDefFromValue(raw any) (*FacetDef, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, NewConfigurationError("facet definition must be an object, got %T", raw)
	}
	_, hasRow := m["row"]
	_, hasColumn := m["column"]
	if hasRow || hasColumn {
		var def FacetDef
		if hasRow {
			fd, err := fieldDefFromValue(m["row"])
			if err != nil {
				return nil, fmt.Errorf("facet row: %w", err)
			}
			def.Row = fd
		}
		if hasColumn {
			fd, err := fieldDefFromValue(m["column"])
			if err != nil {
				return nil, fmt.Errorf("facet column: %w", err)
			}
			def.Column = fd
		}
		return &def, nil
	}
	fd, err := fieldDefFromValue(m)
	if err != nil {
		return nil, fmt.Errorf("facet field: %w", err)
	}
	return &FacetDef{Field: fd}, nil
}

func fieldDefFromValue(raw any) (*FieldDef, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, NewConfigurationError("field definition must be an object, got %T", raw)
	}
	var fd FieldDef
	if err := decodeInto(m, &fd); err != nil {
		return nil, fmt.Errorf("failed to decode field definition: %w", err)
	}
	return &fd, nil
}

func repeatDefFromValue(raw any) (*RepeatDef, error) {
	switch v := raw.(type) {
	case []any:
		flat := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, NewConfigurationError("repeat values must be field names, got %T", item)
			}
			flat = append(flat, s)
		}
		return &RepeatDef{Flat: flat}, nil
	case map[string]any:
		var def RepeatDef
		if err := decodeInto(v, &def); err != nil {
			return nil, fmt.Errorf("failed to decode repeat definition: %w", err)
		}
		return &def, nil
	default:
		return nil, NewConfigurationError("repeat definition must be a list or a row/column object, got %T", raw)
	}
}

func decodeInto(data map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			markDefHook(),
			fieldRefHook(),
		),
	})
	if err != nil {
		return err
	}
	return decoder.Decode(data)
}

// markDefHook lets a bare mark name stand in for a full mark definition.
func markDefHook() mapstructure.DecodeHookFuncType {
	markType := reflect.TypeOf(MarkDef{})
	return func(_ reflect.Type, to reflect.Type, data any) (any, error) {
		if to != markType {
			return data, nil
		}
		if s, ok := data.(string); ok {
			return map[string]any{"type": s}, nil
		}
		return data, nil
	}
}

// fieldRefHook decodes a field as either a literal name or a repeater
// reference object.
func fieldRefHook() mapstructure.DecodeHookFuncType {
	refType := reflect.TypeOf(FieldRef{})
	return func(_ reflect.Type, to reflect.Type, data any) (any, error) {
		if to != refType {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			return FieldRef{Name: v}, nil
		case map[string]any:
			rep, ok := v["repeat"].(string)
			if !ok {
				return nil, NewConfigurationError("field reference object must carry a repeat key")
			}
			switch RepeaterKind(rep) {
			case RepeaterFlat, RepeaterRow, RepeaterColumn:
				return FieldRef{Repeat: RepeaterKind(rep)}, nil
			default:
				return nil, NewConfigurationError("unknown repeat dimension %q", rep)
			}
		default:
			return data, nil
		}
	}
}
