package normalize

import (
	"strings"

	"github.com/vizforge/vizforge/engine/spec"
)

// normalizeRepeat expands a repeat template into a generic concatenation:
// one child per element of the repeat x row x column cross product, each
// normalized under a fresh repeater binding. Enumeration order is repeat
// outermost, then row, then column.
func (n *Normalizer) normalizeRepeat(r *spec.Repeat, ctx *Context) (spec.Node, error) {
	repeatValues := valuesOrBinding(r.Repeat.Flat, repeaterMember(ctx.Repeater, spec.RepeaterFlat))
	rowValues := valuesOrBinding(r.Repeat.Row, repeaterMember(ctx.Repeater, spec.RepeaterRow))
	columnValues := valuesOrBinding(r.Repeat.Column, repeaterMember(ctx.Repeater, spec.RepeaterColumn))

	// The template's own data wins over the wrapper's; either way each child
	// is stripped so the rows are described exactly once. The hoist source is
	// read off the normalized child, so data an inner expansion already
	// hoisted (a nested repeat) is carried instead of destroyed.
	var hoisted *spec.Data

	var children []spec.Node
	for _, repeatValue := range repeatValues {
		for _, rowValue := range rowValues {
			for _, columnValue := range columnValues {
				binding := &spec.RepeaterValue{
					Repeat: repeatValue,
					Row:    rowValue,
					Column: columnValue,
				}
				template, err := spec.CloneNode(r.Spec)
				if err != nil {
					return nil, err
				}
				child, err := n.Normalize(template, ctx.withRepeater(binding))
				if err != nil {
					return nil, err
				}
				base := child.Base()
				if hoisted == nil {
					hoisted = base.Data
				}
				base.Data = nil
				base.Name = joinChildName(repeatChildName(repeatValue, rowValue, columnValue), base.Name)
				children = append(children, child)
			}
		}
	}

	out := &spec.Concat{
		BaseSpec: r.BaseSpec,
		Concat:   children,
	}
	if hoisted == nil {
		hoisted = r.Data
	}
	out.Data = hoisted
	if r.Repeat.IsFlat() {
		out.Columns = r.Columns
	} else {
		columns := len(r.Repeat.Column)
		if columns == 0 {
			columns = 1
		}
		out.Columns = &columns
	}
	return out, nil
}

// valuesOrBinding returns the declared sequence, or a single-element
// sequence holding the inherited binding (possibly a null placeholder).
func valuesOrBinding(declared []string, inherited *string) []*string {
	if len(declared) > 0 {
		out := make([]*string, len(declared))
		for i := range declared {
			v := declared[i]
			out[i] = &v
		}
		return out
	}
	return []*string{inherited}
}

func repeaterMember(r *spec.RepeaterValue, kind spec.RepeaterKind) *string {
	if r == nil {
		return nil
	}
	switch kind {
	case spec.RepeaterFlat:
		return r.Repeat
	case spec.RepeaterRow:
		return r.Row
	default:
		return r.Column
	}
}

// repeatChildName builds the deterministic child name from the branch
// values: a repeat token, then a row token, then a column token, each
// present only when its value is non-null.
func repeatChildName(repeatValue, rowValue, columnValue *string) string {
	var b strings.Builder
	if repeatValue != nil {
		b.WriteString("__repeat_")
		b.WriteString(varName(*repeatValue))
	}
	if rowValue != nil {
		b.WriteString("__row_")
		b.WriteString(varName(*rowValue))
	}
	if columnValue != nil {
		b.WriteString("__column_")
		b.WriteString(varName(*columnValue))
	}
	return b.String()
}

func joinChildName(token, existing string) string {
	if token == "" {
		return existing
	}
	if existing == "" {
		return token
	}
	return token + "_" + existing
}

// varName sanitizes a value into an identifier-safe form.
func varName(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := b.String()
	if out != "" && out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	return out
}
