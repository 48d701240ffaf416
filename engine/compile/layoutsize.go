package compile

import "github.com/vizforge/vizforge/engine/spec"

// concatLayoutSize computes the size signals for a concatenation from its
// children's already-parsed sizes and the effective column count. Children
// flow row-major: widths add up within a row, heights add up across rows.
func concatLayoutSize(m *ConcatModel) map[string]float64 {
	columns := len(m.children)
	switch {
	case m.columns != nil && *m.columns > 0:
		columns = *m.columns
	case m.kind == spec.KindVConcat:
		columns = 1
	}
	if columns <= 0 {
		columns = 1
	}

	spacing := m.config.Concat.Spacing
	var width, height float64
	var rowWidth, rowHeight float64
	inRow := 0
	flushRow := func() {
		if inRow == 0 {
			return
		}
		if rowWidth > width {
			width = rowWidth
		}
		if height > 0 {
			height += spacing
		}
		height += rowHeight
		rowWidth, rowHeight, inRow = 0, 0, 0
	}
	for _, child := range m.children {
		size := child.Component().LayoutSize
		if inRow > 0 {
			rowWidth += spacing
		}
		rowWidth += size["width"]
		if size["height"] > rowHeight {
			rowHeight = size["height"]
		}
		inRow++
		if inRow == columns {
			flushRow()
		}
	}
	flushRow()

	return map[string]float64{
		"width":  width,
		"height": height,
	}
}
