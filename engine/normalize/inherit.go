package normalize

import (
	"sort"
	"strings"

	"github.com/vizforge/vizforge/engine/spec"
	"github.com/vizforge/vizforge/pkg/diag"
)

// mergeEncoding overlays the child's encoding on the parent's. Every child
// key that shadows a parent key is collected and reported in a single
// warning. An empty result becomes nil so downstream consumers can tell "no
// encoding" apart from "empty encoding".
func mergeEncoding(parent, child spec.Encoding, d *diag.Collector) spec.Encoding {
	if parent == nil && child == nil {
		return nil
	}
	merged := make(spec.Encoding, len(parent)+len(child))
	for c, fd := range parent {
		merged[c] = fd
	}
	var overridden []string
	for c, fd := range child {
		if _, ok := parent[c]; ok {
			overridden = append(overridden, string(c))
		}
		merged[c] = fd
	}
	if len(overridden) > 0 {
		sort.Strings(overridden)
		d.Warn(diag.KindEncodingOverridden,
			"encoding channels "+strings.Join(overridden, ", ")+" are overridden by the child spec",
			"channels", overridden)
	}
	if len(merged) == 0 {
		return nil
	}
	return merged
}

// mergeProjection is all-or-nothing: when both parent and child declare a
// projection, the child's replaces the parent's entirely and one warning
// names both.
func mergeProjection(parent, child *spec.Projection, d *diag.Collector) *spec.Projection {
	if parent != nil && child != nil {
		d.Warn(diag.KindProjectionOverriden,
			"child projection replaces the inherited parent projection",
			"parent", parent.Type, "child", child.Type)
		return child
	}
	if child != nil {
		return child
	}
	return parent
}
