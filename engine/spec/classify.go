package spec

// Classification of raw documents and typed nodes. A document's variant is
// decided by which discriminating key it carries; a unit is the fallback for
// anything with a mark. The order matters only for documents that carry more
// than one discriminator, which is rejected as ambiguous.

var discriminators = []struct {
	key  string
	kind Kind
}{
	{"layer", KindLayer},
	{"facet", KindFacet},
	{"repeat", KindRepeat},
	{"concat", KindConcat},
	{"hconcat", KindHConcat},
	{"vconcat", KindVConcat},
}

// ClassifyMap reports the variant of a raw document.
func ClassifyMap(m map[string]any) (Kind, error) {
	var found []Kind
	for _, d := range discriminators {
		if _, ok := m[d.key]; ok {
			found = append(found, d.kind)
		}
	}
	switch len(found) {
	case 0:
		if _, ok := m["mark"]; ok {
			return KindUnit, nil
		}
		return "", NewConfigurationError("unrecognized spec shape: no mark, layer, facet, repeat or concat key")
	case 1:
		return found[0], nil
	default:
		return "", NewConfigurationError("ambiguous spec shape: found both %q and %q", found[0], found[1])
	}
}

// IsUnit reports whether the node is a single-view spec.
func IsUnit(n Node) bool { return n.Kind() == KindUnit }

// IsLayer reports whether the node layers child specs.
func IsLayer(n Node) bool { return n.Kind() == KindLayer }

// IsFacet reports whether the node is an explicit facet composition.
func IsFacet(n Node) bool { return n.Kind() == KindFacet }

// IsRepeat reports whether the node is a repeat template.
func IsRepeat(n Node) bool { return n.Kind() == KindRepeat }

// IsAnyConcat reports whether the node belongs to the concat family.
func IsAnyConcat(n Node) bool {
	k := n.Kind()
	return k == KindConcat || k == KindHConcat || k == KindVConcat
}

// IsFacetedUnit reports whether the node is a unit whose encoding embeds a
// facet channel. Such units are routed to facet promotion rather than the
// plain unit path.
func IsFacetedUnit(n Node) bool {
	u, ok := n.(*Unit)
	return ok && u.Encoding.HasFacetChannels()
}
