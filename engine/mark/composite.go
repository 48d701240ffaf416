package mark

import (
	"github.com/vizforge/vizforge/engine/spec"
)

// continuousAxis picks the axis a composite mark summarizes: y when it maps
// a quantitative field, x otherwise.
func continuousAxis(u *spec.Unit) (spec.Channel, *spec.FieldDef) {
	if fd, ok := u.Encoding[spec.ChannelY]; ok && fd != nil && fd.Type == "quantitative" {
		return spec.ChannelY, fd
	}
	if fd, ok := u.Encoding[spec.ChannelX]; ok && fd != nil && fd.Type == "quantitative" {
		return spec.ChannelX, fd
	}
	if fd, ok := u.Encoding[spec.ChannelY]; ok && fd != nil {
		return spec.ChannelY, fd
	}
	return spec.ChannelX, u.Encoding[spec.ChannelX]
}

// secondaryChannel returns the ranged partner of a positional channel.
func secondaryChannel(c spec.Channel) spec.Channel {
	if c == spec.ChannelY {
		return spec.ChannelY2
	}
	return spec.ChannelX2
}

// extentBounds maps an extent mode to its lower/upper aggregates.
func extentBounds(extent string) (string, string) {
	switch extent {
	case "min-max":
		return "min", "max"
	case "iqr":
		return "q1", "q3"
	default:
		return "ci0", "ci1"
	}
}

// aggregated builds a field definition that aggregates the given continuous
// field definition.
func aggregated(fd *spec.FieldDef, aggregate string) *spec.FieldDef {
	out := *fd
	out.Aggregate = aggregate
	return &out
}

// groupingEncoding copies every channel except the continuous axis and its
// ranged partner, so each expansion layer keeps the unit's grouping intact.
func groupingEncoding(u *spec.Unit, axis spec.Channel) spec.Encoding {
	out := make(spec.Encoding, len(u.Encoding))
	for c, fd := range u.Encoding {
		if c == axis || c == secondaryChannel(axis) {
			continue
		}
		out[c] = fd
	}
	return out
}

// compositeLayer wraps expansion children in a layer carrying the original
// unit's shared properties.
func compositeLayer(u *spec.Unit, children []spec.Node) *spec.Layer {
	return &spec.Layer{
		BaseSpec: u.BaseSpec,
		Layer:    children,
		Width:    u.Width,
		Height:   u.Height,
		View:     u.View,
	}
}

// expansionUnit builds one primitive child of a composite expansion.
func expansionUnit(markType spec.MarkType, style string, encoding spec.Encoding) *spec.Unit {
	return &spec.Unit{
		Mark:     spec.MarkDef{Type: markType, Style: style},
		Encoding: encoding,
	}
}
