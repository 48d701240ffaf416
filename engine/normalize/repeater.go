package normalize

import (
	"github.com/vizforge/vizforge/engine/spec"
	"github.com/vizforge/vizforge/pkg/diag"
)

// replaceRepeaterInEncoding resolves repeater field references against the
// active binding. A channel whose reference points at an unbound dimension
// is dropped with a warning.
func replaceRepeaterInEncoding(e spec.Encoding, r *spec.RepeaterValue, d *diag.Collector) spec.Encoding {
	if e == nil {
		return nil
	}
	out := make(spec.Encoding, len(e))
	for c, fd := range e {
		resolved, ok := replaceRepeaterInFieldDef(fd, r, d)
		if !ok {
			continue
		}
		out[c] = resolved
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// replaceRepeaterInFieldDef resolves a single field definition. It reports
// false when the definition references an unbound repeat dimension.
func replaceRepeaterInFieldDef(fd *spec.FieldDef, r *spec.RepeaterValue, d *diag.Collector) (*spec.FieldDef, bool) {
	if fd == nil || !fd.Field.IsRepeat() {
		return fd, true
	}
	value, ok := r.Resolve(fd.Field.Repeat)
	if !ok {
		d.Warn(diag.KindRepeatUnbound,
			"dropped a field reference to an unbound repeat dimension",
			"dimension", string(fd.Field.Repeat))
		return nil, false
	}
	out := *fd
	out.Field = spec.FieldRef{Name: value}
	return &out, true
}
