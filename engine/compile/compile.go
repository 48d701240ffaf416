package compile

import (
	"github.com/vizforge/vizforge/engine/config"
	"github.com/vizforge/vizforge/engine/normalize"
	"github.com/vizforge/vizforge/engine/render"
	"github.com/vizforge/vizforge/engine/spec"
	"github.com/vizforge/vizforge/pkg/diag"
)

// Compile runs the full two-stage pipeline: normalize the spec tree, build
// the model tree, drive the parse phases in order across it, then assemble
// the output fragment. The collector holding every corrective warning is
// returned alongside the result.
func Compile(node spec.Node, cfg *config.Config) (*render.Spec, *diag.Collector, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	d := diag.NewCollector(nil)

	canonical, err := normalize.Normalize(node, cfg, d)
	if err != nil {
		return nil, d, err
	}

	root, err := Build(canonical, nil, "root", cfg, d)
	if err != nil {
		return nil, d, err
	}

	// Every parse phase completes across the whole tree before any assemble
	// step begins.
	if err := root.ParseData(); err != nil {
		return nil, d, err
	}
	if err := root.ParseSelections(); err != nil {
		return nil, d, err
	}
	if err := root.ParseMarkGroup(); err != nil {
		return nil, d, err
	}
	if err := root.ParseAxesAndHeaders(); err != nil {
		return nil, d, err
	}
	if err := root.ParseLayoutSize(); err != nil {
		return nil, d, err
	}

	out := &render.Spec{}
	out.Signals = root.AssembleSignals()
	out.Signals = append(out.Signals, root.AssembleLayoutSignals()...)
	out.Signals = root.AssembleSelectionTopLevelSignals(out.Signals)
	if rootData := root.Component().Data; rootData != nil {
		out.Data = append(out.Data, *rootData)
	}
	out.Data = root.AssembleSelectionData(out.Data)
	out.Marks = root.AssembleMarks()
	out.Layout = root.AssembleLayout()
	return out, d, nil
}
