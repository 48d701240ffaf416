// Package compile turns a canonical spec tree into a tree of stateful model
// nodes and drives a fixed sequence of parse phases followed by an assemble
// pass over it. One model wraps exactly one canonical node; children are
// built depth-first, left-to-right, and every later phase iterates them in
// that same order.
package compile

import (
	"fmt"

	"github.com/vizforge/vizforge/engine/config"
	"github.com/vizforge/vizforge/engine/render"
	"github.com/vizforge/vizforge/engine/spec"
	"github.com/vizforge/vizforge/pkg/diag"
)

// Model is the compiled counterpart of one canonical spec node.
type Model interface {
	Name() string
	Spec() spec.Node
	Children() []Model
	Component() *Component

	ParseData() error
	ParseSelections() error
	ParseMarkGroup() error
	ParseAxesAndHeaders() error
	ParseLayoutSize() error

	AssembleSignals() []render.Signal
	AssembleLayoutSignals() []render.Signal
	AssembleSelectionTopLevelSignals(acc []render.Signal) []render.Signal
	AssembleSelectionData(acc []render.Data) []render.Data
	AssembleMarks() []*render.Mark
	AssembleLayout() *render.Layout
	AssembleGroupStyle() string
	AssembleGroupEncodeEntry() map[string]any
}

// baseModel carries the state every variant shares.
type baseModel struct {
	name      string
	parent    Model
	children  []Model
	component Component
	config    *config.Config
	diags     *diag.Collector
}

func (m *baseModel) Name() string          { return m.name }
func (m *baseModel) Children() []Model     { return m.children }
func (m *baseModel) Component() *Component { return &m.component }

// Build constructs the model for one canonical spec node, selecting the
// concrete variant by the node's tag. Repeat nodes are rejected: they must
// be expanded away by normalization first.
func Build(node spec.Node, parent Model, name string, cfg *config.Config, d *diag.Collector) (Model, error) {
	if node == nil {
		return nil, spec.NewConfigurationError("cannot build a model for a nil spec node")
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if d == nil {
		d = diag.NewCollector(nil)
	}
	if node.Base().Name != "" {
		name = node.Base().Name
	}
	switch s := node.(type) {
	case *spec.Unit:
		return newUnitModel(s, parent, name, cfg, d), nil
	case *spec.Layer:
		return newLayerModel(s, parent, name, cfg, d)
	case *spec.Facet:
		return newFacetModel(s, parent, name, cfg, d)
	case *spec.Repeat:
		return nil, spec.NewConfigurationError("repeat node %q must be expanded before model construction", name)
	case *spec.Concat, *spec.HConcat, *spec.VConcat:
		return newConcatModel(node, parent, name, cfg, d)
	default:
		return nil, spec.NewConfigurationError("unrecognized canonical spec variant %T", node)
	}
}

// buildChildren builds child models depth-first, preserving declaration
// order. Order is semantically significant: selection merge and mark
// assembly both depend on it.
func buildChildren(parent Model, children []spec.Node, name string, cfg *config.Config, d *diag.Collector) ([]Model, error) {
	models := make([]Model, 0, len(children))
	for i, child := range children {
		childName := fmt.Sprintf("%s_child_%d", name, i)
		m, err := Build(child, parent, childName, cfg, d)
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	return models, nil
}

// dataName is the canonical name of a model's data source.
func dataName(name string) string {
	return name + "_data"
}
