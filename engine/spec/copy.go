package spec

import (
	"fmt"

	"github.com/mohae/deepcopy"
)

// CloneNode returns an independent deep copy of a spec tree. Repeat
// expansion relies on this so each cross-product branch owns its own copy of
// the template.
func CloneNode(n Node) (Node, error) {
	if n == nil {
		return nil, nil
	}
	copied, ok := deepcopy.Copy(n).(Node)
	if !ok {
		return nil, fmt.Errorf("failed to deep copy %s spec node", n.Kind())
	}
	// Rebuild interface-typed children explicitly so the copy never aliases
	// the original tree.
	if err := recloneChildren(copied); err != nil {
		return nil, err
	}
	return copied, nil
}

func recloneChildren(n Node) error {
	switch s := n.(type) {
	case *Layer:
		return recloneList(s.Layer)
	case *Facet:
		child, err := CloneNode(s.Spec)
		if err != nil {
			return err
		}
		s.Spec = child
	case *Repeat:
		child, err := CloneNode(s.Spec)
		if err != nil {
			return err
		}
		s.Spec = child
	case *Concat:
		return recloneList(s.Concat)
	case *HConcat:
		return recloneList(s.HConcat)
	case *VConcat:
		return recloneList(s.VConcat)
	}
	return nil
}

func recloneList(children []Node) error {
	for i, child := range children {
		cloned, err := CloneNode(child)
		if err != nil {
			return err
		}
		children[i] = cloned
	}
	return nil
}
