package search

import (
	"fmt"

	"github.com/orgdir/orgdir/internal/query"
)

// Render compiles a validated tree into a WHERE-clause predicate against the
// entity's registered table. The walk is depth-first; a tree is never a
// graph, so no node is visited twice.
//
// Identities the SQL relies on: an empty And (or a leaf with no set fields)
// matches everything, an empty Or matches nothing, and single-child
// combinators render as the child with no extra wrapping.
func Render(n Node, reg *query.Registry) (query.Predicate, error) {
	switch t := n.(type) {
	case EntityNode:
		return renderLeaf(t, reg)
	case *NotNode:
		child, err := Render(t.Child, reg)
		if err != nil {
			return query.Predicate{}, err
		}
		return query.Not(child), nil
	case *OrNode:
		children, err := renderAll(t.Children, reg)
		if err != nil {
			return query.Predicate{}, err
		}
		return query.Any(children...), nil
	case *AndNode:
		children, err := renderAll(t.Children, reg)
		if err != nil {
			return query.Predicate{}, err
		}
		return query.All(children...), nil
	default:
		return query.Predicate{}, fmt.Errorf("search: unsupported node type %T", n)
	}
}

func renderAll(nodes []Node, reg *query.Registry) ([]query.Predicate, error) {
	ps := make([]query.Predicate, len(nodes))
	for i, n := range nodes {
		p, err := Render(n, reg)
		if err != nil {
			return nil, err
		}
		ps[i] = p
	}
	return ps, nil
}

func renderLeaf(n EntityNode, reg *query.Registry) (query.Predicate, error) {
	table, ok := reg.Get(n.Kind())
	if !ok {
		return query.Predicate{}, &ContractError{Tag: n.Kind(), Node: n}
	}

	var ps []query.Predicate
	for _, fv := range n.SetFields() {
		f, ok := table.Field(fv.Name)
		if !ok {
			// The decoder only admits declared fields, so a miss here means
			// the registry and the node type disagree.
			return query.Predicate{}, &ContractError{Tag: n.Kind() + "." + fv.Name, Node: n}
		}
		ps = append(ps, query.C(f.Column).Eq(fv.Value))
	}
	return query.All(ps...), nil
}

// EntityForTree resolves which entity a tree targets: a leaf names its own
// entity, Not delegates to its child, and n-ary combinators delegate to their
// first child.
func EntityForTree(n Node) (string, error) {
	switch t := n.(type) {
	case EntityNode:
		return t.Kind(), nil
	case *NotNode:
		return EntityForTree(t.Child)
	case *OrNode:
		if len(t.Children) == 0 {
			return "", fmt.Errorf("search: cannot resolve entity for Or with no children")
		}
		return EntityForTree(t.Children[0])
	case *AndNode:
		if len(t.Children) == 0 {
			return "", fmt.Errorf("search: cannot resolve entity for And with no children")
		}
		return EntityForTree(t.Children[0])
	default:
		return "", fmt.Errorf("search: unsupported node type %T", n)
	}
}
