package search

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ExtractEntitiesJSON parses a JSON payload (numbers kept as json.Number, the
// shape the decoder expects) and extracts its entity leaves.
func ExtractEntitiesJSON(data []byte) ([]Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, SchemaErrors{{Path: "body", Expected: "a JSON object", Got: err.Error()}}
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, &ShapeError{Path: "body", Got: raw}
	}
	return ExtractEntities(m)
}

// ExtractEntities walks a raw, not-necessarily-valid tree and collects every
// entity-leaf node in pre-order, left to right. Duplicates are preserved. A
// node contributes itself when its tag names an entity variant, and its
// "child"/"children" keys are inspected either way; entity leaves carry
// neither key in practice, combinators do.
//
// It operates on the raw mapping shape on purpose: payload auditing must work
// before the tree as a whole validates. Leaves that do appear must still
// decode cleanly, and a children element that is not an object is a
// ShapeError.
func ExtractEntities(data map[string]any) ([]Node, error) {
	return extractEntities(data, "body")
}

func extractEntities(data map[string]any, path string) ([]Node, error) {
	var out []Node

	if tag, ok := data["type"].(string); ok {
		if v := variantFor(tag); v != nil && v.entity {
			d := &decoder{}
			n := d.leaf(v, data, path)
			if len(d.errs) > 0 {
				return nil, d.errs
			}
			out = append(out, n)
		}
	}

	if child, present := data["child"]; present {
		cm, ok := child.(map[string]any)
		if !ok {
			return nil, &ShapeError{Path: path + ".child", Got: child}
		}
		nested, err := extractEntities(cm, path+".child")
		if err != nil {
			return nil, err
		}
		out = append(out, nested...)
	}

	if children, present := data["children"]; present {
		list, ok := children.([]any)
		if !ok {
			return nil, &ShapeError{Path: path + ".children", Got: children}
		}
		for i, el := range list {
			elPath := fmt.Sprintf("%s.children[%d]", path, i)
			em, ok := el.(map[string]any)
			if !ok {
				return nil, &ShapeError{Path: elPath, Got: el}
			}
			nested, err := extractEntities(em, elPath)
			if err != nil {
				return nil, err
			}
			out = append(out, nested...)
		}
	}

	return out, nil
}
