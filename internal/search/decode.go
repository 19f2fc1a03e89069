package search

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

type fieldKind int

const (
	stringField fieldKind = iota
	intField
)

func (k fieldKind) String() string {
	if k == intField {
		return "an integer"
	}
	return "a string"
}

// leafField describes one declared field of an entity leaf: its payload name,
// its primitive type and how to assign a checked value onto the node.
type leafField struct {
	name   string
	kind   fieldKind
	assign func(n Node, v any)
}

type variant struct {
	kind    string
	entity  bool
	newNode func() Node
	fields  []leafField
}

func (v *variant) hasField(name string) bool {
	for _, f := range v.fields {
		if f.name == name {
			return true
		}
	}
	return false
}

// variants is the closed, ordered set of deserialization targets. The decoder
// tries them in this order and accepts the first whose tag matches the
// payload's "type" field; operators come before entity leaves, mirroring the
// declared union.
var variants = []variant{
	{kind: KindNot},
	{kind: KindOr},
	{kind: KindAnd},
	{
		kind:    KindUser,
		entity:  true,
		newNode: func() Node { return &UserNode{} },
		fields: []leafField{
			{"id", intField, func(n Node, v any) { x := v.(int64); n.(*UserNode).ID = &x }},
			{"first_name", stringField, func(n Node, v any) { x := v.(string); n.(*UserNode).FirstName = &x }},
			{"last_name", stringField, func(n Node, v any) { x := v.(string); n.(*UserNode).LastName = &x }},
			{"email", stringField, func(n Node, v any) { x := v.(string); n.(*UserNode).Email = &x }},
			{"company_id", intField, func(n Node, v any) { x := v.(int64); n.(*UserNode).CompanyID = &x }},
		},
	},
	{
		kind:    KindCompany,
		entity:  true,
		newNode: func() Node { return &CompanyNode{} },
		fields: []leafField{
			{"id", intField, func(n Node, v any) { x := v.(int64); n.(*CompanyNode).ID = &x }},
			{"name", stringField, func(n Node, v any) { x := v.(string); n.(*CompanyNode).Name = &x }},
		},
	},
}

func variantFor(tag string) *variant {
	for i := range variants {
		if variants[i].kind == tag {
			return &variants[i]
		}
	}
	return nil
}

func variantTags() string {
	tags := make([]string, len(variants))
	for i, v := range variants {
		tags[i] = v.kind
	}
	return strings.Join(tags, ", ")
}

// Decode parses a JSON search expression into a typed tree. Validation is
// strict: the type tag is mandatory, unknown variants and unknown fields are
// rejected, primitive types are enforced, and every violation found is
// reported, not just the first. A tree that mixes entity types is rejected
// here so rendering never has to guess which table it targets.
func Decode(data []byte) (Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, SchemaErrors{{Path: "body", Expected: "a JSON object", Got: err.Error()}}
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, SchemaErrors{{Path: "body", Expected: "an object", Got: raw}}
	}

	d := &decoder{}
	n := d.node(m, "body")
	if len(d.errs) > 0 {
		return nil, d.errs
	}
	if err := rejectMixedEntities(n); err != nil {
		return nil, err
	}
	return n, nil
}

type decoder struct {
	errs SchemaErrors
}

func (d *decoder) fail(path, expected string, got any) {
	d.errs = append(d.errs, &SchemaError{Path: path, Expected: expected, Got: got})
}

func (d *decoder) node(m map[string]any, path string) Node {
	if !HasField(m, "type") {
		d.fail(path+".type", "a variant tag", nil)
		return nil
	}
	tagRaw, _ := GetField(m, "type")
	if tagRaw == nil {
		d.fail(path+".type", "a variant tag", nil)
		return nil
	}
	tag, ok := tagRaw.(string)
	if !ok {
		d.fail(path+".type", "a string variant tag", tagRaw)
		return nil
	}
	v := variantFor(tag)
	if v == nil {
		d.fail(path+".type", "one of "+variantTags(), tag)
		return nil
	}

	switch v.kind {
	case KindNot:
		d.rejectUnknown(m, path, v.kind, "type", "child")
		raw, present := m["child"]
		if !present {
			d.fail(path+".child", "a child node", nil)
			return nil
		}
		cm, ok := raw.(map[string]any)
		if !ok {
			d.fail(path+".child", "an object", raw)
			return nil
		}
		return &NotNode{Child: d.node(cm, path+".child")}
	case KindOr, KindAnd:
		d.rejectUnknown(m, path, v.kind, "type", "children")
		raw, present := m["children"]
		if !present {
			d.fail(path+".children", "a list of nodes", nil)
			return nil
		}
		list, ok := raw.([]any)
		if !ok {
			d.fail(path+".children", "a list of nodes", raw)
			return nil
		}
		children := make([]Node, 0, len(list))
		for i, el := range list {
			elPath := fmt.Sprintf("%s.children[%d]", path, i)
			em, ok := el.(map[string]any)
			if !ok {
				d.fail(elPath, "an object", el)
				continue
			}
			if c := d.node(em, elPath); c != nil {
				children = append(children, c)
			}
		}
		if v.kind == KindOr {
			return &OrNode{Children: children}
		}
		return &AndNode{Children: children}
	default:
		return d.leaf(v, m, path)
	}
}

func (d *decoder) leaf(v *variant, m map[string]any, path string) Node {
	n := v.newNode()

	// Declared fields in declaration order, so error order is stable.
	// A JSON null is an unset field, same as an absent one.
	for _, f := range v.fields {
		raw, present := m[f.name]
		if !present || raw == nil {
			continue
		}
		switch f.kind {
		case stringField:
			s, ok := raw.(string)
			if !ok {
				d.fail(path+"."+f.name, f.kind.String(), raw)
				continue
			}
			f.assign(n, s)
		case intField:
			num, ok := raw.(json.Number)
			if !ok {
				d.fail(path+"."+f.name, f.kind.String(), raw)
				continue
			}
			iv, err := num.Int64()
			if err != nil {
				d.fail(path+"."+f.name, f.kind.String(), raw)
				continue
			}
			f.assign(n, iv)
		}
	}

	d.rejectUnknown(m, path, v.kind, fieldNames(v)...)
	return n
}

func (d *decoder) rejectUnknown(m map[string]any, path, kind string, allowed ...string) {
	var unknown []string
	for key := range m {
		found := false
		for _, a := range allowed {
			if key == a {
				found = true
				break
			}
		}
		if !found {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		d.fail(path+"."+key, "a field declared on "+kind, nil)
	}
}

func fieldNames(v *variant) []string {
	names := make([]string, 0, len(v.fields)+1)
	names = append(names, "type")
	for _, f := range v.fields {
		names = append(names, f.name)
	}
	return names
}

// rejectMixedEntities enforces one entity type per tree. Combining User and
// Company leaves under one combinator would render a cross-entity condition
// no single SELECT can satisfy, so it is rejected at the validation boundary.
func rejectMixedEntities(n Node) error {
	kinds := map[string]bool{}
	collectEntityKinds(n, kinds)
	if len(kinds) <= 1 {
		return nil
	}
	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, k)
	}
	sort.Strings(names)
	return SchemaErrors{{
		Path:     "body",
		Expected: "a single entity type per tree",
		Got:      strings.Join(names, " and "),
	}}
}

func collectEntityKinds(n Node, kinds map[string]bool) {
	switch t := n.(type) {
	case EntityNode:
		kinds[t.Kind()] = true
	case *NotNode:
		if t.Child != nil {
			collectEntityKinds(t.Child, kinds)
		}
	case *OrNode:
		for _, c := range t.Children {
			collectEntityKinds(c, kinds)
		}
	case *AndNode:
		for _, c := range t.Children {
			collectEntityKinds(c, kinds)
		}
	}
}
