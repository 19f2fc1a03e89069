package search

import "encoding/json"

// Variant tags. The tag carried in a payload's "type" field must equal one of
// these exactly.
const (
	KindNot     = "Not"
	KindOr      = "Or"
	KindAnd     = "And"
	KindUser    = "User"
	KindCompany = "Company"
)

// Node is one node of a search-expression tree: an entity leaf expressing
// field-equality constraints, or a combinator composing child predicates.
// The variant set is closed; only the types in this file implement it.
// Trees are immutable once decoded and never shared across requests.
type Node interface {
	Kind() string
	isNode()
}

// EntityNode is a leaf bound to one persisted entity type.
type EntityNode interface {
	Node
	// SetFields returns the leaf's explicitly-set fields in declaration
	// order. Unset fields impose no constraint and are excluded.
	SetFields() []FieldValue
}

// FieldValue is one explicitly-set field of an entity leaf.
type FieldValue struct {
	Name  string
	Value any
}

// NotNode negates its child's condition.
type NotNode struct {
	Child Node
}

func (*NotNode) Kind() string { return KindNot }
func (*NotNode) isNode()      {}

func (n *NotNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Child Node   `json:"child"`
	}{KindNot, n.Child})
}

// OrNode disjoins its children. No children matches nothing.
type OrNode struct {
	Children []Node
}

func (*OrNode) Kind() string { return KindOr }
func (*OrNode) isNode()      {}

func (n *OrNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string `json:"type"`
		Children []Node `json:"children"`
	}{KindOr, n.Children})
}

// AndNode conjoins its children. No children matches everything.
type AndNode struct {
	Children []Node
}

func (*AndNode) Kind() string { return KindAnd }
func (*AndNode) isNode()      {}

func (n *AndNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string `json:"type"`
		Children []Node `json:"children"`
	}{KindAnd, n.Children})
}

// UserNode is an equality predicate over the User entity. Nil fields are
// unset and do not constrain the query.
type UserNode struct {
	ID        *int64  `json:"id,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	CompanyID *int64  `json:"company_id,omitempty"`
}

func (*UserNode) Kind() string { return KindUser }
func (*UserNode) isNode()      {}

func (n *UserNode) SetFields() []FieldValue {
	var fs []FieldValue
	if n.ID != nil {
		fs = append(fs, FieldValue{"id", *n.ID})
	}
	if n.FirstName != nil {
		fs = append(fs, FieldValue{"first_name", *n.FirstName})
	}
	if n.LastName != nil {
		fs = append(fs, FieldValue{"last_name", *n.LastName})
	}
	if n.Email != nil {
		fs = append(fs, FieldValue{"email", *n.Email})
	}
	if n.CompanyID != nil {
		fs = append(fs, FieldValue{"company_id", *n.CompanyID})
	}
	return fs
}

func (n *UserNode) MarshalJSON() ([]byte, error) {
	type alias UserNode
	return json.Marshal(struct {
		Type string `json:"type"`
		*alias
	}{KindUser, (*alias)(n)})
}

// CompanyNode is an equality predicate over the Company entity.
type CompanyNode struct {
	ID   *int64  `json:"id,omitempty"`
	Name *string `json:"name,omitempty"`
}

func (*CompanyNode) Kind() string { return KindCompany }
func (*CompanyNode) isNode()      {}

func (n *CompanyNode) SetFields() []FieldValue {
	var fs []FieldValue
	if n.ID != nil {
		fs = append(fs, FieldValue{"id", *n.ID})
	}
	if n.Name != nil {
		fs = append(fs, FieldValue{"name", *n.Name})
	}
	return fs
}

func (n *CompanyNode) MarshalJSON() ([]byte, error) {
	type alias CompanyNode
	return json.Marshal(struct {
		Type string `json:"type"`
		*alias
	}{KindCompany, (*alias)(n)})
}
