package search

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestDecodeLeaf(t *testing.T) {
	n, err := Decode([]byte(`{"type":"User","first_name":"John","company_id":1}`))
	require.NoError(t, err)

	user, ok := n.(*UserNode)
	require.True(t, ok)
	assert.Equal(t, ptr("John"), user.FirstName)
	assert.Equal(t, ptr(int64(1)), user.CompanyID)
	assert.Nil(t, user.ID)
	assert.Nil(t, user.LastName)
	assert.Nil(t, user.Email)
}

func TestDecodeTree(t *testing.T) {
	payload := `{
		"type": "And",
		"children": [
			{"type": "Or", "children": [
				{"type": "User", "first_name": "John"},
				{"type": "User", "last_name": "Smith"}
			]},
			{"type": "Not", "child": {"type": "User", "company_id": 2}}
		]
	}`
	n, err := Decode([]byte(payload))
	require.NoError(t, err)

	and, ok := n.(*AndNode)
	require.True(t, ok)
	require.Len(t, and.Children, 2)

	or, ok := and.Children[0].(*OrNode)
	require.True(t, ok)
	require.Len(t, or.Children, 2)

	not, ok := and.Children[1].(*NotNode)
	require.True(t, ok)
	assert.Equal(t, &UserNode{CompanyID: ptr(int64(2))}, not.Child)
}

func TestDecodeRoundTrip(t *testing.T) {
	trees := []Node{
		&UserNode{FirstName: ptr("John"), CompanyID: ptr(int64(1))},
		&CompanyNode{Name: ptr("Acme")},
		&CompanyNode{},
		&NotNode{Child: &UserNode{Email: ptr("john@acme.test")}},
		&OrNode{Children: []Node{
			&UserNode{FirstName: ptr("John")},
			&UserNode{LastName: ptr("Smith")},
		}},
		&AndNode{Children: []Node{
			&NotNode{Child: &CompanyNode{ID: ptr(int64(7))}},
			&CompanyNode{Name: ptr("Yoyodyne")},
		}},
		&AndNode{Children: []Node{}},
	}

	for _, tree := range trees {
		data, err := json.Marshal(tree)
		require.NoError(t, err)

		back, err := Decode(data)
		require.NoError(t, err, "payload: %s", data)
		assert.Equal(t, tree, back, "payload: %s", data)
	}
}

func TestDecodeMissingType(t *testing.T) {
	for _, payload := range []string{
		`{"first_name":"John"}`,
		`{"type":null,"first_name":"John"}`,
		`{"type":"And","children":[{"first_name":"John"}]}`,
	} {
		_, err := Decode([]byte(payload))
		require.Error(t, err, "payload: %s", payload)

		var errs SchemaErrors
		require.ErrorAs(t, err, &errs)
		assert.Contains(t, errs[0].Path, "type")
	}
}

func TestDecodeUnknownVariant(t *testing.T) {
	_, err := Decode([]byte(`{"type":"Employee"}`))
	var errs SchemaErrors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 1)
	assert.Equal(t, "body.type", errs[0].Path)
	assert.Equal(t, "Employee", errs[0].Got)
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	_, err := Decode([]byte(`{"type":"User","unknown_field":1}`))
	var errs SchemaErrors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 1)
	assert.Equal(t, "body.unknown_field", errs[0].Path)

	// The same policy applies to combinators.
	_, err = Decode([]byte(`{"type":"And","children":[],"extra":true}`))
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "body.extra", errs[0].Path)
}

func TestDecodeTypeViolation(t *testing.T) {
	_, err := Decode([]byte(`{"type":"User","id":"not a number"}`))
	var errs SchemaErrors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 1)
	assert.Equal(t, "body.id", errs[0].Path)
	assert.Equal(t, "an integer", errs[0].Expected)
	assert.Equal(t, "not a number", errs[0].Got)

	// Fractional numbers are not integers either.
	_, err = Decode([]byte(`{"type":"User","company_id":1.5}`))
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "body.company_id", errs[0].Path)
}

func TestDecodeReportsAllViolations(t *testing.T) {
	payload := `{"type":"And","children":[
		{"type":"User","id":"x","bogus":1},
		{"type":"Company","name":12}
	]}`
	_, err := Decode([]byte(payload))
	var errs SchemaErrors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 3)

	paths := make([]string, len(errs))
	for i, e := range errs {
		paths[i] = e.Path
	}
	assert.Equal(t, []string{
		"body.children[0].id",
		"body.children[0].bogus",
		"body.children[1].name",
	}, paths)
}

func TestDecodeChildShape(t *testing.T) {
	_, err := Decode([]byte(`{"type":"Not","child":"nope"}`))
	var errs SchemaErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "body.child", errs[0].Path)

	_, err = Decode([]byte(`{"type":"Not"}`))
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "body.child", errs[0].Path)

	_, err = Decode([]byte(`{"type":"Or","children":[{"type":"User"},42]}`))
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "body.children[1]", errs[0].Path)

	_, err = Decode([]byte(`{"type":"Or","children":"nope"}`))
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "body.children", errs[0].Path)
}

func TestDecodeNullFieldIsUnset(t *testing.T) {
	n, err := Decode([]byte(`{"type":"Company","name":null}`))
	require.NoError(t, err)
	assert.Equal(t, &CompanyNode{}, n)
}

func TestDecodeRejectsMixedEntities(t *testing.T) {
	payload := `{"type":"And","children":[
		{"type":"User","first_name":"John"},
		{"type":"Company","name":"Acme"}
	]}`
	_, err := Decode([]byte(payload))
	var errs SchemaErrors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 1)
	assert.Equal(t, "body", errs[0].Path)
	assert.Equal(t, "Company and User", errs[0].Got)
}

func TestDecodeNonObjectBody(t *testing.T) {
	for _, payload := range []string{`[]`, `"User"`, `42`, `{"type":`} {
		_, err := Decode([]byte(payload))
		require.Error(t, err, "payload: %s", payload)
	}
}
