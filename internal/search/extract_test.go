package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractEntitiesOrder(t *testing.T) {
	// And(children=[Or(children=[A, B]), C]) yields [A, B, C].
	payload := []byte(`{"type":"And","children":[
		{"type":"Or","children":[
			{"type":"User","first_name":"John"},
			{"type":"User","last_name":"Smith"}
		]},
		{"type":"User","company_id":1}
	]}`)

	got, err := ExtractEntitiesJSON(payload)
	require.NoError(t, err)
	assert.Equal(t, []Node{
		&UserNode{FirstName: ptr("John")},
		&UserNode{LastName: ptr("Smith")},
		&UserNode{CompanyID: ptr(int64(1))},
	}, got)
}

func TestExtractEntitiesSingleLeaf(t *testing.T) {
	got, err := ExtractEntitiesJSON([]byte(`{"type":"Company","name":"Acme"}`))
	require.NoError(t, err)
	assert.Equal(t, []Node{&CompanyNode{Name: ptr("Acme")}}, got)
}

func TestExtractEntitiesNoLeaves(t *testing.T) {
	got, err := ExtractEntitiesJSON([]byte(`{"type":"And","children":[]}`))
	require.NoError(t, err)
	assert.Empty(t, got)

	// Unknown tags are skipped, not rejected: extraction scans payloads that
	// may not validate as a tree yet.
	got, err = ExtractEntitiesJSON([]byte(`{"type":"Whatever","child":{"type":"User","id":9}}`))
	require.NoError(t, err)
	assert.Equal(t, []Node{&UserNode{ID: ptr(int64(9))}}, got)
}

func TestExtractEntitiesPreservesDuplicates(t *testing.T) {
	payload := []byte(`{"type":"Or","children":[
		{"type":"User","id":1},
		{"type":"User","id":1}
	]}`)
	got, err := ExtractEntitiesJSON(payload)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, got[0], got[1])
}

func TestExtractEntitiesChildrenElementNotAMapping(t *testing.T) {
	payload := []byte(`{"type":"And","children":[{"type":"User"},"oops"]}`)
	_, err := ExtractEntitiesJSON(payload)

	var shape *ShapeError
	require.ErrorAs(t, err, &shape)
	assert.Equal(t, "body.children[1]", shape.Path)
}

func TestExtractEntitiesChildNotAMapping(t *testing.T) {
	_, err := ExtractEntitiesJSON([]byte(`{"type":"Not","child":[1,2]}`))

	var shape *ShapeError
	require.ErrorAs(t, err, &shape)
	assert.Equal(t, "body.child", shape.Path)
}

func TestExtractEntitiesInvalidLeaf(t *testing.T) {
	_, err := ExtractEntitiesJSON([]byte(`{"type":"User","id":"not a number"}`))

	var errs SchemaErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "body.id", errs[0].Path)
}
