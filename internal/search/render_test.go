package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgdir/orgdir/internal/query"
)

func testRegistry() *query.Registry {
	r := query.NewRegistry()
	r.Register(KindUser, query.NewTable("users",
		query.Field{Name: "id", Column: "id"},
		query.Field{Name: "first_name", Column: "first_name"},
		query.Field{Name: "last_name", Column: "last_name"},
		query.Field{Name: "email", Column: "email"},
		query.Field{Name: "company_id", Column: "company_id"},
	))
	r.Register(KindCompany, query.NewTable("companies",
		query.Field{Name: "id", Column: "id"},
		query.Field{Name: "name", Column: "name"},
	))
	return r
}

func renderSQL(t *testing.T, n Node) (string, []any) {
	t.Helper()
	p, err := Render(n, testRegistry())
	require.NoError(t, err)
	sql, args, err := query.BuildPredicate(p, query.DialectPostgres)
	require.NoError(t, err)
	return sql, args
}

func TestRenderLeaf(t *testing.T) {
	sql, args := renderSQL(t, &UserNode{FirstName: ptr("John")})
	assert.Equal(t, `"first_name" = $1`, sql)
	assert.Equal(t, []any{"John"}, args)
}

func TestRenderLeafMultipleFields(t *testing.T) {
	sql, args := renderSQL(t, &CompanyNode{ID: ptr(int64(3)), Name: ptr("Acme")})
	assert.Equal(t, `("id" = $1) AND ("name" = $2)`, sql)
	assert.Equal(t, []any{int64(3), "Acme"}, args)
}

func TestRenderLeafWithNoSetFieldsMatchesAll(t *testing.T) {
	sql, args := renderSQL(t, &UserNode{})
	assert.Equal(t, "TRUE", sql)
	assert.Empty(t, args)
}

func TestRenderEmptyCombinatorIdentities(t *testing.T) {
	sql, _ := renderSQL(t, &AndNode{})
	assert.Equal(t, "TRUE", sql)

	sql, _ = renderSQL(t, &OrNode{})
	assert.Equal(t, "FALSE", sql)
}

func TestRenderSingleChildUnwrapped(t *testing.T) {
	child := &UserNode{Email: ptr("john@acme.test")}
	wantSQL, wantArgs := renderSQL(t, child)

	for _, tree := range []Node{
		&AndNode{Children: []Node{child}},
		&OrNode{Children: []Node{child}},
	} {
		sql, args := renderSQL(t, tree)
		assert.Equal(t, wantSQL, sql)
		assert.Equal(t, wantArgs, args)
	}
}

func TestRenderNot(t *testing.T) {
	sql, args := renderSQL(t, &NotNode{Child: &UserNode{FirstName: ptr("John")}})
	assert.Equal(t, `NOT ("first_name" = $1)`, sql)
	assert.Equal(t, []any{"John"}, args)
}

func TestRenderConjunctionScenario(t *testing.T) {
	// {"type":"And","children":[{"type":"User","first_name":"John"},
	//  {"type":"User","last_name":"Smith"},{"type":"User","company_id":1}]}
	n, err := Decode([]byte(`{"type":"And","children":[
		{"type":"User","first_name":"John"},
		{"type":"User","last_name":"Smith"},
		{"type":"User","company_id":1}
	]}`))
	require.NoError(t, err)

	sql, args := renderSQL(t, n)
	assert.Equal(t, `(("first_name" = $1) AND ("last_name" = $2)) AND ("company_id" = $3)`, sql)
	assert.Equal(t, []any{"John", "Smith", int64(1)}, args)
}

func TestRenderNestedTree(t *testing.T) {
	n := &OrNode{Children: []Node{
		&AndNode{Children: []Node{
			&UserNode{FirstName: ptr("John")},
			&UserNode{LastName: ptr("Smith")},
		}},
		&NotNode{Child: &UserNode{CompanyID: ptr(int64(1))}},
	}}
	sql, args := renderSQL(t, n)
	assert.Equal(t, `(("first_name" = $1) AND ("last_name" = $2)) OR (NOT ("company_id" = $3))`, sql)
	assert.Equal(t, []any{"John", "Smith", int64(1)}, args)
}

func TestRenderUnregisteredEntityIsContractError(t *testing.T) {
	reg := query.NewRegistry() // nothing registered
	_, err := Render(&UserNode{FirstName: ptr("John")}, reg)

	var contract *ContractError
	require.ErrorAs(t, err, &contract)
	assert.Equal(t, KindUser, contract.Tag)
}

func TestEntityForTree(t *testing.T) {
	user := &UserNode{FirstName: ptr("John")}
	company := &CompanyNode{Name: ptr("Acme")}

	cases := []struct {
		name string
		tree Node
		want string
	}{
		{"leaf", user, KindUser},
		{"company leaf", company, KindCompany},
		{"not delegates to child", &NotNode{Child: user}, KindUser},
		{"and delegates to first child", &AndNode{Children: []Node{company, company}}, KindCompany},
		{"or delegates to first child", &OrNode{Children: []Node{&NotNode{Child: user}}}, KindUser},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := EntityForTree(tc.tree)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := EntityForTree(&AndNode{})
	assert.Error(t, err)
}
