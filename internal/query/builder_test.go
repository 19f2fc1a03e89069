package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPredicateEq(t *testing.T) {
	sql, args, err := BuildPredicate(C("email").Eq("john@acme.test"), DialectPostgres)
	require.NoError(t, err)
	assert.Equal(t, `"email" = $1`, sql)
	assert.Equal(t, []any{"john@acme.test"}, args)
}

func TestBuildPredicateCombinators(t *testing.T) {
	cases := []struct {
		name string
		p    Predicate
		sql  string
		args []any
	}{
		{
			name: "and",
			p:    C("id").Eq(1).And(C("name").Eq("Acme")),
			sql:  `("id" = $1) AND ("name" = $2)`,
			args: []any{1, "Acme"},
		},
		{
			name: "or",
			p:    C("id").Eq(1).Or(C("id").Eq(2)),
			sql:  `("id" = $1) OR ("id" = $2)`,
			args: []any{1, 2},
		},
		{
			name: "not",
			p:    Not(C("first_name").Eq("John")),
			sql:  `NOT ("first_name" = $1)`,
			args: []any{"John"},
		},
		{
			name: "true literal",
			p:    True(),
			sql:  "TRUE",
		},
		{
			name: "false literal",
			p:    False(),
			sql:  "FALSE",
		},
		{
			name: "raw with args",
			p:    Raw("char_length(name) > $1", 10).AsPredicate(),
			sql:  "char_length(name) > $1",
			args: []any{10},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sql, args, err := BuildPredicate(tc.p, DialectPostgres)
			require.NoError(t, err)
			assert.Equal(t, tc.sql, sql)
			assert.Equal(t, tc.args, args)
		})
	}
}

func TestAllAnyFolding(t *testing.T) {
	single := C("id").Eq(1)

	sql, _, err := BuildPredicate(All(single), DialectPostgres)
	require.NoError(t, err)
	assert.Equal(t, `"id" = $1`, sql)

	sql, _, err = BuildPredicate(Any(single), DialectPostgres)
	require.NoError(t, err)
	assert.Equal(t, `"id" = $1`, sql)

	sql, _, err = BuildPredicate(All(), DialectPostgres)
	require.NoError(t, err)
	assert.Equal(t, "TRUE", sql)

	sql, _, err = BuildPredicate(Any(), DialectPostgres)
	require.NoError(t, err)
	assert.Equal(t, "FALSE", sql)
}

func TestSelectBuilder(t *testing.T) {
	q, err := Select("id", "name").
		From("companies").
		Where(C("name").Eq("Acme")).
		OrderBy("id").
		Limit(100).
		Offset(10).
		Build()
	require.NoError(t, err)
	assert.Equal(t, `SELECT "id", "name" FROM "companies" WHERE "name" = $1 ORDER BY "id" LIMIT 100 OFFSET 10`, q.SQL)
	assert.Equal(t, []any{"Acme"}, q.Args)
}

func TestSelectBuilderRequiresTableAndColumns(t *testing.T) {
	_, err := Select("id").Build()
	assert.Error(t, err)

	_, err = Select().From("users").Build()
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	users := NewTable("users",
		Field{Name: "id", Column: "id"},
		Field{Name: "first_name", Column: "first_name"},
	)
	r.Register("User", users)

	got, ok := r.Get("User")
	require.True(t, ok)
	assert.Equal(t, []string{"id", "first_name"}, got.Columns())

	f, ok := got.Field("first_name")
	require.True(t, ok)
	assert.Equal(t, "first_name", f.Column)

	_, ok = got.Field("nope")
	assert.False(t, ok)

	_, ok = r.Get("Ghost")
	assert.False(t, ok)

	assert.Equal(t, []string{"User"}, r.Tags())

	assert.Panics(t, func() { r.Register("User", users) })
}
