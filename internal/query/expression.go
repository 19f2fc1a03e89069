package query

// Expression is a marker interface for anything that can appear in a WHERE clause.
type Expression interface {
	expr()
}

// RawExpr is an escape hatch for SQL fragments the builder doesn't model,
// such as the boolean literals used for empty combinators.
type RawExpr struct {
	raw  string
	args []any
}

// Raw wraps a literal SQL fragment with optional bound arguments.
func Raw(expr string, args ...any) RawExpr {
	return RawExpr{
		raw:  expr,
		args: args,
	}
}

// AsPredicate lifts a raw fragment into a Predicate so it can be combined
// with And/Or/Not like any other condition.
func (r RawExpr) AsPredicate() Predicate {
	return Predicate{left: r}
}

func (r RawExpr) expr() {}

type value struct {
	val any
}

func (v value) expr() {}
