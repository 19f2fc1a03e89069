package query

// Column names a database column in a predicate. The search layer resolves
// API field names to column names through the Registry before building
// columns, so no name translation happens here.
type Column struct {
	name string
}

// C constructs a column reference.
func C(name string) Column {
	return Column{name: name}
}

func (c Column) expr() {}

// Eq builds an equality comparison against a bound value.
func (c Column) Eq(arg any) Predicate {
	return Predicate{
		left:  c,
		op:    opEq,
		right: value{val: arg},
	}
}
