package query

type op string

const (
	opEq  op = "="
	opAnd op = "AND"
	opOr  op = "OR"
	opNot op = "NOT"
)

func (o op) String() string {
	return string(o)
}

// Predicate is a boolean condition tree consumable by the SQL builder.
// A leaf predicate compares a column to a bound value; interior predicates
// combine children with AND, OR or NOT.
type Predicate struct {
	left  Expression
	op    op
	right Expression
}

func (p Predicate) expr() {}

// Not negates a predicate. Not(C("id").Eq(1)) => NOT (id = $1)
func Not(p Predicate) Predicate {
	return Predicate{
		op:    opNot,
		right: p,
	}
}

// And conjoins two predicates.
// C("id").Eq(1).And(C("name").Eq("Acme")) => (id = $1) AND (name = $2)
func (left Predicate) And(right Predicate) Predicate {
	return Predicate{
		left:  left,
		op:    opAnd,
		right: right,
	}
}

// Or disjoins two predicates.
func (left Predicate) Or(right Predicate) Predicate {
	return Predicate{
		left:  left,
		op:    opOr,
		right: right,
	}
}

// True is the identity of And: a condition that matches every row.
func True() Predicate {
	return Raw("TRUE").AsPredicate()
}

// False is the identity of Or: a condition that matches no rows.
func False() Predicate {
	return Raw("FALSE").AsPredicate()
}

// All folds predicates into a conjunction. Zero predicates yield True,
// a single predicate is returned unchanged.
func All(ps ...Predicate) Predicate {
	if len(ps) == 0 {
		return True()
	}
	acc := ps[0]
	for _, p := range ps[1:] {
		acc = acc.And(p)
	}
	return acc
}

// Any folds predicates into a disjunction. Zero predicates yield False,
// a single predicate is returned unchanged.
func Any(ps ...Predicate) Predicate {
	if len(ps) == 0 {
		return False()
	}
	acc := ps[0]
	for _, p := range ps[1:] {
		acc = acc.Or(p)
	}
	return acc
}
