package query

import (
	"fmt"
	"strings"
)

type builder struct {
	sb      strings.Builder
	args    []any
	dialect Dialect
}

func newBuilder(d Dialect) *builder {
	if d == nil {
		d = DialectPostgres
	}
	return &builder{dialect: d}
}

// BuildPredicate renders a predicate tree into a WHERE-clause fragment and
// its bound arguments.
func BuildPredicate(p Predicate, d Dialect) (string, []any, error) {
	b := newBuilder(d)
	if err := b.buildExpression(p); err != nil {
		return "", nil, err
	}
	return b.sb.String(), b.args, nil
}

func (b *builder) buildExpression(expr Expression) error {
	switch exp := expr.(type) {
	case nil:
		return nil
	case Predicate:
		// Sub-predicates are parenthesized; whitespace is generous rather
		// than minimal, the database doesn't mind.
		_, lok := exp.left.(Predicate)
		if lok {
			b.sb.WriteByte('(')
		}
		if err := b.buildExpression(exp.left); err != nil {
			return err
		}
		if lok {
			b.sb.WriteByte(')')
		}

		if exp.op != "" {
			if exp.left != nil {
				b.sb.WriteByte(' ')
			}
			b.sb.WriteString(exp.op.String())
			b.sb.WriteByte(' ')
		}

		_, rok := exp.right.(Predicate)
		if rok {
			b.sb.WriteByte('(')
		}
		if err := b.buildExpression(exp.right); err != nil {
			return err
		}
		if rok {
			b.sb.WriteByte(')')
		}
		return nil
	case Column:
		b.quote(exp.name)
		return nil
	case value:
		b.addArgs(exp.val)
		b.dialect.placeholder(b, len(b.args))
		return nil
	case RawExpr:
		b.sb.WriteString(exp.raw)
		b.addArgs(exp.args...)
		return nil
	default:
		return fmt.Errorf("query: unsupported expression type %T", expr)
	}
}

func (b *builder) quote(name string) {
	q := b.dialect.quoter()
	b.sb.WriteByte(q)
	b.sb.WriteString(name)
	b.sb.WriteByte(q)
}

func (b *builder) addArgs(args ...any) {
	if len(args) == 0 {
		return
	}
	if b.args == nil {
		// few conditions ever exceed 8 bound values
		b.args = make([]any, 0, 8)
	}
	b.args = append(b.args, args...)
}
