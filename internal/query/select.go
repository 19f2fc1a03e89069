package query

import (
	"errors"
	"strconv"
)

// Query is a rendered SQL statement with its bound arguments.
type Query struct {
	SQL  string
	Args []any
}

// SelectBuilder assembles a SELECT statement. Column and table names are
// trusted input: they come from the entity registry, never from the client.
type SelectBuilder struct {
	table   string
	columns []string
	where   *Predicate
	orderBy string
	limit   int
	offset  int
	dialect Dialect
}

// Select starts a SELECT statement over the given columns.
func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{
		columns: columns,
		limit:   -1,
		offset:  -1,
		dialect: DialectPostgres,
	}
}

func (s *SelectBuilder) From(table string) *SelectBuilder {
	s.table = table
	return s
}

func (s *SelectBuilder) Where(p Predicate) *SelectBuilder {
	s.where = &p
	return s
}

func (s *SelectBuilder) OrderBy(column string) *SelectBuilder {
	s.orderBy = column
	return s
}

func (s *SelectBuilder) Limit(n int) *SelectBuilder {
	s.limit = n
	return s
}

func (s *SelectBuilder) Offset(n int) *SelectBuilder {
	s.offset = n
	return s
}

func (s *SelectBuilder) Build() (*Query, error) {
	if s.table == "" {
		return nil, errors.New("query: select without a table")
	}
	if len(s.columns) == 0 {
		return nil, errors.New("query: select without columns")
	}

	b := newBuilder(s.dialect)
	b.sb.WriteString("SELECT ")
	for i, col := range s.columns {
		if i > 0 {
			b.sb.WriteString(", ")
		}
		b.quote(col)
	}
	b.sb.WriteString(" FROM ")
	b.quote(s.table)

	if s.where != nil {
		b.sb.WriteString(" WHERE ")
		if err := b.buildExpression(*s.where); err != nil {
			return nil, err
		}
	}

	if s.orderBy != "" {
		b.sb.WriteString(" ORDER BY ")
		b.quote(s.orderBy)
	}
	if s.limit >= 0 {
		b.sb.WriteString(" LIMIT ")
		b.sb.WriteString(strconv.Itoa(s.limit))
	}
	if s.offset >= 0 {
		b.sb.WriteString(" OFFSET ")
		b.sb.WriteString(strconv.Itoa(s.offset))
	}

	return &Query{
		SQL:  b.sb.String(),
		Args: b.args,
	}, nil
}
