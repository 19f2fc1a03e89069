package query

import "strconv"

var (
	DialectPostgres Dialect = postgresDialect{}
)

// Dialect abstracts the two things that differ between databases when
// rendering a condition: identifier quoting and placeholder style.
type Dialect interface {
	quoter() byte
	// placeholder writes the marker for the next bound argument; argIndex is
	// 1-based and counts arguments already emitted plus one.
	placeholder(b *builder, argIndex int)
}

type postgresDialect struct{}

func (postgresDialect) quoter() byte {
	return '"'
}

func (postgresDialect) placeholder(b *builder, argIndex int) {
	b.sb.WriteByte('$')
	b.sb.WriteString(strconv.Itoa(argIndex))
}
