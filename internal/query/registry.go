package query

import "fmt"

// Field describes one persisted field of an entity: the name clients use in
// search payloads and the column backing it.
type Field struct {
	Name   string
	Column string
}

// Table is the storage-backed representation of an entity. Fields are kept in
// declaration order so rendered conditions and column lists are deterministic.
type Table struct {
	Name   string
	Fields []Field

	byName map[string]Field
}

// NewTable builds a Table and indexes its fields.
func NewTable(name string, fields ...Field) Table {
	byName := make(map[string]Field, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}
	return Table{
		Name:   name,
		Fields: fields,
		byName: byName,
	}
}

// Field looks up a field descriptor by its payload name.
func (t Table) Field(name string) (Field, bool) {
	f, ok := t.byName[name]
	return f, ok
}

// Columns returns the table's column names in declaration order.
func (t Table) Columns() []string {
	cols := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		cols[i] = f.Column
	}
	return cols
}

// Registry maps entity tags ("User", "Company") to their storage-backed
// tables. It is populated once at startup by the models package and injected
// into the search engine; it is read-only afterwards, so no locking.
type Registry struct {
	tables map[string]Table
	tags   []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		tables: make(map[string]Table),
	}
}

// Register binds an entity tag to its table. Registering the same tag twice
// is a wiring bug and panics at startup rather than failing a request later.
func (r *Registry) Register(tag string, t Table) {
	if _, exists := r.tables[tag]; exists {
		panic(fmt.Sprintf("query: entity %q registered twice", tag))
	}
	r.tables[tag] = t
	r.tags = append(r.tags, tag)
}

// Get resolves an entity tag to its table.
func (r *Registry) Get(tag string) (Table, bool) {
	t, ok := r.tables[tag]
	return t, ok
}

// Tags returns the registered entity tags in registration order.
func (r *Registry) Tags() []string {
	out := make([]string, len(r.tags))
	copy(out, r.tags)
	return out
}
