package models

import "github.com/orgdir/orgdir/internal/query"

// RegisterSearchTables binds the searchable entities to their storage-backed
// tables. Only fields listed here can appear in a rendered search condition;
// hashed_password and address are deliberately not searchable.
func RegisterSearchTables(r *query.Registry) {
	r.Register("User", query.NewTable("users",
		query.Field{Name: "id", Column: "id"},
		query.Field{Name: "first_name", Column: "first_name"},
		query.Field{Name: "last_name", Column: "last_name"},
		query.Field{Name: "email", Column: "email"},
		query.Field{Name: "company_id", Column: "company_id"},
	))
	r.Register("Company", query.NewTable("companies",
		query.Field{Name: "id", Column: "id"},
		query.Field{Name: "name", Column: "name"},
	))
}
