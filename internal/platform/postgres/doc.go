// Package postgres provides PostgreSQL implementations of the store
// interfaces: children and their game assignments, current levels, and the
// session history written by the record sink. It also embeds the goose
// migrations that create the schema.
package postgres
