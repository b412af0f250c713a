// Package postgres implements the store interfaces on PostgreSQL through
// database/sql and the pgx driver. Card sets keep their cards in a JSONB
// column. Schema migrations are embedded in the migrations subpackage.
package postgres
