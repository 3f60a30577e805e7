package database

import "strings"

// QueryBuilder rewrites queries written with ? placeholders into the
// dialect's placeholder syntax. Queries throughout this package are written
// once in SQLite form and converted on the fly for PostgreSQL.
type QueryBuilder struct {
	dialect Dialect
}

// NewQueryBuilder creates a QueryBuilder for the given dialect.
func NewQueryBuilder(dialect Dialect) *QueryBuilder {
	return &QueryBuilder{dialect: dialect}
}

// Build converts ? placeholders to the dialect format.
//
//	input:    "SELECT name FROM dungeons WHERE id = ?"
//	sqlite:   unchanged
//	postgres: "SELECT name FROM dungeons WHERE id = $1"
func (qb *QueryBuilder) Build(query string) string {
	if _, ok := qb.dialect.(*SQLiteDialect); ok {
		return query
	}

	var result strings.Builder
	position := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			result.WriteString(qb.dialect.Placeholder(position))
			position++
		} else {
			result.WriteByte(query[i])
		}
	}
	return result.String()
}
