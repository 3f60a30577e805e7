package database

import (
	"errors"
	"testing"
)

func TestNewDialect(t *testing.T) {
	if _, ok := NewDialect(DialectSQLite).(*SQLiteDialect); !ok {
		t.Error("DialectSQLite should produce a SQLiteDialect")
	}
	if _, ok := NewDialect(DialectPostgres).(*PostgresDialect); !ok {
		t.Error("DialectPostgres should produce a PostgresDialect")
	}
	if _, ok := NewDialect("mystery").(*SQLiteDialect); !ok {
		t.Error("unknown dialect should fall back to SQLite")
	}
}

func TestSQLiteDialect(t *testing.T) {
	d := &SQLiteDialect{}

	if d.DriverName() != "sqlite" {
		t.Errorf("DriverName() = %q, want sqlite", d.DriverName())
	}
	if d.Placeholder(1) != "?" || d.Placeholder(5) != "?" {
		t.Error("SQLite placeholder should always be ?")
	}
	if len(d.InitStatements()) == 0 {
		t.Error("SQLite should have PRAGMA init statements")
	}

	if !d.IsDuplicateKeyError(errors.New("UNIQUE constraint failed: dungeons.id")) {
		t.Error("should recognize SQLite unique constraint errors")
	}
	if d.IsDuplicateKeyError(errors.New("no such table")) {
		t.Error("should not flag unrelated errors")
	}
	if d.IsDuplicateKeyError(nil) {
		t.Error("nil error is not a duplicate key error")
	}
}

func TestPostgresDialect(t *testing.T) {
	d := &PostgresDialect{}

	if d.DriverName() != "postgres" {
		t.Errorf("DriverName() = %q, want postgres", d.DriverName())
	}
	if d.Placeholder(1) != "$1" {
		t.Errorf("Placeholder(1) = %q, want $1", d.Placeholder(1))
	}
	if d.Placeholder(11) != "$11" {
		t.Errorf("Placeholder(11) = %q, want $11", d.Placeholder(11))
	}

	if !d.IsDuplicateKeyError(errors.New(`pq: duplicate key value violates unique constraint "dungeons_pkey"`)) {
		t.Error("should recognize pq duplicate key errors")
	}
	if !d.IsDuplicateKeyError(errors.New("SQLSTATE 23505")) {
		t.Error("should recognize SQLSTATE 23505")
	}
	if d.IsDuplicateKeyError(nil) {
		t.Error("nil error is not a duplicate key error")
	}
}

func TestQueryBuilder(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		query   string
		want    string
	}{
		{
			"sqlite passthrough",
			&SQLiteDialect{},
			"SELECT name FROM dungeons WHERE id = ? AND seed = ?",
			"SELECT name FROM dungeons WHERE id = ? AND seed = ?",
		},
		{
			"postgres numbering",
			&PostgresDialect{},
			"SELECT name FROM dungeons WHERE id = ? AND seed = ?",
			"SELECT name FROM dungeons WHERE id = $1 AND seed = $2",
		},
		{
			"postgres no placeholders",
			&PostgresDialect{},
			"SELECT COUNT(*) FROM dungeons",
			"SELECT COUNT(*) FROM dungeons",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			qb := NewQueryBuilder(tc.dialect)
			if got := qb.Build(tc.query); got != tc.want {
				t.Errorf("Build() = %q, want %q", got, tc.want)
			}
		})
	}
}
