// Package database persists generated dungeons so lobbies can reload them
// between play sessions. It supports SQLite for single-host deployments and
// PostgreSQL for hosted ones, behind a small dialect layer.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Database wraps the SQL connection and provides dungeon persistence.
type Database struct {
	db      *sql.DB
	dialect Dialect
	qb      *QueryBuilder
}

// Open opens the database described by cfg and ensures the schema exists.
// For SQLite the parent directory is created if missing.
func Open(cfg Config) (*Database, error) {
	dialect := NewDialect(cfg.Driver)

	var dsn string
	switch cfg.Driver {
	case DialectPostgres:
		dsn = cfg.Postgres.ConnString()
	default:
		dir := filepath.Dir(cfg.SQLitePath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = cfg.SQLitePath
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.Driver == DialectPostgres {
		pg := cfg.Postgres
		if pg.MaxOpenConns > 0 {
			db.SetMaxOpenConns(pg.MaxOpenConns)
		}
		if pg.MaxIdleConns > 0 {
			db.SetMaxIdleConns(pg.MaxIdleConns)
		}
		if pg.ConnMaxLifetime > 0 {
			db.SetConnMaxLifetime(pg.ConnMaxLifetime)
		}
	}

	for _, stmt := range dialect.InitStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run init statement %q: %w", stmt, err)
		}
	}

	d := &Database{
		db:      db,
		dialect: dialect,
		qb:      NewQueryBuilder(dialect),
	}

	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return d, nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.db.Close()
}

// migrate creates the schema if it doesn't exist. The DDL below is valid for
// both SQLite and PostgreSQL, so no dialect branching is needed here.
func (d *Database) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS dungeons (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			seed BIGINT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			room_count INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		// Rooms keyed by (dungeon, placement order) so the ordered list the
		// generator returned can be reassembled exactly.
		`CREATE TABLE IF NOT EXISTS dungeon_rooms (
			dungeon_id TEXT NOT NULL REFERENCES dungeons(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			room_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL,
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			type TEXT NOT NULL,
			connections TEXT NOT NULL DEFAULT '',
			has_enemies BOOLEAN NOT NULL DEFAULT FALSE,
			has_treasure BOOLEAN NOT NULL DEFAULT FALSE,
			PRIMARY KEY (dungeon_id, position)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_dungeon_rooms_dungeon_id ON dungeon_rooms(dungeon_id)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	return nil
}

// DB returns the underlying sql.DB for advanced operations.
func (d *Database) DB() *sql.DB {
	return d.db
}
