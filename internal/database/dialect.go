package database

// Dialect abstracts the SQL syntax differences between SQLite and PostgreSQL.
type Dialect interface {
	// DriverName returns the driver name passed to sql.Open().
	DriverName() string

	// Placeholder returns the parameter placeholder for a 1-indexed position.
	// SQLite uses "?" everywhere; PostgreSQL uses "$1", "$2", ...
	Placeholder(position int) string

	// InitStatements returns statements run once after the connection opens.
	// SQLite: PRAGMAs. PostgreSQL: nothing.
	InitStatements() []string

	// IsDuplicateKeyError reports whether err is a unique constraint violation.
	IsDuplicateKeyError(err error) bool
}

// DialectType identifies the database dialect.
type DialectType string

const (
	DialectSQLite   DialectType = "sqlite"
	DialectPostgres DialectType = "postgres"
)

// NewDialect creates a Dialect for the given type. Unknown types fall back
// to SQLite, the default driver.
func NewDialect(dialectType DialectType) Dialect {
	switch dialectType {
	case DialectPostgres:
		return &PostgresDialect{}
	default:
		return &SQLiteDialect{}
	}
}
