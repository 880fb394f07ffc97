package database

import (
	"database/sql"
	"regexp"
	"strconv"
)

// Dialect defines the interface for database-specific behavior.
type Dialect interface {
	// DriverName returns the driver name for sql.Open.
	DriverName() string

	// DSN returns the data source name for the connection.
	DSN(config DialectConfig) string

	// RewriteQuery converts placeholder syntax if needed (e.g. ? to $1 for postgres).
	RewriteQuery(query string) string

	// SupportsLastInsertId returns true if the driver supports LastInsertId().
	SupportsLastInsertId() bool

	// ConfigureConnection applies database-specific connection settings.
	ConfigureConnection(db *sql.DB) error

	// MigrationsSubdir returns the per-dialect migrations directory name.
	MigrationsSubdir() string

	// CreateMigrationsTableQuery returns the SQL for the migrations tracking table.
	CreateMigrationsTableQuery() string

	// UpsertSetting returns the insert-or-update statement for the settings
	// table, taking key and value placeholders in that order.
	UpsertSetting() string

	// SyncSequenceQuery returns the statement that realigns a table's id
	// generator after rows with explicit ids were inserted, or empty when
	// the dialect keeps its counter current on its own.
	SyncSequenceQuery(table string) string
}

// DialectConfig holds connection parameters.
type DialectConfig struct {
	// Path is the database file for SQLite.
	Path string

	// URL is the connection string for PostgreSQL/MySQL.
	URL string
}

var placeholderRegexp = regexp.MustCompile(`\?`)

// rewritePlaceholdersToNumbered converts ? placeholders to $1, $2, etc.
func rewritePlaceholdersToNumbered(query string) string {
	counter := 0
	return placeholderRegexp.ReplaceAllStringFunc(query, func(string) string {
		counter++
		return "$" + strconv.Itoa(counter)
	})
}
