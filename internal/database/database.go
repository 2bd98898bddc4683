package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite3 "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/lib/pq"           // Registers the "postgres" driver.
	"github.com/mattn/go-sqlite3" // Registers the "sqlite3" driver.

	"polychat/backend/internal/config"
)

//go:embed migrations
var migrationsFS embed.FS

// Dialect captures the few SQL differences between the supported drivers.
type Dialect string

const (
	SQLite   Dialect = config.DriverSQLite
	Postgres Dialect = config.DriverPostgres
)

// Rebind rewrites '?' placeholders into the driver's native form.
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// LockSuffix returns the clause that row-locks a SELECT inside a transaction.
// SQLite connections are opened with immediate transactions, which already
// hold the write lock.
func (d Dialect) LockSuffix() string {
	if d == Postgres {
		return " FOR UPDATE"
	}
	return ""
}

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err was caused by a UNIQUE or primary key
// constraint.
func (d Dialect) IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}
	return false
}

// InitDB connects to the configured database and runs migrations.
func InitDB(driver, dataSourceName string) (*sql.DB, Dialect, error) {
	db, dialect, err := Open(driver, dataSourceName)
	if err != nil {
		return nil, "", err
	}
	if err := Migrate(db, dialect, true); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, dialect, nil
}

// Open connects to the database without touching the schema.
func Open(driver, dataSourceName string) (*sql.DB, Dialect, error) {
	dialect, dsn, err := prepare(driver, dataSourceName)
	if err != nil {
		return nil, "", err
	}

	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("failed to connect to database: %w", err)
	}

	if dialect == SQLite {
		// Readers do not block the single writer in WAL mode.
		if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			slog.Warn("Failed to enable WAL mode for SQLite, continuing without it.", "error", err)
		}
	}

	return db, dialect, nil
}

func prepare(driver, dataSourceName string) (Dialect, string, error) {
	switch Dialect(driver) {
	case SQLite:
		if !strings.HasPrefix(dataSourceName, "file::memory:") && dataSourceName != ":memory:" {
			path := strings.TrimPrefix(strings.SplitN(dataSourceName, "?", 2)[0], "file:")
			if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
				return "", "", fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		return SQLite, sqliteDSN(dataSourceName), nil
	case Postgres:
		return Postgres, dataSourceName, nil
	default:
		return "", "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// sqliteDSN enables foreign keys and makes every transaction take the write
// lock on BEGIN so read-then-write sequences cannot interleave.
func sqliteDSN(dsn string) string {
	params := []string{"_foreign_keys=on", "_txlock=immediate", "_busy_timeout=5000"}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	var missing []string
	for _, p := range params {
		key := strings.SplitN(p, "=", 2)[0]
		if !strings.Contains(dsn, key+"=") {
			missing = append(missing, p)
		}
	}
	if len(missing) == 0 {
		return dsn
	}
	return dsn + sep + strings.Join(missing, "&")
}

// Migrate applies (up) or reverts (down) every embedded migration.
// The migrate instance is never closed because that would close db.
func Migrate(db *sql.DB, dialect Dialect, up bool) error {
	src, err := iofs.New(migrationsFS, "migrations/"+string(dialect))
	if err != nil {
		return fmt.Errorf("could not load migrations: %w", err)
	}
	defer func() { _ = src.Close() }()

	var driver migratedb.Driver
	switch dialect {
	case SQLite:
		driver, err = migratesqlite3.WithInstance(db, &migratesqlite3.Config{})
	case Postgres:
		driver, err = postgres.WithInstance(db, &postgres.Config{})
	default:
		err = fmt.Errorf("unsupported dialect %q", dialect)
	}
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, string(dialect), driver)
	if err != nil {
		return fmt.Errorf("could not create migrator: %w", err)
	}

	if up {
		err = m.Up()
	} else {
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	version, dirty, verr := m.Version()
	if verr == nil {
		slog.Info("Database schema is current", "version", version, "dirty", dirty)
	}
	return nil
}
