package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

const (
	statementTimeoutDefaultMS = 30000
	statementTimeoutMaxMS     = 3_600_000

	// DefaultQueryTimeout bounds individual non-transactional queries so a
	// stuck statement cannot hold a pool connection indefinitely.
	DefaultQueryTimeout = 30 * time.Second

	// LongQueryTimeout bounds heavier operations such as migrations.
	LongQueryTimeout = 5 * time.Minute
)

// withTimeout returns a child context that will be cancelled after d.
// Callers must defer the returned CancelFunc.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, d)
}

type DB struct {
	*sql.DB
}

type Config struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	// StatementTimeoutMS is applied server-side to every connection in the
	// pool. Zero selects the default; negative disables the timeout.
	StatementTimeoutMS int
}

func New(cfg Config) (*DB, error) {
	timeoutMS := cfg.StatementTimeoutMS
	if timeoutMS == 0 {
		timeoutMS = statementTimeoutDefaultMS
	}
	if timeoutMS > statementTimeoutMaxMS {
		return nil, fmt.Errorf("statement timeout %dms exceeds maximum %dms", timeoutMS, statementTimeoutMaxMS)
	}

	connURL := cfg.URL
	if timeoutMS > 0 {
		connURL = appendStatementTimeout(connURL, timeoutMS)
	}

	db, err := sql.Open("postgres", connURL)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	} else {
		db.SetConnMaxIdleTime(2 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return &DB{db}, nil
}

// appendStatementTimeout appends statement_timeout to the connection URL so
// it applies to every connection in the pool, not just one session.
func appendStatementTimeout(url string, timeoutMS int) string {
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "options=-c%20statement_timeout%3D" + strconv.Itoa(timeoutMS)
}

func (db *DB) Close() error {
	return db.DB.Close()
}

// RunMigrations reads *.up.sql files from dir and executes them in sorted
// order. Applied versions are tracked in schema_migrations so each migration
// runs at most once.
func (db *DB) RunMigrations(dir string) error {
	if _, err := db.ExecContext(context.Background(), `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		return fmt.Errorf("glob migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		if err := db.applyMigration(f); err != nil {
			return err
		}
	}
	return nil
}

func (db *DB) applyMigration(path string) error {
	version := filepath.Base(path)

	var applied bool
	if err := db.QueryRowContext(context.Background(),
		"SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)", version,
	).Scan(&applied); err != nil {
		return fmt.Errorf("check migration %s: %w", version, err)
	}
	if applied {
		return nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", version, err)
	}

	slog.Info("migration starting", "version", version)
	start := time.Now()

	ctx, cancel := withTimeout(context.Background(), LongQueryTimeout)
	defer cancel()

	// lock_timeout keeps a migration from waiting indefinitely behind DDL locks.
	if _, err := db.ExecContext(ctx, "SET lock_timeout = '10s'"); err != nil {
		return fmt.Errorf("set lock_timeout for migration %s: %w", version, err)
	}
	if _, err := db.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("exec migration %s: %w", version, err)
	}

	if _, err := db.ExecContext(context.Background(),
		"INSERT INTO schema_migrations (version) VALUES ($1)", version,
	); err != nil {
		return fmt.Errorf("record migration %s: %w", version, err)
	}

	slog.Info("migration completed", "version", version, "elapsed", time.Since(start).String())
	return nil
}
