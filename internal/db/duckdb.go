// Package db keeps the loaded roster in DuckDB for ad-hoc SQL queries.
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/joeblew999/colegis/internal/legis"
	"github.com/joeblew999/colegis/internal/style"
)

var (
	instance *sql.DB
	once     sync.Once
	initErr  error
)

// Config holds database configuration.
type Config struct {
	DataDir string
	DBName  string
}

// Get returns the singleton DuckDB connection.
func Get(cfg Config) (*sql.DB, error) {
	once.Do(func() {
		instance, initErr = Open(cfg)
	})
	return instance, initErr
}

// Open opens a DuckDB database under DataDir/duckdb. An empty DataDir opens
// an in-memory database.
func Open(cfg Config) (*sql.DB, error) {
	dsn := ""
	if cfg.DataDir != "" {
		duckdbDir := filepath.Join(cfg.DataDir, "duckdb")
		if err := os.MkdirAll(duckdbDir, 0755); err != nil {
			return nil, eris.Wrap(err, "db: create duckdb directory")
		}
		dsn = filepath.Join(duckdbDir, cfg.DBName+".duckdb")
	}

	conn, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "db: open duckdb")
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, eris.Wrap(err, "db: ping duckdb")
	}
	return conn, nil
}

// Close closes the database connection.
func Close() error {
	if instance != nil {
		return instance.Close()
	}
	return nil
}

const createLegislators = `CREATE OR REPLACE TABLE legislators (
	district     VARCHAR,
	chamber      VARCHAR,
	name         VARCHAR,
	display_name VARCHAR,
	party        VARCHAR,
	color        VARCHAR,
	link         VARCHAR,
	counties     VARCHAR,
	committees   VARCHAR
)`

// LoadLegislators replaces the legislators table with records. Counties are
// stored "; "-joined and committees as a JSON array.
func LoadLegislators(ctx context.Context, conn *sql.DB, records []legis.Record) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "db: begin")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, createLegislators); err != nil {
		return eris.Wrap(err, "db: create legislators")
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO legislators VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return eris.Wrap(err, "db: prepare insert")
	}
	defer stmt.Close()

	for _, r := range records {
		committees, err := json.Marshal(r.Committees)
		if err != nil {
			return eris.Wrap(err, "db: encode committees")
		}
		if _, err := stmt.ExecContext(ctx,
			legis.Key(r.District),
			string(r.Chamber),
			r.Name,
			style.DisplayName(r.Name),
			r.Party,
			style.ColorFor(r.Party),
			r.Link,
			strings.Join(r.Counties, "; "),
			string(committees),
		); err != nil {
			return eris.Wrapf(err, "db: insert %s district %s", r.Chamber, r.District)
		}
	}

	if err := tx.Commit(); err != nil {
		return eris.Wrap(err, "db: commit")
	}
	zap.L().Debug("legislators table loaded", zap.Int("rows", len(records)))
	return nil
}
