package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"quote-service/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

//go:embed schema.sql
var schemaSQL string

var DBStatus atomic.Bool

func connString(cfg config.PostgresConfig, dbname string) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.Username, cfg.Password, dbname)
}

// ConnectAndCreateDB creates the configured database when it is missing,
// connects to it and applies the schema.
func ConnectAndCreateDB(cfg config.PostgresConfig) (*sqlx.DB, error) {
	slog.Info("Connecting to PostgreSQL", "host", cfg.Host, "port", cfg.Port, "user", cfg.Username, "dbname", cfg.DBname)

	defaultDB, err := sql.Open("postgres", connString(cfg, "postgres"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to default postgres db: %w", err)
	}
	defer defaultDB.Close()

	var exists bool
	checkQuery := `SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)`
	if err := defaultDB.QueryRow(checkQuery, cfg.DBname).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check if database exists: %w", err)
	}

	if !exists {
		createQuery := fmt.Sprintf(`CREATE DATABASE "%s"`, cfg.DBname)
		if _, err := defaultDB.Exec(createQuery); err != nil {
			return nil, fmt.Errorf("failed to create database %s: %w", cfg.DBname, err)
		}
		slog.Info("Database created", "dbname", cfg.DBname)
	}

	db, err := sqlx.Connect("postgres", connString(cfg, cfg.DBname))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to target database: %w", err)
	}

	if err := executeSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	DBStatus.Store(true)
	return db, nil
}

// executeSchema runs schema.sql statement by statement.
func executeSchema(db *sqlx.DB) error {
	successCount := 0
	for i, statement := range splitStatements(schemaSQL) {
		if _, err := db.Exec(statement); err != nil {
			return fmt.Errorf("failed to execute schema statement %d: %w", i+1, err)
		}
		successCount++
	}
	slog.Info("Schema execution completed", "statements", successCount)
	return nil
}

func splitStatements(schema string) []string {
	var out []string
	for _, statement := range strings.Split(schema, ";") {
		var lines []string
		for _, line := range strings.Split(statement, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "--") {
				continue
			}
			lines = append(lines, line)
		}
		statement = strings.TrimSpace(strings.Join(lines, "\n"))
		if statement != "" {
			out = append(out, statement)
		}
	}
	return out
}

// RetryConnectOnFailed keeps reconnecting every wait until it succeeds or
// ctx is done. onConnect receives the new handle.
func RetryConnectOnFailed(ctx context.Context, wait time.Duration, cfg config.PostgresConfig, onConnect func(*sqlx.DB)) {
	ticker := time.NewTicker(wait)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		db, err := ConnectAndCreateDB(cfg)
		if err != nil {
			slog.Warn("failed to retry connect database", "error", err, "next_retry", wait)
			continue
		}
		slog.Info("database retry connection successfully")
		onConnect(db)
		return
	}
}
