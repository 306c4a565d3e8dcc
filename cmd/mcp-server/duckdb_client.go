package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/marcboeker/go-duckdb"
)

var duckDB *sql.DB

func initDuckDB() error {

	duckPath := os.Getenv("DUCKDB_PATH")
	if duckPath == "" {
		duckPath = "./analytics.duckdb"
	}

	dsn := duckPath + "?access_mode=READ_WRITE"

	var err error
	duckDB, err = sql.Open("duckdb", dsn)
	if err != nil {
		return fmt.Errorf("failed to open duckdb: %w", err)
	}

	// DuckDB works best with a single writer.
	duckDB.SetMaxOpenConns(1)
	duckDB.SetMaxIdleConns(1)
	duckDB.SetConnMaxLifetime(0)

	if err := duckDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping duckdb: %w", err)
	}

	log.Printf("DuckDB initialized at %s", duckPath)

	duckDB.Exec("PRAGMA wal_autocheckpoint=1000;")

	// Attach the resolution cache read-only so analytics queries can join
	// tool calls against cached place resolutions.
	if pgURL := os.Getenv("DATABASE_URL"); pgURL != "" {
		if _, err := duckDB.Exec("INSTALL postgres;"); err != nil {
			log.Printf("Warning: postgres extension install failed: %v", err)
		}
		if _, err := duckDB.Exec("LOAD postgres;"); err != nil {
			log.Printf("Warning: postgres extension load failed: %v", err)
		}
		attach := fmt.Sprintf("ATTACH '%s' AS postgres_db (TYPE POSTGRES, READ_ONLY)", pgURL)
		if _, err := duckDB.Exec(attach); err != nil {
			log.Printf("Warning: failed to attach postgres: %v", err)
		} else {
			log.Println("PostgreSQL attached as postgres_db")
		}
	}

	createSchemaQuery := `
	CREATE SEQUENCE IF NOT EXISTS seq_query_log;
	CREATE TABLE IF NOT EXISTS mcp_query_log (
		id            BIGINT DEFAULT nextval('seq_query_log'),
		tool_name     VARCHAR,
		params        JSON,
		result_count  INTEGER,
		duration_ms   DOUBLE,
		client_info   VARCHAR,
		created_at    TIMESTAMPTZ DEFAULT now()
	);
	CREATE TABLE IF NOT EXISTS mcp_session_log (
		session_id  TEXT,
		timestamp   TIMESTAMP,
		tool_name   TEXT,
		place_name  TEXT,
		duration_ms BIGINT,
		commit_hash TEXT,
		error       TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_query_log_tool ON mcp_query_log(tool_name);
	CREATE INDEX IF NOT EXISTS idx_session_tool ON mcp_session_log(tool_name);
	CREATE INDEX IF NOT EXISTS idx_session_time ON mcp_session_log(timestamp);
	`
	if _, err := duckDB.Exec(createSchemaQuery); err != nil {
		return fmt.Errorf("failed to create audit log schema: %w", err)
	}

	log.Println("DuckDB schema ready")

	return nil
}

// LogQueryAsync logs a tool execution to DuckDB asynchronously.
func LogQueryAsync(toolName string, params map[string]any, resultCount int, duration time.Duration, clientInfo string) {
	if duckDB == nil {
		return
	}

	go func() {
		paramsJSON, err := json.Marshal(params)
		if err != nil {
			log.Printf("Error marshaling params to JSON: %v", err)
			return
		}

		_, execErr := duckDB.Exec(`
			INSERT INTO mcp_query_log (tool_name, params, result_count, duration_ms, client_info)
			VALUES (?, ?, ?, ?, ?)
		`, toolName, string(paramsJSON), resultCount, float64(duration.Milliseconds()), clientInfo)

		if execErr != nil {
			log.Printf("Error logging query to DuckDB: %v", execErr)
		}
	}()
}
