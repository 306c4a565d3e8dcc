package main

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// Tool Definitions

var usageStatsToolDef = mcp.NewTool("usage_stats",
	mcp.WithDescription("Get usage statistics for MCP tools (call counts, duration). Powered by DuckDB local logs."),
	mcp.WithReadOnlyHintAnnotation(true),
)

var resolutionStatsToolDef = mcp.NewTool("resolution_stats",
	mcp.WithDescription("Get aggregate statistics over cached place resolutions: how many places resolved per boundary dataset and administrative level. Powered by DuckDB with the Postgres cache attached."),
	mcp.WithReadOnlyHintAnnotation(true),
)

// Handlers

func handleUsageStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if duckDB == nil {
		return mcp.NewToolResultError("DuckDB analytics engine is not initialized"), nil
	}

	rows, err := duckDB.QueryContext(ctx, `
		SELECT tool_name, COUNT(*) as count,
               AVG(duration_ms) as avg_ms,
               MAX(duration_ms) as max_ms
		FROM mcp_query_log
		GROUP BY tool_name
		ORDER BY count DESC
	`)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Query failed: %v", err)), nil
	}
	defer rows.Close()

	var stats []map[string]any
	for rows.Next() {
		var tool string
		var count int64
		var avgMs, maxMs float64
		if err := rows.Scan(&tool, &count, &avgMs, &maxMs); err != nil {
			continue
		}
		stats = append(stats, map[string]any{
			"tool":   tool,
			"calls":  count,
			"avg_ms": avgMs,
			"max_ms": maxMs,
		})
	}

	return jsonResult(map[string]any{
		"stats":  stats,
		"source": "duckdb_local_log",
	})
}

func handleResolutionStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if duckDB == nil {
		return mcp.NewToolResultError("DuckDB analytics engine is not initialized"), nil
	}
	if !dbAvailable() {
		return mcp.NewToolResultError("Resolution cache is not configured (DATABASE_URL unset)"), nil
	}

	// 'postgres_db' is the name the cache is attached as in duckdb_client.go.
	rows, err := duckDB.QueryContext(ctx, `
		SELECT dataset_id, level, COUNT(*) AS count
		FROM postgres_db.public.resolved_places
		GROUP BY dataset_id, level
		ORDER BY count DESC
	`)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Query failed: %v", err)), nil
	}
	defer rows.Close()

	var stats []map[string]any
	for rows.Next() {
		var datasetID, level string
		var count int64
		if err := rows.Scan(&datasetID, &level, &count); err != nil {
			continue
		}
		stats = append(stats, map[string]any{
			"dataset": datasetID,
			"level":   level,
			"places":  count,
		})
	}

	return jsonResult(map[string]any{
		"stats":  stats,
		"source": "duckdb_postgres_attach",
	})
}
