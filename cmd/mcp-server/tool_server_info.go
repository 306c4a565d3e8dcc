package main

import (
	"context"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
)

var serverInfoToolDef = mcp.NewTool("server_info",
	mcp.WithDescription("Get backend status: Earth Engine project and auth state, resolution cache availability, and analytics log counts (diagnostic tool)."),
	mcp.WithReadOnlyHintAnnotation(true),
)

func handleServerInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	info := map[string]any{
		"earth_engine": map[string]any{
			"initialized": eeAvailable(),
			"project":     os.Getenv("EE_PROJECT"),
		},
		"boundary_datasets": len(boundaryDatasets),
		"catalog_datasets":  len(datasetCatalog),
	}

	cache := map[string]any{"enabled": dbAvailable()}
	if dbAvailable() {
		var cached int64
		if err := db.QueryRow(ctx, "SELECT count(*) FROM resolved_places").Scan(&cached); err == nil {
			cache["cached_places"] = cached
		}
	}
	info["resolution_cache"] = cache

	analytics := map[string]any{"enabled": duckDB != nil}
	if duckDB != nil {
		var calls int64
		if err := duckDB.QueryRowContext(ctx, "SELECT count(*) FROM mcp_query_log").Scan(&calls); err == nil {
			analytics["logged_calls"] = calls
		}
	}
	info["analytics"] = analytics

	return jsonResult(info)
}
