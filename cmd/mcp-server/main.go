package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var resolver *locationResolver

func main() {

	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	// Create MCP server
	mcpServer := server.NewMCPServer(
		"earth-engine-mcp",
		"1.0.0",
	)

	// Authenticate against Earth Engine
	if err := initEarthEngine(context.Background()); err != nil {
		log.Printf("Warning: Earth Engine initialization failed: %v (imagery and boundary tools disabled)", err)
	} else {
		log.Printf("Earth Engine client ready for project %s", os.Getenv("EE_PROJECT"))
		resolver = newLocationResolver(ee)
	}

	// Optional Postgres resolution cache
	if os.Getenv("DATABASE_URL") != "" {
		if err := initDB(); err != nil {
			log.Printf("Warning: resolution cache unavailable: %v (resolving without cache)", err)
		} else {
			log.Println("Connected to PostgreSQL resolution cache")
		}
	} else {
		log.Println("No DATABASE_URL set, resolving without cache")
	}

	// DuckDB analytics
	if err := initDuckDB(); err != nil {
		log.Printf("Warning: failed to initialize DuckDB: %v (analytics features disabled)", err)
	} else {
		log.Println("Initialized DuckDB analytics engine")
	}

	// Register tools
	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check tool"),
		),
		instrument("ping", pingHandler),
	)

	mcpServer.AddTool(resolveLocationToolDef, instrument("resolve_location", handleResolveLocation))
	mcpServer.AddTool(geometryInfoToolDef, instrument("geometry_info", handleGeometryInfo))
	mcpServer.AddTool(searchDatasetsToolDef, instrument("search_datasets", handleSearchDatasets))
	mcpServer.AddTool(datasetInfoToolDef, instrument("dataset_info", handleDatasetInfo))
	mcpServer.AddTool(filterCollectionToolDef, instrument("filter_collection", handleFilterCollection))
	mcpServer.AddTool(spectralIndexToolDef, instrument("spectral_index", handleSpectralIndex))
	mcpServer.AddTool(compositeToolDef, instrument("composite", handleComposite))
	mcpServer.AddTool(thumbnailToolDef, instrument("thumbnail", handleThumbnail))
	mcpServer.AddTool(exportImageToolDef, instrument("export_image", handleExportImage))
	mcpServer.AddTool(exportStatusToolDef, instrument("export_status", handleExportStatus))
	mcpServer.AddTool(eeInfoToolDef, instrument("earth_engine_info", handleEEInfo))
	mcpServer.AddTool(serverInfoToolDef, instrument("server_info", handleServerInfo))
	mcpServer.AddTool(queryLogsToolDef, instrument("query_tool_logs", handleQueryLogs))
	mcpServer.AddTool(usageStatsToolDef, instrument("usage_stats", handleUsageStats))
	mcpServer.AddTool(resolutionStatsToolDef, instrument("resolution_stats", handleResolutionStats))

	// 🚨 TRANSPORT SWITCH
	if os.Getenv("MCP_TRANSPORT") == "stdio" {

		log.Println("Starting MCP server in stdio mode (Claude Desktop)")

		stdioServer := server.NewStdioServer(mcpServer)

		err := stdioServer.Listen(
			context.Background(),
			os.Stdin,
			os.Stdout,
		)

		if err != nil {
			log.Fatal(err)
		}

		return
	}

	// Default: HTTP mode (production)

	baseURL := os.Getenv("MCP_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3333"
	}

	sseServer := server.NewSSEServer(mcpServer,
		server.WithBaseURL(baseURL),
		server.WithStaticBasePath("/mcp"),
	)

	httpServer := server.NewStreamableHTTPServer(mcpServer,
		server.WithEndpointPath("/mcp-http"),
	)

	mux := http.NewServeMux()
	mux.Handle("/mcp-http", httpServer)
	mux.Handle("/mcp/", sseServer) // SSE server handles /mcp/sse and /mcp/message

	restHandler := &RESTHandler{}
	restHandler.Register(mux)

	port := os.Getenv("MCP_PORT")
	if port == "" {
		port = "3333"
	}

	listenAddr := ":" + port

	log.Printf("Starting MCP server on %s", listenAddr)
	log.Println("  SSE endpoint: /mcp/sse")
	log.Println("  Streamable HTTP endpoint: /mcp-http")
	log.Println("  REST API: /api/...")
	log.Println("  Swagger UI: /docs/")

	if err := http.ListenAndServe(listenAddr, mux); err != nil {
		log.Fatal(err)
	}
}

// pingHandler is the health check tool implementation.
func pingHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText("pong"), nil
}

func instrument(
	name string,
	h func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error),
) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {

	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {

		start := time.Now()

		args := map[string]any{}
		if req.Params.Arguments != nil {
			if argsMap, ok := req.Params.Arguments.(map[string]any); ok {
				args = argsMap
			}
		}

		// The place argument is the one input worth correlating across
		// tools; everything else stays in the params JSON.
		placeName := ""
		if v, ok := args["place"].(string); ok {
			placeName = v
		}

		// Execute tool
		res, err := h(ctx, req)

		duration := time.Since(start)

		resultCount := 0
		if res != nil {
			resultCount = len(res.Content)
		}

		LogQueryAsync(name, args, resultCount, duration, "claude-client")
		logToolSession(name, placeName, duration.Milliseconds(), err)

		return res, err
	}
}
