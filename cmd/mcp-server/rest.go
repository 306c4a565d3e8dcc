// Package main provides the Earth Engine MCP server with an optional REST API layer.
//
// @title           Earth Engine MCP API
// @version         1.0
// @description     REST access to the Earth Engine MCP toolset — place-name boundary resolution, dataset catalog search, spectral indices, and cloud-free composites over Google Earth Engine. Authentication to Earth Engine happens server-side with a service account.
// @contact.name    Axion Orbital
// @license.name    Apache 2.0
// @license.url     https://www.apache.org/licenses/LICENSE-2.0
// @BasePath        /api
// @schemes         https http
//
// @tag.name        boundaries
// @tag.description Place-name to administrative-boundary resolution
// @tag.name        catalog
// @tag.description Curated Earth Engine dataset catalog
// @tag.name        imagery
// @tag.description Spectral indices and composites
// @tag.name        reference
// @tag.description Static reference information and health
package main

import (
	"encoding/json"
	"io"
	"net/http"

	_ "github.com/axion-orbital/earth-engine-mcp/cmd/mcp-server/docs"
	"github.com/mark3labs/mcp-go/mcp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// RESTHandler wires all REST API routes onto a mux.
type RESTHandler struct{}

// Register attaches all /api/* routes and the /docs/ Swagger UI to mux.
func (h *RESTHandler) Register(mux *http.ServeMux) {
	// Boundary resolution
	mux.HandleFunc("/api/resolve/", h.handleResolve) // /api/resolve/{place}

	// Catalog
	mux.HandleFunc("/api/datasets", h.handleDatasets)

	// Imagery
	mux.HandleFunc("/api/index", h.handleIndex)
	mux.HandleFunc("/api/composite", h.handleComposite)

	// Reference / health
	mux.HandleFunc("/api/info/", h.handleInfo) // /api/info/{topic}
	mux.HandleFunc("/api/health", h.handleHealth)

	// Swagger UI
	mux.Handle("/docs/", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))
}

// writeJSON writes v as a JSON response with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	_ = jsonEncode(w, v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// jsonEncode writes v as JSON to w.
func jsonEncode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// serveMCPResult pipes an MCP tool result directly to an HTTP response.
// The tool functions already produce indented JSON, so the text content is
// written straight through. Tool errors become HTTP 400 responses.
func serveMCPResult(w http.ResponseWriter, result *mcp.CallToolResult, err error) {
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if result == nil || len(result.Content) == 0 {
		writeError(w, http.StatusInternalServerError, "empty result")
		return
	}
	// Extract the text payload. Content is an interface; use AsTextContent to unwrap it.
	text := ""
	for _, c := range result.Content {
		if tc, ok := mcp.AsTextContent(c); ok && tc.Text != "" {
			text = tc.Text
			break
		}
	}
	if result.IsError {
		writeError(w, http.StatusBadRequest, text)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, text)
}
