package main

import (
	"net/http"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// handleInfo handles GET /api/info/{topic}
//
// @Summary     Get Earth Engine reference information
// @Description Returns static reference content about the dataset catalog, spectral indices, boundary resolution, sensor resolutions, cloud filtering, and export limits.
// @Tags        reference
// @Produce     json
// @Param       topic path string true "Topic to retrieve" Enums(datasets, indices, boundaries, resolutions, cloud_filtering, exports)
// @Success     200 {object} map[string]interface{} "Reference content for the requested topic"
// @Failure     400 {object} map[string]string "Invalid or missing topic"
// @Router      /info/{topic} [get]
func (h *RESTHandler) handleInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	// Extract topic from path: /api/info/{topic}
	topic := strings.TrimPrefix(r.URL.Path, "/api/info/")
	if topic == "" {
		writeError(w, http.StatusBadRequest, "topic is required. Valid topics: datasets, indices, boundaries, resolutions, cloud_filtering, exports")
		return
	}

	// Construct a minimal MCP request and reuse the existing handler.
	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"topic": topic}
	result, err := handleEEInfo(r.Context(), req)
	serveMCPResult(w, result, err)
}

// handleHealth handles GET /api/health
//
// @Summary     Service health
// @Description Reports Earth Engine auth state and backend availability.
// @Tags        reference
// @Produce     json
// @Success     200 {object} map[string]interface{} "Backend status"
// @Router      /health [get]
func (h *RESTHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"earth_engine": eeAvailable(),
		"cache":        dbAvailable(),
		"analytics":    duckDB != nil,
	})
}
