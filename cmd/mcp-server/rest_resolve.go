package main

import (
	"net/http"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// handleResolve handles GET /api/resolve/{place}
//
// @Summary     Resolve a place name to an administrative boundary
// @Description Resolves a free-text place name (optionally comma-qualified, e.g. "Paris, France") against GAUL and TIGER boundary datasets and returns the matched level with area, perimeter, bounding box, and centroid. Append ?geometry=true for the full boundary GeoJSON.
// @Tags        boundaries
// @Produce     json
// @Param       place path string true "Place name, e.g. Tokyo or Los Angeles County"
// @Param       geometry query boolean false "Include full boundary GeoJSON"
// @Success     200 {object} map[string]interface{} "Resolved boundary with derived metrics"
// @Failure     400 {object} map[string]string "Place not found in any boundary dataset"
// @Router      /resolve/{place} [get]
func (h *RESTHandler) handleResolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	place := strings.TrimPrefix(r.URL.Path, "/api/resolve/")
	if place == "" {
		writeError(w, http.StatusBadRequest, "place is required, e.g. /api/resolve/Tokyo")
		return
	}

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{
		"place":            place,
		"include_geometry": r.URL.Query().Get("geometry") == "true",
	}
	result, err := handleResolveLocation(r.Context(), req)
	serveMCPResult(w, result, err)
}
