package main

import (
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
)

// handleDatasets handles GET /api/datasets
//
// @Summary     Search the dataset catalog
// @Description Searches the curated Earth Engine dataset catalog by keyword. Without a keyword, returns the full catalog.
// @Tags        catalog
// @Produce     json
// @Param       q query string false "Keyword matched against id, name, description, provider, and tags"
// @Param       type query string false "Filter by dataset type" Enums(image_collection, image, table)
// @Success     200 {object} map[string]interface{} "Matching datasets"
// @Router      /datasets [get]
func (h *RESTHandler) handleDatasets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{
		"keyword": r.URL.Query().Get("q"),
		"type":    r.URL.Query().Get("type"),
	}
	result, err := handleSearchDatasets(r.Context(), req)
	serveMCPResult(w, result, err)
}
