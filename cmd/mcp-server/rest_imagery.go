package main

import (
	"net/http"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
)

// handleIndex handles GET /api/index
//
// @Summary     Compute a spectral index over a region
// @Description Computes the regional mean of a normalized-difference index (NDVI, NDWI, MNDWI, NDBI, NBR, NDSI) from a cloud-filtered median composite.
// @Tags        imagery
// @Produce     json
// @Param       index query string true "Index name" Enums(NDVI, NDWI, MNDWI, NDBI, NBR, NDSI)
// @Param       place query string true "Region as a place name"
// @Param       start query string true "Start date YYYY-MM-DD"
// @Param       end query string true "End date YYYY-MM-DD"
// @Param       dataset query string false "Source collection (default COPERNICUS/S2_SR_HARMONIZED)"
// @Param       max_cloud query number false "Maximum scene cloud cover percentage (default 20)"
// @Success     200 {object} map[string]interface{} "Index statistics"
// @Failure     400 {object} map[string]string "Invalid parameters or place not found"
// @Router      /index [get]
func (h *RESTHandler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()
	args := map[string]any{
		"index":      q.Get("index"),
		"place":      q.Get("place"),
		"start_date": q.Get("start"),
		"end_date":   q.Get("end"),
	}
	if v := q.Get("dataset"); v != "" {
		args["dataset"] = v
	}
	if v := q.Get("max_cloud"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			args["max_cloud"] = f
		}
	}

	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	result, err := handleSpectralIndex(r.Context(), req)
	serveMCPResult(w, result, err)
}

// handleComposite handles GET /api/composite
//
// @Summary     Render a cloud-free composite thumbnail
// @Description Builds a composite of an image collection over a region and date range and returns a rendered thumbnail URL.
// @Tags        imagery
// @Produce     json
// @Param       place query string true "Region as a place name"
// @Param       start query string true "Start date YYYY-MM-DD"
// @Param       end query string true "End date YYYY-MM-DD"
// @Param       dataset query string false "Image collection id (default COPERNICUS/S2_SR_HARMONIZED)"
// @Param       method query string false "Compositing method" Enums(median, mean, min, max, mosaic)
// @Success     200 {object} map[string]interface{} "Composite metadata with thumbnail URL"
// @Failure     400 {object} map[string]string "Invalid parameters or place not found"
// @Router      /composite [get]
func (h *RESTHandler) handleComposite(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()
	args := map[string]any{
		"place":      q.Get("place"),
		"start_date": q.Get("start"),
		"end_date":   q.Get("end"),
	}
	if v := q.Get("dataset"); v != "" {
		args["dataset"] = v
	}
	if v := q.Get("method"); v != "" {
		args["method"] = v
	}

	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	result, err := handleComposite(r.Context(), req)
	serveMCPResult(w, result, err)
}
