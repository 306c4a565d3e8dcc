package main

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

var resolveLocationToolDef = mcp.NewTool("resolve_location",
	mcp.WithDescription("Resolve a place name to an administrative boundary (country, state/province, city/district, or US county/state) and return its geometry with derived metrics: area, perimeter, bounding box, and centroid. Handles plain names ('Tokyo'), context-qualified names ('Paris, France'), and suffixed names ('Los Angeles County'). Use this before imagery tools to confirm the region a place name maps to."),
	mcp.WithString("place",
		mcp.Description("Place name to resolve. Add context after a comma to disambiguate, e.g. 'Springfield, Illinois'."),
		mcp.Required(),
	),
	mcp.WithBoolean("include_geometry",
		mcp.Description("Include the full boundary GeoJSON in the response (can be large). Default: false."),
	),
	mcp.WithReadOnlyHintAnnotation(true),
)

func handleResolveLocation(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	place, err := req.RequireString("place")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !eeAvailable() {
		return mcp.NewToolResultError("Earth Engine client not initialized; check EE_PROJECT and EE_SERVICE_ACCOUNT_KEY"), nil
	}

	rb, err := resolvePlace(ctx, place)
	if err != nil {
		return notFoundResult(err), nil
	}

	shaped, err := shapeBoundary(ctx, ee, rb)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := map[string]any{
		"place":        place,
		"dataset":      shaped["dataset"],
		"level":        shaped["level"],
		"area_km2":     shaped["area_km2"],
		"perimeter_km": shaped["perimeter_km"],
		"bounding_box": shaped["bounding_box"],
		"centroid":     shaped["centroid"],
	}
	if req.GetBool("include_geometry", false) {
		result["geometry"] = json.RawMessage(rb.Geometry.GeoJSON)
	}

	return jsonResult(result)
}
