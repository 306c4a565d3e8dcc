package main

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

var geometryInfoToolDef = mcp.NewTool("geometry_info",
	mcp.WithDescription("Compute geometric metrics (area, perimeter, bounding box, centroid) for a region given as a place name or bounding box, without touching any imagery. Useful for sizing a region before a composite or export."),
	mcp.WithString("place",
		mcp.Description("Region as a place name"),
	),
	mcp.WithNumber("west", mcp.Description("Western boundary longitude (alternative to place)"), mcp.Min(-180), mcp.Max(180)),
	mcp.WithNumber("south", mcp.Description("Southern boundary latitude"), mcp.Min(-90), mcp.Max(90)),
	mcp.WithNumber("east", mcp.Description("Eastern boundary longitude"), mcp.Min(-180), mcp.Max(180)),
	mcp.WithNumber("north", mcp.Description("Northern boundary latitude"), mcp.Min(-90), mcp.Max(90)),
	mcp.WithReadOnlyHintAnnotation(true),
)

func handleGeometryInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !eeAvailable() {
		return mcp.NewToolResultError("Earth Engine client not initialized; check EE_PROJECT and EE_SERVICE_ACCOUNT_KEY"), nil
	}

	spec := regionFromRequest(req)
	if spec.empty() {
		return mcp.NewToolResultError("region is required: provide a place name or west/south/east/north bounds"), nil
	}

	var rb *ResolvedBoundary
	if spec.Place != "" {
		resolved, err := resolvePlace(ctx, spec.Place)
		if err != nil {
			return notFoundResult(err), nil
		}
		rb = resolved
	} else {
		geom, desc, err := spec.resolve(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		rb = &ResolvedBoundary{Geometry: geom, DatasetID: "user-defined", Level: desc}
	}

	shaped, err := shapeBoundary(ctx, ee, rb)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(shaped)
}
