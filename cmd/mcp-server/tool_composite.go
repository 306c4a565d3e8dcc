package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

var compositeToolDef = mcp.NewTool("composite",
	mcp.WithDescription("Build a cloud-free composite of an image collection over a region and date range, and return a rendered thumbnail URL. Median is the standard choice for cloud-free results; mosaic takes the most recent pixel."),
	mcp.WithString("dataset",
		mcp.Description("Image collection id (default COPERNICUS/S2_SR_HARMONIZED)"),
	),
	mcp.WithString("method",
		mcp.Description("Compositing method (default median)"),
		mcp.Enum("median", "mean", "min", "max", "mosaic"),
	),
	mcp.WithString("place",
		mcp.Description("Region as a place name, e.g. 'Kenya' or 'Los Angeles County'"),
	),
	mcp.WithNumber("west", mcp.Description("Western boundary longitude (alternative to place)"), mcp.Min(-180), mcp.Max(180)),
	mcp.WithNumber("south", mcp.Description("Southern boundary latitude"), mcp.Min(-90), mcp.Max(90)),
	mcp.WithNumber("east", mcp.Description("Eastern boundary longitude"), mcp.Min(-180), mcp.Max(180)),
	mcp.WithNumber("north", mcp.Description("Northern boundary latitude"), mcp.Min(-90), mcp.Max(90)),
	mcp.WithString("start_date",
		mcp.Description("Start date, YYYY-MM-DD"),
		mcp.Required(),
	),
	mcp.WithString("end_date",
		mcp.Description("End date, YYYY-MM-DD"),
		mcp.Required(),
	),
	mcp.WithNumber("max_cloud",
		mcp.Description("Maximum scene cloud cover percentage (default 20)"),
		mcp.Min(0), mcp.Max(100),
		mcp.DefaultNumber(20),
	),
	mcp.WithNumber("width",
		mcp.Description("Thumbnail width in pixels (default 512)"),
		mcp.Min(64), mcp.Max(2048),
		mcp.DefaultNumber(512),
	),
	mcp.WithReadOnlyHintAnnotation(true),
)

func handleComposite(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	startDate, err := req.RequireString("start_date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	endDate, err := req.RequireString("end_date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := validateDateRange(startDate, endDate); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dataset := req.GetString("dataset", "COPERNICUS/S2_SR_HARMONIZED")
	method := strings.ToLower(req.GetString("method", "median"))
	maxCloud := req.GetFloat("max_cloud", 20)
	width := req.GetInt("width", 512)

	if _, ok := compositeMethods[method]; !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown method %q; supported: median, mean, min, max, mosaic", method)), nil
	}

	if !eeAvailable() {
		return mcp.NewToolResultError("Earth Engine client not initialized; check EE_PROJECT and EE_SERVICE_ACCOUNT_KEY"), nil
	}

	spec := regionFromRequest(req)
	if spec.empty() {
		return mcp.NewToolResultError("region is required: provide a place name or west/south/east/north bounds"), nil
	}
	region, regionDesc, err := spec.resolve(ctx)
	if err != nil {
		return notFoundResult(err), nil
	}

	vis := visDefaultsFor(dataset)
	cloudField := ""
	if entry, ok := lookupDataset(dataset); ok {
		cloudField = entry.CloudField
	}

	b := newExprBuilder()
	col := b.filteredCollection(dataset, startDate, endDate, region, cloudField, maxCloud)
	composite := b.composite(col, method)
	clipped := b.clipImage(composite, b.geometry(region))
	rendered := b.visualize(clipped, vis.Bands, vis.Min, vis.Max, nil)

	thumbURL, err := ee.CreateThumbnail(ctx, b.build(rendered), width, width)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("composite rendering failed: %v", err)), nil
	}

	return jsonResult(map[string]any{
		"dataset":       dataset,
		"method":        method,
		"region":        regionDesc,
		"start_date":    startDate,
		"end_date":      endDate,
		"max_cloud":     maxCloud,
		"bands":         vis.Bands,
		"thumbnail_url": thumbURL,
		"_ai_hint":      "The thumbnail_url is an authenticated Earth Engine URL; present it to the user as a link to the rendered composite.",
	})
}
