package main

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

var filterCollectionToolDef = mcp.NewTool("filter_collection",
	mcp.WithDescription("Filter an Earth Engine image collection by date range, region, and cloud cover. Returns the number of matching images and the first matching scene ids. Use this to check data availability before computing composites or indices."),
	mcp.WithString("dataset",
		mcp.Description("Image collection id, e.g. 'COPERNICUS/S2_SR_HARMONIZED'"),
		mcp.Required(),
	),
	mcp.WithString("start_date",
		mcp.Description("Start date, YYYY-MM-DD (inclusive)"),
		mcp.Required(),
	),
	mcp.WithString("end_date",
		mcp.Description("End date, YYYY-MM-DD (exclusive)"),
		mcp.Required(),
	),
	mcp.WithString("place",
		mcp.Description("Region as a place name, e.g. 'Tokyo' or 'Paris, France'"),
	),
	mcp.WithNumber("west", mcp.Description("Western boundary longitude (alternative to place)"), mcp.Min(-180), mcp.Max(180)),
	mcp.WithNumber("south", mcp.Description("Southern boundary latitude"), mcp.Min(-90), mcp.Max(90)),
	mcp.WithNumber("east", mcp.Description("Eastern boundary longitude"), mcp.Min(-180), mcp.Max(180)),
	mcp.WithNumber("north", mcp.Description("Northern boundary latitude"), mcp.Min(-90), mcp.Max(90)),
	mcp.WithNumber("max_cloud",
		mcp.Description("Maximum scene cloud cover percentage (default: no cloud filter)"),
		mcp.Min(0), mcp.Max(100),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of scene ids to return (default 10, max 100)"),
		mcp.Min(1), mcp.Max(100),
		mcp.DefaultNumber(10),
	),
	mcp.WithReadOnlyHintAnnotation(true),
)

func handleFilterCollection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dataset, err := req.RequireString("dataset")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
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
	maxCloud := req.GetFloat("max_cloud", -1)
	limit := req.GetInt("limit", 10)

	if !eeAvailable() {
		return mcp.NewToolResultError("Earth Engine client not initialized; check EE_PROJECT and EE_SERVICE_ACCOUNT_KEY"), nil
	}

	entry, inCatalog := lookupDataset(dataset)
	if inCatalog && entry.Type != "image_collection" {
		return mcp.NewToolResultError(fmt.Sprintf("dataset %q is a %s, not an image collection", dataset, entry.Type)), nil
	}

	var region *Geometry
	regionDesc := "global"
	spec := regionFromRequest(req)
	if !spec.empty() {
		region, regionDesc, err = spec.resolve(ctx)
		if err != nil {
			return notFoundResult(err), nil
		}
	}

	// Accurate count via a server-side size expression.
	cloudField := ""
	if maxCloud >= 0 {
		cloudField = entry.CloudField
		if cloudField == "" {
			cloudField = "CLOUDY_PIXEL_PERCENTAGE"
		}
	}
	b := newExprBuilder()
	col := b.filteredCollection(dataset, startDate, endDate, region, cloudField, maxCloud)
	count, err := ee.computeNumber(ctx, b.build(b.collectionSize(col)))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("collection count failed: %v", err)), nil
	}

	// First scene ids via the catalog listing endpoint.
	params := url.Values{}
	params.Set("pageSize", strconv.Itoa(limit))
	params.Set("startTime", startDate+"T00:00:00Z")
	params.Set("endTime", endDate+"T00:00:00Z")
	if region != nil {
		params.Set("region", string(region.GeoJSON))
	}
	if cloudField != "" {
		params.Set("filter", fmt.Sprintf("%s < %g", cloudField, maxCloud))
	}

	page, err := ee.ListImages(ctx, dataset, params)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("image listing failed: %v", err)), nil
	}

	scenes := make([]map[string]any, len(page.Images))
	for i, img := range page.Images {
		scenes[i] = map[string]any{
			"id":         img.ID,
			"start_time": img.StartTime,
		}
		if cloudField != "" {
			if cc, ok := img.Properties[cloudField]; ok {
				scenes[i]["cloud_cover"] = cc
			}
		}
	}

	result := map[string]any{
		"dataset":     dataset,
		"start_date":  startDate,
		"end_date":    endDate,
		"region":      regionDesc,
		"image_count": int(count),
		"scenes":      scenes,
	}
	if maxCloud >= 0 {
		result["max_cloud"] = maxCloud
	}
	return jsonResult(result)
}

// validateDateRange checks both dates parse and are ordered.
func validateDateRange(start, end string) error {
	s, err := time.Parse("2006-01-02", start)
	if err != nil {
		return fmt.Errorf("start_date must be YYYY-MM-DD: %v", err)
	}
	e, err := time.Parse("2006-01-02", end)
	if err != nil {
		return fmt.Errorf("end_date must be YYYY-MM-DD: %v", err)
	}
	if !s.Before(e) {
		return fmt.Errorf("start_date must be before end_date")
	}
	return nil
}
