package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

var spectralIndexToolDef = mcp.NewTool("spectral_index",
	mcp.WithDescription("Compute a normalized-difference spectral index (NDVI, NDWI, MNDWI, NDBI, NBR, NDSI) over a region and date range. Builds a cloud-filtered median composite, applies the index, and returns the regional mean. NDVI > 0.4 indicates healthy vegetation; NDWI > 0 indicates open water; NBR drops sharply over burned areas."),
	mcp.WithString("index",
		mcp.Description("Index to compute"),
		mcp.Enum(indexNames()...),
		mcp.Required(),
	),
	mcp.WithString("place",
		mcp.Description("Region as a place name, e.g. 'Nairobi' or 'Fresno County'"),
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
	mcp.WithString("dataset",
		mcp.Description("Source collection (default COPERNICUS/S2_SR_HARMONIZED)"),
	),
	mcp.WithNumber("max_cloud",
		mcp.Description("Maximum scene cloud cover percentage (default 20)"),
		mcp.Min(0), mcp.Max(100),
		mcp.DefaultNumber(20),
	),
	mcp.WithNumber("scale",
		mcp.Description("Reduction scale in meters (default: native dataset resolution)"),
		mcp.Min(1),
	),
	mcp.WithReadOnlyHintAnnotation(true),
)

func handleSpectralIndex(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	indexName, err := req.RequireString("index")
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
	dataset := req.GetString("dataset", "COPERNICUS/S2_SR_HARMONIZED")
	maxCloud := req.GetFloat("max_cloud", 20)

	index, ok := spectralIndices[strings.ToUpper(indexName)]
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown index %q; supported: %s", indexName, strings.Join(indexNames(), ", "))), nil
	}
	bands, ok := index.Bands[dataset]
	if !ok {
		supported := make([]string, 0, len(index.Bands))
		for id := range index.Bands {
			supported = append(supported, id)
		}
		return mcp.NewToolResultError(fmt.Sprintf("%s has no band mapping for dataset %q; supported datasets: %s",
			index.Name, dataset, strings.Join(supported, ", "))), nil
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

	scale := req.GetFloat("scale", 0)
	if scale <= 0 {
		if entry, ok := lookupDataset(dataset); ok && entry.ResolutionM > 0 {
			scale = entry.ResolutionM
		} else {
			scale = 30
		}
	}

	cloudField := "CLOUDY_PIXEL_PERCENTAGE"
	if entry, ok := lookupDataset(dataset); ok && entry.CloudField != "" {
		cloudField = entry.CloudField
	}

	b := newExprBuilder()
	col := b.filteredCollection(dataset, startDate, endDate, region, cloudField, maxCloud)
	composite := b.composite(col, "median")
	nd := b.normalizedDifference(composite, bands[0], bands[1])
	stats := b.reduceRegionMean(nd, b.geometry(region), scale)

	raw, err := ee.computeValue(ctx, b.build(stats))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("index computation failed: %v", err)), nil
	}

	var reduced map[string]any
	if err := json.Unmarshal(raw, &reduced); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("unexpected reduction result: %v", err)), nil
	}

	mean, found := reduced["nd"]
	if !found {
		// Single-band reductions come back keyed by band name; take whatever
		// the reducer produced.
		for _, v := range reduced {
			mean = v
			break
		}
	}
	if mean == nil {
		return mcp.NewToolResultError(fmt.Sprintf(
			"no valid pixels for %s over %s between %s and %s; widen the date range or raise max_cloud",
			index.Name, regionDesc, startDate, endDate)), nil
	}

	return jsonResult(map[string]any{
		"index":       index.Name,
		"description": index.Description,
		"dataset":     dataset,
		"bands":       []string{bands[0], bands[1]},
		"region":      regionDesc,
		"start_date":  startDate,
		"end_date":    endDate,
		"scale_m":     scale,
		"mean":        mean,
	})
}
