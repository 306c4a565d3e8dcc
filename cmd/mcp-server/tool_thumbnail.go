package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// visParams are default visualization settings per dataset for RGB rendering.
type visParams struct {
	Bands []string
	Min   float64
	Max   float64
}

var visDefaults = map[string]visParams{
	"COPERNICUS/S2_SR_HARMONIZED": {Bands: []string{"B4", "B3", "B2"}, Min: 0, Max: 3000},
	"LANDSAT/LC09/C02/T1_L2":      {Bands: []string{"SR_B4", "SR_B3", "SR_B2"}, Min: 7000, Max: 30000},
	"LANDSAT/LC08/C02/T1_L2":      {Bands: []string{"SR_B4", "SR_B3", "SR_B2"}, Min: 7000, Max: 30000},
	"USGS/SRTMGL1_003":            {Bands: []string{"elevation"}, Min: 0, Max: 3000},
}

func visDefaultsFor(dataset string) visParams {
	if v, ok := visDefaults[dataset]; ok {
		return v
	}
	return visParams{Min: 0, Max: 3000}
}

var thumbnailToolDef = mcp.NewTool("thumbnail",
	mcp.WithDescription("Render a visualization thumbnail for a dataset over a region, with control over bands, value stretch, and palette. For image collections a median composite over the date range is rendered; for single images (e.g. SRTM elevation) the image itself is rendered. Single-band renders accept a color palette."),
	mcp.WithString("dataset",
		mcp.Description("Dataset id (image or image collection)"),
		mcp.Required(),
	),
	mcp.WithString("place",
		mcp.Description("Region as a place name"),
	),
	mcp.WithNumber("west", mcp.Description("Western boundary longitude (alternative to place)"), mcp.Min(-180), mcp.Max(180)),
	mcp.WithNumber("south", mcp.Description("Southern boundary latitude"), mcp.Min(-90), mcp.Max(90)),
	mcp.WithNumber("east", mcp.Description("Eastern boundary longitude"), mcp.Min(-180), mcp.Max(180)),
	mcp.WithNumber("north", mcp.Description("Northern boundary latitude"), mcp.Min(-90), mcp.Max(90)),
	mcp.WithString("start_date",
		mcp.Description("Start date, YYYY-MM-DD (required for image collections)"),
	),
	mcp.WithString("end_date",
		mcp.Description("End date, YYYY-MM-DD (required for image collections)"),
	),
	mcp.WithNumber("max_cloud",
		mcp.Description("Maximum scene cloud cover percentage for collection composites (default 20)"),
		mcp.Min(0), mcp.Max(100),
		mcp.DefaultNumber(20),
	),
	mcp.WithString("bands",
		mcp.Description("Comma-separated bands to render, e.g. 'B8,B4,B3' for false color (default: dataset RGB)"),
	),
	mcp.WithNumber("min",
		mcp.Description("Stretch minimum (default: dataset default)"),
	),
	mcp.WithNumber("max",
		mcp.Description("Stretch maximum (default: dataset default)"),
	),
	mcp.WithString("palette",
		mcp.Description("Comma-separated hex colors for single-band renders, e.g. 'blue,white,green'"),
	),
	mcp.WithNumber("width",
		mcp.Description("Thumbnail width in pixels (default 512)"),
		mcp.Min(64), mcp.Max(2048),
		mcp.DefaultNumber(512),
	),
	mcp.WithReadOnlyHintAnnotation(true),
)

func handleThumbnail(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dataset, err := req.RequireString("dataset")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
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

	entry, inCatalog := lookupDataset(dataset)
	isCollection := !inCatalog || entry.Type == "image_collection"

	defaults := visDefaultsFor(dataset)
	bands := defaults.Bands
	if raw := req.GetString("bands", ""); raw != "" {
		bands = splitCSV(raw)
	}
	minVal := req.GetFloat("min", defaults.Min)
	maxVal := req.GetFloat("max", defaults.Max)
	var palette []string
	if raw := req.GetString("palette", ""); raw != "" {
		palette = splitCSV(raw)
	}
	width := req.GetInt("width", 512)

	b := newExprBuilder()
	var image string
	if isCollection {
		startDate := req.GetString("start_date", "")
		endDate := req.GetString("end_date", "")
		if startDate == "" || endDate == "" {
			return mcp.NewToolResultError(fmt.Sprintf("dataset %q is an image collection; start_date and end_date are required", dataset)), nil
		}
		if err := validateDateRange(startDate, endDate); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		col := b.filteredCollection(dataset, startDate, endDate, region, entry.CloudField, req.GetFloat("max_cloud", 20))
		image = b.composite(col, "median")
	} else {
		image = b.invoke("Image.load", map[string]any{
			"id": eeConstant(dataset),
		})
	}

	clipped := b.clipImage(image, b.geometry(region))
	rendered := b.visualize(clipped, bands, minVal, maxVal, palette)

	thumbURL, err := ee.CreateThumbnail(ctx, b.build(rendered), width, width)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("thumbnail rendering failed: %v", err)), nil
	}

	return jsonResult(map[string]any{
		"dataset":       dataset,
		"region":        regionDesc,
		"bands":         bands,
		"min":           minVal,
		"max":           maxVal,
		"thumbnail_url": thumbURL,
	})
}

// splitCSV splits a comma-separated argument into trimmed parts.
func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
