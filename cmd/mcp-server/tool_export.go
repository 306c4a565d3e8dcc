package main

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

var exportImageToolDef = mcp.NewTool("export_image",
	mcp.WithDescription("Start a server-side export of a median composite to Google Drive or Cloud Storage as a cloud-optimized GeoTIFF. Returns the export task id immediately; exports of large areas can take minutes to hours. Check progress with export_status."),
	mcp.WithString("dataset",
		mcp.Description("Image collection id (default COPERNICUS/S2_SR_HARMONIZED)"),
	),
	mcp.WithString("description",
		mcp.Description("Task description and file name prefix, e.g. 'sf_bay_sentinel2'"),
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
		mcp.Description("Start date, YYYY-MM-DD"),
		mcp.Required(),
	),
	mcp.WithString("end_date",
		mcp.Description("End date, YYYY-MM-DD"),
		mcp.Required(),
	),
	mcp.WithString("destination",
		mcp.Description("Export destination (default drive)"),
		mcp.Enum("drive", "gcs"),
	),
	mcp.WithString("folder",
		mcp.Description("Drive folder name (default 'EarthEngine_Exports') or GCS bucket"),
	),
	mcp.WithString("bands",
		mcp.Description("Comma-separated bands to export (default 'B4,B3,B2,B8')"),
	),
	mcp.WithNumber("scale",
		mcp.Description("Export resolution in meters (default 10)"),
		mcp.Min(1), mcp.Max(1000),
		mcp.DefaultNumber(10),
	),
	mcp.WithNumber("max_cloud",
		mcp.Description("Maximum scene cloud cover percentage (default 20)"),
		mcp.Min(0), mcp.Max(100),
		mcp.DefaultNumber(20),
	),
)

var descriptionPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,100}$`)

func handleExportImage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	description, err := req.RequireString("description")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !descriptionPattern.MatchString(description) {
		return mcp.NewToolResultError("description must be 1-100 characters of letters, digits, underscore, or hyphen"), nil
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
	destination := req.GetString("destination", "drive")
	folder := req.GetString("folder", "EarthEngine_Exports")
	scale := req.GetFloat("scale", 10)
	maxCloud := req.GetFloat("max_cloud", 20)

	bands := []string{"B4", "B3", "B2", "B8"}
	if raw := req.GetString("bands", ""); raw != "" {
		bands = splitCSV(raw)
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

	cloudField := ""
	if entry, ok := lookupDataset(dataset); ok {
		cloudField = entry.CloudField
	}

	b := newExprBuilder()
	col := b.filteredCollection(dataset, startDate, endDate, region, cloudField, maxCloud)
	composite := b.composite(col, "median")
	selected := b.invoke("Image.select", map[string]any{
		"input":         ref(composite),
		"bandSelectors": eeConstant(bands),
	})
	clipped := b.clipImage(selected, b.geometry(region))

	exportReq := map[string]any{
		"expression":  b.build(clipped),
		"description": description,
		"maxPixels":   "10000000000",
		"grid": map[string]any{
			"crsCode": "EPSG:4326",
			"scale":   scale,
		},
	}
	fileOpts := map[string]any{
		"fileFormat": "GEO_TIFF",
		"geoTiffOptions": map[string]any{
			"cloudOptimized": true,
		},
	}
	switch destination {
	case "gcs":
		fileOpts["gcsDestination"] = map[string]any{
			"bucket":         folder,
			"filenamePrefix": description,
		}
	default:
		fileOpts["driveDestination"] = map[string]any{
			"folder":         folder,
			"filenamePrefix": description,
		}
	}
	exportReq["fileExportOptions"] = fileOpts

	name, state, err := ee.ExportImage(ctx, exportReq)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("export submission failed: %v", err)), nil
	}

	return jsonResult(map[string]any{
		"task":        name,
		"state":       state,
		"description": description,
		"dataset":     dataset,
		"region":      regionDesc,
		"start_date":  startDate,
		"end_date":    endDate,
		"bands":       bands,
		"scale_m":     scale,
		"destination": destination,
		"folder":      folder,
		"_ai_hint":    "Pass the task value to export_status to check progress. Drive exports appear in the given folder when the task reaches SUCCEEDED.",
	})
}

var exportStatusToolDef = mcp.NewTool("export_status",
	mcp.WithDescription("Check the state of a previously started export task."),
	mcp.WithString("task",
		mcp.Description("Task name returned by export_image, e.g. 'projects/my-project/operations/ABC123'"),
		mcp.Required(),
	),
	mcp.WithReadOnlyHintAnnotation(true),
)

func handleExportStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	task, err := req.RequireString("task")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !strings.Contains(task, "/operations/") {
		return mcp.NewToolResultError("task must be an operation name like 'projects/<project>/operations/<id>'"), nil
	}

	if !eeAvailable() {
		return mcp.NewToolResultError("Earth Engine client not initialized; check EE_PROJECT and EE_SERVICE_ACCOUNT_KEY"), nil
	}

	op, err := ee.GetOperation(ctx, task)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("status lookup failed: %v", err)), nil
	}

	return jsonResult(op)
}
