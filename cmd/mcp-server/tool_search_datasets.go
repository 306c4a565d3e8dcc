package main

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

var searchDatasetsToolDef = mcp.NewTool("search_datasets",
	mcp.WithDescription("Search the curated Earth Engine dataset catalog by keyword (e.g. 'ndvi', 'precipitation', 'elevation', 'sentinel'). Returns dataset ids usable with filter_collection, spectral_index, composite, thumbnail, and export_image."),
	mcp.WithString("keyword",
		mcp.Description("Search term matched against dataset id, name, description, provider, and tags. Empty returns the full catalog."),
	),
	mcp.WithString("type",
		mcp.Description("Optional filter by dataset type"),
		mcp.Enum("image_collection", "image", "table"),
	),
	mcp.WithReadOnlyHintAnnotation(true),
)

func handleSearchDatasets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keyword := req.GetString("keyword", "")
	typeFilter := req.GetString("type", "")

	matches := searchCatalog(keyword)
	if typeFilter != "" {
		filtered := matches[:0:0]
		for _, m := range matches {
			if m.Type == typeFilter {
				filtered = append(filtered, m)
			}
		}
		matches = filtered
	}

	results := make([]map[string]any, len(matches))
	for i, m := range matches {
		entry := map[string]any{
			"id":       m.ID,
			"name":     m.Name,
			"type":     m.Type,
			"provider": m.Provider,
			"tags":     m.Tags,
		}
		if m.ResolutionM > 0 {
			entry["resolution_m"] = m.ResolutionM
		}
		results[i] = entry
	}

	return jsonResult(map[string]any{
		"keyword":  keyword,
		"count":    len(results),
		"datasets": results,
		"_ai_hint": "Use dataset_info for band lists and details before building composites or indices.",
	})
}

var datasetInfoToolDef = mcp.NewTool("dataset_info",
	mcp.WithDescription("Get full details for one catalog dataset: bands, resolution, provider, temporal coverage, and the cloud-cover property used for filtering."),
	mcp.WithString("dataset",
		mcp.Description("Exact dataset id, e.g. 'COPERNICUS/S2_SR_HARMONIZED'"),
		mcp.Required(),
	),
	mcp.WithReadOnlyHintAnnotation(true),
)

func handleDatasetInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("dataset")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	entry, ok := lookupDataset(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("dataset %q is not in the catalog; use search_datasets to find available ids", id)), nil
	}

	return jsonResult(entry)
}
