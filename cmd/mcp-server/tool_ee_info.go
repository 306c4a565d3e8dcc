package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

var validTopics = []string{"datasets", "indices", "boundaries", "resolutions", "cloud_filtering", "exports"}

var eeInfoToolDef = mcp.NewTool("earth_engine_info",
	mcp.WithDescription("Get reference information about the available Earth Engine datasets, spectral indices, boundary resolution, sensor resolutions, cloud filtering, and export limits. Returns static reference content."),
	mcp.WithString("topic",
		mcp.Description("Topic to retrieve information about"),
		mcp.Enum(validTopics...),
		mcp.Required(),
	),
	mcp.WithReadOnlyHintAnnotation(true),
)

var referenceData = map[string]string{
	"datasets": `The catalog covers optical imagery (Sentinel-2 at 10m, Landsat 8/9 at 30m), radar (Sentinel-1, works through clouds), vegetation products (MODIS MOD13Q1 NDVI/EVI at 250m), climate (CHIRPS daily rainfall, ERA5-Land reanalysis), terrain (SRTM 30m elevation), land cover (ESA WorldCover, Dynamic World), surface water (JRC GSW), fire (MODIS burned area), and administrative boundaries (FAO GAUL levels 0-2 worldwide, US Census TIGER counties and states). Use search_datasets to find ids.`,

	"indices": `Supported normalized-difference indices: NDVI (vegetation health; >0.4 healthy, <0.1 bare/urban), NDWI (open water >0), MNDWI (water in built-up areas), NDBI (built-up surfaces >0), NBR (burn severity; pre/post-fire difference >0.27 indicates moderate burn), NDSI (snow >0.4). All are computed as (b1-b2)/(b1+b2) over a cloud-filtered median composite. Band pairs are chosen per dataset automatically.`,

	"boundaries": `Place names resolve against five boundary datasets in order of administrative specificity: GAUL level-2 districts/cities, GAUL level-1 states/provinces, GAUL level-0 countries, then US TIGER counties and states. Case variants are tried automatically. Ambiguous names can be qualified with a comma, e.g. 'Paris, France'. Trailing words like 'City', 'County', 'District', 'Province', or 'State' are stripped and retried if the full name does not match.`,

	"resolutions": `Native resolutions: Sentinel-2 10m (visible/NIR) and 20m (SWIR/red-edge); Landsat 8/9 30m; MODIS 250m-1km; CHIRPS ~5.5km; ERA5-Land ~11km; SRTM 30m. Statistics default to the native resolution; pass scale to trade accuracy for speed on large regions.`,

	"cloud_filtering": `Optical scenes carry a cloud-cover percentage property (CLOUDY_PIXEL_PERCENTAGE for Sentinel-2, CLOUD_COVER for Landsat). filter_collection, spectral_index, composite, and export_image drop scenes above max_cloud (default 20%) before compositing; a median composite then suppresses remaining transient clouds. Sentinel-1 radar needs no cloud filtering.`,

	"exports": `export_image submits a server-side batch task writing a cloud-optimized GeoTIFF to Google Drive (default folder 'EarthEngine_Exports') or a GCS bucket. Defaults: bands B4,B3,B2,B8, scale 10m, EPSG:4326, maxPixels 1e10. Tasks run asynchronously; poll export_status with the returned task name. Large regions at fine scale can take hours.`,
}

func handleEEInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic, err := req.RequireString("topic")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	normalized := strings.ToLower(strings.ReplaceAll(topic, "-", "_"))

	content, ok := referenceData[normalized]
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf(
			"Invalid topic: %q. Valid topics: %s", topic, strings.Join(validTopics, ", "),
		)), nil
	}

	result := map[string]any{
		"topic":   normalized,
		"content": content,
	}

	return jsonResult(result)
}
