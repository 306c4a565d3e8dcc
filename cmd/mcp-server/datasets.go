package main

import "strings"

// datasetEntry is one record in the curated Earth Engine catalog exposed by
// the search_datasets and dataset_info tools. The catalog is a static subset
// of the public catalog covering the datasets the imagery tools know how to
// filter and composite.
type datasetEntry struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"` // image_collection, image, table
	Description string   `json:"description"`
	Provider    string   `json:"provider"`
	ResolutionM float64  `json:"resolution_m,omitempty"`
	StartYear   int      `json:"start_year,omitempty"`
	Bands       []string `json:"bands,omitempty"`
	CloudField  string   `json:"cloud_field,omitempty"`
	Tags        []string `json:"tags"`
}

var datasetCatalog = []datasetEntry{
	{
		ID:          "COPERNICUS/S2_SR_HARMONIZED",
		Name:        "Sentinel-2 Surface Reflectance (Harmonized)",
		Type:        "image_collection",
		Description: "Atmospherically corrected Sentinel-2 MSI imagery at 10-60m. The default choice for vegetation, water, and urban index analysis.",
		Provider:    "European Union/ESA/Copernicus",
		ResolutionM: 10,
		StartYear:   2017,
		Bands:       []string{"B2", "B3", "B4", "B8", "B11", "B12"},
		CloudField:  "CLOUDY_PIXEL_PERCENTAGE",
		Tags:        []string{"sentinel", "optical", "surface reflectance", "ndvi", "vegetation"},
	},
	{
		ID:          "COPERNICUS/S1_GRD",
		Name:        "Sentinel-1 SAR GRD",
		Type:        "image_collection",
		Description: "C-band synthetic aperture radar backscatter. Works through clouds; used for flood mapping and surface change.",
		Provider:    "European Union/ESA/Copernicus",
		ResolutionM: 10,
		StartYear:   2014,
		Bands:       []string{"VV", "VH"},
		Tags:        []string{"sentinel", "sar", "radar", "flood"},
	},
	{
		ID:          "LANDSAT/LC09/C02/T1_L2",
		Name:        "Landsat 9 Collection 2 Level-2",
		Type:        "image_collection",
		Description: "Landsat 9 surface reflectance and surface temperature at 30m.",
		Provider:    "USGS",
		ResolutionM: 30,
		StartYear:   2021,
		Bands:       []string{"SR_B2", "SR_B3", "SR_B4", "SR_B5", "SR_B6", "SR_B7", "ST_B10"},
		CloudField:  "CLOUD_COVER",
		Tags:        []string{"landsat", "optical", "surface reflectance", "temperature"},
	},
	{
		ID:          "LANDSAT/LC08/C02/T1_L2",
		Name:        "Landsat 8 Collection 2 Level-2",
		Type:        "image_collection",
		Description: "Landsat 8 surface reflectance and surface temperature at 30m, 2013 to present.",
		Provider:    "USGS",
		ResolutionM: 30,
		StartYear:   2013,
		Bands:       []string{"SR_B2", "SR_B3", "SR_B4", "SR_B5", "SR_B6", "SR_B7", "ST_B10"},
		CloudField:  "CLOUD_COVER",
		Tags:        []string{"landsat", "optical", "surface reflectance", "temperature"},
	},
	{
		ID:          "MODIS/061/MOD13Q1",
		Name:        "MODIS Terra Vegetation Indices 16-Day",
		Type:        "image_collection",
		Description: "Precomputed NDVI and EVI at 250m, 16-day cadence. Good for long vegetation time series.",
		Provider:    "NASA LP DAAC",
		ResolutionM: 250,
		StartYear:   2000,
		Bands:       []string{"NDVI", "EVI"},
		Tags:        []string{"modis", "ndvi", "vegetation", "time series"},
	},
	{
		ID:          "MODIS/061/MOD11A1",
		Name:        "MODIS Land Surface Temperature Daily",
		Type:        "image_collection",
		Description: "Daily land surface temperature and emissivity at 1km.",
		Provider:    "NASA LP DAAC",
		ResolutionM: 1000,
		StartYear:   2000,
		Bands:       []string{"LST_Day_1km", "LST_Night_1km"},
		Tags:        []string{"modis", "temperature", "climate"},
	},
	{
		ID:          "MODIS/061/MCD64A1",
		Name:        "MODIS Burned Area Monthly",
		Type:        "image_collection",
		Description: "Monthly burned-area extent at 500m, used for wildfire damage assessment.",
		Provider:    "NASA LP DAAC",
		ResolutionM: 500,
		StartYear:   2000,
		Bands:       []string{"BurnDate"},
		Tags:        []string{"modis", "fire", "wildfire", "burned area"},
	},
	{
		ID:          "UCSB-CHG/CHIRPS/DAILY",
		Name:        "CHIRPS Daily Precipitation",
		Type:        "image_collection",
		Description: "Quasi-global daily rainfall estimates at ~5km, 1981 to present. Drought and flood analysis.",
		Provider:    "UCSB Climate Hazards Group",
		ResolutionM: 5566,
		StartYear:   1981,
		Bands:       []string{"precipitation"},
		Tags:        []string{"precipitation", "rainfall", "drought", "climate"},
	},
	{
		ID:          "ECMWF/ERA5_LAND/DAILY_AGGR",
		Name:        "ERA5-Land Daily Aggregates",
		Type:        "image_collection",
		Description: "Daily aggregated reanalysis of temperature, precipitation, soil moisture, and wind at ~11km.",
		Provider:    "ECMWF/Copernicus Climate Change Service",
		ResolutionM: 11132,
		StartYear:   1950,
		Bands:       []string{"temperature_2m", "total_precipitation_sum", "volumetric_soil_water_layer_1"},
		Tags:        []string{"climate", "weather", "reanalysis", "soil moisture"},
	},
	{
		ID:          "USGS/SRTMGL1_003",
		Name:        "SRTM Digital Elevation 30m",
		Type:        "image",
		Description: "Global digital elevation model from the Shuttle Radar Topography Mission.",
		Provider:    "NASA/USGS",
		ResolutionM: 30,
		StartYear:   2000,
		Bands:       []string{"elevation"},
		Tags:        []string{"elevation", "dem", "terrain", "topography"},
	},
	{
		ID:          "ESA/WorldCover/v200",
		Name:        "ESA WorldCover 10m 2021",
		Type:        "image_collection",
		Description: "Global land cover map at 10m with 11 classes.",
		Provider:    "ESA",
		ResolutionM: 10,
		StartYear:   2021,
		Bands:       []string{"Map"},
		Tags:        []string{"land cover", "classification", "urban", "forest"},
	},
	{
		ID:          "GOOGLE/DYNAMICWORLD/V1",
		Name:        "Dynamic World V1",
		Type:        "image_collection",
		Description: "Near-real-time 10m land use/land cover probabilities from Sentinel-2.",
		Provider:    "Google/WRI",
		ResolutionM: 10,
		StartYear:   2015,
		Bands:       []string{"label", "trees", "water", "built", "crops"},
		Tags:        []string{"land cover", "near real time", "classification"},
	},
	{
		ID:          "JRC/GSW1_4/GlobalSurfaceWater",
		Name:        "JRC Global Surface Water",
		Type:        "image",
		Description: "Occurrence and dynamics of surface water 1984-2021 at 30m.",
		Provider:    "EC JRC/Google",
		ResolutionM: 30,
		StartYear:   1984,
		Bands:       []string{"occurrence", "seasonality", "transition"},
		Tags:        []string{"water", "hydrology", "flood"},
	},
	{
		ID:          "FAO/GAUL_SIMPLIFIED_500m/2015/level0",
		Name:        "FAO GAUL Country Boundaries",
		Type:        "table",
		Description: "Global Administrative Unit Layers, level 0 (countries).",
		Provider:    "FAO",
		Tags:        []string{"boundaries", "administrative", "country", "gaul"},
	},
	{
		ID:          "FAO/GAUL_SIMPLIFIED_500m/2015/level1",
		Name:        "FAO GAUL First-Level Administrative Units",
		Type:        "table",
		Description: "Global Administrative Unit Layers, level 1 (states/provinces).",
		Provider:    "FAO",
		Tags:        []string{"boundaries", "administrative", "state", "province", "gaul"},
	},
	{
		ID:          "FAO/GAUL_SIMPLIFIED_500m/2015/level2",
		Name:        "FAO GAUL Second-Level Administrative Units",
		Type:        "table",
		Description: "Global Administrative Unit Layers, level 2 (districts/cities).",
		Provider:    "FAO",
		Tags:        []string{"boundaries", "administrative", "city", "district", "gaul"},
	},
	{
		ID:          "TIGER/2018/Counties",
		Name:        "US Census TIGER Counties 2018",
		Type:        "table",
		Description: "US county boundaries from the Census Bureau.",
		Provider:    "US Census Bureau",
		Tags:        []string{"boundaries", "administrative", "county", "tiger", "usa"},
	},
	{
		ID:          "TIGER/2018/States",
		Name:        "US Census TIGER States 2018",
		Type:        "table",
		Description: "US state boundaries from the Census Bureau.",
		Provider:    "US Census Bureau",
		Tags:        []string{"boundaries", "administrative", "state", "tiger", "usa"},
	},
}

// searchCatalog returns catalog entries whose id, name, description, provider,
// or tags contain the keyword (case-insensitive). An empty keyword returns the
// whole catalog.
func searchCatalog(keyword string) []datasetEntry {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return datasetCatalog
	}

	var matches []datasetEntry
	for _, entry := range datasetCatalog {
		if datasetMatches(entry, keyword) {
			matches = append(matches, entry)
		}
	}
	return matches
}

func datasetMatches(entry datasetEntry, keyword string) bool {
	if strings.Contains(strings.ToLower(entry.ID), keyword) ||
		strings.Contains(strings.ToLower(entry.Name), keyword) ||
		strings.Contains(strings.ToLower(entry.Description), keyword) ||
		strings.Contains(strings.ToLower(entry.Provider), keyword) {
		return true
	}
	for _, tag := range entry.Tags {
		if strings.Contains(tag, keyword) {
			return true
		}
	}
	return false
}

// lookupDataset finds a catalog entry by exact id.
func lookupDataset(id string) (datasetEntry, bool) {
	for _, entry := range datasetCatalog {
		if entry.ID == id {
			return entry, true
		}
	}
	return datasetEntry{}, false
}

// spectralIndex describes a normalized-difference index the spectral_index
// tool can compute, with per-dataset band pairs.
type spectralIndex struct {
	Name        string
	Description string
	// Bands maps dataset id to the [band1, band2] pair fed to
	// normalizedDifference for that dataset.
	Bands map[string][2]string
}

var spectralIndices = map[string]spectralIndex{
	"NDVI": {
		Name:        "NDVI",
		Description: "Normalized Difference Vegetation Index (NIR-Red)/(NIR+Red). Healthy vegetation > 0.4.",
		Bands: map[string][2]string{
			"COPERNICUS/S2_SR_HARMONIZED": {"B8", "B4"},
			"LANDSAT/LC09/C02/T1_L2":      {"SR_B5", "SR_B4"},
			"LANDSAT/LC08/C02/T1_L2":      {"SR_B5", "SR_B4"},
		},
	},
	"NDWI": {
		Name:        "NDWI",
		Description: "Normalized Difference Water Index (Green-NIR)/(Green+NIR). Open water > 0.",
		Bands: map[string][2]string{
			"COPERNICUS/S2_SR_HARMONIZED": {"B3", "B8"},
			"LANDSAT/LC09/C02/T1_L2":      {"SR_B3", "SR_B5"},
			"LANDSAT/LC08/C02/T1_L2":      {"SR_B3", "SR_B5"},
		},
	},
	"MNDWI": {
		Name:        "MNDWI",
		Description: "Modified NDWI (Green-SWIR)/(Green+SWIR). Better water separation in built-up areas.",
		Bands: map[string][2]string{
			"COPERNICUS/S2_SR_HARMONIZED": {"B3", "B11"},
			"LANDSAT/LC09/C02/T1_L2":      {"SR_B3", "SR_B6"},
			"LANDSAT/LC08/C02/T1_L2":      {"SR_B3", "SR_B6"},
		},
	},
	"NDBI": {
		Name:        "NDBI",
		Description: "Normalized Difference Built-up Index (SWIR-NIR)/(SWIR+NIR). Built-up surfaces > 0.",
		Bands: map[string][2]string{
			"COPERNICUS/S2_SR_HARMONIZED": {"B11", "B8"},
			"LANDSAT/LC09/C02/T1_L2":      {"SR_B6", "SR_B5"},
			"LANDSAT/LC08/C02/T1_L2":      {"SR_B6", "SR_B5"},
		},
	},
	"NBR": {
		Name:        "NBR",
		Description: "Normalized Burn Ratio (NIR-SWIR2)/(NIR+SWIR2). Drops sharply after fire.",
		Bands: map[string][2]string{
			"COPERNICUS/S2_SR_HARMONIZED": {"B8", "B12"},
			"LANDSAT/LC09/C02/T1_L2":      {"SR_B5", "SR_B7"},
			"LANDSAT/LC08/C02/T1_L2":      {"SR_B5", "SR_B7"},
		},
	},
	"NDSI": {
		Name:        "NDSI",
		Description: "Normalized Difference Snow Index (Green-SWIR)/(Green+SWIR). Snow > 0.4.",
		Bands: map[string][2]string{
			"COPERNICUS/S2_SR_HARMONIZED": {"B3", "B11"},
			"LANDSAT/LC09/C02/T1_L2":      {"SR_B3", "SR_B6"},
			"LANDSAT/LC08/C02/T1_L2":      {"SR_B3", "SR_B6"},
		},
	},
}

func indexNames() []string {
	return []string{"NDVI", "NDWI", "MNDWI", "NDBI", "NBR", "NDSI"}
}
