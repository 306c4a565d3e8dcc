package main

import "testing"

func TestSearchCatalog_Keyword(t *testing.T) {
	matches := searchCatalog("fire")
	if len(matches) == 0 {
		t.Fatal("expected matches for 'fire'")
	}
	found := false
	for _, m := range matches {
		if m.ID == "MODIS/061/MCD64A1" {
			found = true
		}
	}
	if !found {
		t.Error("burned-area dataset should match 'fire'")
	}
}

func TestSearchCatalog_Empty(t *testing.T) {
	if got := searchCatalog(""); len(got) != len(datasetCatalog) {
		t.Errorf("empty keyword: got %d entries, want %d", len(got), len(datasetCatalog))
	}
	if got := searchCatalog("  "); len(got) != len(datasetCatalog) {
		t.Errorf("blank keyword: got %d entries, want %d", len(got), len(datasetCatalog))
	}
}

func TestSearchCatalog_CaseInsensitive(t *testing.T) {
	upper := searchCatalog("SENTINEL")
	lower := searchCatalog("sentinel")
	if len(upper) == 0 || len(upper) != len(lower) {
		t.Errorf("case sensitivity: upper=%d lower=%d", len(upper), len(lower))
	}
}

func TestLookupDataset(t *testing.T) {
	entry, ok := lookupDataset("COPERNICUS/S2_SR_HARMONIZED")
	if !ok {
		t.Fatal("expected S2 entry")
	}
	if entry.CloudField != "CLOUDY_PIXEL_PERCENTAGE" {
		t.Errorf("cloud field: got %q", entry.CloudField)
	}
	if _, ok := lookupDataset("NO/SUCH/DATASET"); ok {
		t.Error("unknown id should miss")
	}
}

func TestSpectralIndices_BandPairs(t *testing.T) {
	// Every advertised index must carry band pairs for the three optical
	// collections the tool accepts.
	needed := []string{
		"COPERNICUS/S2_SR_HARMONIZED",
		"LANDSAT/LC09/C02/T1_L2",
		"LANDSAT/LC08/C02/T1_L2",
	}
	for _, name := range indexNames() {
		idx, ok := spectralIndices[name]
		if !ok {
			t.Errorf("%s: advertised but not defined", name)
			continue
		}
		for _, ds := range needed {
			pair, ok := idx.Bands[ds]
			if !ok {
				t.Errorf("%s: no bands for %s", name, ds)
				continue
			}
			if pair[0] == "" || pair[1] == "" || pair[0] == pair[1] {
				t.Errorf("%s/%s: bad band pair %v", name, ds, pair)
			}
		}
	}
}

func TestNDVIBands(t *testing.T) {
	pair := spectralIndices["NDVI"].Bands["COPERNICUS/S2_SR_HARMONIZED"]
	if pair != [2]string{"B8", "B4"} {
		t.Errorf("S2 NDVI bands: got %v", pair)
	}
}

func TestBoundaryDatasetsInCatalog(t *testing.T) {
	// Every collection the resolver scans must be documented in the catalog.
	for _, ds := range boundaryDatasets {
		if _, ok := lookupDataset(ds.CollectionID); !ok {
			t.Errorf("boundary dataset %s missing from catalog", ds.CollectionID)
		}
	}
}
