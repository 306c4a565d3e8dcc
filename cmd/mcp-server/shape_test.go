package main

import (
	"context"
	"fmt"
	"testing"
)

type fakeCalculator struct {
	areaM2     float64
	perimeterM float64
	bounds     *Geometry
	lon, lat   float64
	areaErr    error
}

func (f *fakeCalculator) Area(ctx context.Context, g *Geometry) (float64, error) {
	return f.areaM2, f.areaErr
}

func (f *fakeCalculator) Perimeter(ctx context.Context, g *Geometry) (float64, error) {
	return f.perimeterM, nil
}

func (f *fakeCalculator) Bounds(ctx context.Context, g *Geometry) (*Geometry, error) {
	return f.bounds, nil
}

func (f *fakeCalculator) Centroid(ctx context.Context, g *Geometry) (lon, lat float64, err error) {
	return f.lon, f.lat, nil
}

func TestShapeBoundary(t *testing.T) {
	calc := &fakeCalculator{
		areaM2:     1527499123456, // ~1,527,499 km²
		perimeterM: 2450678,       // ~2,451 km
		bounds:     &Geometry{GeoJSON: []byte(`{"type":"Polygon","coordinates":[[[2.1,41.3],[2.3,41.3],[2.3,41.5],[2.1,41.5],[2.1,41.3]]]}`)},
		lon:        2.2,
		lat:        41.4,
	}
	rb := &ResolvedBoundary{
		Geometry:  &Geometry{GeoJSON: []byte(`{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}`)},
		DatasetID: "FAO/GAUL_SIMPLIFIED_500m/2015/level0",
		Level:     "Country",
	}

	out, err := shapeBoundary(context.Background(), calc, rb)
	if err != nil {
		t.Fatalf("shapeBoundary: %v", err)
	}
	if out["dataset"] != rb.DatasetID {
		t.Errorf("dataset: got %v", out["dataset"])
	}
	if out["level"] != "Country" {
		t.Errorf("level: got %v", out["level"])
	}
	if got := out["area_km2"].(float64); got != 1527499 {
		t.Errorf("area_km2: got %v, want 1527499", got)
	}
	if got := out["perimeter_km"].(float64); got != 2451 {
		t.Errorf("perimeter_km: got %v, want 2451", got)
	}
	bbox := out["bounding_box"].(boundingBox)
	if bbox.West != 2.1 || bbox.South != 41.3 || bbox.East != 2.3 || bbox.North != 41.5 {
		t.Errorf("bounding_box: got %+v", bbox)
	}
	centroid := out["centroid"].(map[string]any)
	if centroid["longitude"] != 2.2 || centroid["latitude"] != 41.4 {
		t.Errorf("centroid: got %v", centroid)
	}
}

func TestShapeBoundary_ComputeError(t *testing.T) {
	calc := &fakeCalculator{areaErr: fmt.Errorf("compute backend down")}
	rb := &ResolvedBoundary{Geometry: &Geometry{GeoJSON: []byte(`{}`)}}

	if _, err := shapeBoundary(context.Background(), calc, rb); err == nil {
		t.Fatal("expected error when area computation fails")
	}
}

func TestBboxFromBounds_DenseRing(t *testing.T) {
	// More than four corners: the envelope must still cover every point.
	bounds := &Geometry{GeoJSON: []byte(`{"type":"Polygon","coordinates":[[[-3,40],[0,39],[3,40],[3,43],[0,44],[-3,43],[-3,40]]]}`)}

	bbox, err := bboxFromBounds(bounds)
	if err != nil {
		t.Fatalf("bboxFromBounds: %v", err)
	}
	if bbox.West != -3 || bbox.East != 3 || bbox.South != 39 || bbox.North != 44 {
		t.Errorf("bbox: got %+v", bbox)
	}
}

func TestBboxFromBounds_Invalid(t *testing.T) {
	if _, err := bboxFromBounds(&Geometry{GeoJSON: []byte(`not json`)}); err == nil {
		t.Error("expected error for malformed geometry")
	}
	if _, err := bboxFromBounds(&Geometry{GeoJSON: []byte(`{"type":"Polygon","coordinates":[]}`)}); err == nil {
		t.Error("expected error for empty coordinates")
	}
}
