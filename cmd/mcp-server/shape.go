package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
)

// geometryCalculator is the slice of the compute provider the result-shaping
// layer needs: server-side measurements over an opaque geometry.
type geometryCalculator interface {
	Area(ctx context.Context, geom *Geometry) (float64, error)
	Perimeter(ctx context.Context, geom *Geometry) (float64, error)
	Bounds(ctx context.Context, geom *Geometry) (*Geometry, error)
	Centroid(ctx context.Context, geom *Geometry) (lon, lat float64, err error)
}

type boundingBox struct {
	West  float64 `json:"west"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	North float64 `json:"north"`
}

// shapeBoundary derives the caller-facing metrics from a resolved boundary:
// area in whole km², perimeter in whole km, bounding box, and centroid. The
// geometry handle and dataset metadata pass through untouched.
func shapeBoundary(ctx context.Context, calc geometryCalculator, rb *ResolvedBoundary) (map[string]any, error) {
	areaM2, err := calc.Area(ctx, rb.Geometry)
	if err != nil {
		return nil, fmt.Errorf("area computation failed: %w", err)
	}

	perimeterM, err := calc.Perimeter(ctx, rb.Geometry)
	if err != nil {
		return nil, fmt.Errorf("perimeter computation failed: %w", err)
	}

	boundsGeom, err := calc.Bounds(ctx, rb.Geometry)
	if err != nil {
		return nil, fmt.Errorf("bounds computation failed: %w", err)
	}
	bbox, err := bboxFromBounds(boundsGeom)
	if err != nil {
		return nil, err
	}

	lon, lat, err := calc.Centroid(ctx, rb.Geometry)
	if err != nil {
		return nil, fmt.Errorf("centroid computation failed: %w", err)
	}

	return map[string]any{
		"dataset":      rb.DatasetID,
		"level":        rb.Level,
		"area_km2":     math.Round(areaM2 / 1e6),
		"perimeter_km": math.Round(perimeterM / 1e3),
		"bounding_box": bbox,
		"centroid": map[string]any{
			"longitude": lon,
			"latitude":  lat,
		},
	}, nil
}

// bboxFromBounds extracts west/south/east/north from a bounds polygon. The
// provider returns an axis-aligned rectangle, but the extraction scans every
// ring coordinate rather than assuming exactly four corners, so a denser ring
// still yields the correct envelope.
func bboxFromBounds(bounds *Geometry) (boundingBox, error) {
	var poly struct {
		Type        string         `json:"type"`
		Coordinates [][][2]float64 `json:"coordinates"`
	}
	if err := json.Unmarshal(bounds.GeoJSON, &poly); err != nil {
		return boundingBox{}, fmt.Errorf("unexpected bounds geometry: %w", err)
	}
	if len(poly.Coordinates) == 0 || len(poly.Coordinates[0]) == 0 {
		return boundingBox{}, fmt.Errorf("bounds geometry has no coordinates")
	}

	bbox := boundingBox{
		West:  math.Inf(1),
		South: math.Inf(1),
		East:  math.Inf(-1),
		North: math.Inf(-1),
	}
	for _, pt := range poly.Coordinates[0] {
		bbox.West = math.Min(bbox.West, pt[0])
		bbox.East = math.Max(bbox.East, pt[0])
		bbox.South = math.Min(bbox.South, pt[1])
		bbox.North = math.Max(bbox.North, pt[1])
	}
	return bbox, nil
}
