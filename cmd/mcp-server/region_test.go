package main

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestRegionResolve_BBox(t *testing.T) {
	spec := regionSpec{West: -122.5, South: 37.2, East: -121.7, North: 37.9, hasBBox: true}

	geom, desc, err := spec.resolve(context.Background())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !strings.HasPrefix(desc, "bbox:") {
		t.Errorf("description: got %q", desc)
	}

	var poly struct {
		Type        string         `json:"type"`
		Coordinates [][][2]float64 `json:"coordinates"`
	}
	if err := json.Unmarshal(geom.GeoJSON, &poly); err != nil {
		t.Fatalf("geometry: %v", err)
	}
	if poly.Type != "Polygon" {
		t.Errorf("type: got %q", poly.Type)
	}
	ring := poly.Coordinates[0]
	if len(ring) != 5 {
		t.Fatalf("ring length: got %d, want 5", len(ring))
	}
	if ring[0] != ring[4] {
		t.Error("ring must be closed")
	}
}

func TestRegionResolve_PlaceUsesResolver(t *testing.T) {
	p := newFakeProvider()
	p.put("FAO/GAUL_SIMPLIFIED_500m/2015/level0", "ADM0_NAME", "Kenya")

	old := resolver
	resolver = newLocationResolver(p)
	defer func() { resolver = old }()

	spec := regionSpec{Place: "Kenya"}
	geom, desc, err := spec.resolve(context.Background())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if geom == nil {
		t.Fatal("geometry: got nil")
	}
	if desc != "Kenya (Country)" {
		t.Errorf("description: got %q", desc)
	}
}

func TestRegionResolve_Invalid(t *testing.T) {
	cases := []struct {
		name string
		spec regionSpec
	}{
		{"empty", regionSpec{}},
		{"inverted", regionSpec{West: 10, South: 10, East: 5, North: 20, hasBBox: true}},
		{"out of range", regionSpec{West: -200, South: 0, East: 10, North: 20, hasBBox: true}},
	}
	for _, c := range cases {
		if _, _, err := c.spec.resolve(context.Background()); err == nil {
			t.Errorf("%s: expected error", c.name)
		}
	}
}

func TestRegionEmpty(t *testing.T) {
	if !(regionSpec{}).empty() {
		t.Error("zero spec should be empty")
	}
	if (regionSpec{Place: "Tokyo"}).empty() {
		t.Error("place spec should not be empty")
	}
	if (regionSpec{West: 1, East: 2, South: 1, North: 2, hasBBox: true}).empty() {
		t.Error("bbox spec should not be empty")
	}
}

func TestNotFoundResult(t *testing.T) {
	res := notFoundResult(&LocationNotFoundError{PlaceName: "Narnia"})
	if res == nil || !res.IsError {
		t.Fatal("expected error result")
	}
}
