package main

import (
	"strings"
	"testing"
)

// nodeFn digs the function name out of an invocation node.
func nodeFn(t *testing.T, expr *eeExpression, name string) string {
	t.Helper()
	node, ok := expr.Values[name].(map[string]any)
	if !ok {
		t.Fatalf("node %s: not a map", name)
	}
	inv, ok := node["functionInvocationValue"].(map[string]any)
	if !ok {
		t.Fatalf("node %s: not an invocation", name)
	}
	return inv["functionName"].(string)
}

func TestGeometryExpression_Polygon(t *testing.T) {
	geom := &Geometry{GeoJSON: []byte(`{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}`)}

	expr := geometryExpression("Geometry.area", geom, nil)
	if expr.Result == "" {
		t.Fatal("empty result node")
	}
	if got := nodeFn(t, expr, expr.Result); got != "Geometry.area" {
		t.Errorf("result function: got %q", got)
	}

	var sawConstructor bool
	for name := range expr.Values {
		if strings.HasPrefix(nodeFn(t, expr, name), "GeometryConstructors.Polygon") {
			sawConstructor = true
		}
	}
	if !sawConstructor {
		t.Error("expected a Polygon constructor node")
	}
}

func TestGeometryExpression_MultiPolygon(t *testing.T) {
	geom := &Geometry{GeoJSON: []byte(`{"type":"MultiPolygon","coordinates":[[[[0,0],[1,0],[1,1],[0,0]]]]}`)}

	expr := geometryExpression("Geometry.centroid", geom, nil)
	var sawMulti bool
	for name := range expr.Values {
		if nodeFn(t, expr, name) == "GeometryConstructors.MultiPolygon" {
			sawMulti = true
		}
	}
	if !sawMulti {
		t.Error("expected a MultiPolygon constructor node")
	}
}

func TestFilteredCollection_Stages(t *testing.T) {
	region := &Geometry{GeoJSON: []byte(`{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}`)}

	b := newExprBuilder()
	col := b.filteredCollection("COPERNICUS/S2_SR_HARMONIZED", "2024-06-01", "2024-08-31",
		region, "CLOUDY_PIXEL_PERCENTAGE", 20)
	expr := b.build(col)

	counts := map[string]int{}
	for name := range expr.Values {
		counts[nodeFn(t, expr, name)]++
	}
	if counts["ImageCollection.load"] != 1 {
		t.Errorf("load nodes: got %d", counts["ImageCollection.load"])
	}
	// Date, bounds, and cloud filters each add one Collection.filter stage.
	if counts["Collection.filter"] != 3 {
		t.Errorf("filter stages: got %d, want 3", counts["Collection.filter"])
	}
	if counts["Filter.dateRangeContains"] != 1 || counts["Filter.intersects"] != 1 || counts["Filter.lessThan"] != 1 {
		t.Errorf("filter nodes: got %v", counts)
	}
}

func TestFilteredCollection_OptionalStagesSkipped(t *testing.T) {
	b := newExprBuilder()
	col := b.filteredCollection("COPERNICUS/S1_GRD", "2024-01-01", "2024-02-01", nil, "", 0)
	expr := b.build(col)

	counts := map[string]int{}
	for name := range expr.Values {
		counts[nodeFn(t, expr, name)]++
	}
	if counts["Collection.filter"] != 1 {
		t.Errorf("filter stages: got %d, want 1 (date only)", counts["Collection.filter"])
	}
	if counts["Filter.intersects"] != 0 || counts["Filter.lessThan"] != 0 {
		t.Errorf("unexpected optional filters: %v", counts)
	}
}

func TestComposite_MethodFallback(t *testing.T) {
	b := newExprBuilder()
	col := b.invoke("ImageCollection.load", map[string]any{"id": eeConstant("X")})

	img := b.composite(col, "mosaic")
	expr := b.build(img)
	if got := nodeFn(t, expr, expr.Result); got != "ImageCollection.mosaic" {
		t.Errorf("mosaic: got %q", got)
	}

	b2 := newExprBuilder()
	col2 := b2.invoke("ImageCollection.load", map[string]any{"id": eeConstant("X")})
	img2 := b2.composite(col2, "no-such-method")
	expr2 := b2.build(img2)
	if got := nodeFn(t, expr2, expr2.Result); got != "reduce.median" {
		t.Errorf("fallback: got %q, want reduce.median", got)
	}
}

func TestNormalizedDifference(t *testing.T) {
	b := newExprBuilder()
	img := b.invoke("ImageCollection.load", map[string]any{"id": eeConstant("X")})
	nd := b.normalizedDifference(img, "B8", "B4")
	expr := b.build(nd)

	node := expr.Values[expr.Result].(map[string]any)
	inv := node["functionInvocationValue"].(map[string]any)
	if inv["functionName"] != "Image.normalizedDifference" {
		t.Fatalf("function: got %v", inv["functionName"])
	}
	args := inv["arguments"].(map[string]any)
	bands := args["bandNames"].(map[string]any)["constantValue"].([]string)
	if bands[0] != "B8" || bands[1] != "B4" {
		t.Errorf("bands: got %v", bands)
	}
}
