package main

import (
	"encoding/json"
	"strconv"
	"strings"
)

// eeExpression is the serialized expression graph accepted by the Earth
// Engine REST API: a flat map of value nodes plus the name of the result node.
type eeExpression struct {
	Result string         `json:"result"`
	Values map[string]any `json:"values"`
}

// exprBuilder assembles an expression graph node by node. Node names are
// sequential integers, matching what the official client libraries emit.
type exprBuilder struct {
	nodes map[string]any
	next  int
}

func newExprBuilder() *exprBuilder {
	return &exprBuilder{nodes: make(map[string]any)}
}

func (b *exprBuilder) add(node map[string]any) string {
	name := strconv.Itoa(b.next)
	b.next++
	b.nodes[name] = node
	return name
}

// invoke adds a function-invocation node. Argument values must already be
// value objects (eeConstant or ref).
func (b *exprBuilder) invoke(functionName string, args map[string]any) string {
	return b.add(map[string]any{
		"functionInvocationValue": map[string]any{
			"functionName": functionName,
			"arguments":    args,
		},
	})
}

func (b *exprBuilder) build(result string) *eeExpression {
	return &eeExpression{Result: result, Values: b.nodes}
}

// eeConstant wraps a literal as an inline constant value object.
func eeConstant(v any) map[string]any {
	return map[string]any{"constantValue": v}
}

// ref points an argument at another node in the graph.
func ref(name string) map[string]any {
	return map[string]any{"valueReference": name}
}

// geometry adds a geometry-constructor node for a GeoJSON polygon or
// multipolygon and returns its node name.
func (b *exprBuilder) geometry(geom *Geometry) string {
	var g struct {
		Type        string          `json:"type"`
		Coordinates json.RawMessage `json:"coordinates"`
	}
	if err := json.Unmarshal(geom.GeoJSON, &g); err != nil {
		// Let the backend reject it; an empty polygon keeps the graph valid.
		return b.invoke("GeometryConstructors.Polygon", map[string]any{
			"coordinates": eeConstant([]any{}),
		})
	}

	var coords any
	_ = json.Unmarshal(g.Coordinates, &coords)

	fn := "GeometryConstructors.Polygon"
	if strings.EqualFold(g.Type, "MultiPolygon") {
		fn = "GeometryConstructors.MultiPolygon"
	}
	return b.invoke(fn, map[string]any{
		"coordinates": eeConstant(coords),
		"geodesic":    eeConstant(false),
	})
}

// geometryExpression builds a single-call graph applying one geometry
// function (Geometry.area, Geometry.bounds, ...) to geom.
func geometryExpression(functionName string, geom *Geometry, extra map[string]any) *eeExpression {
	b := newExprBuilder()
	args := map[string]any{"geometry": ref(b.geometry(geom))}
	for k, v := range extra {
		args[k] = v
	}
	return b.build(b.invoke(functionName, args))
}

// filteredCollection adds the load → filterDate → filterBounds → cloud-filter
// chain shared by the imagery tools. Any of region/cloudField may be empty to
// skip that stage.
func (b *exprBuilder) filteredCollection(datasetID, startDate, endDate string, region *Geometry, cloudField string, maxCloud float64) string {
	col := b.invoke("ImageCollection.load", map[string]any{
		"id": eeConstant(datasetID),
	})

	dateRange := b.invoke("DateRange", map[string]any{
		"start": eeConstant(startDate),
		"end":   eeConstant(endDate),
	})
	dateFilter := b.invoke("Filter.dateRangeContains", map[string]any{
		"leftValue":  ref(dateRange),
		"rightField": eeConstant("system:time_start"),
	})
	col = b.invoke("Collection.filter", map[string]any{
		"collection": ref(col),
		"filter":     ref(dateFilter),
	})

	if region != nil {
		boundsFilter := b.invoke("Filter.intersects", map[string]any{
			"leftField":  eeConstant(".all"),
			"rightValue": ref(b.geometry(region)),
		})
		col = b.invoke("Collection.filter", map[string]any{
			"collection": ref(col),
			"filter":     ref(boundsFilter),
		})
	}

	if cloudField != "" {
		cloudFilter := b.invoke("Filter.lessThan", map[string]any{
			"leftField":  eeConstant(cloudField),
			"rightValue": eeConstant(maxCloud),
		})
		col = b.invoke("Collection.filter", map[string]any{
			"collection": ref(col),
			"filter":     ref(cloudFilter),
		})
	}

	return col
}

// compositeMethods maps user-facing composite names to the reducer algorithms
// applied over a filtered collection.
var compositeMethods = map[string]string{
	"median": "reduce.median",
	"mean":   "reduce.mean",
	"min":    "reduce.min",
	"max":    "reduce.max",
	"mosaic": "ImageCollection.mosaic",
}

// composite collapses a filtered collection node into a single image.
func (b *exprBuilder) composite(collection, method string) string {
	fn, ok := compositeMethods[method]
	if !ok {
		fn = compositeMethods["median"]
	}
	return b.invoke(fn, map[string]any{
		"collection": ref(collection),
	})
}

// normalizedDifference adds (b1 - b2) / (b1 + b2) over an image node.
func (b *exprBuilder) normalizedDifference(image string, band1, band2 string) string {
	return b.invoke("Image.normalizedDifference", map[string]any{
		"input":     ref(image),
		"bandNames": eeConstant([]string{band1, band2}),
	})
}

// reduceRegionMean adds a mean reduction of an image over a region at the
// given scale. bestEffort keeps large regions from exceeding the pixel limit.
func (b *exprBuilder) reduceRegionMean(image, region string, scale float64) string {
	reducer := b.invoke("Reducer.mean", map[string]any{})
	return b.invoke("Image.reduceRegion", map[string]any{
		"image":      ref(image),
		"reducer":    ref(reducer),
		"geometry":   ref(region),
		"scale":      eeConstant(scale),
		"maxPixels":  eeConstant(1e9),
		"bestEffort": eeConstant(true),
	})
}

// visualize adds an RGB rendering of an image for thumbnails.
func (b *exprBuilder) visualize(image string, bands []string, minVal, maxVal float64, palette []string) string {
	args := map[string]any{
		"image": ref(image),
		"min":   eeConstant([]float64{minVal}),
		"max":   eeConstant([]float64{maxVal}),
	}
	if len(bands) > 0 {
		args["bands"] = eeConstant(bands)
	}
	if len(palette) > 0 {
		args["palette"] = eeConstant(palette)
	}
	return b.invoke("Image.visualize", args)
}

// collectionSize counts the images in a collection node.
func (b *exprBuilder) collectionSize(collection string) string {
	return b.invoke("Collection.size", map[string]any{
		"collection": ref(collection),
	})
}

// clipImage restricts an image to a region node.
func (b *exprBuilder) clipImage(image, region string) string {
	return b.invoke("Image.clip", map[string]any{
		"input":    ref(image),
		"geometry": ref(region),
	})
}
