package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// regionSpec is the region argument shared by the imagery tools: either a
// place name (resolved through the boundary resolver) or an explicit
// bounding box.
type regionSpec struct {
	Place   string
	West    float64
	South   float64
	East    float64
	North   float64
	hasBBox bool
}

// regionFromRequest reads the common region arguments. Place takes precedence
// over the bounding box when both are supplied.
func regionFromRequest(req mcp.CallToolRequest) regionSpec {
	spec := regionSpec{
		Place: req.GetString("place", ""),
		West:  req.GetFloat("west", 0),
		South: req.GetFloat("south", 0),
		East:  req.GetFloat("east", 0),
		North: req.GetFloat("north", 0),
	}
	spec.hasBBox = spec.West != spec.East && spec.South != spec.North
	return spec
}

func (r regionSpec) empty() bool {
	return r.Place == "" && !r.hasBBox
}

// resolve turns the spec into a geometry and a human-readable description.
// Place names go through the resolver (and cache); bounding boxes become a
// rectangle polygon directly.
func (r regionSpec) resolve(ctx context.Context) (*Geometry, string, error) {
	if r.Place != "" {
		rb, err := resolvePlace(ctx, r.Place)
		if err != nil {
			return nil, "", err
		}
		return rb.Geometry, fmt.Sprintf("%s (%s)", r.Place, rb.Level), nil
	}

	if !r.hasBBox {
		return nil, "", fmt.Errorf("region is required: provide a place name or west/south/east/north bounds")
	}
	if r.West >= r.East || r.South >= r.North {
		return nil, "", fmt.Errorf("invalid bounding box: west must be less than east and south less than north")
	}
	if r.South < -90 || r.North > 90 || r.West < -180 || r.East > 180 {
		return nil, "", fmt.Errorf("bounding box out of range: latitudes within ±90, longitudes within ±180")
	}

	return rectangleGeometry(r.West, r.South, r.East, r.North),
		fmt.Sprintf("bbox:[%.3f,%.3f,%.3f,%.3f]", r.West, r.South, r.East, r.North), nil
}

// rectangleGeometry builds a closed GeoJSON rectangle ring.
func rectangleGeometry(west, south, east, north float64) *Geometry {
	poly := map[string]any{
		"type": "Polygon",
		"coordinates": [][][2]float64{{
			{west, south},
			{east, south},
			{east, north},
			{west, north},
			{west, south},
		}},
	}
	data, _ := json.Marshal(poly)
	return &Geometry{GeoJSON: data}
}

// notFoundResult converts a resolver failure into a tool error, preserving
// the remediation hint for LocationNotFound.
func notFoundResult(err error) *mcp.CallToolResult {
	var nf *LocationNotFoundError
	if errors.As(err, &nf) {
		return mcp.NewToolResultError(nf.Error())
	}
	return mcp.NewToolResultError(fmt.Sprintf("region resolution failed: %v", err))
}
