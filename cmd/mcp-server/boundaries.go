package main

import (
	"context"
	"encoding/json"
	"strings"
)

// Geometry is an opaque handle to a polygon owned by the boundary provider.
// Tool handlers pass it through to the compute provider; they never inspect
// the coordinates themselves.
type Geometry struct {
	GeoJSON json.RawMessage
}

// boundaryQueryResult is the outcome of a single feature-collection query.
type boundaryQueryResult struct {
	MatchCount int
	First      *Geometry
}

type fieldCondition struct {
	Field string
	Value string
}

// boundaryProvider is the feature-collection query capability the resolver
// consumes. The production implementation is the Earth Engine REST client;
// tests substitute a fake.
type boundaryProvider interface {
	QueryByFieldEquals(ctx context.Context, collectionID, field, value string) (boundaryQueryResult, error)
	QueryByFieldsEqualsAnd(ctx context.Context, collectionID string, conds []fieldCondition) (boundaryQueryResult, error)
}

// boundaryDataset describes one queryable administrative-boundary collection:
// the asset id, the name fields to match against, and a human-readable level.
type boundaryDataset struct {
	CollectionID string
	Fields       []string
	Level        string
}

// Fixed dataset order: most specific administrative granularity first, so a
// name that exists at several levels resolves to the finest one.
var boundaryDatasets = []boundaryDataset{
	{
		CollectionID: "FAO/GAUL_SIMPLIFIED_500m/2015/level2",
		Fields:       []string{"ADM2_NAME"},
		Level:        "City/District",
	},
	{
		CollectionID: "FAO/GAUL_SIMPLIFIED_500m/2015/level1",
		Fields:       []string{"ADM1_NAME"},
		Level:        "State/Province",
	},
	{
		CollectionID: "FAO/GAUL_SIMPLIFIED_500m/2015/level0",
		Fields:       []string{"ADM0_NAME"},
		Level:        "Country",
	},
	{
		CollectionID: "TIGER/2018/Counties",
		Fields:       []string{"NAME", "NAMELSAD"},
		Level:        "County",
	},
	{
		CollectionID: "TIGER/2018/States",
		Fields:       []string{"NAME", "STUSPS"},
		Level:        "State",
	},
}

// GAUL level-2 parent-name fields used by the context-qualified strategy:
// country first, then state/province.
const (
	districtDatasetID  = "FAO/GAUL_SIMPLIFIED_500m/2015/level2"
	districtNameField  = "ADM2_NAME"
	countryParentField = "ADM0_NAME"
	stateParentField   = "ADM1_NAME"
)

// eeFilterEquals builds an equality filter expression for assets:listFeatures,
// e.g. ADM0_NAME == "France".
func eeFilterEquals(field, value string) string {
	return field + ` == "` + escapeFilterValue(value) + `"`
}

// eeFilterAnd joins equality conditions with AND.
func eeFilterAnd(conds []fieldCondition) string {
	parts := make([]string, len(conds))
	for i, c := range conds {
		parts[i] = eeFilterEquals(c.Field, c.Value)
	}
	return strings.Join(parts, " AND ")
}

func escapeFilterValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `"`, `\"`)
}
