package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// fakeProvider answers boundary queries from in-memory maps. Keys are
// "collection|field|value" for single-condition queries and
// "collection|f1=v1&f2=v2" for AND queries.
type fakeProvider struct {
	features map[string]*Geometry
	failOn   map[string]error
	queries  []string
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		features: make(map[string]*Geometry),
		failOn:   make(map[string]error),
	}
}

func (f *fakeProvider) put(collection, field, value string) {
	key := collection + "|" + field + "|" + value
	f.features[key] = &Geometry{GeoJSON: []byte(`{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}`)}
}

func (f *fakeProvider) putAnd(collection string, conds []fieldCondition) {
	f.features[andKey(collection, conds)] = &Geometry{GeoJSON: []byte(`{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}`)}
}

func andKey(collection string, conds []fieldCondition) string {
	parts := make([]string, len(conds))
	for i, c := range conds {
		parts[i] = c.Field + "=" + c.Value
	}
	return collection + "|" + strings.Join(parts, "&")
}

func (f *fakeProvider) QueryByFieldEquals(ctx context.Context, collectionID, field, value string) (boundaryQueryResult, error) {
	key := collectionID + "|" + field + "|" + value
	f.queries = append(f.queries, key)
	if err, ok := f.failOn[key]; ok {
		return boundaryQueryResult{}, err
	}
	if g, ok := f.features[key]; ok {
		return boundaryQueryResult{MatchCount: 1, First: g}, nil
	}
	return boundaryQueryResult{}, nil
}

func (f *fakeProvider) QueryByFieldsEqualsAnd(ctx context.Context, collectionID string, conds []fieldCondition) (boundaryQueryResult, error) {
	key := andKey(collectionID, conds)
	f.queries = append(f.queries, key)
	if err, ok := f.failOn[key]; ok {
		return boundaryQueryResult{}, err
	}
	if g, ok := f.features[key]; ok {
		return boundaryQueryResult{MatchCount: 1, First: g}, nil
	}
	return boundaryQueryResult{}, nil
}

func newTestResolver(p boundaryProvider) *locationResolver {
	return newLocationResolver(p)
}

func TestResolve_DistrictLevel(t *testing.T) {
	p := newFakeProvider()
	p.put("FAO/GAUL_SIMPLIFIED_500m/2015/level2", "ADM2_NAME", "Tokyo")

	rb, err := newTestResolver(p).Resolve(context.Background(), "Tokyo")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if rb.DatasetID != "FAO/GAUL_SIMPLIFIED_500m/2015/level2" {
		t.Errorf("dataset: got %q", rb.DatasetID)
	}
	if rb.Level != "City/District" {
		t.Errorf("level: got %q", rb.Level)
	}
	if rb.Geometry == nil {
		t.Error("geometry: got nil")
	}
}

func TestResolve_CountryLevel(t *testing.T) {
	p := newFakeProvider()
	p.put("FAO/GAUL_SIMPLIFIED_500m/2015/level0", "ADM0_NAME", "France")

	rb, err := newTestResolver(p).Resolve(context.Background(), "France")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if rb.Level != "Country" {
		t.Errorf("level: got %q", rb.Level)
	}
}

func TestResolve_FinerLevelWins(t *testing.T) {
	// Same name at country and district level: district must win because
	// datasets are scanned most specific first.
	p := newFakeProvider()
	p.put("FAO/GAUL_SIMPLIFIED_500m/2015/level0", "ADM0_NAME", "Georgia")
	p.put("FAO/GAUL_SIMPLIFIED_500m/2015/level2", "ADM2_NAME", "Georgia")

	rb, err := newTestResolver(p).Resolve(context.Background(), "Georgia")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if rb.Level != "City/District" {
		t.Errorf("level: got %q, want City/District", rb.Level)
	}
}

func TestResolve_CaseVariants(t *testing.T) {
	// Stored upper-case; lower-case input must still match via the
	// upper-case variant.
	p := newFakeProvider()
	p.put("FAO/GAUL_SIMPLIFIED_500m/2015/level1", "ADM1_NAME", "NEW YORK")

	rb, err := newTestResolver(p).Resolve(context.Background(), "new york")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if rb.Level != "State/Province" {
		t.Errorf("level: got %q", rb.Level)
	}
}

func TestResolve_TigerSecondField(t *testing.T) {
	// A county stored only under NAMELSAD still resolves.
	p := newFakeProvider()
	p.put("TIGER/2018/Counties", "NAMELSAD", "Los Angeles County")

	rb, err := newTestResolver(p).Resolve(context.Background(), "Los Angeles County")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if rb.DatasetID != "TIGER/2018/Counties" {
		t.Errorf("dataset: got %q", rb.DatasetID)
	}
	if rb.Level != "County" {
		t.Errorf("level: got %q", rb.Level)
	}
}

func TestResolve_ContextQualified(t *testing.T) {
	// Bare "Paris" is ambiguous here (no single-field match); the
	// country-qualified AND query resolves it.
	p := newFakeProvider()
	p.putAnd("FAO/GAUL_SIMPLIFIED_500m/2015/level2", []fieldCondition{
		{Field: "ADM2_NAME", Value: "Paris"},
		{Field: "ADM0_NAME", Value: "France"},
	})

	rb, err := newTestResolver(p).Resolve(context.Background(), "Paris, France")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if rb.Level != "City/District" {
		t.Errorf("level: got %q", rb.Level)
	}
	if rb.DatasetID != districtDatasetID {
		t.Errorf("dataset: got %q", rb.DatasetID)
	}
}

func TestResolve_ContextStateFallback(t *testing.T) {
	// Country-parent query misses, state-parent query hits.
	p := newFakeProvider()
	p.putAnd("FAO/GAUL_SIMPLIFIED_500m/2015/level2", []fieldCondition{
		{Field: "ADM2_NAME", Value: "Springfield"},
		{Field: "ADM1_NAME", Value: "Illinois"},
	})

	rb, err := newTestResolver(p).Resolve(context.Background(), "Springfield, Illinois")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if rb.Level != "City/District" {
		t.Errorf("level: got %q", rb.Level)
	}
}

func TestResolve_SuffixStrip(t *testing.T) {
	p := newFakeProvider()
	p.put("FAO/GAUL_SIMPLIFIED_500m/2015/level2", "ADM2_NAME", "San Francisco")

	rb, err := newTestResolver(p).Resolve(context.Background(), "San Francisco City")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if rb.Level != "City/District" {
		t.Errorf("level: got %q", rb.Level)
	}
}

func TestResolve_NotFound(t *testing.T) {
	p := newFakeProvider()

	_, err := newTestResolver(p).Resolve(context.Background(), "Atlantis")
	if err == nil {
		t.Fatal("expected error for unknown place")
	}
	var nf *LocationNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error type: got %T", err)
	}
	if !strings.Contains(err.Error(), "Atlantis") {
		t.Errorf("error should name the place: got %q", err.Error())
	}
}

func TestResolve_QueryErrorDoesNotAbortScan(t *testing.T) {
	// Every district-level query fails; the country-level match must still
	// be found.
	p := newFakeProvider()
	for _, v := range nameVariants("Kenya") {
		p.failOn["FAO/GAUL_SIMPLIFIED_500m/2015/level2|ADM2_NAME|"+v] = fmt.Errorf("backend timeout")
	}
	p.put("FAO/GAUL_SIMPLIFIED_500m/2015/level0", "ADM0_NAME", "Kenya")

	rb, err := newTestResolver(p).Resolve(context.Background(), "Kenya")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if rb.Level != "Country" {
		t.Errorf("level: got %q", rb.Level)
	}
}

func TestResolve_SuffixRecursionBounded(t *testing.T) {
	// Multiply-suffixed garbage must terminate with not-found, not loop.
	p := newFakeProvider()
	_, err := newTestResolver(p).Resolve(context.Background(), "x city city city city city")
	var nf *LocationNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected LocationNotFoundError, got %v", err)
	}
}

func TestSplitPlace(t *testing.T) {
	cases := []struct {
		in          string
		primary     string
		wantContext string
	}{
		{"Tokyo", "Tokyo", ""},
		{"Paris, France", "Paris", "France"},
		{"  Paris ,  France ", "Paris", "France"},
		{"Springfield, Illinois, USA", "Springfield", "Illinois, USA"},
	}
	for _, c := range cases {
		primary, context := splitPlace(c.in)
		if primary != c.primary || context != c.wantContext {
			t.Errorf("splitPlace(%q): got (%q, %q), want (%q, %q)",
				c.in, primary, context, c.primary, c.wantContext)
		}
	}
}

func TestNameVariants(t *testing.T) {
	got := nameVariants("new york")
	want := []string{"new york", "New York", "NEW YORK"}
	if len(got) != len(want) {
		t.Fatalf("variants: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("variant[%d]: got %q, want %q", i, got[i], want[i])
		}
	}

	// Already title-cased input dedupes to three variants too.
	got = nameVariants("Tokyo")
	want = []string{"Tokyo", "TOKYO", "tokyo"}
	if len(got) != len(want) {
		t.Fatalf("variants: got %v, want %v", got, want)
	}
}

func TestTitleCase(t *testing.T) {
	cases := map[string]string{
		"new york":    "New York",
		"FRANCE":      "France",
		"são paulo":   "São Paulo",
		"los angeles": "Los Angeles",
	}
	for in, want := range cases {
		if got := titleCase(in); got != want {
			t.Errorf("titleCase(%q): got %q, want %q", in, got, want)
		}
	}
}

func TestStripSuffix(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"San Francisco City", "San Francisco", true},
		{"Los Angeles County", "Los Angeles", true},
		{"Gujarat State", "Gujarat", true},
		{"Sichuan Province", "Sichuan", true},
		{"Tokyo", "", false},
		{"Kansas City Chiefs", "", false},
	}
	for _, c := range cases {
		got, ok := stripSuffix(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("stripSuffix(%q): got (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestEEFilterEquals(t *testing.T) {
	if got := eeFilterEquals("ADM0_NAME", "France"); got != `ADM0_NAME == "France"` {
		t.Errorf("filter: got %q", got)
	}
	if got := eeFilterEquals("NAME", `O"Brien`); got != `NAME == "O\"Brien"` {
		t.Errorf("escaped filter: got %q", got)
	}
}

func TestEEFilterAnd(t *testing.T) {
	got := eeFilterAnd([]fieldCondition{
		{Field: "ADM2_NAME", Value: "Paris"},
		{Field: "ADM0_NAME", Value: "France"},
	})
	want := `ADM2_NAME == "Paris" AND ADM0_NAME == "France"`
	if got != want {
		t.Errorf("and filter: got %q, want %q", got, want)
	}
}
