package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testClient(handler http.HandlerFunc) (*EarthEngineClient, *httptest.Server) {
	ts := httptest.NewServer(handler)
	c := &EarthEngineClient{
		httpClient: ts.Client(),
		baseURL:    ts.URL,
		project:    "test-project",
	}
	return c, ts
}

func TestQueryByFieldEquals(t *testing.T) {
	var gotPath, gotFilter string
	c, ts := testClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotFilter = r.URL.Query().Get("filter")
		fmt.Fprint(w, `{"type":"FeatureCollection","features":[
			{"type":"Feature","geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]},"properties":{"ADM0_NAME":"France"}}
		]}`)
	})
	defer ts.Close()

	res, err := c.QueryByFieldEquals(context.Background(), "FAO/GAUL_SIMPLIFIED_500m/2015/level0", "ADM0_NAME", "France")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if res.MatchCount != 1 || res.First == nil {
		t.Fatalf("result: got %+v", res)
	}
	if !strings.Contains(gotPath, "projects/earthengine-public/assets/FAO/GAUL_SIMPLIFIED_500m/2015/level0:listFeatures") {
		t.Errorf("path: got %q", gotPath)
	}
	if gotFilter != `ADM0_NAME == "France"` {
		t.Errorf("filter: got %q", gotFilter)
	}
}

func TestQueryByFieldEquals_NoMatch(t *testing.T) {
	c, ts := testClient(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"type":"FeatureCollection","features":[]}`)
	})
	defer ts.Close()

	res, err := c.QueryByFieldEquals(context.Background(), "TIGER/2018/States", "NAME", "Nowhere")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if res.MatchCount != 0 || res.First != nil {
		t.Errorf("expected empty result, got %+v", res)
	}
}

func TestArea_ComputesNumber(t *testing.T) {
	var gotBody map[string]any
	c, ts := testClient(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/projects/test-project/value:compute") {
			t.Errorf("path: got %q", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		fmt.Fprint(w, `{"result":1234567.89}`)
	})
	defer ts.Close()

	geom := &Geometry{GeoJSON: []byte(`{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}`)}
	area, err := c.Area(context.Background(), geom)
	if err != nil {
		t.Fatalf("area: %v", err)
	}
	if area != 1234567.89 {
		t.Errorf("area: got %v", area)
	}
	if gotBody["expression"] == nil {
		t.Error("request should carry an expression graph")
	}
}

func TestCentroid_ParsesPoint(t *testing.T) {
	c, ts := testClient(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":{"type":"Point","coordinates":[2.35,48.85]}}`)
	})
	defer ts.Close()

	lon, lat, err := c.Centroid(context.Background(), &Geometry{GeoJSON: []byte(`{}`)})
	if err != nil {
		t.Fatalf("centroid: %v", err)
	}
	if lon != 2.35 || lat != 48.85 {
		t.Errorf("centroid: got (%v, %v)", lon, lat)
	}
}

func TestCreateThumbnail_URL(t *testing.T) {
	c, ts := testClient(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/projects/test-project/thumbnails") {
			t.Errorf("path: got %q", r.URL.Path)
		}
		fmt.Fprint(w, `{"name":"projects/test-project/thumbnails/abc123"}`)
	})
	defer ts.Close()

	b := newExprBuilder()
	expr := b.build(b.invoke("Image.load", map[string]any{"id": eeConstant("X")}))
	url, err := c.CreateThumbnail(context.Background(), expr, 512, 512)
	if err != nil {
		t.Fatalf("thumbnail: %v", err)
	}
	want := ts.URL + "/v1/projects/test-project/thumbnails/abc123:getPixels"
	if url != want {
		t.Errorf("url: got %q, want %q", url, want)
	}
}

func TestExportImage_DefaultState(t *testing.T) {
	c, ts := testClient(func(w http.ResponseWriter, r *http.Request) {
		// No metadata.state in the response: client must default to PENDING.
		fmt.Fprint(w, `{"name":"projects/test-project/operations/XYZ","done":false}`)
	})
	defer ts.Close()

	name, state, err := c.ExportImage(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if name != "projects/test-project/operations/XYZ" {
		t.Errorf("name: got %q", name)
	}
	if state != "PENDING" {
		t.Errorf("state: got %q", state)
	}
}

func TestDo_ErrorStatus(t *testing.T) {
	c, ts := testClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"asset not found"}}`, http.StatusNotFound)
	})
	defer ts.Close()

	_, err := c.ListFeatures(context.Background(), "NO/SUCH/ASSET", "", 1)
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error should carry the status: got %v", err)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 300); got != "short" {
		t.Errorf("truncate: got %q", got)
	}
	long := strings.Repeat("x", 400)
	got := truncate(long, 300)
	if len(got) != 303 || !strings.HasSuffix(got, "...") {
		t.Errorf("truncate: got len %d", len(got))
	}
}
