package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"golang.org/x/oauth2/google"
)

const (
	eeBaseURL       = "https://earthengine.googleapis.com"
	eeScope         = "https://www.googleapis.com/auth/earthengine"
	eeCloudScope    = "https://www.googleapis.com/auth/cloud-platform"
	eePublicProject = "projects/earthengine-public"
)

var ee *EarthEngineClient

// EarthEngineClient is a thin wrapper over the Earth Engine REST API,
// authenticated with a service-account key. It implements both the
// boundaryProvider and geometryCalculator contracts consumed by the resolver.
type EarthEngineClient struct {
	httpClient *http.Client
	baseURL    string
	project    string
}

// initEarthEngine authenticates against Earth Engine with the service-account
// key at EE_SERVICE_ACCOUNT_KEY for project EE_PROJECT. Called once at
// startup; handlers check eeAvailable() before use.
func initEarthEngine(ctx context.Context) error {
	project := os.Getenv("EE_PROJECT")
	if project == "" {
		return fmt.Errorf("EE_PROJECT environment variable is required")
	}

	keyPath := os.Getenv("EE_SERVICE_ACCOUNT_KEY")
	if keyPath == "" {
		return fmt.Errorf("EE_SERVICE_ACCOUNT_KEY environment variable is required")
	}

	keyJSON, err := os.ReadFile(keyPath)
	if err != nil {
		return fmt.Errorf("failed to read service account key: %w", err)
	}

	conf, err := google.JWTConfigFromJSON(keyJSON, eeScope, eeCloudScope)
	if err != nil {
		return fmt.Errorf("failed to parse service account key: %w", err)
	}

	httpClient := conf.Client(ctx)
	httpClient.Timeout = 60 * time.Second

	ee = &EarthEngineClient{
		httpClient: httpClient,
		baseURL:    eeBaseURL,
		project:    project,
	}
	return nil
}

func eeAvailable() bool {
	return ee != nil
}

// publicAsset addresses an asset in the public Earth Engine catalog,
// e.g. "FAO/GAUL_SIMPLIFIED_500m/2015/level0".
func publicAsset(assetID string) string {
	return eePublicProject + "/assets/" + assetID
}

type eeFeature struct {
	Type       string          `json:"type"`
	Geometry   json.RawMessage `json:"geometry"`
	Properties map[string]any  `json:"properties"`
}

type eeFeaturePage struct {
	Type          string      `json:"type"`
	Features      []eeFeature `json:"features"`
	NextPageToken string      `json:"nextPageToken"`
}

// ListFeatures queries a feature collection asset with a filter expression,
// returning at most pageSize features.
func (c *EarthEngineClient) ListFeatures(ctx context.Context, assetID, filter string, pageSize int) (*eeFeaturePage, error) {
	params := url.Values{}
	if filter != "" {
		params.Set("filter", filter)
	}
	params.Set("pageSize", strconv.Itoa(pageSize))

	path := "/v1/" + publicAsset(assetID) + ":listFeatures"
	body, err := c.doGet(ctx, path, params)
	if err != nil {
		return nil, err
	}

	var page eeFeaturePage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to parse feature page: %w", err)
	}
	return &page, nil
}

type eeImage struct {
	Name       string         `json:"name"`
	ID         string         `json:"id"`
	StartTime  string         `json:"startTime"`
	Properties map[string]any `json:"properties"`
}

type eeImagePage struct {
	Images        []eeImage `json:"images"`
	NextPageToken string    `json:"nextPageToken"`
}

// ListImages queries an image collection asset with time/region/property
// constraints.
func (c *EarthEngineClient) ListImages(ctx context.Context, assetID string, params url.Values) (*eeImagePage, error) {
	path := "/v1/" + publicAsset(assetID) + ":listImages"
	body, err := c.doGet(ctx, path, params)
	if err != nil {
		return nil, err
	}

	var page eeImagePage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to parse image page: %w", err)
	}
	return &page, nil
}

// QueryByFieldEquals implements boundaryProvider: a single equality filter,
// first match only.
func (c *EarthEngineClient) QueryByFieldEquals(ctx context.Context, collectionID, field, value string) (boundaryQueryResult, error) {
	return c.queryFiltered(ctx, collectionID, eeFilterEquals(field, value))
}

// QueryByFieldsEqualsAnd implements boundaryProvider: all conditions must hold.
func (c *EarthEngineClient) QueryByFieldsEqualsAnd(ctx context.Context, collectionID string, conds []fieldCondition) (boundaryQueryResult, error) {
	return c.queryFiltered(ctx, collectionID, eeFilterAnd(conds))
}

func (c *EarthEngineClient) queryFiltered(ctx context.Context, collectionID, filter string) (boundaryQueryResult, error) {
	page, err := c.ListFeatures(ctx, collectionID, filter, 1)
	if err != nil {
		return boundaryQueryResult{}, err
	}
	result := boundaryQueryResult{MatchCount: len(page.Features)}
	if len(page.Features) > 0 {
		result.First = &Geometry{GeoJSON: page.Features[0].Geometry}
	}
	return result, nil
}

// computeValue posts an expression graph to value:compute and returns the raw
// result node.
func (c *EarthEngineClient) computeValue(ctx context.Context, expr *eeExpression) (json.RawMessage, error) {
	payload := map[string]any{"expression": expr}
	body, err := c.doPost(ctx, "/v1/projects/"+c.project+"/value:compute", payload)
	if err != nil {
		return nil, err
	}

	var out struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to parse compute result: %w", err)
	}
	return out.Result, nil
}

func (c *EarthEngineClient) computeNumber(ctx context.Context, expr *eeExpression) (float64, error) {
	raw, err := c.computeValue(ctx, expr)
	if err != nil {
		return 0, err
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, fmt.Errorf("expected numeric result: %w", err)
	}
	return v, nil
}

// Area implements geometryCalculator. Result is in square meters.
func (c *EarthEngineClient) Area(ctx context.Context, geom *Geometry) (float64, error) {
	return c.computeNumber(ctx, geometryExpression("Geometry.area", geom, map[string]any{
		"maxError": eeConstant(1),
	}))
}

// Perimeter implements geometryCalculator. Result is in meters.
func (c *EarthEngineClient) Perimeter(ctx context.Context, geom *Geometry) (float64, error) {
	return c.computeNumber(ctx, geometryExpression("Geometry.perimeter", geom, map[string]any{
		"maxError": eeConstant(1),
	}))
}

// Bounds implements geometryCalculator: the axis-aligned envelope of the
// geometry as a rectangle polygon.
func (c *EarthEngineClient) Bounds(ctx context.Context, geom *Geometry) (*Geometry, error) {
	raw, err := c.computeValue(ctx, geometryExpression("Geometry.bounds", geom, map[string]any{
		"maxError": eeConstant(1),
	}))
	if err != nil {
		return nil, err
	}
	return &Geometry{GeoJSON: raw}, nil
}

// Centroid implements geometryCalculator, returning the centroid lon/lat.
func (c *EarthEngineClient) Centroid(ctx context.Context, geom *Geometry) (float64, float64, error) {
	raw, err := c.computeValue(ctx, geometryExpression("Geometry.centroid", geom, map[string]any{
		"maxError": eeConstant(1),
	}))
	if err != nil {
		return 0, 0, err
	}

	var point struct {
		Type        string     `json:"type"`
		Coordinates [2]float64 `json:"coordinates"`
	}
	if err := json.Unmarshal(raw, &point); err != nil {
		return 0, 0, fmt.Errorf("expected point result: %w", err)
	}
	return point.Coordinates[0], point.Coordinates[1], nil
}

// CreateThumbnail asks Earth Engine to render an image expression and returns
// a fetchable PNG URL.
func (c *EarthEngineClient) CreateThumbnail(ctx context.Context, expr *eeExpression, width, height int) (string, error) {
	payload := map[string]any{
		"expression": expr,
		"fileFormat": "PNG",
		"grid": map[string]any{
			"dimensions": map[string]any{
				"width":  width,
				"height": height,
			},
		},
	}
	body, err := c.doPost(ctx, "/v1/projects/"+c.project+"/thumbnails", payload)
	if err != nil {
		return "", err
	}

	var out struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("failed to parse thumbnail response: %w", err)
	}
	if out.Name == "" {
		return "", fmt.Errorf("thumbnail response missing name")
	}
	return c.baseURL + "/v1/" + out.Name + ":getPixels", nil
}

// ExportImage starts a server-side export task and returns the operation name
// and its initial state.
func (c *EarthEngineClient) ExportImage(ctx context.Context, req map[string]any) (name, state string, err error) {
	body, err := c.doPost(ctx, "/v1/projects/"+c.project+"/image:export", req)
	if err != nil {
		return "", "", err
	}

	var op struct {
		Name     string `json:"name"`
		Done     bool   `json:"done"`
		Metadata struct {
			State string `json:"state"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(body, &op); err != nil {
		return "", "", fmt.Errorf("failed to parse export operation: %w", err)
	}
	if op.Metadata.State == "" {
		op.Metadata.State = "PENDING"
	}
	return op.Name, op.Metadata.State, nil
}

// GetOperation fetches the current state of an export operation.
func (c *EarthEngineClient) GetOperation(ctx context.Context, name string) (map[string]any, error) {
	body, err := c.doGet(ctx, "/v1/"+name, nil)
	if err != nil {
		return nil, err
	}
	var op map[string]any
	if err := json.Unmarshal(body, &op); err != nil {
		return nil, fmt.Errorf("failed to parse operation: %w", err)
	}
	return op, nil
}

func (c *EarthEngineClient) doGet(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req)
}

func (c *EarthEngineClient) doPost(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *EarthEngineClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("earth engine request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("earth engine returned %d: %s", resp.StatusCode, truncate(string(body), 300))
	}
	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// jsonResult serializes v to indented JSON and returns it as a tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("failed to serialize response"), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
