package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/glimpse-dev/glimpse/pkg/domain"
)

// DefaultBridgeURL is where an instrumented application listens by
// default.
const DefaultBridgeURL = "http://127.0.0.1:9999"

// Client talks to the inspection bridge of a running application over its
// loopback HTTP surface. The MCP server process is separate from the
// application process; this client is the only link between them.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a bridge client for the given base URL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBridgeURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// StatusInfo mirrors the bridge /status payload.
type StatusInfo struct {
	Status      string `json:"status"`
	App         string `json:"app"`
	PID         int    `json:"pid"`
	UptimeSecs  int64  `json:"uptime_secs"`
	UptimeHuman string `json:"uptime_human"`
}

// Status fetches bridge health and host process info.
func (c *Client) Status(ctx context.Context) (*StatusInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/status", nil)
	if err != nil {
		return nil, err
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bridge unreachable: %w", err)
	}
	defer res.Body.Close()

	var info StatusInfo
	if err := json.NewDecoder(res.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode status: %w", err)
	}
	return &info, nil
}

// Eval runs raw script text in the document context.
func (c *Client) Eval(ctx context.Context, script string) (string, error) {
	return c.post(ctx, "/eval", map[string]any{"script": script})
}

// Query extracts a value from the first selector match. Mode defaults to
// text; attr is only meaningful for mode "attr".
func (c *Client) Query(ctx context.Context, selector, mode, attr string) (string, error) {
	body := map[string]any{"selector": selector}
	if mode != "" {
		body["mode"] = mode
	}
	if attr != "" {
		body["attr"] = attr
	}
	return c.post(ctx, "/query", body)
}

// Dom fetches the projected document tree. Zero budgets select the bridge
// defaults.
func (c *Client) Dom(ctx context.Context, selector string, maxDepth, maxNodes int) (string, error) {
	q := url.Values{}
	if selector != "" {
		q.Set("selector", selector)
	}
	if maxDepth > 0 {
		q.Set("max_depth", strconv.Itoa(maxDepth))
	}
	if maxNodes > 0 {
		q.Set("max_nodes", strconv.Itoa(maxNodes))
	}
	path := "/dom"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	return c.get(ctx, path)
}

// Inspect runs the visibility analysis for one element.
func (c *Client) Inspect(ctx context.Context, selector string) (string, error) {
	return c.post(ctx, "/inspect", map[string]any{"selector": selector})
}

// ValidateClasses checks style-rule availability for the named classes.
func (c *Client) ValidateClasses(ctx context.Context, classes []string) (string, error) {
	return c.post(ctx, "/validate-classes", map[string]any{"classes": classes})
}

// Diagnose runs the aggregate document health scan.
func (c *Client) Diagnose(ctx context.Context) (string, error) {
	return c.get(ctx, "/diagnose")
}

// Screenshot captures the application window and returns the file
// written. The endpoint answers with a flat payload rather than the
// result envelope.
func (c *Client) Screenshot(ctx context.Context, path string) (string, error) {
	body := map[string]any{}
	if path != "" {
		body["path"] = path
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/screenshot", bytes.NewReader(encoded))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("bridge unreachable: %w", err)
	}
	defer res.Body.Close()

	var payload struct {
		OK   bool          `json:"ok"`
		Path string        `json:"path"`
		Err  *domain.Error `json:"error"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode screenshot response: %w", err)
	}
	if payload.Err != nil {
		return "", payload.Err
	}
	if !payload.OK {
		return "", fmt.Errorf("screenshot failed with status %s", res.Status)
	}
	return payload.Path, nil
}

func (c *Client) get(ctx context.Context, path string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return "", err
	}
	return c.do(req)
}

func (c *Client) post(ctx context.Context, path string, body any) (string, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

// do executes a request and unwraps the bridge result envelope. Failures
// surface the structured error so tools can report the stable kind.
func (c *Client) do(req *http.Request) (string, error) {
	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("bridge unreachable: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var envelope struct {
		OK     bool            `json:"ok"`
		Result json.RawMessage `json:"result"`
		Err    *domain.Error   `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", fmt.Errorf("decode response (%s): %w", res.Status, err)
	}
	if envelope.Err != nil {
		return "", envelope.Err
	}
	if !envelope.OK {
		return "", fmt.Errorf("bridge returned %s without error detail", res.Status)
	}
	return string(envelope.Result), nil
}
