package smartui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/raysh454/smartshot/internal/logging"
)

// maxBodySize caps how much of a server response is read.
const maxBodySize = 32 << 20

// Client talks to a SmartUI CLI server and captures snapshots of a Driver's
// current page.
type Client struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
	now     func() time.Time
}

// NewClient returns a Client for cfg. httpClient may be nil.
func NewClient(cfg Config, logger logging.Logger, httpClient *http.Client) *Client {
	if logger == nil {
		logger = logging.Nop()
	}
	if cfg.ServerAddress == "" {
		cfg.ServerAddress = DefaultServerAddress
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.ServerAddress, "/"),
		http:    httpClient,
		logger:  logger.With(logging.Field{Key: "component", Value: "smartui"}),
		now:     time.Now,
	}
}

// IsRunning reports whether the SmartUI server answers its healthcheck.
func (c *Client) IsRunning(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthcheck", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("healthcheck failed", logging.Err(err))
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
	return resp.StatusCode == http.StatusOK
}

// FetchDOMSerializer returns the serializer script the server hands out.
func (c *Client) FetchDOMSerializer(ctx context.Context) (string, error) {
	var out domSerializerResponse
	if err := c.doJSON(ctx, http.MethodGet, "/domserializer", nil, &out); err != nil {
		return "", fmt.Errorf("fetch dom serializer: %w", err)
	}
	if out.Error != nil && out.Error.Message != "" {
		return "", fmt.Errorf("fetch dom serializer: %s", out.Error.Message)
	}
	if strings.TrimSpace(out.Data.DOM) == "" {
		return "", fmt.Errorf("fetch dom serializer: empty script")
	}
	return out.Data.DOM, nil
}

// Snapshot serializes the Driver's current page and uploads it to the server
// under name. Every failure wraps ErrCapture.
func (c *Client) Snapshot(ctx context.Context, d Driver, name string, opts Options) (*ArtifactRef, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: snapshot name is required", ErrCapture)
	}
	if d == nil {
		return nil, fmt.Errorf("%w: no browser session", ErrCapture)
	}
	if !c.IsRunning(ctx) {
		return nil, fmt.Errorf("%w: SmartUI server is not running at %s", ErrCapture, c.baseURL)
	}

	script, err := c.FetchDOMSerializer(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCapture, err)
	}

	if _, err := d.ExecuteScript(ctx, script, nil); err != nil {
		return nil, fmt.Errorf("%w: load dom serializer: %w", ErrCapture, err)
	}

	if opts == nil {
		opts = Options{}
	}
	encOpts, err := json.Marshal(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: encode options: %w", ErrCapture, err)
	}
	dom, err := d.ExecuteScript(ctx, fmt.Sprintf("return SmartUIDOM.serialize(%s)", encOpts), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: serialize dom: %w", ErrCapture, err)
	}
	if dom == nil {
		return nil, fmt.Errorf("%w: serializer returned no dom", ErrCapture)
	}

	pageURL, err := d.CurrentURL(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCapture, err)
	}

	body := snapshotRequest{
		Snapshot: snapshotPayload{DOM: dom, Name: name, URL: pageURL, Options: opts},
		TestType: TestType,
	}
	var out snapshotResponse
	if err := c.doJSON(ctx, http.MethodPost, "/snapshot", body, &out); err != nil {
		return nil, fmt.Errorf("%w: upload snapshot %q: %w", ErrCapture, name, err)
	}
	if out.Error != nil && out.Error.Message != "" {
		return nil, fmt.Errorf("%w: upload snapshot %q: %s", ErrCapture, name, out.Error.Message)
	}

	ref := &ArtifactRef{
		ID:         uuid.NewString(),
		Name:       name,
		URL:        pageURL,
		SessionID:  d.ID(),
		Title:      pageTitle(dom),
		CapturedAt: c.now().UTC(),
	}
	if out.Data != nil {
		ref.Warnings = out.Data.Warnings
	}
	for _, w := range ref.Warnings {
		c.logger.Warn(w, logging.Field{Key: "snapshot", Value: name})
	}
	c.logger.Info("snapshot captured",
		logging.Field{Key: "snapshot", Value: name},
		logging.Field{Key: "url", Value: pageURL},
		logging.Field{Key: "artifact_id", Value: ref.ID})
	return ref, nil
}

// doJSON sends in (if any) as JSON and decodes the response into out. Non-2xx
// responses are errors; the server's error message is used when it sends one.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var bodyReader io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		bodyReader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("sending smartui request",
		logging.Field{Key: "method", Value: method},
		logging.Field{Key: "path", Value: path})

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error *apiError `json:"error"`
		}
		if json.Unmarshal(data, &e) == nil && e.Error != nil && e.Error.Message != "" {
			return fmt.Errorf("status %d: %s", resp.StatusCode, e.Error.Message)
		}
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// pageTitle reads the <title> out of a serialized DOM. It returns "" when the
// DOM has no html string.
func pageTitle(dom any) string {
	m, ok := dom.(map[string]any)
	if !ok {
		return ""
	}
	html, ok := m["html"].(string)
	if !ok || html == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
