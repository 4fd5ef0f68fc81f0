package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// DefaultTimeout bounds every outbound request; there is no retry, so
	// this is also the upper bound on how long a venue can stall the run.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies the collector to venue sites.
	DefaultUserAgent = "boston-shows/1.0 (github.com/rockhound/boston-shows)"
)

// Client performs single outbound HTTP requests for venue handlers.
// Each call is a live network request; nothing is cached or retried.
type Client struct {
	http      *http.Client
	userAgent string
}

// New creates a Client with the given timeout. A zero or negative timeout
// falls back to DefaultTimeout.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: DefaultUserAgent,
	}
}

// SetUserAgent overrides the User-Agent header sent with every request.
func (c *Client) SetUserAgent(ua string) {
	if ua != "" {
		c.userAgent = ua
	}
}

// Get performs a GET against rawurl with optional query params and returns
// the response body. Non-2xx statuses and transport failures are errors.
func (c *Client) Get(ctx context.Context, rawurl string, params url.Values) ([]byte, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, fmt.Errorf("parsing URL %q: %w", rawurl, err)
	}
	if params != nil {
		u.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", u.Host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching %s: unexpected status code: %d", u.Host, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", u.Host, err)
	}
	return body, nil
}

// Post performs a form POST against rawurl and returns the response body.
// Non-2xx statuses and transport failures are errors.
func (c *Client) Post(ctx context.Context, rawurl string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawurl, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("posting to %s: %w", req.URL.Host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("posting to %s: unexpected status code: %d", req.URL.Host, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", req.URL.Host, err)
	}
	return body, nil
}

// GetJSON performs a GET and decodes the JSON response body into v.
func (c *Client) GetJSON(ctx context.Context, rawurl string, params url.Values, v any) error {
	body, err := c.Get(ctx, rawurl, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding JSON response: %w", err)
	}
	return nil
}

// GetDocument performs a GET and parses the response body as an HTML
// document ready for selector traversal.
func (c *Client) GetDocument(ctx context.Context, rawurl string, params url.Values) (*goquery.Document, error) {
	body, err := c.Get(ctx, rawurl, params)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}
