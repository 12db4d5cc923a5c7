package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Option configures the Client.
type Option interface {
	apply(*Client)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*Client)

func (f optionFunc) apply(c *Client) { f(c) }

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *Client) { c.hc = hc })
}

// WithTimeout sets the per-request timeout. Ignored when WithHTTPClient is
// also given.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *Client) { c.timeout = d })
}

// Client is the hotelsearch SDK entry point. Safe for concurrent use.
type Client struct {
	baseURL string
	hc      *http.Client
	timeout time.Duration
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: defaultTimeout,
	}
	for _, o := range opts {
		o.apply(c)
	}
	if c.hc == nil {
		c.hc = &http.Client{Timeout: c.timeout}
	}
	return c
}

// Search runs a raw hybrid search.
func (c *Client) Search(ctx context.Context, req SearchRequest) (SearchResponse, error) {
	var out SearchResponse
	err := c.post(ctx, "/v1/search", req, &out)
	return out, err
}

// Recommend runs a single full-constraint recommendation search.
func (c *Client) Recommend(ctx context.Context, req RecommendRequest) (RecommendResponse, error) {
	var out RecommendResponse
	err := c.post(ctx, "/v1/recommendations", req, &out)
	return out, err
}

// RecommendWithFallback runs a recommendation search with the tiered fallback
// policy. Check Relaxed and Exhausted on the response.
func (c *Client) RecommendWithFallback(ctx context.Context, req RecommendRequest) (RecommendResponse, error) {
	var out RecommendResponse
	err := c.post(ctx, "/v1/recommendations/fallback", req, &out)
	return out, err
}

// SimilarHotels returns hotels whose reviews resemble the named hotel's.
func (c *Client) SimilarHotels(ctx context.Context, hotelName string, topK int) ([]HotelOption, error) {
	q := url.Values{"name": {hotelName}}
	if topK > 0 {
		q.Set("top_k", strconv.Itoa(topK))
	}

	var out struct {
		Hotels []HotelOption `json:"hotels"`
	}
	if err := c.get(ctx, "/v1/hotels/similar?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return out.Hotels, nil
}

// HotelDetails returns the review analysis and nearest neighbours for one
// hotel.
func (c *Client) HotelDetails(ctx context.Context, hotelName string) (HotelDetails, error) {
	q := url.Values{"name": {hotelName}}

	var out HotelDetails
	if err := c.get(ctx, "/v1/hotels/details?"+q.Encode(), &out); err != nil {
		return HotelDetails{}, err
	}
	return out, nil
}

// Health probes the service and its document store.
func (c *Client) Health(ctx context.Context) error {
	return c.get(ctx, "/healthz", nil)
}

func (c *Client) post(ctx context.Context, path string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	res, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", req.URL.Path, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(res.Body).Decode(&e)
		if e.Error == "" {
			e.Error = http.StatusText(res.StatusCode)
		}
		return apiError(res.StatusCode, e.Error)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
