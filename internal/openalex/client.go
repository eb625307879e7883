// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package openalex queries the OpenAlex works endpoint with full-text
// search filters and maps the results to types.Work.
package openalex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/formula-cooccurrence/internal/httputil"
	"github.com/pdiddy/formula-cooccurrence/pkg/types"
)

const (
	// DefaultBaseURL is the OpenAlex API root.
	DefaultBaseURL = "https://api.openalex.org"

	// MaxPerPage is the largest page size OpenAlex accepts.
	MaxPerPage = 200

	// DefaultTimeout is the per-request timeout of the default HTTP client.
	DefaultTimeout = 60 * time.Second

	defaultUserAgent = "formula-cooccurrence/0.1"

	// selectFields limits the response to what the reports need.
	selectFields = "id,doi,display_name,publication_year,primary_location"
)

// Client searches OpenAlex works by full text. One call to Search issues
// exactly one GET request.
type Client struct {
	httpClient *http.Client
	pacer      *httputil.Pacer
	baseURL    string
	mailto     string
	userAgent  string
	perPage    int
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets the API root (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithMailto sets the contact email sent for polite pool access.
func WithMailto(email string) ClientOption {
	return func(c *Client) {
		c.mailto = email
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithPerPage sets the requested page size, clamped to 1..MaxPerPage.
func WithPerPage(n int) ClientOption {
	return func(c *Client) {
		c.perPage = clampPerPage(n)
	}
}

// WithPacer spaces requests using p.
func WithPacer(p *httputil.Pacer) ClientOption {
	return func(c *Client) {
		c.pacer = p
	}
}

// NewClient creates an OpenAlex client with a 60 s timeout, the maximum page
// size, and no pacing unless options say otherwise.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    DefaultBaseURL,
		userAgent:  defaultUserAgent,
		perPage:    MaxPerPage,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClientFromConfig builds a Client from the run configuration.
func NewClientFromConfig(cfg types.RunConfig) *Client {
	timeout := cfg.HTTP.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	opts := []ClientOption{
		WithHTTPClient(&http.Client{Timeout: timeout}),
		WithMailto(cfg.OpenAlex.Mailto),
		WithUserAgent(cfg.HTTP.UserAgent),
		WithPacer(httputil.NewPacer(cfg.HTTP.Interval)),
	}
	if cfg.OpenAlex.BaseURL != "" {
		opts = append(opts, WithBaseURL(cfg.OpenAlex.BaseURL))
	}
	if cfg.OpenAlex.PerPage > 0 {
		opts = append(opts, WithPerPage(cfg.OpenAlex.PerPage))
	}
	return NewClient(opts...)
}

// Search runs a full-text search for query and returns the first page of
// matching works in response order. Connection failures, non-2xx statuses,
// and malformed payloads are all returned as errors; nothing is retried.
func (c *Client) Search(ctx context.Context, query string) (types.SearchPage, error) {
	if strings.TrimSpace(query) == "" {
		return types.SearchPage{}, fmt.Errorf("empty OpenAlex query")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(query), nil)
	if err != nil {
		return types.SearchPage{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.pacer.Do(ctx, c.httpClient, req)
	if err != nil {
		return types.SearchPage{}, fmt.Errorf("OpenAlex API request: %w", err)
	}
	defer httputil.DrainClose(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return types.SearchPage{}, fmt.Errorf("OpenAlex API returned HTTP %d", resp.StatusCode)
	}

	wr, err := decodeWorks(resp.Body)
	if err != nil {
		return types.SearchPage{}, fmt.Errorf("parsing OpenAlex response: %w", err)
	}

	page := types.SearchPage{
		Total: wr.Meta.Count,
		Works: make([]types.Work, 0, len(*wr.Results)),
	}
	for _, w := range *wr.Results {
		page.Works = append(page.Works, w.toWork())
	}
	return page, nil
}

// searchURL builds the works URL for a full-text query.
func (c *Client) searchURL(query string) string {
	params := url.Values{
		"filter":   {"fulltext.search:" + query},
		"per-page": {strconv.Itoa(c.perPage)},
		"select":   {selectFields},
	}
	if c.mailto != "" {
		params.Set("mailto", c.mailto)
	}
	return c.baseURL + "/works?" + params.Encode()
}

// decodeWorks reads exactly one works object from r. A body without a
// results array (null, {}, an error object) or with data after the object
// is rejected.
func decodeWorks(r io.Reader) (worksResponse, error) {
	var wr worksResponse
	dec := json.NewDecoder(r)
	if err := dec.Decode(&wr); err != nil {
		return wr, err
	}
	if wr.Results == nil {
		return wr, errors.New("missing results")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return wr, errors.New("unexpected data after response object")
	}
	return wr, nil
}

func clampPerPage(n int) int {
	switch {
	case n < 1:
		return 1
	case n > MaxPerPage:
		return MaxPerPage
	default:
		return n
	}
}

// OpenAlex API JSON structures.
type worksResponse struct {
	Meta    worksMeta  `json:"meta"`
	Results *[]workJSON `json:"results"`
}

type worksMeta struct {
	Count   int `json:"count"`
	PerPage int `json:"per_page"`
}

type workJSON struct {
	ID              string        `json:"id"`
	DOI             string        `json:"doi"`
	DisplayName     string        `json:"display_name"`
	PublicationYear int           `json:"publication_year"`
	PrimaryLocation *locationJSON `json:"primary_location"`
}

type locationJSON struct {
	Source *sourceJSON `json:"source"`
}

type sourceJSON struct {
	DisplayName string `json:"display_name"`
}

func (w workJSON) toWork() types.Work {
	work := types.Work{
		ID:    w.ID,
		Title: w.DisplayName,
		Year:  w.PublicationYear,
		DOI:   w.DOI,
	}
	// Either link may be null in the payload.
	if w.PrimaryLocation != nil && w.PrimaryLocation.Source != nil {
		work.Venue = w.PrimaryLocation.Source.DisplayName
	}
	return work
}
