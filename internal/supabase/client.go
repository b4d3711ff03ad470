// Package supabase is a thin client for the hosted backend: PostgREST for
// table access and GoTrue for the auth surface. It covers only the query
// shapes the application actually issues (select with equality filters and
// ordering, single-row reads, inserts echoing the stored row).
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// ErrNoRows is returned by single-row queries that match nothing.
var ErrNoRows = errors.New("supabase: no rows in result")

// Client is a Supabase REST API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Config holds client configuration.
type Config struct {
	URL        string
	APIKey     string
	HTTPClient *http.Client
}

// New creates a new Supabase client.
func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("APIKey is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
	}, nil
}

// From starts a query against a table.
func (c *Client) From(table string) *Query {
	return &Query{
		client:  c,
		table:   table,
		columns: "*",
	}
}

// Query builds a PostgREST request.
type Query struct {
	client  *Client
	table   string
	columns string
	filters []string
	orders  []string
	limit   int
	single  bool
}

// Select specifies the columns to return.
func (q *Query) Select(columns string) *Query {
	q.columns = columns
	return q
}

// Eq adds an equality filter.
func (q *Query) Eq(column string, value any) *Query {
	q.filters = append(q.filters, fmt.Sprintf("%s=eq.%v", column, value))
	return q
}

// Order adds an ORDER BY clause.
func (q *Query) Order(column string, ascending bool) *Query {
	dir := "asc"
	if !ascending {
		dir = "desc"
	}
	q.orders = append(q.orders, fmt.Sprintf("%s.%s", column, dir))
	return q
}

// Limit caps the number of rows returned.
func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

// Single expects exactly one row; a miss yields ErrNoRows.
func (q *Query) Single() *Query {
	q.single = true
	return q
}

// Get executes the select and decodes the response into dest.
func (q *Query) Get(ctx context.Context, dest any) error {
	reqURL := fmt.Sprintf("%s/rest/v1/%s", q.client.baseURL, q.table)

	params := url.Values{}
	params.Set("select", q.columns)
	for _, f := range q.filters {
		parts := strings.SplitN(f, "=", 2)
		params.Add(parts[0], parts[1])
	}
	if len(q.orders) > 0 {
		params.Set("order", strings.Join(q.orders, ","))
	}
	if q.limit > 0 {
		params.Set("limit", fmt.Sprintf("%d", q.limit))
	}
	reqURL += "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	q.client.setHeaders(req)
	if q.single {
		req.Header.Set("Accept", "application/vnd.pgrst.object+json")
	}

	return q.client.do(req, q.single, dest)
}

// Insert POSTs a row and decodes the stored representation into dest.
// dest may be nil when the caller does not need the echo.
func (q *Query) Insert(ctx context.Context, row any, dest any) error {
	reqURL := fmt.Sprintf("%s/rest/v1/%s", q.client.baseURL, q.table)

	body, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("marshal row: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	q.client.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")
	if q.single {
		req.Header.Set("Accept", "application/vnd.pgrst.object+json")
	}

	return q.client.do(req, q.single, dest)
}

// APIError is a PostgREST/GoTrue error response.
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("supabase: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("supabase: status %d", e.StatusCode)
}

// pgrstNoRows is PostgREST's code for a single-object request matching
// zero rows.
const pgrstNoRows = "PGRST116"

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
}

func (c *Client) do(req *http.Request, single bool, dest any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.Unmarshal(body, apiErr)
		if single && (apiErr.Code == pgrstNoRows || resp.StatusCode == http.StatusNotAcceptable) {
			return ErrNoRows
		}
		return apiErr
	}

	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
