package airtable

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/bistrohunter/internal/domain"
	"github.com/kailas-cloud/bistrohunter/internal/domain/restaurant"
	"github.com/kailas-cloud/bistrohunter/internal/metrics"
)

// DefaultBaseURL is the public Airtable REST endpoint.
const DefaultBaseURL = "https://api.airtable.com"

const maxErrorBody = 4 << 10

// Compile-time check: Client implements restaurant.Lister.
var _ restaurant.Lister = (*Client)(nil)

// Config holds the record store settings.
type Config struct {
	BaseURL    string
	BaseID     string
	Table      string
	Token      string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client lists records from one Airtable table.
type Client struct {
	http     *http.Client
	endpoint string
	token    string
	logger   *zap.Logger
}

// NewClient creates an Airtable REST client.
func NewClient(cfg *Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http:     hc,
		endpoint: strings.TrimRight(base, "/") + "/v0/" + url.PathEscape(cfg.BaseID) + "/" + url.PathEscape(cfg.Table),
		token:    cfg.Token,
		logger:   logger,
	}
}

type listResponse struct {
	Records []restaurant.RawRecord `json:"records"`
	Offset  string                 `json:"offset"`
}

// List implements restaurant.Lister. Pages are followed until MaxRecords
// records are collected or the store has no more.
func (c *Client) List(ctx context.Context, q restaurant.StoreQuery) ([]restaurant.RawRecord, error) {
	var out []restaurant.RawRecord
	offset := ""
	for {
		page, err := c.listPage(ctx, q, offset)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Records...)
		if page.Offset == "" || (q.MaxRecords > 0 && len(out) >= q.MaxRecords) {
			break
		}
		offset = page.Offset
	}
	if q.MaxRecords > 0 && len(out) > q.MaxRecords {
		out = out[:q.MaxRecords]
	}
	return out, nil
}

// HealthCheck verifies the table is reachable with a one-record query.
func (c *Client) HealthCheck(ctx context.Context) error {
	if _, err := c.listPage(ctx, restaurant.StoreQuery{MaxRecords: 1}, ""); err != nil {
		return fmt.Errorf("list one record: %w", err)
	}
	return nil
}

func (c *Client) listPage(ctx context.Context, q restaurant.StoreQuery, offset string) (listResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+encodeQuery(q, offset), http.NoBody)
	if err != nil {
		return listResponse{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)
	if err != nil {
		metrics.ObserveUpstream(metrics.ProviderAirtable, duration.Seconds(), "transport")
		if ctxErr := ctx.Err(); ctxErr != nil {
			return listResponse{}, fmt.Errorf("airtable request: %w", ctxErr)
		}
		return listResponse{}, domain.NewUpstreamError(metrics.ProviderAirtable, 0, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.ObserveUpstream(metrics.ProviderAirtable, duration.Seconds(), "http_"+strconv.Itoa(resp.StatusCode))
		return listResponse{}, parseAPIError(resp)
	}

	var page listResponse
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&page); err != nil {
		metrics.ObserveUpstream(metrics.ProviderAirtable, duration.Seconds(), "decode")
		return listResponse{}, domain.NewUpstreamError(metrics.ProviderAirtable, resp.StatusCode, "decode response: "+err.Error())
	}

	metrics.ObserveUpstream(metrics.ProviderAirtable, duration.Seconds(), "")
	c.logger.Debug("Airtable page fetched",
		zap.Int("records", len(page.Records)),
		zap.Bool("has_more", page.Offset != ""),
		zap.Duration("duration", duration),
	)
	return page, nil
}

func encodeQuery(q restaurant.StoreQuery, offset string) string {
	v := url.Values{}
	if q.Formula != "" {
		v.Set("filterByFormula", q.Formula)
	}
	if q.SortField != "" {
		v.Set("sort[0][field]", q.SortField)
		dir := q.SortDirection
		if dir == "" {
			dir = restaurant.SortDesc
		}
		v.Set("sort[0][direction]", dir)
	}
	if q.MaxRecords > 0 {
		v.Set("maxRecords", strconv.Itoa(q.MaxRecords))
	}
	if q.View != "" {
		v.Set("view", q.View)
	}
	if offset != "" {
		v.Set("offset", offset)
	}
	return v.Encode()
}

// parseAPIError extracts a human-readable error from an Airtable error body.
// Errors wrap domain.ErrUpstream.
func parseAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return domain.NewUpstreamError(metrics.ProviderAirtable, resp.StatusCode, extractDetail(body))
}

// extractDetail understands both {"error":{"type","message"}} and {"error":"TYPE"}.
func extractDetail(body []byte) string {
	var structured struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &structured) == nil && structured.Error.Type != "" {
		if structured.Error.Message != "" {
			return structured.Error.Type + ": " + structured.Error.Message
		}
		return structured.Error.Type
	}

	var flat struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &flat) == nil && flat.Error != "" {
		return flat.Error
	}

	s := strings.TrimSpace(string(body))
	if s == "" {
		return "empty response"
	}
	return s
}
