package catalog

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/resonateapp/resonate-server/internal/config"
	"github.com/resonateapp/resonate-server/internal/ratelimit"
)

// Client is a rate-limited, bounded-timeout catalog API client.
//
// Every call is classified into exactly one failure kind (see Kind); the
// client never retries data requests, so a slow upstream costs at most one
// timeout per call.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	limiter *ratelimit.KeyedRateLimiter
	logger  *slog.Logger
}

// NewClient creates a catalog client from configuration.
func NewClient(cfg config.CatalogConfig, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse catalog base URL: %w", err)
	}

	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: ratelimit.New(cfg.RequestsPS, cfg.Burst),
		logger:  logger,
	}, nil
}

// doRequest executes a GET against the catalog and decodes the response into v.
func (c *Client) doRequest(ctx context.Context, op string, cred *Credential, path string, query url.Values, v any) error {
	if err := c.limiter.Wait(ctx, c.baseURL.Host); err != nil {
		return setupFailed(op, fmt.Errorf("rate limit wait: %w", err))
	}

	u := *c.baseURL
	u.Path = u.Path + path
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return setupFailed(op, fmt.Errorf("create request: %w", err))
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+cred.Token)

	c.logger.Debug("catalog request", "op", op, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return unreachable(op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return unreachable(op, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := upstreamErrorMessage(body)
		c.logger.Warn("catalog rejected request",
			"op", op,
			"status", resp.StatusCode,
			"message", message,
		)
		return rejected(op, resp.StatusCode, message)
	}

	if err := json.Unmarshal(body, v); err != nil {
		// A success status with an undecodable body is no more usable than
		// no response at all.
		return unreachable(op, fmt.Errorf("decode response: %w", err))
	}

	return nil
}

// upstreamErrorMessage pulls the human-readable message out of an error body
// shaped like {"error": {"status": 403, "message": "..."}}. Bodies in any
// other shape yield an empty message; the status alone still classifies the
// failure.
func upstreamErrorMessage(body []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Error.Message)
}
