// Package client is a small HTTP client for the tradedesk API, used by the
// command-line tool.
package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/atharvakonge/tradedesk/internal/chat"
	"github.com/atharvakonge/tradedesk/internal/config"
	"github.com/atharvakonge/tradedesk/internal/market"
	"github.com/atharvakonge/tradedesk/internal/models"
	"github.com/atharvakonge/tradedesk/internal/profile"
	"github.com/atharvakonge/tradedesk/internal/stats"
	"github.com/atharvakonge/tradedesk/internal/tutorials"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Message)
}

type errorBody struct {
	Error string `json:"error"`
}

// Client talks to the tradedesk API.
type Client struct {
	client  *resty.Client
	logger  *zap.Logger
	limiter *rate.Limiter
}

// New creates a client for cfg.BaseURL (including the /api prefix).
func New(cfg config.Client, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	// rate.Limit is requests per second.
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst)

	return &Client{client: client, logger: logger, limiter: limiter}
}

// do waits for the limiter, sends the request and converts error bodies.
func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body, result interface{}) (*resty.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	req := c.client.R().SetContext(ctx).SetError(&errorBody{})
	if query != nil {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.IsError() {
		msg := resp.Status()
		if e, ok := resp.Error().(*errorBody); ok && e.Error != "" {
			msg = e.Error
		}
		c.logger.Debug("API error", zap.String("path", path), zap.Int("status", resp.StatusCode()))
		return resp, &APIError{Status: resp.StatusCode(), Message: msg}
	}
	return resp, nil
}

// profilePath builds /profiles/<username>/<rest...> with the username escaped.
func profilePath(username string, rest ...string) string {
	path := "/profiles/" + url.PathEscape(username)
	for _, r := range rest {
		path += "/" + r
	}
	return path
}

// Stats fetches a user's derived statistics.
func (c *Client) Stats(ctx context.Context, username string) (*stats.Stats, error) {
	var s stats.Stats
	if _, err := c.do(ctx, http.MethodGet, profilePath(username, "stats"), nil, nil, &s); err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return &s, nil
}

// Export downloads the trade-history document exactly as served.
func (c *Client) Export(ctx context.Context, username string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, profilePath(username, "export"), nil, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to export history: %w", err)
	}
	return resp.Body(), nil
}

// AddFunds tops up a user's balance with the raw amount text.
func (c *Client) AddFunds(ctx context.Context, username, amount string) (*profile.FundsResult, error) {
	var res profile.FundsResult
	if _, err := c.do(ctx, http.MethodPost, profilePath(username, "funds"), nil, models.FundsRequest{Amount: amount}, &res); err != nil {
		return nil, fmt.Errorf("failed to add funds: %w", err)
	}
	return &res, nil
}

// Movers fetches the F&O board; refresh forces a new roll.
func (c *Client) Movers(ctx context.Context, refresh bool) (*market.Snapshot, error) {
	method, path := http.MethodGet, "/fno"
	if refresh {
		method, path = http.MethodPost, "/fno/refresh"
	}
	var snap market.Snapshot
	if _, err := c.do(ctx, method, path, nil, nil, &snap); err != nil {
		return nil, fmt.Errorf("failed to get movers: %w", err)
	}
	return &snap, nil
}

// Ask sends one message to the assistant.
func (c *Client) Ask(ctx context.Context, sessionID, message string) (*chat.Exchange, error) {
	body := map[string]string{"session_id": sessionID, "message": message}
	var ex chat.Exchange
	if _, err := c.do(ctx, http.MethodPost, "/chat", nil, body, &ex); err != nil {
		return nil, fmt.Errorf("failed to ask: %w", err)
	}
	return &ex, nil
}

// Tutorials lists the catalog filtered by q. With a user, each entry
// reports whether that user bookmarked it.
func (c *Client) Tutorials(ctx context.Context, q tutorials.Query, user string) ([]tutorials.Listing, error) {
	query := map[string]string{"search": q.Search, "category": q.Category, "sort": q.Sort}
	if user != "" {
		query["user"] = user
	}
	var res struct {
		Tutorials []tutorials.Listing `json:"tutorials"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/tutorials", query, nil, &res); err != nil {
		return nil, fmt.Errorf("failed to list tutorials: %w", err)
	}
	return res.Tutorials, nil
}

// ToggleBookmark flips a bookmark and reports the new state.
func (c *Client) ToggleBookmark(ctx context.Context, user string, id int) (bool, error) {
	var res struct {
		Bookmarked bool `json:"bookmarked"`
	}
	path := "/tutorials/bookmarks/" + url.PathEscape(user) + "/" + strconv.Itoa(id)
	if _, err := c.do(ctx, http.MethodPost, path, nil, nil, &res); err != nil {
		return false, fmt.Errorf("failed to toggle bookmark: %w", err)
	}
	return res.Bookmarked, nil
}
