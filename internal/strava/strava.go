// Package strava fetches activity records from the Strava v3 API.
//
// Auth is refresh-token based: the caller supplies a long-lived refresh
// token and the client exchanges it for a bearer token per run. Activity
// listing uses page-based pagination and a token bucket rate limiter.
package strava

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the production Strava API root.
const DefaultBaseURL = "https://www.strava.com"

// perPage is the maximum activity page size Strava allows.
const perPage = 200

// Credentials holds the OAuth application identity plus the athlete's
// refresh token. Access tokens are short-lived and never stored.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// Client is a rate-limited HTTP client for the Strava API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a Strava client. Strava's default quota is 100 requests
// per 15 minutes, so requestsPerMinute should stay single digit for
// long-running backfills.
func NewClient(baseURL string, requestsPerMinute int, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	rps := float64(requestsPerMinute) / 60.0
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
}

// tokenResponse is the shape of the OAuth token endpoint response.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// RefreshAccessToken exchanges the refresh token for a bearer token.
func (c *Client) RefreshAccessToken(ctx context.Context, creds Credentials) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("client_id", creds.ClientID)
	params.Set("client_secret", creds.ClientSecret)
	params.Set("grant_type", "refresh_token")
	params.Set("refresh_token", creds.RefreshToken)
	params.Set("scope", "activity:read_all")

	u := c.baseURL + "/api/v3/oauth/token?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, body)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("token response missing access_token")
	}

	c.logger.Info("retrieved access token")
	return tok.AccessToken, nil
}

// FetchActivities pages through the athlete's activities until a short
// page signals the end, returning the raw records in fetch order.
func (c *Client) FetchActivities(ctx context.Context, token string) ([]json.RawMessage, error) {
	var activities []json.RawMessage

	c.logger.Info("fetching activities", "per_page", perPage)

	for page := 1; ; page++ {
		batch, err := c.fetchPage(ctx, token, page)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		if len(batch) == 0 {
			break
		}

		activities = append(activities, batch...)
		c.logger.Info("fetched page", "page", page, "activities", len(batch))

		if len(batch) < perPage {
			break
		}
	}

	c.logger.Info("fetched all activities", "total", len(activities))
	return activities, nil
}

func (c *Client) fetchPage(ctx context.Context, token string, page int) ([]json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))

	u := c.baseURL + "/api/v3/athlete/activities?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("activities endpoint returned %d: %s", resp.StatusCode, body)
	}

	var batch []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&batch); err != nil {
		return nil, fmt.Errorf("decode page: %w", err)
	}
	return batch, nil
}
