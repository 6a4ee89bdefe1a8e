package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrUnavailable reports that the catalog could not be reached.
	ErrUnavailable = errors.New("catalog unavailable")
	// ErrNotFound reports that the item was not found, even in the fallback language.
	ErrNotFound = errors.New("catalog item not found")
)

// FetchError is the failure returned by Fetch. Message is suitable for end users.
type FetchError struct {
	Message string
	Err     error
}

func (e *FetchError) Error() string { return e.Message }

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher retrieves a single catalog item.
type Fetcher interface {
	Fetch(ctx context.Context, id, language string) (*App, error)
}

// Client calls the catalog item-detail endpoint.
type Client struct {
	baseURL          string
	fallbackLanguage string
	userAgent        string
	httpClient       *http.Client
	logger           *zap.Logger
}

// NewClient creates a catalog client from the configuration.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	fallback := cfg.FallbackLanguage
	if fallback == "" {
		fallback = "en"
	}
	return &Client{
		baseURL:          strings.TrimRight(cfg.BaseURL, "/"),
		fallbackLanguage: fallback,
		userAgent:        cfg.UserAgent,
		httpClient:       NewHTTPClient(cfg),
		logger:           logger,
	}
}

// NewHTTPClient builds the outbound HTTP client shared by catalog and image requests.
func NewHTTPClient(cfg Config) *http.Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 15
	}
	d := time.Duration(timeout) * time.Second

	return &http.Client{
		Timeout: d,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   d,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          20,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   d,
			ResponseHeaderTimeout: d,
		},
	}
}

type appEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// Fetch retrieves the item in the given language. When the catalog reports the
// item as unavailable, it retries once in the fallback language.
func (c *Client) Fetch(ctx context.Context, id, language string) (*App, error) {
	app, found, err := c.fetchOnce(ctx, id, language)
	if err != nil {
		c.logger.Warn("Catalog request failed", zap.String("app_id", id), zap.String("language", language), zap.Error(err))
		return nil, &FetchError{Message: "Failed to fetch data from catalog API.", Err: fmt.Errorf("%w: %v", ErrUnavailable, err)}
	}

	if !found && language != c.fallbackLanguage {
		c.logger.Debug("Catalog item unavailable, retrying in fallback language",
			zap.String("app_id", id),
			zap.String("language", language),
			zap.String("fallback", c.fallbackLanguage),
		)
		app, found, err = c.fetchOnce(ctx, id, c.fallbackLanguage)
		if err != nil {
			return nil, &FetchError{
				Message: fmt.Sprintf("Fallback to %s failed.", c.fallbackLanguage),
				Err:     fmt.Errorf("%w: %v", ErrUnavailable, err),
			}
		}
	}

	if !found {
		return nil, &FetchError{Message: "Invalid App ID or data not found.", Err: ErrNotFound}
	}
	return app, nil
}

// fetchOnce performs a single request. Transport failures are returned as
// errors; any answer that does not carry the item yields found=false.
func (c *Client) fetchOnce(ctx context.Context, id, language string) (*App, bool, error) {
	q := url.Values{}
	q.Set("appids", id)
	q.Set("l", language)
	endpoint := c.baseURL + "/api/appdetails?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", language)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.logger.Debug("Catalog returned non-success status", zap.String("app_id", id), zap.Int("status", resp.StatusCode))
		return nil, false, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("read body: %w", err)
	}

	var envelope map[string]appEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		c.logger.Debug("Catalog body is not decodable", zap.String("app_id", id), zap.Error(err))
		return nil, false, nil
	}

	entry, ok := envelope[id]
	if !ok || !entry.Success || len(entry.Data) == 0 {
		return nil, false, nil
	}

	var app App
	if err := json.Unmarshal(entry.Data, &app); err != nil {
		c.logger.Debug("Catalog item data is not decodable", zap.String("app_id", id), zap.Error(err))
		return nil, false, nil
	}
	return &app, true, nil
}
