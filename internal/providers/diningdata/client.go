package diningdata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"wasup-chucks/internal/domain/menus"
	"wasup-chucks/internal/providers"
)

// Config controls how the client reaches the dining menu API.
type Config struct {
	BaseURL    string
	Days       int
	HTTPClient *http.Client
}

// Client fetches the multi-day menu document from the Cedarville dining API.
type Client struct {
	baseURL    string
	days       int
	httpClient httpDoer
	now        func() time.Time
}

// NewClient constructs a dining API client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		days:       resolveDays(cfg.Days),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		now:        time.Now,
	}
}

// Name identifies the provider in logs and metrics.
func (c *Client) Name() string { return providerName }

// FetchMenu retrieves the upcoming days of menus.
func (c *Client) FetchMenu(ctx context.Context) (menus.Response, error) {
	req, err := c.buildRequest(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, &providers.NetworkError{Provider: providerName, Err: ctxErr}
		}
		return nil, &providers.NetworkError{Provider: providerName, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		netErr := &providers.NetworkError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
		}
		if msg := strings.TrimSpace(string(body)); msg != "" {
			netErr.Err = errors.New(msg)
		}
		return nil, netErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &providers.NetworkError{Provider: providerName, Err: fmt.Errorf("read body: %w", err)}
	}

	var payload menuPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &providers.DecodingError{Provider: providerName, Err: err}
	}
	if payload == nil {
		return nil, &providers.DecodingError{Provider: providerName, Err: menus.ErrEmptyDocument}
	}
	return mapMenu(payload), nil
}

func (c *Client) buildRequest(ctx context.Context) (*http.Request, error) {
	u, err := url.Parse(c.baseURL + menusPath)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: base url %q", providers.ErrInvalidRequest, c.baseURL)
	}

	q := u.Query()
	q.Set("days", strconv.Itoa(c.days))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", providers.ErrInvalidRequest, err)
	}
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Origin", headerOrigin)
	req.Header.Set("Referer", headerReferer)
	return req, nil
}
