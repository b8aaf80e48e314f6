// Package remote is the HTTP client for the admin REST API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"admin-datagrid/pkg/log"
)

// Client talks to one API base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	l          log.Logger
}

// New creates a Client. A non-empty access token is sent as a bearer token.
func New(cfg Config, l log.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.AccessToken != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.AccessToken,
			TokenType:   "Bearer",
		}))
		httpClient.Timeout = cfg.Timeout
	}

	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		limiter:    limiter,
		l:          l,
	}
}

// List fetches one page of route. The raw body is returned so it can be
// cached as-is.
func (c *Client) List(ctx context.Context, route, rawQuery string) ([]byte, error) {
	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, fmt.Errorf("remote: parse query: %w", err)
	}
	env, err := c.Do(ctx, http.MethodGet, route, q, nil)
	if err != nil {
		return nil, err
	}
	return env.Raw, nil
}

// Create posts body to route.
func (c *Client) Create(ctx context.Context, route string, body any) (Envelope, error) {
	return c.Do(ctx, http.MethodPost, route, nil, body)
}

// Update puts body to route/id.
func (c *Client) Update(ctx context.Context, route, id string, body any) (Envelope, error) {
	if id == "" {
		return Envelope{}, ErrEmptyID
	}
	return c.Do(ctx, http.MethodPut, route+"/"+url.PathEscape(id), nil, body)
}

// Delete removes route/id.
func (c *Client) Delete(ctx context.Context, route, id string) (Envelope, error) {
	if id == "" {
		return Envelope{}, ErrEmptyID
	}
	return c.Do(ctx, http.MethodDelete, route+"/"+url.PathEscape(id), nil, nil)
}

// Do sends one request and decodes the envelope. Non-JSON bodies, such as
// exports, are returned in Raw with Success set.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any) (Envelope, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return Envelope{}, fmt.Errorf("remote: rate limit wait: %w", err)
		}
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return Envelope{}, fmt.Errorf("remote: marshal %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return Envelope{}, fmt.Errorf("remote: build %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	requestID := log.RequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set(RequestIDHeader, requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Envelope{}, fmt.Errorf("remote: call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Envelope{}, fmt.Errorf("remote: read %s %s response: %w", method, path, err)
	}

	env, err := decode(resp, raw)
	if err != nil {
		c.l.Warnf(ctx, "remote.Do %s %s request_id=%s: %v", method, path, requestID, err)
		return Envelope{}, err
	}
	return env, nil
}

func decode(resp *http.Response, raw []byte) (Envelope, error) {
	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))

	var head envelopeHead
	if mediaType != "application/json" || json.Unmarshal(raw, &head) != nil {
		if !ok {
			return Envelope{}, &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
		}
		if mediaType == "application/json" {
			return Envelope{}, fmt.Errorf("remote: decode envelope: invalid JSON body")
		}
		return Envelope{Success: true, Raw: raw}, nil
	}

	if !ok || (head.Success != nil && !*head.Success) {
		return Envelope{}, &APIError{StatusCode: resp.StatusCode, Message: head.Message}
	}
	return Envelope{Success: true, Message: head.Message, Raw: raw}, nil
}
