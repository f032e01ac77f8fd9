// Package client talks to the combination generator service over its JSON
// HTTP API: session bootstrap, the catalog fetch and the combination call.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Element is the service's catalog entry record.
type Element struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Glyph       string   `json:"emoji"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Seed        bool     `json:"isSeed,omitempty"`
}

// CombineResult is the outcome of a combination call. When
// RateLimitReached is set the remaining fields are zero.
type CombineResult struct {
	Element                Element `json:"element"`
	IsNewElementForSession bool    `json:"isNewElementForSession"`
	IsFirstEverCombination bool    `json:"isFirstEverCombination"`
	RateLimitReached       bool    `json:"rateLimitReached"`
}

// Client is a JSON API client for the generator service.
type Client struct {
	base *url.URL
	http *http.Client
}

// New creates a client for the given base URL, e.g. "http://localhost:8000".
func New(baseURL string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	return &Client{
		base: u,
		http: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// CreateSession starts a new service session and returns the session id
// plus the ids of the seed elements already discovered for it.
func (c *Client) CreateSession(ctx context.Context, safetyOverride bool) (string, []int, error) {
	body := map[string]any{"safetyOverride": safetyOverride}
	var resp struct {
		SessionID            string `json:"sessionId"`
		DiscoveredElementIDs []int  `json:"discoveredElementIds"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/session", body, &resp); err != nil {
		return "", nil, err
	}
	return resp.SessionID, resp.DiscoveredElementIDs, nil
}

// UpdateSession persists the safety override for an existing session.
func (c *Client) UpdateSession(ctx context.Context, sessionID string, safetyOverride bool) error {
	body := map[string]any{"safetyOverride": safetyOverride}
	return c.do(ctx, http.MethodPatch, "/api/session/"+url.PathEscape(sessionID), body, nil)
}

// Elements fetches the catalog for the session, optionally filtered by a
// free-text query.
func (c *Client) Elements(ctx context.Context, sessionID, query string) ([]Element, error) {
	q := url.Values{"sessionId": {sessionID}}
	if query != "" {
		q.Set("q", query)
	}
	var resp struct {
		Elements []Element `json:"elements"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/elements?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Elements, nil
}

// Combine asks the service to combine two catalog ids. A rate-limited
// session is reported through the result, not as an error.
func (c *Client) Combine(ctx context.Context, sessionID string, aID, bID int, allowUnsafe bool) (CombineResult, error) {
	body := map[string]any{
		"sessionId":   sessionID,
		"elementAId":  aID,
		"elementBId":  bID,
		"allowUnsafe": allowUnsafe,
	}
	var result CombineResult
	if err := c.do(ctx, http.MethodPost, "/api/combine", body, &result); err != nil {
		return CombineResult{}, err
	}
	return result, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ref, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("parse path %q: %w", path, err)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.ResolveReference(ref).String(), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, bytes.TrimSpace(snippet))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
