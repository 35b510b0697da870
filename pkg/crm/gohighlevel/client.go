// Package gohighlevel is a minimal client for the GoHighLevel v1 REST API:
// contact and opportunity creation.
package gohighlevel

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultBaseURL = "https://rest.gohighlevel.com/v1"

// ErrNotConfigured is returned by every call when no API key is set.
var ErrNotConfigured = errors.New("gohighlevel: api key not configured")

// APIError is a non-2xx response.
type APIError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gohighlevel %s: HTTP %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

type Config struct {
	APIKey     string
	LocationID string
	PipelineID string
	StageID    string
	BaseURL    string
	Timeout    time.Duration
}

type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (c *Client) Configured() bool {
	return c.cfg.APIKey != ""
}

// CreateContact posts the contact and returns the id GoHighLevel assigned.
func (c *Client) CreateContact(ctx context.Context, contact Contact) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	contact.LocationID = c.cfg.LocationID

	var out struct {
		Contact struct {
			ID string `json:"id"`
		} `json:"contact"`
	}
	if err := c.post(ctx, "/contacts/", contact, &out); err != nil {
		return "", err
	}
	return out.Contact.ID, nil
}

// CreateOpportunity opens an opportunity in the configured pipeline stage.
func (c *Client) CreateOpportunity(ctx context.Context, opp Opportunity) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	opp.LocationID = c.cfg.LocationID
	opp.PipelineID = c.cfg.PipelineID
	opp.PipelineStageID = c.cfg.StageID
	if opp.Status == "" {
		opp.Status = "open"
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := c.post(ctx, "/opportunities/", opp, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *Client) post(ctx context.Context, endpoint string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("gohighlevel: marshal %s: %w", endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("gohighlevel: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gohighlevel %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("gohighlevel %s: decode response: %w", endpoint, err)
	}
	return nil
}
