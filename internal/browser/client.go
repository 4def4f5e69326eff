// Package browser is a thin client for the headless-browser automation
// service. The service holds the live page; every call here acts against
// whatever state the previous call left behind.
package browser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Client interface {
	Navigate(ctx context.Context, url string) error
	// Extract runs a natural-language extraction against the current page and
	// unmarshals the structured result into out.
	Extract(ctx context.Context, instruction string, out interface{}) error
	// Act performs a natural-language action (click, type, scroll).
	Act(ctx context.Context, instruction string) error
	Observe(ctx context.Context, instruction string) ([]Element, error)
}

type Element struct {
	Selector    string `json:"selector"`
	Description string `json:"description"`
}

type HTTPClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 90 * time.Second},
	}
}

func (c *HTTPClient) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("browser service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("browser service: %s returned %d: %s", path, resp.StatusCode, string(msg))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("browser service: decode %s response: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) Navigate(ctx context.Context, url string) error {
	return c.post(ctx, "/v1/navigate", map[string]string{"url": url}, nil)
}

func (c *HTTPClient) Extract(ctx context.Context, instruction string, out interface{}) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	payload := map[string]string{"instruction": instruction}
	if err := c.post(ctx, "/v1/extract", payload, &envelope); err != nil {
		return err
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("browser service: extract result did not match expected shape: %w", err)
	}
	return nil
}

func (c *HTTPClient) Act(ctx context.Context, instruction string) error {
	return c.post(ctx, "/v1/act", map[string]string{"instruction": instruction}, nil)
}

func (c *HTTPClient) Observe(ctx context.Context, instruction string) ([]Element, error) {
	var envelope struct {
		Elements []Element `json:"elements"`
	}
	payload := map[string]string{"instruction": instruction}
	if err := c.post(ctx, "/v1/observe", payload, &envelope); err != nil {
		return nil, err
	}
	return envelope.Elements, nil
}
