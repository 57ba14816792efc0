package invoiceparser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Line is one extracted invoice line. UnitPrice is nil when the extractor
// could not read a price for the row.
type Line struct {
	Name      string   `json:"name"`
	Code      string   `json:"code,omitempty"`
	Quantity  float64  `json:"quantity"`
	UnitPrice *float64 `json:"unit_price,omitempty"`
}

// InvoiceMeta carries document-level fields the extractor recognized.
type InvoiceMeta struct {
	PONumber string `json:"po_number,omitempty"`
}

// ParseResult is the extractor's response for one stored file.
type ParseResult struct {
	Lines      []Line      `json:"lines"`
	Confidence *float64    `json:"confidence,omitempty"`
	Invoice    InvoiceMeta `json:"invoice"`
	Warnings   []string    `json:"warnings,omitempty"`
}

// Client calls the hosted invoice extraction service. This backend never
// parses CSV/PDF content itself.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Config holds parser client configuration
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// NewClient creates a new invoice parser client
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type parseRequest struct {
	StoragePath string `json:"storage_path"`
	Source      string `json:"source"`
}

// Parse asks the extraction service to parse a stored invoice file.
func (c *Client) Parse(ctx context.Context, storagePath, source string) (*ParseResult, error) {
	body, err := json.Marshal(parseRequest{StoragePath: storagePath, Source: source})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/parse", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("invoice parser request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("invoice parser returned status %d", resp.StatusCode)
	}

	var result ParseResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode parser response: %w", err)
	}
	return &result, nil
}
