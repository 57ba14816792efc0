package reconcile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/venuecount/stocktake-api/pkg/invoiceparser"
)

// Client calls the hosted reconciliation service. In remote deployment mode
// invoice scoring is delegated here instead of being computed locally; the
// caller still enforces the PO-mismatch-forces-zero rule on the response.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Config holds reconciliation client configuration
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// NewClient creates a new reconciliation service client
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// InvoiceRef identifies the parsed document being reconciled.
type InvoiceRef struct {
	Source      string `json:"source"`
	StoragePath string `json:"storage_path"`
	PONumber    string `json:"po_number,omitempty"`
}

// Request is the reconciliation request payload.
type Request struct {
	VenueID string               `json:"venue_id"`
	OrderID string               `json:"order_id"`
	Invoice InvoiceRef           `json:"invoice"`
	Lines   []invoiceparser.Line `json:"lines"`
	OrderPO string               `json:"order_po,omitempty"`
}

// Counts holds the line-match tallies from the remote scorer.
type Counts struct {
	Matched      int `json:"matched"`
	Unmatched    int `json:"unmatched"`
	PriceChanged int `json:"price_changed"`
}

// Totals holds ordered vs. invoiced value, in cents.
type Totals struct {
	Ordered  int64 `json:"ordered"`
	Invoiced int64 `json:"invoiced"`
}

// Summary is the remote scorer's verdict.
type Summary struct {
	POMatch    bool    `json:"po_match"`
	Counts     Counts  `json:"counts"`
	Totals     Totals  `json:"totals"`
	Confidence float64 `json:"confidence"`
}

// Response is the reconciliation service response.
type Response struct {
	OK               bool    `json:"ok"`
	ReconciliationID *string `json:"reconciliation_id,omitempty"`
	Summary          Summary `json:"summary"`
}

// Reconcile submits lines for remote scoring. Failures are returned to the
// caller as hard errors; no automatic retry.
func (c *Client) Reconcile(ctx context.Context, req *Request) (*Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/reconcile", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("reconciliation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reconciliation service returned status %d", resp.StatusCode)
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode reconciliation response: %w", err)
	}
	return &out, nil
}
