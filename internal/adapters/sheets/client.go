// Package sheets forwards completed-flow records to the Apps Script
// webapp backing the spreadsheet.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/lobalabs/lobabot/internal/logging"
	"github.com/lobalabs/lobabot/internal/metrics"
	"github.com/lobalabs/lobabot/pkg/domain"
)

// Client implements ports.RecordSink against a Google Apps Script
// webapp URL. Submissions are best-effort: the conversation state has
// already committed by the time Submit runs, so a failure here is
// logged and never retried.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger configures a logger for the client.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a sink client for the given webapp URL.
func NewClient(url string, opts ...Option) *Client {
	c := &Client{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit posts the flat record to the webapp. Every submission gets a
// generated id so a sink-side row can be traced back through the logs.
func (c *Client) Submit(ctx context.Context, record *domain.Record) error {
	submissionID := uuid.NewString()

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.ObserveOutbound("sheets", time.Since(start))
	if err != nil {
		return fmt.Errorf("failed to call sheets webapp: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sheets webapp returned status %d", resp.StatusCode)
	}

	c.logger.Info("record submitted",
		"submission_id", submissionID,
		"service", record.Servicio,
		"status", resp.StatusCode,
	)
	return nil
}
