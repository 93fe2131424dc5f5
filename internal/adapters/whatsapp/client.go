package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/lobalabs/lobabot/internal/logging"
	"github.com/lobalabs/lobabot/internal/metrics"
)

// DefaultBaseURL is the Meta Graph API endpoint used in production.
const DefaultBaseURL = "https://graph.facebook.com/v17.0"

// Client sends outbound messages through the WhatsApp Cloud API.
// It implements ports.Messenger.
type Client struct {
	baseURL       string
	token         string
	phoneNumberID string
	httpClient    *http.Client
	logger        *slog.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the Graph API endpoint (used in tests).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

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

// NewClient creates a Cloud API client for one business phone number.
func NewClient(token, phoneNumberID string, opts ...Option) *Client {
	c := &Client{
		baseURL:       DefaultBaseURL,
		token:         token,
		phoneNumberID: phoneNumberID,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		logger:        logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SendText delivers a plain text message.
func (c *Client) SendText(ctx context.Context, to, body string) error {
	payload := map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "text",
		"text":              map[string]string{"body": body},
	}
	return c.send(ctx, payload)
}

// SendMenu renders the service selection as an interactive list.
func (c *Client) SendMenu(ctx context.Context, to string) error {
	payload := map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "interactive",
		"interactive": map[string]any{
			"type": "list",
			"body": map[string]string{
				"text": "¡Hola! Soy Loba 🐶, ¿cómo te ayudo?",
			},
			"action": map[string]any{
				"button": "Ver opciones",
				"sections": []map[string]any{
					{
						"title": "Servicios",
						"rows": []map[string]string{
							{"id": "educacion", "title": "Educación canina"},
							{"id": "paseos", "title": "Paseos"},
							{"id": "humano", "title": "Hablar con humano"},
						},
					},
				},
			},
		},
	}
	return c.send(ctx, payload)
}

// SendContactCard shares a contact with the recipient.
func (c *Client) SendContactCard(ctx context.Context, to, name, phone string) error {
	payload := map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "contacts",
		"contacts": []map[string]any{
			{
				"name": map[string]string{
					"formatted_name": name,
					"first_name":     name,
				},
				"phones": []map[string]string{
					{"phone": phone, "wa_id": phone},
				},
			},
		},
	}
	return c.send(ctx, payload)
}

func (c *Client) send(ctx context.Context, payload map[string]any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.ObserveOutbound("whatsapp", time.Since(start))
	if err != nil {
		return fmt.Errorf("failed to call whatsapp api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.logger.Warn("whatsapp api rejected message",
			"status", resp.StatusCode,
			"body", string(body),
		)
		return fmt.Errorf("whatsapp api returned status %d", resp.StatusCode)
	}

	c.logger.Debug("message sent", "status", resp.StatusCode)
	return nil
}
