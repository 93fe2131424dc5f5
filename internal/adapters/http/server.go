// Package http exposes the webhook surface: the Meta verification
// handshake, the inbound event endpoint, health, and metrics.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lobalabs/lobabot/internal/adapters/whatsapp"
	"github.com/lobalabs/lobabot/internal/logging"
	"github.com/lobalabs/lobabot/pkg/domain"
)

// InboundHandler consumes normalized inbound messages. Implemented by the
// bridge.
type InboundHandler interface {
	HandleMessage(ctx context.Context, userID string, input domain.Input)
}

// Server handles the webhook endpoints.
type Server struct {
	handler     InboundHandler
	verifyToken string
	logger      *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures a logger for the server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates the HTTP handler for the bridge.
func NewHandler(handler InboundHandler, verifyToken string, opts ...Option) http.Handler {
	s := &Server{
		handler:     handler,
		verifyToken: verifyToken,
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/webhook", s.verify)
	r.Post("/webhook", s.receive)
	r.Get("/healthz", s.healthz)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// verify answers the Meta subscription handshake: echo hub.challenge when
// the token matches, 403 otherwise.
func (s *Server) verify(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("hub.mode")
	challenge := r.URL.Query().Get("hub.challenge")
	token := r.URL.Query().Get("hub.verify_token")

	if mode == "subscribe" && token == s.verifyToken {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(challenge))
		return
	}

	s.logger.Warn("webhook verification rejected", "mode", mode)
	http.Error(w, "Token inválido", http.StatusForbidden)
}

// receive walks the webhook payload and hands each usable message to the
// bridge. Malformed or content-free events are dropped without a reply;
// the provider always gets a 200 so it does not retry.
func (s *Server) receive(w http.ResponseWriter, r *http.Request) {
	var payload whatsapp.WebhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.logger.Warn("failed to decode webhook payload", "err", err)
		s.respond(w, "ignored")
		return
	}

	if len(payload.Entry) == 0 {
		s.respond(w, "ignored")
		return
	}

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				input, ok := whatsapp.Normalize(msg)
				if !ok || msg.From == "" {
					s.logger.Debug("dropping message without usable content", "type", msg.Type)
					continue
				}
				s.handler.HandleMessage(r.Context(), msg.From, input)
			}
		}
	}

	s.respond(w, "ok")
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	s.respond(w, "ok")
}

func (s *Server) respond(w http.ResponseWriter, status string) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": status}); err != nil {
		s.logger.Warn("failed to encode response", "err", err)
	}
}
