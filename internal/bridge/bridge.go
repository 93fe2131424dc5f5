// Package bridge connects the webhook surface to the conversation engine:
// it runs each inbound message through the engine under the user's session
// lock, then executes the resulting directives against the messaging
// provider and the record sink.
package bridge

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lobalabs/lobabot/internal/logging"
	"github.com/lobalabs/lobabot/internal/metrics"
	"github.com/lobalabs/lobabot/pkg/domain"
	"github.com/lobalabs/lobabot/pkg/engine"
	"github.com/lobalabs/lobabot/pkg/ports"
	"github.com/lobalabs/lobabot/pkg/session"
)

// Bridge is the channel adapter around the engine. Outbound failures are
// logged and swallowed: the conversation state commits before delivery is
// attempted, so a user can advance a step and still miss its prompt. That
// at-most-once mismatch is deliberate.
type Bridge struct {
	sessions  *session.Manager
	engine    *engine.Engine
	messenger ports.Messenger
	sink      ports.RecordSink

	// operatorNumber receives the hand-off notification; empty disables it.
	operatorNumber string

	logger *slog.Logger
}

// Option configures the Bridge.
type Option func(*Bridge)

// WithOperatorNumber sets the contact notified on human hand-off.
func WithOperatorNumber(number string) Option {
	return func(b *Bridge) {
		b.operatorNumber = number
	}
}

// WithLogger configures a logger for the bridge.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) {
		b.logger = logger
	}
}

// New creates a Bridge.
func New(sessions *session.Manager, eng *engine.Engine, messenger ports.Messenger, sink ports.RecordSink, opts ...Option) *Bridge {
	b := &Bridge{
		sessions:  sessions,
		engine:    eng,
		messenger: messenger,
		sink:      sink,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// HandleMessage processes one normalized inbound message: transition
// under the session lock first, then dispatch the outcome's directives.
func (b *Bridge) HandleMessage(ctx context.Context, userID string, input domain.Input) {
	metrics.MessagesReceived.WithLabelValues(string(input.Kind)).Inc()

	var outcome domain.Outcome
	err := b.sessions.Transition(ctx, userID, func(ctx context.Context, conv *domain.Conversation) error {
		outcome = b.engine.Handle(ctx, conv, input)
		return nil
	})
	if err != nil {
		b.logger.Error("conversation transition failed", "user_id", userID, "err", err)
		return
	}

	b.dispatch(ctx, userID, outcome)
}

func (b *Bridge) dispatch(ctx context.Context, userID string, outcome domain.Outcome) {
	switch outcome.Kind {
	case domain.OutcomePrompt:
		if err := b.messenger.SendText(ctx, userID, outcome.Text); err != nil {
			b.logger.Warn("failed to send prompt", "user_id", userID, "err", err)
		}

	case domain.OutcomeShowMenu:
		if err := b.messenger.SendMenu(ctx, userID); err != nil {
			b.logger.Warn("failed to send menu", "user_id", userID, "err", err)
		}

	case domain.OutcomeSubmit:
		if err := b.sink.Submit(ctx, outcome.Record); err != nil {
			b.logger.Error("failed to submit record",
				"user_id", userID,
				"service", outcome.Record.Servicio,
				"err", err,
			)
		}

		if err := b.messenger.SendText(ctx, userID, outcome.Text); err != nil {
			b.logger.Warn("failed to send confirmation", "user_id", userID, "err", err)
		}

		if outcome.NotifyOperator {
			b.notifyOperator(ctx, outcome.Record)
		}
	}
}

// notifyOperator forwards the hand-off details to the configured operator
// contact: a summary text plus the client's contact card.
func (b *Bridge) notifyOperator(ctx context.Context, record *domain.Record) {
	if b.operatorNumber == "" {
		b.logger.Warn("hand-off requested but no operator number configured")
		return
	}

	summary := fmt.Sprintf(
		"📩 Nuevo cliente quiere hablar contigo:\n👤 Nombre: %s\n📱 Número: %s\n📝 Motivo: %s",
		record.Nombre, record.Numero, record.Detalle,
	)
	if err := b.messenger.SendText(ctx, b.operatorNumber, summary); err != nil {
		b.logger.Warn("failed to notify operator", "err", err)
	}
	if err := b.messenger.SendContactCard(ctx, b.operatorNumber, record.Nombre, record.Numero); err != nil {
		b.logger.Warn("failed to send contact card to operator", "err", err)
	}
}
