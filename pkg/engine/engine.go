package engine

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/lobalabs/lobabot/internal/logging"
	"github.com/lobalabs/lobabot/pkg/domain"
)

// Engine is the conversation state machine. Given a conversation and one
// normalized input it decides the next step, any validation failure, and
// the outbound directive — and nothing else: it never performs I/O, and
// every input yields exactly one Outcome.
//
// The engine mutates the conversation in place; the caller owns loading
// and saving it, and must serialize calls for the same user id.
type Engine struct {
	prompts   Prompts
	districts districtSet
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
}

// Option configures the Engine.
type Option func(*Engine)

// WithPrompts overrides the default prompt texts.
func WithPrompts(p Prompts) Option {
	return func(e *Engine) {
		e.prompts = p
	}
}

// WithDistricts overrides the default district allowlist.
func WithDistricts(districts []string) Option {
	return func(e *Engine) {
		e.districts = newDistrictSet(districts)
	}
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger configures a logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an Engine with the default prompts and district allowlist.
func New(opts ...Option) *Engine {
	e := &Engine{
		prompts:   DefaultPrompts(),
		districts: newDistrictSet(DefaultDistricts()),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Handle processes one inbound event for the given conversation and
// returns the outcome the adapter must execute. Validation failures leave
// the conversation untouched and re-issue the step's prompt; unrecognized
// input at the menu yields a ShowMenu directive, never an error text.
func (e *Engine) Handle(ctx context.Context, conv *domain.Conversation, input domain.Input) domain.Outcome {
	e.logger.Debug("handling input",
		"user_id", conv.UserID,
		"step", conv.Step,
		"kind", input.Kind,
	)

	switch conv.Step {
	case domain.StepMenu:
		return e.handleMenu(ctx, conv, input)
	case domain.StepTrainingName, domain.StepWalkName, domain.StepHumanName:
		return e.handleName(ctx, conv, input)
	case domain.StepTrainingDistrict, domain.StepWalkDistrict:
		return e.handleDistrict(ctx, conv, input)
	case domain.StepTrainingDetail, domain.StepHumanReason:
		return e.handleDetail(ctx, conv, input)
	default:
		// A step this build does not know (stale state from an older
		// deployment) falls back to the menu.
		e.logger.Warn("unknown step, resetting to menu", "user_id", conv.UserID, "step", conv.Step)
		conv.Finish()
		return domain.Outcome{Kind: domain.OutcomeShowMenu}
	}
}

// handleMenu routes a top-level selection. List-reply ids, numeric
// shortcuts, and typed keywords all normalize onto the same option set;
// anything else re-renders the menu.
func (e *Engine) handleMenu(ctx context.Context, conv *domain.Conversation, input domain.Input) domain.Outcome {
	token := strings.ToLower(strings.TrimSpace(input.Text))

	option, ok := menuAliases[token]
	if !ok {
		return domain.Outcome{Kind: domain.OutcomeShowMenu}
	}

	switch option {
	case OptionTraining:
		e.beginFlow(ctx, conv, domain.StepTrainingName, domain.ServiceTraining)
		return domain.Outcome{Kind: domain.OutcomePrompt, Text: e.prompts.AskDogNameTraining}
	case OptionWalks:
		e.beginFlow(ctx, conv, domain.StepWalkName, domain.ServiceWalks)
		return domain.Outcome{Kind: domain.OutcomePrompt, Text: e.prompts.AskDogNameWalks}
	default:
		e.beginFlow(ctx, conv, domain.StepHumanName, domain.ServiceHuman)
		return domain.Outcome{Kind: domain.OutcomePrompt, Text: e.prompts.AskClientName}
	}
}

// handleName collects the dog or client name. A menu keyword typed here is
// ordinary text and is validated like any other name attempt.
func (e *Engine) handleName(ctx context.Context, conv *domain.Conversation, input domain.Input) domain.Outcome {
	if !validName(input.Text) {
		e.emitValidationFailure(ctx, conv, input.Text)
		return domain.Outcome{
			Kind: domain.OutcomePrompt,
			Text: reprompt(e.prompts.InvalidName, e.nameQuestion(conv.Step)),
		}
	}

	name := strings.TrimSpace(input.Text)
	switch conv.Step {
	case domain.StepTrainingName:
		conv.Answers[domain.AnswerDogName] = name
		e.advance(ctx, conv, domain.StepTrainingDistrict)
		return domain.Outcome{Kind: domain.OutcomePrompt, Text: e.prompts.AskDistrict}
	case domain.StepWalkName:
		conv.Answers[domain.AnswerDogName] = name
		e.advance(ctx, conv, domain.StepWalkDistrict)
		return domain.Outcome{Kind: domain.OutcomePrompt, Text: e.prompts.AskDistrict}
	default: // StepHumanName
		conv.Answers[domain.AnswerClientName] = name
		e.advance(ctx, conv, domain.StepHumanReason)
		return domain.Outcome{Kind: domain.OutcomePrompt, Text: e.prompts.AskReason}
	}
}

// handleDistrict validates the district against the allowlist. The user's
// original casing is stored; the walk flow submits immediately because it
// collects no detail.
func (e *Engine) handleDistrict(ctx context.Context, conv *domain.Conversation, input domain.Input) domain.Outcome {
	if !e.districts.contains(input.Text) {
		e.emitValidationFailure(ctx, conv, input.Text)
		return domain.Outcome{
			Kind: domain.OutcomePrompt,
			Text: reprompt(e.prompts.InvalidDistrict, e.prompts.AskDistrict),
		}
	}

	conv.Answers[domain.AnswerDistrict] = strings.TrimSpace(input.Text)
	if conv.Step == domain.StepTrainingDistrict {
		e.advance(ctx, conv, domain.StepTrainingDetail)
		return domain.Outcome{Kind: domain.OutcomePrompt, Text: e.prompts.AskDetail}
	}
	return e.submit(ctx, conv)
}

// handleDetail collects the free-text detail or hand-off reason and
// completes the flow.
func (e *Engine) handleDetail(ctx context.Context, conv *domain.Conversation, input domain.Input) domain.Outcome {
	if !validDetail(input.Text) {
		e.emitValidationFailure(ctx, conv, input.Text)
		question := e.prompts.AskDetail
		if conv.Step == domain.StepHumanReason {
			question = e.prompts.AskReason
		}
		return domain.Outcome{
			Kind: domain.OutcomePrompt,
			Text: reprompt(e.prompts.InvalidDetail, question),
		}
	}

	text := strings.TrimSpace(input.Text)
	if conv.Step == domain.StepHumanReason {
		conv.Answers[domain.AnswerReason] = text
	} else {
		conv.Answers[domain.AnswerDetail] = text
	}
	return e.submit(ctx, conv)
}

// submit flattens the accumulated answers into a Record, resets the
// conversation to the menu, and emits the Submit directive. Fields a flow
// did not collect stay empty strings.
func (e *Engine) submit(ctx context.Context, conv *domain.Conversation) domain.Outcome {
	service := conv.Answers[domain.AnswerService]
	record := &domain.Record{
		Servicio: service,
		Numero:   conv.UserID,
	}

	var confirm string
	var notify bool
	switch service {
	case domain.ServiceTraining:
		record.Nombre = conv.Answers[domain.AnswerDogName]
		record.Comuna = conv.Answers[domain.AnswerDistrict]
		record.Detalle = conv.Answers[domain.AnswerDetail]
		confirm = e.prompts.ConfirmTraining
	case domain.ServiceWalks:
		record.Nombre = conv.Answers[domain.AnswerDogName]
		record.Comuna = conv.Answers[domain.AnswerDistrict]
		confirm = e.prompts.ConfirmWalks
	default: // domain.ServiceHuman
		record.Nombre = conv.Answers[domain.AnswerClientName]
		record.Detalle = conv.Answers[domain.AnswerReason]
		confirm = e.prompts.ConfirmHuman
		notify = true
	}

	from := conv.Step
	conv.Finish()
	e.emitTransition(ctx, conv.UserID, from, domain.StepMenu)
	e.emitSubmit(ctx, conv.UserID, service, notify)

	return domain.Outcome{
		Kind:           domain.OutcomeSubmit,
		Text:           confirm,
		Record:         record,
		NotifyOperator: notify,
	}
}

func (e *Engine) nameQuestion(step domain.Step) string {
	switch step {
	case domain.StepTrainingName:
		return e.prompts.AskDogNameTraining
	case domain.StepWalkName:
		return e.prompts.AskDogNameWalks
	default:
		return e.prompts.AskClientName
	}
}

func (e *Engine) beginFlow(ctx context.Context, conv *domain.Conversation, first domain.Step, service string) {
	from := conv.Step
	conv.BeginFlow(first, service)
	e.emitTransition(ctx, conv.UserID, from, first)
}

func (e *Engine) advance(ctx context.Context, conv *domain.Conversation, next domain.Step) {
	from := conv.Step
	conv.Step = next
	e.emitTransition(ctx, conv.UserID, from, next)
}

func (e *Engine) emitTransition(ctx context.Context, userID string, from, to domain.Step) {
	if e.hooks.OnTransition == nil {
		return
	}
	e.hooks.OnTransition(ctx, &domain.TransitionEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventTransition, UserID: userID},
		From:      from,
		To:        to,
	})
}

func (e *Engine) emitValidationFailure(ctx context.Context, conv *domain.Conversation, input string) {
	e.logger.Debug("validation failed", "user_id", conv.UserID, "step", conv.Step)
	if e.hooks.OnValidationFailure == nil {
		return
	}
	e.hooks.OnValidationFailure(ctx, &domain.ValidationFailureEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventValidationFailure, UserID: conv.UserID},
		Step:      conv.Step,
		Input:     input,
	})
}

func (e *Engine) emitSubmit(ctx context.Context, userID, service string, notify bool) {
	if e.hooks.OnSubmit == nil {
		return
	}
	e.hooks.OnSubmit(ctx, &domain.SubmitEvent{
		EventBase:      domain.EventBase{Timestamp: time.Now(), Type: domain.EventSubmit, UserID: userID},
		Service:        service,
		NotifyOperator: notify,
	})
}
