package domain

// InputKind distinguishes free text from a structured menu selection.
type InputKind string

const (
	// KindFreeText is an ordinary text message body.
	KindFreeText InputKind = "free_text"

	// KindMenuSelection is the row id of an interactive list reply
	// (e.g. "educacion"), not the row's display text.
	KindMenuSelection InputKind = "menu_selection"
)

// Input is an inbound user message after adapter normalization.
type Input struct {
	Text string
	Kind InputKind
}

// OutcomeKind categorizes what the adapter must do with an outcome.
type OutcomeKind string

const (
	// OutcomePrompt asks the adapter to send Text back to the user.
	OutcomePrompt OutcomeKind = "prompt"

	// OutcomeShowMenu asks the adapter to render the service menu.
	OutcomeShowMenu OutcomeKind = "show_menu"

	// OutcomeSubmit asks the adapter to forward Record to the sink,
	// confirm with Text, and optionally notify the operator.
	OutcomeSubmit OutcomeKind = "submit"
)

// Outcome is the engine's decision for a single inbound event. Exactly
// one outcome is produced per handled event; nothing the user sends is
// fatal.
type Outcome struct {
	Kind OutcomeKind

	// Text is the prompt or confirmation to deliver to the user.
	// Empty for OutcomeShowMenu.
	Text string

	// Record is set only for OutcomeSubmit.
	Record *Record

	// NotifyOperator is set only for the human hand-off flow: the
	// adapter must forward the record's name/number/reason to the
	// configured operator contact.
	NotifyOperator bool
}
