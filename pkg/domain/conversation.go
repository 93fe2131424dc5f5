package domain

// Step identifies where a conversation currently sits in the intake flow.
type Step string

const (
	// StepMenu is the initial step and the step every completed flow
	// returns to. Unseen users are implicitly at StepMenu.
	StepMenu Step = "menu"

	StepTrainingName     Step = "training_name"
	StepTrainingDistrict Step = "training_district"
	StepTrainingDetail   Step = "training_detail"

	StepWalkName     Step = "walk_name"
	StepWalkDistrict Step = "walk_district"

	StepHumanName   Step = "human_name"
	StepHumanReason Step = "human_reason"
)

// Answer keys used in Conversation.Answers.
const (
	AnswerDogName    = "dog_name"
	AnswerClientName = "client_name"
	AnswerDistrict   = "district"
	AnswerDetail     = "detail"
	AnswerReason     = "reason"
	AnswerService    = "service"
)

// Conversation is the per-user state of the intake flow. It is owned by
// the engine: the bridge loads it, hands it to the engine for exactly one
// transition, and saves it back under the session lock.
type Conversation struct {
	// UserID is the messaging-provider contact id (a phone number string).
	UserID string

	// Step is the current position in the flow.
	Step Step

	// Answers accumulates validated inputs keyed by answer name.
	// Starting a new flow from the menu clears it entirely, so a flow
	// never sees another flow's leftovers.
	Answers map[string]string
}

// NewConversation creates a fresh conversation at the menu.
func NewConversation(userID string) *Conversation {
	return &Conversation{
		UserID:  userID,
		Step:    StepMenu,
		Answers: make(map[string]string),
	}
}

// BeginFlow clears accumulated answers and moves to the flow's first step.
func (c *Conversation) BeginFlow(first Step, service string) {
	c.Answers = map[string]string{AnswerService: service}
	c.Step = first
}

// Finish returns the conversation to the menu with no accumulated answers.
func (c *Conversation) Finish() {
	c.Answers = make(map[string]string)
	c.Step = StepMenu
}
