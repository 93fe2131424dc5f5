package engine

// Menu option identifiers. An interactive list reply carries one of these
// as its row id; typed text and numeric shortcuts are normalized onto the
// same identifiers.
const (
	OptionTraining = "educacion"
	OptionWalks    = "paseos"
	OptionHuman    = "humano"
)

// menuAliases maps every accepted menu token (row ids, numeric shortcuts,
// typed variants with and without accents) onto its canonical option.
var menuAliases = map[string]string{
	"1":         OptionTraining,
	"educacion": OptionTraining,
	"educación": OptionTraining,
	"2":         OptionWalks,
	"paseos":    OptionWalks,
	"paseo":     OptionWalks,
	"3":         OptionHuman,
	"humano":    OptionHuman,
	"asistente": OptionHuman,
}

// Prompts holds every user-facing text the engine emits. The defaults are
// the production texts; deployments may override them via the config file.
type Prompts struct {
	AskDogNameTraining string `yaml:"ask_dog_name_training" mapstructure:"ask_dog_name_training"`
	AskDogNameWalks    string `yaml:"ask_dog_name_walks" mapstructure:"ask_dog_name_walks"`
	AskClientName      string `yaml:"ask_client_name" mapstructure:"ask_client_name"`
	AskDistrict        string `yaml:"ask_district" mapstructure:"ask_district"`
	AskDetail          string `yaml:"ask_detail" mapstructure:"ask_detail"`
	AskReason          string `yaml:"ask_reason" mapstructure:"ask_reason"`

	ConfirmTraining string `yaml:"confirm_training" mapstructure:"confirm_training"`
	ConfirmWalks    string `yaml:"confirm_walks" mapstructure:"confirm_walks"`
	ConfirmHuman    string `yaml:"confirm_human" mapstructure:"confirm_human"`

	InvalidName     string `yaml:"invalid_name" mapstructure:"invalid_name"`
	InvalidDistrict string `yaml:"invalid_district" mapstructure:"invalid_district"`
	InvalidDetail   string `yaml:"invalid_detail" mapstructure:"invalid_detail"`
}

// DefaultPrompts returns the production prompt texts.
func DefaultPrompts() Prompts {
	return Prompts{
		AskDogNameTraining: "🐾 ¿Cómo se llama tu perrito?",
		AskDogNameWalks:    "🐕 ¿Cómo se llama tu perrito?",
		AskClientName:      "👤 ¿Cuál es tu nombre?",
		AskDistrict:        "📍 ¿En qué comuna vives?",
		AskDetail:          "📋 ¿Qué te gustaría trabajar con tu perrito?",
		AskReason:          "📋 ¿Cuál es el motivo de tu consulta?",

		ConfirmTraining: "✅ Gracias, tu información fue registrada para Educación Canina 🐾.",
		ConfirmWalks:    "✅ Gracias, tu información fue registrada para Paseos 🐕.",
		ConfirmHuman:    "🙋 Te estoy derivando con mi asistente, en breve te contactará.",

		InvalidName:     "⚠️ El nombre solo puede tener letras y espacios.",
		InvalidDistrict: "⚠️ No reconozco esa comuna. Escríbela tal como aparece en la lista.",
		InvalidDetail:   "⚠️ Cuéntame un poco más, por favor (al menos 5 caracteres).",
	}
}

// reprompt joins the guidance text with the step's question.
func reprompt(guidance, question string) string {
	return guidance + "\n" + question
}
