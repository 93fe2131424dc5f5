package whatsapp

import (
	"encoding/json"
	"strings"

	"github.com/lobalabs/lobabot/pkg/domain"
)

// Meta WhatsApp Cloud API webhook types.

// WebhookPayload is the top-level webhook delivery.
type WebhookPayload struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

// Entry represents one business account entry.
type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

// Change wraps a single change notification.
type Change struct {
	Field string      `json:"field"`
	Value ChangeValue `json:"value"`
}

// ChangeValue holds the message data.
type ChangeValue struct {
	MessagingProduct string            `json:"messaging_product"`
	Metadata         Metadata          `json:"metadata"`
	Contacts         []Contact         `json:"contacts,omitempty"`
	Messages         []Message         `json:"messages,omitempty"`
	Statuses         []json.RawMessage `json:"statuses,omitempty"`
}

// Metadata about the receiving phone number.
type Metadata struct {
	DisplayPhoneNumber string `json:"display_phone_number"`
	PhoneNumberID      string `json:"phone_number_id"`
}

// Contact is a WhatsApp contact.
type Contact struct {
	Profile ContactProfile `json:"profile"`
	WaID    string         `json:"wa_id"`
}

// ContactProfile has the display name.
type ContactProfile struct {
	Name string `json:"name"`
}

// Message represents an incoming WhatsApp message.
type Message struct {
	From        string       `json:"from"`
	ID          string       `json:"id"`
	Timestamp   string       `json:"timestamp"`
	Type        string       `json:"type"`
	Text        *TextContent `json:"text,omitempty"`
	Interactive *Interactive `json:"interactive,omitempty"`
}

// TextContent holds a text message body.
type TextContent struct {
	Body string `json:"body"`
}

// Interactive holds an interactive message reply.
type Interactive struct {
	Type      string     `json:"type"`
	ListReply *ListReply `json:"list_reply,omitempty"`
}

// ListReply is the selected row of an interactive list.
type ListReply struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Normalize maps an incoming message onto the engine's input shape.
// A list reply becomes a menu selection carrying the row id; a text
// message becomes free text. Anything without usable content (media,
// reactions, statuses) reports ok=false and is dropped without a reply.
func Normalize(msg Message) (input domain.Input, ok bool) {
	if msg.Interactive != nil && msg.Interactive.ListReply != nil {
		id := strings.TrimSpace(msg.Interactive.ListReply.ID)
		if id == "" {
			return domain.Input{}, false
		}
		return domain.Input{Text: id, Kind: domain.KindMenuSelection}, true
	}

	if msg.Text != nil {
		body := strings.TrimSpace(msg.Text.Body)
		if body == "" {
			return domain.Input{}, false
		}
		return domain.Input{Text: body, Kind: domain.KindFreeText}, true
	}

	return domain.Input{}, false
}
