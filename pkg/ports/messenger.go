package ports

import "context"

// Messenger defines outbound sends to the chat-messaging provider.
// Calls are fire-and-forget from the engine's perspective: the bridge
// logs failures and never feeds them back into a transition.
type Messenger interface {
	// SendText delivers a plain text message to a contact.
	SendText(ctx context.Context, to, body string) error

	// SendMenu renders the service selection menu (interactive list) to a contact.
	SendMenu(ctx context.Context, to string) error

	// SendContactCard shares a contact (display name + phone) with a contact.
	SendContactCard(ctx context.Context, to, name, phone string) error
}
