package domain

import "errors"

// ErrConversationNotFound is returned when a user id cannot be found in the store.
var ErrConversationNotFound = errors.New("conversation not found")
