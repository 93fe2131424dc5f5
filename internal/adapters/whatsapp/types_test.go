package whatsapp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lobalabs/lobabot/pkg/domain"
)

func TestNormalize(t *testing.T) {
	t.Run("text message", func(t *testing.T) {
		input, ok := Normalize(Message{
			From: "56911112222",
			Type: "text",
			Text: &TextContent{Body: "  hola  "},
		})

		assert.True(t, ok)
		assert.Equal(t, domain.Input{Text: "hola", Kind: domain.KindFreeText}, input)
	})

	t.Run("list reply wins over text", func(t *testing.T) {
		input, ok := Normalize(Message{
			Type:        "interactive",
			Interactive: &Interactive{Type: "list_reply", ListReply: &ListReply{ID: "educacion", Title: "Educación canina"}},
		})

		assert.True(t, ok)
		assert.Equal(t, domain.Input{Text: "educacion", Kind: domain.KindMenuSelection}, input)
	})

	t.Run("empty text dropped", func(t *testing.T) {
		_, ok := Normalize(Message{Type: "text", Text: &TextContent{Body: "   "}})
		assert.False(t, ok)
	})

	t.Run("media message dropped", func(t *testing.T) {
		_, ok := Normalize(Message{Type: "image"})
		assert.False(t, ok)
	})

	t.Run("list reply without id dropped", func(t *testing.T) {
		_, ok := Normalize(Message{
			Type:        "interactive",
			Interactive: &Interactive{Type: "list_reply", ListReply: &ListReply{ID: " "}},
		})
		assert.False(t, ok)
	})
}
