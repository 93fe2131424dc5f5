package memory_test

import (
	"testing"

	"github.com/lobalabs/lobabot/pkg/adapters/memory"
	"github.com/lobalabs/lobabot/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunConversationStoreContract(t, store)
}
