package ports

import (
	"context"
	"testing"
	"time"

	"github.com/lobalabs/lobabot/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunConversationStoreContract runs a suite of tests to verify that a
// ConversationStore implementation adheres to the defined interface contract.
func RunConversationStoreContract(t *testing.T, store ConversationStore) {
	ctx := context.Background()
	userID := "contract-test-user-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		conv := domain.NewConversation(userID)
		conv.Step = domain.StepTrainingDistrict
		conv.Answers[domain.AnswerDogName] = "Fido"
		conv.Answers[domain.AnswerService] = domain.ServiceTraining

		err := store.Save(ctx, userID, conv)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, userID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, conv.Step, loaded.Step)
		assert.Equal(t, "Fido", loaded.Answers[domain.AnswerDogName])
		assert.Equal(t, domain.ServiceTraining, loaded.Answers[domain.AnswerService])
	})

	t.Run("Load Isolation", func(t *testing.T) {
		// Mutating a loaded copy must not leak into the store.
		loaded, err := store.Load(ctx, userID)
		require.NoError(t, err)
		loaded.Answers[domain.AnswerDistrict] = "providencia"

		reloaded, err := store.Load(ctx, userID)
		require.NoError(t, err)
		assert.NotContains(t, reloaded.Answers, domain.AnswerDistrict)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+userID)
		assert.ErrorIs(t, err, domain.ErrConversationNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, userID, domain.NewConversation(userID))
		require.NoError(t, err)

		err = store.Delete(ctx, userID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, userID)
		assert.ErrorIs(t, err, domain.ErrConversationNotFound, "Load after Delete should return ErrConversationNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := userID + "-1"
		id2 := userID + "-2"
		_ = store.Save(ctx, id1, domain.NewConversation(id1))
		_ = store.Save(ctx, id2, domain.NewConversation(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		users, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, users, id1)
		assert.Contains(t, users, id2)
	})
}
