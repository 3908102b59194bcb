package ports

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/serenelab/wellspring/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunConversationStoreContract runs a suite of tests to verify that a
// ConversationStore implementation adheres to the defined interface contract.
func RunConversationStoreContract(t *testing.T, store ConversationStore) {
	ctx := context.Background()
	threadID := "contract-test-thread-" + time.Now().Format("20060102150405")

	t.Run("Append and Load preserve order", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			msg := domain.User(fmt.Sprintf("turn %d", i))
			if i%2 == 1 {
				msg = domain.Assistant(fmt.Sprintf("turn %d", i))
			}
			require.NoError(t, store.Append(ctx, threadID, msg), "Append should not return error")
		}

		loaded, err := store.Load(ctx, threadID)
		require.NoError(t, err, "Load should not return error")
		require.Len(t, loaded, 5, "every appended message must be returned, no duplication or loss")
		for i, msg := range loaded {
			assert.Equal(t, fmt.Sprintf("turn %d", i), msg.Content)
		}
	})

	t.Run("Load unknown thread yields empty history", func(t *testing.T) {
		loaded, err := store.Load(ctx, "unknown-"+threadID)
		require.NoError(t, err, "unknown thread id is not an error")
		assert.Empty(t, loaded)
	})

	t.Run("Empty thread id is rejected", func(t *testing.T) {
		err := store.Append(ctx, "", domain.User("hello"))
		assert.Error(t, err)
	})

	t.Run("Threads enumerates appended ids", func(t *testing.T) {
		idA := threadID + "-a"
		idB := threadID + "-b"
		require.NoError(t, store.Append(ctx, idA, domain.User("a")))
		require.NoError(t, store.Append(ctx, idB, domain.User("b")))

		threads, err := store.Threads(ctx)
		require.NoError(t, err)
		assert.Contains(t, threads, idA)
		assert.Contains(t, threads, idB)
	})

	t.Run("Delete removes thread and index entry", func(t *testing.T) {
		id := threadID + "-doomed"
		require.NoError(t, store.Append(ctx, id, domain.User("bye")))

		require.NoError(t, store.Delete(ctx, id))

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, loaded, "deleted thread reads as empty")

		threads, err := store.Threads(ctx)
		require.NoError(t, err)
		assert.NotContains(t, threads, id)

		// Deleting again is a no-op.
		assert.NoError(t, store.Delete(ctx, id))
	})

	t.Run("Concurrent appends to different threads", func(t *testing.T) {
		const writers = 8
		const perWriter = 10

		var wg sync.WaitGroup
		for w := 0; w < writers; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				id := fmt.Sprintf("%s-writer-%d", threadID, w)
				for i := 0; i < perWriter; i++ {
					_ = store.Append(ctx, id, domain.User(fmt.Sprintf("msg %d", i)))
				}
			}(w)
		}
		wg.Wait()

		for w := 0; w < writers; w++ {
			id := fmt.Sprintf("%s-writer-%d", threadID, w)
			loaded, err := store.Load(ctx, id)
			require.NoError(t, err)
			require.Len(t, loaded, perWriter)
			for i, msg := range loaded {
				assert.Equal(t, fmt.Sprintf("msg %d", i), msg.Content, "per-thread order must match append order")
			}
		}
	})
}
