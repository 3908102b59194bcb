package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/serenelab/wellspring/internal/adapters/file"
	"github.com/serenelab/wellspring/pkg/domain"
	"github.com/serenelab/wellspring/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Contract(t *testing.T) {
	ports.RunConversationStoreContract(t, file.New(t.TempDir()))
}

func TestStore_SurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store := file.New(dir)
	require.NoError(t, store.Append(ctx, "thread-1", domain.User("hello")))
	require.NoError(t, store.Append(ctx, "thread-1", domain.Assistant("hi there")))

	// A fresh store over the same directory simulates a process restart.
	reopened := file.New(dir)

	loaded, err := reopened.Load(ctx, "thread-1")
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, domain.RoleUser, loaded[0].Role)
	assert.Equal(t, "hello", loaded[0].Content)
	assert.Equal(t, domain.RoleAssistant, loaded[1].Role)

	threads, err := reopened.Threads(ctx)
	require.NoError(t, err)
	assert.Contains(t, threads, "thread-1")
}

func TestStore_ThreadsSkipsLeftoverTempFiles(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store := file.New(dir)
	require.NoError(t, store.Append(ctx, "thread-1", domain.User("hello")))

	// A crashed append leaves its temp file behind.
	leftover := filepath.Join(dir, "tmp-thread-2-123456.json")
	require.NoError(t, os.WriteFile(leftover, []byte("{"), 0644))

	threads, err := store.Threads(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"thread-1"}, threads)
}

func TestStore_DefaultBasePath(t *testing.T) {
	store := file.New("")
	assert.NotEmpty(t, store.BasePath)
}
