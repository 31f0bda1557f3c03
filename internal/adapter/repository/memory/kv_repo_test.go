package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVRepository_GetSet(t *testing.T) {
	ctx := context.Background()
	repo := NewKVRepository()

	_, found, err := repo.Get(ctx, "transactions")
	require.NoError(t, err)
	assert.False(t, found)

	value := []byte(`[]`)
	require.NoError(t, repo.Set(ctx, "transactions", value))
	value[0] = 'X'

	got, found, err := repo.Get(ctx, "transactions")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, string(got), "stored bytes are copied")

	require.NoError(t, repo.Set(ctx, "transactions", []byte(`[{"id":"1"}]`)))
	got, _, _ = repo.Get(ctx, "transactions")
	assert.Equal(t, `[{"id":"1"}]`, string(got))
}

func TestKVRepository_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := NewKVRepository()
	assert.ErrorIs(t, repo.Set(ctx, "k", []byte("v")), context.Canceled)
	_, _, err := repo.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}
