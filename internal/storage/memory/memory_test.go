package memory_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/records-api/internal/storage"
	"github.com/aanand-mishra/records-api/internal/storage/memory"
)

var _ storage.Storage = (*memory.Store)(nil)

func TestStore_CreateThenList(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	id1, err := s.CreateRecord(ctx, "Alice", 30)
	require.NoError(t, err)
	id2, err := s.CreateRecord(ctx, "Bob", 41.5)
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2)
	_, err = uuid.Parse(id1)
	assert.NoError(t, err)

	got, err := s.GetRecords(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Alice", got[0].Name)
	assert.Equal(t, 30.0, got[0].Age)
	assert.Equal(t, id2, got[1].ID)
}

func TestStore_EmptyListIsNotNil(t *testing.T) {
	got, err := memory.New().GetRecords(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestStore_CancelledContextStoresNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := memory.New()

	_, err := s.CreateRecord(ctx, "Alice", 30)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, s.Len())
}

func TestStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := memory.New().GetRecords(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
