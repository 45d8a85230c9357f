package refreshtokens

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/casiec/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	require.NoError(t, r.Create(ctx, "u1", "a", time.Hour))
	require.NoError(t, r.Create(ctx, "u1", "b", time.Hour))
	require.NoError(t, r.Create(ctx, "u2", "c", time.Hour))

	got, err := r.Find(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.True(t, got.Expires.After(time.Now()))

	require.NoError(t, r.Delete(ctx, "a"))
	require.ErrorIs(t, r.Delete(ctx, "a"), common.ErrorNotFound)

	require.NoError(t, r.DeleteByUser(ctx, "u1"))
	_, err = r.Find(ctx, "b")
	require.ErrorIs(t, err, common.ErrorNotFound)
	_, err = r.Find(ctx, "c")
	require.NoError(t, err)
}
