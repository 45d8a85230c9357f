package users

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/casiec/internal/common"
	"github.com/dmitrijs2005/casiec/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	u, err := r.Create(ctx, &models.User{Email: "ada@casiec.ng", PasswordHash: []byte("h")})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	_, err = r.Create(ctx, &models.User{Email: "ada@casiec.ng"})
	require.ErrorIs(t, err, common.ErrorAlreadyExists)

	byEmail, err := r.GetUserByEmail(ctx, "ada@casiec.ng")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byID, err := r.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("h"), byID.PasswordHash)

	_, err = r.GetUserByEmail(ctx, "nobody@casiec.ng")
	require.ErrorIs(t, err, common.ErrorNotFound)
}
