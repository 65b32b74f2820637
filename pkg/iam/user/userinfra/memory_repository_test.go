package userinfra

import (
	"context"
	"testing"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/errx"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/iam/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUserRepositoryUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	require.NoError(t, repo.Create(ctx, &user.User{ID: "u-1", ExternalID: "ext-1", Email: "Ada@Example.com"}))

	err := repo.Create(ctx, &user.User{ID: "u-2", Email: "ada@example.com"})
	assert.True(t, errx.IsConflict(err))

	err = repo.Create(ctx, &user.User{ID: "u-3", ExternalID: "ext-1", Email: "other@example.com"})
	assert.True(t, errx.IsConflict(err))

	got, err := repo.GetByEmail(ctx, "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.ID.String())

	got, err = repo.GetByExternalID(ctx, "ext-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.ID.String())
}

func TestMemoryUserRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()
	require.NoError(t, repo.Create(ctx, &user.User{ID: "u-1", Email: "a@b.co", Skills: []string{"go"}}))

	got, err := repo.GetByID(ctx, "u-1")
	require.NoError(t, err)
	got.Skills[0] = "rust"

	again, err := repo.GetByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, again.Skills)
}
