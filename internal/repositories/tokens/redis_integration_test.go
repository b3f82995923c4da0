//go:build integration

package tokens_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dnd-companion/internal/domain/account"
	dnderr "github.com/KirkDiggler/dnd-companion/internal/errors"
	"github.com/KirkDiggler/dnd-companion/internal/repositories/tokens"
	"github.com/KirkDiggler/dnd-companion/internal/testutils"
)

func TestRedisRepository_Integration(t *testing.T) {
	client := testutils.CreateTestRedisClient(t, testutils.NewRedisContainer(t))
	repo := tokens.NewRedisRepository(&tokens.RedisRepoConfig{
		Client: client,
		TTL:    time.Minute,
	})
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "default", &tokens.Data{
		Token: "jwt",
		User:  &account.User{ID: "u1", Name: "Ana"},
	}))

	data, err := repo.Get(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, "jwt", data.Token)
	assert.Equal(t, "Ana", data.User.Name)

	ttl, err := client.TTL(ctx, "token:default").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	profiles, err := repo.ListProfiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"default"}, profiles)

	require.NoError(t, repo.Delete(ctx, "default"))
	_, err = repo.Get(ctx, "default")
	assert.True(t, dnderr.IsNotFound(err))
}
