package tokens_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/dnd-companion/internal/domain/account"
	dnderr "github.com/KirkDiggler/dnd-companion/internal/errors"
	"github.com/KirkDiggler/dnd-companion/internal/repositories/tokens"
	"github.com/KirkDiggler/dnd-companion/internal/repositories/tokens/mocks"
)

func TestInMemoryRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := tokens.NewInMemoryRepository(nil)

	_, err := repo.Get(ctx, "default")
	assert.True(t, dnderr.IsNotFound(err))

	data := &tokens.Data{Token: "jwt", User: &account.User{ID: "u1"}}
	require.NoError(t, repo.Set(ctx, "default", data))
	assert.False(t, data.UpdatedAt.IsZero())

	got, err := repo.Get(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, "jwt", got.Token)
	assert.Equal(t, "u1", got.User.ID)

	// the stored value is a copy
	got.Token = "changed"
	again, err := repo.Get(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, "jwt", again.Token)

	require.NoError(t, repo.Delete(ctx, "default"))
	_, err = repo.Get(ctx, "default")
	assert.True(t, dnderr.IsNotFound(err))

	// deleting twice is fine
	assert.NoError(t, repo.Delete(ctx, "default"))
}

func TestInMemoryRepository_Validation(t *testing.T) {
	ctx := context.Background()
	repo := tokens.NewInMemoryRepository(nil)

	_, err := repo.Get(ctx, "")
	assert.True(t, dnderr.IsInvalidArgument(err))
	assert.True(t, dnderr.IsInvalidArgument(repo.Set(ctx, "", &tokens.Data{})))
	assert.True(t, dnderr.IsInvalidArgument(repo.Set(ctx, "default", nil)))
	assert.True(t, dnderr.IsInvalidArgument(repo.Delete(ctx, "")))
}

func TestInMemoryRepository_TTL(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	timeProvider := mocks.NewMockTimeProvider(ctrl)

	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	repo := tokens.NewInMemoryRepository(&tokens.InMemoryConfig{
		TimeProvider: timeProvider,
		TTL:          time.Hour,
	})

	timeProvider.EXPECT().Now().Return(start)
	require.NoError(t, repo.Set(ctx, "default", &tokens.Data{Token: "jwt"}))

	timeProvider.EXPECT().Now().Return(start.Add(59 * time.Minute))
	_, err := repo.Get(ctx, "default")
	require.NoError(t, err)

	timeProvider.EXPECT().Now().Return(start.Add(time.Hour))
	_, err = repo.Get(ctx, "default")
	assert.True(t, dnderr.IsNotFound(err))

	timeProvider.EXPECT().Now().Return(start.Add(2 * time.Hour))
	profiles, err := repo.ListProfiles(ctx)
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestInMemoryRepository_ListProfiles(t *testing.T) {
	ctx := context.Background()
	repo := tokens.NewInMemoryRepository(nil)

	require.NoError(t, repo.Set(ctx, "discord", &tokens.Data{Token: "a"}))
	require.NoError(t, repo.Set(ctx, "cli", &tokens.Data{Token: "b"}))

	profiles, err := repo.ListProfiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"cli", "discord"}, profiles)
}
