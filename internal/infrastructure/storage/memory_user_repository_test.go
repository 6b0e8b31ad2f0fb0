package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"pore-bot/internal/domain/entity"
)

func TestMemoryUserRepository_GetCreates(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), user.ID)
	require.Equal(t, int64(10), user.ChatID)
	require.Equal(t, entity.StateMainMenu, user.State)

	// Повторный Get возвращает того же пользователя, а не создаёт нового.
	again, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Same(t, user, again)
}

func TestMemoryUserRepository_UpdateState(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	_, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateState(ctx, 1, entity.StateAwaitingPhoto))

	user, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingPhoto, user.State)
}

func TestMemoryUserRepository_UpdateStateUnknownUser(t *testing.T) {
	repo := NewMemoryUserRepository()

	// Неизвестный пользователь — не ошибка.
	require.NoError(t, repo.UpdateState(context.Background(), 99, entity.StateProcessing))
}
