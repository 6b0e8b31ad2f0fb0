package port

import (
	"context"

	"pore-bot/internal/domain/entity"
)

// UserRepository интерфейс хранилища сессий пользователей
type UserRepository interface {
	// Get возвращает пользователя по ID, создаёт нового если не найден
	Get(ctx context.Context, userID, chatID int64) (*entity.User, error)

	// UpdateState обновляет состояние пользователя. Неизвестный
	// пользователь молча пропускается.
	UpdateState(ctx context.Context, userID int64, state entity.UserState) error
}
