package repositories

import (
	"context"

	"filmorate/internal/catalog/domain/entities"
)

// UserRepository определяет интерфейс для работы с хранилищем пользователей.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) (*entities.User, error)
	GetByID(ctx context.Context, id int64) (*entities.User, error)
	FindAll(ctx context.Context) ([]*entities.User, error)
	DeleteByID(ctx context.Context, id int64) error
	SetFriendConnection(ctx context.Context, fromID, toID int64, status entities.FriendshipStatus) error
	RemoveFriendConnection(ctx context.Context, fromID, toID int64) error
}
