package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/trsv-dev/users-service/internal/models"
)

// UserStorage Интерфейс для пользователей.
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
}
