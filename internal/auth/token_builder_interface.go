package auth

import (
	"github.com/trsv-dev/users-service/internal/models"
)

// TokenBuilder Интерфейс для создания и парсинга JWT-токенов.
type TokenBuilder interface {
	BuildJWTToken(user *models.User, JWTSecretKey string) (string, error)
	GetClaims(tokenString, JWTSecretKey string) (*Claims, error)
}
