package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/trsv-dev/users-service/internal/models"
)

// Claims Содержимое токена: Subject - ID пользователя.
type Claims struct {
	jwt.RegisteredClaims
	Login string `json:"login"`
}

const TokenExp = time.Hour * 24

// JWTTokenBuilder Реализация TokenBuilder на HS256.
type JWTTokenBuilder struct{}

func NewJWTTokenBuilder() *JWTTokenBuilder {
	return &JWTTokenBuilder{}
}

// BuildJWTToken Создание JWT-токена.
func (b *JWTTokenBuilder) BuildJWTToken(user *models.User, JWTSecretKey string) (string, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExp)),
		},
		Login: user.Login,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("не удалось подписать токен: %w", err)
	}

	return tokenString, nil
}

// GetClaims Распарсивание и проверка JWT-токена.
func (b *JWTTokenBuilder) GetClaims(tokenString, JWTSecretKey string) (*Claims, error) {
	claims := &Claims{}

	// распарсиваем токен, проверяя на метод подписи
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неверный метод подписи: %v", t.Header["alg"])
		}

		return []byte(JWTSecretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга токена: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("токен недействителен")
	}

	return claims, nil
}

// CreateCookie Создание и установка куки с JWT-токеном.
func CreateCookie(w http.ResponseWriter, tokenString string) {
	cookie := http.Cookie{
		Name:     "JWT",
		Value:    tokenString,
		Expires:  time.Now().Add(TokenExp),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	http.SetCookie(w, &cookie)
}
