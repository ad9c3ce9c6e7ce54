package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/trsv-dev/users-service/internal/api/response"
	"github.com/trsv-dev/users-service/internal/auth"
	"github.com/trsv-dev/users-service/internal/contextkeys"
	"github.com/trsv-dev/users-service/internal/logger"
)

// UserToContextMiddleware Middleware, который извлекает ID пользователя из JWT-токена
// (кука JWT или заголовок Authorization: Bearer), проверяет его и добавляет ID в контекст запроса.
// Без настроенного секрета все запросы отклоняются.
func UserToContextMiddleware(JWTSecretKey string, tokenBuilder auth.TokenBuilder, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if JWTSecretKey == "" {
				log.Debug("Аутентификация отключена: не задан JWTSECRET")
				response.ErrorJSON(w, http.StatusUnauthorized, "Пользователь не аутентифицирован")
				return
			}

			tokenString := tokenFromRequest(r)
			if tokenString == "" {
				log.Debug("Пользователь не аутентифицирован")
				response.ErrorJSON(w, http.StatusUnauthorized, "Пользователь не аутентифицирован")
				return
			}

			claims, err := tokenBuilder.GetClaims(tokenString, JWTSecretKey)
			if err != nil {
				log.Debug("Ошибка проверки токена", logger.Err(err))
				response.ErrorJSON(w, http.StatusUnauthorized, "Недействительный токен")
				return
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				log.Error("Ошибка идентификации пользователя", logger.Err(err))
				response.ErrorJSON(w, http.StatusUnauthorized, "Недействительный токен")
				return
			}

			// добавляем ID в контекст запроса под ключом `contextkeys.UserID`
			ctx := context.WithValue(r.Context(), contextkeys.UserID, userID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Токен из куки JWT, иначе из заголовка Authorization.
func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie("JWT"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	const prefix = "Bearer "
	header := r.Header.Get("Authorization")
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}

	return ""
}
