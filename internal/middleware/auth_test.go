package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trsv-dev/users-service/internal/auth"
	"github.com/trsv-dev/users-service/internal/contextkeys"
	"github.com/trsv-dev/users-service/internal/logger"
	"github.com/trsv-dev/users-service/internal/models"
)

const testSecret = "test-secret"

// TestUserToContextMiddleware Проверяет извлечение ID пользователя из JWT-токена.
func TestUserToContextMiddleware(t *testing.T) {
	builder := auth.NewJWTTokenBuilder()
	userID := uuid.New()

	valid, err := builder.BuildJWTToken(&models.User{ID: userID, Login: "alice"}, testSecret)
	require.NoError(t, err)

	foreign, err := builder.BuildJWTToken(&models.User{ID: userID, Login: "alice"}, "other-secret")
	require.NoError(t, err)

	notUUID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name           string
		secret         string
		setupRequest   func(r *http.Request)
		wantStatus     int
		wantNextCalled bool
	}{
		{
			name:   "токен в куке",
			secret: testSecret,
			setupRequest: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: "JWT", Value: valid})
			},
			wantStatus:     http.StatusOK,
			wantNextCalled: true,
		},
		{
			name:   "токен в заголовке Authorization",
			secret: testSecret,
			setupRequest: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+valid)
			},
			wantStatus:     http.StatusOK,
			wantNextCalled: true,
		},
		{
			name:           "токен отсутствует",
			secret:         testSecret,
			setupRequest:   func(r *http.Request) {},
			wantStatus:     http.StatusUnauthorized,
			wantNextCalled: false,
		},
		{
			name:   "заголовок без схемы Bearer",
			secret: testSecret,
			setupRequest: func(r *http.Request) {
				r.Header.Set("Authorization", valid)
			},
			wantStatus:     http.StatusUnauthorized,
			wantNextCalled: false,
		},
		{
			name:   "токен подписан другим секретом",
			secret: testSecret,
			setupRequest: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: "JWT", Value: foreign})
			},
			wantStatus:     http.StatusUnauthorized,
			wantNextCalled: false,
		},
		{
			name:   "subject не является uuid",
			secret: testSecret,
			setupRequest: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: "JWT", Value: notUUID})
			},
			wantStatus:     http.StatusUnauthorized,
			wantNextCalled: false,
		},
		{
			name:   "секрет не задан",
			secret: "",
			setupRequest: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: "JWT", Value: valid})
			},
			wantStatus:     http.StatusUnauthorized,
			wantNextCalled: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			var gotID uuid.UUID

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				gotID, _ = r.Context().Value(contextkeys.UserID).(uuid.UUID)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			tt.setupRequest(req)
			rec := httptest.NewRecorder()

			UserToContextMiddleware(tt.secret, builder, logger.NewNop())(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNextCalled, nextCalled)
			if tt.wantNextCalled {
				assert.Equal(t, userID, gotID)
			}
		})
	}
}
