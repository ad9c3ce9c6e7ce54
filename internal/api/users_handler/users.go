package users_handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/trsv-dev/users-service/internal/api/response"
	"github.com/trsv-dev/users-service/internal/auth"
	"github.com/trsv-dev/users-service/internal/contextkeys"
	"github.com/trsv-dev/users-service/internal/errs"
	"github.com/trsv-dev/users-service/internal/logger"
	"github.com/trsv-dev/users-service/internal/models"
)

// максимальный размер тела запроса
const maxBodySize = 1 << 20

// UserService Операции с пользователями, нужные хендлерам.
type UserService interface {
	CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// UsersHandler Обработчик маршрутов /users/.
type UsersHandler struct {
	service      UserService
	tokenBuilder auth.TokenBuilder
	JWTSecretKey string
	log          logger.Logger
}

// NewUsersHandler Конструктор UsersHandler.
// Если JWTSecretKey пустой, токен при создании пользователя не выдаётся.
func NewUsersHandler(service UserService, tokenBuilder auth.TokenBuilder, JWTSecretKey string, log logger.Logger) *UsersHandler {
	return &UsersHandler{
		service:      service,
		tokenBuilder: tokenBuilder,
		JWTSecretKey: JWTSecretKey,
		log:          log,
	}
}

// CreateUser Создание пользователя.
func (h *UsersHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	defer r.Body.Close()
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		h.log.Error("Ошибка чтения тела запроса", logger.Err(err))
		response.ErrorJSON(w, http.StatusBadRequest, "Ошибка чтения тела запроса")
		return
	}

	var req models.CreateUserRequest

	if err = json.Unmarshal(data, &req); err != nil {
		h.log.Debug("Ошибка декодирования тела запроса при создании пользователя", logger.Err(err))
		response.ErrorJSON(w, http.StatusBadRequest, "Неверный формат запроса")
		return
	}

	user, err := h.service.CreateUser(ctx, req)

	var (
		validationErr *errs.ErrValidation
		loginIsTaken  *errs.ErrLoginIsTaken
	)

	if err != nil {
		switch {
		case errors.As(err, &validationErr):
			response.FieldErrorJSON(w, http.StatusBadRequest, validationErr.Field, validationErr.Reason)
		case errors.As(err, &loginIsTaken):
			h.log.Info("Такой пользователь уже существует", logger.String("login", loginIsTaken.Login))
			response.ErrorJSON(w, http.StatusConflict, "Пользователь уже существует")
		default:
			h.log.Error("Ошибка при создании пользователя", logger.Err(err))
			response.ErrorJSON(w, http.StatusInternalServerError, "Внутренняя ошибка сервера")
		}
		return
	}

	resp := models.UserResponse{User: *user}

	if h.JWTSecretKey != "" {
		tokenString, err := h.tokenBuilder.BuildJWTToken(user, h.JWTSecretKey)
		if err != nil {
			// пользователь уже создан, поэтому отвечаем без токена
			h.log.Error("Ошибка при создании JWT-токена", logger.Err(err))
		} else {
			auth.CreateCookie(w, tokenString)
			resp.Token = tokenString
		}
	}

	w.Header().Set("Location", fmt.Sprintf("/users/%s", user.ID))
	response.JSON(w, http.StatusCreated, resp)
}

// ListUsers Список пользователей.
func (h *UsersHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.log.Error("Ошибка при получении списка пользователей", logger.Err(err))
		response.ErrorJSON(w, http.StatusInternalServerError, "Ошибка при получении списка пользователей")
		return
	}

	response.JSON(w, http.StatusOK, users)
}

// GetUser Получение пользователя по ID из пути /users/{id}.
func (h *UsersHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.ErrorJSON(w, http.StatusBadRequest, "Неверный ID пользователя")
		return
	}

	user, err := h.service.GetUser(r.Context(), id)

	var notFound *errs.ErrUserNotFound

	if err != nil {
		if errors.As(err, &notFound) {
			response.ErrorJSON(w, http.StatusNotFound, "Пользователь не найден")
			return
		}

		h.log.Error("Ошибка при получении пользователя", logger.Err(err))
		response.ErrorJSON(w, http.StatusInternalServerError, "Ошибка при получении пользователя")
		return
	}

	response.JSON(w, http.StatusOK, user)
}

// GetCurrentUser Данные пользователя, чей ID положен в контекст middleware аутентификации.
func (h *UsersHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	id, ok := r.Context().Value(contextkeys.UserID).(uuid.UUID)
	if !ok || id == uuid.Nil {
		h.log.Error("Не удалось получить ID пользователя из контекста")
		response.ErrorJSON(w, http.StatusInternalServerError, "Ошибка сервера")
		return
	}

	user, err := h.service.GetUser(r.Context(), id)

	var notFound *errs.ErrUserNotFound

	if err != nil {
		if errors.As(err, &notFound) {
			// токен выдан пользователю, которого больше нет
			response.ErrorJSON(w, http.StatusNotFound, "Пользователь не найден")
			return
		}

		h.log.Error("Ошибка при получении текущего пользователя", logger.Err(err))
		response.ErrorJSON(w, http.StatusInternalServerError, "Ошибка при получении пользователя")
		return
	}

	response.JSON(w, http.StatusOK, user)
}
