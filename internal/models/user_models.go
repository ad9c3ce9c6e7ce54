package models

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/trsv-dev/users-service/internal/errs"
	"github.com/trsv-dev/users-service/internal/utils"
)

const (
	minLoginLen    = 4
	maxLoginLen    = 64
	minPasswordLen = 5
	// bcrypt учитывает только первые 72 байта пароля
	maxPasswordLen = 72
)

// CreateUserRequest Модель для тела запроса создания пользователя.
type CreateUserRequest struct {
	Login    string `json:"login"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// Validate Базовая валидация данных.
func (r CreateUserRequest) Validate() error {
	if len(r.Login) < minLoginLen {
		return errs.NewErrValidation("login", "передан слишком короткий логин (менее 4 символов)")
	}

	if len(r.Login) > maxLoginLen {
		return errs.NewErrValidation("login", "передан слишком длинный логин (более 64 символов)")
	}

	if !utils.IsLoginSafe(r.Login) {
		return errs.NewErrValidation("login", "недопустимые символы в логине")
	}

	if len(r.Password) < minPasswordLen {
		return errs.NewErrValidation("password", "передан слишком короткий пароль (менее 5 символов)")
	}

	if len(r.Password) > maxPasswordLen {
		return errs.NewErrValidation("password", "передан слишком длинный пароль (более 72 байт)")
	}

	if !utils.IsAlphaNumericOrSpecial(r.Password) {
		return errs.NewErrValidation("password", "недопустимые символы в пароле")
	}

	if r.Email != "" {
		addr, err := mail.ParseAddress(r.Email)
		if err != nil || addr.Address != r.Email {
			return errs.NewErrValidation("email", "неверный формат email")
		}
	}

	return nil
}

// Normalize Убирает пробелы по краям логина и email.
func (r CreateUserRequest) Normalize() CreateUserRequest {
	r.Login = strings.TrimSpace(r.Login)
	r.Email = strings.TrimSpace(r.Email)

	return r
}

// User Модель пользователя. Password содержит bcrypt-хэш и в JSON не попадает.
type User struct {
	ID        uuid.UUID `json:"id"`
	Login     string    `json:"login"`
	Email     string    `json:"email,omitempty"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// UserResponse Ответ API с данными созданного пользователя.
type UserResponse struct {
	User
	Token string `json:"token,omitempty"`
}
