package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/trsv-dev/users-service/internal/logger"
	"github.com/trsv-dev/users-service/internal/models"
	"github.com/trsv-dev/users-service/internal/storage"
)

// Counter Счётчик для метрик (например, prometheus.Counter).
type Counter interface {
	Inc()
}

// UserService Бизнес-логика работы с пользователями между хендлерами и хранилищем.
type UserService struct {
	storage      storage.UserStorage
	log          logger.Logger
	usersCreated Counter

	hashCost int
	now      func() time.Time
	newID    func() uuid.UUID
}

// NewUserService Конструктор UserService. usersCreated может быть nil.
func NewUserService(storage storage.UserStorage, log logger.Logger, usersCreated Counter) *UserService {
	return &UserService{
		storage:      storage,
		log:          log,
		usersCreated: usersCreated,
		hashCost:     bcrypt.DefaultCost,
		now:          time.Now,
		newID:        uuid.New,
	}
}

// CreateUser Создание пользователя: валидация, хэширование пароля, сохранение.
// Ошибки валидации (*errs.ErrValidation) и конфликта (*errs.ErrLoginIsTaken)
// возвращаются без обёртки.
func (s *UserService) CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	req = req.Normalize()

	if err := req.Validate(); err != nil {
		s.log.Debug("Ошибка при валидации данных пользователя", logger.Err(err))
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		s.log.Error("Не удалось хэшировать пароль", logger.Err(err))
		return nil, fmt.Errorf("не удалось хэшировать пароль: %w", err)
	}

	user := &models.User{
		ID:        s.newID(),
		Login:     req.Login,
		Email:     req.Email,
		Password:  string(hashedPassword),
		CreatedAt: s.now().UTC(),
	}

	if err = s.storage.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if s.usersCreated != nil {
		s.usersCreated.Inc()
	}

	s.log.Info("Пользователь создан", logger.String("login", user.Login), logger.String("id", user.ID.String()))
	return user, nil
}

// GetUser Получение пользователя по ID.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.storage.GetUser(ctx, id)
}

// ListUsers Список всех пользователей.
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.storage.ListUsers(ctx)
}
