package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/trsv-dev/users-service/internal/errs"
	"github.com/trsv-dev/users-service/internal/logger"
	"github.com/trsv-dev/users-service/internal/models"
)

// Storage In-memory хранилище, удовлетворяющее интерфейсу storage.Storage.
// Данные живут до остановки процесса.
type Storage struct {
	mu        sync.RWMutex
	connected bool
	users     map[uuid.UUID]models.User
	byLogin   map[string]uuid.UUID
	log       logger.Logger

	// ConnectErr, если задан, возвращается из Connect (имитация недоступного бэкенда).
	ConnectErr error
}

// NewStorage Конструктор in-memory хранилища.
func NewStorage(log logger.Logger) *Storage {
	return &Storage{
		users:   make(map[uuid.UUID]models.User),
		byLogin: make(map[string]uuid.UUID),
		log:     log,
	}
}

// Connect "Подключение" к in-memory хранилищу.
func (s *Storage) Connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errs.NewErrStorageUnavailable("memory", err)
	}

	if s.ConnectErr != nil {
		return errs.NewErrStorageUnavailable("memory", s.ConnectErr)
	}

	s.mu.Lock()
	s.connected = true
	s.mu.Unlock()

	s.log.Info("В качестве хранилища используется in-memory хранилище")
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.connected {
		return errs.ErrNotConnected
	}

	return ctx.Err()
}

// Close Данные сохраняются, но дальнейшие операции вернут ErrNotConnected.
func (s *Storage) Close() error {
	s.mu.Lock()
	s.connected = false
	s.mu.Unlock()

	return nil
}

// CreateUser Создание пользователя. Логин должен быть уникальным.
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return errs.ErrNotConnected
	}

	if _, ok := s.byLogin[user.Login]; ok {
		return errs.NewErrLoginIsTaken(user.Login, nil)
	}

	s.users[user.ID] = *user
	s.byLogin[user.Login] = user.ID

	return nil
}

func (s *Storage) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.connected {
		return nil, errs.ErrNotConnected
	}

	user, ok := s.users[id]
	if !ok {
		return nil, errs.NewErrUserNotFound(id.String(), nil)
	}

	return &user, nil
}

func (s *Storage) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.connected {
		return nil, errs.ErrNotConnected
	}

	id, ok := s.byLogin[login]
	if !ok {
		return nil, errs.NewErrUserNotFound(login, nil)
	}

	user := s.users[id]
	return &user, nil
}

// ListUsers Список пользователей в порядке создания.
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.connected {
		return nil, errs.ErrNotConnected
	}

	users := make([]*models.User, 0, len(s.users))
	for _, u := range s.users {
		user := u
		users = append(users, &user)
	}

	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].Login < users[j].Login
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})

	return users, nil
}
