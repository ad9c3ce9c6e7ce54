package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/trsv-dev/users-service/internal/errs"
	"github.com/trsv-dev/users-service/internal/logger"
	"github.com/trsv-dev/users-service/internal/models"
	storageMocks "github.com/trsv-dev/users-service/internal/storage/mocks"
)

type countingCounter struct {
	n int
}

func (c *countingCounter) Inc() { c.n++ }

func newTestService(st *storageMocks.MockStorage, counter Counter) *UserService {
	s := NewUserService(st, logger.NewNop(), counter)
	s.hashCost = bcrypt.MinCost

	return s
}

// TestCreateUser Проверяет создание пользователя.
func TestCreateUser(t *testing.T) {
	fixedID := uuid.MustParse("0b4a4c8e-1c5e-4d7e-9a8b-2f1e3d4c5b6a")
	fixedTime := time.Date(2026, 3, 4, 5, 6, 7, 0, time.FixedZone("MSK", 3*60*60))

	tests := []struct {
		name         string
		req          models.CreateUserRequest
		setupMock    func(m *storageMocks.MockStorage)
		wantErr      func(t *testing.T, err error)
		wantCounter  int
		validateUser func(t *testing.T, user *models.User)
	}{
		{
			name: "успешное создание",
			req:  models.CreateUserRequest{Login: " alice ", Email: "alice@example.com", Password: "secret1"},
			setupMock: func(m *storageMocks.MockStorage) {
				m.EXPECT().
					CreateUser(gomock.Any(), gomock.AssignableToTypeOf(&models.User{})).
					DoAndReturn(func(_ context.Context, u *models.User) error {
						assert.Equal(t, "alice", u.Login)
						return nil
					})
			},
			wantCounter: 1,
			validateUser: func(t *testing.T, user *models.User) {
				assert.Equal(t, fixedID, user.ID)
				assert.Equal(t, "alice", user.Login)
				assert.Equal(t, "alice@example.com", user.Email)
				assert.Equal(t, fixedTime.UTC(), user.CreatedAt)
				assert.Equal(t, time.UTC, user.CreatedAt.Location())
				// хранится хэш, а не сам пароль
				assert.NotEqual(t, "secret1", user.Password)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret1")))
			},
		},
		{
			name:      "невалидные данные не доходят до хранилища",
			req:       models.CreateUserRequest{Login: "usr", Password: "secret1"},
			setupMock: func(m *storageMocks.MockStorage) {},
			wantErr: func(t *testing.T, err error) {
				var validationErr *errs.ErrValidation
				require.True(t, errors.As(err, &validationErr))
				assert.Equal(t, "login", validationErr.Field)
			},
		},
		{
			name: "логин уже занят",
			req:  models.CreateUserRequest{Login: "alice", Password: "secret1"},
			setupMock: func(m *storageMocks.MockStorage) {
				m.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					Return(errs.NewErrLoginIsTaken("alice", errors.New("duplicate key")))
			},
			wantErr: func(t *testing.T, err error) {
				var taken *errs.ErrLoginIsTaken
				assert.True(t, errors.As(err, &taken))
			},
		},
		{
			name: "хранилище не подключено",
			req:  models.CreateUserRequest{Login: "alice", Password: "secret1"},
			setupMock: func(m *storageMocks.MockStorage) {
				m.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					Return(errs.ErrNotConnected)
			},
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, errs.ErrNotConnected)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			st := storageMocks.NewMockStorage(ctrl)
			tt.setupMock(st)

			counter := &countingCounter{}
			s := newTestService(st, counter)
			s.now = func() time.Time { return fixedTime }
			s.newID = func() uuid.UUID { return fixedID }

			user, err := s.CreateUser(context.Background(), tt.req)

			if tt.wantErr != nil {
				assert.Nil(t, user)
				tt.wantErr(t, err)
			} else {
				require.NoError(t, err)
				tt.validateUser(t, user)
			}

			assert.Equal(t, tt.wantCounter, counter.n)
		})
	}
}

// TestCreateUserWithoutCounter Проверяет работу без счётчика метрик.
func TestCreateUserWithoutCounter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := storageMocks.NewMockStorage(ctrl)
	st.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(nil)

	user, err := newTestService(st, nil).CreateUser(context.Background(), models.CreateUserRequest{Login: "alice", Password: "secret1"})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
}

// TestGetUserAndList Проверяет, что чтение проксируется в хранилище.
func TestGetUserAndList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	want := &models.User{ID: id, Login: "alice"}

	st := storageMocks.NewMockStorage(ctrl)
	st.EXPECT().GetUser(gomock.Any(), id).Return(want, nil)
	st.EXPECT().ListUsers(gomock.Any()).Return([]*models.User{want}, nil)

	s := newTestService(st, nil)

	got, err := s.GetUser(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	list, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []*models.User{want}, list)
}
