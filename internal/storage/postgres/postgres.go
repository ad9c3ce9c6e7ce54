package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/trsv-dev/users-service/internal/errs"
	"github.com/trsv-dev/users-service/internal/logger"
	"github.com/trsv-dev/users-service/internal/models"
	"github.com/trsv-dev/users-service/internal/storage/postgres/utils"
)

const backendName = "postgres"

// код ошибки PostgreSQL unique_violation
const uniqueViolation = "23505"

const (
	maxOpenConns    = 10
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
)

// PgStorage Структура хранилища в PostgreSQL, удовлетворяющая интерфейсу Storage.
type PgStorage struct {
	mu          sync.RWMutex
	db          *sql.DB
	databaseURI string
	log         logger.Logger

	// подменяются в тестах
	open    func(driverName, dsn string) (*sql.DB, error)
	migrate func(databaseURI string, log logger.Logger) error
}

// NewPgStorage Конструктор хранилища. Соединение открывается в Connect.
func NewPgStorage(databaseURI string, log logger.Logger) *PgStorage {
	return &PgStorage{
		databaseURI: databaseURI,
		log:         log,
		open:        sql.Open,
		migrate:     utils.ApplyMigrations,
	}
}

// NewPgStorageWithDB Хранилище поверх уже открытого соединения (миграции не применяются).
func NewPgStorageWithDB(db *sql.DB, log logger.Logger) *PgStorage {
	pg := NewPgStorage("", log)
	pg.db = db

	return pg
}

// Connect Открывает пул соединений, проверяет связь с БД и применяет миграции.
func (pg *PgStorage) Connect(ctx context.Context) error {
	pg.mu.Lock()
	defer pg.mu.Unlock()

	if pg.db != nil {
		return nil
	}

	db, err := pg.open("pgx", pg.databaseURI)
	if err != nil {
		pg.log.Error("Ошибка подключения к БД PostgreSQL", logger.Err(err))
		return errs.NewErrStorageUnavailable(backendName, err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	// проверяем, "живое" ли соединение
	if err = db.PingContext(ctx); err != nil {
		pg.log.Error("Ошибка при попытке подключения к БД PostgreSQL", logger.Err(err))
		_ = db.Close()
		return errs.NewErrStorageUnavailable(backendName, err)
	}

	if err = pg.migrate(pg.databaseURI, pg.log); err != nil {
		pg.log.Error("Ошибка применения миграций к БД PostgreSQL", logger.Err(err))
		_ = db.Close()
		return fmt.Errorf("ошибка применения миграций к БД PostgreSQL: %w", err)
	}

	pg.db = db

	pg.log.Info("В качестве хранилища используется БД PostgreSQL")
	return nil
}

// Текущее соединение или ErrNotConnected.
func (pg *PgStorage) conn() (*sql.DB, error) {
	pg.mu.RLock()
	defer pg.mu.RUnlock()

	if pg.db == nil {
		return nil, errs.ErrNotConnected
	}

	return pg.db, nil
}

// Ping Проверка доступности БД.
func (pg *PgStorage) Ping(ctx context.Context) error {
	db, err := pg.conn()
	if err != nil {
		return err
	}

	return db.PingContext(ctx)
}

// CreateUser Создание пользователя.
func (pg *PgStorage) CreateUser(ctx context.Context, user *models.User) error {
	db, err := pg.conn()
	if err != nil {
		return err
	}

	query := `INSERT INTO users (id, login, email, password, created_at) VALUES ($1, $2, $3, $4, $5)`

	_, err = db.ExecContext(ctx, query, user.ID, user.Login, user.Email, user.Password, user.CreatedAt)

	var pgErr *pgconn.PgError
	if err != nil {
		switch {
		// если ошибка говорит о дубликате логина - выходим из функции и возвращаем ошибку
		case errors.As(err, &pgErr) && pgErr.Code == uniqueViolation:
			return errs.NewErrLoginIsTaken(user.Login, err)
		default:
			pg.log.Error("Ошибка при создании пользователя", logger.Err(err))
			return fmt.Errorf("ошибка создания пользователя: %w", err)
		}
	}

	return nil
}

// GetUser Получение пользователя по ID.
func (pg *PgStorage) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT id, login, email, password, created_at FROM users WHERE id = $1`

	return pg.getUser(ctx, query, id.String(), id)
}

// GetUserByLogin Получение пользователя по логину.
func (pg *PgStorage) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	query := `SELECT id, login, email, password, created_at FROM users WHERE login = $1`

	return pg.getUser(ctx, query, login, login)
}

func (pg *PgStorage) getUser(ctx context.Context, query string, key string, arg any) (*models.User, error) {
	db, err := pg.conn()
	if err != nil {
		return nil, err
	}

	var user models.User

	err = db.QueryRowContext(ctx, query, arg).Scan(&user.ID, &user.Login, &user.Email, &user.Password, &user.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, errs.NewErrUserNotFound(key, err)
		default:
			pg.log.Error("Ошибка запроса", logger.Err(err))
			return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
		}
	}

	return &user, nil
}

// ListUsers Список пользователей в порядке создания.
func (pg *PgStorage) ListUsers(ctx context.Context) ([]*models.User, error) {
	db, err := pg.conn()
	if err != nil {
		return nil, err
	}

	query := `SELECT id, login, email, password, created_at FROM users ORDER BY created_at, login`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		pg.log.Error("Ошибка при получении списка пользователей", logger.Err(err))
		return nil, fmt.Errorf("ошибка при получении списка пользователей: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)

	for rows.Next() {
		var user models.User
		if err = rows.Scan(&user.ID, &user.Login, &user.Email, &user.Password, &user.CreatedAt); err != nil {
			pg.log.Error("Ошибка парсинга списка пользователей", logger.Err(err))
			return nil, err
		}

		users = append(users, &user)
	}

	if err = rows.Err(); err != nil {
		pg.log.Error("Ошибка при обработке строк списка пользователей", logger.Err(err))
		return nil, err
	}

	return users, nil
}

// Close Закрывает пул соединений. Повторный вызов ничего не делает.
func (pg *PgStorage) Close() error {
	pg.mu.Lock()
	defer pg.mu.Unlock()

	if pg.db == nil {
		return nil
	}

	err := pg.db.Close()
	pg.db = nil
	if err != nil {
		pg.log.Error("Ошибка закрытия соединения с БД PostgreSQL", logger.Err(err))
		return fmt.Errorf("ошибка закрытия БД PostgreSQL: %w", err)
	}

	return nil
}
