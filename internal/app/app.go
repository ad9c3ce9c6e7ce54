package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/trsv-dev/users-service/internal/auth"
	"github.com/trsv-dev/users-service/internal/config"
	"github.com/trsv-dev/users-service/internal/di_containers"
	"github.com/trsv-dev/users-service/internal/logger"
	"github.com/trsv-dev/users-service/internal/metrics"
	"github.com/trsv-dev/users-service/internal/router"
	"github.com/trsv-dev/users-service/internal/server"
	"github.com/trsv-dev/users-service/internal/storage"
)

// State Состояние приложения.
type State int

const (
	StateStarting State = iota
	StateServing
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateServing:
		return "serving"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// StartupHook Функция, выполняемая до начала приёма запросов.
type StartupHook func(ctx context.Context) error

var (
	ErrAlreadyStarted  = errors.New("приложение уже запущено")
	ErrStartInProgress = errors.New("запуск приложения уже выполняется")
	ErrStopped         = errors.New("приложение остановлено")
)

// App Контекст приложения: владеет конфигурацией, логгером, хранилищем и HTTP-сервером.
type App struct {
	cfg     *config.Config
	log     logger.Logger
	storage storage.Storage
	handler http.Handler

	mu       sync.Mutex
	state    State
	starting bool // хуки запуска выполняются
	hooks    []StartupHook
	srv      *http.Server
	errCh    chan error
	// хранилище подключено и ещё не закрыто
	connected bool
}

// New Собирает приложение. Подключение к хранилищу регистрируется первым хуком запуска.
func New(cfg *config.Config, log logger.Logger, st storage.Storage, tokenBuilder auth.TokenBuilder, m *metrics.Metrics) *App {
	if m == nil {
		m = metrics.New()
	}
	if tokenBuilder == nil {
		tokenBuilder = auth.NewJWTTokenBuilder()
	}

	handlersContainer := di_containers.NewHandlersContainer(st, cfg, tokenBuilder, m, log)

	a := &App{
		cfg:     cfg,
		log:     log,
		storage: st,
		handler: router.Router(handlersContainer),
		state:   StateStarting,
	}

	a.hooks = append(a.hooks, a.connectStorage)

	return a
}

func (a *App) connectStorage(ctx context.Context) error {
	a.log.Info("Подключение к хранилищу...")

	if err := a.storage.Connect(ctx); err != nil {
		return fmt.Errorf("не удалось подключиться к хранилищу: %w", err)
	}

	a.mu.Lock()
	a.connected = true
	a.mu.Unlock()

	return nil
}

// OnStartup Добавляет хук запуска. Хуки выполняются по порядку после подключения к хранилищу.
func (a *App) OnStartup(hook StartupHook) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.hooks = append(a.hooks, hook)
}

// Start Выполняет хуки запуска и начинает принимать запросы.
// При ошибке любого хука приложение остаётся в состоянии starting.
// Хуки выполняются без блокировки, State и Shutdown в это время доступны.
func (a *App) Start(ctx context.Context) error {
	a.mu.Lock()
	switch {
	case a.state == StateServing:
		a.mu.Unlock()
		return ErrAlreadyStarted
	case a.state == StateStopped:
		a.mu.Unlock()
		return ErrStopped
	case a.starting:
		a.mu.Unlock()
		return ErrStartInProgress
	}

	a.starting = true
	hooks := append([]StartupHook(nil), a.hooks...)
	a.mu.Unlock()

	hookErr := runHooks(ctx, hooks)

	a.mu.Lock()
	defer a.mu.Unlock()

	a.starting = false

	// Shutdown был вызван во время выполнения хуков
	if a.state == StateStopped {
		_ = a.closeStorage()
		if hookErr != nil {
			return hookErr
		}
		return ErrStopped
	}

	if hookErr != nil {
		a.log.Error("Ошибка запуска приложения", logger.Err(hookErr))
		return hookErr
	}

	srv, errCh, err := server.RunServer(a.cfg.RunAddress(), a.handler, a.log)
	if err != nil {
		// хранилище уже подключено, но трафик принимать не будем
		_ = a.closeStorage()
		return err
	}

	a.srv = srv
	a.errCh = errCh
	a.state = StateServing

	a.log.Info("Приложение запущено", logger.String("address", srv.Addr))

	return nil
}

func runHooks(ctx context.Context, hooks []StartupHook) error {
	for _, hook := range hooks {
		if err := hook(ctx); err != nil {
			return err
		}
	}

	return nil
}

// State Текущее состояние приложения.
func (a *App) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.state
}

// Addr Фактический адрес сервера (пустая строка до запуска).
func (a *App) Addr() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.srv == nil {
		return ""
	}

	return a.srv.Addr
}

// Errors Канал ошибок HTTP-сервера (nil до запуска).
func (a *App) Errors() <-chan error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.errCh
}

// Handler Корневой HTTP-обработчик приложения.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Shutdown Останавливает HTTP-сервер и закрывает хранилище. Повторный вызов ничего не делает.
// Если запуск ещё выполняется, Start вернёт ErrStopped и сам закроет подключённое хранилище.
func (a *App) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state == StateStopped {
		return nil
	}

	a.log.Info("Начало процедуры остановки приложения...")

	var shutdownErr error
	if a.srv != nil {
		if err := a.srv.Shutdown(ctx); err != nil {
			a.log.Error("Ошибка остановки сервера", logger.Err(err))
			shutdownErr = fmt.Errorf("ошибка остановки сервера: %w", err)
		} else {
			a.log.Info("Сервер остановлен")
		}
	}

	if err := a.closeStorage(); err != nil {
		shutdownErr = errors.Join(shutdownErr, err)
	}

	a.state = StateStopped
	a.log.Info("Приложение завершено")

	return shutdownErr
}

// closeStorage Закрывает хранилище, если оно подключено. Вызывается под a.mu.
func (a *App) closeStorage() error {
	if !a.connected {
		return nil
	}
	a.connected = false

	a.log.Info("Закрытие соединения с хранилищем...")
	if err := a.storage.Close(); err != nil {
		a.log.Error("Ошибка закрытия соединения с хранилищем", logger.Err(err))
		return fmt.Errorf("ошибка закрытия хранилища: %w", err)
	}

	return nil
}
