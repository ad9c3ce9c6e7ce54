package di_containers

import (
	"github.com/trsv-dev/users-service/internal/api/health_handler"
	"github.com/trsv-dev/users-service/internal/api/users_handler"
	"github.com/trsv-dev/users-service/internal/auth"
	"github.com/trsv-dev/users-service/internal/config"
	"github.com/trsv-dev/users-service/internal/logger"
	"github.com/trsv-dev/users-service/internal/metrics"
	"github.com/trsv-dev/users-service/internal/service"
	"github.com/trsv-dev/users-service/internal/storage"
)

// HandlersContainer Контейнер со всеми хендлерами приложения (и их зависимостями).
type HandlersContainer struct {
	UsersHandler  *users_handler.UsersHandler
	HealthHandler *health_handler.HealthHandler
	Metrics       *metrics.Metrics
	Logger        logger.Logger
	CORSOrigins   []string
	JWTSecretKey  string
	TokenBuilder  auth.TokenBuilder
}

// NewHandlersContainer Конструктор контейнера с зависимостями для хендлеров.
func NewHandlersContainer(storage storage.Storage, srvConfig *config.Config, tokenBuilder auth.TokenBuilder, m *metrics.Metrics, log logger.Logger) *HandlersContainer {
	userService := service.NewUserService(storage, log, m.UsersCreated)

	usersHandler := users_handler.NewUsersHandler(userService, tokenBuilder, srvConfig.JWTSecret, log)
	healthHandler := health_handler.NewHealthHandler(storage, log)

	return &HandlersContainer{
		UsersHandler:  usersHandler,
		HealthHandler: healthHandler,
		Metrics:       m,
		Logger:        log,
		CORSOrigins:   srvConfig.CORSOrigins,
		JWTSecretKey:  srvConfig.JWTSecret,
		TokenBuilder:  tokenBuilder,
	}
}
