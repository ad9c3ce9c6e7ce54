package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/trsv-dev/users-service/internal/di_containers"
	"github.com/trsv-dev/users-service/internal/middleware"
)

// UsersPrefix Префикс маршрутов пользователей.
const UsersPrefix = "/users"

// Router Роутер.
func Router(h *di_containers.HandlersContainer) chi.Router {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Recoverer)
	// middleware логгера всех запросов
	router.Use(middleware.LogMiddleware(h.Logger))
	router.Use(middleware.CorsMiddleware(h.CORSOrigins))
	router.Use(middleware.MetricsMiddleware(h.Metrics))

	// служебные маршруты
	router.Get("/health", h.HealthHandler.GetHealth)
	router.Method("GET", "/metrics", h.Metrics.Handler())

	router.Route(UsersPrefix, func(r chi.Router) {
		r.Post("/", h.UsersHandler.CreateUser) // создание пользователя
		r.Get("/", h.UsersHandler.ListUsers)   // список пользователей
		r.Get("/{id}", h.UsersHandler.GetUser) // получение пользователя

		// текущий пользователь по JWT-токену
		r.With(middleware.UserToContextMiddleware(h.JWTSecretKey, h.TokenBuilder, h.Logger)).
			Get("/me", h.UsersHandler.GetCurrentUser)
	})

	return router
}
