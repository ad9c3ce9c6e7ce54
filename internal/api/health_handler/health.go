package health_handler

import (
	"context"
	"net/http"
	"time"

	"github.com/trsv-dev/users-service/internal/logger"
)

const pingTimeout = 2 * time.Second

// Pinger Проверка доступности хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler обрабатывает HTTP-запросы для проверки состояния сервиса.
type HealthHandler struct {
	storage Pinger
	log     logger.Logger
}

// NewHealthHandler Конструктор HealthHandler.
func NewHealthHandler(storage Pinger, log logger.Logger) *HealthHandler {
	return &HealthHandler{
		storage: storage,
		log:     log,
	}
}

// GetHealth Возвращает HTTP 200, если хранилище доступно, иначе HTTP 503.
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	pingCtx, pingCancel := context.WithTimeout(r.Context(), pingTimeout)
	defer pingCancel()

	if err := h.storage.Ping(pingCtx); err != nil {
		h.log.Error("Хранилище не отвечает", logger.Err(err))

		http.Error(w, "Хранилище недоступно", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
