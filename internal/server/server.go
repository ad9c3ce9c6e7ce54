package server

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/trsv-dev/users-service/internal/logger"
)

const readHeaderTimeout = 10 * time.Second

// NewServer Создание нового сервера.
func NewServer(runAddress string, handler http.Handler) *http.Server {
	server := &http.Server{
		Addr:              runAddress,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return server
}

// RunServer Занимает адрес синхронно (ошибка bind возвращается сразу), затем
// обслуживает запросы в горутине. Возвращает сервер и канал ошибок, который
// закрывается после остановки сервера.
func RunServer(runAddress string, handler http.Handler, log logger.Logger) (*http.Server, chan error, error) {
	server := NewServer(runAddress, handler)

	listener, err := net.Listen("tcp", runAddress)
	if err != nil {
		log.Error("Не удалось занять адрес", logger.String("address", runAddress), logger.Err(err))
		return nil, nil, fmt.Errorf("не удалось занять адрес %s: %w", runAddress, err)
	}

	// при порте 0 фактический адрес известен только после Listen
	server.Addr = listener.Addr().String()

	// канал ошибок сервера
	serverErrorCh := make(chan error, 1)

	go func() {
		defer close(serverErrorCh)

		log.Info("Сервер запущен", logger.String("address", server.Addr))
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Ошибка сервера", logger.Err(err))
			serverErrorCh <- err
		}
	}()

	return server, serverErrorCh, nil
}
