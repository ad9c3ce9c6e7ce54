package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/trsv-dev/users-service/internal/logger"
)

// Структура для хранения данных ответа.
type responseData struct {
	status int
	size   int
}

// LoggingResponseWriter Структура, которой можно подменить оригинальный http.ResponseWriter
// для получения ответа и записи ответа в лог.
type LoggingResponseWriter struct {
	http.ResponseWriter
	responseData *responseData
}

func (l *LoggingResponseWriter) Write(b []byte) (int, error) {
	// без явного WriteHeader net/http отвечает 200
	if l.responseData.status == 0 {
		l.responseData.status = http.StatusOK
	}

	size, err := l.ResponseWriter.Write(b)
	l.responseData.size += size

	return size, err
}

func (l *LoggingResponseWriter) WriteHeader(statusCode int) {
	l.ResponseWriter.WriteHeader(statusCode)
	l.responseData.status = statusCode
}

// LogMiddleware Middleware для логирования всех запросов.
func LogMiddleware(log logger.Logger) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		f := func(w http.ResponseWriter, r *http.Request) {
			data := responseData{}

			lw := LoggingResponseWriter{
				ResponseWriter: w,
				responseData:   &data,
			}

			start := time.Now()
			h.ServeHTTP(&lw, r)
			duration := time.Since(start)

			log.Debug("Got incoming HTTP request",
				logger.String("request_id", middleware.GetReqID(r.Context())),
				logger.String("uri", r.RequestURI),
				logger.String("method", r.Method),
				logger.Int("status", data.status),
				logger.Int64("duration_us", duration.Microseconds()),
				logger.Int("size", data.size),
			)
		}

		return http.HandlerFunc(f)
	}
}
