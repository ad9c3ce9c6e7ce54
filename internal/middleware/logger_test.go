package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trsv-dev/users-service/internal/logger"
)

// recordingLogger Запоминает сообщения уровня Debug.
type recordingLogger struct {
	mu      sync.Mutex
	entries []map[string]string
}

func (l *recordingLogger) Debug(msg string, fields ...logger.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := map[string]string{"msg": msg}
	for _, f := range fields {
		entry[f.Key] = f.Value
	}
	l.entries = append(l.entries, entry)
}

func (l *recordingLogger) Info(string, ...logger.Field)  {}
func (l *recordingLogger) Warn(string, ...logger.Field)  {}
func (l *recordingLogger) Error(string, ...logger.Field) {}

// TestLoggingResponseWriterWrite Проверяет перехват Write.
func TestLoggingResponseWriterWrite(t *testing.T) {
	w := httptest.NewRecorder()
	data := &responseData{}
	lw := &LoggingResponseWriter{
		ResponseWriter: w,
		responseData:   data,
	}

	n, err := lw.Write([]byte("Hello, "))
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	_, _ = lw.Write([]byte("World!"))

	// размер суммируется, статус по умолчанию 200
	assert.Equal(t, 13, data.size)
	assert.Equal(t, http.StatusOK, data.status)
	assert.Equal(t, "Hello, World!", w.Body.String())
}

// TestLoggingResponseWriterWriteHeader Проверяет перехват кода статуса.
func TestLoggingResponseWriterWriteHeader(t *testing.T) {
	w := httptest.NewRecorder()
	data := &responseData{}
	lw := &LoggingResponseWriter{ResponseWriter: w, responseData: data}

	lw.WriteHeader(http.StatusCreated)
	_, _ = lw.Write([]byte("{}"))

	assert.Equal(t, http.StatusCreated, data.status)
	assert.Equal(t, http.StatusCreated, w.Code)
}

// TestLogMiddleware Проверяет запись запроса в лог.
func TestLogMiddleware(t *testing.T) {
	log := &recordingLogger{}

	handler := middleware.RequestID(LogMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("conflict"))
	})))

	req := httptest.NewRequest(http.MethodPost, "/users/?x=1", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Len(t, log.entries, 1)
	entry := log.entries[0]

	assert.Equal(t, "Got incoming HTTP request", entry["msg"])
	assert.Equal(t, "/users/?x=1", entry["uri"])
	assert.Equal(t, http.MethodPost, entry["method"])
	assert.Equal(t, "409", entry["status"])
	assert.Equal(t, "8", entry["size"])
	assert.NotEmpty(t, entry["request_id"])
	assert.NotEmpty(t, entry["duration_us"])
}
