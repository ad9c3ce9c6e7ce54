package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trsv-dev/users-service/internal/logger"
)

func TestNewServer(t *testing.T) {
	h := http.NewServeMux()
	srv := NewServer("127.0.0.1:8080", h)

	assert.Equal(t, "127.0.0.1:8080", srv.Addr)
	assert.Equal(t, h, srv.Handler)
	assert.Equal(t, readHeaderTimeout, srv.ReadHeaderTimeout)
}

func TestRunServer(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("pong"))
	})

	srv, errCh, err := RunServer("127.0.0.1:0", h, logger.NewNop())
	require.NoError(t, err)
	require.NotNil(t, srv)

	// фактический порт подставлен в адрес
	_, port, err := net.SplitHostPort(srv.Addr)
	require.NoError(t, err)
	assert.NotEqual(t, "0", port)

	resp, err := http.Get("http://" + srv.Addr + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "pong", string(body))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	// после остановки канал закрывается без ошибки
	select {
	case err, ok := <-errCh:
		assert.False(t, ok)
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("канал ошибок не закрыт")
	}
}

func TestRunServer_AddressInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	srv, errCh, err := RunServer(ln.Addr().String(), http.NotFoundHandler(), logger.NewNop())

	require.Error(t, err)
	assert.Nil(t, srv)
	assert.Nil(t, errCh)
	assert.Contains(t, err.Error(), "не удалось занять адрес")
}
