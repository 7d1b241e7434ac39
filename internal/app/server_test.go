//go:build !integration

package app

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/guttosm/quote-service/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
}

func TestNewServer(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.ServerConfig
		wantAddr    string
		wantTimeout time.Duration
	}{
		{
			name:        "uses configured shutdown timeout",
			cfg:         config.ServerConfig{Port: "8080", ShutdownTimeout: 3 * time.Second},
			wantAddr:    ":8080",
			wantTimeout: 3 * time.Second,
		},
		{
			name:        "falls back to default shutdown timeout",
			cfg:         config.ServerConfig{Port: "9090"},
			wantAddr:    ":9090",
			wantTimeout: defaultShutdownTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := NewServer(okHandler(), tt.cfg)

			require.NotNil(t, server.httpServer)
			assert.Equal(t, tt.wantAddr, server.httpServer.Addr)
			assert.Equal(t, 15*time.Second, server.httpServer.ReadTimeout)
			assert.Equal(t, 45*time.Second, server.httpServer.WriteTimeout)
			assert.Equal(t, 60*time.Second, server.httpServer.IdleTimeout)
			assert.Equal(t, tt.wantTimeout, server.shutdownTimeout)
		})
	}
}

func TestServer_ServeUntilCancelled(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	server := NewServer(okHandler(), config.ServerConfig{ShutdownTimeout: time.Second})
	var hooks []string
	server.OnShutdown(func(context.Context) error { hooks = append(hooks, "request log"); return nil })
	server.OnShutdown(func(context.Context) error { hooks = append(hooks, "mongodb"); return nil })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String())
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.Equal(t, []string{"request log", "mongodb"}, hooks)
}

func TestServer_ShutdownJoinsHookErrors(t *testing.T) {
	server := NewServer(okHandler(), config.ServerConfig{Port: "0"})
	errA := errors.New("flush request logs")
	errB := errors.New("disconnect mongodb")
	server.OnShutdown(func(context.Context) error { return errA })
	server.OnShutdown(func(context.Context) error { return nil })
	server.OnShutdown(func(context.Context) error { return errB })

	err := server.Shutdown()

	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
}

func TestServer_HookSeesDeadline(t *testing.T) {
	server := NewServer(okHandler(), config.ServerConfig{ShutdownTimeout: time.Second})
	server.OnShutdown(func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		assert.True(t, ok)
		return nil
	})

	assert.NoError(t, server.Shutdown())
}

func TestServer_RunListenError(t *testing.T) {
	server := NewServer(okHandler(), config.ServerConfig{Port: "invalid-port"})

	err := server.Run(context.Background())

	assert.Error(t, err)
}
