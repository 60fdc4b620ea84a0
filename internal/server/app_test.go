package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophusers/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := lis.Addr().String()
	require.NoError(t, lis.Close())
	return addr
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.HTTPAddr = freeAddr(t)
	c.DatabaseDSN = "sqlite::memory:"
	c.BcryptCost = 4
	c.LogLevel = "error"
	c.ShutdownTimeout = time.Second
	return c
}

func TestApp_RunAndStop(t *testing.T) {
	c := testConfig(t)

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	url := "http://" + c.HTTPAddr
	require.Eventually(t, func() bool {
		resp, err := http.Get(url + "/health")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	resp, err := http.Post(url+"/users", "application/json",
		strings.NewReader(`{"name":"Pedro Queiroz","email":"test@gmail.com","password":"a"}`))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestNewApp_BadLogLevel(t *testing.T) {
	c := testConfig(t)
	c.LogLevel = "chatty"

	_, err := NewApp(context.Background(), c)
	assert.Error(t, err)
}

func TestNewApp_BadDSN(t *testing.T) {
	c := testConfig(t)
	c.DatabaseDSN = "mysql://localhost/users"

	_, err := NewApp(context.Background(), c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db init error")
}
