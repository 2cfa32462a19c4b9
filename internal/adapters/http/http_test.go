package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotebook/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotebook/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotebook/internal/adapters/storage"
	"github.com/jsamuelsen/quotebook/internal/app"
	"github.com/jsamuelsen/quotebook/internal/platform/config"
	"github.com/jsamuelsen/quotebook/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stack is the full HTTP surface over a temporary sqlite store.
type stack struct {
	engine *gin.Engine
	store  *storage.Store
}

func newStack(tb testing.TB, limits storage.Limits) *stack {
	tb.Helper()

	logger := discardLogger()

	store, err := storage.Open(storage.Options{
		Driver: storage.DriverSQLite,
		Path:   filepath.Join(tb.TempDir(), "quotebook.db"),
		Limits: limits,
		Logger: logger,
	})
	require.NoError(tb, err)
	tb.Cleanup(func() { _ = store.Close() })

	registry := ports.NewHealthRegistry()
	require.NoError(tb, registry.Register(store))

	svc := app.NewService(app.ServiceConfig{Store: store, Logger: logger})

	cfg := &config.Config{
		App:    config.AppConfig{Name: "quotebook", Version: "test", Environment: "test"},
		Server: config.ServerConfig{RequestTimeout: 5 * time.Second},
	}

	engine := gin.New()
	engine.Use(maxBodySize(4 << 10))
	SetupRouter(engine, NewRouterConfig(
		logger,
		cfg,
		handlers.NewHealthHandler(registry, handlers.NewBuildInfo("test", "none", "unknown"), svc.Stats),
		handlers.NewQuoteHandler(svc),
		handlers.NewUserHandler(svc),
	))

	return &stack{engine: engine, store: store}
}

func (s *stack) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	return w
}

func TestSetupRouter_Routes(t *testing.T) {
	s := newStack(t, storage.Limits{})

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/-/live", http.StatusOK},
		{http.MethodGet, "/-/ready", http.StatusOK},
		{http.MethodGet, "/-/build", http.StatusOK},
		{http.MethodGet, "/-/metrics", http.StatusOK},
		{http.MethodGet, "/-/stats", http.StatusOK},
		{http.MethodGet, "/api/v1/quotes", http.StatusNotFound},
		{http.MethodGet, "/api/v1/quotes/q-1/comments", http.StatusNotFound},
		{http.MethodGet, "/api/v1/nothing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, s.do(tt.method, tt.path, "", nil).Code)
		})
	}
}

func TestSetupRouter_EchoesIDs(t *testing.T) {
	s := newStack(t, storage.Limits{})

	w := s.do(http.MethodGet, "/api/v1/quotes", "", map[string]string{"X-Correlation-ID": "corr-1"})

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "corr-1", w.Header().Get("X-Correlation-ID"))
}

func TestSetupRouter_ReadinessFollowsStore(t *testing.T) {
	s := newStack(t, storage.Limits{})

	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/-/ready", "", nil).Code)
	require.NoError(t, s.store.Close())

	w := s.do(http.MethodGet, "/-/ready", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "storage-sqlite")
}

func TestSetupRouter_RecordTooLarge(t *testing.T) {
	s := newStack(t, storage.Limits{Quotes: 256})

	w := s.do(http.MethodPost, "/api/v1/users", `{"name":"ada","pinCode":"1815"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var user dto.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))

	body, err := json.Marshal(dto.NewQuoteRequest{AuthorID: user.ID, Quote: strings.Repeat("x", 512)})
	require.NoError(t, err)

	w = s.do(http.MethodPost, "/api/v1/quotes", string(body), nil)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = s.do(http.MethodGet, "/-/stats", "", nil)
	assert.JSONEq(t, `{"users":1,"quotes":0,"comments":0}`, w.Body.String())
}

func TestSetupRouter_BodyLimit(t *testing.T) {
	s := newStack(t, storage.Limits{})

	huge := `{"name":"` + strings.Repeat("a", 8<<10) + `","pinCode":"1"}`

	w := s.do(http.MethodPost, "/api/v1/users", huge, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServer_StartShutdown(t *testing.T) {
	cfg := &config.ServerConfig{
		Host:           "127.0.0.1",
		Port:           0,
		ReadTimeout:    time.Second,
		WriteTimeout:   time.Second,
		IdleTimeout:    time.Second,
		MaxRequestSize: 1 << 10,
	}

	srv := New(cfg, discardLogger())
	assert.Equal(t, "127.0.0.1:0", srv.Addr())
	assert.Same(t, cfg, srv.Config())

	srv.Engine().GET("/-/live", func(c *gin.Context) { c.Status(http.StatusOK) })

	errCh, err := srv.Start()
	require.NoError(t, err)
	assert.NotEqual(t, "127.0.0.1:0", srv.Addr())

	resp, err := http.Get("http://" + srv.Addr() + "/-/live") //nolint:noctx // test request
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, srv.Shutdown(ctx))

	_, open := <-errCh
	assert.False(t, open)
}

func TestServer_StartBindError(t *testing.T) {
	first := New(&config.ServerConfig{Host: "127.0.0.1", Port: 0}, discardLogger())
	_, err := first.Start()
	require.NoError(t, err)
	t.Cleanup(func() { _ = first.Shutdown(context.Background()) })

	_, port, _ := strings.Cut(first.Addr(), ":")

	second := New(&config.ServerConfig{Host: "127.0.0.1"}, discardLogger())
	second.httpServer.Addr = "127.0.0.1:" + port

	_, err = second.Start()
	require.Error(t, err)
}
