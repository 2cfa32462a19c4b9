package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotebook/internal/app"
	"github.com/jsamuelsen/quotebook/internal/domain"
	"github.com/jsamuelsen/quotebook/internal/ports"
)

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Name() string { return s.name }

func (s stubChecker) Check(context.Context) error { return s.err }

func healthEngine(t *testing.T, checkers []ports.HealthChecker, stats StatsFunc) *gin.Engine {
	t.Helper()

	registry := ports.NewHealthRegistry()
	for _, c := range checkers {
		require.NoError(t, registry.Register(c))
	}

	engine := gin.New()
	NewHealthHandler(registry, NewBuildInfo("1.2.3", "abc123", "2026-01-15T10:00:00Z"), stats).
		RegisterHealthRoutesOnEngine(engine)

	return engine
}

func get(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	return w
}

func TestNewBuildInfo(t *testing.T) {
	bi := NewBuildInfo("1.0.0", "abc123", "2026-01-15T10:00:00Z")

	assert.Equal(t, "1.0.0", bi.Version)
	assert.Equal(t, runtime.Version(), bi.GoVersion)
}

func TestHealthHandler_Liveness(t *testing.T) {
	w := get(healthEngine(t, nil, nil), "/-/live")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthHandler_Readiness(t *testing.T) {
	tests := []struct {
		name       string
		checkers   []ports.HealthChecker
		wantStatus int
		wantBody   string
	}{
		{
			name:       "no checks",
			wantStatus: http.StatusOK,
			wantBody:   "healthy",
		},
		{
			name:       "store healthy",
			checkers:   []ports.HealthChecker{stubChecker{name: "storage-sqlite"}},
			wantStatus: http.StatusOK,
			wantBody:   "healthy",
		},
		{
			name: "store down",
			checkers: []ports.HealthChecker{
				stubChecker{name: "storage-sqlite", err: domain.NewUnavailableError("storage-sqlite", "sql: database is closed")},
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(healthEngine(t, tt.checkers, nil), "/-/ready")

			assert.Equal(t, tt.wantStatus, w.Code)

			var resp readinessResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantBody, resp.Status)
		})
	}
}

func TestHealthHandler_BuildInfo(t *testing.T) {
	w := get(healthEngine(t, nil, nil), "/-/build")

	require.Equal(t, http.StatusOK, w.Code)

	var bi BuildInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bi))
	assert.Equal(t, "1.2.3", bi.Version)
	assert.Equal(t, "abc123", bi.Commit)
}

func TestHealthHandler_Metrics(t *testing.T) {
	w := get(healthEngine(t, nil, nil), "/-/metrics")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestHealthHandler_Stats(t *testing.T) {
	t.Run("not mounted without source", func(t *testing.T) {
		w := get(healthEngine(t, nil, nil), "/-/stats")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("counts", func(t *testing.T) {
		stats := func(context.Context) (app.Stats, error) {
			return app.Stats{Users: 2, Quotes: 3, Comments: 4}, nil
		}

		w := get(healthEngine(t, nil, stats), "/-/stats")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"users":2,"quotes":3,"comments":4}`, w.Body.String())
	})

	t.Run("store failure", func(t *testing.T) {
		stats := func(context.Context) (app.Stats, error) {
			return app.Stats{}, domain.NewStorageError("users", "count", errors.New("locked"))
		}

		w := get(healthEngine(t, nil, stats), "/-/stats")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "locked")
	})
}
