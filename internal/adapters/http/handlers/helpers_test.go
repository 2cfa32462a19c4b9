package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotebook/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotebook/internal/adapters/storage"
	"github.com/jsamuelsen/quotebook/internal/app"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(tb testing.TB) *app.Service {
	tb.Helper()

	store, err := storage.Open(storage.Options{
		Driver: storage.DriverSQLite,
		Path:   filepath.Join(tb.TempDir(), "handlers.db"),
		Logger: discardLogger(),
	})
	require.NoError(tb, err)

	tb.Cleanup(func() { _ = store.Close() })

	return app.NewService(app.ServiceConfig{Store: store, Logger: discardLogger()})
}

func newTestEngine(tb testing.TB) *gin.Engine {
	tb.Helper()

	svc := newTestService(tb)
	engine := gin.New()
	api := engine.Group("/api/v1")
	NewUserHandler(svc).RegisterRoutes(api)
	NewQuoteHandler(svc).RegisterRoutes(api)

	return engine
}

func do(engine *gin.Engine, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			b, _ := json.Marshal(body)
			raw = string(b)
		}

		reader = bytes.NewBufferString(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	return w
}

func decode[T any](t testing.TB, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())

	return v
}

func errorCode(t testing.TB, w *httptest.ResponseRecorder) string {
	t.Helper()

	return decode[dto.ErrorResponse](t, w).Error.Code
}

func mustCreateUser(t testing.TB, engine *gin.Engine, name, pin string) dto.UserResponse {
	t.Helper()

	w := do(engine, http.MethodPost, "/api/v1/users", dto.CredentialsRequest{Name: name, PinCode: pin})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	return decode[dto.UserResponse](t, w)
}

func mustCreateQuote(t testing.TB, engine *gin.Engine, authorID, text string) dto.QuoteResponse {
	t.Helper()

	w := do(engine, http.MethodPost, "/api/v1/quotes", dto.NewQuoteRequest{AuthorID: authorID, Quote: text})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	return decode[dto.QuoteResponse](t, w)
}

func mustAddComment(t testing.TB, engine *gin.Engine, authorID, quoteID, text string) dto.CommentResponse {
	t.Helper()

	w := do(engine, http.MethodPost, "/api/v1/quotes/"+quoteID+"/comments",
		dto.NewCommentRequest{AuthorID: authorID, Comment: text})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	return decode[dto.CommentResponse](t, w)
}
