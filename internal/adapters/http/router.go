package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotebook/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotebook/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotebook/internal/platform/config"
	"github.com/jsamuelsen/quotebook/internal/platform/telemetry"
)

// DefaultRequestTimeout applies when the server config sets none.
const DefaultRequestTimeout = 15 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	Logger    *slog.Logger
	AppConfig *config.AppConfig

	HealthHandler *handlers.HealthHandler
	QuoteHandler  *handlers.QuoteHandler
	UserHandler   *handlers.UserHandler

	// Timeout bounds each /api/v1 request. Zero disables it.
	Timeout time.Duration

	// CORSOrigins lists allowed browser origins. Empty allows any.
	CORSOrigins []string
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware runs in this order:
//  1. Recovery
//  2. Request ID
//  3. Correlation ID
//  4. OpenTelemetry tracing and request metrics
//  5. Logging (skips /-/ paths)
//  6. CORS
//
// Routes:
//   - /-/      operator endpoints: live, ready, build, metrics, stats
//   - /api/v1/ quotes, comments and users, under a request timeout
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)
	engine.Use(telemetry.Middleware(cfg.AppConfig.Name)...)
	engine.Use(
		middleware.Logging(cfg.Logger),
		middleware.CORS(cfg.CORSOrigins),
	)

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	apiV1 := engine.Group("/api/v1")
	if cfg.Timeout > 0 {
		apiV1.Use(middleware.Timeout(cfg.Timeout))
	}

	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterRoutes(apiV1)
	}

	if cfg.UserHandler != nil {
		cfg.UserHandler.RegisterRoutes(apiV1)
	}
}

// NewRouterConfig builds a RouterConfig from the loaded configuration.
func NewRouterConfig(
	logger *slog.Logger,
	cfg *config.Config,
	health *handlers.HealthHandler,
	quotes *handlers.QuoteHandler,
	users *handlers.UserHandler,
) RouterConfig {
	timeout := cfg.Server.RequestTimeout
	if timeout == 0 {
		timeout = DefaultRequestTimeout
	}

	return RouterConfig{
		Logger:        logger,
		AppConfig:     &cfg.App,
		HealthHandler: health,
		QuoteHandler:  quotes,
		UserHandler:   users,
		Timeout:       timeout,
		CORSOrigins:   cfg.Server.CORSAllowedOrigins,
	}
}
