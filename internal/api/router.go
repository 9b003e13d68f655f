package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/enlamano/bcugateway/internal/metrics"
	"github.com/enlamano/bcugateway/internal/middleware"
)

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, CORS, Metrics).
//   - Adds request timeout handling (45 seconds, above the upstream read timeout).
//   - Mounts Swagger docs (/swagger/*any) and the Prometheus endpoint (/metrics).
//   - Configures the consulta routes (/api/bcu/consulta).
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
//
// Parameters:
//   - handler (*Handler): The HTTP handler with business logic.
//   - m (*metrics.Metrics): Prometheus instruments; nil disables instrumentation.
//
// Returns:
//   - *gin.Engine: Configured Gin router.
func NewRouter(handler *Handler, m *metrics.Metrics) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.CORS(),
	)
	if m != nil {
		router.Use(middleware.Metrics(m))
	}

	// ─── Timeout ──────────────────────────────────
	// Above the 30 s upstream read timeout so the adapter's own deadline
	// fires first and the failure is classified as UpstreamTimeout.
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 45*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// ─── Swagger / Metrics ────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ─── BCU gateway ──────────────────────────────
	bcu := router.Group("/api/bcu")
	{
		bcu.POST("/consulta", handler.Consulta)
		bcu.GET("/consulta", handler.Info)
		bcu.OPTIONS("/consulta", func(c *gin.Context) {})
	}

	return router
}
