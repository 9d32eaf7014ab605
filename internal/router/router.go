package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"umlage/docs"
	"umlage/internal/handler"
	"umlage/internal/metrics"
	"umlage/internal/middleware"
)

// Options carries the cross-cutting settings of the engine.
type Options struct {
	AllowedOrigins []string
	// Metrics is nil when the /metrics endpoint is disabled.
	Metrics *metrics.Metrics
	Swagger bool
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	log zerolog.Logger,
	opts Options,
	invoiceH *handler.InvoiceHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(opts.AllowedOrigins))
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	if opts.Swagger {
		docs.SwaggerInfo.BasePath = "/api/v1"
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))
	}

	v1 := r.Group("/api/v1")

	// Invoice routes. An Authorization header may be sent but is not checked.
	invoices := v1.Group("/invoices")
	invoices.POST("/process", invoiceH.Process)
	invoices.POST("/process/export", invoiceH.Export)

	return r
}
