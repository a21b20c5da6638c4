package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/eduardismund/tastetrails-web/internal/app/middleware"
	"github.com/eduardismund/tastetrails-web/internal/app/observability/metrics"
	"github.com/eduardismund/tastetrails-web/internal/routes"
)

// SetupRouter configures and returns the Gin router with all middleware and
// routes.
func SetupRouter(s *Server, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(requestLogger(logger))
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("tastetrails-web"))
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.SecurityMiddleware())

	routes.Setup(r, s.Backend(), s.TasteAI(), s.Geo(), s.Config(), logger)

	return r
}

// requestLogger emits one structured log line per request and feeds the
// request counters.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", elapsed),
		}
		if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().IsValid() {
			fields = append(fields,
				zap.String("trace_id", span.SpanContext().TraceID().String()),
				zap.String("span_id", span.SpanContext().SpanID().String()),
			)
		}
		logger.Info("HTTP request", fields...)

		if m := metrics.Get(); m != nil {
			ctx := c.Request.Context()
			m.HTTPRequestsTotal.Add(ctx, 1)
			m.HTTPRequestDuration.Record(ctx, elapsed.Seconds())
		}
	}
}
