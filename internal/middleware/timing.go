package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-cadastro/internal/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// RequestTiming wraps every request in a span and records its latency
func RequestTiming() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Set("request_start_time", start)

		ctx, span := otel.Tracer("http").Start(c.Request.Context(), "http.request")
		span.SetAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", c.FullPath()),
			attribute.String("http.user_agent", c.Request.UserAgent()),
			attribute.String("http.client_ip", c.ClientIP()),
		)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		span.SetAttributes(
			attribute.Int("http.status_code", status),
			attribute.Int64("http.duration_ms", latency.Milliseconds()),
		)
		if status >= 400 {
			span.SetAttributes(attribute.String("http.error", "true"))
		}

		observability.RequestDuration.WithLabelValues(
			routeLabel(c),
			c.Request.Method,
			strconv.Itoa(status),
		).Observe(latency.Seconds())

		if latency > time.Second {
			observability.Logger().Warn("slow request",
				zap.String("route", routeLabel(c)),
				zap.Duration("latency", latency))
		}
	}
}
