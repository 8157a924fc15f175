package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-cadastro/internal/config"
	"github.com/prefeitura-rio/app-cadastro/internal/observability"
	"github.com/prefeitura-rio/app-cadastro/internal/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse reports the service status and the state of each backing
// store: healthy, unhealthy or disabled.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

const (
	serviceHealthy   = "healthy"
	serviceUnhealthy = "unhealthy"
	serviceDisabled  = "disabled"
)

// HealthCheck godoc
// @Summary Verificação de saúde
// @Description Verifica a saúde da API e de suas dependências opcionais (MongoDB e Redis).
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse "Todos os serviços estão saudáveis"
// @Failure 503 {object} HealthResponse "Um ou mais serviços estão indisponíveis"
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "HealthCheck")
	defer span.End()
	span.SetAttributes(attribute.String("operation", "health_check"))

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	health := HealthResponse{
		Status:    serviceHealthy,
		Timestamp: time.Now().UTC(),
		Services: map[string]string{
			"mongodb": serviceDisabled,
			"redis":   serviceDisabled,
		},
	}

	if config.MongoDB != nil {
		health.Services["mongodb"] = serviceHealthy
		if err := config.MongoDB.Client().Ping(ctx, nil); err != nil {
			observability.Logger().Warn("mongodb health check failed", zap.Error(err))
			health.Services["mongodb"] = serviceUnhealthy
			health.Status = serviceUnhealthy
		}
	}

	if config.Redis != nil {
		health.Services["redis"] = serviceHealthy
		if err := config.Redis.Ping(ctx).Err(); err != nil {
			observability.Logger().Warn("redis health check failed", zap.Error(err))
			health.Services["redis"] = serviceUnhealthy
			health.Status = serviceUnhealthy
		}
	}

	utils.AddSpanAttribute(span, "health.status", health.Status)
	if health.Status != serviceHealthy {
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}
	c.JSON(http.StatusOK, health)
}
