package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prefeitura-rio/app-cadastro/internal/config"
	"github.com/prefeitura-rio/app-cadastro/internal/handlers"
	"github.com/prefeitura-rio/app-cadastro/internal/logging"
	"github.com/prefeitura-rio/app-cadastro/internal/middleware"
	"github.com/prefeitura-rio/app-cadastro/internal/observability"
	"github.com/prefeitura-rio/app-cadastro/internal/services"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/prefeitura-rio/app-cadastro/docs"
)

// @title           Cadastro API
// @version         1.0
// @description     API do formulário de cadastro de cidadãos. Cada rascunho mantém os valores, a visibilidade e as mensagens de validação dos campos; o envio entrega o cadastro validado.

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /v1

// @tag.name registration
// @tag.description Rascunhos e envio do formulário de cadastro

// @tag.name health
// @tag.description Health check operations

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() { _ = logging.Logger.Sync() }()

	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}

	observability.InitTracer()
	defer observability.ShutdownTracer()

	if config.AppConfig.SubmissionSink == config.SinkMongo {
		if err := config.InitMongoDB(); err != nil {
			logging.Logger.Fatal("failed to connect to MongoDB", zap.Error(err))
		}
	}
	if config.AppConfig.RedisEnabled {
		if err := config.InitRedis(); err != nil {
			logging.Logger.Warn("redis unavailable, rate limiting stays in process", zap.Error(err))
		}
	}

	if err := services.InitRegistrationService(); err != nil {
		logging.Logger.Fatal("failed to initialize registration service", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	services.RegistrationServiceInstance.StartSweeper(ctx, config.AppConfig.DraftSweepInterval)

	if config.AppConfig.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	corsConfig := cors.DefaultConfig()
	if len(config.AppConfig.AllowedOrigins) == 0 || config.AppConfig.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = config.AppConfig.AllowedOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "X-Request-ID")
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestTiming(),
		middleware.RequestLogger(),
		middleware.RequestTracker(),
		cors.New(corsConfig),
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/v1")
	{
		v1.GET("/health", handlers.HealthCheck)

		registrationHandlers := handlers.NewRegistrationHandlers(logging.Logger, services.RegistrationServiceInstance)
		registrationHandlers.RegisterRoutes(v1)
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", config.AppConfig.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logging.Logger.Info("starting server",
			zap.Int("port", config.AppConfig.Port),
			zap.String("environment", config.AppConfig.Environment),
			zap.String("submission_sink", config.AppConfig.SubmissionSink),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()

	logging.Logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Logger.Error("server forced to shutdown", zap.Error(err))
	}

	if config.MongoDB != nil {
		if err := config.MongoDB.Client().Disconnect(shutdownCtx); err != nil {
			logging.Logger.Error("failed to disconnect from MongoDB", zap.Error(err))
		}
	}
	if config.Redis != nil {
		if err := config.Redis.Close(); err != nil {
			logging.Logger.Error("failed to close Redis client", zap.Error(err))
		}
	}

	logging.Logger.Info("server exited gracefully")
}
