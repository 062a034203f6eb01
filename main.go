// @title Herbsera API
// @version 1.0
// @description Herbsera storefront and admin console API
// @host localhost:8080
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/herbsera/herbsera-backend/config"
	_ "github.com/herbsera/herbsera-backend/docs"
	"github.com/herbsera/herbsera-backend/routes"
	"github.com/herbsera/herbsera-backend/services"
	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

func init() {
	_ = godotenv.Load()
}

func main() {
	logger := config.InitLogger(os.Getenv("APP_ENV"))
	defer logger.Sync()

	if os.Getenv("JWT_SECRET") == "" {
		logger.Fatal("❌ JWT_SECRET environment variable not set")
	}

	if err := config.LoadStore(); err != nil {
		logger.Fatal("❌ Failed to load store settings", zap.Error(err))
	}

	shutdownTracing, err := config.InitTelemetry(context.Background(), "herbsera-api")
	if err != nil {
		logger.Fatal("❌ Failed to initialize tracing", zap.Error(err))
	}

	// Connect to DB
	config.InitDB()
	defer config.CloseDB()

	// Redis connection (rate limiting)
	config.ConnectRedis()
	defer config.CloseRedis()

	config.InitGoogleOAuth()

	if err := services.InitMedia(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"),
	); err != nil {
		logger.Fatal("❌ Failed to initialize Cloudinary", zap.Error(err))
	}

	if conn := connectBroker(logger); conn != nil {
		defer conn.Close()
	}
	defer services.Events.Close()

	router := routes.SetupRouter(logger)

	srv := &http.Server{
		Addr:              ":" + config.GetEnv("PORT", "8080"),
		Handler:           otelhttp.NewHandler(router, "herbsera-api"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("🚀 Server is running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("❌ Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := shutdownTracing(ctx); err != nil {
		logger.Warn("Tracer shutdown failed", zap.Error(err))
	}
	logger.Info("Server exited")
}

// connectBroker swaps in the RabbitMQ publisher when AMQP_URL is set.
// Without it order events are dropped.
func connectBroker(logger *zap.Logger) *amqp.Connection {
	url := os.Getenv("AMQP_URL")
	if url == "" {
		logger.Warn("⚠️ AMQP_URL not set, order events disabled")
		return nil
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		logger.Error("❌ RabbitMQ unreachable, order events disabled", zap.Error(err))
		return nil
	}

	pub, err := services.NewRabbitPublisher(conn)
	if err != nil {
		logger.Error("❌ Failed to set up order events", zap.Error(err))
		_ = conn.Close()
		return nil
	}

	services.Events = pub
	logger.Info("✅ Order events publishing to RabbitMQ")
	return conn
}
