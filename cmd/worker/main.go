package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/services"
	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

func init() {
	_ = godotenv.Load()
}

// The worker emails invoices for placed orders and status updates for
// everything else it sees on the order events queue.
func main() {
	logger := config.InitLogger(os.Getenv("APP_ENV"))
	defer logger.Sync()

	if err := config.LoadStore(); err != nil {
		logger.Fatal("❌ Failed to load store settings", zap.Error(err))
	}

	amqpURL := os.Getenv("AMQP_URL")
	if amqpURL == "" {
		logger.Fatal("❌ AMQP_URL environment variable not set")
	}

	mailer, err := services.NewResendClient()
	if err != nil {
		logger.Fatal("❌ Email not configured", zap.Error(err))
	}

	config.InitDB()
	defer config.CloseDB()

	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		logger.Fatal("❌ RabbitMQ unreachable", zap.Error(err))
	}
	defer conn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("🚀 Worker consuming order events", zap.String("queue", services.OrderEventsQueue))
	handler := services.NotifyCustomer(mailer, services.LoadOrder)
	if err := services.ConsumeOrderEvents(ctx, conn, "herbsera-worker", handler); err != nil {
		logger.Error("❌ Consumer stopped", zap.Error(err))
	}
	logger.Info("Worker exited")
}
