package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/ec-commerce/internal/config"
	"github.com/example/ec-commerce/internal/email"
	"github.com/example/ec-commerce/internal/infrastructure/kafka"
	"github.com/example/ec-commerce/internal/notification"
	"github.com/example/ec-commerce/internal/repository"
	"github.com/example/ec-commerce/internal/repository/memory"
	"github.com/example/ec-commerce/internal/repository/postgres"
)

const consumerGroup = "email-notifier"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()
	if len(cfg.KafkaBrokers) == 0 {
		log.Fatal("[Notifier] KAFKA_BROKERS environment variable is required")
	}

	log.Println("[Notifier] ========================================")
	log.Println("[Notifier] EC Commerce - Payment Notification Service")
	log.Println("[Notifier] ========================================")
	log.Printf("[Notifier] Kafka: %v", cfg.KafkaBrokers)
	log.Printf("[Notifier] Topic: %s", cfg.KafkaTopic)
	log.Printf("[Notifier] Group: %s", consumerGroup)
	log.Printf("[Notifier] SMTP:  %s:%s", cfg.SMTPHost, cfg.SMTPPort)

	// User lookup for email addresses.
	var userRepo repository.UserRepository
	if cfg.StoreBackend == "postgres" {
		db, err := postgres.Connect(cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("[Notifier] Failed to connect to PostgreSQL: %v", err)
		}
		defer db.Close()
		userRepo = postgres.NewUserStore(db)
		log.Println("[Notifier] Connected to PostgreSQL")
	} else {
		userRepo = memory.NewUserStore()
	}

	emailSvc := email.NewService(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailFrom)
	handler := notification.NewHandler(emailSvc, userRepo)

	consumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, consumerGroup)
	defer consumer.Close()

	go func() {
		log.Println("[Notifier] Starting consumer...")
		if err := consumer.Consume(ctx, handler.HandleMessage); err != nil {
			if ctx.Err() == nil {
				log.Printf("[Notifier] Consumer error: %v", err)
			}
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[Notifier] Shutting down...")
	cancel()
}
