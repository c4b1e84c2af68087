package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/ec-commerce/internal/api"
	"github.com/example/ec-commerce/internal/auth"
	"github.com/example/ec-commerce/internal/cache"
	"github.com/example/ec-commerce/internal/config"
	"github.com/example/ec-commerce/internal/infrastructure/kafka"
	"github.com/example/ec-commerce/internal/lock"
	"github.com/example/ec-commerce/internal/notification"
	"github.com/example/ec-commerce/internal/repository"
	"github.com/example/ec-commerce/internal/repository/dynamo"
	"github.com/example/ec-commerce/internal/repository/memory"
	"github.com/example/ec-commerce/internal/repository/postgres"
	"github.com/example/ec-commerce/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("[API] JWT_SECRET environment variable is required")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[API] JWT_SECRET must be at least 32 characters long")
	}

	log.Println("[API] ========================================")
	log.Println("[API] EC Commerce API")
	log.Println("[API] ========================================")
	log.Printf("[API] Store backend: %s", cfg.StoreBackend)
	log.Printf("[API] Listen addr:   %s", cfg.HTTPAddr)

	var (
		productRepo repository.ProductRepository
		couponRepo  repository.CouponRepository
		orderRepo   repository.OrderRepository
		userRepo    repository.UserRepository
		cartRepo    repository.CartRepository
	)

	switch cfg.StoreBackend {
	case "postgres":
		db, err := postgres.Connect(cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("[API] Failed to connect to PostgreSQL: %v", err)
		}
		defer db.Close()
		if err := postgres.InitSchema(db); err != nil {
			log.Fatalf("[API] Failed to initialize schema: %v", err)
		}
		log.Println("[API] Connected to PostgreSQL")

		productRepo = postgres.NewProductStore(db)
		couponRepo = postgres.NewCouponStore(db)
		orderRepo = postgres.NewOrderStore(db)
		userRepo = postgres.NewUserStore(db)
		cartRepo = postgres.NewCartStore(db)
	default:
		log.Println("[API] Using in-memory stores")
		productRepo = memory.NewProductStore()
		couponRepo = memory.NewCouponStore()
		orderRepo = memory.NewOrderStore()
		userRepo = memory.NewUserStore()
		cartRepo = memory.NewCartStore()
	}

	locks := lock.NewManager()

	// Redis top-selling cache, enabled only when an address is configured.
	var productCache usecase.ProductCache
	if cfg.RedisAddr != "" {
		productCache = cache.NewTopSellingCache(cache.NewClient(cfg.RedisAddr))
		log.Printf("[API] Redis cache: %s", cfg.RedisAddr)
	}

	// Kafka notifier, enabled only when brokers are configured.
	var notifier usecase.Notifier
	if len(cfg.KafkaBrokers) > 0 {
		producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer producer.Close()
		notifier = notification.NewKafkaNotifier(producer)
		log.Printf("[API] Kafka: %v topic %s", cfg.KafkaBrokers, cfg.KafkaTopic)
	}

	// DynamoDB order archive, enabled only when a table is configured and AWS
	// credentials resolve.
	var archiver usecase.OrderArchiver
	if cfg.DynamoTable != "" && os.Getenv("AWS_REGION") != "" {
		client, err := dynamo.NewClient(ctx)
		if err != nil {
			log.Printf("[API] DynamoDB disabled: %v", err)
		} else {
			archiver = dynamo.NewOrderArchive(client, cfg.DynamoTable)
			log.Printf("[API] DynamoDB archive: %s", cfg.DynamoTable)
		}
	}

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenExpiry)

	productUC := usecase.NewProductUseCase(productRepo, productCache)
	cartUC := usecase.NewCartUseCase(cartRepo, productRepo)
	orderUC := usecase.NewOrderUseCase(orderRepo, productRepo, couponRepo, locks)
	couponUC := usecase.NewCouponUseCase(couponRepo, locks)
	paymentUC := usecase.NewPaymentUseCase(userRepo, orderRepo, locks, notifier, archiver)
	userUC := usecase.NewUserUseCase(userRepo)

	handlers := api.NewHandlers(productUC, cartUC, orderUC, couponUC, paymentUC)
	authHandlers := api.NewAuthHandlers(userUC, jwtService)
	router := api.NewRouter(handlers, authHandlers, jwtService)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		log.Printf("[API] Server started on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("[API] Server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[API] Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[API] Shutdown error: %v", err)
	}
}
