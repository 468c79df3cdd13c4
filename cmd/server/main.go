package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-service/config"
	"storefront-service/internal/api"
	"storefront-service/internal/broker"
	"storefront-service/internal/cart"
	"storefront-service/internal/catalog"
	"storefront-service/internal/checkout"
	"storefront-service/internal/content"
	"storefront-service/internal/redisclient"
	"storefront-service/internal/store"
	"storefront-service/internal/util"
	"storefront-service/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting storefront service")

	tp, err := util.InitTracer("storefront-service", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	library, err := content.LoadEmbedded()
	if err != nil {
		log.Fatalf("Failed to load content fixtures: %v", err)
	}

	cat := loadCatalog(cfg, library)
	log.Printf("Catalog ready: %d products", cat.Size())

	redisClient, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Redis connected")

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrders)
	defer producer.Close()
	log.Println("Kafka producer initialized")

	eventPublisher := broker.NewEventPublisher(producer)

	cartService := cart.NewService(redisClient)
	checkoutService := checkout.NewService(cartService, redisClient, eventPublisher, cfg.Checkout)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	orderConsumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrders, cfg.Kafka.ConsumerGroup)
	orderWorker := worker.NewOrderWorker(orderConsumer)
	go func() {
		if err := orderWorker.Start(workerCtx); err != nil {
			log.Printf("Order worker error: %v", err)
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	handler := api.NewHandler(cat, cartService, checkoutService, library)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	workerCancel()
	orderWorker.Stop()

	log.Println("Server exited")
}

// loadCatalog prefers Postgres when configured and falls back to the embedded
// fixtures on any failure; the catalog is static either way.
func loadCatalog(cfg *config.Config, library *content.Library) *catalog.Catalog {
	if cfg.Database.URL != "" {
		if cat, err := loadCatalogFromDB(cfg.Database.URL, library); err != nil {
			log.Printf("Failed to load catalog from database, using embedded fixtures: %v", err)
		} else {
			log.Println("Catalog loaded from database")
			return cat
		}
	}

	cat, err := catalog.LoadEmbedded()
	if err != nil {
		log.Fatalf("Failed to load embedded catalog: %v", err)
	}
	return cat
}

func loadCatalogFromDB(databaseURL string, library *content.Library) (*catalog.Catalog, error) {
	db, err := store.NewStore(databaseURL)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	products, err := db.GetProducts(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := db.GetCategories(ctx)
	if err != nil {
		return nil, err
	}
	if tours, err := db.GetTourEvents(ctx); err != nil {
		log.Printf("Failed to load tour calendar from database, keeping fixtures: %v", err)
	} else if len(tours) > 0 {
		library.SetTours(tours)
	}

	return catalog.New(products, categories), nil
}
