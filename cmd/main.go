package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/shopkit/cart-service/internal/domain"
	"github.com/shopkit/cart-service/internal/events"
	"github.com/shopkit/cart-service/internal/handler"
	"github.com/shopkit/cart-service/internal/repository"
	"github.com/shopkit/cart-service/internal/service"
	"github.com/shopkit/cart-service/pkg/config"
	"github.com/shopkit/cart-service/pkg/middleware"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	shopDB, err := repository.OpenDB(cfg.ShopDBPath)
	if err != nil {
		log.Fatal("Failed to open shop database:", err)
	}
	crmDB, err := repository.OpenDB(cfg.CRMDBPath)
	if err != nil {
		log.Fatal("Failed to open CRM database:", err)
	}
	if err := shopDB.AutoMigrate(&domain.Product{}); err != nil {
		log.Fatal("Failed to migrate shop schema:", err)
	}
	if err := crmDB.AutoMigrate(&domain.Order{}); err != nil {
		log.Fatal("Failed to migrate CRM schema:", err)
	}

	productRepo := repository.NewProductRepository(shopDB)
	orderRepo := repository.NewOrderRepository(crmDB)
	cartStore := repository.NewCartFileStore(cfg.CartFile)

	var publisher service.EventPublisher = events.NoopPublisher{}
	if cfg.EventsEnabled {
		producer := events.NewCartEventProducer(cfg.KafkaBrokers, cfg.CartEventsTopic, logger)
		defer producer.Close()
		publisher = producer
		logger.Info("Cart event publishing enabled",
			zap.String("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.CartEventsTopic))
	}

	cartService := service.NewCartService(productRepo, orderRepo, cartStore, publisher, cfg.RevenueYear, logger)
	cartHandler := handler.NewCartHandler(cartService, cfg.DefaultCustomerID, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.AllowOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/orders", cartHandler.ListOrders)
		v1.GET("/products", cartHandler.ListProducts)
		v1.GET("/cart", cartHandler.GetCart)
		v1.PUT("/cart", cartHandler.ReplaceCart)
		v1.PUT("/cart/items/:id", cartHandler.SetItemQuantity)
		v1.GET("/cart/annotated", cartHandler.GetAnnotatedCart)
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "healthy"})
		})
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}
