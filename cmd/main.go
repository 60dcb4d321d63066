package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"shopmart/internal/caching"
	"shopmart/internal/config"
	"shopmart/internal/handlers"
	"shopmart/internal/jobs"
	"shopmart/internal/metrics"
	"shopmart/internal/middleware"
	"shopmart/internal/repositories"
	"shopmart/internal/services"
	"shopmart/pkg/database"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Auth.CustomerSecret == "" {
		cfg.Auth.CustomerSecret = random.String(32)
		log.Println("CUSTOMER_SECRET_KEY not set, generated an ephemeral one; tokens will not survive a restart")
	}
	if cfg.Auth.VendorSecret == "" {
		cfg.Auth.VendorSecret = random.String(32)
		log.Println("VENDOR_SECRET_KEY not set, generated an ephemeral one; tokens will not survive a restart")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, cfg.DB.DSN(), cfg.DB.MaxConns)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	storage, err := services.NewMinioService(ctx, cfg.Minio)
	if err != nil {
		log.Fatalf("connect object storage: %v", err)
	}

	m := metrics.New(cfg.Metrics.Prefix, prometheus.DefaultRegisterer)
	cache := caching.NewRedisCache(redisClient, cfg.Redis.KeyPrefix)

	vendorRepo := repositories.NewVendorRepo(pool)
	customerRepo := repositories.NewCustomerRepo(pool)
	categoryRepo := repositories.NewCategoryRepo(pool)
	productRepo := repositories.NewProductRepo(pool)
	imageRepo := repositories.NewProductImageRepo(pool)
	inventoryRepo := repositories.NewInventoryRepo(pool)
	cartRepo := repositories.NewCartRepo(pool)
	orderRepo := repositories.NewOrderRepo(pool)
	reviewRepo := repositories.NewReviewRepo(pool)

	authService := services.NewAuthService(pool, customerRepo, vendorRepo, categoryRepo, cfg.Auth)
	catalogService := services.NewCatalogService(categoryRepo, cache)
	productService := services.NewProductService(productRepo, categoryRepo, reviewRepo, imageRepo, cache)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(pool, cartRepo, inventoryRepo, orderRepo, m)
	reviewService := services.NewReviewService(pool, orderRepo, reviewRepo, productRepo, cache)

	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(catalogService)
	productHandler := handlers.NewProductHandler(productService, storage)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	healthHandler := handlers.NewHealthHandler(pool, redisClient)

	scheduler, err := jobs.NewScheduler()
	if err != nil {
		log.Fatalf("create scheduler: %v", err)
	}
	sweep := jobs.NewLowStockSweep(productRepo, m, cfg.Jobs.LowStockThreshold)
	if err := scheduler.AddLowStockSweep(sweep, cfg.Jobs.LowStockInterval); err != nil {
		log.Fatalf("schedule jobs: %v", err)
	}
	scheduler.Start()
	defer scheduler.Shutdown()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(middleware.HTTPMetrics(m))

	e.GET("/health", healthHandler.Health)
	e.GET("/health/ready", healthHandler.Ready)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := e.Group("/v1")

	// public storefront surface
	v1.POST("/customers/register", authHandler.RegisterCustomer)
	v1.POST("/customers/login", authHandler.LoginCustomer)
	v1.POST("/vendors/register", authHandler.RegisterVendor)
	v1.POST("/vendors/login", authHandler.LoginVendor)
	v1.GET("/categories/:id/subtree", categoryHandler.GetSubtree)
	v1.GET("/categories/:id/products", productHandler.ListByCategory)
	v1.GET("/vendors/:id/categories", categoryHandler.GetVendorTree)
	v1.GET("/vendors/:id/products", productHandler.ListByVendor)
	v1.GET("/products", productHandler.ListAll)
	v1.GET("/products/:id", productHandler.GetProduct)
	v1.GET("/products/:id/reviews", productHandler.ListReviews)
	v1.GET("/products/:id/images", productHandler.ListImages)
	v1.POST("/guest-checkout", orderHandler.GuestCheckout)

	// customer surface
	customer := v1.Group("", middleware.CustomerJWT(cfg.Auth.CustomerSecret), middleware.ExtractCustomerID)
	customer.PUT("/customers/password", authHandler.ChangeCustomerPassword)
	customer.GET("/cart", cartHandler.GetCart)
	customer.POST("/cart/items", cartHandler.AddToCart)
	customer.PATCH("/cart/items/:productId", cartHandler.ModifyCart)
	customer.POST("/checkout", orderHandler.Checkout)
	customer.GET("/orders", orderHandler.ListOrders)
	customer.GET("/orders/:id", orderHandler.GetOrder)
	customer.POST("/products/:id/reviews", reviewHandler.PostReview)

	// vendor surface
	vendor := v1.Group("", middleware.VendorJWT(cfg.Auth.VendorSecret), middleware.ExtractVendorID)
	vendor.PUT("/vendors/password", authHandler.ChangeVendorPassword)
	vendor.POST("/categories", categoryHandler.AddCategory)
	vendor.DELETE("/categories/:id", categoryHandler.DeleteCategory)
	vendor.POST("/products", productHandler.CreateProduct)
	vendor.POST("/products/batch", productHandler.CreateProductBatch)
	vendor.POST("/products/:id/images", productHandler.UploadImage)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
