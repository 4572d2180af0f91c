package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/kishandholakiya1027/invoice-be/api"
	"github.com/kishandholakiya1027/invoice-be/cache"
	"github.com/kishandholakiya1027/invoice-be/config"
	"github.com/kishandholakiya1027/invoice-be/db"
	"github.com/kishandholakiya1027/invoice-be/middleware"
	"github.com/kishandholakiya1027/invoice-be/providers"
	"github.com/kishandholakiya1027/invoice-be/security"
	"github.com/kishandholakiya1027/invoice-be/services"
	"github.com/kishandholakiya1027/invoice-be/stores"
	"github.com/shopspring/decimal"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorBold   = "\033[1m"
)

func printStep(step, message string) {
	fmt.Printf("%s[%s]%s %s%s%s\n", colorBlue, step, colorReset, colorBold, message, colorReset)
}

func printSuccess(message string) {
	fmt.Printf("%s✓%s %s\n", colorGreen, colorReset, message)
}

func printWarning(message string) {
	fmt.Printf("%s⚠%s %s\n", colorYellow, colorReset, message)
}

func printError(message string) {
	fmt.Printf("%s✗%s %s\n", colorRed, colorReset, message)
}

func main() {
	// Amounts serialize as JSON numbers, matching the API contract.
	decimal.MarshalJSONWithoutQuotes = true

	_ = godotenv.Load()

	printStep("1/8", "Loading configuration...")
	cfg, err := config.LoadConfig()
	if err != nil {
		printError(fmt.Sprintf("Failed to load configuration: %v", err))
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		printError(fmt.Sprintf("Configuration validation failed: %v", err))
		os.Exit(1)
	}
	printSuccess("Configuration loaded")

	printStep("2/8", "Connecting to database...")
	pool, err := db.CreateConnectionPool(cfg.GetDatabaseURL(), cfg.Database.ReplicaDSNs, db.PoolConfig{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.MaxLifetime,
		ConnMaxIdleTime: cfg.Database.MaxIdleTime,
	})
	if err != nil {
		printError(fmt.Sprintf("Failed to connect to database: %v", err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.Migrate(pool.GetPrimary()); err != nil {
		printError(fmt.Sprintf("Failed to migrate schema: %v", err))
		os.Exit(1)
	}
	printSuccess(fmt.Sprintf("Connected to PostgreSQL at %s:%d", cfg.Database.Host, cfg.Database.Port))

	printStep("3/8", "Connecting to Redis...")
	var statsCache services.StatsCache
	redisCache, err := cache.CreateRedisCache(cache.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TTL:      cfg.Redis.TTL,
	})
	if err != nil {
		printWarning(fmt.Sprintf("Failed to connect to Redis: %v (continuing without cache)", err))
	} else {
		defer redisCache.Close()
		statsCache = redisCache
		printSuccess(fmt.Sprintf("Connected to Redis at %s:%d", cfg.Redis.Host, cfg.Redis.Port))
	}

	printStep("4/8", "Initializing security components...")
	jwtManager := security.CreateJWTManager(cfg.Security.JWTSecret, "invoice-be", cfg.Security.JWTExpiration)
	rateLimiter := security.CreateRateLimiter(cfg.Security.RateLimitRPS, cfg.Security.RateLimitBurst)
	defer rateLimiter.Close()
	printSuccess("Security components initialized")

	printStep("5/8", "Initializing payment gateway...")
	gateway, err := providers.CreateRazorpayGateway(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
	if err != nil {
		printError(fmt.Sprintf("Failed to initialize Razorpay: %v", err))
		os.Exit(1)
	}
	printSuccess("Razorpay gateway initialized")

	printStep("6/8", "Initializing stores...")
	userStore := stores.CreateUserStore(pool.GetPrimary(), pool.GetReplica())
	invoiceStore := stores.CreateInvoiceStore(pool.GetPrimary(), pool.GetReplica())
	printSuccess("Stores initialized")

	printStep("7/8", "Initializing services...")
	authService := services.CreateAuthService(userStore, jwtManager)
	invoiceService := services.CreateInvoiceService(invoiceStore, userStore, statsCache)
	dashboardService := services.CreateDashboardService(invoiceStore, statsCache)
	paymentService := services.CreatePaymentService(invoiceStore, gateway, cfg.Razorpay.CallbackURL, statsCache)
	printSuccess("Services initialized")

	printStep("8/8", "Setting up HTTP server...")
	authHandler := api.CreateAuthHandler(authService)
	invoiceHandler := api.CreateInvoiceHandler(invoiceService)
	dashboardHandler := api.CreateDashboardHandler(dashboardService)
	paymentHandler := api.CreatePaymentHandler(paymentService)

	authMiddleware := middleware.CreateAuthMiddleware(jwtManager, rateLimiter)

	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.RecoveryMiddleware)
	router.Use(middleware.HeadersMiddleware)
	allowedOrigins := []string{"http://localhost:3000", "http://localhost:5173"}
	router.Use(middleware.CORSMiddleware(allowedOrigins))
	router.Use(authMiddleware.RateLimitMiddleware)

	router.HandleFunc("/health", api.HealthCheckHandler).Methods("GET")
	router.HandleFunc("/auth/register", authHandler.HandleRegister).Methods("POST")
	router.HandleFunc("/auth/login", authHandler.HandleLogin).Methods("POST")
	router.HandleFunc("/payments/callback", paymentHandler.HandleCallback).Methods("POST")

	protected := router.PathPrefix("/").Subrouter()
	protected.Use(authMiddleware.JWTMiddleware)
	protected.HandleFunc("/invoices", invoiceHandler.HandleCreate).Methods("POST")
	protected.HandleFunc("/invoices", invoiceHandler.HandleList).Methods("GET")
	protected.HandleFunc("/invoices/{id}", invoiceHandler.HandleGet).Methods("GET")
	protected.HandleFunc("/invoices/{id}", invoiceHandler.HandleUpdate).Methods("PATCH")
	protected.HandleFunc("/invoices/{id}", invoiceHandler.HandleDelete).Methods("DELETE")
	protected.HandleFunc("/dashboard", dashboardHandler.HandleStats).Methods("GET")
	protected.HandleFunc("/payments/generate-link", paymentHandler.HandleGenerateLink).Methods("POST")

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	printSuccess("HTTP server configured")

	go func() {
		fmt.Printf("Starting HTTP server on port %s...\n", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			printError(fmt.Sprintf("Server failed to start: %v", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	printWarning("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		printError(fmt.Sprintf("Server forced to shutdown: %v", err))
		os.Exit(1)
	}

	printSuccess("Server stopped gracefully")
}
