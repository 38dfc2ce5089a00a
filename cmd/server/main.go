package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cashbook/backend/docs"
	"github.com/cashbook/backend/internal/audit"
	"github.com/cashbook/backend/internal/config"
	"github.com/cashbook/backend/internal/database"
	"github.com/cashbook/backend/internal/handlers"
	"github.com/cashbook/backend/internal/logging"
	mW "github.com/cashbook/backend/internal/middleware"
	"github.com/cashbook/backend/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Cashbook API
// @version 1.0
// @description Personal multi-ledger bookkeeping with BID transfers and statements
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Initialize config
	viper.SetConfigFile(".env") // explicitly point to .env file
	viper.AutomaticEnv()        // allow environment variables to override .env

	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.name", "DATABASE_NAME")
	viper.BindEnv("database.ssl_mode", "DATABASE_SSL_MODE")
	viper.BindEnv("database.auto_migrate", "DATABASE_AUTO_MIGRATE")
	viper.BindEnv("database.statement_timeout", "DATABASE_STATEMENT_TIMEOUT")

	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")

	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")

	viper.BindEnv("ledger.bid_max_attempts", "LEDGER_BID_MAX_ATTEMPTS")
	viper.BindEnv("ledger.lock_timeout", "LEDGER_LOCK_TIMEOUT")
	viper.BindEnv("ledger.balance_cache_ttl", "LEDGER_BALANCE_CACHE_TTL")
	viper.BindEnv("ledger.tx_page_size", "LEDGER_TX_PAGE_SIZE")
	viper.BindEnv("ledger.book_page_size", "LEDGER_BOOK_PAGE_SIZE")
	viper.BindEnv("ledger.max_page_size", "LEDGER_MAX_PAGE_SIZE")
	viper.BindEnv("ledger.qr_size", "LEDGER_QR_SIZE")
	viper.BindEnv("ledger.qr_cache_ttl", "LEDGER_QR_CACHE_TTL")
	viper.BindEnv("ledger.transfer_rate_limit", "LEDGER_TRANSFER_RATE_LIMIT")
	viper.BindEnv("ledger.transfer_rate_window", "LEDGER_TRANSFER_RATE_WINDOW")

	viper.BindEnv("log.level", "LOG_LEVEL")
	viper.BindEnv("log.pretty", "LOG_PRETTY")
	viper.BindEnv("server.port", "PORT")
	viper.SetDefault("server.port", "8080")

	configErr := viper.ReadInConfig()

	logger := logging.New(viper.GetString("log.level"), viper.GetBool("log.pretty"), os.Stdout)
	if configErr != nil {
		logger.Info().Err(configErr).Msg("Config file not found, using environment and defaults")
	}
	if viper.GetString("jwt.secret_key") == "" {
		logger.Fatal().Msg("JWT_SECRET_KEY must be set")
	}

	// Initialize Swagger docs
	docs.SwaggerInfo.Title = "Cashbook API"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	db := database.InitDatabase()
	defer db.Close()

	redisClient := database.InitRedis()
	if redisClient != nil {
		defer redisClient.Close()
	}

	ledgerCfg := config.LoadLedgerConfig()
	auditLog := audit.NewLogger(logger)

	balanceCache := services.NewBalanceCache(redisClient, ledgerCfg.BalanceCacheTTL, logger)
	bookService := services.NewBookService(db, balanceCache, auditLog, logger, ledgerCfg)
	ledgerService := services.NewLedgerService(db, balanceCache, auditLog, logger, ledgerCfg)
	balanceService := services.NewBalanceService(db, ledgerService, balanceCache, logger)
	transferService := services.NewTransferService(db, bookService, balanceCache, auditLog, logger, ledgerCfg)
	reportService := services.NewReportService(db, bookService, logger)
	qrService := services.NewQRService(bookService, redisClient, logger, ledgerCfg)
	profileService := services.NewProfileService(db, auditLog, logger)

	bookHandler := handlers.NewBookHandler(bookService, balanceService, qrService, logger)
	transactionHandler := handlers.NewTransactionHandler(ledgerService, balanceService, logger)
	transferHandler := handlers.NewTransferHandler(transferService, services.NewTransferLimiter(redisClient, ledgerCfg, logger), logger)
	reportHandler := handlers.NewReportHandler(reportService, logger)
	profileHandler := handlers.NewProfileHandler(profileService, logger)

	// Initialize auth middleware with Redis
	mW.InitAuthMiddleware(redisClient)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mW.SecurityHeaders)
	r.Use(logging.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		status, code := "healthy", http.StatusOK
		if err := db.PingContext(r.Context()); err != nil {
			status, code = "degraded", http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]any{
			"status": status,
			"redis":  redisClient != nil,
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(mW.AuthMiddleware)

			bookHandler.Routes(r)
			transactionHandler.Routes(r)
			transferHandler.Routes(r)
			reportHandler.Routes(r)
			profileHandler.Routes(r)
		})
	})

	port := viper.GetString("server.port")

	// Start server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 65 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server stopped")
}
