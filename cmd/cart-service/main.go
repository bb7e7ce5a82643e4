package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaravmahajanofficial/cart-checkout-service/docs"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/api/handlers"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/api/middleware"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/cache"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/config"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/events"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/health"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/logger"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/metrics"
	repository "github.com/aaravmahajanofficial/cart-checkout-service/internal/repositories"
	service "github.com/aaravmahajanofficial/cart-checkout-service/internal/services"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/tracing"
	"github.com/aaravmahajanofficial/cart-checkout-service/pkg/sendgrid"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

//	@title						Cart Checkout Service API
//	@version					1.0
//	@description				Shopping carts with partial-fulfilment checkout and ticket receipts.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the JWT.
func main() {

	// Load config
	cfg := config.MustLoad()

	// Logger setup
	slog.SetDefault(logger.New(os.Stdout, cfg.LogLevel))

	// Tracing setup
	shutdownTracing, err := tracing.Setup(context.Background(), &cfg.OTel)
	if err != nil {
		slog.Error("❌ Error initializing tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	db, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	if cfg.Database.RunMigrations {
		if err := repository.Migrate(db); err != nil {
			slog.Error("❌ Error running migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		slog.Info("✅ Migrations applied")
	}

	store := repository.NewStore(db)

	// Redis setup
	redisClient, err := cache.NewRedisClient(&cfg.RedisConnect)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	redisCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	defer func() {
		if err := redisCache.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	publisher := events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)

	defer func() {
		if err := publisher.Close(); err != nil {
			slog.Error("⚠️ Error closing event publisher", slog.String("error", err.Error()))
		}
	}()

	mailer := sendgrid.NewReceiptMailer(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	cartService := service.NewCartService(store, redisCache, publisher, mailer)
	cartHandler := handlers.NewCartHandler(cartService)
	productService := service.NewProductService(store.Products(), redisCache)
	productHandler := handlers.NewProductHandler(productService)
	ticketService := service.NewTicketService(store.Tickets(), redisCache)
	ticketHandler := handlers.NewTicketHandler(ticketService)
	debugHandler := handlers.NewDebugHandler()
	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey))

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error initializing health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", health.ServiceVersion))

	docs.SwaggerInfo.Host = ""

	// Setup router
	routerMux := http.NewServeMux()
	registerRoutes(routerMux, routeHandlers{
		cart:    cartHandler,
		product: productHandler,
		ticket:  ticketHandler,
		debug:   debugHandler,
	}, authMiddleware)
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = middleware.Logging(handler)
	handler = metrics.Middleware(handler)
	handler = otelhttp.NewHandler(handler, health.ServiceName)

	// Setup http server
	server := http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
			done <- syscall.SIGTERM
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
	}
}
