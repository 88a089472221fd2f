package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LovationAdmin/spendwise-api/config"
	"github.com/LovationAdmin/spendwise-api/handlers"
	"github.com/LovationAdmin/spendwise-api/logger"
	"github.com/LovationAdmin/spendwise-api/messaging"
	"github.com/LovationAdmin/spendwise-api/middleware"
	"github.com/LovationAdmin/spendwise-api/routes"
	"github.com/LovationAdmin/spendwise-api/services"
	"github.com/LovationAdmin/spendwise-api/store"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "spendwise-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logger.Init(cfg.IsDevelopment(), logger.LogLevel(cfg.LogLevel)); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()
	log := logger.Get()

	if !cfg.DotEnvLoaded {
		log.Info("No .env file found, using environment variables")
	}
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Amounts are rendered as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	clock := services.SystemClock(loc)

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	var alerts interface {
		services.AlertPublisher
		Close() error
	} = messaging.NoopPublisher{}
	if cfg.AMQPURL != "" {
		publisher, err := messaging.NewRabbitPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return err
		}
		alerts = publisher
		log.Info("Budget alerts enabled", zap.String("exchange", cfg.AMQPExchange))
	}
	defer alerts.Close()

	ws := handlers.NewWSHandler()
	defer ws.Close()

	auth := services.NewAuthService(st, cfg.JWTSecret, cfg.TokenTTL)
	expenses := services.NewExpenseService(st, st, alerts, ws, clock)

	if cfg.StoreDriver == config.StoreDriverMemory && cfg.SeedDemo {
		if err := services.SeedDemo(context.Background(), auth, expenses); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	defer limiter.Stop()

	router, err := routes.SetupRouter(routes.Deps{
		Store:          st,
		Auth:           auth,
		Expenses:       expenses,
		Budgets:        services.NewBudgetService(st, ws),
		Dashboard:      services.NewDashboardService(st, st, clock),
		Export:         services.NewExportService(st),
		WS:             ws,
		RateLimiter:    limiter,
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	if err != nil {
		return fmt.Errorf("setup router: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server starting",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.String("store", cfg.StoreDriver),
			zap.Strings("allowed_origins", cfg.AllowedOrigins))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openStore(cfg *config.Config) (store.Store, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		logger.Get().Warn("Using in-memory store, data is lost on restart")
		return store.NewMemory(), nil
	}

	db, err := config.InitDB(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := config.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Get().Info("Database connected successfully")

	return store.NewPostgres(db), nil
}
