package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"

	"github.com/Tkay6677/lunchpay/internal/account"
	"github.com/Tkay6677/lunchpay/internal/auth"
	"github.com/Tkay6677/lunchpay/internal/checkout"
	"github.com/Tkay6677/lunchpay/internal/config"
	"github.com/Tkay6677/lunchpay/internal/db"
	"github.com/Tkay6677/lunchpay/internal/health"
	"github.com/Tkay6677/lunchpay/internal/kafka"
	"github.com/Tkay6677/lunchpay/internal/logger"
	"github.com/Tkay6677/lunchpay/internal/messaging"
	"github.com/Tkay6677/lunchpay/internal/metrics"
	"github.com/Tkay6677/lunchpay/internal/middleware"
	"github.com/Tkay6677/lunchpay/internal/plan"
	"github.com/Tkay6677/lunchpay/internal/storage/inmem"
	"github.com/Tkay6677/lunchpay/internal/student"
	"github.com/Tkay6677/lunchpay/internal/summary"
	"github.com/Tkay6677/lunchpay/internal/transaction"
)

type App struct {
	config *config.Config
	router chi.Router
	server *http.Server
	logger *slog.Logger
}

// repositories groups the storage layer so wiring is driver-agnostic.
type repositories struct {
	accounts     account.Repository
	tokens       auth.TokenRepository
	students     student.Repository
	transactions transaction.Repository
	plans        plan.Repository
}

func New() *App {
	slogLogger := logger.NewWithServiceContext("lunchpay", Version)

	// Set as default logger so slog.Info() uses JSON format
	slog.SetDefault(slogLogger)

	slogLogger.Info("initializing application")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	slogLogger.Info("config loaded", "env", cfg.Env, "storage", cfg.Storage.Driver)

	app := &App{
		config: cfg,
		router: chi.NewRouter(),
		logger: slogLogger,
	}

	m, err := metrics.New(otel.Meter("lunchpay"))
	if err != nil {
		slogLogger.Warn("failed to initialize metrics, continuing without", "error", err)
		m = metrics.NewMock()
	}

	ctx := context.Background()
	repos := buildRepositories(ctx, cfg, slogLogger)

	// Apply CORS middleware globally
	app.router.Use(middleware.CORS(cfg.Server.CORSOrigins))

	// Health endpoints (no auth required)
	healthHandler := health.NewHandler()
	healthHandler.RegisterRoutes(app.router)

	// Auth setup
	authService := auth.NewService(repos.tokens, repos.accounts)
	authHandler := auth.NewHandler(authService, slogLogger, m)
	authHandler.RegisterRoutes(app.router)

	// Kafka ledger producer (optional)
	var ledger transaction.LedgerPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaProducer, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, slogLogger)
		if err != nil {
			slogLogger.Warn("failed to initialize kafka producer", "error", err)
		} else {
			ledger = kafkaProducer
		}
	}

	// NATS payment-event producer (optional)
	var notifier checkout.Notifier
	if cfg.NATS.URL != "" {
		natsProducer, err := messaging.NewProducer(cfg.NATS.URL, cfg.NATS.Subject, slogLogger)
		if err != nil {
			slogLogger.Warn("failed to initialize NATS producer", "error", err)
		} else {
			notifier = natsProducer
		}
	}

	// Domain services
	studentService := student.NewService(repos.students)
	transactionService := transaction.NewService(repos.transactions, ledger, slogLogger)
	planService := plan.NewService(repos.plans, repos.students)
	summaryService := summary.NewService(repos.students, repos.transactions)

	initiator := checkout.NewHostedCheckout(cfg.Checkout.BaseURL)
	checkoutService := checkout.NewService(
		repos.students,
		transactionService,
		initiator,
		notifier,
		time.Duration(cfg.Checkout.TimeoutSeconds)*time.Second,
		slogLogger,
	)

	studentHandler := student.NewHandler(studentService, slogLogger, m)
	transactionHandler := transaction.NewHandler(transactionService, slogLogger)
	planHandler := plan.NewHandler(planService, slogLogger)
	summaryHandler := summary.NewHandler(summaryService, slogLogger, m)
	checkoutHandler := checkout.NewHandler(checkoutService, slogLogger, m)

	// Protected routes
	app.router.Route("/api", func(r chi.Router) {
		r.Use(auth.Middleware(slogLogger))
		studentHandler.RegisterRoutes(r)
		transactionHandler.RegisterRoutes(r)
		planHandler.RegisterRoutes(r)
		summaryHandler.RegisterRoutes(r)
		checkoutHandler.RegisterRoutes(r)
	})

	slogLogger.Info("application initialized successfully")

	return app
}

func buildRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) repositories {
	if cfg.Storage.Driver == "postgres" {
		database := db.New(cfg.Database)
		if err := db.RunMigrations(ctx, database,
			(*account.Account)(nil),
			(*auth.RefreshToken)(nil),
			(*student.Student)(nil),
			(*transaction.Transaction)(nil),
			(*plan.Plan)(nil),
		); err != nil {
			log.Fatal("failed to run migrations:", err)
		}
		return repositories{
			accounts:     account.NewRepository(database),
			tokens:       auth.NewTokenRepository(database),
			students:     student.NewRepository(database),
			transactions: transaction.NewRepository(database),
			plans:        plan.NewRepository(database),
		}
	}

	logger.Info("using in-memory storage with demo data")
	store := inmem.New()
	if err := inmem.Seed(ctx, store); err != nil {
		log.Fatal("failed to seed demo data:", err)
	}
	return repositories{
		accounts:     inmem.NewAccountRepository(store),
		tokens:       inmem.NewTokenRepository(store),
		students:     inmem.NewStudentRepository(store),
		transactions: inmem.NewTransactionRepository(store),
		plans:        inmem.NewPlanRepository(store),
	}
}

func (a *App) Run() error {
	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%s", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  time.Duration(a.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(a.config.Server.IdleTimeout) * time.Second,
	}

	a.logger.Info("server starting", "port", a.config.Server.Port)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down server")
	return a.server.Shutdown(ctx)
}
