package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"

	"folha/internal/domain/audit"
	"folha/internal/domain/employee"
	"folha/internal/domain/payroll"
	"folha/internal/domain/reports"
	"folha/internal/platform/config"
	"folha/internal/platform/db"
	"folha/internal/platform/metrics"
	"folha/internal/transport/http/api"
	audithandler "folha/internal/transport/http/handlers/audit"
	authhandler "folha/internal/transport/http/handlers/auth"
	employeehandler "folha/internal/transport/http/handlers/employees"
	payrollhandler "folha/internal/transport/http/handlers/payroll"
	reportshandler "folha/internal/transport/http/handlers/reports"
	"folha/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "folha"),
		slog.String("env", cfg.Environment),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			slog.Error("migrations failed", "err", err)
			os.Exit(1)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			slog.Error("seed failed", "err", err)
			os.Exit(1)
		}
	}

	collector := metrics.New()
	auditor := audit.New(pool)

	payrollStore := payroll.NewStore(pool)
	components := payroll.NewComponentResolver(payrollStore)
	tables := payroll.NewTableProvider(payrollStore)
	generator := payroll.NewGenerator(components, tables, payrollStore, payrollStore, payrollStore)
	lifecycle := payroll.NewLifecycle(payrollStore, auditor)
	orchestrator := payroll.NewOrchestrator(payrollStore, payrollStore, generator, auditor, collector, cfg.PayrollWorkers)

	employeeService := employee.NewService(employee.NewStore(pool))

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:           300,
	}))
	router.Use(middleware.RequestID)
	router.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))
	router.Use(chimiddleware.CleanPath)
	router.Use(chimiddleware.Recoverer)
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics(collector))
	}
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(pool, cfg.JWTSecret).RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			employeehandler.NewHandler(employeeService, auditor).RegisterRoutes(r)
			payrollhandler.NewHandler(lifecycle, orchestrator, payrollStore, payrollStore, payrollStore, payrollStore).RegisterRoutes(r)
			reportshandler.NewHandler(reports.NewService(reports.NewStore(pool))).RegisterRoutes(r)
			audithandler.NewHandler(auditor).RegisterRoutes(r)

			if cfg.MetricsEnabled {
				r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
					api.Success(w, r, collector.Snapshot())
				})
			}
		})
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("payroll server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "err", err)
	}
	slog.Info("server stopped")
}
