package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	dbadapter "github.com/mew228/Flowstate/internal/adapter/db"
	httpadapter "github.com/mew228/Flowstate/internal/adapter/http"
	"github.com/mew228/Flowstate/internal/adapter/http/handlers"
	httpmiddleware "github.com/mew228/Flowstate/internal/adapter/http/middleware"
	"github.com/mew228/Flowstate/internal/adapter/prefs"
	"github.com/mew228/Flowstate/internal/app/live"
	"github.com/mew228/Flowstate/internal/app/service"
	"github.com/mew228/Flowstate/internal/config"
	"github.com/mew228/Flowstate/pkg/translator"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	translator.InitTranslator(translator.Config{
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	cfg := config.LoadConfig()
	if cfg.JWTSecret == "" {
		logger.Fatal("AUTH_JWT_SECRET is required")
	}
	if cfg.BillingRequired && cfg.PaymentLink == "" {
		logger.Warn("STRIPE_PAYMENT_LINK is empty, checkout is disabled")
	}

	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.String("driver", cfg.DbDriver), zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close database connection", zap.Error(err))
		}
	}()

	loc := cfg.Location()
	clock := func() time.Time { return time.Now().In(loc) }

	preferences := prefs.NewFileStore(cfg.PreferencesDir)
	taskRepository := dbadapter.NewTaskRepository(db)
	billingService := service.NewBillingService(preferences, cfg.PaymentLink, cfg.BillingRequired)
	taskService := service.NewTaskService(taskRepository, live.NewHub(taskRepository), billingService).
		WithClock(clock).
		WithBoardIdleTimeout(cfg.BoardIdleTTL)
	defer taskService.Close()

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("invalid trusted proxies", zap.Strings("proxies", cfg.TrustedProxies), zap.Error(err))
	}
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger))
	httpadapter.RegisterRoutes(r, httpadapter.Handlers{
		Health:      handlers.NewHealthHandler(db, preferences, clock),
		Tasks:       handlers.NewTaskHandler(taskService, loc),
		Categories:  handlers.NewCategoryHandler(service.NewCategoryService(preferences)),
		Preferences: handlers.NewPreferencesHandler(service.NewPreferencesService(preferences)),
		Billing:     handlers.NewBillingHandler(billingService),
	}, httpadapter.RouteConfig{
		JWTSecret: cfg.JWTSecret,
		Billing:   billingService,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr), zap.String("timezone", loc.String()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server shutdown incomplete", zap.Error(err))
	}
}
