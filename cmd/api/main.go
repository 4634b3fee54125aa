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
	"go.uber.org/zap/zapcore"

	dbadapter "taskmanager/internal/adapter/db"
	httpadapter "taskmanager/internal/adapter/http"
	"taskmanager/internal/adapter/http/handlers"
	httpmiddleware "taskmanager/internal/adapter/http/middleware"
	"taskmanager/internal/adapter/security"
	"taskmanager/internal/adapter/token"
	"taskmanager/internal/app/service"
	"taskmanager/internal/config"
	"taskmanager/pkg/translator"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg)
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
		TranslationFolder:  cfg.TranslationFolder,
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := dbadapter.Connect(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.Warn("failed to close database connection", zap.Error(err))
		}
	}()

	tokens := token.NewJWT(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.TokenTTL())
	authService := service.NewAuthService(store.Users, tokens, security.NewBcryptHasher(cfg.BcryptCost))
	taskService := service.NewTaskService(store.Tasks)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("invalid trusted proxies", zap.Strings("proxies", cfg.TrustedProxies), zap.Error(err))
	}
	r.Use(
		httpmiddleware.RequestIDMiddleware(),
		httpmiddleware.GinZapMiddleware(logger),
		httpmiddleware.ErrorDetails(cfg.IsDevelopment()),
		httpmiddleware.RecoveryMiddleware(logger),
	)
	httpadapter.RegisterRoutes(r, httpadapter.Handlers{
		Health:   handlers.NewHealthHandler(store.Health),
		Auth:     handlers.NewAuthHandler(authService),
		Task:     handlers.NewTaskHandler(taskService),
		AuthGate: httpmiddleware.AuthMiddleware(authService),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("could not start server", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.IsDevelopment() {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
