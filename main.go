// Command learnlens serves the document-to-video-lessons API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"learnlens/config"
	"learnlens/entitlement"
	"learnlens/extract"
	"learnlens/genai"
	"learnlens/outline"
	"learnlens/pipeline"
	"learnlens/registry"
	"learnlens/render"
	"learnlens/script"
	"learnlens/server"
)

func main() {
	// Load .env (local dev only)
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfgPath := os.Getenv("LEARNLENS_CONFIG")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Fatal("failed to load config", zap.String("path", cfgPath), zap.Error(err))
		}
		cfg = config.Default()
		logger.Info("no config file found, using defaults", zap.String("path", cfgPath))
	}

	if os.Getenv("GEMINI_API_KEY") == "" {
		logger.Warn("GEMINI_API_KEY not set; outlines and scripts will use fallback content")
	}

	// Components
	gen := genai.New(cfg.GenAI, logger.Named("genai"))
	svc := pipeline.New(
		cfg,
		extract.New(logger.Named("extract")),
		outline.New(cfg.Outline, gen, logger.Named("outline")),
		script.New(cfg.Script, gen, logger.Named("script")),
		render.NewSimulated(cfg.Render, logger.Named("render")),
		registry.New(),
		entitlement.New(cfg.Entitlement, logger.Named("entitlement")),
		logger.Named("pipeline"),
	)

	router := server.NewRouter(cfg.Server, server.NewHandler(svc, logger.Named("server")))

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("serve failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
