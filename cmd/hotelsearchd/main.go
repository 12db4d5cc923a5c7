package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/stayfinder/hotelsearch/internal/config"
	"github.com/stayfinder/hotelsearch/internal/embedding"
	logpkg "github.com/stayfinder/hotelsearch/internal/logger"
	"github.com/stayfinder/hotelsearch/internal/metrics"
	reviewrepo "github.com/stayfinder/hotelsearch/internal/repository/review"
	"github.com/stayfinder/hotelsearch/internal/transport/httpapi"
	recommenduc "github.com/stayfinder/hotelsearch/internal/usecase/recommend"
	rerankuc "github.com/stayfinder/hotelsearch/internal/usecase/rerank"
	searchuc "github.com/stayfinder/hotelsearch/internal/usecase/search"
	"github.com/stayfinder/hotelsearch/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting hotelsearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("store_addrs", cfg.Store.Addrs),
		zap.String("index", cfg.Store.Index),
	)

	metrics.Register()

	// Document store adapter
	store, err := reviewrepo.New(reviewrepo.Config{
		Addrs:      cfg.Store.Addrs,
		Username:   cfg.Store.Username,
		Password:   cfg.Store.Password,
		Index:      cfg.Store.Index,
		VectorDims: cfg.Embedding.Dimensions,
		Timeout:    time.Duration(cfg.Store.TimeoutSec) * time.Second,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to connect to document store", zap.Error(err))
	}

	ctx := context.Background()
	if err := store.Healthy(ctx); err != nil {
		logger.Warn("Document store not healthy at startup", zap.Error(err))
	}

	// Query embedder. The server always runs in real mode; placeholder vectors
	// are an indexer concern.
	embedder := embedding.NewOpenAIEmbedder(embedding.OpenAIConfig{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Logger:     logger,
	})
	logger.Info("Embedder created",
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	// Reranker: cross-encoder when configured and reachable, lexical otherwise.
	var reranker searchuc.Reranker = rerankuc.NewLexical()
	if cfg.Search.CrossEncoderURL != "" {
		ce, err := rerankuc.NewCrossEncoderClient(ctx, cfg.Search.CrossEncoderURL, 10*time.Second)
		if err != nil {
			logger.Warn("Cross-encoder unavailable, staying on lexical reranker", zap.Error(err))
		} else {
			reranker = rerankuc.NewModel(ce, logger)
			logger.Info("Cross-encoder reranker enabled",
				zap.String("url", cfg.Search.CrossEncoderURL))
		}
	}

	engine := searchuc.New(store, embedder, reranker)
	recommender := recommenduc.New(engine, store)

	server := httpapi.NewServer(engine, recommender, store, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Router(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
