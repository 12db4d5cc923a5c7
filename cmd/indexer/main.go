package main

import (
	"context"
	"flag"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/stayfinder/hotelsearch/internal/config"
	"github.com/stayfinder/hotelsearch/internal/domain"
	"github.com/stayfinder/hotelsearch/internal/embedding"
	"github.com/stayfinder/hotelsearch/internal/ingest"
	logpkg "github.com/stayfinder/hotelsearch/internal/logger"
	"github.com/stayfinder/hotelsearch/internal/metrics"
	reviewrepo "github.com/stayfinder/hotelsearch/internal/repository/review"
	"github.com/stayfinder/hotelsearch/internal/synonyms"
)

func main() {
	var (
		file          = flag.String("file", "", "path to the JSONL review export (required)")
		batchSize     = flag.Int("batch-size", 0, "documents per bulk write (default from config)")
		workers       = flag.Int("workers", 0, "embedding workers (default: cores-1)")
		mode          = flag.String("mode", "real", "embedding mode: real or placeholder")
		recreateIndex = flag.Bool("recreate-index", false, "drop and recreate the index before loading")
	)
	flag.Parse()

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

	if *file == "" {
		logger.Error("missing -file flag")
		flag.Usage()
		os.Exit(1)
	}

	metrics.Register()

	store, err := reviewrepo.New(reviewrepo.Config{
		Addrs:      cfg.Store.Addrs,
		Username:   cfg.Store.Username,
		Password:   cfg.Store.Password,
		Index:      cfg.Store.Index,
		VectorDims: cfg.Embedding.Dimensions,
		Timeout:    time.Duration(cfg.Store.TimeoutSec) * time.Second,
	}, logger)
	if err != nil {
		logger.Fatal("failed to connect to document store", zap.Error(err))
	}

	var embedder domain.Embedder
	switch *mode {
	case "real":
		embedder = embedding.NewOpenAIEmbedder(embedding.OpenAIConfig{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			Logger:     logger,
		})
	case "placeholder":
		embedder = embedding.NewPlaceholderEmbedder(cfg.Embedding.Dimensions, time.Now().UnixNano())
	default:
		logger.Fatal("unknown embedding mode", zap.String("mode", *mode))
	}

	ctx := context.Background()

	// Synonym groups feed the index analyzer; the relations source is optional.
	var relations synonyms.RelationSource
	if cfg.Search.RelationsURL != "" {
		relations = synonyms.NewHTTPRelationSource(cfg.Search.RelationsURL, 5*time.Second)
	}
	groups := synonyms.NewBuilder(relations, logger).Groups(ctx)

	if err := store.CreateIndex(ctx, groups, *recreateIndex); err != nil {
		logger.Fatal("failed to create index", zap.Error(err))
	}

	docs, skipped, err := ingest.ReadFile(*file, logger)
	if err != nil {
		logger.Error("failed to read source file", zap.String("file", *file), zap.Error(err))
		os.Exit(1)
	}
	logger.Info("source file loaded",
		zap.String("file", *file),
		zap.Int("documents", len(docs)),
		zap.Int("skipped_lines", skipped),
	)

	size := *batchSize
	if size <= 0 {
		size = cfg.Ingest.BatchSize
	}
	poolSize := *workers
	if poolSize <= 0 {
		poolSize = cfg.Ingest.Workers
	}

	pipeline, err := ingest.NewPipeline(store, embedder, poolSize, logger)
	if err != nil {
		logger.Fatal("failed to create pipeline", zap.Error(err))
	}
	defer pipeline.Release()

	report, err := pipeline.Ingest(ctx, docs, size)
	if err != nil {
		logger.Error("ingestion failed", zap.Error(err))
		os.Exit(1)
	}

	total, err := store.Count(ctx)
	if err != nil {
		logger.Warn("could not count indexed documents", zap.Error(err))
	}

	logger.Info("ingestion summary",
		zap.Int("total", report.TotalDocs),
		zap.Int("success", report.TotalSuccess),
		zap.Int("failed", report.TotalFailed),
		zap.Int("batches", report.Batches),
		zap.Int("batch_errors", len(report.BatchErrors)),
		zap.Duration("elapsed", report.Elapsed),
		zap.Int64("index_doc_count", total),
	)
}
