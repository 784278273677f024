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

	"julianmorley.ca/con-plar/retail-assistant/internal/router"
	"julianmorley.ca/con-plar/retail-assistant/pkg/ai"
	"julianmorley.ca/con-plar/retail-assistant/pkg/assistant"
	"julianmorley.ca/con-plar/retail-assistant/pkg/global"
	"julianmorley.ca/con-plar/retail-assistant/pkg/mongo"
	"julianmorley.ca/con-plar/retail-assistant/pkg/redis"
	"julianmorley.ca/con-plar/retail-assistant/pkg/source"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := global.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := global.NewLogger(cfg)
	slog.SetDefault(logger)

	src, cleanup, err := buildSource(ctx, cfg, logger)
	if err != nil {
		logger.Error("build data source", slog.String("kind", cfg.SourceKind), slog.Any("error", err))
		os.Exit(1)
	}
	defer cleanup()

	aiClient := ai.NewClient(ai.Config{
		Endpoint:       cfg.OpenAIEndpoint,
		APIKey:         cfg.OpenAIAPIKey,
		Deployment:     cfg.OpenAIDeploymentName,
		EmbeddingModel: cfg.EmbeddingModel,
	})
	if !cfg.AIEnabled() {
		logger.Warn("AI service disabled: AZURE_OPENAI_ENDPOINT and AZURE_OPENAI_API_KEY are required")
	}

	embedder := ai.NewEmbedder(aiClient)
	if cfg.RedisAddress != "" && cfg.AIEnabled() {
		redisClient := redis.NewClient(cfg.RedisAddress, cfg.RedisPassword)
		defer redisClient.Close()
		embedder = redis.NewEmbeddingCache(redisClient, embedder, cfg.EmbeddingCacheTTL, logger)
		logger.Info("embedding cache enabled", slog.String("addr", cfg.RedisAddress))
	}

	svc := assistant.New(src, assistant.WithEmbedder(embedder), assistant.WithLogger(logger))
	metrics := router.NewMetrics()
	handler := router.NewHandler(svc, ai.NewNarrator(aiClient), metrics, logger)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.NewEngine(cfg, handler, metrics, logger),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.UpstreamTimeout + 60*time.Second,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", server.Addr), slog.String("source", cfg.SourceKind))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), global.DefaultTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

func buildSource(ctx context.Context, cfg *global.Config, logger *slog.Logger) (source.Source, func(), error) {
	switch cfg.SourceKind {
	case global.SourceMongo:
		client, err := mongo.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Warn("mongodb disconnect", slog.Any("error", err))
			}
		}
		db := client.Database(cfg.MongoDatabase)
		if err := mongo.EnsureIndexes(ctx, db, logger); err != nil {
			cleanup()
			return nil, nil, err
		}
		logger.Info("connected to mongodb", slog.String("database", cfg.MongoDatabase))
		return mongo.NewSource(db), cleanup, nil
	default:
		return source.NewHTTPSource(source.HTTPConfig{
			InventoryURL:       cfg.InventoryURL,
			OrdersURL:          cfg.OrdersURL,
			CouponsURL:         cfg.CouponsURL,
			Timeout:            cfg.UpstreamTimeout,
			InsecureSkipVerify: cfg.UpstreamInsecure,
		}), func() {}, nil
	}
}
