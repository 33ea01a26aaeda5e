// Command screeningworker runs the recruiting screening pipeline: a
// pool of workers that lease queue items and drive each candidate
// through text extraction, LLM extraction, embedding generation, score
// calculation, and explanation generation. It exposes only liveness
// and readiness probes; there is no CRUD API.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/ryo-aien/recruiting-screening-assistant/internal/config"
	"github.com/ryo-aien/recruiting-screening-assistant/internal/database"
	"github.com/ryo-aien/recruiting-screening-assistant/internal/llm"
	"github.com/ryo-aien/recruiting-screening-assistant/internal/queue"
	"github.com/ryo-aien/recruiting-screening-assistant/internal/redact"
	"github.com/ryo-aien/recruiting-screening-assistant/internal/stages"
	"github.com/ryo-aien/recruiting-screening-assistant/internal/storage"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	configDir := flag.String("config-dir",
		getEnv("CONFIG_DIR", "./deploy/config"),
		"Path to configuration directory")
	flag.Parse()

	envPath := filepath.Join(*configDir, ".env")
	if err := godotenv.Load(envPath); err != nil {
		log.Printf("warning: could not load %s: %v", envPath, err)
		log.Printf("continuing with existing environment variables")
	} else {
		log.Printf("loaded environment from %s", envPath)
	}

	httpPort := getEnv("HTTP_PORT", "8081")
	gin.SetMode(getEnv("GIN_MODE", "release"))

	cfg, err := config.Load(config.ResolveConfigPath(*configDir))
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbCfg, err := database.LoadConfigFromEnv()
	if err != nil {
		log.Fatalf("failed to load database config: %v", err)
	}
	dbClient, err := database.NewClient(ctx, dbCfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			log.Printf("error closing database client: %v", err)
		}
	}()
	slog.Info("connected to database")

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("failed to initialize storage backend: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("error closing storage backend: %v", err)
		}
	}()

	llmClient, err := llm.NewGenaiClient(ctx, cfg.LLM)
	if err != nil {
		log.Fatalf("failed to initialize LLM client: %v", err)
	}
	defer func() {
		if err := llmClient.Close(); err != nil {
			log.Printf("error closing LLM client: %v", err)
		}
	}()

	redactor := redact.New(cfg.Redact)

	handlers := map[queue.Stage]queue.StageHandler{
		queue.StageTextExtract: &stages.TextExtractHandler{Client: dbClient.Ent, Store: store},
		queue.StageLLMExtract: &stages.LLMExtractHandler{
			Client:   dbClient.Ent,
			Store:    store,
			LLM:      llmClient,
			Redactor: redactor,
		},
		queue.StageEmbed:   &stages.EmbeddingHandler{Client: dbClient.Ent, LLM: llmClient},
		queue.StageScore:   &stages.ScoreHandler{Client: dbClient.Ent},
		queue.StageExplain: &stages.ExplainHandler{Client: dbClient.Ent, LLM: llmClient},
	}

	driver := queue.NewDriver(dbClient.Ent)
	pool := queue.NewPool(dbClient.Ent, driver, handlers, cfg.Pipeline)
	if err := pool.Start(ctx); err != nil {
		log.Fatalf("failed to start worker pool: %v", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/readyz", func(c *gin.Context) {
		reqCtx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		dbHealth := dbClient.Health(reqCtx)
		poolHealth := pool.Health(reqCtx)

		ready := dbHealth.Healthy && poolHealth.IsHealthy
		status := http.StatusOK
		if !ready {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"ready":    ready,
			"database": dbHealth,
			"pool": gin.H{
				"total_workers":  poolHealth.TotalWorkers,
				"active_workers": poolHealth.ActiveWorkers,
				"queue_depth":    poolHealth.QueueDepth,
			},
		})
	})

	srv := &http.Server{
		Addr:    ":" + httpPort,
		Handler: router,
	}

	go func() {
		slog.Info("http server listening", "port", httpPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutdown signal received, draining")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Pipeline.GracefulShutdownWait)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	pool.Stop()
	slog.Info("screeningworker stopped")
}
