package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwebster45206/npc-engine/internal/actions"
	"github.com/jwebster45206/npc-engine/internal/config"
	"github.com/jwebster45206/npc-engine/internal/handlers"
	"github.com/jwebster45206/npc-engine/internal/logger"
	"github.com/jwebster45206/npc-engine/internal/middleware"
	"github.com/jwebster45206/npc-engine/internal/orchestrator"
	"github.com/jwebster45206/npc-engine/internal/services"
	"github.com/jwebster45206/npc-engine/internal/state"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting NPC Engine API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"llm_provider", cfg.LLMProvider,
		"model_name", cfg.ModelName)

	var llmService services.LLMService
	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			log.Error("OpenAI API key is required when using openai provider")
			os.Exit(1)
		}
		llmService = services.NewOpenAIService(cfg.OpenAIAPIKey, cfg.ModelName, log)
		log.Info("Using OpenAI LLM provider")
	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			log.Error("Anthropic API key is required when using anthropic provider")
			os.Exit(1)
		}
		llmService = services.NewAnthropicService(cfg.AnthropicAPIKey, cfg.ModelName, log)
		log.Info("Using Anthropic LLM provider")
	default:
		llmService = services.NewLlamaService(cfg.LLMURL, log)
		log.Info("Using llama LLM provider", "url", cfg.LLMURL)
	}

	var storage services.Storage = services.NewRedisStorage(cfg.RedisURL, cfg.DataDir, log)
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()

	if err := storage.Ping(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	initCtx, initCancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer initCancel()
	if err := llmService.InitModel(initCtx, cfg.ModelName); err != nil {
		log.Error("Failed to initialize LLM model", "error", err, "model", cfg.ModelName)
		os.Exit(1)
	}

	// Hydrate the process-wide stores from durable storage.
	worldStore := state.NewWorldStore(storage, log)
	worldStore.Load(storageCtx)

	gossipLedger := state.NewGossipLedger(storage, log)
	gossipLedger.Load(storageCtx)

	memoryLedger := state.NewMemoryLedger(storage, log)

	gateway := services.NewGenerationGateway(llmService, cfg.ContentRating, cfg.LLMTimeout, log)
	executor := actions.NewExecutor(log)
	o := orchestrator.New(storage, worldStore, memoryLedger, gossipLedger, gateway, executor, log)

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(storage, log)
	mux.Handle("/health", healthHandler)

	interactHandler := handlers.NewInteractHandler(o, log)
	mux.Handle("/interact/", interactHandler)

	npcsHandler := handlers.NewNPCsHandler(storage, log)
	mux.Handle("/npcs", npcsHandler)

	handler := middleware.Logger(log, mux)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	if err := storage.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
