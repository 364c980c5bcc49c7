package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/rsalas72/away-team/internal/config"
	"github.com/rsalas72/away-team/internal/engine"
	"github.com/rsalas72/away-team/internal/handlers"
	"github.com/rsalas72/away-team/internal/logger"
	"github.com/rsalas72/away-team/internal/middleware"
	"github.com/rsalas72/away-team/internal/services"
	"github.com/rsalas72/away-team/internal/storage"
	"github.com/rsalas72/away-team/pkg/rules"
	"github.com/rsalas72/away-team/pkg/world"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Away Team API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"llm_provider", cfg.LLMProvider,
		"model_name", cfg.ModelName)

	var llmService services.LLMService
	switch cfg.LLMProvider {
	case config.ProviderAnthropic:
		llmService = services.NewAnthropicService(cfg.AnthropicAPIKey, cfg.ModelName, log)
		log.Info("Using Anthropic LLM provider")
	case config.ProviderOpenRouter:
		llmService = services.NewOpenRouterService(cfg.OpenRouterAPIKey, cfg.ModelName, log)
		log.Info("Using OpenRouter LLM provider")
	case config.ProviderMock:
		llmService = services.NewMockLLMAPI()
		log.Warn("Using mock LLM provider; turns will not be narrated")
	default:
		log.Error("Invalid LLM provider specified", "provider", cfg.LLMProvider)
		os.Exit(1)
	}

	store, err := storage.NewRedisStorage(cfg.RedisURL, log)
	if err != nil {
		log.Error("Failed to configure storage", "error", err)
		os.Exit(1)
	}
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()

	if err := store.WaitForConnection(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}

	// Initialize the model on startup
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	if err := llmService.InitModel(ctx, cfg.ModelName); err != nil {
		log.Error("Failed to initialize LLM model", "error", err, "model", cfg.ModelName)
		os.Exit(1)
	}

	// Resume the configured session, or start fresh from the mission data
	var w *world.World
	if cfg.SessionID != uuid.Nil {
		w, err = store.LoadWorld(ctx, cfg.SessionID)
		if err != nil {
			log.Error("Failed to load session", "session", cfg.SessionID, "error", err)
			os.Exit(1)
		}
		if w != nil {
			log.Info("Resumed session", "session", cfg.SessionID, "turn", w.CurrentTurn())
		}
	}
	if w == nil {
		sessionID := cfg.SessionID
		if sessionID == uuid.Nil {
			sessionID = uuid.New()
		}
		w, err = storage.LoadInitialWorld(cfg.DataDir, sessionID)
		if err != nil {
			log.Error("Failed to load mission data", "data_dir", cfg.DataDir, "error", err)
			os.Exit(1)
		}
		log.Info("New session started", "session", sessionID, "character", w.ActiveCharacterID())
	}

	var diceSource rules.Source
	if cfg.DiceSeedSet {
		diceSource = rules.NewSeededSource(cfg.DiceSeed)
		log.Info("Dice seeded", "seed", cfg.DiceSeed)
	} else {
		diceSource = rules.NewSeededSource(time.Now().UnixNano())
	}

	actor := services.NewLLMActor(llmService, log)
	director := services.NewLLMDirector(llmService, log)

	eng := engine.New(w, actor, director,
		rules.NewResolver(diceSource),
		rules.DefaultSkillTable(), log).
		WithStore(store).
		WithCapabilityTimeout(cfg.CapabilityTimeout)

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(store, log)
	mux.Handle("/health", healthHandler)

	turnHandler := handlers.NewTurnHandler(eng, log)
	mux.Handle("/v1/turn", turnHandler)

	stateHandler := handlers.NewStateHandler(w, log)
	mux.Handle("/v1/state", stateHandler)

	worldHandler := handlers.NewWorldHandler(w, log)
	mux.Handle("/v1/world", worldHandler)

	handler := middleware.Logger(mux, log)
	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
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

	if err := store.Close(); err != nil {
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
