package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/leiwang08/docqa/internal/adapter/document"
	"github.com/leiwang08/docqa/internal/adapter/llm"
	"github.com/leiwang08/docqa/internal/config"
	store "github.com/leiwang08/docqa/internal/repository"
	"github.com/leiwang08/docqa/internal/service"
	"github.com/leiwang08/docqa/internal/session"
	handler "github.com/leiwang08/docqa/internal/transport/http"
	"github.com/leiwang08/docqa/policy"
)

func main() {
	// Load .env if present; environment variables win either way.
	_ = godotenv.Load()

	cfg := config.Load()

	log.Printf("Starting docqa...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Ollama URL: %s", cfg.OllamaURL)
	log.Printf("Model: %s", cfg.Model)
	log.Printf("Database: %s", cfg.DatabaseURL)

	// Initialize audit store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Initialize document fetcher
	fetcher := document.NewFetcher(cfg.MaxPDFSizeMB, cfg.FetchTimeout)

	// Initialize LLM client
	llmClient := llm.NewLLMClient(cfg.OllamaURL, cfg.Model, cfg.LLMTimeout)

	// Initialize policy engine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	policyContent := policy.DefaultPolicy
	if cfg.PolicyPath != "" {
		content, err := os.ReadFile(cfg.PolicyPath)
		if err != nil {
			log.Fatalf("Failed to read policy file %s: %v", cfg.PolicyPath, err)
		}
		policyContent = string(content)
	}
	policyEngine, err := policy.NewEngine(ctx, policyContent)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}
	if cfg.PolicyPath != "" {
		if err := policy.Watch(ctx, cfg.PolicyPath, policyEngine); err != nil {
			log.Printf("WARN: policy file watching disabled: %v", err)
		}
	}

	// Initialize session store and service
	sessions := session.NewStore()
	svc := service.New(sessions, db, fetcher, llmClient, policyEngine, cfg)

	// Create HTTP server
	server := handler.NewServer(svc)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("API started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down docqa...")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("docqa stopped")
}
