package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/notetube/transcript-api/config"
	"github.com/notetube/transcript-api/handlers/api"
	"github.com/notetube/transcript-api/logger"
	"github.com/notetube/transcript-api/services/transcript"
	"github.com/notetube/transcript-api/youtube"
)

func main() {
	// Optional .env for local development; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Wire the two transcript sources into the fallback service.
	apiClient := youtube.NewAPIClient(logg)
	timedtextClient := youtube.NewTimedTextClient(cfg.FetchTimeout, logg)
	transcriptService := transcript.NewService(apiClient, timedtextClient, transcript.Config{}, logg)

	server := api.NewServer(cfg,
		api.WithLogger(logg),
		api.WithService(transcriptService),
	)

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logg.WithError(err).Fatal("Server failed")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logg.WithError(err).Fatal("Server shutdown failed")
	}
}
