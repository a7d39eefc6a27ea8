// File: cmd/server/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"log" // Standard log for startup/shutdown messages before/after zap is active
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weather_prediction_ui/internal/config"
)

func main() {
	purgeCmd := flag.NewFlagSet("purge-sessions", flag.ExitOnError)
	purgeTimeout := purgeCmd.Duration("timeout", 5*time.Minute, "Maximum time the purge may take")

	if len(os.Args) > 1 && os.Args[1] == "purge-sessions" {
		if err := purgeCmd.Parse(os.Args[2:]); err != nil {
			log.Fatalf("FATAL: %v", err)
		}
		purgeSessions(*purgeTimeout)
		return
	}

	startServer()
}

// purgeSessions deletes expired persisted sessions once and exits.
func purgeSessions(timeout time.Duration) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration for purge: %v", err)
	}

	job, cleanup, err := initializePurgeJob(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize session purge: %v", err)
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	purged, err := job.RunOnce(ctx)
	if err != nil {
		log.Printf("ERROR: Session purge failed: %v", err)
		cleanup()
		os.Exit(1)
	}
	log.Printf("INFO: Purged %d expired sessions.", purged)
}

func startServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	server, cleanup, err := initializeServer(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize server: %v", err)
	}
	defer cleanup()

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: Server failed to start or crashed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("INFO: Received signal '%s'. Shutting down server...", sig)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ServerTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Server forced to shutdown due to error: %v", err)
	} else {
		log.Println("INFO: Server shutdown complete.")
	}
	log.Println("INFO: Application exiting.")
}
