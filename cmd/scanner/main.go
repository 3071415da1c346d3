package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"odds-arb-scanner/internal/alerts"
	"odds-arb-scanner/internal/config"
	"odds-arb-scanner/internal/engine"
	"odds-arb-scanner/internal/feed"
	"odds-arb-scanner/internal/snapshots"
)

func main() {
	cfg := config.Load()

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	source := feed.NewFileSource(cfg.SnapshotPath)
	notifier := alerts.NewNotifier(cfg.AlertCooldown)

	store, err := snapshots.NewStore(cfg.DBPath)
	if err != nil {
		log.Printf("Store disabled: %v", err)
		store = nil
	} else {
		defer store.Close()
	}

	eng := engine.New(source, notifier, store, cfg)

	notifier.LogStartup(fmt.Sprintf(" snapshot=%s db=%s poll=%s bankroll=%.2f minROI=%.2f%% minEdge=%.2f%% books=%s",
		cfg.SnapshotPath, cfg.DBPath, cfg.PollInterval, cfg.Bankroll,
		cfg.MinROIPct, cfg.MinEdgePct, strings.Join(cfg.BookPriority, ",")))

	// Start health check server
	go startHealthServer(cfg.Port)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Shutdown signal received, stopping...")
		cancel()
	}()

	eng.Run(ctx)
}

func startHealthServer(port string) {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Odds Arb Scanner - Running"))
	})

	addr := ":" + port
	log.Printf("Health server listening on %s", addr)

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("Health server error: %v", err)
	}
}
