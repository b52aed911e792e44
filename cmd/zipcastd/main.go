package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/swelljoe/zipcast/internal/app"
	"github.com/swelljoe/zipcast/internal/config"
	"github.com/swelljoe/zipcast/internal/handlers"
)

func main() {
	config.LoadDotEnv()
	cfg := config.Load()

	flag.StringVar(&cfg.ListenAddr, "addr", cfg.ListenAddr, "Address to listen on")
	flag.StringVar(&cfg.ZipsFile, "zips", cfg.ZipsFile, "Path to the postal code CSV")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to a SQLite location index (overrides -zips)")
	flag.Parse()

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer a.Close()

	// Setup routes
	mux := http.NewServeMux()
	handlers.New(a.Service, cfg.WrapWidth).Register(mux)
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2*cfg.Timeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Printf("Shutting down due to %s signal", sig)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}
