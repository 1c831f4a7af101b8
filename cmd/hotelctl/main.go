package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/zaqqye/hotel_rooms/internal/app"
	"github.com/zaqqye/hotel_rooms/internal/client"
	"github.com/zaqqye/hotel_rooms/internal/config"
	"github.com/zaqqye/hotel_rooms/internal/console"
	"github.com/zaqqye/hotel_rooms/internal/logger"
)

func main() {
	// Load .env (non-fatal if missing)
	_ = godotenv.Load()
	cfg := config.Load()

	apiURL := flag.String("api", cfg.APIBaseURL, "backend base URL")
	timeout := flag.Duration("timeout", cfg.APITimeout, "per-request timeout")
	level := flag.String("log-level", cfg.LogLevel, "debug, info, warn or error")
	flag.Parse()

	log := logger.MustNew(*level, cfg.LogFormat, "hotelctl")
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := client.New(strings.TrimRight(*apiURL, "/"), *timeout, log.Named("client"))
	probe, cancel := context.WithTimeout(ctx, 3*time.Second)
	if !api.Healthy(probe) {
		log.Warn("backend health check failed", zap.String("api", *apiURL))
	}
	cancel()

	ui := console.New(os.Stdin, os.Stdout, log.Named("console"))
	a := app.New(app.Params{API: api, Notifier: ui, Confirmer: ui, Logger: log})
	defer a.Close()

	// stdin reads do not observe ctx; leave on the first signal
	go func() {
		<-ctx.Done()
		a.Close()
		_ = log.Sync()
		os.Exit(130)
	}()

	if err := ui.Run(ctx, a); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
