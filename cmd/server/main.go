package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/zaqqye/hotel_rooms/internal/auth"
	"github.com/zaqqye/hotel_rooms/internal/config"
	"github.com/zaqqye/hotel_rooms/internal/database"
	"github.com/zaqqye/hotel_rooms/internal/logger"
	"github.com/zaqqye/hotel_rooms/internal/routes"
)

func main() {
	// Load .env (non-fatal if missing)
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.MustNew(cfg.LogLevel, "json", "hotel-backend")
	defer log.Sync()

	stores, err := database.Open(cfg)
	if err != nil {
		log.Fatal("store setup failed", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}

	gin.SetMode(gin.ReleaseMode)
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL())
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.NewEngine(stores, tokens, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		log.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("shutdown error", zap.Error(err))
		}
	}()

	log.Info("listening", zap.String("port", cfg.Port), zap.String("store", cfg.StoreDriver))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server exited with error", zap.Error(err))
		os.Exit(1)
	}
}
