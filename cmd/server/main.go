package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Al-Faravi/Stock-Viewer/internal/config"
	"github.com/Al-Faravi/Stock-Viewer/internal/server"
)

func main() {
	godotenv.Load()

	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	s, err := server.NewServer(logger, cfg.CORSOrigin, cfg.CacheTTL)
	if err != nil {
		logger.Fatal("server", zap.Error(err))
	}

	if cfg.SeedFile != "" {
		if _, err := s.SeedFromFile(cfg.SeedFile); err != nil {
			logger.Fatal("seed", zap.String("file", cfg.SeedFile), zap.Error(err))
		}
	}

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: s.R}
	go func() {
		logger.Info("http listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http", zap.Error(err))
		}
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	ctxShut, cancelShut := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShut()
	_ = srv.Shutdown(ctxShut)
	logger.Info("shutdown complete")
}
