// cmd/server/main.go
package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/alansouls/guessing-card-game/internal/config"
	"github.com/alansouls/guessing-card-game/internal/history"
	"github.com/alansouls/guessing-card-game/internal/server"
	"github.com/alansouls/guessing-card-game/internal/session"
)

func main() {
	cfg := config.Load()

	bind := flag.String("bind", "", "UDP host:port to listen on (overrides BIND_ADDR)")
	flag.Parse()
	if *bind != "" {
		cfg.BindAddr = *bind
	}

	logger := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	var recorder *history.Recorder
	if cfg.RedisAddr != "" {
		var err error
		recorder, err = history.Connect(cfg.RedisAddr, cfg.RedisDB, cfg.HistoryQueue)
		if err != nil {
			logger.Fatalf("history recorder: %v", err)
		}
		defer recorder.Close()
		logger.WithField("queue", cfg.HistoryQueue).Info("history recording enabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger, session.NewRegistry(), recorder)
	if err := srv.Run(ctx); err != nil {
		logger.Fatalf("server exited: %v", err)
	}
}
