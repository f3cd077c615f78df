package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbeisheim/chess-backend/internal/config"
	"github.com/benbeisheim/chess-backend/internal/server"
	"github.com/gofiber/fiber/v2/log"
)

func main() {
	cfg, err := config.Load(os.Args[1:], os.Getenv)
	if err != nil {
		log.Fatalw("loading config", "error", err)
	}
	log.SetLevel(cfg.Level())

	srv := server.New(cfg)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Info("shutting down")
		if err := srv.Shutdown(5 * time.Second); err != nil {
			log.Warnw("shutdown", "error", err)
		}
	}()

	if err := srv.Listen(); err != nil {
		log.Fatalw("server stopped", "error", err)
	}
}
