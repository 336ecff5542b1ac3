// Command lsysd serves the render pipeline over HTTP.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/gg"

	"github.com/gogpu/lsys"
	"github.com/gogpu/lsys/internal/config"
	"github.com/gogpu/lsys/internal/server"
)

func main() {
	cfg := config.Load()

	var handler slog.Handler = slog.NewTextHandler(os.Stderr, nil)
	if cfg.Production() {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	}
	logger := slog.New(handler)
	lsys.SetLogger(logger)
	gg.SetLogger(logger)

	s := server.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		if err := s.Shutdown(); err != nil {
			logger.Error("shutdown", "err", err)
		}
	}()

	if err := s.Listen(); err != nil {
		logger.Error("listen", "err", err)
		os.Exit(1)
	}
}
