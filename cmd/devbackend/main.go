package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/nearbyconnect/internal/devbackend"
	"github.com/dmitrijs2005/nearbyconnect/internal/logging"
)

func main() {

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	cfg := devbackend.LoadConfig()
	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	if err := devbackend.NewServer(cfg, logger).Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
