package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/nearbyconnect/internal/client/cli"
	"github.com/dmitrijs2005/nearbyconnect/internal/client/config"
	"github.com/dmitrijs2005/nearbyconnect/internal/filex"
	"github.com/dmitrijs2005/nearbyconnect/internal/logging"
)

func main() {

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.LoadConfig()

	var logOut io.Writer = os.Stderr
	if cfg.LogFile != "" {
		if err := filex.EnsureParentDir(cfg.LogFile); err != nil {
			log.Fatalf("%v", err)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			log.Fatalf("open log file: %v", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := logging.NewTextLogger(logOut, logging.ParseLevel(cfg.LogLevel))

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	// unblock the pending stdin read so the REPL sees the interrupt
	go func() {
		<-ctx.Done()
		_ = os.Stdin.Close()
	}()

	app.Run(ctx)

}
