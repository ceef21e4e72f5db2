package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/classkeeper/internal/cli"
	"github.com/dmitrijs2005/classkeeper/internal/config"
	"github.com/dmitrijs2005/classkeeper/internal/logging"
	"github.com/dmitrijs2005/classkeeper/internal/notify"
	"github.com/dmitrijs2005/classkeeper/internal/store"
)

func main() {
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	st, err := store.Open(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app := cli.NewApp(st, notify.NewLogNotifier(logger), logger, os.Stdin, os.Stdout)
	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "classkeeper stopped", "error", err)
		st.Close()
		os.Exit(1)
	}
}
