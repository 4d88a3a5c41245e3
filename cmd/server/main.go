package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/budgettracker/internal/buildinfo"
	"github.com/dmitrijs2005/budgettracker/internal/logging"
	"github.com/dmitrijs2005/budgettracker/internal/server"
	"github.com/dmitrijs2005/budgettracker/internal/server/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(cfg.LogLevel))

	ctx := context.Background()
	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "app stopped with error", "error", err)
		os.Exit(1)
	}
}
