package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"apptcal/internal/appt"
	"apptcal/internal/config"
	"apptcal/internal/logging"
	"apptcal/internal/storage"
	"apptcal/internal/ui"
)

func main() {
	ctx := context.Background()

	cfgStore, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New()
	if err != nil {
		log.Fatalf("open log: %v", err)
	}
	defer logger.Sync()

	var svc appt.Service
	switch cfgStore.Config.Mode {
	case config.ModeRemote:
		svc = appt.NewClient(cfgStore.Config.API.BaseURL, cfgStore.Config.API.Token)
		logger.Info("using remote backend", zap.String("base_url", cfgStore.Config.API.BaseURL))
	default:
		store, err := storage.Open(ctx)
		if err != nil {
			log.Fatalf("open storage: %v", err)
		}
		defer store.Close()
		svc = store
		logger.Info("using local store")
	}

	program := ui.NewProgram(svc, cfgStore, logger)
	if err := program.Start(); err != nil {
		logger.Error("program terminated", zap.Error(err))
		os.Exit(1)
	}
}
