package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	lineproviderapp "github.com/thistlewind/bet_services_system/internal/app/lineprovider"
	"github.com/thistlewind/bet_services_system/internal/config"
	"github.com/thistlewind/bet_services_system/pkg/logger"
)

func main() {
	cfg := config.InitConfig()

	log := logger.SetupLogger(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	application, err := lineproviderapp.NewApp(ctx, log, &cfg)
	if err != nil {
		panic(fmt.Sprintf("failed to create app: %v", err))
	}

	log.Info("line-provider started", "port", cfg.HTTP.Port)

	if err = application.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("application stopped with error", "error", err.Error())
	}

	if err = application.Stop(); err != nil {
		panic(fmt.Sprintf("failed to stop app: %v", err))
	}

	log.Info("application stopped")
}
