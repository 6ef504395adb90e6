package main

import (
	"context"
	"fmt"
	"os"

	"erp-admin/internal/adapters/cli"
	"erp-admin/internal/app"
	"erp-admin/internal/config"
	"erp-admin/internal/logger"
	"erp-admin/internal/wire"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	open := func(ctx context.Context) (app.ApplicationService, func(), error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, nil, err
		}
		logger.Init(logger.Config{Env: cfg.LogEnv, Level: "warn", ServiceName: "erpctl"})
		rt, err := wire.Build(ctx, cfg, wire.Options{})
		if err != nil {
			return nil, nil, err
		}
		return rt.Service, rt.Close, nil
	}

	root := cli.NewRootCmd(open, os.Stdout)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "erpctl: %v\n", err)
		os.Exit(1)
	}
	_ = logger.Sync()
}
