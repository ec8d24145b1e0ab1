package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/almacen-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/almacen-ledger/pkg/config"
	"github.com/jhoicas/almacen-ledger/pkg/logger"
)

func main() {
	cmd := flag.String("cmd", "up", "migration command: up|down|status|version|redo|reset")
	version := flag.String("version", "", "target version for -cmd=version")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("migrate")
	ctx := context.Background()

	dbCfg := cfg.DB
	if cfg.DB.Embedded {
		embedded, conn, err := postgres.StartEmbedded(cfg.DB, log)
		requireResource(log, "embedded postgres", err)
		defer func() {
			if err := embedded.Stop(); err != nil {
				log.Error().Err(err).Msg("detener postgres embebido")
			}
		}()
		dbCfg = conn
	}

	pool, err := postgres.NewPool(ctx, dbCfg)
	requireResource(log, "database", err)
	defer pool.Close()

	db := postgres.OpenDB(pool)
	defer db.Close()

	log.Info().Str("cmd", *cmd).Msg("migrate ready")

	switch *cmd {
	case "up":
		err = postgres.Migrate(ctx, db, log)
	case "down", "status", "redo", "reset":
		err = postgres.RunCommand(ctx, db, *cmd)
	case "version":
		if *version == "" {
			fmt.Fprintln(os.Stderr, "missing -version for version command")
			os.Exit(1)
		}
		err = postgres.MigrateToVersion(ctx, db, *version)
	default:
		fmt.Fprintln(os.Stderr, "unknown -cmd value:", *cmd)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "goose %s failed: %v\n", *cmd, err)
		os.Exit(1)
	}
}

func requireResource(log *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	log.Error().Err(err).Msgf("resource not working: %s", resource)
	os.Exit(1)
}
