package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-ledger/internal/application/inventory"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
	"github.com/jhoicas/almacen-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/almacen-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/almacen-ledger/pkg/config"
	"github.com/jhoicas/almacen-ledger/pkg/logger"
)

// backend almacenamiento elegido por STORE_BACKEND.
type backend struct {
	tx    inventory.TxRunner
	repos inventory.Repos
	audit repository.AuditRepository
	close func()
}

func openBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	if cfg.DB.Backend == config.StoreBackendMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al detener el proceso")
		store := memory.NewStore()
		return &backend{tx: store, repos: store.Repos(), audit: store.Audit(), close: func() {}}, nil
	}

	dbCfg := cfg.DB
	var embedded *postgres.Embedded
	if cfg.DB.Embedded {
		var err error
		embedded, dbCfg, err = postgres.StartEmbedded(cfg.DB, log)
		if err != nil {
			return nil, err
		}
	}
	stopEmbedded := func() {
		if embedded == nil {
			return
		}
		if err := embedded.Stop(); err != nil {
			log.Error().Err(err).Msg("detener postgres embebido")
		}
	}

	pool, err := postgres.NewPool(ctx, dbCfg)
	if err != nil {
		stopEmbedded()
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}

	if cfg.DB.MigrateOnStart {
		db := postgres.OpenDB(pool)
		err := postgres.Migrate(ctx, db, log.Named("migrate"))
		_ = db.Close()
		if err != nil {
			pool.Close()
			stopEmbedded()
			return nil, err
		}
	}

	return &backend{
		tx:    postgres.NewTxRunner(pool),
		repos: postgres.NewRepos(pool),
		audit: postgres.NewAuditRepository(pool),
		close: func() {
			pool.Close()
			stopEmbedded()
		},
	}, nil
}
