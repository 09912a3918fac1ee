// reconcile agrega los movimientos de auditoría faltantes de devoluciones ya confirmadas.
// Pensado para ejecutarse periódicamente (cron) contra PostgreSQL.
//
// Uso: go run ./cmd/reconcile
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/retail-pos/internal/application/inventory"
	"github.com/jhoicas/retail-pos/internal/infrastructure/postgres"
	"github.com/jhoicas/retail-pos/pkg/config"
	"github.com/jhoicas/retail-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{App: cfg.App.Name, Env: cfg.App.Env, Level: cfg.App.LogLevel, Component: "reconcile"})

	if cfg.Store.Driver != config.DriverPostgres {
		log.Fatal().Str("store", cfg.Store.Driver).Msg("reconcile solo aplica a STORE_DRIVER=postgres")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB, postgres.PoolOptionsFrom(cfg, "reconcile"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	stores := postgres.Stores(pool)
	reconciler := inventory.NewReconciler(stores.Transitions, stores.Returns, nil, log)

	repaired, err := reconciler.Run(ctx)
	if err != nil {
		log.Error().Err(err).Int("repaired", repaired).Msg("reconciliación interrumpida")
		pool.Close()
		os.Exit(1)
	}
	log.Info().Int("repaired", repaired).Msg("reconciliación finalizada")
}
