// import_products da de alta un catálogo de productos desde un CSV.
// El stock inicial de cada fila se registra como ajuste en el libro de inventario.
//
// Uso: go run ./cmd/import_products [-latin1] [-dry-run] catalogo.csv
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/retail-pos/internal/application/inventory"
	"github.com/jhoicas/retail-pos/internal/application/usecase"
	"github.com/jhoicas/retail-pos/internal/domain"
	"github.com/jhoicas/retail-pos/internal/domain/entity"
	"github.com/jhoicas/retail-pos/internal/infrastructure/catalogcsv"
	"github.com/jhoicas/retail-pos/internal/infrastructure/postgres"
	"github.com/jhoicas/retail-pos/pkg/config"
	"github.com/jhoicas/retail-pos/pkg/logger"
)

// importActor firma los ajustes de stock inicial.
var importActor = entity.ActingUser{ID: "import-products", Name: "importación de catálogo"}

func main() {
	latin1 := flag.Bool("latin1", false, "el archivo está en ISO-8859-1")
	dryRun := flag.Bool("dry-run", false, "validar el archivo sin escribir")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: import_products [-latin1] [-dry-run] catalogo.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{App: cfg.App.Name, Env: cfg.App.Env, Level: cfg.App.LogLevel, Component: "import-products"})

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	rows, err := catalogcsv.Read(f, catalogcsv.Options{Latin1: *latin1})
	if err != nil {
		log.Fatal().Err(err).Msg("leer catálogo")
	}
	log.Info().Int("rows", len(rows)).Msg("catálogo leído")
	if *dryRun {
		return
	}
	if cfg.Store.Driver != config.DriverPostgres {
		log.Fatal().Str("store", cfg.Store.Driver).Msg("la importación requiere STORE_DRIVER=postgres")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	pool, err := postgres.NewPool(ctx, cfg.DB, postgres.PoolOptionsFrom(cfg, "import-products"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	stores := postgres.Stores(pool)
	txRunner := postgres.NewTxRunner(pool)
	productUC := usecase.NewProductUseCase(stores.Products, stores.Transitions, txRunner, inventory.NewLedgerWriter(txRunner, nil))

	created, skipped := 0, 0
	for i, row := range rows {
		_, err := productUC.Create(ctx, importActor, row)
		switch {
		case err == nil:
			created++
		case errors.Is(err, domain.ErrDuplicate):
			skipped++
			log.Warn().Int("row", i+1).Str("sku", row.SKU).Msg("SKU ya existe, se omite")
		default:
			log.Error().Err(err).Int("row", i+1).Str("name", row.Name).Msg("alta de producto")
		}
	}
	log.Info().Int("created", created).Int("skipped", skipped).Int("failed", len(rows)-created-skipped).Msg("importación finalizada")
}
