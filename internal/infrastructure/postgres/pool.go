package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/retail-pos/pkg/config"
)

// PoolOptions parámetros de sesión que dependen del binario que abre el pool.
type PoolOptions struct {
	// ApplicationName aparece en pg_stat_activity (ej. "retail-pos/reconcile").
	ApplicationName string
	// LockTimeout > 0 acota la espera del SELECT FOR UPDATE sobre products; al vencer
	// PostgreSQL responde 55P03 y el repositorio lo traduce a domain.ErrConflict.
	LockTimeout time.Duration
}

// PoolOptionsFrom arma las opciones desde la configuración de la app.
func PoolOptionsFrom(cfg *config.Config, component string) PoolOptions {
	name := cfg.App.Name
	if component != "" {
		name += "/" + component
	}
	return PoolOptions{
		ApplicationName: name,
		LockTimeout:     time.Duration(cfg.Ledger.LockTimeoutMS) * time.Millisecond,
	}
}

// poolConfig traduce DB_* / DATABASE_URL y las opciones a la configuración de pgxpool.
func poolConfig(cfg config.DBConfig, opts PoolOptions) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	params := pc.ConnConfig.RuntimeParams
	if opts.ApplicationName != "" {
		params["application_name"] = opts.ApplicationName
	}
	if opts.LockTimeout > 0 {
		params["lock_timeout"] = strconv.FormatInt(opts.LockTimeout.Milliseconds(), 10)
	}

	pc.MaxConns = 25
	if cfg.MaxConns > 0 {
		pc.MaxConns = int32(cfg.MaxConns)
	}
	pc.MinConns = 2
	if pc.MinConns > pc.MaxConns {
		pc.MinConns = pc.MaxConns
	}
	pc.MaxConnLifetime = time.Hour
	pc.MaxConnIdleTime = 30 * time.Minute
	pc.HealthCheckPeriod = time.Minute

	// NUMERIC <-> shopspring/decimal en todas las conexiones del pool.
	pc.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	return pc, nil
}

// NewPool abre el pool de la base del punto de venta y verifica la conexión.
func NewPool(ctx context.Context, cfg config.DBConfig, opts PoolOptions) (*pgxpool.Pool, error) {
	pc, err := poolConfig(cfg, opts)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}
