package inventory

import (
	"context"
	"errors"

	"github.com/jhoicas/retail-pos/internal/domain"
	"github.com/jhoicas/retail-pos/internal/domain/repository"
	"github.com/jhoicas/retail-pos/pkg/logger"
)

// Reconciler repara devoluciones cuyo movimiento de auditoría no se pudo escribir.
type Reconciler struct {
	transitions repository.StockTransitionRepository
	returns     repository.ReturnRepository
	metrics     Metrics
	log         *logger.Logger
	batchSize   int
}

// NewReconciler construye el job de reparación.
func NewReconciler(transitions repository.StockTransitionRepository, returns repository.ReturnRepository, metrics Metrics, log *logger.Logger) *Reconciler {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Reconciler{transitions: transitions, returns: returns, metrics: metrics, log: log.Module("reconcile"), batchSize: 500}
}

// Run agrega los StockTransition faltantes a partir del snapshot de cada devolución.
// Devuelve cuántos movimientos se repararon.
func (r *Reconciler) Run(ctx context.Context) (int, error) {
	pending, err := r.returns.ListWithoutTransition(ctx, r.batchSize)
	if err != nil {
		return 0, err
	}
	repaired := 0
	for _, ret := range pending {
		err := r.transitions.Create(ctx, TransitionFromReturn(ret))
		if errors.Is(err, domain.ErrDuplicate) {
			// Process escribió el movimiento entre la consulta y el insert.
			continue
		}
		if err != nil {
			r.log.Error().Err(err).Str("return_id", ret.ID).Msg("reconciliación: no se pudo escribir el movimiento")
			r.metrics.TransitionsReconciled(repaired)
			return repaired, err
		}
		repaired++
	}
	r.metrics.TransitionsReconciled(repaired)
	if repaired > 0 {
		r.log.Info().Int("repaired", repaired).Msg("reconciliación de devoluciones completada")
	}
	return repaired, nil
}
