package inventory

import (
	"context"

	"github.com/jhoicas/retail-pos/internal/domain/entity"
	"github.com/jhoicas/retail-pos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad del motor de inventario: si fn devuelve error se hace Rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(stores repository.Stores) error) error
}

// Metrics recibe los eventos observables del libro. Lo implementa infrastructure/metrics.
type Metrics interface {
	TransitionRecorded(kind entity.TransitionKind)
	TransitionRejected(kind entity.TransitionKind, reason string)
	ReturnAuditFailed()
	TransitionsReconciled(n int)
}

type nopMetrics struct{}

func (nopMetrics) TransitionRecorded(entity.TransitionKind)         {}
func (nopMetrics) TransitionRejected(entity.TransitionKind, string) {}
func (nopMetrics) ReturnAuditFailed()                               {}
func (nopMetrics) TransitionsReconciled(int)                        {}
