// Package memory implementa los puertos de persistencia en memoria del proceso.
// Pensado para demos (STORE_DRIVER=memory) y pruebas; los datos se pierden al reiniciar.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/retail-pos/internal/domain/entity"
	"github.com/jhoicas/retail-pos/internal/domain/repository"
)

// Store guarda todas las colecciones. txMu serializa las transacciones completas (equivalente
// a bloquear cada producto); mu protege los mapas en cada operación individual.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	products    map[string]*entity.Product
	transitions []*entity.StockTransition
	returns     []*entity.Return
	orders      map[string]*entity.Order
	users       map[string]*entity.User
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		products: make(map[string]*entity.Product),
		orders:   make(map[string]*entity.Order),
		users:    make(map[string]*entity.User),
	}
}

// Close no libera nada; existe para simetría con el pool de PostgreSQL.
func (s *Store) Close() {}

// Products repositorio fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Transitions repositorio fuera de transacción.
func (s *Store) Transitions() *TransitionRepo { return &TransitionRepo{s: s} }

// Returns repositorio fuera de transacción.
func (s *Store) Returns() *ReturnRepo { return &ReturnRepo{s: s} }

// Orders repositorio fuera de transacción.
func (s *Store) Orders() *OrderRepo { return &OrderRepo{s: s} }

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// tx acumula funciones de deshacer para el Rollback.
type tx struct {
	undo []func()
}

func (t *tx) record(f func()) {
	if t != nil {
		t.undo = append(t.undo, f)
	}
}

// TxRunner ejecuta callbacks de forma serializada con rollback por registro de deshacer.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{s: s} }

// Run ejecuta fn con repositorios atados a la transacción; si fn falla se deshacen sus escrituras.
func (r *TxRunner) Run(ctx context.Context, fn func(stores repository.Stores) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	t := &tx{}
	stores := repository.Stores{
		Products:    &ProductRepo{s: r.s, tx: t},
		Transitions: &TransitionRepo{s: r.s, tx: t},
		Returns:     &ReturnRepo{s: r.s, tx: t},
		Orders:      &OrderRepo{s: r.s, tx: t},
	}
	if err := fn(stores); err != nil {
		r.s.mu.Lock()
		for i := len(t.undo) - 1; i >= 0; i-- {
			t.undo[i]()
		}
		r.s.mu.Unlock()
		return err
	}
	return nil
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	end := len(list)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return list[offset:end]
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// sortNewestFirst ordena por CreatedAt descendente; a igual fecha, el último insertado primero.
func sortNewestFirst[T any](list []T, createdAt func(T) int64) {
	// la lista llega en orden de inserción: invertir y luego ordenar estable
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
	sort.SliceStable(list, func(i, j int) bool {
		return createdAt(list[i]) > createdAt(list[j])
	})
}
