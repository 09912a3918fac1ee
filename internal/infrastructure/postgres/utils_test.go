package postgres

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/retail-pos/internal/domain"
	"github.com/jhoicas/retail-pos/internal/domain/entity"
	"github.com/jhoicas/retail-pos/internal/domain/repository"
)

func TestDBError_Mapeo(t *testing.T) {
	assert.NoError(t, dbError("op", nil))

	for _, code := range []string{"40001", "40P01", "55P03"} {
		err := dbError("get product for update", fmt.Errorf("wrap: %w", &pgconn.PgError{Code: code}))
		assert.ErrorIs(t, err, domain.ErrConflict, code)
		assert.NotErrorIs(t, err, domain.ErrPersistence, code)
	}

	err := dbError("insert stock transition", errors.New("connection refused"))
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Contains(t, err.Error(), "insert stock transition")
}

func TestIDMalFormado(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "22P02"}
	assert.True(t, isNoRows(pgErr))
	assert.ErrorIs(t, dbError("list transitions", pgErr), domain.ErrInvalidInput)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
}

func TestTransitionFilter_SQL(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b := transitionFilter(repository.TransitionFilter{
		ProductID:       "p-1",
		TransactionType: entity.KindSale,
		From:            &from,
	})
	assert.Equal(t, " WHERE product_id = $1 AND transaction_type = $2 AND created_at >= $3", b.clause())

	pageSQL, args := b.page(50, 100)
	assert.Equal(t, " LIMIT $4 OFFSET $5", pageSQL)
	assert.Equal(t, []any{"p-1", "sale", from, 50, 100}, args)
	assert.Len(t, b.args, 3, "page no modifica los argumentos del filtro")

	assert.Empty(t, transitionFilter(repository.TransitionFilter{}).clause())
}
