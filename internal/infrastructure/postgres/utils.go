package postgres

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/retail-pos/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation 23503: la fila está referenciada por otra tabla.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// isConflict reconoce fallos de concurrencia que el cliente puede reintentar:
// serialization_failure, deadlock_detected y lock_not_available (lock_timeout).
func isConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "40001", "40P01", "55P03":
		return true
	}
	return false
}

// isInvalidText 22P02: un id que no es UUID válido.
func isInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

// isNoRows la fila no existe; un id mal formado tampoco puede existir.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || isInvalidText(err)
}

// dbError traduce un error del driver al error de dominio correspondiente.
func dbError(op string, err error) error {
	if err == nil {
		return nil
	}
	if isConflict(err) {
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	}
	if isInvalidText(err) {
		return fmt.Errorf("%s: identificador mal formado: %w", op, domain.ErrInvalidInput)
	}
	return domain.NewPersistenceError(op, err)
}

// nullString convierte "" en NULL.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// filterBuilder arma cláusulas WHERE con placeholders posicionales.
type filterBuilder struct {
	where []string
	args  []any
}

func (b *filterBuilder) add(cond string, arg any) {
	b.args = append(b.args, arg)
	b.where = append(b.where, fmt.Sprintf(cond, len(b.args)))
}

func (b *filterBuilder) addTimeRange(column string, from, to *time.Time) {
	if from != nil {
		b.add(column+" >= $%d", *from)
	}
	if to != nil {
		b.add(column+" <= $%d", *to)
	}
}

func (b *filterBuilder) clause() string {
	if len(b.where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.where, " AND ")
}

// page agrega LIMIT/OFFSET al final de los argumentos.
func (b *filterBuilder) page(limit, offset int) (string, []any) {
	args := append(append([]any{}, b.args...), limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)), args
}
