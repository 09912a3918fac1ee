package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-pos/internal/domain"
)

func TestParseDateRange(t *testing.T) {
	from, to, err := parseDateRange("2024-03-01", "2024-03-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *from)
	assert.Equal(t, time.Date(2024, 3, 31, 23, 59, 59, 999999999, time.UTC), *to, "fin sin hora cubre el día")

	from, to, err = parseDateRange("2024-03-01T10:00:00-05:00", "2024-03-01T18:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC), *from)
	assert.Equal(t, time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC), *to)

	from, to, err = parseDateRange("", "")
	require.NoError(t, err)
	assert.Nil(t, from)
	assert.Nil(t, to)
}

func TestParseDateRange_Invalidos(t *testing.T) {
	_, _, err := parseDateRange("01/03/2024", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = parseDateRange("2024-04-01", "2024-03-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestErrorFor_Codigos(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrNotFound, 404, "NOT_FOUND"},
		{domain.ErrInvalidQuantity, 400, "INVALID_QUANTITY"},
		{domain.ErrInsufficientStock, 409, "INSUFFICIENT_STOCK"},
		{domain.ErrConflict, 409, "CONFLICT"},
		{domain.NewPersistenceError("insert", assert.AnError), 503, "PERSISTENCE_FAILURE"},
		{assert.AnError, 500, "INTERNAL"},
	}
	for _, tc := range cases {
		status, body := errorFor(tc.err)
		assert.Equal(t, tc.status, status, tc.code)
		assert.Equal(t, tc.code, body.Code)
	}
}
