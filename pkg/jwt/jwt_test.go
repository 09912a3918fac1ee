package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	token, err := Generate("secret", "u-1", "Ana Cajera", "cashier", "retail-pos", 5)
	require.NoError(t, err)

	claims, err := Parse("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "Ana Cajera", claims.Name)
	assert.Equal(t, "cashier", claims.Role)
	assert.Equal(t, "retail-pos", claims.Issuer)
}

func TestParse_Rechazos(t *testing.T) {
	token, err := Generate("secret", "u-1", "Ana", "admin", "retail-pos", 5)
	require.NoError(t, err)

	_, err = Parse("otro", token)
	assert.Error(t, err, "firma incorrecta")

	expired, err := Generate("secret", "u-1", "Ana", "admin", "retail-pos", -1)
	require.NoError(t, err)
	_, err = Parse("secret", expired)
	assert.Error(t, err, "token expirado")

	_, err = Generate("", "u-1", "Ana", "admin", "retail-pos", 5)
	assert.Error(t, err)
}
