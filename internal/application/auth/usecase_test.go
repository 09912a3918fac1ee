package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/retail-pos/internal/application/auth"
	"github.com/jhoicas/retail-pos/internal/application/dto"
	"github.com/jhoicas/retail-pos/internal/domain"
	"github.com/jhoicas/retail-pos/internal/domain/entity"
	"github.com/jhoicas/retail-pos/internal/infrastructure/memory"
	"github.com/jhoicas/retail-pos/pkg/jwt"
)

func newAuth() *auth.AuthUseCase {
	return auth.NewAuthUseCase(memory.NewStore().Users(), auth.JWTConfig{
		Secret: "test-secret", ExpMinutes: 10, Issuer: "retail-pos",
	}).WithBcryptCost(bcrypt.MinCost)
}

func TestRegisterLogin(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()

	user, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "Ana@Tienda.co", Password: "secreta123", Name: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "cashier", user.Role, "rol por defecto")
	assert.Equal(t, "ana@tienda.co", user.Email)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@tienda.co", Password: "otra12345"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@tienda.co", Password: "secreta123"})
	require.NoError(t, err)
	claims, err := jwt.Parse("test-secret", res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "Ana", claims.Name)
	assert.Equal(t, "cashier", claims.Role)
}

func TestLogin_Errores(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "luis@tienda.co", Password: "secreta123", Role: "manager"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "luis@tienda.co", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@tienda.co", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestEnsureAdmin_CreaUnaSolaVez(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()

	created, err := uc.EnsureAdmin(ctx, "Jefe@Tienda.com", "supersecreto", "Jefa de tienda")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = uc.EnsureAdmin(ctx, "jefe@tienda.com", "otro-secreto", "Otra")
	require.NoError(t, err)
	assert.False(t, created)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "jefe@tienda.com", Password: "supersecreto"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)
	assert.Equal(t, "Jefa de tienda", out.User.Name)
}
