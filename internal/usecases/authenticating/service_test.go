package authenticating

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/meli-seller-api/internal/config"
	"github.com/vfg2006/meli-seller-api/internal/domain"
)

const testSecret = "segredo-de-teste"

func signToken(t *testing.T, claims *domain.Claims, secret string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func TestService_ValidateToken(t *testing.T) {
	service := NewService(&config.Config{SecretKey: testSecret})

	tests := []struct {
		name     string
		token    func(t *testing.T) string
		validate func(t *testing.T, claims *domain.Claims, err error)
	}{
		{
			name: "Token válido devolve as claims do usuário",
			token: func(t *testing.T) string {
				return signToken(t, &domain.Claims{
					UserID:     42,
					UserName:   "Vendedor",
					UserRoleID: 2,
					RegisteredClaims: jwt.RegisteredClaims{
						ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
					},
				}, testSecret)
			},
			validate: func(t *testing.T, claims *domain.Claims, err error) {
				assert.NoError(t, err)
				assert.Equal(t, 42, claims.UserID)
				assert.Equal(t, 2, claims.UserRoleID)
			},
		},
		{
			name: "Token expirado devolve ErrExpiredToken",
			token: func(t *testing.T) string {
				return signToken(t, &domain.Claims{
					UserID: 42,
					RegisteredClaims: jwt.RegisteredClaims{
						ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
					},
				}, testSecret)
			},
			validate: func(t *testing.T, claims *domain.Claims, err error) {
				assert.Nil(t, claims)
				assert.ErrorIs(t, err, ErrExpiredToken)
			},
		},
		{
			name: "Token assinado com outro segredo é rejeitado",
			token: func(t *testing.T) string {
				return signToken(t, &domain.Claims{UserID: 42}, "outro-segredo")
			},
			validate: func(t *testing.T, claims *domain.Claims, err error) {
				assert.Nil(t, claims)
				assert.Error(t, err)
			},
		},
		{
			name: "Lixo não é um token",
			token: func(t *testing.T) string {
				return "nao-e-um-jwt"
			},
			validate: func(t *testing.T, claims *domain.Claims, err error) {
				assert.Nil(t, claims)
				assert.Error(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token(t))
			tt.validate(t, claims, err)
		})
	}
}
