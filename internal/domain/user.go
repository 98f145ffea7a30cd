package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims são as claims do JWT emitido pelo provedor de identidade externo.
// O UserID é a chave de particionamento de todos os dados do sistema.
type Claims struct {
	UserID     int    `json:"user_id"`
	UserName   string `json:"user_name"`
	UserEmail  string `json:"user_email"`
	UserRoleID int    `json:"user_role_id"`
	jwt.RegisteredClaims
}
