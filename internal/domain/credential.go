package domain

import "time"

// MarketplaceCredential é a credencial de acesso delegado de um usuário ao
// Mercado Livre. Criada na troca do código OAuth, mutada a cada refresh.
// IsActive vira false quando o refresh é impossível ou falha; o registro só
// é removido quando o usuário desconecta explicitamente.
type MarketplaceCredential struct {
	ID                string     `json:"id"`
	UserID            int        `json:"user_id"`
	AccessToken       string     `json:"-"`
	RefreshToken      *string    `json:"-"`
	ExpiresAt         time.Time  `json:"expires_at"`
	IsActive          bool       `json:"is_active"`
	ExternalAccountID string     `json:"external_account_id"`
	LastSyncAt        *time.Time `json:"last_sync_at"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
