package domain

import "time"

// FixedCost é um custo fixo mensal cadastrado pelo vendedor (aluguel,
// contador, ferramentas). Apenas custos ativos entram no rateio por pedido.
type FixedCost struct {
	ID            string    `json:"id"`
	UserID        int       `json:"user_id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	AmountMonthly float64   `json:"amount_monthly"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
