package domain

import "time"

// Paging é o bloco de paginação padrão das buscas do Mercado Livre
type Paging struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// HasMore indica se ainda existem páginas a buscar
func (p Paging) HasMore() bool {
	return p.Offset+p.Limit < p.Total
}

// OrderSearchPage é a resposta de GET /orders/search
type OrderSearchPage struct {
	Results []RemoteOrder `json:"results"`
	Paging  Paging        `json:"paging"`
}

// RemoteOrder representa um pedido como a API do Mercado Livre o devolve.
// Campos ausentes na resposta ficam com o valor zero.
type RemoteOrder struct {
	ID          int64             `json:"id"`
	DateCreated time.Time         `json:"date_created"`
	Status      string            `json:"status"`
	TotalAmount float64           `json:"total_amount"`
	PaidAmount  float64           `json:"paid_amount"`
	Coupon      Coupon            `json:"coupon"`
	Taxes       Taxes             `json:"taxes"`
	Shipping    Shipping          `json:"shipping"`
	OrderItems  []RemoteOrderItem `json:"order_items"`
}

type Coupon struct {
	Amount float64 `json:"amount"`
}

type Taxes struct {
	Amount float64 `json:"amount"`
}

type Shipping struct {
	Cost       float64 `json:"cost"`
	SellerCost float64 `json:"seller_cost"`
}

type RemoteOrderItem struct {
	Item          RemoteItemRef `json:"item"`
	Quantity      int           `json:"quantity"`
	UnitPrice     float64       `json:"unit_price"`
	FullUnitPrice float64       `json:"full_unit_price"`
	SaleFee       float64       `json:"sale_fee"`
}

type RemoteItemRef struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	SellerSKU string `json:"seller_sku"`
}
