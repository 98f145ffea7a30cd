package domain

import "time"

// ListingStatus representa o status de um anúncio no Mercado Livre
type ListingStatus string

const (
	ListingStatusActive ListingStatus = "active"
	ListingStatusPaused ListingStatus = "paused"
	ListingStatusClosed ListingStatus = "closed"
)

// ListingAction é uma operação em lote aplicada a anúncios remotos
type ListingAction string

const (
	ListingActionPause       ListingAction = "pause"
	ListingActionActivate    ListingAction = "activate"
	ListingActionClose       ListingAction = "close"
	ListingActionUpdatePrice ListingAction = "update_price"
	ListingActionUpdateStock ListingAction = "update_stock"
)

// Valid indica se a ação é conhecida
func (a ListingAction) Valid() bool {
	switch a {
	case ListingActionPause, ListingActionActivate, ListingActionClose,
		ListingActionUpdatePrice, ListingActionUpdateStock:
		return true
	}
	return false
}

// Listing é o espelho local de um anúncio do catálogo remoto. O marketplace
// é autoritativo: o espelho só muda via sync ou após uma mutação remota
// bem-sucedida.
type Listing struct {
	ID                string        `json:"id"`
	UserID            int           `json:"user_id"`
	ExternalItemID    string        `json:"external_item_id"`
	SKU               string        `json:"sku"`
	Title             string        `json:"title"`
	Status            ListingStatus `json:"status"`
	Price             float64       `json:"price"`
	AvailableQuantity int           `json:"available_quantity"`
	SoldQuantity      int           `json:"sold_quantity"`
	Permalink         string        `json:"permalink"`
	ThumbnailURL      string        `json:"thumbnail_url"`
	CategoryID        string        `json:"category_id"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// ListingActionResult é o resultado por item de uma ação em lote. Sucesso
// parcial é um desfecho de primeira classe, não um erro.
type ListingActionResult struct {
	ItemID  string `json:"item_id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Product guarda o custo unitário informado pelo vendedor para um SKU.
// Criado zerado pelo sync quando um anúncio desconhecido aparece.
type Product struct {
	ID             string    `json:"id"`
	UserID         int       `json:"user_id"`
	SKU            string    `json:"sku"`
	Name           string    `json:"name"`
	UnitCost       float64   `json:"unit_cost"`
	ExternalItemID *string   `json:"external_item_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
