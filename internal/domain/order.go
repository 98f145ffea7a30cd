package domain

import (
	"time"
)

// OrderStatus representa o status de um pedido no Mercado Livre
type OrderStatus string

const (
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusReturned  OrderStatus = "returned"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ExcludedFromTotals indica se pedidos com este status ficam fora dos
// totais financeiros (devoluções e cancelamentos são contados à parte)
func (s OrderStatus) ExcludedFromTotals() bool {
	return s == OrderStatusCancelled || s == OrderStatusReturned
}

// Order é o espelho local de um pedido do marketplace. O sistema externo é
// a fonte da verdade: pedidos são criados e atualizados apenas pelo sync.
//
// GrossTotal é informativo. O motor de lucro recalcula a receita a partir
// dos itens e os dois valores podem divergir legitimamente.
type Order struct {
	ID               string      `json:"id"`
	UserID           int         `json:"user_id"`
	ExternalOrderID  string      `json:"external_order_id"`
	Date             time.Time   `json:"date"`
	Status           OrderStatus `json:"status"`
	GrossTotal       float64     `json:"gross_total"`
	DiscountsTotal   float64     `json:"discounts_total"`
	ShippingTotal    float64     `json:"shipping_total"`
	ShippingSeller   float64     `json:"shipping_seller"`
	FeesTotal        float64     `json:"fees_total"`
	FeeDiscountTotal float64     `json:"fee_discount_total"`
	TaxesTotal       float64     `json:"taxes_total"`
	AdsTotal         float64     `json:"ads_total"`
	PackagingCost    float64     `json:"packaging_cost"`
	ProcessingCost   float64     `json:"processing_cost"`
	Items            []OrderItem `json:"items"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// OrderItem é uma linha do pedido. ExternalItemID é a chave natural usada
// na reconciliação idempotente do sync.
type OrderItem struct {
	ID             string  `json:"id"`
	OrderID        string  `json:"order_id"`
	ExternalItemID string  `json:"external_item_id"`
	SKU            string  `json:"sku"`
	ProductName    string  `json:"product_name"`
	Quantity       int     `json:"quantity"`
	UnitPrice      float64 `json:"unit_price"`
	UnitDiscount   float64 `json:"unit_discount"`
	UnitCost       float64 `json:"unit_cost"`
}
