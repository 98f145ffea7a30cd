package domain

// ProfitBreakdown é a saída completa e imutável do motor de lucro para um
// pedido ou para um período agregado. Todos os campos monetários são
// arredondados para 2 casas decimais no momento do cálculo.
type ProfitBreakdown struct {
	GrossRevenue         float64 `json:"gross_revenue"`
	Discounts            float64 `json:"discounts"`
	NetRevenue           float64 `json:"net_revenue"`
	COGS                 float64 `json:"cogs"`
	MLFeesGross          float64 `json:"ml_fees_gross"`
	MLFeeDiscount        float64 `json:"ml_fee_discount"`
	MLFeesNet            float64 `json:"ml_fees_net"`
	ShippingSeller       float64 `json:"shipping_seller"`
	PackagingCost        float64 `json:"packaging_cost"`
	ProcessingCost       float64 `json:"processing_cost"`
	AdsCost              float64 `json:"ads_cost"`
	Taxes                float64 `json:"taxes"`
	VariableCosts        float64 `json:"variable_costs"`
	FixedCostsAllocation float64 `json:"fixed_costs_allocation"`
	NetProfit            float64 `json:"net_profit"`
	NetMarginPercent     float64 `json:"net_margin_percent"`
}

// AggregateResult consolida os breakdowns de um conjunto de pedidos.
// Returns e Cancellations são contados sobre o conjunto completo, enquanto
// os totais financeiros excluem pedidos devolvidos/cancelados.
type AggregateResult struct {
	Totals        ProfitBreakdown `json:"totals"`
	OrdersCount   int             `json:"orders_count"`
	ItemsSold     int             `json:"items_sold"`
	AvgTicket     float64         `json:"avg_ticket"`
	Returns       int             `json:"returns"`
	Cancellations int             `json:"cancellations"`
}
