package domain

// PricingParams são as entradas da calculadora de preço. Percentuais são
// informados como números inteiros de porcentagem (16 = 16%).
type PricingParams struct {
	ProductCost          float64 `json:"product_cost"`
	PackagingCost        float64 `json:"packaging_cost"`
	ShippingSeller       float64 `json:"shipping_seller"`
	MLFeePercent         float64 `json:"ml_fee_percent"`
	MLFeeDiscountPercent float64 `json:"ml_fee_discount_percent"`
	AdsPercent           float64 `json:"ads_percent"`
	TaxPercent           float64 `json:"tax_percent"`
	TargetMarginPercent  float64 `json:"target_margin_percent"`

	// SalePrice é usado apenas pela análise de cenários (preço fixado)
	SalePrice float64 `json:"sale_price"`
}

// PricingSuggestion é o resultado da resolução de preço. Quando a margem
// alvo é matematicamente inalcançável, Feasible é false e os valores ficam
// zerados — nunca um preço negativo ou infinito.
type PricingSuggestion struct {
	SuggestedPrice      float64 `json:"suggested_price"`
	NetProfit           float64 `json:"net_profit"`
	ActualMarginPercent float64 `json:"actual_margin_percent"`
	Feasible            bool    `json:"feasible"`
}

// Scenario é um cenário de sensibilidade calculado sobre um preço de venda
// fixo, perturbando ads%, imposto% e o multiplicador da tarifa efetiva.
type Scenario struct {
	Name             string  `json:"name"`
	AdsPercent       float64 `json:"ads_percent"`
	TaxPercent       float64 `json:"tax_percent"`
	FeeMultiplier    float64 `json:"fee_multiplier"`
	NetProfit        float64 `json:"net_profit"`
	NetMarginPercent float64 `json:"net_margin_percent"`
}
