package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/meli-seller-api/internal/domain"
)

func TestSolveSalePrice(t *testing.T) {
	tests := []struct {
		name     string
		params   domain.PricingParams
		validate func(t *testing.T, result *domain.PricingSuggestion)
	}{
		{
			name: "Margem alcançável - resolve o preço exato",
			params: domain.PricingParams{
				ProductCost:         40,
				PackagingCost:       5,
				ShippingSeller:      15,
				MLFeePercent:        16,
				AdsPercent:          3,
				TaxPercent:          5,
				TargetMarginPercent: 16,
			},
			validate: func(t *testing.T, result *domain.PricingSuggestion) {
				// denominador = 1 - 0.16 - 0.16 - 0.08 = 0.60
				// preço = 60 / 0.60 = 100
				assert.True(t, result.Feasible)
				assert.InDelta(t, 100.0, result.SuggestedPrice, 0.01)
				assert.InDelta(t, 16.0, result.NetProfit, 0.01)
				assert.InDelta(t, 16.0, result.ActualMarginPercent, 0.01)
			},
		},
		{
			name: "Desconto na tarifa reduz a taxa efetiva e o preço sugerido",
			params: domain.PricingParams{
				ProductCost:          40,
				PackagingCost:        5,
				ShippingSeller:       15,
				MLFeePercent:         16,
				MLFeeDiscountPercent: 25,
				AdsPercent:           3,
				TaxPercent:           5,
				TargetMarginPercent:  16,
			},
			validate: func(t *testing.T, result *domain.PricingSuggestion) {
				// taxa efetiva = 0.16 * 0.75 = 0.12; denominador = 0.64
				assert.True(t, result.Feasible)
				assert.InDelta(t, 93.75, result.SuggestedPrice, 0.01)
				assert.InDelta(t, 15.0, result.NetProfit, 0.01)
			},
		},
		{
			name: "Margem alvo inalcançável - resultado zerado com Feasible false",
			params: domain.PricingParams{
				ProductCost:         40,
				MLFeePercent:        16,
				AdsPercent:          3,
				TaxPercent:          5,
				TargetMarginPercent: 90,
			},
			validate: func(t *testing.T, result *domain.PricingSuggestion) {
				assert.False(t, result.Feasible)
				assert.Equal(t, 0.0, result.SuggestedPrice)
				assert.Equal(t, 0.0, result.NetProfit)
				assert.Equal(t, 0.0, result.ActualMarginPercent)
			},
		},
		{
			name: "Custos zerados com margem viável - preço zero sem divisão inválida",
			params: domain.PricingParams{
				TargetMarginPercent: 20,
			},
			validate: func(t *testing.T, result *domain.PricingSuggestion) {
				assert.True(t, result.Feasible)
				assert.Equal(t, 0.0, result.SuggestedPrice)
				assert.Equal(t, 0.0, result.NetProfit)
				assert.Equal(t, 0.0, result.ActualMarginPercent)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SolveSalePrice(tt.params)
			tt.validate(t, result)
		})
	}
}

func TestEffectiveFeeRate(t *testing.T) {
	assert.InDelta(t, 0.16, EffectiveFeeRate(16, 0), 0.0001)
	assert.InDelta(t, 0.12, EffectiveFeeRate(16, 25), 0.0001)
	assert.InDelta(t, 0.0, EffectiveFeeRate(16, 100), 0.0001)
	assert.InDelta(t, 0.0, EffectiveFeeRate(0, 50), 0.0001)
}

func TestScenarioSensitivity(t *testing.T) {
	params := domain.PricingParams{
		ProductCost:    40,
		PackagingCost:  5,
		ShippingSeller: 15,
		MLFeePercent:   16,
		SalePrice:      100,
	}

	scenarios := ScenarioSensitivity(params)

	assert.Len(t, scenarios, 3)

	// pessimista: tarifa 0.176, ads 5% + imposto 6% = 11%
	assert.Equal(t, "pessimistic", scenarios[0].Name)
	assert.Equal(t, 5.0, scenarios[0].AdsPercent)
	assert.Equal(t, 6.0, scenarios[0].TaxPercent)
	assert.Equal(t, 1.1, scenarios[0].FeeMultiplier)
	assert.InDelta(t, 11.4, scenarios[0].NetProfit, 0.01)
	assert.InDelta(t, 11.4, scenarios[0].NetMarginPercent, 0.01)

	// realista: tarifa 0.16, ads 3% + imposto 5% = 8%
	assert.Equal(t, "realistic", scenarios[1].Name)
	assert.InDelta(t, 16.0, scenarios[1].NetProfit, 0.01)
	assert.InDelta(t, 16.0, scenarios[1].NetMarginPercent, 0.01)

	// otimista: tarifa 0.144, ads 2% + imposto 4% = 6%
	assert.Equal(t, "optimistic", scenarios[2].Name)
	assert.InDelta(t, 19.6, scenarios[2].NetProfit, 0.01)
	assert.InDelta(t, 19.6, scenarios[2].NetMarginPercent, 0.01)
}

func TestScenarioSensitivity_ZeroSalePrice(t *testing.T) {
	scenarios := ScenarioSensitivity(domain.PricingParams{ProductCost: 40})

	assert.Len(t, scenarios, 3)
	for _, sc := range scenarios {
		assert.InDelta(t, -40.0, sc.NetProfit, 0.01)
		assert.Equal(t, 0.0, sc.NetMarginPercent)
	}
}
