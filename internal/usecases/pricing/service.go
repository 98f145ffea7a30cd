package pricing

import (
	"github.com/vfg2006/meli-seller-api/internal/domain"
	"github.com/vfg2006/meli-seller-api/pkg/utils"
)

// Tabela fixa de cenários de sensibilidade (não configurável)
var scenarioTable = []struct {
	name          string
	adsPercent    float64
	taxPercent    float64
	feeMultiplier float64
}{
	{"pessimistic", 5, 6, 1.1},
	{"realistic", 3, 5, 1.0},
	{"optimistic", 2, 4, 0.9},
}

// SolveSalePrice resolve o preço de venda necessário para atingir a margem
// alvo, dado o conjunto de custos e tarifas. Quando a margem alvo somada às
// taxas atinge ou ultrapassa 100%, o alvo é inalcançável: o resultado volta
// zerado com Feasible=false, nunca um preço negativo ou infinito.
func SolveSalePrice(params domain.PricingParams) *domain.PricingSuggestion {
	effectiveFeeRate := EffectiveFeeRate(params.MLFeePercent, params.MLFeeDiscountPercent)
	variableRate := (params.AdsPercent + params.TaxPercent) / 100
	fixedCostSum := params.ProductCost + params.PackagingCost + params.ShippingSeller

	denominator := 1 - params.TargetMarginPercent/100 - effectiveFeeRate - variableRate
	if denominator <= 0 {
		return &domain.PricingSuggestion{Feasible: false}
	}

	suggestedPrice := fixedCostSum / denominator
	netProfit := suggestedPrice * params.TargetMarginPercent / 100

	actualMargin := 0.0
	if suggestedPrice > 0 {
		actualMargin = (netProfit / suggestedPrice) * 100
	}

	return &domain.PricingSuggestion{
		SuggestedPrice:      utils.RoundWithTwoDecimalPlace(suggestedPrice),
		NetProfit:           utils.RoundWithTwoDecimalPlace(netProfit),
		ActualMarginPercent: utils.RoundWithTwoDecimalPlace(actualMargin),
		Feasible:            true,
	}
}

// EffectiveFeeRate converte a tarifa do Mercado Livre e seu desconto em uma
// taxa efetiva sobre o preço de venda (fração, não porcentagem)
func EffectiveFeeRate(mlFeePercent, mlFeeDiscountPercent float64) float64 {
	return mlFeePercent * (1 - mlFeeDiscountPercent/100) / 100
}

// ScenarioSensitivity calcula lucro e margem em três cenários nomeados
// (pessimista/realista/otimista) sobre o preço de venda fixado em
// params.SalePrice, perturbando ads%, imposto% e a tarifa efetiva.
func ScenarioSensitivity(params domain.PricingParams) []*domain.Scenario {
	baseFeeRate := EffectiveFeeRate(params.MLFeePercent, params.MLFeeDiscountPercent)
	fixedCostSum := params.ProductCost + params.PackagingCost + params.ShippingSeller

	scenarios := make([]*domain.Scenario, 0, len(scenarioTable))
	for _, sc := range scenarioTable {
		feeRate := baseFeeRate * sc.feeMultiplier
		variableRate := (sc.adsPercent + sc.taxPercent) / 100

		netProfit := params.SalePrice - fixedCostSum - params.SalePrice*feeRate - params.SalePrice*variableRate

		netMargin := 0.0
		if params.SalePrice > 0 {
			netMargin = (netProfit / params.SalePrice) * 100
		}

		scenarios = append(scenarios, &domain.Scenario{
			Name:             sc.name,
			AdsPercent:       sc.adsPercent,
			TaxPercent:       sc.taxPercent,
			FeeMultiplier:    sc.feeMultiplier,
			NetProfit:        utils.RoundWithTwoDecimalPlace(netProfit),
			NetMarginPercent: utils.RoundWithTwoDecimalPlace(netMargin),
		})
	}

	return scenarios
}
