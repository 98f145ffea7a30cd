package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vfg2006/meli-seller-api/internal/domain"
	"github.com/vfg2006/meli-seller-api/internal/usecases/pricing"
	"github.com/vfg2006/meli-seller-api/pkg/apiErrors"
	"github.com/vfg2006/meli-seller-api/pkg/log"
)

// SolvePrice resolve o preço de venda para a margem alvo informada
func SolvePrice() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		params := domain.PricingParams{}
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		if params.ProductCost < 0 || params.PackagingCost < 0 || params.ShippingSeller < 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Custos não podem ser negativos", nil)
			return
		}

		suggestion := pricing.SolveSalePrice(params)

		if !suggestion.Feasible {
			logger.WithFields(log.Fields{
				"target_margin": params.TargetMarginPercent,
				"ml_fee":        params.MLFeePercent,
			}).Info("pricing: target margin is unreachable")
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(suggestion); err != nil {
			logger.WithError(err).Error("pricing: failed to encode response")
		}
	})
}

// PricingScenarios calcula a sensibilidade do lucro em três cenários fixos
// sobre o preço de venda informado
func PricingScenarios() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		params := domain.PricingParams{}
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		if params.SalePrice <= 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "sale_price deve ser maior que zero", nil)
			return
		}

		scenarios := pricing.ScenarioSensitivity(params)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(scenarios); err != nil {
			logger.WithError(err).Error("pricing: failed to encode response")
		}
	})
}
