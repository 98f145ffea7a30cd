package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/meli-seller-api/internal/domain"
	"github.com/vfg2006/meli-seller-api/internal/usecases/costing"
	"github.com/vfg2006/meli-seller-api/pkg/apiErrors"
	"github.com/vfg2006/meli-seller-api/pkg/log"
)

// ListFixedCosts devolve todos os custos fixos do usuário, ativos ou não
func ListFixedCosts(service costing.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		costs, err := service.List(claims.UserID)
		if err != nil {
			logger.WithFields(log.Fields{
				"user_id": claims.UserID,
				"error":   err.Error(),
			}).Error("fixed-costs: failed to list fixed costs")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(costs); err != nil {
			logger.WithError(err).Error("fixed-costs: failed to encode response")
		}
	})
}

// CreateFixedCost cadastra um novo custo fixo mensal
func CreateFixedCost(service costing.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		cost := &domain.FixedCost{}
		if err := json.NewDecoder(r.Body).Decode(cost); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}
		cost.UserID = claims.UserID

		created, err := service.Create(cost)
		if err != nil {
			if errors.Is(err, costing.ErrNameRequired) || errors.Is(err, costing.ErrNegativeAmount) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
				return
			}
			logger.WithFields(log.Fields{
				"user_id": claims.UserID,
				"error":   err.Error(),
			}).Error("fixed-costs: failed to create fixed cost")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(created); err != nil {
			logger.WithError(err).Error("fixed-costs: failed to encode response")
		}
	})
}

// UpdateFixedCost altera um custo fixo existente
func UpdateFixedCost(service costing.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		cost := &domain.FixedCost{}
		if err := json.NewDecoder(r.Body).Decode(cost); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}
		cost.ID = id
		cost.UserID = claims.UserID

		updated, err := service.Update(cost)
		if err != nil {
			if errors.Is(err, costing.ErrIDRequired) || errors.Is(err, costing.ErrNameRequired) || errors.Is(err, costing.ErrNegativeAmount) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
				return
			}
			logger.WithFields(log.Fields{
				"user_id":       claims.UserID,
				"fixed_cost_id": id,
				"error":         err.Error(),
			}).Error("fixed-costs: failed to update fixed cost")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(updated); err != nil {
			logger.WithError(err).Error("fixed-costs: failed to encode response")
		}
	})
}

// DeleteFixedCost remove um custo fixo do cadastro
func DeleteFixedCost(service costing.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.Delete(claims.UserID, id); err != nil {
			if errors.Is(err, costing.ErrIDRequired) {
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
				return
			}
			logger.WithFields(log.Fields{
				"user_id":       claims.UserID,
				"fixed_cost_id": id,
				"error":         err.Error(),
			}).Error("fixed-costs: failed to delete fixed cost")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, err.Error(), nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}
