package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vfg2006/meli-seller-api/infrastructure/integrator/meli/meliclient"
	"github.com/vfg2006/meli-seller-api/internal/domain"
	"github.com/vfg2006/meli-seller-api/internal/usecases/listing"
	"github.com/vfg2006/meli-seller-api/pkg/apiErrors"
	"github.com/vfg2006/meli-seller-api/pkg/log"
)

// ListingActionRequest é o corpo de uma ação em lote sobre anúncios
type ListingActionRequest struct {
	Action  string   `json:"action"`
	ItemIDs []string `json:"item_ids"`
	Price   *float64 `json:"price,omitempty"`
	Stock   *int     `json:"stock,omitempty"`
}

// ListListings devolve o espelho local dos anúncios do usuário
func ListListings(service listing.Executor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		listings, err := service.ListByUser(claims.UserID)
		if err != nil {
			logger.WithFields(log.Fields{
				"user_id": claims.UserID,
				"error":   err.Error(),
			}).Error("listings: failed to list listings")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(listings); err != nil {
			logger.WithError(err).Error("listings: failed to encode response")
		}
	})
}

// ApplyListingAction aplica uma ação em lote sobre anúncios remotos e devolve
// o resultado item a item. Sucesso parcial responde 200 com os erros por item.
func ApplyListingAction(service listing.Executor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		request := ListingActionRequest{}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		action := domain.ListingAction(request.Action)

		logger.WithFields(log.Fields{
			"user_id": claims.UserID,
			"action":  request.Action,
			"items":   len(request.ItemIDs),
		}).Info("listings: applying batch action")

		results, err := service.ApplyAction(r.Context(), claims.UserID, action, request.ItemIDs, listing.ActionParams{
			Price: request.Price,
			Stock: request.Stock,
		})
		if err != nil {
			switch {
			case errors.Is(err, listing.ErrUnknownAction):
				apiErrors.WriteError(w, apiErrors.ErrInvalidActionValue, err.Error(), nil)
			case errors.Is(err, listing.ErrNoItems):
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
			case errors.Is(err, meliclient.ErrReconnectRequired):
				apiErrors.WriteError(w, apiErrors.ErrReconnectRequired, err.Error(), nil)
			default:
				logger.WithFields(log.Fields{
					"user_id": claims.UserID,
					"error":   err.Error(),
				}).Error("listings: batch action failed")
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(results); err != nil {
			logger.WithError(err).Error("listings: failed to encode response")
		}
	})
}
