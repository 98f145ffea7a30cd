package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/meli-seller-api/internal/usecases/profiting"
	"github.com/vfg2006/meli-seller-api/pkg/apiErrors"
	"github.com/vfg2006/meli-seller-api/pkg/log"
	"github.com/vfg2006/meli-seller-api/pkg/utils"
)

// GetOrderBreakdown devolve o breakdown de lucro de um pedido
func GetOrderBreakdown(service *profiting.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		orderID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if orderID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do pedido não informado", nil)
			return
		}

		logger.WithFields(log.Fields{
			"user_id":  claims.UserID,
			"order_id": orderID,
		}).Info("profit: fetching order breakdown")

		breakdown, err := service.OrderBreakdown(claims.UserID, orderID)
		if err != nil {
			if errors.Is(err, profiting.ErrOrderNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrNotFound, err.Error(), nil)
				return
			}
			logger.WithFields(log.Fields{
				"user_id":  claims.UserID,
				"order_id": orderID,
				"error":    err.Error(),
			}).Error("profit: failed to compute order breakdown")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(breakdown); err != nil {
			logger.WithError(err).Error("profit: failed to encode response")
		}
	})
}

// GetProfitReport consolida o lucro dos pedidos do período informado via
// query string (start_date e end_date no formato 2006-01-02)
func GetProfitReport(service *profiting.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		startDate, err := utils.ParseDate(r.URL.Query().Get("start_date"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "start_date inválida, use o formato 2006-01-02", nil)
			return
		}

		endDate, err := utils.ParseDate(r.URL.Query().Get("end_date"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "end_date inválida, use o formato 2006-01-02", nil)
			return
		}

		// Período padrão: mês corrente
		now := time.Now()
		if startDate.IsZero() {
			monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
			startDate = &monthStart
		}
		if endDate.IsZero() {
			endDate = &now
		}

		logger.WithFields(log.Fields{
			"user_id":    claims.UserID,
			"start_date": startDate.Format(time.DateOnly),
			"end_date":   endDate.Format(time.DateOnly),
		}).Info("profit: computing profit report")

		report, err := service.ProfitReport(claims.UserID, *startDate, *endDate)
		if err != nil {
			logger.WithFields(log.Fields{
				"user_id": claims.UserID,
				"error":   err.Error(),
			}).Error("profit: failed to compute profit report")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithError(err).Error("profit: failed to encode response")
		}
	})
}
