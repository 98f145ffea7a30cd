package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/vfg2006/meli-seller-api/infrastructure/integrator/meli/meliclient"
	"github.com/vfg2006/meli-seller-api/internal/domain"
	"github.com/vfg2006/meli-seller-api/internal/usecases/syncing"
	"github.com/vfg2006/meli-seller-api/pkg/apiErrors"
	"github.com/vfg2006/meli-seller-api/pkg/log"
	"github.com/vfg2006/meli-seller-api/pkg/middleware"
)

const defaultSyncRunsLimit = 20

// userFromContext extrai as claims injetadas pelo middleware de autenticação
func userFromContext(r *http.Request) (*domain.Claims, bool) {
	claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
	return claims, ok
}

// TriggerSync dispara uma sincronização para o usuário autenticado. A query
// full=true força a janela completa em vez da incremental.
func TriggerSync(service syncing.Synchronizer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		fullSync := r.URL.Query().Get("full") == "true"

		logger.WithFields(log.Fields{
			"user_id":   claims.UserID,
			"full_sync": fullSync,
		}).Info("sync: manual sync requested")

		stats, err := service.Sync(r.Context(), claims.UserID, fullSync)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrSyncAlreadyRunning):
				apiErrors.WriteError(w, apiErrors.ErrSyncAlreadyRunning, err.Error(), nil)
			case errors.Is(err, meliclient.ErrReconnectRequired):
				apiErrors.WriteError(w, apiErrors.ErrReconnectRequired, err.Error(), nil)
			case errors.Is(err, domain.ErrSyncPersistence):
				logger.WithFields(log.Fields{
					"user_id": claims.UserID,
					"error":   err.Error(),
				}).Error("sync: local store write failed")
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, err.Error(), nil)
			default:
				logger.WithFields(log.Fields{
					"user_id": claims.UserID,
					"error":   err.Error(),
				}).Error("sync: sync failed")
				apiErrors.WriteError(w, apiErrors.ErrSyncFailed, err.Error(), nil)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(stats); err != nil {
			logger.WithError(err).Error("sync: failed to encode response")
		}
	})
}

// ListSyncRuns devolve o histórico de sincronizações do usuário
func ListSyncRuns(service syncing.Synchronizer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		limit := defaultSyncRunsLimit
		if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
			parsed, err := strconv.Atoi(rawLimit)
			if err != nil || parsed <= 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "limit deve ser um inteiro positivo", nil)
				return
			}
			limit = parsed
		}

		runs, err := service.ListRuns(claims.UserID, limit)
		if err != nil {
			logger.WithFields(log.Fields{
				"user_id": claims.UserID,
				"error":   err.Error(),
			}).Error("sync: failed to list sync runs")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(runs); err != nil {
			logger.WithError(err).Error("sync: failed to encode response")
		}
	})
}

// SyncStatus informa se há sincronização em andamento para o usuário
func SyncStatus(service syncing.Synchronizer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		response := map[string]any{
			"running": service.IsRunning(claims.UserID),
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	})
}
