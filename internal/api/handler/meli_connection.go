package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vfg2006/meli-seller-api/infrastructure/integrator/meli"
	"github.com/vfg2006/meli-seller-api/pkg/apiErrors"
	"github.com/vfg2006/meli-seller-api/pkg/log"
)

// ConnectMeliRequest é o corpo da conexão: o código devolvido pelo fluxo
// OAuth do Mercado Livre
type ConnectMeliRequest struct {
	Code string `json:"code"`
}

// ConnectMeli troca o código de autorização por tokens e ativa a credencial
func ConnectMeli(integrator meli.Integrator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		request := ConnectMeliRequest{}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		if request.Code == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Código de autorização não informado", nil)
			return
		}

		credential, err := integrator.ExchangeCode(claims.UserID, request.Code)
		if err != nil {
			logger.WithFields(log.Fields{
				"user_id": claims.UserID,
				"error":   err.Error(),
			}).Error("meli: failed to connect account")
			apiErrors.WriteError(w, apiErrors.ErrExternalService, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(credential); err != nil {
			logger.WithError(err).Error("meli: failed to encode response")
		}
	})
}

// DisconnectMeli remove a credencial do usuário
func DisconnectMeli(integrator meli.Integrator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		if err := integrator.Disconnect(claims.UserID); err != nil {
			logger.WithFields(log.Fields{
				"user_id": claims.UserID,
				"error":   err.Error(),
			}).Error("meli: failed to disconnect account")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, err.Error(), nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}
