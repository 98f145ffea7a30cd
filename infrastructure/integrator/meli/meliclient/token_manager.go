package meliclient

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meli-seller-api/infrastructure/repository"
	"github.com/vfg2006/meli-seller-api/internal/config"
	"github.com/vfg2006/meli-seller-api/internal/domain"
)

// ErrReconnectRequired indica que a renovação automática do token é
// impossível e o usuário precisa refazer o fluxo OAuth
var ErrReconnectRequired = errors.New("reconexão com o Mercado Livre necessária")

// tokenExpiryMargin é a antecedência com que o token é renovado. Um token a
// menos de 5 minutos de expirar é tratado como expirado.
const tokenExpiryMargin = 5 * time.Minute

// TokenManager gerencia o ciclo de vida dos tokens por usuário. Diferente de
// um token único de aplicação, cada vendedor conectado tem sua própria
// credencial persistida no banco.
type TokenManager struct {
	cfg               *config.Config
	credentials       repository.CredentialRepository
	TokenRefreshMutex sync.Mutex
}

func NewTokenManager(cfg *config.Config, credentials repository.CredentialRepository) *TokenManager {
	return &TokenManager{
		cfg:               cfg,
		credentials:       credentials,
		TokenRefreshMutex: sync.Mutex{},
	}
}

// EnsureValidToken devolve uma credencial com access token válido por pelo
// menos a margem de segurança, renovando-o se necessário. Falhas de renovação
// desativam a credencial e devolvem ErrReconnectRequired.
func (tm *TokenManager) EnsureValidToken(userID int) (*domain.MarketplaceCredential, error) {
	tm.TokenRefreshMutex.Lock()
	defer tm.TokenRefreshMutex.Unlock()

	credential, err := tm.credentials.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar credencial: %w", err)
	}

	if credential == nil || !credential.IsActive {
		return nil, ErrReconnectRequired
	}

	if time.Until(credential.ExpiresAt) > tokenExpiryMargin {
		return credential, nil
	}

	return tm.refreshCredential(credential)
}

func (tm *TokenManager) refreshCredential(credential *domain.MarketplaceCredential) (*domain.MarketplaceCredential, error) {
	if credential.RefreshToken == nil || *credential.RefreshToken == "" {
		logrus.WithField("user_id", credential.UserID).
			Warn("Credencial sem refresh token. Desativando até o usuário reconectar")
		tm.deactivate(credential)
		return nil, ErrReconnectRequired
	}

	logrus.WithField("user_id", credential.UserID).Info("Renovando token do Mercado Livre...")

	tokenResp, err := RefreshAccessToken(&tm.cfg.Meli, *credential.RefreshToken)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": credential.UserID,
			"error":   err.Error(),
		}).Error("Falha ao renovar token. Desativando credencial")
		tm.deactivate(credential)
		return nil, fmt.Errorf("%w: %s", ErrReconnectRequired, err.Error())
	}

	credential.AccessToken = tokenResp.AccessToken
	credential.ExpiresAt = CalculateTokenExpiration(tokenResp.ExpiresIn)

	// O Mercado Livre normalmente rotaciona o refresh token. Se a resposta
	// vier sem um, o token armazenado continua válido e é mantido.
	if tokenResp.RefreshToken != "" {
		credential.RefreshToken = &tokenResp.RefreshToken
	}

	if err := tm.credentials.Save(credential); err != nil {
		return nil, fmt.Errorf("erro ao persistir credencial renovada: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":    credential.UserID,
		"expires_at": credential.ExpiresAt.Format(time.RFC3339),
	}).Info("Token renovado com sucesso")

	return credential, nil
}

func (tm *TokenManager) deactivate(credential *domain.MarketplaceCredential) {
	credential.IsActive = false
	if err := tm.credentials.Save(credential); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": credential.UserID,
			"error":   err.Error(),
		}).Error("Erro ao desativar credencial")
	}
}

// ExchangeCode conclui o fluxo OAuth: troca o código de autorização por
// tokens e persiste a credencial do usuário como ativa
func (tm *TokenManager) ExchangeCode(userID int, code string) (*domain.MarketplaceCredential, error) {
	tm.TokenRefreshMutex.Lock()
	defer tm.TokenRefreshMutex.Unlock()

	tokenResp, err := ExchangeAuthorizationCode(&tm.cfg.Meli, code)
	if err != nil {
		return nil, fmt.Errorf("erro ao trocar código de autorização: %w", err)
	}

	credential, err := tm.credentials.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar credencial: %w", err)
	}
	if credential == nil {
		credential = &domain.MarketplaceCredential{UserID: userID}
	}

	credential.AccessToken = tokenResp.AccessToken
	credential.ExpiresAt = CalculateTokenExpiration(tokenResp.ExpiresIn)
	credential.IsActive = true
	credential.ExternalAccountID = strconv.FormatInt(tokenResp.UserID, 10)
	if tokenResp.RefreshToken != "" {
		credential.RefreshToken = &tokenResp.RefreshToken
	}

	if err := tm.credentials.Save(credential); err != nil {
		return nil, fmt.Errorf("erro ao persistir credencial: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":             userID,
		"external_account_id": credential.ExternalAccountID,
	}).Info("Conta do Mercado Livre conectada com sucesso")

	return credential, nil
}

// Disconnect remove a credencial do usuário. É o único caminho que apaga o
// registro; falhas de renovação apenas o desativam.
func (tm *TokenManager) Disconnect(userID int) error {
	tm.TokenRefreshMutex.Lock()
	defer tm.TokenRefreshMutex.Unlock()

	if err := tm.credentials.Delete(userID); err != nil {
		return fmt.Errorf("erro ao desconectar conta: %w", err)
	}

	logrus.WithField("user_id", userID).Info("Conta do Mercado Livre desconectada")

	return nil
}
