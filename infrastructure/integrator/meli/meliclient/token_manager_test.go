package meliclient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/meli-seller-api/infrastructure/repository/mocks"
	"github.com/vfg2006/meli-seller-api/internal/config"
	"github.com/vfg2006/meli-seller-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func newTokenManager(ctrl *gomock.Controller, baseURL string) (*TokenManager, *mocks.MockCredentialRepository) {
	mockCredRepo := mocks.NewMockCredentialRepository(ctrl)

	cfg := &config.Config{
		Meli: config.Meli{
			BaseURL:     baseURL,
			AppID:       "app-id",
			AppSecret:   "app-secret",
			RedirectURI: "http://localhost:3000/meli/callback",
		},
	}

	return NewTokenManager(cfg, mockCredRepo), mockCredRepo
}

func tokenServer(t *testing.T, response TokenResponse, wantGrantType string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oauth/token", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, wantGrantType, r.PostForm.Get("grant_type"))
		assert.Equal(t, "app-id", r.PostForm.Get("client_id"))

		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(response))
	}))
}

func stringPtr(s string) *string { return &s }

func TestTokenManager_EnsureValidToken_NoCredential(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tm, mockCredRepo := newTokenManager(ctrl, "http://localhost:0")

	mockCredRepo.EXPECT().GetByUserID(1).Return(nil, nil)

	credential, err := tm.EnsureValidToken(1)

	assert.Nil(t, credential)
	assert.ErrorIs(t, err, ErrReconnectRequired)
}

func TestTokenManager_EnsureValidToken_InactiveCredential(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tm, mockCredRepo := newTokenManager(ctrl, "http://localhost:0")

	mockCredRepo.EXPECT().
		GetByUserID(1).
		Return(&domain.MarketplaceCredential{UserID: 1, IsActive: false}, nil)

	credential, err := tm.EnsureValidToken(1)

	assert.Nil(t, credential)
	assert.ErrorIs(t, err, ErrReconnectRequired)
}

func TestTokenManager_EnsureValidToken_StillValid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tm, mockCredRepo := newTokenManager(ctrl, "http://localhost:0")

	stored := &domain.MarketplaceCredential{
		UserID:      1,
		AccessToken: "token-atual",
		IsActive:    true,
		ExpiresAt:   time.Now().Add(1 * time.Hour),
	}
	// Token válido além da margem: devolve como está, sem renovar nem salvar
	mockCredRepo.EXPECT().GetByUserID(1).Return(stored, nil)

	credential, err := tm.EnsureValidToken(1)

	assert.NoError(t, err)
	assert.Equal(t, "token-atual", credential.AccessToken)
}

func TestTokenManager_EnsureValidToken_WithinMarginTriggersRefresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := tokenServer(t, TokenResponse{
		AccessToken:  "token-novo",
		ExpiresIn:    21600,
		RefreshToken: "refresh-rotacionado",
	}, "refresh_token")
	defer server.Close()

	tm, mockCredRepo := newTokenManager(ctrl, server.URL)

	stored := &domain.MarketplaceCredential{
		UserID:       1,
		AccessToken:  "token-antigo",
		RefreshToken: stringPtr("refresh-antigo"),
		IsActive:     true,
		// Expira em 2 minutos: dentro da margem de 5, conta como expirado
		ExpiresAt: time.Now().Add(2 * time.Minute),
	}
	mockCredRepo.EXPECT().GetByUserID(1).Return(stored, nil)
	mockCredRepo.EXPECT().
		Save(gomock.Any()).
		DoAndReturn(func(credential *domain.MarketplaceCredential) error {
			assert.Equal(t, "token-novo", credential.AccessToken)
			assert.Equal(t, "refresh-rotacionado", *credential.RefreshToken)
			assert.True(t, credential.IsActive)
			assert.True(t, credential.ExpiresAt.After(time.Now().Add(5*time.Hour)))
			return nil
		})

	credential, err := tm.EnsureValidToken(1)

	assert.NoError(t, err)
	assert.Equal(t, "token-novo", credential.AccessToken)
}

func TestTokenManager_EnsureValidToken_RefreshWithoutRotationKeepsStoredToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// A resposta vem sem refresh_token: o armazenado continua válido
	server := tokenServer(t, TokenResponse{
		AccessToken: "token-novo",
		ExpiresIn:   21600,
	}, "refresh_token")
	defer server.Close()

	tm, mockCredRepo := newTokenManager(ctrl, server.URL)

	stored := &domain.MarketplaceCredential{
		UserID:       1,
		AccessToken:  "token-antigo",
		RefreshToken: stringPtr("refresh-antigo"),
		IsActive:     true,
		ExpiresAt:    time.Now().Add(-1 * time.Minute),
	}
	mockCredRepo.EXPECT().GetByUserID(1).Return(stored, nil)
	mockCredRepo.EXPECT().
		Save(gomock.Any()).
		DoAndReturn(func(credential *domain.MarketplaceCredential) error {
			assert.Equal(t, "refresh-antigo", *credential.RefreshToken)
			return nil
		})

	credential, err := tm.EnsureValidToken(1)

	assert.NoError(t, err)
	assert.Equal(t, "token-novo", credential.AccessToken)
}

func TestTokenManager_EnsureValidToken_MissingRefreshTokenDeactivates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tm, mockCredRepo := newTokenManager(ctrl, "http://localhost:0")

	stored := &domain.MarketplaceCredential{
		UserID:      1,
		AccessToken: "token-antigo",
		IsActive:    true,
		ExpiresAt:   time.Now().Add(-1 * time.Minute),
	}
	mockCredRepo.EXPECT().GetByUserID(1).Return(stored, nil)
	mockCredRepo.EXPECT().
		Save(gomock.Any()).
		DoAndReturn(func(credential *domain.MarketplaceCredential) error {
			assert.False(t, credential.IsActive)
			return nil
		})

	credential, err := tm.EnsureValidToken(1)

	assert.Nil(t, credential)
	assert.ErrorIs(t, err, ErrReconnectRequired)
}

func TestTokenManager_EnsureValidToken_RefreshFailureDeactivates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"invalid_grant"}`))
	}))
	defer server.Close()

	tm, mockCredRepo := newTokenManager(ctrl, server.URL)

	stored := &domain.MarketplaceCredential{
		UserID:       1,
		AccessToken:  "token-antigo",
		RefreshToken: stringPtr("refresh-invalidado"),
		IsActive:     true,
		ExpiresAt:    time.Now().Add(-1 * time.Minute),
	}
	mockCredRepo.EXPECT().GetByUserID(1).Return(stored, nil)
	mockCredRepo.EXPECT().
		Save(gomock.Any()).
		DoAndReturn(func(credential *domain.MarketplaceCredential) error {
			assert.False(t, credential.IsActive)
			return nil
		})

	credential, err := tm.EnsureValidToken(1)

	assert.Nil(t, credential)
	assert.ErrorIs(t, err, ErrReconnectRequired)
}

func TestTokenManager_ExchangeCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := tokenServer(t, TokenResponse{
		AccessToken:  "token-inicial",
		ExpiresIn:    21600,
		UserID:       987654,
		RefreshToken: "refresh-inicial",
	}, "authorization_code")
	defer server.Close()

	tm, mockCredRepo := newTokenManager(ctrl, server.URL)

	mockCredRepo.EXPECT().GetByUserID(1).Return(nil, nil)
	mockCredRepo.EXPECT().
		Save(gomock.Any()).
		DoAndReturn(func(credential *domain.MarketplaceCredential) error {
			assert.Equal(t, 1, credential.UserID)
			assert.Equal(t, "token-inicial", credential.AccessToken)
			assert.Equal(t, "refresh-inicial", *credential.RefreshToken)
			assert.Equal(t, "987654", credential.ExternalAccountID)
			assert.True(t, credential.IsActive)
			return nil
		})

	credential, err := tm.ExchangeCode(1, "TG-CODE")

	assert.NoError(t, err)
	assert.Equal(t, "987654", credential.ExternalAccountID)
}

func TestTokenManager_ExchangeCode_ReactivatesExistingCredential(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := tokenServer(t, TokenResponse{
		AccessToken:  "token-reconectado",
		ExpiresIn:    21600,
		UserID:       987654,
		RefreshToken: "refresh-reconectado",
	}, "authorization_code")
	defer server.Close()

	tm, mockCredRepo := newTokenManager(ctrl, server.URL)

	// Credencial desativada por falha de refresh: a reconexão reaproveita o
	// registro e o reativa
	stored := &domain.MarketplaceCredential{
		ID:       "crd001",
		UserID:   1,
		IsActive: false,
	}
	mockCredRepo.EXPECT().GetByUserID(1).Return(stored, nil)
	mockCredRepo.EXPECT().
		Save(gomock.Any()).
		DoAndReturn(func(credential *domain.MarketplaceCredential) error {
			assert.Equal(t, "crd001", credential.ID)
			assert.True(t, credential.IsActive)
			return nil
		})

	credential, err := tm.ExchangeCode(1, "TG-CODE")

	assert.NoError(t, err)
	assert.True(t, credential.IsActive)
}

func TestTokenManager_Disconnect(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tm, mockCredRepo := newTokenManager(ctrl, "http://localhost:0")

	mockCredRepo.EXPECT().Delete(1).Return(nil)

	assert.NoError(t, tm.Disconnect(1))
}

func TestCalculateTokenExpiration(t *testing.T) {
	expiresAt := CalculateTokenExpiration(21600)

	assert.WithinDuration(t, time.Now().Add(6*time.Hour), expiresAt, 5*time.Second)
}
