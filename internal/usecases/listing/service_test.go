package listing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	melidomain "github.com/vfg2006/meli-seller-api/infrastructure/integrator/meli/domain"
	melimocks "github.com/vfg2006/meli-seller-api/infrastructure/integrator/meli/mocks"
	"github.com/vfg2006/meli-seller-api/infrastructure/integrator/meli/meliclient"
	"github.com/vfg2006/meli-seller-api/infrastructure/repository/mocks"
	"github.com/vfg2006/meli-seller-api/internal/config"
	"github.com/vfg2006/meli-seller-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func newListingService(ctrl *gomock.Controller) (Executor, *melimocks.MockIntegrator, *mocks.MockListingRepository) {
	mockIntegrator := melimocks.NewMockIntegrator(ctrl)
	mockListingRepo := mocks.NewMockListingRepository(ctrl)

	cfg := &config.Config{
		ListingActions: config.ListingActions{ItemDelayMillis: 0},
	}

	return NewService(cfg, mockIntegrator, mockListingRepo), mockIntegrator, mockListingRepo
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestService_ApplyAction_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _, _ := newListingService(ctrl)

	tests := []struct {
		name    string
		action  domain.ListingAction
		itemIDs []string
		wantErr error
	}{
		{
			name:    "Ação desconhecida é rejeitada antes de qualquer chamada",
			action:  domain.ListingAction("destroy"),
			itemIDs: []string{"MLB1"},
			wantErr: ErrUnknownAction,
		},
		{
			name:    "Lote vazio é rejeitado",
			action:  domain.ListingActionPause,
			itemIDs: nil,
			wantErr: ErrNoItems,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := service.ApplyAction(context.Background(), 1, tt.action, tt.itemIDs, ActionParams{})
			assert.Nil(t, results)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_ApplyAction_TokenFailureAbortsBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, mockIntegrator, _ := newListingService(ctrl)

	mockIntegrator.EXPECT().
		EnsureValidToken(1).
		Return(nil, meliclient.ErrReconnectRequired)

	results, err := service.ApplyAction(context.Background(), 1, domain.ListingActionPause, []string{"MLB1", "MLB2"}, ActionParams{})

	assert.Nil(t, results)
	assert.ErrorIs(t, err, meliclient.ErrReconnectRequired)
}

func TestService_ApplyAction_InvalidParamsFailWithoutRemoteCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	credential := &domain.MarketplaceCredential{UserID: 1, AccessToken: "token", IsActive: true}

	tests := []struct {
		name      string
		action    domain.ListingAction
		params    ActionParams
		wantError string
	}{
		{
			name:      "update_price sem preço",
			action:    domain.ListingActionUpdatePrice,
			params:    ActionParams{},
			wantError: "preço deve ser maior que zero",
		},
		{
			name:      "update_price com preço zero",
			action:    domain.ListingActionUpdatePrice,
			params:    ActionParams{Price: floatPtr(0)},
			wantError: "preço deve ser maior que zero",
		},
		{
			name:      "update_stock com estoque negativo",
			action:    domain.ListingActionUpdateStock,
			params:    ActionParams{Stock: intPtr(-1)},
			wantError: "estoque não pode ser negativo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, mockIntegrator, _ := newListingService(ctrl)

			// Nenhuma expectativa de UpdateListing: a validação local falha o
			// item antes da chamada remota
			mockIntegrator.EXPECT().EnsureValidToken(1).Return(credential, nil)

			results, err := service.ApplyAction(context.Background(), 1, tt.action, []string{"MLB1"}, tt.params)

			assert.NoError(t, err)
			assert.Len(t, results, 1)
			assert.False(t, results[0].Success)
			assert.Equal(t, tt.wantError, results[0].Error)
		})
	}
}

func TestService_ApplyAction_PartialSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, mockIntegrator, mockListingRepo := newListingService(ctrl)
	credential := &domain.MarketplaceCredential{UserID: 1, AccessToken: "token", IsActive: true}

	mockIntegrator.EXPECT().EnsureValidToken(1).Return(credential, nil)

	// MLB1: mutação remota, re-busca canônica e espelho atualizado
	mockIntegrator.EXPECT().
		UpdateListing(credential, "MLB1", gomock.Any()).
		DoAndReturn(func(_ *domain.MarketplaceCredential, _ string, update melidomain.ItemUpdate) (*domain.Listing, error) {
			assert.NotNil(t, update.Status)
			assert.Equal(t, string(domain.ListingStatusPaused), *update.Status)
			return &domain.Listing{UserID: 1, ExternalItemID: "MLB1"}, nil
		})
	canonical := &domain.Listing{UserID: 1, ExternalItemID: "MLB1", Status: domain.ListingStatusPaused}
	mockIntegrator.EXPECT().FetchListing(credential, "MLB1").Return(canonical, nil)
	mockListingRepo.EXPECT().
		GetByExternalItemID(1, "MLB1").
		Return(&domain.Listing{ID: "lst001", UserID: 1, ExternalItemID: "MLB1"}, nil)
	mockListingRepo.EXPECT().
		Update(gomock.Any()).
		DoAndReturn(func(listing *domain.Listing) error {
			assert.Equal(t, "lst001", listing.ID)
			assert.Equal(t, domain.ListingStatusPaused, listing.Status)
			return nil
		})

	// MLB2: a falha remota derruba só este item
	mockIntegrator.EXPECT().
		UpdateListing(credential, "MLB2", gomock.Any()).
		Return(nil, errors.New("item não pertence ao vendedor"))

	results, err := service.ApplyAction(context.Background(), 1, domain.ListingActionPause, []string{"MLB1", "MLB2"}, ActionParams{})

	assert.NoError(t, err)
	assert.Len(t, results, 2)

	assert.Equal(t, "MLB1", results[0].ItemID)
	assert.True(t, results[0].Success)
	assert.Empty(t, results[0].Error)

	assert.Equal(t, "MLB2", results[1].ItemID)
	assert.False(t, results[1].Success)
	assert.Equal(t, "item não pertence ao vendedor", results[1].Error)
}

func TestService_ApplyAction_UpdatePriceSendsOnlyPrice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, mockIntegrator, mockListingRepo := newListingService(ctrl)
	credential := &domain.MarketplaceCredential{UserID: 1, AccessToken: "token", IsActive: true}

	mockIntegrator.EXPECT().EnsureValidToken(1).Return(credential, nil)

	mockIntegrator.EXPECT().
		UpdateListing(credential, "MLB1", gomock.Any()).
		DoAndReturn(func(_ *domain.MarketplaceCredential, _ string, update melidomain.ItemUpdate) (*domain.Listing, error) {
			assert.Nil(t, update.Status)
			assert.Nil(t, update.AvailableQuantity)
			assert.NotNil(t, update.Price)
			assert.Equal(t, 129.9, *update.Price)
			return &domain.Listing{UserID: 1, ExternalItemID: "MLB1"}, nil
		})

	canonical := &domain.Listing{UserID: 1, ExternalItemID: "MLB1", Price: 129.9}
	mockIntegrator.EXPECT().FetchListing(credential, "MLB1").Return(canonical, nil)
	mockListingRepo.EXPECT().GetByExternalItemID(1, "MLB1").Return(nil, nil)
	mockListingRepo.EXPECT().Insert(canonical).Return(nil)

	results, err := service.ApplyAction(context.Background(), 1, domain.ListingActionUpdatePrice, []string{"MLB1"}, ActionParams{Price: floatPtr(129.9)})

	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.True(t, results[0].Success)
}

func TestService_ListByUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _, mockListingRepo := newListingService(ctrl)

	listings := []*domain.Listing{
		{ID: "lst001", UserID: 1, ExternalItemID: "MLB1"},
	}
	mockListingRepo.EXPECT().ListByUser(1).Return(listings, nil)

	result, err := service.ListByUser(1)

	assert.NoError(t, err)
	assert.Equal(t, listings, result)
}
