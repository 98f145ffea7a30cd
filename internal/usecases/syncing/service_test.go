package syncing

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

type syncServiceMocks struct {
	integrator  *melimocks.MockIntegrator
	orderRepo   *mocks.MockOrderRepository
	listingRepo *mocks.MockListingRepository
	productRepo *mocks.MockProductRepository
	syncRunRepo *mocks.MockSyncRunRepository
	credRepo    *mocks.MockCredentialRepository
}

func newSyncService(ctrl *gomock.Controller) (*Service, *syncServiceMocks) {
	m := &syncServiceMocks{
		integrator:  melimocks.NewMockIntegrator(ctrl),
		orderRepo:   mocks.NewMockOrderRepository(ctrl),
		listingRepo: mocks.NewMockListingRepository(ctrl),
		productRepo: mocks.NewMockProductRepository(ctrl),
		syncRunRepo: mocks.NewMockSyncRunRepository(ctrl),
		credRepo:    mocks.NewMockCredentialRepository(ctrl),
	}

	cfg := &config.Config{
		MeliSync: config.MeliSync{
			PageSize:           50,
			RequestDelayMillis: 0,
		},
	}

	service := &Service{
		cfg:         cfg,
		integrator:  m.integrator,
		orderRepo:   m.orderRepo,
		listingRepo: m.listingRepo,
		productRepo: m.productRepo,
		syncRunRepo: m.syncRunRepo,
		credRepo:    m.credRepo,
		running:     make(map[int]bool),
	}

	return service, m
}

func TestService_Sync_InsertsNewRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newSyncService(ctrl)
	credential := &domain.MarketplaceCredential{UserID: 1, AccessToken: "token", IsActive: true}

	m.syncRunRepo.EXPECT().Create(gomock.Any()).Return(nil)
	m.integrator.EXPECT().EnsureValidToken(1).Return(credential, nil)

	remoteOrder := &domain.Order{
		UserID:          1,
		ExternalOrderID: "2000001",
		Status:          domain.OrderStatusPaid,
		Items: []domain.OrderItem{
			{ExternalItemID: "MLB1", SKU: "SKU-1", ProductName: "Produto 1", Quantity: 1, UnitPrice: 100},
		},
	}
	m.integrator.EXPECT().
		FetchOrdersPage(credential, gomock.Any(), 0, 50).
		Return([]*domain.Order{remoteOrder}, melidomain.Paging{Total: 1, Offset: 0, Limit: 50}, nil)

	m.orderRepo.EXPECT().GetByExternalOrderID(1, "2000001").Return(nil, nil)

	// SKU desconhecido: um produto com custo zero é criado no cadastro
	m.productRepo.EXPECT().GetBySKU(1, "SKU-1").Return(nil, nil)
	m.productRepo.EXPECT().
		Insert(gomock.Any()).
		DoAndReturn(func(product *domain.Product) error {
			assert.Equal(t, "SKU-1", product.SKU)
			assert.Equal(t, 0.0, product.UnitCost)
			return nil
		})

	m.orderRepo.EXPECT().Insert(remoteOrder).Return(nil)
	m.orderRepo.EXPECT().InsertItem(gomock.Any()).Return(nil)

	m.integrator.EXPECT().
		FetchListingIDsPage(credential, 0, 50).
		Return([]string{"MLB1"}, melidomain.Paging{Total: 1, Offset: 0, Limit: 50}, nil)
	remoteListing := &domain.Listing{UserID: 1, ExternalItemID: "MLB1", SKU: "SKU-1", Status: domain.ListingStatusActive}
	m.integrator.EXPECT().FetchListing(credential, "MLB1").Return(remoteListing, nil)
	m.listingRepo.EXPECT().GetByExternalItemID(1, "MLB1").Return(nil, nil)

	// O produto já foi criado pelo SKU do item do pedido: não duplica
	m.productRepo.EXPECT().
		GetByExternalItemID(1, "MLB1").
		Return(&domain.Product{ID: "prd001", UserID: 1, SKU: "SKU-1"}, nil)

	m.listingRepo.EXPECT().Insert(remoteListing).Return(nil)

	m.credRepo.EXPECT().UpdateLastSyncAt(1, gomock.Any()).Return(nil)

	m.syncRunRepo.EXPECT().
		Close(gomock.Any()).
		DoAndReturn(func(run *domain.SyncRun) error {
			assert.Equal(t, domain.SyncRunStatusCompleted, run.Status)
			assert.Equal(t, 3, run.RecordsSynced)
			assert.NotNil(t, run.FinishedAt)
			assert.Nil(t, run.ErrorMessage)
			return nil
		})

	stats, err := service.Sync(context.Background(), 1, true)

	assert.NoError(t, err)
	assert.Equal(t, 1, stats.OrdersInserted)
	assert.Equal(t, 1, stats.ItemsInserted)
	assert.Equal(t, 1, stats.ProductsInserted)
	assert.Equal(t, 1, stats.ListingsInserted)
	assert.Equal(t, 3, stats.RecordsSynced)
	assert.Empty(t, stats.PartialErrors)
}

func TestService_Sync_ResyncIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newSyncService(ctrl)
	credential := &domain.MarketplaceCredential{UserID: 1, AccessToken: "token", IsActive: true}

	m.syncRunRepo.EXPECT().Create(gomock.Any()).Return(nil)
	m.integrator.EXPECT().EnsureValidToken(1).Return(credential, nil)

	remoteOrder := &domain.Order{
		UserID:          1,
		ExternalOrderID: "2000001",
		Status:          domain.OrderStatusDelivered,
		Items: []domain.OrderItem{
			{ExternalItemID: "MLB1", SKU: "SKU-1", Quantity: 1, UnitPrice: 100},
		},
	}
	m.integrator.EXPECT().
		FetchOrdersPage(credential, gomock.Any(), 0, 50).
		Return([]*domain.Order{remoteOrder}, melidomain.Paging{Total: 1, Offset: 0, Limit: 50}, nil)

	// Pedido já conhecido pela chave natural: atualiza, não duplica. Os
	// campos informados pelo vendedor (abatimento de tarifa, publicidade,
	// embalagem, processamento) ficam como estão no espelho.
	m.orderRepo.EXPECT().
		GetByExternalOrderID(1, "2000001").
		Return(&domain.Order{
			ID: "ord001", UserID: 1, ExternalOrderID: "2000001",
			FeeDiscountTotal: 6, AdsTotal: 12, PackagingCost: 2, ProcessingCost: 1.5,
		}, nil)

	// Cadastro atual com custo 25, mas o item já congelou 30 na importação
	m.productRepo.EXPECT().
		GetBySKU(1, "SKU-1").
		Return(&domain.Product{ID: "prd001", UserID: 1, SKU: "SKU-1", UnitCost: 25}, nil)

	m.orderRepo.EXPECT().
		Update(gomock.Any()).
		DoAndReturn(func(order *domain.Order) error {
			assert.Equal(t, "ord001", order.ID)
			assert.Equal(t, 6.0, order.FeeDiscountTotal)
			assert.Equal(t, 12.0, order.AdsTotal)
			assert.Equal(t, 2.0, order.PackagingCost)
			assert.Equal(t, 1.5, order.ProcessingCost)
			return nil
		})
	m.orderRepo.EXPECT().
		GetItemByExternalID("ord001", "MLB1").
		Return(&domain.OrderItem{ID: "item01", OrderID: "ord001", ExternalItemID: "MLB1", UnitCost: 30}, nil)
	m.orderRepo.EXPECT().
		UpdateItem(gomock.Any()).
		DoAndReturn(func(item *domain.OrderItem) error {
			assert.Equal(t, "item01", item.ID)
			assert.Equal(t, 30.0, item.UnitCost)
			return nil
		})

	m.integrator.EXPECT().
		FetchListingIDsPage(credential, 0, 50).
		Return([]string{}, melidomain.Paging{Total: 0, Offset: 0, Limit: 50}, nil)

	m.credRepo.EXPECT().UpdateLastSyncAt(1, gomock.Any()).Return(nil)

	m.syncRunRepo.EXPECT().
		Close(gomock.Any()).
		DoAndReturn(func(run *domain.SyncRun) error {
			assert.Equal(t, domain.SyncRunStatusCompleted, run.Status)
			assert.Equal(t, 0, run.RecordsSynced)
			return nil
		})

	stats, err := service.Sync(context.Background(), 1, true)

	assert.NoError(t, err)
	assert.Equal(t, 0, stats.OrdersInserted)
	assert.Equal(t, 1, stats.OrdersUpdated)
	assert.Equal(t, 0, stats.ItemsInserted)
	assert.Equal(t, 0, stats.RecordsSynced)
}

func TestService_Sync_RejectsOverlappingRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _ := newSyncService(ctrl)
	service.running[1] = true

	stats, err := service.Sync(context.Background(), 1, false)

	assert.Nil(t, stats)
	assert.ErrorIs(t, err, domain.ErrSyncAlreadyRunning)
	assert.True(t, service.IsRunning(1))
}

func TestService_Sync_TokenFailureClosesRunAsFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newSyncService(ctrl)

	m.syncRunRepo.EXPECT().Create(gomock.Any()).Return(nil)
	m.integrator.EXPECT().EnsureValidToken(1).Return(nil, meliclient.ErrReconnectRequired)

	m.syncRunRepo.EXPECT().
		Close(gomock.Any()).
		DoAndReturn(func(run *domain.SyncRun) error {
			assert.Equal(t, domain.SyncRunStatusFailed, run.Status)
			assert.Equal(t, 0, run.RecordsSynced)
			assert.NotNil(t, run.ErrorMessage)
			return nil
		})

	stats, err := service.Sync(context.Background(), 1, false)

	assert.Nil(t, stats)
	assert.ErrorIs(t, err, meliclient.ErrReconnectRequired)
	assert.False(t, service.IsRunning(1))
}

func TestService_Sync_OrderFailureDoesNotBlockListings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newSyncService(ctrl)
	credential := &domain.MarketplaceCredential{UserID: 1, AccessToken: "token", IsActive: true}

	m.syncRunRepo.EXPECT().Create(gomock.Any()).Return(nil)
	m.integrator.EXPECT().EnsureValidToken(1).Return(credential, nil)

	m.integrator.EXPECT().
		FetchOrdersPage(credential, gomock.Any(), 0, 50).
		Return(nil, melidomain.Paging{}, errors.New("timeout na API"))

	m.integrator.EXPECT().
		FetchListingIDsPage(credential, 0, 50).
		Return([]string{"MLB1"}, melidomain.Paging{Total: 1, Offset: 0, Limit: 50}, nil)
	remoteListing := &domain.Listing{UserID: 1, ExternalItemID: "MLB1", SKU: "SKU-1"}
	m.integrator.EXPECT().FetchListing(credential, "MLB1").Return(remoteListing, nil)
	m.listingRepo.EXPECT().GetByExternalItemID(1, "MLB1").Return(nil, nil)
	m.productRepo.EXPECT().GetByExternalItemID(1, "MLB1").Return(nil, nil)
	m.productRepo.EXPECT().GetBySKU(1, "SKU-1").Return(nil, nil)
	m.productRepo.EXPECT().Insert(gomock.Any()).Return(nil)
	m.listingRepo.EXPECT().Insert(remoteListing).Return(nil)

	// Sem expectativa de UpdateLastSyncAt: o marco incremental não avança
	// quando os pedidos falharam

	m.syncRunRepo.EXPECT().
		Close(gomock.Any()).
		DoAndReturn(func(run *domain.SyncRun) error {
			assert.Equal(t, domain.SyncRunStatusCompleted, run.Status)
			assert.NotNil(t, run.ErrorMessage)
			return nil
		})

	stats, err := service.Sync(context.Background(), 1, false)

	assert.NoError(t, err)
	assert.Equal(t, 1, stats.ListingsInserted)
	assert.Equal(t, 1, stats.ProductsInserted)
	assert.Len(t, stats.PartialErrors, 1)
	assert.Contains(t, stats.PartialErrors[0], "pedidos:")
}

func TestService_Sync_BothResourcesFailingClosesRunAsFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newSyncService(ctrl)
	credential := &domain.MarketplaceCredential{UserID: 1, AccessToken: "token", IsActive: true}

	m.syncRunRepo.EXPECT().Create(gomock.Any()).Return(nil)
	m.integrator.EXPECT().EnsureValidToken(1).Return(credential, nil)

	m.integrator.EXPECT().
		FetchOrdersPage(credential, gomock.Any(), 0, 50).
		Return(nil, melidomain.Paging{}, errors.New("timeout na API"))
	m.integrator.EXPECT().
		FetchListingIDsPage(credential, 0, 50).
		Return(nil, melidomain.Paging{}, errors.New("timeout na API"))

	m.syncRunRepo.EXPECT().
		Close(gomock.Any()).
		DoAndReturn(func(run *domain.SyncRun) error {
			assert.Equal(t, domain.SyncRunStatusFailed, run.Status)
			return nil
		})

	stats, err := service.Sync(context.Background(), 1, false)

	assert.NoError(t, err)
	assert.Len(t, stats.PartialErrors, 2)
}

func TestService_Sync_ListingWithoutProductCreatesIt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newSyncService(ctrl)
	credential := &domain.MarketplaceCredential{UserID: 1, AccessToken: "token", IsActive: true}

	m.syncRunRepo.EXPECT().Create(gomock.Any()).Return(nil)
	m.integrator.EXPECT().EnsureValidToken(1).Return(credential, nil)

	// Conta sem pedidos recentes: todo o trabalho vem dos anúncios
	m.integrator.EXPECT().
		FetchOrdersPage(credential, gomock.Any(), 0, 50).
		Return([]*domain.Order{}, melidomain.Paging{Total: 0, Offset: 0, Limit: 50}, nil)

	m.integrator.EXPECT().
		FetchListingIDsPage(credential, 0, 50).
		Return([]string{"MLB9"}, melidomain.Paging{Total: 1, Offset: 0, Limit: 50}, nil)
	remoteListing := &domain.Listing{
		UserID:         1,
		ExternalItemID: "MLB9",
		SKU:            "SKU-9",
		Title:          "Produto 9",
		Status:         domain.ListingStatusActive,
	}
	m.integrator.EXPECT().FetchListing(credential, "MLB9").Return(remoteListing, nil)
	m.listingRepo.EXPECT().GetByExternalItemID(1, "MLB9").Return(nil, nil)

	m.productRepo.EXPECT().GetByExternalItemID(1, "MLB9").Return(nil, nil)
	m.productRepo.EXPECT().GetBySKU(1, "SKU-9").Return(nil, nil)
	m.productRepo.EXPECT().
		Insert(gomock.Any()).
		DoAndReturn(func(product *domain.Product) error {
			assert.Equal(t, "SKU-9", product.SKU)
			assert.Equal(t, "Produto 9", product.Name)
			assert.Equal(t, 0.0, product.UnitCost)
			if assert.NotNil(t, product.ExternalItemID) {
				assert.Equal(t, "MLB9", *product.ExternalItemID)
			}
			return nil
		})

	m.listingRepo.EXPECT().Insert(remoteListing).Return(nil)

	m.credRepo.EXPECT().UpdateLastSyncAt(1, gomock.Any()).Return(nil)

	m.syncRunRepo.EXPECT().
		Close(gomock.Any()).
		DoAndReturn(func(run *domain.SyncRun) error {
			assert.Equal(t, domain.SyncRunStatusCompleted, run.Status)
			assert.Equal(t, 1, run.RecordsSynced)
			return nil
		})

	stats, err := service.Sync(context.Background(), 1, true)

	assert.NoError(t, err)
	assert.Equal(t, 1, stats.ProductsInserted)
	assert.Equal(t, 1, stats.ListingsInserted)
	assert.Equal(t, 0, stats.ListingsUpdated)
	assert.Equal(t, 1, stats.RecordsSynced)
}

func TestService_Sync_LocalWriteFailureAbortsRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newSyncService(ctrl)
	credential := &domain.MarketplaceCredential{UserID: 1, AccessToken: "token", IsActive: true}

	m.syncRunRepo.EXPECT().Create(gomock.Any()).Return(nil)
	m.integrator.EXPECT().EnsureValidToken(1).Return(credential, nil)

	remoteOrder := &domain.Order{
		UserID:          1,
		ExternalOrderID: "2000001",
		Status:          domain.OrderStatusPaid,
		Items: []domain.OrderItem{
			{ExternalItemID: "MLB1", Quantity: 1, UnitPrice: 100},
		},
	}
	m.integrator.EXPECT().
		FetchOrdersPage(credential, gomock.Any(), 0, 50).
		Return([]*domain.Order{remoteOrder}, melidomain.Paging{Total: 1, Offset: 0, Limit: 50}, nil)

	m.orderRepo.EXPECT().GetByExternalOrderID(1, "2000001").Return(nil, nil)
	m.orderRepo.EXPECT().Insert(remoteOrder).Return(errors.New("conexão com o banco recusada"))

	// Sem expectativa de FetchListingIDsPage nem de UpdateLastSyncAt: a
	// falha de escrita local aborta a execução inteira
	m.syncRunRepo.EXPECT().
		Close(gomock.Any()).
		DoAndReturn(func(run *domain.SyncRun) error {
			assert.Equal(t, domain.SyncRunStatusFailed, run.Status)
			if assert.NotNil(t, run.ErrorMessage) {
				assert.Contains(t, *run.ErrorMessage, "pedidos:")
			}
			return nil
		})

	stats, err := service.Sync(context.Background(), 1, false)

	assert.Nil(t, stats)
	assert.ErrorIs(t, err, domain.ErrSyncPersistence)
	assert.False(t, service.IsRunning(1))
}

func TestService_Sync_PaginatesUntilLastPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newSyncService(ctrl)
	credential := &domain.MarketplaceCredential{UserID: 1, AccessToken: "token", IsActive: true}

	m.syncRunRepo.EXPECT().Create(gomock.Any()).Return(nil)
	m.integrator.EXPECT().EnsureValidToken(1).Return(credential, nil)

	gomock.InOrder(
		m.integrator.EXPECT().
			FetchOrdersPage(credential, gomock.Any(), 0, 50).
			Return([]*domain.Order{}, melidomain.Paging{Total: 60, Offset: 0, Limit: 50}, nil),
		m.integrator.EXPECT().
			FetchOrdersPage(credential, gomock.Any(), 50, 50).
			Return([]*domain.Order{}, melidomain.Paging{Total: 60, Offset: 50, Limit: 50}, nil),
	)

	m.integrator.EXPECT().
		FetchListingIDsPage(credential, 0, 50).
		Return([]string{}, melidomain.Paging{Total: 0, Offset: 0, Limit: 50}, nil)

	m.credRepo.EXPECT().UpdateLastSyncAt(1, gomock.Any()).Return(nil)
	m.syncRunRepo.EXPECT().Close(gomock.Any()).Return(nil)

	stats, err := service.Sync(context.Background(), 1, true)

	assert.NoError(t, err)
	assert.Equal(t, 0, stats.RecordsSynced)
}

func TestService_ListRuns(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newSyncService(ctrl)

	runs := []*domain.SyncRun{
		{ID: "run001", UserID: 1, Status: domain.SyncRunStatusCompleted},
	}
	m.syncRunRepo.EXPECT().ListByUser(1, 20).Return(runs, nil)

	result, err := service.ListRuns(1, 20)

	assert.NoError(t, err)
	assert.Equal(t, runs, result)
}
