package syncing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meli-seller-api/infrastructure/integrator/meli"
	"github.com/vfg2006/meli-seller-api/infrastructure/repository"
	"github.com/vfg2006/meli-seller-api/internal/config"
	"github.com/vfg2006/meli-seller-api/internal/domain"
)

// fullSyncWindowDays é a janela de busca da sincronização completa. A
// incremental parte do last_sync_at da credencial.
const fullSyncWindowDays = 90

// Synchronizer importa pedidos e anúncios do Mercado Livre para o espelho
// local. Uma sincronização por usuário por vez; invocações sobrepostas são
// rejeitadas com domain.ErrSyncAlreadyRunning.
type Synchronizer interface {
	Sync(ctx context.Context, userID int, fullSync bool) (*domain.SyncStats, error)
	ListRuns(userID int, limit int) ([]*domain.SyncRun, error)
	IsRunning(userID int) bool
}

type Service struct {
	cfg         *config.Config
	integrator  meli.Integrator
	orderRepo   repository.OrderRepository
	listingRepo repository.ListingRepository
	productRepo repository.ProductRepository
	syncRunRepo repository.SyncRunRepository
	credRepo    repository.CredentialRepository

	mu      sync.Mutex
	running map[int]bool
}

func NewService(
	cfg *config.Config,
	integrator meli.Integrator,
	orderRepo repository.OrderRepository,
	listingRepo repository.ListingRepository,
	productRepo repository.ProductRepository,
	syncRunRepo repository.SyncRunRepository,
	credRepo repository.CredentialRepository,
) Synchronizer {
	return &Service{
		cfg:         cfg,
		integrator:  integrator,
		orderRepo:   orderRepo,
		listingRepo: listingRepo,
		productRepo: productRepo,
		syncRunRepo: syncRunRepo,
		credRepo:    credRepo,
		running:     make(map[int]bool),
	}
}

func (s *Service) IsRunning(userID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running[userID]
}

func (s *Service) ListRuns(userID int, limit int) ([]*domain.SyncRun, error) {
	return s.syncRunRepo.ListByUser(userID, limit)
}

// Sync executa uma sincronização completa ou incremental para o usuário.
// Cada invocação aceita gera uma linha de auditoria em sync_runs. Falhas
// remotas em um recurso não impedem a sincronização do outro: o resultado
// parcial é registrado em SyncStats.PartialErrors. Falhas de escrita no
// espelho local abortam a execução inteira com domain.ErrSyncPersistence.
func (s *Service) Sync(ctx context.Context, userID int, fullSync bool) (*domain.SyncStats, error) {
	if !s.acquire(userID) {
		return nil, domain.ErrSyncAlreadyRunning
	}
	defer s.release(userID)

	startedAt := time.Now()

	run := &domain.SyncRun{
		UserID:    userID,
		StartedAt: startedAt,
		Status:    domain.SyncRunStatusRunning,
	}
	if err := s.syncRunRepo.Create(run); err != nil {
		return nil, err
	}

	credential, err := s.integrator.EnsureValidToken(userID)
	if err != nil {
		s.closeRun(run, domain.SyncRunStatusFailed, 0, err.Error())
		return nil, err
	}

	since := s.resolveSince(credential, fullSync, startedAt)

	logrus.WithFields(logrus.Fields{
		"user_id":   userID,
		"full_sync": fullSync,
		"since":     since.Format(time.RFC3339),
	}).Info("Iniciando sincronização com o Mercado Livre")

	stats := &domain.SyncStats{}

	ordersOK := true
	if err := s.syncOrders(ctx, credential, since, stats); err != nil {
		if errors.Is(err, domain.ErrSyncPersistence) {
			return nil, s.abortRun(run, stats, fmt.Sprintf("pedidos: %s", err.Error()), err)
		}
		ordersOK = false
		stats.PartialErrors = append(stats.PartialErrors, fmt.Sprintf("pedidos: %s", err.Error()))
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Error("Falha ao sincronizar pedidos")
	}

	listingsOK := true
	if err := s.syncListings(ctx, credential, stats); err != nil {
		if errors.Is(err, domain.ErrSyncPersistence) {
			return nil, s.abortRun(run, stats, fmt.Sprintf("anúncios: %s", err.Error()), err)
		}
		listingsOK = false
		stats.PartialErrors = append(stats.PartialErrors, fmt.Sprintf("anúncios: %s", err.Error()))
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Error("Falha ao sincronizar anúncios")
	}

	stats.RecordsSynced = syncedRecords(stats)

	// O marco incremental só avança quando os pedidos sincronizaram por
	// completo. Avançar após falha parcial perderia pedidos na próxima
	// execução.
	if ordersOK {
		if err := s.credRepo.UpdateLastSyncAt(userID, startedAt); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("Erro ao atualizar last_sync_at")
		}
	}

	status := domain.SyncRunStatusCompleted
	if !ordersOK && !listingsOK {
		status = domain.SyncRunStatusFailed
	}
	errorMessage := ""
	if len(stats.PartialErrors) > 0 {
		errorMessage = strings.Join(stats.PartialErrors, "; ")
	}
	s.closeRun(run, status, stats.RecordsSynced, errorMessage)

	logrus.WithFields(logrus.Fields{
		"user_id":        userID,
		"records_synced": stats.RecordsSynced,
		"partial_errors": len(stats.PartialErrors),
	}).Info("Sincronização concluída")

	return stats, nil
}

func (s *Service) acquire(userID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running[userID] {
		return false
	}
	s.running[userID] = true
	return true
}

func (s *Service) release(userID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.running, userID)
}

func (s *Service) resolveSince(credential *domain.MarketplaceCredential, fullSync bool, now time.Time) time.Time {
	if !fullSync && credential.LastSyncAt != nil {
		return *credential.LastSyncAt
	}
	return now.AddDate(0, 0, -fullSyncWindowDays)
}

// syncedRecords conta apenas inserções. Atualizações de registros já
// espelhados não entram no records_synced da auditoria.
func syncedRecords(stats *domain.SyncStats) int {
	return stats.OrdersInserted + stats.ItemsInserted + stats.ProductsInserted
}

// abortRun fecha a execução como falha após um erro de persistência e
// propaga o erro original
func (s *Service) abortRun(run *domain.SyncRun, stats *domain.SyncStats, message string, err error) error {
	stats.RecordsSynced = syncedRecords(stats)

	logrus.WithFields(logrus.Fields{
		"user_id": run.UserID,
		"error":   err.Error(),
	}).Error("Sincronização abortada por falha de persistência")

	s.closeRun(run, domain.SyncRunStatusFailed, stats.RecordsSynced, message)
	return err
}

func (s *Service) closeRun(run *domain.SyncRun, status domain.SyncRunStatus, records int, errorMessage string) {
	now := time.Now()
	run.FinishedAt = &now
	run.Status = status
	run.RecordsSynced = records
	if errorMessage != "" {
		run.ErrorMessage = &errorMessage
	}

	if err := s.syncRunRepo.Close(run); err != nil {
		logrus.WithFields(logrus.Fields{
			"sync_run_id": run.ID,
			"error":       err.Error(),
		}).Error("Erro ao fechar registro de sincronização")
	}
}

func (s *Service) syncOrders(ctx context.Context, credential *domain.MarketplaceCredential, since time.Time, stats *domain.SyncStats) error {
	offset := 0
	limit := s.cfg.MeliSync.PageSize

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		orders, paging, err := s.integrator.FetchOrdersPage(credential, since, offset, limit)
		if err != nil {
			return err
		}

		for _, order := range orders {
			if err := s.reconcileOrder(order, stats); err != nil {
				return err
			}
		}

		if !paging.HasMore() {
			return nil
		}
		offset += limit

		if err := s.pause(ctx); err != nil {
			return err
		}
	}
}

// persistErr marca um erro de repositório para que Sync aborte a execução
// em vez de registrá-lo como falha parcial
func persistErr(err error) error {
	return fmt.Errorf("%w: %s", domain.ErrSyncPersistence, err.Error())
}

// reconcileOrder insere ou atualiza um pedido pela chave natural
// (user_id, external_order_id). Re-sincronizar o mesmo período não duplica
// nada.
func (s *Service) reconcileOrder(order *domain.Order, stats *domain.SyncStats) error {
	existing, err := s.orderRepo.GetByExternalOrderID(order.UserID, order.ExternalOrderID)
	if err != nil {
		return persistErr(err)
	}

	if err := s.snapshotUnitCosts(order, stats); err != nil {
		return err
	}

	if existing == nil {
		if err := s.orderRepo.Insert(order); err != nil {
			return persistErr(err)
		}
		stats.OrdersInserted++

		for i := range order.Items {
			order.Items[i].OrderID = order.ID
			if err := s.orderRepo.InsertItem(&order.Items[i]); err != nil {
				return persistErr(err)
			}
			stats.ItemsInserted++
		}
		return nil
	}

	order.ID = existing.ID
	// Campos mantidos pelo vendedor não vêm do marketplace e não podem ser
	// zerados no re-sync
	order.FeeDiscountTotal = existing.FeeDiscountTotal
	order.AdsTotal = existing.AdsTotal
	order.PackagingCost = existing.PackagingCost
	order.ProcessingCost = existing.ProcessingCost
	if err := s.orderRepo.Update(order); err != nil {
		return persistErr(err)
	}
	stats.OrdersUpdated++

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = existing.ID

		existingItem, err := s.orderRepo.GetItemByExternalID(existing.ID, item.ExternalItemID)
		if err != nil {
			return persistErr(err)
		}

		if existingItem == nil {
			if err := s.orderRepo.InsertItem(item); err != nil {
				return persistErr(err)
			}
			stats.ItemsInserted++
			continue
		}

		item.ID = existingItem.ID
		// O custo já congelado no item não é sobrescrito pelo cadastro atual
		item.UnitCost = existingItem.UnitCost
		if err := s.orderRepo.UpdateItem(item); err != nil {
			return persistErr(err)
		}
	}

	return nil
}

// snapshotUnitCosts congela o custo unitário de cada item a partir do
// cadastro de produtos no momento da importação. SKUs desconhecidos geram um
// produto com custo zero para o vendedor preencher depois.
func (s *Service) snapshotUnitCosts(order *domain.Order, stats *domain.SyncStats) error {
	for i := range order.Items {
		item := &order.Items[i]
		if item.SKU == "" {
			continue
		}

		product, err := s.productRepo.GetBySKU(order.UserID, item.SKU)
		if err != nil {
			return persistErr(err)
		}

		if product == nil {
			externalItemID := item.ExternalItemID
			product = &domain.Product{
				UserID:         order.UserID,
				SKU:            item.SKU,
				Name:           item.ProductName,
				UnitCost:       0,
				ExternalItemID: &externalItemID,
			}
			if err := s.productRepo.Insert(product); err != nil {
				return persistErr(err)
			}
			stats.ProductsInserted++
		}

		item.UnitCost = product.UnitCost
	}

	return nil
}

func (s *Service) syncListings(ctx context.Context, credential *domain.MarketplaceCredential, stats *domain.SyncStats) error {
	offset := 0
	limit := s.cfg.MeliSync.PageSize

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		itemIDs, paging, err := s.integrator.FetchListingIDsPage(credential, offset, limit)
		if err != nil {
			return err
		}

		for _, itemID := range itemIDs {
			listing, err := s.integrator.FetchListing(credential, itemID)
			if err != nil {
				return err
			}

			if err := s.upsertListing(listing, stats); err != nil {
				return err
			}
		}

		if !paging.HasMore() {
			return nil
		}
		offset += limit

		if err := s.pause(ctx); err != nil {
			return err
		}
	}
}

// upsertListing espelha o anúncio e, na primeira vez que o item aparece,
// garante um produto no cadastro para o vendedor informar o custo
func (s *Service) upsertListing(listing *domain.Listing, stats *domain.SyncStats) error {
	existing, err := s.listingRepo.GetByExternalItemID(listing.UserID, listing.ExternalItemID)
	if err != nil {
		return persistErr(err)
	}

	if existing == nil {
		if err := s.ensureListingProduct(listing, stats); err != nil {
			return err
		}
		if err := s.listingRepo.Insert(listing); err != nil {
			return persistErr(err)
		}
		stats.ListingsInserted++
		return nil
	}

	listing.ID = existing.ID
	if err := s.listingRepo.Update(listing); err != nil {
		return persistErr(err)
	}
	stats.ListingsUpdated++
	return nil
}

// ensureListingProduct cria um produto com custo zero para um anúncio ainda
// sem correspondente no cadastro. Anúncios sem SKU usam o ID externo do item
// como chave.
func (s *Service) ensureListingProduct(listing *domain.Listing, stats *domain.SyncStats) error {
	product, err := s.productRepo.GetByExternalItemID(listing.UserID, listing.ExternalItemID)
	if err != nil {
		return persistErr(err)
	}
	if product != nil {
		return nil
	}

	sku := listing.SKU
	if sku == "" {
		sku = listing.ExternalItemID
	}

	product, err = s.productRepo.GetBySKU(listing.UserID, sku)
	if err != nil {
		return persistErr(err)
	}
	if product != nil {
		return nil
	}

	externalItemID := listing.ExternalItemID
	product = &domain.Product{
		UserID:         listing.UserID,
		SKU:            sku,
		Name:           listing.Title,
		UnitCost:       0,
		ExternalItemID: &externalItemID,
	}
	if err := s.productRepo.Insert(product); err != nil {
		return persistErr(err)
	}
	stats.ProductsInserted++

	return nil
}

// pause aplica a espera fixa entre páginas para respeitar os limites da API
func (s *Service) pause(ctx context.Context) error {
	delay := time.Duration(s.cfg.MeliSync.RequestDelayMillis) * time.Millisecond
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}
