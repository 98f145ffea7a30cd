package listing

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meli-seller-api/infrastructure/integrator/meli"
	melidomain "github.com/vfg2006/meli-seller-api/infrastructure/integrator/meli/domain"
	"github.com/vfg2006/meli-seller-api/infrastructure/repository"
	"github.com/vfg2006/meli-seller-api/internal/config"
	"github.com/vfg2006/meli-seller-api/internal/domain"
)

var (
	ErrUnknownAction = errors.New("ação desconhecida")
	ErrNoItems       = errors.New("nenhum anúncio informado")
)

// ActionParams são os parâmetros das ações que precisam de valor. Price é
// obrigatório em update_price e Stock em update_stock.
type ActionParams struct {
	Price *float64
	Stock *int
}

// Executor aplica ações em lote sobre anúncios remotos. O processamento é
// sequencial com pausa fixa entre itens; sucesso parcial é um desfecho
// normal, reportado item a item.
type Executor interface {
	ApplyAction(ctx context.Context, userID int, action domain.ListingAction, itemIDs []string, params ActionParams) ([]domain.ListingActionResult, error)
	ListByUser(userID int) ([]*domain.Listing, error)
}

type Service struct {
	cfg         *config.Config
	integrator  meli.Integrator
	listingRepo repository.ListingRepository
}

func NewService(cfg *config.Config, integrator meli.Integrator, listingRepo repository.ListingRepository) Executor {
	return &Service{
		cfg:         cfg,
		integrator:  integrator,
		listingRepo: listingRepo,
	}
}

func (s *Service) ListByUser(userID int) ([]*domain.Listing, error) {
	return s.listingRepo.ListByUser(userID)
}

// ApplyAction executa a ação sobre cada anúncio, na ordem recebida. Erros de
// validação local falham o item sem chamada remota; erros remotos falham só
// o item. Um token irrecuperável aborta o lote inteiro antes do primeiro
// item.
func (s *Service) ApplyAction(ctx context.Context, userID int, action domain.ListingAction, itemIDs []string, params ActionParams) ([]domain.ListingActionResult, error) {
	if !action.Valid() {
		return nil, ErrUnknownAction
	}
	if len(itemIDs) == 0 {
		return nil, ErrNoItems
	}

	credential, err := s.integrator.EnsureValidToken(userID)
	if err != nil {
		return nil, err
	}

	results := make([]domain.ListingActionResult, 0, len(itemIDs))
	for i, itemID := range itemIDs {
		if i > 0 {
			if err := s.pause(ctx); err != nil {
				return results, err
			}
		}

		result := s.applyToItem(credential, action, itemID, params)
		results = append(results, result)
	}

	return results, nil
}

func (s *Service) applyToItem(credential *domain.MarketplaceCredential, action domain.ListingAction, itemID string, params ActionParams) domain.ListingActionResult {
	update, err := buildUpdate(action, params)
	if err != nil {
		return domain.ListingActionResult{ItemID: itemID, Success: false, Error: err.Error()}
	}

	if _, err := s.integrator.UpdateListing(credential, itemID, update); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": credential.UserID,
			"item_id": itemID,
			"action":  string(action),
			"error":   err.Error(),
		}).Warn("Falha ao aplicar ação no anúncio")
		return domain.ListingActionResult{ItemID: itemID, Success: false, Error: err.Error()}
	}

	// Após a mutação, o estado canônico é rebuscado e espelhado localmente
	listing, err := s.integrator.FetchListing(credential, itemID)
	if err != nil {
		return domain.ListingActionResult{ItemID: itemID, Success: false, Error: err.Error()}
	}

	if err := s.upsertMirror(listing); err != nil {
		return domain.ListingActionResult{ItemID: itemID, Success: false, Error: err.Error()}
	}

	return domain.ListingActionResult{ItemID: itemID, Success: true}
}

// buildUpdate valida os parâmetros e monta o corpo da mutação remota
func buildUpdate(action domain.ListingAction, params ActionParams) (melidomain.ItemUpdate, error) {
	update := melidomain.ItemUpdate{}

	switch action {
	case domain.ListingActionPause:
		status := string(domain.ListingStatusPaused)
		update.Status = &status
	case domain.ListingActionActivate:
		status := string(domain.ListingStatusActive)
		update.Status = &status
	case domain.ListingActionClose:
		status := string(domain.ListingStatusClosed)
		update.Status = &status
	case domain.ListingActionUpdatePrice:
		if params.Price == nil || *params.Price <= 0 {
			return update, errors.New("preço deve ser maior que zero")
		}
		update.Price = params.Price
	case domain.ListingActionUpdateStock:
		if params.Stock == nil || *params.Stock < 0 {
			return update, errors.New("estoque não pode ser negativo")
		}
		update.AvailableQuantity = params.Stock
	default:
		return update, ErrUnknownAction
	}

	return update, nil
}

func (s *Service) upsertMirror(listing *domain.Listing) error {
	existing, err := s.listingRepo.GetByExternalItemID(listing.UserID, listing.ExternalItemID)
	if err != nil {
		return err
	}

	if existing == nil {
		return s.listingRepo.Insert(listing)
	}

	listing.ID = existing.ID
	return s.listingRepo.Update(listing)
}

func (s *Service) pause(ctx context.Context) error {
	delay := time.Duration(s.cfg.ListingActions.ItemDelayMillis) * time.Millisecond
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}
