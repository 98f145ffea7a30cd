package meli

import (
	"strconv"
	"time"

	melidomain "github.com/vfg2006/meli-seller-api/infrastructure/integrator/meli/domain"
	"github.com/vfg2006/meli-seller-api/infrastructure/integrator/meli/meliclient"
	"github.com/vfg2006/meli-seller-api/internal/config"
	"github.com/vfg2006/meli-seller-api/internal/domain"
)

// Integrator é a fachada do Mercado Livre consumida pelos casos de uso.
// Devolve tipos do domínio interno; os tipos da API remota não vazam daqui.
type Integrator interface {
	EnsureValidToken(userID int) (*domain.MarketplaceCredential, error)
	ExchangeCode(userID int, code string) (*domain.MarketplaceCredential, error)
	Disconnect(userID int) error
	FetchOrdersPage(credential *domain.MarketplaceCredential, from time.Time, offset, limit int) ([]*domain.Order, melidomain.Paging, error)
	FetchListingIDsPage(credential *domain.MarketplaceCredential, offset, limit int) ([]string, melidomain.Paging, error)
	FetchListing(credential *domain.MarketplaceCredential, externalItemID string) (*domain.Listing, error)
	UpdateListing(credential *domain.MarketplaceCredential, externalItemID string, update melidomain.ItemUpdate) (*domain.Listing, error)
}

type MeliIntegrator struct {
	cfg          *config.Config
	Client       meliclient.Client
	TokenManager *meliclient.TokenManager
}

func New(cfg *config.Config, client meliclient.Client, tokenManager *meliclient.TokenManager) Integrator {
	return &MeliIntegrator{
		cfg:          cfg,
		Client:       client,
		TokenManager: tokenManager,
	}
}

func (s *MeliIntegrator) EnsureValidToken(userID int) (*domain.MarketplaceCredential, error) {
	return s.TokenManager.EnsureValidToken(userID)
}

func (s *MeliIntegrator) ExchangeCode(userID int, code string) (*domain.MarketplaceCredential, error) {
	return s.TokenManager.ExchangeCode(userID, code)
}

func (s *MeliIntegrator) Disconnect(userID int) error {
	return s.TokenManager.Disconnect(userID)
}

func (s *MeliIntegrator) FetchOrdersPage(credential *domain.MarketplaceCredential, from time.Time, offset, limit int) ([]*domain.Order, melidomain.Paging, error) {
	page, err := s.Client.SearchOrders(credential.AccessToken, credential.ExternalAccountID, from, offset, limit)
	if err != nil {
		return nil, melidomain.Paging{}, err
	}

	orders := make([]*domain.Order, 0, len(page.Results))
	for _, remote := range page.Results {
		orders = append(orders, convertOrder(credential.UserID, remote))
	}

	return orders, page.Paging, nil
}

func (s *MeliIntegrator) FetchListingIDsPage(credential *domain.MarketplaceCredential, offset, limit int) ([]string, melidomain.Paging, error) {
	page, err := s.Client.SearchItemIDs(credential.AccessToken, credential.ExternalAccountID, offset, limit)
	if err != nil {
		return nil, melidomain.Paging{}, err
	}

	return page.Results, page.Paging, nil
}

func (s *MeliIntegrator) FetchListing(credential *domain.MarketplaceCredential, externalItemID string) (*domain.Listing, error) {
	remote, err := s.Client.GetItem(credential.AccessToken, externalItemID)
	if err != nil {
		return nil, err
	}

	return convertListing(credential.UserID, remote), nil
}

func (s *MeliIntegrator) UpdateListing(credential *domain.MarketplaceCredential, externalItemID string, update melidomain.ItemUpdate) (*domain.Listing, error) {
	remote, err := s.Client.UpdateItem(credential.AccessToken, externalItemID, update)
	if err != nil {
		return nil, err
	}

	return convertListing(credential.UserID, remote), nil
}

// convertOrder traduz um pedido remoto para o domínio interno. Campos que o
// marketplace não informa (publicidade, embalagem, processamento) ficam
// zerados e podem ser preenchidos depois pelo vendedor.
func convertOrder(userID int, remote melidomain.RemoteOrder) *domain.Order {
	order := &domain.Order{
		UserID:          userID,
		ExternalOrderID: strconv.FormatInt(remote.ID, 10),
		Date:            remote.DateCreated,
		Status:          domain.OrderStatus(remote.Status),
		GrossTotal:      remote.TotalAmount,
		DiscountsTotal:  remote.Coupon.Amount,
		ShippingTotal:   remote.Shipping.Cost,
		ShippingSeller:  remote.Shipping.SellerCost,
		TaxesTotal:      remote.Taxes.Amount,
	}

	for _, remoteItem := range remote.OrderItems {
		unitDiscount := 0.0
		if remoteItem.FullUnitPrice > remoteItem.UnitPrice {
			unitDiscount = remoteItem.FullUnitPrice - remoteItem.UnitPrice
		}

		order.FeesTotal += remoteItem.SaleFee * float64(remoteItem.Quantity)

		order.Items = append(order.Items, domain.OrderItem{
			ExternalItemID: remoteItem.Item.ID,
			SKU:            remoteItem.Item.SellerSKU,
			ProductName:    remoteItem.Item.Title,
			Quantity:       remoteItem.Quantity,
			UnitPrice:      remoteItem.UnitPrice,
			UnitDiscount:   unitDiscount,
		})
	}

	return order
}

func convertListing(userID int, remote *melidomain.RemoteListing) *domain.Listing {
	return &domain.Listing{
		UserID:            userID,
		ExternalItemID:    remote.ID,
		SKU:               remote.SellerCustomField,
		Title:             remote.Title,
		Status:            domain.ListingStatus(remote.Status),
		Price:             remote.Price,
		AvailableQuantity: remote.AvailableQuantity,
		SoldQuantity:      remote.SoldQuantity,
		Permalink:         remote.Permalink,
		ThumbnailURL:      remote.Thumbnail,
		CategoryID:        remote.CategoryID,
	}
}
