package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/meli-seller-api/infrastructure/database/postgres"
	"github.com/vfg2006/meli-seller-api/internal/domain"
	"github.com/vfg2006/meli-seller-api/pkg/utils"
)

const (
	listingsTable = "listings l"

	listingColumns = `l.id, l.user_id, l.external_item_id, l.sku, l.title,
		l.status, l.price, l.available_quantity, l.sold_quantity, l.permalink,
		l.thumbnail_url, l.category_id, l.created_at, l.updated_at`
)

type ListingRepository interface {
	GetByExternalItemID(userID int, externalItemID string) (*domain.Listing, error)
	Insert(listing *domain.Listing) error
	Update(listing *domain.Listing) error
	ListByUser(userID int) ([]*domain.Listing, error)
}

type listingRepository struct {
	conn *postgres.Connection
}

func NewListingRepository(conn *postgres.Connection) ListingRepository {
	return &listingRepository{
		conn: conn,
	}
}

func (r *listingRepository) GetByExternalItemID(userID int, externalItemID string) (*domain.Listing, error) {
	query, args, err := squirrel.
		Select(listingColumns).
		From(listingsTable).
		Where(squirrel.Eq{"l.user_id": userID, "l.external_item_id": externalItemID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	listing, err := scanListing(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear anúncio: %w", err)
	}

	return listing, nil
}

func (r *listingRepository) Insert(listing *domain.Listing) error {
	if listing.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return fmt.Errorf("erro ao gerar ID do anúncio: %w", err)
		}
		listing.ID = id
	}

	query, args, err := squirrel.
		Insert("listings").
		Columns("id", "user_id", "external_item_id", "sku", "title", "status",
			"price", "available_quantity", "sold_quantity", "permalink",
			"thumbnail_url", "category_id").
		Values(listing.ID, listing.UserID, listing.ExternalItemID, listing.SKU, listing.Title,
			listing.Status, listing.Price, listing.AvailableQuantity, listing.SoldQuantity,
			listing.Permalink, listing.ThumbnailURL, listing.CategoryID).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao inserir anúncio: %w", err)
	}

	return nil
}

// Update atualiza os campos espelhados do marketplace (o remoto é autoritativo)
func (r *listingRepository) Update(listing *domain.Listing) error {
	query, args, err := squirrel.
		Update("listings").
		Set("sku", listing.SKU).
		Set("title", listing.Title).
		Set("status", listing.Status).
		Set("price", listing.Price).
		Set("available_quantity", listing.AvailableQuantity).
		Set("sold_quantity", listing.SoldQuantity).
		Set("permalink", listing.Permalink).
		Set("thumbnail_url", listing.ThumbnailURL).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": listing.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar anúncio: %w", err)
	}

	return nil
}

func (r *listingRepository) ListByUser(userID int) ([]*domain.Listing, error) {
	query, args, err := squirrel.
		Select(listingColumns).
		From(listingsTable).
		Where(squirrel.Eq{"l.user_id": userID}).
		OrderBy("l.title ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	listings := make([]*domain.Listing, 0)
	for rows.Next() {
		listing := &domain.Listing{}
		err := rows.Scan(
			&listing.ID, &listing.UserID, &listing.ExternalItemID, &listing.SKU, &listing.Title,
			&listing.Status, &listing.Price, &listing.AvailableQuantity, &listing.SoldQuantity,
			&listing.Permalink, &listing.ThumbnailURL, &listing.CategoryID,
			&listing.CreatedAt, &listing.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear anúncios: %w", err)
		}
		listings = append(listings, listing)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return listings, nil
}

func scanListing(row *sql.Row) (*domain.Listing, error) {
	listing := &domain.Listing{}
	err := row.Scan(
		&listing.ID, &listing.UserID, &listing.ExternalItemID, &listing.SKU, &listing.Title,
		&listing.Status, &listing.Price, &listing.AvailableQuantity, &listing.SoldQuantity,
		&listing.Permalink, &listing.ThumbnailURL, &listing.CategoryID,
		&listing.CreatedAt, &listing.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return listing, nil
}
