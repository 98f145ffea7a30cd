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
	productsTable = "products p"

	productColumns = `p.id, p.user_id, p.sku, p.name, p.unit_cost,
		p.external_item_id, p.created_at, p.updated_at`
)

type ProductRepository interface {
	GetBySKU(userID int, sku string) (*domain.Product, error)
	GetByExternalItemID(userID int, externalItemID string) (*domain.Product, error)
	Insert(product *domain.Product) error
	UpdateCost(userID int, id string, unitCost float64) error
	List(userID int) ([]*domain.Product, error)
}

type productRepository struct {
	conn *postgres.Connection
}

func NewProductRepository(conn *postgres.Connection) ProductRepository {
	return &productRepository{
		conn: conn,
	}
}

func (r *productRepository) GetBySKU(userID int, sku string) (*domain.Product, error) {
	return r.getOneBy(squirrel.Eq{"p.user_id": userID, "p.sku": sku})
}

func (r *productRepository) GetByExternalItemID(userID int, externalItemID string) (*domain.Product, error) {
	return r.getOneBy(squirrel.Eq{"p.user_id": userID, "p.external_item_id": externalItemID})
}

func (r *productRepository) getOneBy(where squirrel.Eq) (*domain.Product, error) {
	query, args, err := squirrel.
		Select(productColumns).
		From(productsTable).
		Where(where).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	product := &domain.Product{}
	err = row.Scan(
		&product.ID, &product.UserID, &product.SKU, &product.Name, &product.UnitCost,
		&product.ExternalItemID, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear produto: %w", err)
	}

	return product, nil
}

func (r *productRepository) Insert(product *domain.Product) error {
	if product.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return fmt.Errorf("erro ao gerar ID do produto: %w", err)
		}
		product.ID = id
	}

	query, args, err := squirrel.
		Insert("products").
		Columns("id", "user_id", "sku", "name", "unit_cost", "external_item_id").
		Values(product.ID, product.UserID, product.SKU, product.Name, product.UnitCost, product.ExternalItemID).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao inserir produto: %w", err)
	}

	return nil
}

func (r *productRepository) UpdateCost(userID int, id string, unitCost float64) error {
	query, args, err := squirrel.
		Update("products").
		Set("unit_cost", unitCost).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"user_id": userID, "id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar custo do produto: %w", err)
	}

	return nil
}

func (r *productRepository) List(userID int) ([]*domain.Product, error) {
	query, args, err := squirrel.
		Select(productColumns).
		From(productsTable).
		Where(squirrel.Eq{"p.user_id": userID}).
		OrderBy("p.name ASC").
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

	products := make([]*domain.Product, 0)
	for rows.Next() {
		product := &domain.Product{}
		err := rows.Scan(
			&product.ID, &product.UserID, &product.SKU, &product.Name, &product.UnitCost,
			&product.ExternalItemID, &product.CreatedAt, &product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear produtos: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return products, nil
}
