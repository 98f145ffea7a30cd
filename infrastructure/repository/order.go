package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/meli-seller-api/infrastructure/database/postgres"
	"github.com/vfg2006/meli-seller-api/internal/domain"
	"github.com/vfg2006/meli-seller-api/pkg/utils"
)

const (
	ordersTable     = "orders o"
	orderItemsTable = "order_items oi"

	orderColumns = `o.id, o.user_id, o.external_order_id, o.date, o.status,
		o.gross_total, o.discounts_total, o.shipping_total, o.shipping_seller,
		o.fees_total, o.fee_discount_total, o.taxes_total, o.ads_total,
		o.packaging_cost, o.processing_cost, o.created_at, o.updated_at`

	orderItemColumns = `oi.id, oi.order_id, oi.external_item_id, oi.sku,
		oi.product_name, oi.quantity, oi.unit_price, oi.unit_discount, oi.unit_cost`
)

type OrderRepository interface {
	GetByID(userID int, id string) (*domain.Order, error)
	GetByExternalOrderID(userID int, externalOrderID string) (*domain.Order, error)
	Insert(order *domain.Order) error
	Update(order *domain.Order) error
	GetItemByExternalID(orderID, externalItemID string) (*domain.OrderItem, error)
	InsertItem(item *domain.OrderItem) error
	UpdateItem(item *domain.OrderItem) error
	ListByPeriod(userID int, startDate, endDate time.Time) ([]*domain.Order, error)
}

type orderRepository struct {
	conn *postgres.Connection
}

func NewOrderRepository(conn *postgres.Connection) OrderRepository {
	return &orderRepository{
		conn: conn,
	}
}

func (r *orderRepository) GetByID(userID int, id string) (*domain.Order, error) {
	return r.getOneBy(squirrel.Eq{"o.user_id": userID, "o.id": id})
}

func (r *orderRepository) GetByExternalOrderID(userID int, externalOrderID string) (*domain.Order, error) {
	return r.getOneBy(squirrel.Eq{"o.user_id": userID, "o.external_order_id": externalOrderID})
}

func (r *orderRepository) getOneBy(where squirrel.Eq) (*domain.Order, error) {
	query, args, err := squirrel.
		Select(orderColumns).
		From(ordersTable).
		Where(where).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	order, err := scanOrder(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear pedido: %w", err)
	}

	items, err := r.listItems(order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

func (r *orderRepository) Insert(order *domain.Order) error {
	if order.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return fmt.Errorf("erro ao gerar ID do pedido: %w", err)
		}
		order.ID = id
	}

	query, args, err := squirrel.
		Insert("orders").
		Columns(
			"id", "user_id", "external_order_id", "date", "status",
			"gross_total", "discounts_total", "shipping_total", "shipping_seller",
			"fees_total", "fee_discount_total", "taxes_total", "ads_total",
			"packaging_cost", "processing_cost",
		).
		Values(
			order.ID, order.UserID, order.ExternalOrderID, order.Date, order.Status,
			order.GrossTotal, order.DiscountsTotal, order.ShippingTotal, order.ShippingSeller,
			order.FeesTotal, order.FeeDiscountTotal, order.TaxesTotal, order.AdsTotal,
			order.PackagingCost, order.ProcessingCost,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao inserir pedido: %w", err)
	}

	return nil
}

// Update atualiza apenas os campos mutáveis vindos do marketplace. Os campos
// mantidos pelo vendedor (fee_discount_total, ads_total, packaging_cost,
// processing_cost) ficam fora do conjunto de escrita.
func (r *orderRepository) Update(order *domain.Order) error {
	query, args, err := squirrel.
		Update("orders").
		Set("status", order.Status).
		Set("gross_total", order.GrossTotal).
		Set("discounts_total", order.DiscountsTotal).
		Set("shipping_total", order.ShippingTotal).
		Set("shipping_seller", order.ShippingSeller).
		Set("fees_total", order.FeesTotal).
		Set("taxes_total", order.TaxesTotal).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": order.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar pedido: %w", err)
	}

	return nil
}

func (r *orderRepository) GetItemByExternalID(orderID, externalItemID string) (*domain.OrderItem, error) {
	query, args, err := squirrel.
		Select(orderItemColumns).
		From(orderItemsTable).
		Where(squirrel.Eq{"oi.order_id": orderID, "oi.external_item_id": externalItemID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	item := &domain.OrderItem{}
	err = row.Scan(
		&item.ID, &item.OrderID, &item.ExternalItemID, &item.SKU,
		&item.ProductName, &item.Quantity, &item.UnitPrice, &item.UnitDiscount, &item.UnitCost,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear item do pedido: %w", err)
	}

	return item, nil
}

func (r *orderRepository) InsertItem(item *domain.OrderItem) error {
	if item.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return fmt.Errorf("erro ao gerar ID do item: %w", err)
		}
		item.ID = id
	}

	query, args, err := squirrel.
		Insert("order_items").
		Columns("id", "order_id", "external_item_id", "sku", "product_name",
			"quantity", "unit_price", "unit_discount", "unit_cost").
		Values(item.ID, item.OrderID, item.ExternalItemID, item.SKU, item.ProductName,
			item.Quantity, item.UnitPrice, item.UnitDiscount, item.UnitCost).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao inserir item do pedido: %w", err)
	}

	return nil
}

func (r *orderRepository) UpdateItem(item *domain.OrderItem) error {
	query, args, err := squirrel.
		Update("order_items").
		Set("sku", item.SKU).
		Set("product_name", item.ProductName).
		Set("quantity", item.Quantity).
		Set("unit_price", item.UnitPrice).
		Set("unit_discount", item.UnitDiscount).
		Set("unit_cost", item.UnitCost).
		Where(squirrel.Eq{"id": item.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar item do pedido: %w", err)
	}

	return nil
}

func (r *orderRepository) ListByPeriod(userID int, startDate, endDate time.Time) ([]*domain.Order, error) {
	query, args, err := squirrel.
		Select(orderColumns).
		From(ordersTable).
		Where(squirrel.Eq{"o.user_id": userID}).
		Where(squirrel.GtOrEq{"o.date": startDate}).
		Where(squirrel.LtOrEq{"o.date": endDate}).
		OrderBy("o.date DESC").
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

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrderRows(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear pedidos: %w", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	for _, order := range orders {
		items, err := r.listItems(order.ID)
		if err != nil {
			return nil, err
		}
		order.Items = items
	}

	return orders, nil
}

func (r *orderRepository) listItems(orderID string) ([]domain.OrderItem, error) {
	query, args, err := squirrel.
		Select(orderItemColumns).
		From(orderItemsTable).
		Where(squirrel.Eq{"oi.order_id": orderID}).
		OrderBy("oi.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar itens do pedido: %w", err)
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		item := domain.OrderItem{}
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.ExternalItemID, &item.SKU,
			&item.ProductName, &item.Quantity, &item.UnitPrice, &item.UnitDiscount, &item.UnitCost,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear item do pedido: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return items, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrderFrom(s rowScanner) (*domain.Order, error) {
	order := &domain.Order{}
	err := s.Scan(
		&order.ID, &order.UserID, &order.ExternalOrderID, &order.Date, &order.Status,
		&order.GrossTotal, &order.DiscountsTotal, &order.ShippingTotal, &order.ShippingSeller,
		&order.FeesTotal, &order.FeeDiscountTotal, &order.TaxesTotal, &order.AdsTotal,
		&order.PackagingCost, &order.ProcessingCost, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func scanOrder(row *sql.Row) (*domain.Order, error) {
	return scanOrderFrom(row)
}

func scanOrderRows(rows *sql.Rows) (*domain.Order, error) {
	return scanOrderFrom(rows)
}
