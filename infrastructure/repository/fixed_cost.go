package repository

import (
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/meli-seller-api/infrastructure/database/postgres"
	"github.com/vfg2006/meli-seller-api/internal/domain"
	"github.com/vfg2006/meli-seller-api/pkg/utils"
)

const (
	fixedCostsTable = "fixed_costs fc"

	fixedCostColumns = `fc.id, fc.user_id, fc.name, fc.category,
		fc.amount_monthly, fc.active, fc.created_at, fc.updated_at`
)

type FixedCostRepository interface {
	ListActive(userID int) ([]*domain.FixedCost, error)
	List(userID int) ([]*domain.FixedCost, error)
	Create(cost *domain.FixedCost) error
	Update(cost *domain.FixedCost) error
	Delete(userID int, id string) error
}

type fixedCostRepository struct {
	conn *postgres.Connection
}

func NewFixedCostRepository(conn *postgres.Connection) FixedCostRepository {
	return &fixedCostRepository{
		conn: conn,
	}
}

func (r *fixedCostRepository) ListActive(userID int) ([]*domain.FixedCost, error) {
	return r.listBy(squirrel.Eq{"fc.user_id": userID, "fc.active": true})
}

func (r *fixedCostRepository) List(userID int) ([]*domain.FixedCost, error) {
	return r.listBy(squirrel.Eq{"fc.user_id": userID})
}

func (r *fixedCostRepository) listBy(where squirrel.Eq) ([]*domain.FixedCost, error) {
	query, args, err := squirrel.
		Select(fixedCostColumns).
		From(fixedCostsTable).
		Where(where).
		OrderBy("fc.name ASC").
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

	costs := make([]*domain.FixedCost, 0)
	for rows.Next() {
		cost := &domain.FixedCost{}
		err := rows.Scan(
			&cost.ID, &cost.UserID, &cost.Name, &cost.Category,
			&cost.AmountMonthly, &cost.Active, &cost.CreatedAt, &cost.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear custos fixos: %w", err)
		}
		costs = append(costs, cost)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return costs, nil
}

func (r *fixedCostRepository) Create(cost *domain.FixedCost) error {
	if cost.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return fmt.Errorf("erro ao gerar ID do custo fixo: %w", err)
		}
		cost.ID = id
	}

	query, args, err := squirrel.
		Insert("fixed_costs").
		Columns("id", "user_id", "name", "category", "amount_monthly", "active").
		Values(cost.ID, cost.UserID, cost.Name, cost.Category, cost.AmountMonthly, cost.Active).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao inserir custo fixo: %w", err)
	}

	return nil
}

func (r *fixedCostRepository) Update(cost *domain.FixedCost) error {
	query, args, err := squirrel.
		Update("fixed_costs").
		Set("name", cost.Name).
		Set("category", cost.Category).
		Set("amount_monthly", cost.AmountMonthly).
		Set("active", cost.Active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"user_id": cost.UserID, "id": cost.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar custo fixo: %w", err)
	}

	return nil
}

func (r *fixedCostRepository) Delete(userID int, id string) error {
	query, args, err := squirrel.
		Delete("fixed_costs").
		Where(squirrel.Eq{"user_id": userID, "id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao remover custo fixo: %w", err)
	}

	return nil
}
