package costing

import (
	"errors"

	"github.com/vfg2006/meli-seller-api/infrastructure/repository"
	"github.com/vfg2006/meli-seller-api/internal/domain"
)

var (
	ErrNameRequired   = errors.New("nome do custo fixo é obrigatório")
	ErrNegativeAmount = errors.New("valor mensal não pode ser negativo")
	ErrIDRequired     = errors.New("ID do custo fixo é obrigatório")
)

// Manager administra o cadastro de custos fixos mensais do vendedor
type Manager interface {
	List(userID int) ([]*domain.FixedCost, error)
	Create(cost *domain.FixedCost) (*domain.FixedCost, error)
	Update(cost *domain.FixedCost) (*domain.FixedCost, error)
	Delete(userID int, id string) error
}

type Service struct {
	fixedCostRepo repository.FixedCostRepository
}

func NewService(fixedCostRepo repository.FixedCostRepository) Manager {
	return &Service{
		fixedCostRepo: fixedCostRepo,
	}
}

func (s *Service) List(userID int) ([]*domain.FixedCost, error) {
	return s.fixedCostRepo.List(userID)
}

func (s *Service) Create(cost *domain.FixedCost) (*domain.FixedCost, error) {
	if err := validate(cost); err != nil {
		return nil, err
	}

	if err := s.fixedCostRepo.Create(cost); err != nil {
		return nil, err
	}

	return cost, nil
}

func (s *Service) Update(cost *domain.FixedCost) (*domain.FixedCost, error) {
	if cost.ID == "" {
		return nil, ErrIDRequired
	}
	if err := validate(cost); err != nil {
		return nil, err
	}

	if err := s.fixedCostRepo.Update(cost); err != nil {
		return nil, err
	}

	return cost, nil
}

func (s *Service) Delete(userID int, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	return s.fixedCostRepo.Delete(userID, id)
}

func validate(cost *domain.FixedCost) error {
	if cost.Name == "" {
		return ErrNameRequired
	}
	if cost.AmountMonthly < 0 {
		return ErrNegativeAmount
	}
	return nil
}
