package costing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/meli-seller-api/infrastructure/repository/mocks"
	"github.com/vfg2006/meli-seller-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockFixedCostRepository(ctrl)
	service := NewService(mockRepo)

	tests := []struct {
		name    string
		cost    *domain.FixedCost
		setup   func()
		wantErr error
	}{
		{
			name: "Custo válido é persistido",
			cost: &domain.FixedCost{UserID: 1, Name: "Aluguel", AmountMonthly: 1200, Active: true},
			setup: func() {
				mockRepo.EXPECT().Create(gomock.Any()).Return(nil)
			},
		},
		{
			name:    "Nome vazio é rejeitado",
			cost:    &domain.FixedCost{UserID: 1, AmountMonthly: 100},
			setup:   func() {},
			wantErr: ErrNameRequired,
		},
		{
			name:    "Valor negativo é rejeitado",
			cost:    &domain.FixedCost{UserID: 1, Name: "Contador", AmountMonthly: -50},
			setup:   func() {},
			wantErr: ErrNegativeAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			result, err := service.Create(tt.cost)

			if tt.wantErr != nil {
				assert.Nil(t, result)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.cost, result)
		})
	}
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockFixedCostRepository(ctrl)
	service := NewService(mockRepo)

	t.Run("Atualização sem ID é rejeitada", func(t *testing.T) {
		result, err := service.Update(&domain.FixedCost{UserID: 1, Name: "Aluguel"})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrIDRequired)
	})

	t.Run("Atualização válida é persistida", func(t *testing.T) {
		cost := &domain.FixedCost{ID: "fxc001", UserID: 1, Name: "Aluguel", AmountMonthly: 1500}
		mockRepo.EXPECT().Update(cost).Return(nil)

		result, err := service.Update(cost)

		assert.NoError(t, err)
		assert.Equal(t, cost, result)
	})
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockFixedCostRepository(ctrl)
	service := NewService(mockRepo)

	t.Run("Remoção sem ID é rejeitada", func(t *testing.T) {
		assert.ErrorIs(t, service.Delete(1, ""), ErrIDRequired)
	})

	t.Run("Remoção delega ao repositório com o escopo do usuário", func(t *testing.T) {
		mockRepo.EXPECT().Delete(1, "fxc001").Return(nil)

		assert.NoError(t, service.Delete(1, "fxc001"))
	})
}
