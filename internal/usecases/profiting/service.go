package profiting

import (
	"errors"
	"time"

	"github.com/vfg2006/meli-seller-api/infrastructure/repository"
	"github.com/vfg2006/meli-seller-api/internal/domain"
	"github.com/vfg2006/meli-seller-api/pkg/utils"
)

// ErrOrderNotFound indica que o pedido não existe para o usuário
var ErrOrderNotFound = errors.New("pedido não encontrado")

// ComputeBreakdown calcula o breakdown de lucro de um pedido. A receita é
// derivada dos itens, nunca do gross_total do pedido. As somas intermediárias
// usam precisão total; cada campo é arredondado para 2 casas apenas na
// emissão. ordersInPeriod é o denominador compartilhado do rateio de custos
// fixos; com zero pedidos no período o rateio é 0.
func ComputeBreakdown(order *domain.Order, fixedCosts []*domain.FixedCost, ordersInPeriod int) *domain.ProfitBreakdown {
	var grossRevenue, itemDiscounts, cogs float64
	for _, item := range order.Items {
		qty := float64(item.Quantity)
		grossRevenue += item.UnitPrice * qty
		itemDiscounts += item.UnitDiscount * qty
		cogs += item.UnitCost * qty
	}

	discounts := order.DiscountsTotal + itemDiscounts
	netRevenue := grossRevenue - discounts

	mlFeesGross := order.FeesTotal
	mlFeeDiscount := order.FeeDiscountTotal
	mlFeesNet := mlFeesGross - mlFeeDiscount

	// Frete pago pelo comprador fica inteiramente fora do cálculo
	shippingSeller := order.ShippingSeller

	variableCosts := order.PackagingCost + order.ProcessingCost + order.AdsTotal + order.TaxesTotal

	fixedCostsAllocation := FixedCostAllocation(fixedCosts, ordersInPeriod)

	netProfit := netRevenue - cogs - mlFeesNet - shippingSeller - variableCosts - fixedCostsAllocation

	netMarginPercent := 0.0
	if netRevenue > 0 {
		netMarginPercent = (netProfit / netRevenue) * 100
	}

	return &domain.ProfitBreakdown{
		GrossRevenue:         utils.RoundWithTwoDecimalPlace(grossRevenue),
		Discounts:            utils.RoundWithTwoDecimalPlace(discounts),
		NetRevenue:           utils.RoundWithTwoDecimalPlace(netRevenue),
		COGS:                 utils.RoundWithTwoDecimalPlace(cogs),
		MLFeesGross:          utils.RoundWithTwoDecimalPlace(mlFeesGross),
		MLFeeDiscount:        utils.RoundWithTwoDecimalPlace(mlFeeDiscount),
		MLFeesNet:            utils.RoundWithTwoDecimalPlace(mlFeesNet),
		ShippingSeller:       utils.RoundWithTwoDecimalPlace(shippingSeller),
		PackagingCost:        utils.RoundWithTwoDecimalPlace(order.PackagingCost),
		ProcessingCost:       utils.RoundWithTwoDecimalPlace(order.ProcessingCost),
		AdsCost:              utils.RoundWithTwoDecimalPlace(order.AdsTotal),
		Taxes:                utils.RoundWithTwoDecimalPlace(order.TaxesTotal),
		VariableCosts:        utils.RoundWithTwoDecimalPlace(variableCosts),
		FixedCostsAllocation: utils.RoundWithTwoDecimalPlace(fixedCostsAllocation),
		NetProfit:            utils.RoundWithTwoDecimalPlace(netProfit),
		NetMarginPercent:     utils.RoundWithTwoDecimalPlace(netMarginPercent),
	}
}

// FixedCostAllocation rateia os custos fixos ativos igualmente entre os
// pedidos válidos do período, não por participação na receita.
func FixedCostAllocation(fixedCosts []*domain.FixedCost, ordersInPeriod int) float64 {
	if ordersInPeriod <= 0 {
		return 0
	}

	var total float64
	for _, fc := range fixedCosts {
		if fc.Active {
			total += fc.AmountMonthly
		}
	}

	return total / float64(ordersInPeriod)
}

// Aggregate consolida os breakdowns de um conjunto de pedidos. Pedidos
// cancelados/devolvidos ficam fora de todos os totais financeiros e do
// denominador do rateio, mas são contados em Returns/Cancellations sobre o
// conjunto completo. O denominador é único para toda a chamada.
func Aggregate(orders []*domain.Order, fixedCosts []*domain.FixedCost) *domain.AggregateResult {
	var returns, cancellations int

	valid := make([]*domain.Order, 0, len(orders))
	for _, order := range orders {
		switch order.Status {
		case domain.OrderStatusReturned:
			returns++
		case domain.OrderStatusCancelled:
			cancellations++
		default:
			valid = append(valid, order)
		}
	}

	ordersInPeriod := len(valid)

	totals := domain.ProfitBreakdown{}
	itemsSold := 0

	for _, order := range valid {
		b := ComputeBreakdown(order, fixedCosts, ordersInPeriod)

		totals.GrossRevenue += b.GrossRevenue
		totals.Discounts += b.Discounts
		totals.NetRevenue += b.NetRevenue
		totals.COGS += b.COGS
		totals.MLFeesGross += b.MLFeesGross
		totals.MLFeeDiscount += b.MLFeeDiscount
		totals.MLFeesNet += b.MLFeesNet
		totals.ShippingSeller += b.ShippingSeller
		totals.PackagingCost += b.PackagingCost
		totals.ProcessingCost += b.ProcessingCost
		totals.AdsCost += b.AdsCost
		totals.Taxes += b.Taxes
		totals.VariableCosts += b.VariableCosts
		totals.FixedCostsAllocation += b.FixedCostsAllocation
		totals.NetProfit += b.NetProfit

		for _, item := range order.Items {
			itemsSold += item.Quantity
		}
	}

	totals.GrossRevenue = utils.RoundWithTwoDecimalPlace(totals.GrossRevenue)
	totals.Discounts = utils.RoundWithTwoDecimalPlace(totals.Discounts)
	totals.NetRevenue = utils.RoundWithTwoDecimalPlace(totals.NetRevenue)
	totals.COGS = utils.RoundWithTwoDecimalPlace(totals.COGS)
	totals.MLFeesGross = utils.RoundWithTwoDecimalPlace(totals.MLFeesGross)
	totals.MLFeeDiscount = utils.RoundWithTwoDecimalPlace(totals.MLFeeDiscount)
	totals.MLFeesNet = utils.RoundWithTwoDecimalPlace(totals.MLFeesNet)
	totals.ShippingSeller = utils.RoundWithTwoDecimalPlace(totals.ShippingSeller)
	totals.PackagingCost = utils.RoundWithTwoDecimalPlace(totals.PackagingCost)
	totals.ProcessingCost = utils.RoundWithTwoDecimalPlace(totals.ProcessingCost)
	totals.AdsCost = utils.RoundWithTwoDecimalPlace(totals.AdsCost)
	totals.Taxes = utils.RoundWithTwoDecimalPlace(totals.Taxes)
	totals.VariableCosts = utils.RoundWithTwoDecimalPlace(totals.VariableCosts)
	totals.FixedCostsAllocation = utils.RoundWithTwoDecimalPlace(totals.FixedCostsAllocation)
	totals.NetProfit = utils.RoundWithTwoDecimalPlace(totals.NetProfit)

	// A margem consolidada é recalculada dos totais, nunca a média das margens
	if totals.NetRevenue > 0 {
		totals.NetMarginPercent = utils.RoundWithTwoDecimalPlace((totals.NetProfit / totals.NetRevenue) * 100)
	}

	avgTicket := 0.0
	if ordersInPeriod > 0 {
		avgTicket = utils.RoundWithTwoDecimalPlace(totals.GrossRevenue / float64(ordersInPeriod))
	}

	return &domain.AggregateResult{
		Totals:        totals,
		OrdersCount:   ordersInPeriod,
		ItemsSold:     itemsSold,
		AvgTicket:     avgTicket,
		Returns:       returns,
		Cancellations: cancellations,
	}
}

// Service expõe o motor de lucro sobre os pedidos armazenados
type Service struct {
	orderRepo     repository.OrderRepository
	fixedCostRepo repository.FixedCostRepository
}

func NewService(orderRepo repository.OrderRepository, fixedCostRepo repository.FixedCostRepository) *Service {
	return &Service{
		orderRepo:     orderRepo,
		fixedCostRepo: fixedCostRepo,
	}
}

// OrderBreakdown calcula o breakdown de um pedido usando como período o mês
// calendário do pedido (denominador do rateio de custos fixos).
func (s *Service) OrderBreakdown(userID int, orderID string) (*domain.ProfitBreakdown, error) {
	order, err := s.orderRepo.GetByID(userID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	monthStart := time.Date(order.Date.Year(), order.Date.Month(), 1, 0, 0, 0, 0, order.Date.Location())
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)

	orders, err := s.orderRepo.ListByPeriod(userID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	ordersInPeriod := 0
	for _, o := range orders {
		if !o.Status.ExcludedFromTotals() {
			ordersInPeriod++
		}
	}

	fixedCosts, err := s.fixedCostRepo.ListActive(userID)
	if err != nil {
		return nil, err
	}

	return ComputeBreakdown(order, fixedCosts, ordersInPeriod), nil
}

// ProfitReport consolida os pedidos do período informado
func (s *Service) ProfitReport(userID int, startDate, endDate time.Time) (*domain.AggregateResult, error) {
	orders, err := s.orderRepo.ListByPeriod(userID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	fixedCosts, err := s.fixedCostRepo.ListActive(userID)
	if err != nil {
		return nil, err
	}

	return Aggregate(orders, fixedCosts), nil
}
