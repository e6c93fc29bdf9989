package service

import (
	"time"

	"go-warehouse-ws/internal/repository"
	"go-warehouse-ws/pkg/apperror"

	"github.com/shopspring/decimal"
)

type DashboardService interface {
	GetStockMovement(days int) ([]repository.StockMovementData, error)
	GetDashboardStats() (*DashboardStats, error)
}

// DashboardStats untuk overview stats
type DashboardStats struct {
	TotalProducts int64           `json:"total_products"`
	LowStockCount int64           `json:"low_stock_count"`
	PendingOrders int64           `json:"pending_orders"`
	StockValue    decimal.Decimal `json:"stock_value"`
}

type dashboardService struct {
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	orderRepo     repository.ImportOrderRepository
	txLogRepo     repository.TransactionLogRepository
}

func NewDashboardService(
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
	orderRepo repository.ImportOrderRepository,
	txLogRepo repository.TransactionLogRepository,
) DashboardService {
	return &dashboardService{
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		orderRepo:     orderRepo,
		txLogRepo:     txLogRepo,
	}
}

func (s *dashboardService) GetStockMovement(days int) ([]repository.StockMovementData, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	data, err := s.txLogRepo.GetStockMovement(startDate, endDate)
	if err != nil {
		return nil, apperror.Infrastructure(err)
	}
	return data, nil
}

func (s *dashboardService) GetDashboardStats() (*DashboardStats, error) {
	var stats DashboardStats

	total, err := s.productRepo.Count()
	if err != nil {
		return nil, apperror.Infrastructure(err)
	}
	stats.TotalProducts = total

	lowStock, err := s.inventoryRepo.CountBelowReorderPoint()
	if err != nil {
		return nil, apperror.Infrastructure(err)
	}
	stats.LowStockCount = lowStock

	pending, err := s.orderRepo.List(repository.ImportOrderListFilter{
		Status: "Pending", Page: 1, PageSize: 1,
	})
	if err != nil {
		return nil, apperror.Infrastructure(err)
	}
	stats.PendingOrders = pending.Total

	stockValue, err := s.inventoryRepo.TotalStockValue()
	if err != nil {
		return nil, apperror.Infrastructure(err)
	}
	stats.StockValue = stockValue

	return &stats, nil
}
