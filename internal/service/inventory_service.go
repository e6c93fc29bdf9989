package service

import (
	"go-warehouse-ws/internal/model"
	"go-warehouse-ws/internal/repository"
	"go-warehouse-ws/pkg/apperror"
)

type InventoryService interface {
	GetInventory() ([]model.Inventory, error)
	GetTransactionLogs() ([]model.TransactionLog, error)
	GetActionLogs() ([]model.ActionLog, error)
}

type inventoryService struct {
	inventoryRepo repository.InventoryRepository
	txLogRepo     repository.TransactionLogRepository
	actionLogRepo repository.ActionLogRepository
}

func NewInventoryService(
	inventoryRepo repository.InventoryRepository,
	txLogRepo repository.TransactionLogRepository,
	actionLogRepo repository.ActionLogRepository,
) InventoryService {
	return &inventoryService{
		inventoryRepo: inventoryRepo,
		txLogRepo:     txLogRepo,
		actionLogRepo: actionLogRepo,
	}
}

func (s *inventoryService) GetInventory() ([]model.Inventory, error) {
	rows, err := s.inventoryRepo.FindAll()
	if err != nil {
		return nil, apperror.Infrastructure(err)
	}
	return rows, nil
}

func (s *inventoryService) GetTransactionLogs() ([]model.TransactionLog, error) {
	entries, err := s.txLogRepo.FindAll()
	if err != nil {
		return nil, apperror.Infrastructure(err)
	}
	return entries, nil
}

func (s *inventoryService) GetActionLogs() ([]model.ActionLog, error) {
	entries, err := s.actionLogRepo.FindAll()
	if err != nil {
		return nil, apperror.Infrastructure(err)
	}
	return entries, nil
}
