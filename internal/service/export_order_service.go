package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go-warehouse-ws/internal/model"
	"go-warehouse-ws/internal/repository"
	"go-warehouse-ws/internal/ws"
	"go-warehouse-ws/pkg/apperror"
	"go-warehouse-ws/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ExportOrderService interface {
	Create(actorID uuid.UUID, req *CreateExportOrderRequest) (*CreateExportOrderResponse, error)
	Review(orderID uint, reviewerID uuid.UUID, approve bool, note string) (bool, error)
	List(f repository.ExportOrderListFilter) (*repository.ExportOrderListResult, error)
	GetDetail(orderID uint) (*ExportOrderDetail, error)
}

type CreateExportOrderItem struct {
	ProductID   uuid.UUID           `json:"product_id" validate:"uuid_required"`
	Quantity    int                 `json:"quantity"`
	ExportPrice decimal.NullDecimal `json:"export_price"`
}

type CreateExportOrderRequest struct {
	CustomerID    uint                    `json:"customer_id" validate:"required"`
	OrderDate     *time.Time              `json:"order_date"`
	InvoiceNumber string                  `json:"invoice_number"`
	Items         []CreateExportOrderItem `json:"items" validate:"required,min=1,dive"`
}

type CreateExportOrderResponse struct {
	ExportOrderID uint   `json:"export_order_id"`
	InvoiceNumber string `json:"invoice_number"`
}

type ExportOrderDetailItem struct {
	ID          uint                `json:"id"`
	ProductID   uuid.UUID           `json:"product_id"`
	ProductName string              `json:"product_name"`
	Quantity    int                 `json:"quantity"`
	ExportPrice decimal.NullDecimal `json:"export_price"`
}

type ExportOrderDetail struct {
	ID            uint                    `json:"id"`
	InvoiceNumber string                  `json:"invoice_number"`
	OrderDate     time.Time               `json:"order_date"`
	CustomerID    uint                    `json:"customer_id"`
	CustomerName  string                  `json:"customer_name"`
	Status        model.ExportOrderStatus `json:"status"`
	CreatedAt     time.Time               `json:"created_at"`
	CreatedByName string                  `json:"created_by_name"`
	Items         []ExportOrderDetailItem `json:"items"`
}

type exportOrderService struct {
	orderRepo     repository.ExportOrderRepository
	productRepo   repository.ProductRepository
	partnerRepo   repository.PartnerRepository
	inventoryRepo repository.InventoryRepository
	txLogRepo     repository.TransactionLogRepository
	actionLogRepo repository.ActionLogRepository
	db            *gorm.DB
	wsHub         *ws.Hub
}

func NewExportOrderService(
	orderRepo repository.ExportOrderRepository,
	productRepo repository.ProductRepository,
	partnerRepo repository.PartnerRepository,
	inventoryRepo repository.InventoryRepository,
	txLogRepo repository.TransactionLogRepository,
	actionLogRepo repository.ActionLogRepository,
	db *gorm.DB,
	hub *ws.Hub,
) ExportOrderService {
	return &exportOrderService{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		partnerRepo:   partnerRepo,
		inventoryRepo: inventoryRepo,
		txLogRepo:     txLogRepo,
		actionLogRepo: actionLogRepo,
		db:            db,
		wsHub:         hub,
	}
}

func (s *exportOrderService) Create(actorID uuid.UUID, req *CreateExportOrderRequest) (*CreateExportOrderResponse, error) {
	// 1. Validasi Struct Dasar
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		details := make([]string, 0, len(errs))
		for _, e := range errs {
			details = append(details, fmt.Sprintf("Field '%s' failed on tag '%s'", e.FailedField, e.Tag))
		}
		return nil, apperror.Validation("validation failed", details...)
	}

	// 2. Batch check per line
	var lineErrs []string
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			lineErrs = append(lineErrs, fmt.Sprintf("items[%d]: quantity must be > 0", i))
		}
		if item.ExportPrice.Valid && item.ExportPrice.Decimal.IsNegative() {
			lineErrs = append(lineErrs, fmt.Sprintf("items[%d]: export price must not be negative", i))
		}
	}
	if len(lineErrs) > 0 {
		return nil, apperror.Validation("invalid order lines", lineErrs...)
	}

	// 3. Validasi Customer
	if _, err := s.partnerRepo.FindByID(req.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("customer %d not found", req.CustomerID)
		}
		return nil, apperror.Infrastructure(err)
	}

	// 4. Batch check product ids
	seen := make(map[uuid.UUID]bool)
	var productIDs []uuid.UUID
	for _, item := range req.Items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			productIDs = append(productIDs, item.ProductID)
		}
	}
	existing, err := s.productRepo.FindExistingIDs(productIDs)
	if err != nil {
		return nil, apperror.Infrastructure(err)
	}
	if len(existing) != len(productIDs) {
		found := make(map[uuid.UUID]bool, len(existing))
		for _, id := range existing {
			found[id] = true
		}
		var missing []string
		for _, id := range productIDs {
			if !found[id] {
				missing = append(missing, id.String())
			}
		}
		return nil, apperror.Validation("unknown product ids", missing...)
	}

	now := time.Now()
	orderDate := now
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}
	invoice := strings.TrimSpace(req.InvoiceNumber)
	if invoice == "" {
		invoice = generateInvoiceNumber("EXP", orderDate)
	}

	order := &model.ExportOrder{
		CustomerID:      req.CustomerID,
		InvoiceNumber:   invoice,
		OrderDate:       orderDate,
		Status:          model.ExportStatusPending,
		CreatedAt:       now,
		CreatedByUserID: &actorID,
	}
	for _, item := range req.Items {
		order.Details = append(order.Details, model.ExportDetail{
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			ExportPrice: item.ExportPrice,
		})
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.Create(tx, order)
	})
	if err != nil {
		return nil, apperror.Infrastructure(err)
	}

	s.wsHub.BroadcastJSON(map[string]interface{}{
		"type":           "export_order_created",
		"order_id":       order.ID,
		"invoice_number": order.InvoiceNumber,
		"actor_id":       actorID.String(),
	})

	return &CreateExportOrderResponse{
		ExportOrderID: order.ID,
		InvoiceNumber: order.InvoiceNumber,
	}, nil
}

func (s *exportOrderService) Review(orderID uint, reviewerID uuid.UUID, approve bool, note string) (bool, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperror.NotFound("export order %d not found", orderID)
		}
		return false, apperror.Infrastructure(err)
	}

	if !strings.EqualFold(string(order.Status), string(model.ExportStatusPending)) {
		return false, apperror.InvalidState("export order %d is already %s", orderID, order.Status)
	}

	target := model.ExportStatusCanceled
	actionType := model.ActionExportCanceled
	if approve {
		target = model.ExportStatusCompleted
		actionType = model.ActionExportCompleted
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		ok, err := s.orderRepo.UpdateStatusIfPending(tx, orderID, target)
		if err != nil {
			return apperror.Infrastructure(err)
		}
		if !ok {
			return apperror.InvalidState("export order %d was already decided by another reviewer", orderID)
		}

		if approve {
			now := time.Now()
			for _, d := range order.Details {
				// Check-and-decrement atomic; gagal kalau stok tidak cukup
				ok, err := s.inventoryRepo.DecreaseIfAvailable(tx, d.ProductID, d.Quantity)
				if err != nil {
					return apperror.Infrastructure(err)
				}
				if !ok {
					return apperror.InvalidState("insufficient stock for product %s", d.ProductID)
				}
				inv, err := s.inventoryRepo.FindByProductID(tx, d.ProductID)
				if err != nil {
					return apperror.Infrastructure(err)
				}

				entry := &model.TransactionLog{
					OrderID:         orderID,
					ProductID:       d.ProductID,
					Quantity:        inv.QuantityAvailable,
					QuantityChanged: d.Quantity,
					Type:            model.TxExport,
					TransactionDate: now,
					Note:            note,
					CreatedByUserID: &reviewerID,
				}
				if err := s.txLogRepo.Append(tx, entry); err != nil {
					return apperror.Infrastructure(err)
				}
			}
		}

		audit := &model.ActionLog{
			UserID:      reviewerID,
			ActionType:  actionType,
			EntityType:  "ExportOrder",
			Timestamp:   time.Now(),
			Description: fmt.Sprintf("Export order #%d (%s) reviewed: %s. Note: %s", orderID, order.InvoiceNumber, target, note),
		}
		if err := s.actionLogRepo.Append(tx, audit); err != nil {
			return apperror.Infrastructure(err)
		}

		return nil
	})
	if err != nil {
		return false, err
	}

	s.wsHub.BroadcastJSON(map[string]interface{}{
		"type":        "stock_update",
		"action":      "export_order_reviewed",
		"order_id":    orderID,
		"status":      string(target),
		"reviewer_id": reviewerID.String(),
	})

	return true, nil
}

func (s *exportOrderService) List(f repository.ExportOrderListFilter) (*repository.ExportOrderListResult, error) {
	result, err := s.orderRepo.List(f)
	if err != nil {
		return nil, apperror.Infrastructure(err)
	}
	return result, nil
}

func (s *exportOrderService) GetDetail(orderID uint) (*ExportOrderDetail, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("export order %d not found", orderID)
		}
		return nil, apperror.Infrastructure(err)
	}

	detail := &ExportOrderDetail{
		ID:            order.ID,
		InvoiceNumber: order.InvoiceNumber,
		OrderDate:     order.OrderDate,
		CustomerID:    order.CustomerID,
		Status:        order.Status,
		CreatedAt:     order.CreatedAt,
	}
	if order.Customer != nil {
		detail.CustomerName = order.Customer.Name
	}
	if order.CreatedByUser != nil {
		detail.CreatedByName = order.CreatedByUser.FullName
	}
	for _, d := range order.Details {
		item := ExportOrderDetailItem{
			ID:          d.ID,
			ProductID:   d.ProductID,
			Quantity:    d.Quantity,
			ExportPrice: d.ExportPrice,
		}
		if d.Product != nil {
			item.ProductName = d.Product.Name
		}
		detail.Items = append(detail.Items, item)
	}

	return detail, nil
}
