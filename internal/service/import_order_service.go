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

type ImportOrderService interface {
	Create(actorID uuid.UUID, req *CreateImportOrderRequest) (*CreateImportOrderResponse, error)
	Review(orderID uint, reviewerID uuid.UUID, approve bool, note string) (bool, error)
	List(f repository.ImportOrderListFilter) (*repository.ImportOrderListResult, error)
	GetDetail(orderID uint) (*ImportOrderDetail, error)
}

type CreateImportOrderItem struct {
	ProductID   uuid.UUID           `json:"product_id" validate:"uuid_required"`
	Quantity    int                 `json:"quantity"`
	ImportPrice decimal.NullDecimal `json:"import_price"`
}

type CreateImportOrderRequest struct {
	ProviderID    uint                    `json:"provider_id" validate:"required"`
	OrderDate     *time.Time              `json:"order_date"`
	InvoiceNumber string                  `json:"invoice_number"` // jika kosong akan di-generate
	Items         []CreateImportOrderItem `json:"items" validate:"required,min=1,dive"`
}

type CreateImportOrderResponse struct {
	ImportOrderID uint   `json:"import_order_id"`
	InvoiceNumber string `json:"invoice_number"`
}

type ImportOrderDetailItem struct {
	ID          uint                `json:"id"`
	ProductID   uuid.UUID           `json:"product_id"`
	ProductName string              `json:"product_name"`
	Quantity    int                 `json:"quantity"`
	ImportPrice decimal.NullDecimal `json:"import_price"`
}

type ImportOrderDetail struct {
	ID            uint                    `json:"id"`
	InvoiceNumber string                  `json:"invoice_number"`
	OrderDate     time.Time               `json:"order_date"`
	ProviderID    uint                    `json:"provider_id"`
	ProviderName  string                  `json:"provider_name"`
	Status        model.ImportOrderStatus `json:"status"`
	CreatedAt     time.Time               `json:"created_at"`
	CreatedByName string                  `json:"created_by_name"`
	Items         []ImportOrderDetailItem `json:"items"`
}

type importOrderService struct {
	orderRepo     repository.ImportOrderRepository
	productRepo   repository.ProductRepository
	partnerRepo   repository.PartnerRepository
	inventoryRepo repository.InventoryRepository
	locationRepo  repository.LocationRepository
	txLogRepo     repository.TransactionLogRepository
	actionLogRepo repository.ActionLogRepository
	db            *gorm.DB
	wsHub         *ws.Hub
}

func NewImportOrderService(
	orderRepo repository.ImportOrderRepository,
	productRepo repository.ProductRepository,
	partnerRepo repository.PartnerRepository,
	inventoryRepo repository.InventoryRepository,
	locationRepo repository.LocationRepository,
	txLogRepo repository.TransactionLogRepository,
	actionLogRepo repository.ActionLogRepository,
	db *gorm.DB,
	hub *ws.Hub,
) ImportOrderService {
	return &importOrderService{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		partnerRepo:   partnerRepo,
		inventoryRepo: inventoryRepo,
		locationRepo:  locationRepo,
		txLogRepo:     txLogRepo,
		actionLogRepo: actionLogRepo,
		db:            db,
		wsHub:         hub,
	}
}

// generateInvoiceNumber membuat nomor invoice IMP-<yyyyMMdd>-<6 hex uppercase>
func generateInvoiceNumber(prefix string, orderDate time.Time) string {
	raw := uuid.New()
	return fmt.Sprintf("%s-%s-%X", prefix, orderDate.Format("20060102"), raw[:3])
}

func (s *importOrderService) Create(actorID uuid.UUID, req *CreateImportOrderRequest) (*CreateImportOrderResponse, error) {
	// 1. Validasi Struct Dasar
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		details := make([]string, 0, len(errs))
		for _, e := range errs {
			details = append(details, fmt.Sprintf("Field '%s' failed on tag '%s'", e.FailedField, e.Tag))
		}
		return nil, apperror.Validation("validation failed", details...)
	}

	// 2. Validasi per line: quantity > 0, import price tidak negatif.
	// Batch check, laporkan semua line yang salah sekaligus.
	var lineErrs []string
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			lineErrs = append(lineErrs, fmt.Sprintf("items[%d]: quantity must be > 0", i))
		}
		if item.ImportPrice.Valid && item.ImportPrice.Decimal.IsNegative() {
			lineErrs = append(lineErrs, fmt.Sprintf("items[%d]: import price must not be negative", i))
		}
	}
	if len(lineErrs) > 0 {
		return nil, apperror.Validation("invalid order lines", lineErrs...)
	}

	// 3. Validasi Provider
	if _, err := s.partnerRepo.FindByID(req.ProviderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("provider %d not found", req.ProviderID)
		}
		return nil, apperror.Infrastructure(err)
	}

	// 4. Batch check semua product id sekaligus
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

	// 5. Invoice number: pakai dari request, atau generate kalau kosong
	now := time.Now()
	orderDate := now
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}
	invoice := strings.TrimSpace(req.InvoiceNumber)
	if invoice == "" {
		invoice = generateInvoiceNumber("IMP", orderDate)
	}

	order := &model.ImportOrder{
		ProviderID:      req.ProviderID,
		InvoiceNumber:   invoice,
		OrderDate:       orderDate,
		Status:          model.ImportStatusPending,
		CreatedAt:       now,
		CreatedByUserID: &actorID,
	}
	for _, item := range req.Items {
		order.Details = append(order.Details, model.ImportDetail{
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			ImportPrice: item.ImportPrice,
		})
	}

	// 6. Simpan header + details dalam satu transaksi
	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.Create(tx, order)
	})
	if err != nil {
		return nil, apperror.Infrastructure(err)
	}

	s.wsHub.BroadcastJSON(map[string]interface{}{
		"type":           "import_order_created",
		"order_id":       order.ID,
		"invoice_number": order.InvoiceNumber,
		"actor_id":       actorID.String(),
	})

	return &CreateImportOrderResponse{
		ImportOrderID: order.ID,
		InvoiceNumber: order.InvoiceNumber,
	}, nil
}

func (s *importOrderService) Review(orderID uint, reviewerID uuid.UUID, approve bool, note string) (bool, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperror.NotFound("import order %d not found", orderID)
		}
		return false, apperror.Infrastructure(err)
	}

	// Hanya order Pending yang boleh direview (case-insensitive)
	if !strings.EqualFold(string(order.Status), string(model.ImportStatusPending)) {
		return false, apperror.InvalidState("import order %d is already %s", orderID, order.Status)
	}

	target := model.ImportStatusCanceled
	actionType := model.ActionImportCanceled
	if approve {
		target = model.ImportStatusCompleted
		actionType = model.ActionImportCompleted
	}

	// Lokasi default diresolve di luar transaksi; hanya dipakai saat lazy create.
	var defaultLoc *model.Location
	if approve {
		defaultLoc, err = s.locationRepo.FindByCode(model.DefaultReceivingLocation)
		if err != nil {
			return false, apperror.Infrastructure(err)
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Status flip adalah compare-and-swap: reviewer kedua yang kalah race
		// akan melihat 0 rows affected dan seluruh transaksi di-rollback.
		ok, err := s.orderRepo.UpdateStatusIfPending(tx, orderID, target)
		if err != nil {
			return apperror.Infrastructure(err)
		}
		if !ok {
			return apperror.InvalidState("import order %d was already decided by another reviewer", orderID)
		}

		if approve {
			now := time.Now()
			for _, d := range order.Details {
				inv, err := s.inventoryRepo.FindByProductID(tx, d.ProductID)
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// Lazy create saat product pertama kali diimpor
					inv = &model.Inventory{
						ProductID:         d.ProductID,
						QuantityAvailable: 0,
						AllocatedQuantity: 0,
						LocationID:        defaultLoc.ID,
					}
					if err := s.inventoryRepo.Create(tx, inv); err != nil {
						return apperror.Infrastructure(err)
					}
				} else if err != nil {
					return apperror.Infrastructure(err)
				}

				if err := s.inventoryRepo.Increase(tx, d.ProductID, d.Quantity); err != nil {
					return apperror.Infrastructure(err)
				}
				inv, err = s.inventoryRepo.FindByProductID(tx, d.ProductID)
				if err != nil {
					return apperror.Infrastructure(err)
				}

				entry := &model.TransactionLog{
					OrderID:         orderID,
					ProductID:       d.ProductID,
					Quantity:        inv.QuantityAvailable,
					QuantityChanged: d.Quantity,
					Type:            model.TxImport,
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
			EntityType:  "ImportOrder",
			Timestamp:   time.Now(),
			Description: fmt.Sprintf("Import order #%d (%s) reviewed: %s. Note: %s", orderID, order.InvoiceNumber, target, note),
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
		"action":      "import_order_reviewed",
		"order_id":    orderID,
		"status":      string(target),
		"reviewer_id": reviewerID.String(),
	})

	return true, nil
}

func (s *importOrderService) List(f repository.ImportOrderListFilter) (*repository.ImportOrderListResult, error) {
	result, err := s.orderRepo.List(f)
	if err != nil {
		return nil, apperror.Infrastructure(err)
	}
	return result, nil
}

func (s *importOrderService) GetDetail(orderID uint) (*ImportOrderDetail, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("import order %d not found", orderID)
		}
		return nil, apperror.Infrastructure(err)
	}

	detail := &ImportOrderDetail{
		ID:            order.ID,
		InvoiceNumber: order.InvoiceNumber,
		OrderDate:     order.OrderDate,
		ProviderID:    order.ProviderID,
		Status:        order.Status,
		CreatedAt:     order.CreatedAt,
	}
	if order.Provider != nil {
		detail.ProviderName = order.Provider.Name
	}
	if order.CreatedByUser != nil {
		detail.CreatedByName = order.CreatedByUser.FullName
	}
	for _, d := range order.Details {
		item := ImportOrderDetailItem{
			ID:          d.ID,
			ProductID:   d.ProductID,
			Quantity:    d.Quantity,
			ImportPrice: d.ImportPrice,
		}
		if d.Product != nil {
			item.ProductName = d.Product.Name
		}
		detail.Items = append(detail.Items, item)
	}

	return detail, nil
}
