package service

import (
	"errors"
	"fmt"

	"go-warehouse-ws/internal/model"
	"go-warehouse-ws/internal/repository"
	"go-warehouse-ws/internal/ws"
	"go-warehouse-ws/pkg/apperror"
	"go-warehouse-ws/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductService interface {
	CreateProduct(req *model.Product, userID string) error
	UpdateProduct(id uuid.UUID, req *model.Product, userID string) (*model.Product, error)
	DeleteProduct(id uuid.UUID, userID string) error
	GetAllProducts() ([]model.Product, error)
	GetProductByID(id uuid.UUID) (*model.Product, error)
}

type productService struct {
	productRepo repository.ProductRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewProductService(pRepo repository.ProductRepository, db *gorm.DB, hub *ws.Hub) ProductService {
	return &productService{
		productRepo: pRepo,
		db:          db,
		wsHub:       hub,
	}
}

func (s *productService) CreateProduct(req *model.Product, userID string) error {
	// 1. Validasi Struct Dasar
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		details := make([]string, 0, len(errs))
		for _, e := range errs {
			details = append(details, fmt.Sprintf("Field '%s' failed on tag '%s'", e.FailedField, e.Tag))
		}
		return apperror.Validation("validation failed", details...)
	}

	// 2. Cek Duplikasi Serial Number
	existing, err := s.productRepo.FindBySerialNumber(req.SerialNumber)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.Infrastructure(err)
	}
	if existing != nil {
		return apperror.Validation("serial number already exists", req.SerialNumber)
	}

	// 3. Set Audit Fields
	req.CreatedBy = userID
	req.UpdatedBy = userID
	req.CreatedByUserID = &userID
	req.UpdatedByUserID = &userID

	// 4. Simpan ke Database
	if err := s.productRepo.Create(req); err != nil {
		return apperror.Infrastructure(err)
	}

	s.wsHub.BroadcastJSON(map[string]interface{}{
		"type":   "product_update",
		"action": "product_created",
		"product": map[string]interface{}{
			"id":            req.ID,
			"serial_number": req.SerialNumber,
			"name":          req.Name,
		},
		"user_id": userID,
	})

	return nil
}

func (s *productService) UpdateProduct(id uuid.UUID, req *model.Product, userID string) (*model.Product, error) {
	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("product %s not found", id)
		}
		return nil, apperror.Infrastructure(err)
	}

	// Identity immutable; hanya atribut komersial yang berubah
	existing.Name = req.Name
	existing.Unit = req.Unit
	existing.UnitPrice = req.UnitPrice
	existing.PurchasePrice = req.PurchasePrice
	existing.ReorderPoint = req.ReorderPoint
	existing.ExpiryDate = req.ExpiryDate
	existing.ReceivedDate = req.ReceivedDate
	existing.UpdatedBy = userID
	existing.UpdatedByUserID = &userID

	if err := s.productRepo.Update(existing); err != nil {
		return nil, apperror.Infrastructure(err)
	}

	s.wsHub.BroadcastJSON(map[string]interface{}{
		"type":   "product_update",
		"action": "product_updated",
		"product": map[string]interface{}{
			"id":            existing.ID,
			"serial_number": existing.SerialNumber,
			"name":          existing.Name,
		},
		"user_id": userID,
	})

	return existing, nil
}

func (s *productService) DeleteProduct(id uuid.UUID, userID string) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("product %s not found", id)
		}
		return apperror.Infrastructure(err)
	}
	if err := s.productRepo.Delete(id); err != nil {
		return apperror.Infrastructure(err)
	}
	return nil
}

func (s *productService) GetAllProducts() ([]model.Product, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, apperror.Infrastructure(err)
	}
	return products, nil
}

func (s *productService) GetProductByID(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("product %s not found", id)
		}
		return nil, apperror.Infrastructure(err)
	}
	return product, nil
}
