package repository

import (
	"go-warehouse-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindBySerialNumber(serial string) (*model.Product, error)
	FindExistingIDs(ids []uuid.UUID) ([]uuid.UUID, error)
	Update(product *model.Product) error
	Delete(id uuid.UUID) error
	Count() (int64, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Inventory").Preload("CreatedByUser").Preload("UpdatedByUser").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Inventory").Preload("CreatedByUser").Preload("UpdatedByUser").First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindBySerialNumber(serial string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "serial_number = ?", serial).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindExistingIDs mengembalikan subset dari ids yang benar-benar ada,
// untuk batch check saat create order.
func (r *productRepo) FindExistingIDs(ids []uuid.UUID) ([]uuid.UUID, error) {
	var found []uuid.UUID
	err := r.db.Model(&model.Product{}).Where("id IN ?", ids).Pluck("id", &found).Error
	return found, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Product{}, "id = ?", id).Error
}

func (r *productRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Count(&count).Error
	return count, err
}
