package repository

import (
	"go-warehouse-ws/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InventoryRepository interface {
	FindAll() ([]model.Inventory, error)
	FindByProductID(tx *gorm.DB, productID uuid.UUID) (*model.Inventory, error)
	Create(tx *gorm.DB, inv *model.Inventory) error
	Increase(tx *gorm.DB, productID uuid.UUID, qty int) error
	DecreaseIfAvailable(tx *gorm.DB, productID uuid.UUID, qty int) (bool, error)
	CountBelowReorderPoint() (int64, error)
	TotalStockValue() (decimal.Decimal, error)
}

type inventoryRepo struct {
	db *gorm.DB
}

func NewInventoryRepo(db *gorm.DB) InventoryRepository {
	return &inventoryRepo{db}
}

func (r *inventoryRepo) FindAll() ([]model.Inventory, error) {
	var rows []model.Inventory
	err := r.db.Preload("Product").Preload("Location").Order("id ASC").Find(&rows).Error
	return rows, err
}

// FindByProductID menerima *gorm.DB (tx) agar bisa berjalan dalam transaksi
func (r *inventoryRepo) FindByProductID(tx *gorm.DB, productID uuid.UUID) (*model.Inventory, error) {
	var inv model.Inventory
	if err := tx.First(&inv, "product_id = ?", productID).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *inventoryRepo) Create(tx *gorm.DB, inv *model.Inventory) error {
	return tx.Create(inv).Error
}

// Increase menaikkan quantity_available secara relatif; aman terhadap
// approval paralel untuk product yang sama.
func (r *inventoryRepo) Increase(tx *gorm.DB, productID uuid.UUID, qty int) error {
	return tx.Model(&model.Inventory{}).
		Where("product_id = ?", productID).
		Update("quantity_available", gorm.Expr("quantity_available + ?", qty)).Error
}

// DecreaseIfAvailable menurunkan stok hanya jika cukup. Guard "quantity_available >= ?"
// di WHERE clause membuat check-and-decrement atomic di database.
func (r *inventoryRepo) DecreaseIfAvailable(tx *gorm.DB, productID uuid.UUID, qty int) (bool, error) {
	res := tx.Model(&model.Inventory{}).
		Where("product_id = ? AND quantity_available >= ?", productID, qty).
		Update("quantity_available", gorm.Expr("quantity_available - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// TotalStockValue menghitung nilai stok on-hand berdasarkan purchase price.
func (r *inventoryRepo) TotalStockValue() (decimal.Decimal, error) {
	var total float64
	err := r.db.Model(&model.Inventory{}).
		Joins("JOIN products ON products.id = inventories.product_id").
		Select("COALESCE(SUM(inventories.quantity_available * products.purchase_price), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromFloat(total), nil
}

func (r *inventoryRepo) CountBelowReorderPoint() (int64, error) {
	var count int64
	err := r.db.Model(&model.Inventory{}).
		Joins("JOIN products ON products.id = inventories.product_id").
		Where("inventories.quantity_available < products.reorder_point").
		Count(&count).Error
	return count, err
}
