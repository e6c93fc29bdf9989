package repository

import (
	"time"

	"go-warehouse-ws/internal/model"

	"gorm.io/gorm"
)

// ImportOrderListFilter adalah parameter list dari read side.
// Page 1-based; From/To inclusive terhadap order_date.
type ImportOrderListFilter struct {
	Q          string
	ProviderID *uint
	Status     string
	From       *time.Time
	To         *time.Time
	Page       int
	PageSize   int
}

type ImportOrderListItem struct {
	ID            uint                    `json:"id"`
	InvoiceNumber string                  `json:"invoice_number"`
	OrderDate     time.Time               `json:"order_date"`
	ProviderName  string                  `json:"provider_name"`
	Status        model.ImportOrderStatus `json:"status"`
	TotalQuantity int                     `json:"total_quantity"`
	CreatedByName string                  `json:"created_by_name"`
}

type ImportOrderListResult struct {
	Total    int64                 `json:"total"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
	Items    []ImportOrderListItem `json:"items"`
}

type ImportOrderRepository interface {
	Create(tx *gorm.DB, order *model.ImportOrder) error
	FindByID(id uint) (*model.ImportOrder, error)
	List(f ImportOrderListFilter) (*ImportOrderListResult, error)
	// UpdateStatusIfPending is a compare-and-swap on the status column; returns
	// false when another reviewer already decided the order.
	UpdateStatusIfPending(tx *gorm.DB, id uint, status model.ImportOrderStatus) (bool, error)
}

type importOrderRepo struct {
	db *gorm.DB
}

func NewImportOrderRepo(db *gorm.DB) ImportOrderRepository {
	return &importOrderRepo{db}
}

// Create menyimpan header lalu detail lines (gorm association insert).
func (r *importOrderRepo) Create(tx *gorm.DB, order *model.ImportOrder) error {
	return tx.Create(order).Error
}

func (r *importOrderRepo) FindByID(id uint) (*model.ImportOrder, error) {
	var order model.ImportOrder
	err := r.db.
		Preload("Provider").
		Preload("CreatedByUser").
		Preload("Details", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Details.Product").
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *importOrderRepo) List(f ImportOrderListFilter) (*ImportOrderListResult, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 20
	}

	base := r.db.Model(&model.ImportOrder{}).
		Joins("LEFT JOIN business_partners ON business_partners.id = import_orders.provider_id")

	if f.Q != "" {
		term := "%" + f.Q + "%"
		base = base.Where("import_orders.invoice_number LIKE ? OR business_partners.name LIKE ?", term, term)
	}
	if f.ProviderID != nil {
		base = base.Where("import_orders.provider_id = ?", *f.ProviderID)
	}
	if f.Status != "" {
		base = base.Where("import_orders.status = ?", f.Status)
	}
	if f.From != nil {
		base = base.Where("import_orders.order_date >= ?", *f.From)
	}
	if f.To != nil {
		base = base.Where("import_orders.order_date <= ?", *f.To)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var orders []model.ImportOrder
	err := base.Session(&gorm.Session{}).
		Preload("Provider").
		Preload("CreatedByUser").
		Preload("Details").
		Order("import_orders.id DESC").
		Offset((f.Page - 1) * f.PageSize).
		Limit(f.PageSize).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	items := make([]ImportOrderListItem, 0, len(orders))
	for _, o := range orders {
		item := ImportOrderListItem{
			ID:            o.ID,
			InvoiceNumber: o.InvoiceNumber,
			OrderDate:     o.OrderDate,
			Status:        o.Status,
		}
		if o.Provider != nil {
			item.ProviderName = o.Provider.Name
		}
		if o.CreatedByUser != nil {
			item.CreatedByName = o.CreatedByUser.FullName
		}
		for _, d := range o.Details {
			item.TotalQuantity += d.Quantity
		}
		items = append(items, item)
	}

	return &ImportOrderListResult{
		Total:    total,
		Page:     f.Page,
		PageSize: f.PageSize,
		Items:    items,
	}, nil
}

func (r *importOrderRepo) UpdateStatusIfPending(tx *gorm.DB, id uint, status model.ImportOrderStatus) (bool, error) {
	res := tx.Model(&model.ImportOrder{}).
		Where("id = ? AND status = ?", id, model.ImportStatusPending).
		Update("status", status)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
