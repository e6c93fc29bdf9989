package repository

import (
	"time"

	"go-warehouse-ws/internal/model"

	"gorm.io/gorm"
)

type ExportOrderListFilter struct {
	Q          string
	CustomerID *uint
	Status     string
	From       *time.Time
	To         *time.Time
	Page       int
	PageSize   int
}

type ExportOrderListItem struct {
	ID            uint                    `json:"id"`
	InvoiceNumber string                  `json:"invoice_number"`
	OrderDate     time.Time               `json:"order_date"`
	CustomerName  string                  `json:"customer_name"`
	Status        model.ExportOrderStatus `json:"status"`
	TotalQuantity int                     `json:"total_quantity"`
	CreatedByName string                  `json:"created_by_name"`
}

type ExportOrderListResult struct {
	Total    int64                 `json:"total"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
	Items    []ExportOrderListItem `json:"items"`
}

type ExportOrderRepository interface {
	Create(tx *gorm.DB, order *model.ExportOrder) error
	FindByID(id uint) (*model.ExportOrder, error)
	List(f ExportOrderListFilter) (*ExportOrderListResult, error)
	UpdateStatusIfPending(tx *gorm.DB, id uint, status model.ExportOrderStatus) (bool, error)
}

type exportOrderRepo struct {
	db *gorm.DB
}

func NewExportOrderRepo(db *gorm.DB) ExportOrderRepository {
	return &exportOrderRepo{db}
}

func (r *exportOrderRepo) Create(tx *gorm.DB, order *model.ExportOrder) error {
	return tx.Create(order).Error
}

func (r *exportOrderRepo) FindByID(id uint) (*model.ExportOrder, error) {
	var order model.ExportOrder
	err := r.db.
		Preload("Customer").
		Preload("CreatedByUser").
		Preload("Details", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Details.Product").
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *exportOrderRepo) List(f ExportOrderListFilter) (*ExportOrderListResult, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 20
	}

	base := r.db.Model(&model.ExportOrder{}).
		Joins("LEFT JOIN business_partners ON business_partners.id = export_orders.customer_id")

	if f.Q != "" {
		term := "%" + f.Q + "%"
		base = base.Where("export_orders.invoice_number LIKE ? OR business_partners.name LIKE ?", term, term)
	}
	if f.CustomerID != nil {
		base = base.Where("export_orders.customer_id = ?", *f.CustomerID)
	}
	if f.Status != "" {
		base = base.Where("export_orders.status = ?", f.Status)
	}
	if f.From != nil {
		base = base.Where("export_orders.order_date >= ?", *f.From)
	}
	if f.To != nil {
		base = base.Where("export_orders.order_date <= ?", *f.To)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var orders []model.ExportOrder
	err := base.Session(&gorm.Session{}).
		Preload("Customer").
		Preload("CreatedByUser").
		Preload("Details").
		Order("export_orders.id DESC").
		Offset((f.Page - 1) * f.PageSize).
		Limit(f.PageSize).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	items := make([]ExportOrderListItem, 0, len(orders))
	for _, o := range orders {
		item := ExportOrderListItem{
			ID:            o.ID,
			InvoiceNumber: o.InvoiceNumber,
			OrderDate:     o.OrderDate,
			Status:        o.Status,
		}
		if o.Customer != nil {
			item.CustomerName = o.Customer.Name
		}
		if o.CreatedByUser != nil {
			item.CreatedByName = o.CreatedByUser.FullName
		}
		for _, d := range o.Details {
			item.TotalQuantity += d.Quantity
		}
		items = append(items, item)
	}

	return &ExportOrderListResult{
		Total:    total,
		Page:     f.Page,
		PageSize: f.PageSize,
		Items:    items,
	}, nil
}

func (r *exportOrderRepo) UpdateStatusIfPending(tx *gorm.DB, id uint, status model.ExportOrderStatus) (bool, error) {
	res := tx.Model(&model.ExportOrder{}).
		Where("id = ? AND status = ?", id, model.ExportStatusPending).
		Update("status", status)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
