package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExportOrderStatus is intentionally separate from ImportOrderStatus even
// though the state sets currently coincide.
type ExportOrderStatus string

const (
	ExportStatusPending   ExportOrderStatus = "Pending"
	ExportStatusCompleted ExportOrderStatus = "Completed"
	ExportStatusCanceled  ExportOrderStatus = "Canceled"
)

type ExportOrder struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	CustomerID    uint              `gorm:"index;not null" json:"customer_id"`
	Customer      *BusinessPartner  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	InvoiceNumber string            `gorm:"type:varchar(50);uniqueIndex;not null" json:"invoice_number"`
	OrderDate     time.Time         `gorm:"type:date;not null" json:"order_date"`
	Status        ExportOrderStatus `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	CreatedAt     time.Time         `json:"created_at"`

	// User tracking
	CreatedByUserID *uuid.UUID `gorm:"type:uuid" json:"created_by_user_id,omitempty"`
	CreatedByUser   *User      `gorm:"foreignKey:CreatedByUserID;references:ID" json:"created_by_user,omitempty"`

	// Relasi
	Details []ExportDetail `gorm:"constraint:OnDelete:CASCADE" json:"details,omitempty"`
}

type ExportDetail struct {
	ID            uint                `gorm:"primaryKey" json:"id"`
	ExportOrderID uint                `gorm:"index;not null" json:"export_order_id"`
	ProductID     uuid.UUID           `gorm:"type:uuid;not null" json:"product_id"`
	Product       *Product            `json:"product,omitempty"`
	Quantity      int                 `gorm:"not null" json:"quantity"`
	ExportPrice   decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"export_price"`
}
