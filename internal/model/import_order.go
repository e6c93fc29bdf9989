package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ImportOrderStatus is a closed enum. Transisi hanya Pending -> Completed
// atau Pending -> Canceled, setelah itu terminal.
type ImportOrderStatus string

const (
	ImportStatusPending   ImportOrderStatus = "Pending"
	ImportStatusCompleted ImportOrderStatus = "Completed"
	ImportStatusCanceled  ImportOrderStatus = "Canceled"
)

type ImportOrder struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	ProviderID    uint              `gorm:"index;not null" json:"provider_id"`
	Provider      *BusinessPartner  `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
	InvoiceNumber string            `gorm:"type:varchar(50);uniqueIndex;not null" json:"invoice_number"`
	OrderDate     time.Time         `gorm:"type:date;not null" json:"order_date"`
	Status        ImportOrderStatus `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	CreatedAt     time.Time         `json:"created_at"`

	// User tracking
	CreatedByUserID *uuid.UUID `gorm:"type:uuid" json:"created_by_user_id,omitempty"`
	CreatedByUser   *User      `gorm:"foreignKey:CreatedByUserID;references:ID" json:"created_by_user,omitempty"`

	// Relasi: details ikut terhapus bersama order (composition)
	Details []ImportDetail `gorm:"constraint:OnDelete:CASCADE" json:"details,omitempty"`
}

// ImportDetail immutable setelah dibuat; tidak ada update path.
type ImportDetail struct {
	ID            uint                `gorm:"primaryKey" json:"id"`
	ImportOrderID uint                `gorm:"index;not null" json:"import_order_id"`
	ProductID     uuid.UUID           `gorm:"type:uuid;not null" json:"product_id"`
	Product       *Product            `json:"product,omitempty"`
	Quantity      int                 `gorm:"not null" json:"quantity"`
	ImportPrice   decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"import_price"`
}
