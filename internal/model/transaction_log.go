package model

import (
	"time"

	"github.com/google/uuid"
)

type TransactionLogType string

const (
	TxImport TransactionLogType = "IMPORT"
	TxExport TransactionLogType = "EXPORT"
)

// TransactionLog adalah ledger append-only: satu entry per detail line saat
// order disetujui. Tidak pernah di-update atau dihapus.
type TransactionLog struct {
	ID              uint               `gorm:"primaryKey" json:"id"`
	OrderID         uint               `gorm:"index;not null" json:"order_id"`
	ProductID       uuid.UUID          `gorm:"type:uuid;index;not null" json:"product_id"`
	Product         *Product           `json:"product,omitempty"`
	Quantity        int                `gorm:"not null" json:"quantity"` // resulting quantity after the change
	QuantityChanged int                `gorm:"not null" json:"quantity_changed"`
	Type            TransactionLogType `gorm:"type:varchar(10);not null" json:"type"`
	TransactionDate time.Time          `gorm:"not null" json:"transaction_date"`
	Note            string             `json:"note"`

	// User tracking
	CreatedByUserID *uuid.UUID `gorm:"type:uuid" json:"created_by_user_id,omitempty"`
	CreatedByUser   *User      `gorm:"foreignKey:CreatedByUserID;references:ID" json:"created_by_user,omitempty"`
}
