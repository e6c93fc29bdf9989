package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	SerialNumber  string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"serial_number" validate:"required"`
	Name          string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Unit          string          `gorm:"type:varchar(20)" json:"unit"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"unit_price"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"purchase_price"`
	ReorderPoint  int             `gorm:"default:0" json:"reorder_point"`
	ExpiryDate    *time.Time      `gorm:"type:date" json:"expiry_date,omitempty"`
	ReceivedDate  *time.Time      `gorm:"type:date" json:"received_date,omitempty"`

	// User tracking
	CreatedByUserID *string `gorm:"type:varchar(255)" json:"created_by_user_id,omitempty"`
	UpdatedByUserID *string `gorm:"type:varchar(255)" json:"updated_by_user_id,omitempty"`
	CreatedByUser   *User   `gorm:"foreignKey:CreatedByUserID;references:ID" json:"created_by_user,omitempty"`
	UpdatedByUser   *User   `gorm:"foreignKey:UpdatedByUserID;references:ID" json:"updated_by_user,omitempty"`

	// Relasi
	Inventory *Inventory `json:"inventory,omitempty"`
}
