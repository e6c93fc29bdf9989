package model

import (
	"time"

	"github.com/google/uuid"
)

// Inventory menyimpan stok on-hand per product (satu row per product).
type Inventory struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	ProductID         uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"product_id"`
	Product           *Product  `json:"product,omitempty"`
	QuantityAvailable int       `gorm:"default:0" json:"quantity_available"`
	AllocatedQuantity int       `gorm:"default:0" json:"allocated_quantity"`
	LocationID        uint      `gorm:"index;not null" json:"location_id"`
	Location          *Location `json:"location,omitempty"`
	UpdatedAt         time.Time `json:"updated_at"`
}
