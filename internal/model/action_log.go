package model

import (
	"time"

	"github.com/google/uuid"
)

// Action type tags written by the review and user-management workflows.
const (
	ActionImportCompleted = "IMPORT_COMPLETED"
	ActionImportCanceled  = "IMPORT_CANCELED"
	ActionExportCompleted = "EXPORT_COMPLETED"
	ActionExportCanceled  = "EXPORT_CANCELED"

	ActionUserCreated           = "USER_CREATED"
	ActionUserUpdated           = "USER_UPDATED"
	ActionUserDeleted           = "USER_DELETED"
	ActionUserPrivilegesChanged = "USER_PRIVILEGES_CHANGED"
)

// ActionLog adalah audit trail append-only per aksi bisnis, terlepas dari
// efek kuantitas.
type ActionLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	User        *User     `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	ActionType  string    `gorm:"type:varchar(50);not null" json:"action_type"`
	EntityType  string    `gorm:"type:varchar(50);not null" json:"entity_type"`
	Timestamp   time.Time `gorm:"not null" json:"timestamp"`
	Description string    `gorm:"type:text" json:"description"`
}
