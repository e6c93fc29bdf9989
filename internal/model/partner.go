package model

type PartnerKind string

const (
	PartnerProvider PartnerKind = "PROVIDER"
	PartnerCustomer PartnerKind = "CUSTOMER"
)

// BusinessPartner adalah provider (supplier) atau customer gudang.
type BusinessPartner struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Name        string      `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Kind        PartnerKind `gorm:"type:varchar(20);not null" json:"kind" validate:"required,oneof=PROVIDER CUSTOMER"`
	Email       string      `gorm:"type:varchar(255)" json:"email"`
	PhoneNumber string      `gorm:"type:varchar(20)" json:"phone_number"`
	Address     string      `gorm:"type:text" json:"address"`
}
