package model

// DefaultReceivingLocation backs inventory rows that are created lazily on
// first import, before an explicit allocation step assigns a real slot.
const DefaultReceivingLocation = "RCV-DEFAULT"

type Location struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Code        string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Description string `gorm:"type:text" json:"description"`
}

var DefaultLocations = []Location{
	{Code: DefaultReceivingLocation, Description: "Receiving area for newly imported stock"},
}
