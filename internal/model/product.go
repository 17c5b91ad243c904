package model

import (
	"time"
)

// Product is a sellable item. CurrentPrice is in the smallest currency unit;
// changing it never touches the unit price already snapshotted onto invoice
// items.
type Product struct {
	ID                 int64     `gorm:"primaryKey" json:"id"`
	DisplayName        string    `gorm:"type:varchar(255);not null" json:"display_name"`
	DisplayDescription string    `gorm:"type:text;not null" json:"display_description"`
	DisplayUnit        string    `gorm:"type:varchar(50);not null" json:"display_unit"`
	CurrentPrice       int64     `gorm:"not null" json:"current_price"`
	Deleted            bool      `gorm:"not null;default:false" json:"deleted"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
