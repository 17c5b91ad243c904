package model

import (
	"time"
)

// Group represents a sales-manager's team. Membership lives in the
// users_groups join table; a manager is authorized for invoices authored by
// anyone sharing a group with them.
type Group struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	DisplayName string    `gorm:"type:varchar(255);not null" json:"display_name"`
	Deleted     bool      `gorm:"not null;default:false" json:"deleted"`
	Users       []*User   `gorm:"many2many:users_groups" json:"users,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
