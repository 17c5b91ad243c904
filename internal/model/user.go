package model

import (
	"time"
)

// Authority is a role tag attached to a user. A user may hold several.
type Authority string

const (
	AuthoritySuperAdmin     Authority = "SUPER_ADMIN"
	AuthoritySalesman       Authority = "USER_SALESMAN"
	AuthoritySaleManager    Authority = "USER_SALE_MANAGER"
	AuthorityAccountant     Authority = "USER_ACCOUNTANT"
	AuthorityMarketDirector Authority = "USER_MARKET_DIRECTOR"
)

// ParseAuthority maps a raw string onto the closed authority set.
func ParseAuthority(s string) (Authority, bool) {
	switch Authority(s) {
	case AuthoritySuperAdmin, AuthoritySalesman, AuthoritySaleManager,
		AuthorityAccountant, AuthorityMarketDirector:
		return Authority(s), true
	}
	return "", false
}

// UserAuthority is a row in the users_authorities join table.
type UserAuthority struct {
	UserID    int64     `gorm:"primaryKey;autoIncrement:false" json:"-"`
	Authority Authority `gorm:"primaryKey;type:varchar(50)" json:"authority"`
}

func (UserAuthority) TableName() string {
	return "users_authorities"
}

// User is the central identity entity. Username is immutable after creation;
// identity equality is by ID only. Password holds a bcrypt hash and is never
// serialized.
type User struct {
	ID          int64           `gorm:"primaryKey" json:"id"`
	Username    string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Password    string          `gorm:"type:varchar(255);not null" json:"-"`
	DisplayName string          `gorm:"type:varchar(255);not null" json:"display_name"`
	Deleted     bool            `gorm:"not null;default:false" json:"deleted"`
	Authorities []UserAuthority `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"authorities,omitempty"`
	Groups      []*Group        `gorm:"many2many:users_groups" json:"groups,omitempty"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// HasAuthority reports whether the user holds the given authority tag.
func (u *User) HasAuthority(a Authority) bool {
	for _, ua := range u.Authorities {
		if ua.Authority == a {
			return true
		}
	}
	return false
}

// HasAnyAuthority reports whether the user holds at least one of the tags.
func (u *User) HasAnyAuthority(authorities ...Authority) bool {
	for _, a := range authorities {
		if u.HasAuthority(a) {
			return true
		}
	}
	return false
}

// AuthorityList returns the user's authority tags as plain strings.
func (u *User) AuthorityList() []string {
	list := make([]string, 0, len(u.Authorities))
	for _, ua := range u.Authorities {
		list = append(list, string(ua.Authority))
	}
	return list
}
