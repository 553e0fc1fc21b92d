package user

import (
	"time"

	"github.com/gofrs/uuid"
)

type Role string

const (
	RoleFan       Role = "fan"
	RoleCelebrity Role = "celebrity"
	RoleAdmin     Role = "admin"
)

// SocialLinks لینک‌های شبکه‌های اجتماعی که به صورت JSON ذخیره می‌شوند
type SocialLinks struct {
	Instagram string `json:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Youtube   string `json:"youtube,omitempty"`
	Tiktok    string `json:"tiktok,omitempty"`
	Website   string `json:"website,omitempty"`
}

type User struct {
	ID          uuid.UUID   `gorm:"primaryKey;type:char(36)"`
	Email       string      `gorm:"type:varchar(191);uniqueIndex;not null"`
	Password    string      `gorm:"not null"`
	Role        Role        `gorm:"type:varchar(16);index;not null"`
	FirstName   string      `gorm:"type:varchar(64);not null"`
	LastName    string      `gorm:"type:varchar(64);not null"`
	Phone       string      `gorm:"type:varchar(32)"`
	Bio         string      `gorm:"type:text"`
	Avatar      string      `gorm:"type:varchar(512)"`
	SocialLinks SocialLinks `gorm:"serializer:json;type:text"`
	IsActive    bool        `gorm:"not null;default:true"`
	LastLoginAt *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (r Role) Valid() bool {
	switch r {
	case RoleFan, RoleCelebrity, RoleAdmin:
		return true
	}
	return false
}

// Actor کاربری که درخواست را ارسال کرده؛ از توکن ساخته می‌شود
type Actor struct {
	UserID string
	Role   Role
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }
