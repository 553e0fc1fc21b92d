package celebrity

import (
	"time"

	"celebnetwork/internal/core/user"

	"github.com/gofrs/uuid"
)

type Celebrity struct {
	ID             uuid.UUID        `gorm:"primaryKey;type:char(36)"`
	UserID         uuid.UUID        `gorm:"type:char(36);uniqueIndex;not null"`
	User           user.User        `gorm:"foreignKey:UserID"` // ارتباط با مدل User
	StageName      string           `gorm:"type:varchar(128);index;not null"`
	Bio            string           `gorm:"type:text"`
	Industries     []string         `gorm:"serializer:json;type:text"`
	SocialLinks    user.SocialLinks `gorm:"serializer:json;type:text"`
	IsVerified     bool             `gorm:"not null;default:false;index"`
	FollowersCount int64            `gorm:"not null;default:0;index"`
	Rating         float64          `gorm:"not null;default:0"`
	ProfileViews   int64            `gorm:"not null;default:0"`
	CreatedAt      time.Time        `gorm:"autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"autoUpdateTime"`
}
