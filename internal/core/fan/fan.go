package fan

import (
	"time"

	"celebnetwork/internal/core/user"

	"github.com/gofrs/uuid"
)

type Fan struct {
	ID                  uuid.UUID  `gorm:"primaryKey;type:char(36)"`
	UserID              uuid.UUID  `gorm:"type:char(36);uniqueIndex;not null"`
	User                user.User  `gorm:"foreignKey:UserID"` // ارتباط با مدل User
	Interests           []string   `gorm:"serializer:json;type:text"`
	FavoriteCelebrities []string   `gorm:"serializer:json;type:text"`
	DateOfBirth         *time.Time `gorm:"type:date"`
	Location            string     `gorm:"type:varchar(128)"`
	CreatedAt           time.Time  `gorm:"autoCreateTime"`
	UpdatedAt           time.Time  `gorm:"autoUpdateTime"`
}
