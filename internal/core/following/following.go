package following

import (
	"time"

	"github.com/gofrs/uuid"
)

// Following رابطه‌ی دنبال کردن یک سلبریتی توسط یک فن
// (fan_id, celebrity_id) یکتاست تا دنبال کردن تکراری در سطح دیتابیس رد شود
type Following struct {
	ID          uuid.UUID `gorm:"primaryKey;type:char(36)"`
	FanID       uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_fan_celebrity"`
	CelebrityID uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_fan_celebrity;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}
