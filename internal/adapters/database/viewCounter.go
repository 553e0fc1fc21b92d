package database

import (
	"context"

	"celebnetwork/internal/core/celebrity"

	"gorm.io/gorm"
)

// ViewCounterDatabase وقتی Redis در دسترس نیست بازدید را مستقیم در جدول می‌نویسد
// بنابراین چیزی برای Drain باقی نمی‌ماند
type ViewCounterDatabase struct {
	db *gorm.DB
}

func NewViewCounterDatabase(db *gorm.DB) *ViewCounterDatabase {
	return &ViewCounterDatabase{db: db}
}

func (v *ViewCounterDatabase) Record(ctx context.Context, celebrityID string) error {
	return translate(v.db.WithContext(ctx).Model(&celebrity.Celebrity{}).
		Where("id = ?", celebrityID).
		UpdateColumn("profile_views", gorm.Expr("profile_views + ?", 1)).Error, "celebrity")
}

func (v *ViewCounterDatabase) Pending(ctx context.Context, celebrityID string) (int64, error) {
	return 0, nil
}

func (v *ViewCounterDatabase) Drain(ctx context.Context) (map[string]int64, error) {
	return map[string]int64{}, nil
}

func (v *ViewCounterDatabase) Restore(ctx context.Context, celebrityID string, n int64) error {
	return nil
}
