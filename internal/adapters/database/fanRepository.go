package database

import (
	"context"

	"celebnetwork/internal/core/fan"

	"gorm.io/gorm"
)

// FanRepositoryDatabase پیاده‌سازی FanRepository برای دیتابیس
type FanRepositoryDatabase struct {
	db *gorm.DB
}

// NewFanRepositoryDatabase سازنده FanRepositoryDatabase
func NewFanRepositoryDatabase(db *gorm.DB) *FanRepositoryDatabase {
	return &FanRepositoryDatabase{db: db}
}

func (repo *FanRepositoryDatabase) FindByID(ctx context.Context, id string) (*fan.Fan, error) {
	var f fan.Fan
	if err := repo.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&f).Error; err != nil {
		return nil, translate(err, "fan")
	}
	return &f, nil
}

func (repo *FanRepositoryDatabase) FindByUserID(ctx context.Context, userID string) (*fan.Fan, error) {
	var f fan.Fan
	if err := repo.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&f).Error; err != nil {
		return nil, translate(err, "fan")
	}
	return &f, nil
}

func (repo *FanRepositoryDatabase) Update(ctx context.Context, id string, changes *fan.Fan, columns []string) error {
	if len(columns) == 0 {
		return nil
	}
	res := repo.db.WithContext(ctx).Model(&fan.Fan{}).
		Where("id = ?", id).
		Select(columns).
		Updates(changes)
	return translate(res.Error, "fan")
}
