package database

import (
	"context"

	"celebnetwork/internal/core/celebrity"
	"celebnetwork/internal/core/fan"
	"celebnetwork/internal/core/following"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowingRepositoryDatabase پیاده‌سازی FollowingRepository برای دیتابیس
type FollowingRepositoryDatabase struct {
	db *gorm.DB
}

// NewFollowingRepositoryDatabase سازنده FollowingRepositoryDatabase
func NewFollowingRepositoryDatabase(db *gorm.DB) *FollowingRepositoryDatabase {
	return &FollowingRepositoryDatabase{db: db}
}

// Follow درج در صورت نبود رابطه و افزایش اتمیک شمارنده، هر دو در یک تراکنش
func (repo *FollowingRepositoryDatabase) Follow(ctx context.Context, fanID, celebrityID string) (bool, int64, error) {
	var created bool
	var count int64

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCelebrity(tx, celebrityID); err != nil {
			return err
		}

		f := &following.Following{
			ID:          uuid.Must(uuid.NewV4()),
			FanID:       uuid.FromStringOrNil(fanID),
			CelebrityID: uuid.FromStringOrNil(celebrityID),
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(f)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 1 {
			created = true
			if err := tx.Model(&celebrity.Celebrity{}).
				Where("id = ?", celebrityID).
				UpdateColumn("followers_count", gorm.Expr("followers_count + ?", 1)).Error; err != nil {
				return err
			}
		}

		return followersCount(tx, celebrityID, &count)
	})
	if err != nil {
		return false, 0, translate(err, "celebrity")
	}
	return created, count, nil
}

// Unfollow حذف رابطه و کاهش شمارنده بدون رفتن به زیر صفر
func (repo *FollowingRepositoryDatabase) Unfollow(ctx context.Context, fanID, celebrityID string) (bool, int64, error) {
	var deleted bool
	var count int64

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCelebrity(tx, celebrityID); err != nil {
			return err
		}

		res := tx.Where("fan_id = ? AND celebrity_id = ?", fanID, celebrityID).Delete(&following.Following{})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected > 0 {
			deleted = true
			if err := tx.Model(&celebrity.Celebrity{}).
				Where("id = ? AND followers_count > 0", celebrityID).
				UpdateColumn("followers_count", gorm.Expr("followers_count - ?", 1)).Error; err != nil {
				return err
			}
		}

		return followersCount(tx, celebrityID, &count)
	})
	if err != nil {
		return false, 0, translate(err, "celebrity")
	}
	return deleted, count, nil
}

func (repo *FollowingRepositoryDatabase) IsFollowing(ctx context.Context, fanID, celebrityID string) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&following.Following{}).
		Where("fan_id = ? AND celebrity_id = ?", fanID, celebrityID).
		Count(&count).Error; err != nil {
		return false, translate(err, "following")
	}
	return count > 0, nil
}

func (repo *FollowingRepositoryDatabase) ListCelebritiesByFan(ctx context.Context, fanID string, limit, offset int) ([]*celebrity.Celebrity, error) {
	var list []*celebrity.Celebrity
	if err := repo.db.WithContext(ctx).
		Select("celebrities.*").
		Joins("JOIN followings ON followings.celebrity_id = celebrities.id").
		Where("followings.fan_id = ?", fanID).
		Preload("User").
		Order("followings.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, translate(err, "following")
	}
	return list, nil
}

func (repo *FollowingRepositoryDatabase) ListFansByCelebrity(ctx context.Context, celebrityID string, limit, offset int) ([]*fan.Fan, error) {
	var list []*fan.Fan
	if err := repo.db.WithContext(ctx).
		Select("fans.*").
		Joins("JOIN followings ON followings.fan_id = fans.id").
		Where("followings.celebrity_id = ?", celebrityID).
		Preload("User").
		Order("followings.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, translate(err, "followers")
	}
	return list, nil
}

func ensureCelebrity(tx *gorm.DB, celebrityID string) error {
	var n int64
	if err := tx.Model(&celebrity.Celebrity{}).Where("id = ?", celebrityID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func followersCount(tx *gorm.DB, celebrityID string, out *int64) error {
	return tx.Model(&celebrity.Celebrity{}).
		Select("followers_count").
		Where("id = ?", celebrityID).
		Scan(out).Error
}
