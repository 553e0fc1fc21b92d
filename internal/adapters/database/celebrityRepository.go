package database

import (
	"context"
	"strings"

	"celebnetwork/internal/core/celebrity"
	celebrityPort "celebnetwork/internal/ports/celebrity"

	"gorm.io/gorm"
)

// CelebrityRepositoryDatabase پیاده‌سازی CelebrityRepository برای دیتابیس
type CelebrityRepositoryDatabase struct {
	db *gorm.DB
}

// NewCelebrityRepositoryDatabase سازنده CelebrityRepositoryDatabase
func NewCelebrityRepositoryDatabase(db *gorm.DB) *CelebrityRepositoryDatabase {
	return &CelebrityRepositoryDatabase{db: db}
}

func (repo *CelebrityRepositoryDatabase) FindByID(ctx context.Context, id string) (*celebrity.Celebrity, error) {
	var c celebrity.Celebrity
	if err := repo.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&c).Error; err != nil {
		return nil, translate(err, "celebrity")
	}
	return &c, nil
}

func (repo *CelebrityRepositoryDatabase) FindByUserID(ctx context.Context, userID string) (*celebrity.Celebrity, error) {
	var c celebrity.Celebrity
	if err := repo.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&c).Error; err != nil {
		return nil, translate(err, "celebrity")
	}
	return &c, nil
}

// کاراکتر escape در همه‌ی درایورها یکسان رفتار می‌کند؛ بک‌اسلش در MySQL خودش escape رشته است
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// escapeLike ورودی کاربر را برای LIKE ... ESCAPE '!' به متن ساده تبدیل می‌کند
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// List جستجوی بدون حساسیت به حروف روی نام، نام خانوادگی و نام هنری
func (repo *CelebrityRepositoryDatabase) List(ctx context.Context, filter celebrityPort.ListFilter) ([]*celebrity.Celebrity, error) {
	q := repo.db.WithContext(ctx).
		Model(&celebrity.Celebrity{}).
		Select("celebrities.*").
		Joins("JOIN users ON users.id = celebrities.user_id").
		Preload("User")

	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + escapeLike(strings.ToLower(s)) + "%"
		q = q.Where("(LOWER(users.first_name) LIKE ? ESCAPE '!' OR LOWER(users.last_name) LIKE ? ESCAPE '!' OR LOWER(celebrities.stage_name) LIKE ? ESCAPE '!')", like, like, like)
	}
	if ind := strings.TrimSpace(filter.Industry); ind != "" {
		// industries به صورت آرایه‌ی JSON ذخیره شده است
		q = q.Where("LOWER(celebrities.industries) LIKE ? ESCAPE '!'", `%"`+escapeLike(strings.ToLower(ind))+`"%`)
	}
	if filter.VerifiedOnly {
		q = q.Where("celebrities.is_verified = ?", true)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var list []*celebrity.Celebrity
	if err := q.Order("celebrities.followers_count DESC").
		Order("celebrities.created_at ASC").
		Find(&list).Error; err != nil {
		return nil, translate(err, "celebrities")
	}
	return list, nil
}

func (repo *CelebrityRepositoryDatabase) Featured(ctx context.Context, limit int, verifiedOnly bool) ([]*celebrity.Celebrity, error) {
	q := repo.db.WithContext(ctx).Preload("User")
	if verifiedOnly {
		q = q.Where("is_verified = ?", true)
	}

	var list []*celebrity.Celebrity
	if err := q.Order("followers_count DESC").
		Order("created_at ASC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, translate(err, "celebrities")
	}
	return list, nil
}

func (repo *CelebrityRepositoryDatabase) Update(ctx context.Context, id string, changes *celebrity.Celebrity, columns []string) error {
	if len(columns) == 0 {
		return nil
	}
	res := repo.db.WithContext(ctx).Model(&celebrity.Celebrity{}).
		Where("id = ?", id).
		Select(columns).
		Updates(changes)
	return translate(res.Error, "celebrity")
}

func (repo *CelebrityRepositoryDatabase) AddProfileViews(ctx context.Context, id string, n int64) error {
	if n <= 0 {
		return nil
	}
	return translate(repo.db.WithContext(ctx).Model(&celebrity.Celebrity{}).
		Where("id = ?", id).
		UpdateColumn("profile_views", gorm.Expr("profile_views + ?", n)).Error, "celebrity")
}

// ReconcileFollowerCounts تعداد سطرهای اصلاح‌شده را برمی‌گرداند
func (repo *CelebrityRepositoryDatabase) ReconcileFollowerCounts(ctx context.Context) (int64, error) {
	res := repo.db.WithContext(ctx).Exec(`
		UPDATE celebrities
		SET followers_count = (SELECT COUNT(*) FROM followings WHERE followings.celebrity_id = celebrities.id)
		WHERE followers_count <> (SELECT COUNT(*) FROM followings WHERE followings.celebrity_id = celebrities.id)
	`)
	if res.Error != nil {
		return 0, translate(res.Error, "reconcile followers")
	}
	return res.RowsAffected, nil
}
