package database

import (
	"context"
	"time"

	"celebnetwork/internal/core/celebrity"
	"celebnetwork/internal/core/fan"
	"celebnetwork/internal/core/user"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepositoryDatabase پیاده‌سازی UserRepository برای دیتابیس
type UserRepositoryDatabase struct {
	db *gorm.DB
}

// NewUserRepositoryDatabase سازنده UserRepositoryDatabase
func NewUserRepositoryDatabase(db *gorm.DB) *UserRepositoryDatabase {
	return &UserRepositoryDatabase{db: db}
}

func (repo *UserRepositoryDatabase) Create(ctx context.Context, u *user.User) error {
	return translate(repo.db.WithContext(ctx).Create(u).Error, "user")
}

func (repo *UserRepositoryDatabase) CreateFan(ctx context.Context, u *user.User, f *fan.Fan) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		f.UserID = u.ID
		return tx.Omit(clause.Associations).Create(f).Error
	})
	return translate(err, "user")
}

func (repo *UserRepositoryDatabase) CreateCelebrity(ctx context.Context, u *user.User, c *celebrity.Celebrity) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		c.UserID = u.ID
		return tx.Omit(clause.Associations).Create(c).Error
	})
	return translate(err, "user")
}

func (repo *UserRepositoryDatabase) FindByID(ctx context.Context, id string) (*user.User, error) {
	var u user.User
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

func (repo *UserRepositoryDatabase) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	if err := repo.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

// Update فقط کلیدهای داده‌شده را بازنویسی می‌کند
func (repo *UserRepositoryDatabase) Update(ctx context.Context, id string, changes *user.User, columns []string) (*user.User, error) {
	if len(columns) > 0 {
		res := repo.db.WithContext(ctx).Model(&user.User{}).
			Where("id = ?", id).
			Select(columns).
			Updates(changes)
		if res.Error != nil {
			return nil, translate(res.Error, "user")
		}
	}
	return repo.FindByID(ctx, id)
}

func (repo *UserRepositoryDatabase) TouchLogin(ctx context.Context, id string, at time.Time) error {
	return translate(repo.db.WithContext(ctx).Model(&user.User{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error, "user")
}
