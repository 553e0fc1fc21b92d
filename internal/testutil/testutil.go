// Package testutil دیتابیس sqlite در حافظه و داده‌ی نمونه برای تست‌ها
package testutil

import (
	"fmt"
	"testing"

	"celebnetwork/internal/config"
	"celebnetwork/internal/core/celebrity"
	"celebnetwork/internal/core/fan"
	"celebnetwork/internal/core/user"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewDB هر تست دیتابیس جداگانه‌ی خودش را می‌گیرد
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", uuid.Must(uuid.NewV4()).String())
	db, err := config.OpenDB("sqlite", dsn)
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	t.Cleanup(func() { config.CloseDB(db) })
	return db
}

func newUser(email, first, last string, role user.Role) *user.User {
	return &user.User{
		ID:        uuid.Must(uuid.NewV4()),
		Email:     email,
		Password:  "$2a$04$placeholderplaceholderplaceholderplaceholderplacehold",
		Role:      role,
		FirstName: first,
		LastName:  last,
		IsActive:  true,
	}
}

// SeedFan ساخت کاربر فن به همراه پروفایل
func SeedFan(t testing.TB, db *gorm.DB, email, first, last string) (*user.User, *fan.Fan) {
	t.Helper()

	u := newUser(email, first, last, user.RoleFan)
	require.NoError(t, db.Create(u).Error)

	f := &fan.Fan{ID: uuid.Must(uuid.NewV4()), UserID: u.ID}
	require.NoError(t, db.Omit(clause.Associations).Create(f).Error)
	f.User = *u
	return u, f
}

// CelebritySeed مقادیر اولیه‌ی سلبریتی نمونه
type CelebritySeed struct {
	Email          string
	FirstName      string
	LastName       string
	StageName      string
	Industries     []string
	Verified       bool
	FollowersCount int64
}

func SeedCelebrity(t testing.TB, db *gorm.DB, s CelebritySeed) (*user.User, *celebrity.Celebrity) {
	t.Helper()

	u := newUser(s.Email, s.FirstName, s.LastName, user.RoleCelebrity)
	require.NoError(t, db.Create(u).Error)

	c := &celebrity.Celebrity{
		ID:             uuid.Must(uuid.NewV4()),
		UserID:         u.ID,
		StageName:      s.StageName,
		Industries:     s.Industries,
		IsVerified:     s.Verified,
		FollowersCount: s.FollowersCount,
	}
	require.NoError(t, db.Omit(clause.Associations).Create(c).Error)
	c.User = *u
	return u, c
}

// SeedAdmin ساخت کاربر ادمین
func SeedAdmin(t testing.TB, db *gorm.DB, email string) *user.User {
	t.Helper()

	u := newUser(email, "Admin", "User", user.RoleAdmin)
	require.NoError(t, db.Create(u).Error)
	return u
}
