package celebrity

import (
	"context"
	"time"

	"celebnetwork/internal/core/celebrity"
	"celebnetwork/internal/core/user"
)

// CelebrityRepository پورت برای ذخیره‌سازی و بازیابی سلبریتی‌ها
type CelebrityRepository interface {
	FindByID(ctx context.Context, id string) (*celebrity.Celebrity, error)
	FindByUserID(ctx context.Context, userID string) (*celebrity.Celebrity, error)
	List(ctx context.Context, filter ListFilter) ([]*celebrity.Celebrity, error)
	Featured(ctx context.Context, limit int, verifiedOnly bool) ([]*celebrity.Celebrity, error)
	Update(ctx context.Context, id string, changes *celebrity.Celebrity, columns []string) error
	AddProfileViews(ctx context.Context, id string, n int64) error
	// ReconcileFollowerCounts شمارنده‌ی فالوورها را از جدول followings بازسازی می‌کند
	ReconcileFollowerCounts(ctx context.Context) (int64, error)
}

type ListFilter struct {
	Search       string
	Industry     string
	VerifiedOnly bool
	Limit        int
	Offset       int
}

// UpdateCelebrityInput فیلدهای nil تغییر نمی‌کنند؛ وضعیت تایید از این مسیر قابل تغییر نیست
type UpdateCelebrityInput struct {
	StageName   *string           `json:"stageName" validate:"omitempty,min=1,max=128"`
	Bio         *string           `json:"bio" validate:"omitempty,max=2000"`
	Industries  *[]string         `json:"industries" validate:"omitempty,max=20,dive,required,max=64"`
	SocialLinks *user.SocialLinks `json:"socialLinks"`
}

// ViewCounter بازدیدهای پروفایل را ثبت و به صورت دسته‌ای تحویل می‌دهد
type ViewCounter interface {
	Record(ctx context.Context, celebrityID string) error
	Pending(ctx context.Context, celebrityID string) (int64, error)
	Drain(ctx context.Context) (map[string]int64, error)
	// Restore بازدیدهایی را که Drain برداشته ولی در دیتابیس ننشسته‌اند برمی‌گرداند
	Restore(ctx context.Context, celebrityID string, n int64) error
}

// FeaturedCache کش لیست سلبریتی‌های برگزیده
type FeaturedCache interface {
	Get(ctx context.Context, limit int, verifiedOnly bool) ([]*CelebrityDTO, bool)
	Set(ctx context.Context, limit int, verifiedOnly bool, list []*CelebrityDTO) error
	Invalidate(ctx context.Context) error
}

// DTOها برای UseCase
type CelebrityDTO struct {
	ID             string            `json:"id"`
	UserID         string            `json:"userId"`
	StageName      string            `json:"stageName"`
	FirstName      string            `json:"firstName"`
	LastName       string            `json:"lastName"`
	Avatar         string            `json:"avatar,omitempty"`
	Bio            string            `json:"bio,omitempty"`
	Industries     []string          `json:"industries"`
	SocialLinks    user.SocialLinks  `json:"socialLinks"`
	IsVerified     bool              `json:"isVerified"`
	FollowersCount int64             `json:"followersCount"`
	Rating         float64           `json:"rating"`
	ProfileViews   int64             `json:"profileViews"`
	CreatedAt      time.Time         `json:"createdAt"`
}

func ToCelebrityDTO(c *celebrity.Celebrity) *CelebrityDTO {
	industries := c.Industries
	if industries == nil {
		industries = []string{}
	}
	return &CelebrityDTO{
		ID:             c.ID.String(),
		UserID:         c.UserID.String(),
		StageName:      c.StageName,
		FirstName:      c.User.FirstName,
		LastName:       c.User.LastName,
		Avatar:         c.User.Avatar,
		Bio:            c.Bio,
		Industries:     industries,
		SocialLinks:    c.SocialLinks,
		IsVerified:     c.IsVerified,
		FollowersCount: c.FollowersCount,
		Rating:         c.Rating,
		ProfileViews:   c.ProfileViews,
		CreatedAt:      c.CreatedAt,
	}
}

func ToCelebrityDTOs(list []*celebrity.Celebrity) []*CelebrityDTO {
	out := make([]*CelebrityDTO, 0, len(list))
	for _, c := range list {
		out = append(out, ToCelebrityDTO(c))
	}
	return out
}
