package following

import (
	"context"

	"celebnetwork/internal/core/celebrity"
	"celebnetwork/internal/core/fan"
)

// FollowingRepository پورت برای رابطه‌ی فن و سلبریتی
// Follow و Unfollow تغییر سطر و شمارنده را در یک تراکنش انجام می‌دهند
type FollowingRepository interface {
	Follow(ctx context.Context, fanID, celebrityID string) (created bool, followersCount int64, err error)
	Unfollow(ctx context.Context, fanID, celebrityID string) (deleted bool, followersCount int64, err error)
	IsFollowing(ctx context.Context, fanID, celebrityID string) (bool, error)
	ListCelebritiesByFan(ctx context.Context, fanID string, limit, offset int) ([]*celebrity.Celebrity, error)
	ListFansByCelebrity(ctx context.Context, celebrityID string, limit, offset int) ([]*fan.Fan, error)
}

// DTOها برای UseCase
type FollowResultDTO struct {
	Message          string `json:"message"`
	Following        bool   `json:"following"`
	AlreadyFollowing bool   `json:"alreadyFollowing,omitempty"`
	WasFollowing     bool   `json:"wasFollowing,omitempty"`
	FollowersCount   int64  `json:"followersCount"`
}
