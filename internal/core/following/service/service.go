package followingapp

import (
	"context"
	"errors"
	"fmt"

	"celebnetwork/internal/config"
	"celebnetwork/internal/core/errs"
	celebrityPort "celebnetwork/internal/ports/celebrity"
	fanPort "celebnetwork/internal/ports/fan"
	followingPort "celebnetwork/internal/ports/following"

	"go.uber.org/zap"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type FollowingService struct {
	FollowingRepository followingPort.FollowingRepository
	FanRepository       fanPort.FanRepository
	Cache               celebrityPort.FeaturedCache // اختیاری
}

func NewFollowingService(repo followingPort.FollowingRepository, fans fanPort.FanRepository, cache celebrityPort.FeaturedCache) *FollowingService {
	return &FollowingService{
		FollowingRepository: repo,
		FanRepository:       fans,
		Cache:               cache,
	}
}

// fanIDFor فقط کاربرانی که پروفایل فن دارند می‌توانند دنبال کنند
func (s *FollowingService) fanIDFor(ctx context.Context, userID string) (string, error) {
	f, err := s.FanRepository.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			config.Logger.Warn("⚠️ Follow attempt without fan profile", zap.String("userID", userID))
			return "", fmt.Errorf("%w: only fans can follow celebrities", errs.ErrForbidden)
		}
		return "", err
	}
	return f.ID.String(), nil
}

// Follow دنبال کردن سلبریتی؛ تکرار آن بدون اثر است
func (s *FollowingService) Follow(ctx context.Context, userID, celebrityID string) (*followingPort.FollowResultDTO, error) {
	fanID, err := s.fanIDFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	created, count, err := s.FollowingRepository.Follow(ctx, fanID, celebrityID)
	if err != nil {
		return nil, err
	}

	if !created {
		return &followingPort.FollowResultDTO{
			Message:          "Already following this celebrity",
			Following:        true,
			AlreadyFollowing: true,
			FollowersCount:   count,
		}, nil
	}

	s.invalidate(ctx)
	config.Logger.Info("✅ Fan followed celebrity", zap.String("fanID", fanID), zap.String("celebrityID", celebrityID))
	return &followingPort.FollowResultDTO{
		Message:        "Successfully followed celebrity",
		Following:      true,
		FollowersCount: count,
	}, nil
}

// Unfollow لغو دنبال کردن؛ اگر رابطه‌ای نباشد خطا نیست
func (s *FollowingService) Unfollow(ctx context.Context, userID, celebrityID string) (*followingPort.FollowResultDTO, error) {
	fanID, err := s.fanIDFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	deleted, count, err := s.FollowingRepository.Unfollow(ctx, fanID, celebrityID)
	if err != nil {
		return nil, err
	}

	if !deleted {
		return &followingPort.FollowResultDTO{
			Message:        "Not following this celebrity",
			FollowersCount: count,
		}, nil
	}

	s.invalidate(ctx)
	config.Logger.Info("✅ Fan unfollowed celebrity", zap.String("fanID", fanID), zap.String("celebrityID", celebrityID))
	return &followingPort.FollowResultDTO{
		Message:        "Successfully unfollowed celebrity",
		WasFollowing:   true,
		FollowersCount: count,
	}, nil
}

func (s *FollowingService) Status(ctx context.Context, userID, celebrityID string) (bool, error) {
	fanID, err := s.fanIDFor(ctx, userID)
	if err != nil {
		return false, err
	}
	return s.FollowingRepository.IsFollowing(ctx, fanID, celebrityID)
}

// Following سلبریتی‌هایی که یک فن دنبال می‌کند
func (s *FollowingService) Following(ctx context.Context, fanID string, limit, offset int) ([]*celebrityPort.CelebrityDTO, error) {
	if _, err := s.FanRepository.FindByID(ctx, fanID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}

	list, err := s.FollowingRepository.ListCelebritiesByFan(ctx, fanID, limit, offset)
	if err != nil {
		return nil, err
	}
	return celebrityPort.ToCelebrityDTOs(list), nil
}

func (s *FollowingService) invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx); err != nil {
		config.Logger.Warn("⚠️ Could not invalidate featured cache", zap.Error(err))
	}
}
