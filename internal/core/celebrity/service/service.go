package celebrityapp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"celebnetwork/internal/config"
	celebrityEntity "celebnetwork/internal/core/celebrity"
	"celebnetwork/internal/core/errs"
	userEntity "celebnetwork/internal/core/user"
	celebrityPort "celebnetwork/internal/ports/celebrity"
	fanPort "celebnetwork/internal/ports/fan"
	followingPort "celebnetwork/internal/ports/following"
	userPort "celebnetwork/internal/ports/user"
	"celebnetwork/internal/validation"

	"go.uber.org/zap"
)

const (
	DefaultListLimit     = 20
	MaxListLimit         = 100
	DefaultFeaturedLimit = 6
	MaxFeaturedLimit     = 50
)

// CelebrityService سرویس پروفایل و لیست سلبریتی‌ها
type CelebrityService struct {
	CelebrityRepository celebrityPort.CelebrityRepository
	UserRepository      userPort.UserRepository
	FollowingRepository followingPort.FollowingRepository
	Views               celebrityPort.ViewCounter
	Cache               celebrityPort.FeaturedCache // اختیاری
}

func NewCelebrityService(
	repo celebrityPort.CelebrityRepository,
	users userPort.UserRepository,
	followings followingPort.FollowingRepository,
	views celebrityPort.ViewCounter,
	cache celebrityPort.FeaturedCache,
) *CelebrityService {
	return &CelebrityService{
		CelebrityRepository: repo,
		UserRepository:      users,
		FollowingRepository: followings,
		Views:               views,
		Cache:               cache,
	}
}

// ClampLimit مقدار پیش‌فرض برای صفر یا منفی و سقف برای مقادیر بزرگ
func ClampLimit(limit, def, hi int) int {
	if limit <= 0 {
		return def
	}
	if limit > hi {
		return hi
	}
	return limit
}

// List جستجو و فیلتر؛ limit و offset نرمال می‌شوند
func (s *CelebrityService) List(ctx context.Context, q celebrityPort.ListFilter) ([]*celebrityPort.CelebrityDTO, error) {
	q.Limit = ClampLimit(q.Limit, DefaultListLimit, MaxListLimit)
	if q.Offset < 0 {
		q.Offset = 0
	}
	list, err := s.CelebrityRepository.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return celebrityPort.ToCelebrityDTOs(list), nil
}

// Featured سلبریتی‌های برتر بر اساس تعداد فالوور؛ در صورت وجود از کش خوانده می‌شود
func (s *CelebrityService) Featured(ctx context.Context, limit int, verifiedOnly bool) ([]*celebrityPort.CelebrityDTO, error) {
	limit = ClampLimit(limit, DefaultFeaturedLimit, MaxFeaturedLimit)

	if s.Cache != nil {
		if cached, ok := s.Cache.Get(ctx, limit, verifiedOnly); ok {
			return cached, nil
		}
	}

	list, err := s.CelebrityRepository.Featured(ctx, limit, verifiedOnly)
	if err != nil {
		return nil, err
	}
	dtos := celebrityPort.ToCelebrityDTOs(list)

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, limit, verifiedOnly, dtos); err != nil {
			config.Logger.Warn("⚠️ Could not cache featured celebrities", zap.Error(err))
		}
	}
	return dtos, nil
}

// Get پروفایل عمومی سلبریتی؛ یک بازدید ثبت می‌کند
func (s *CelebrityService) Get(ctx context.Context, id string) (*celebrityPort.CelebrityDTO, error) {
	c, err := s.CelebrityRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := celebrityPort.ToCelebrityDTO(c)
	if s.Views != nil {
		if err := s.Views.Record(ctx, id); err != nil {
			config.Logger.Warn("⚠️ Could not record profile view", zap.String("celebrityID", id), zap.Error(err))
		} else if pending, err := s.Views.Pending(ctx, id); err == nil {
			// بازدید همین درخواست یا در بافر است یا مستقیم بعد از خواندن سطر در جدول نشسته
			dto.ProfileViews += max(pending, 1)
		}
	}
	return dto, nil
}

// Update فقط صاحب پروفایل یا ادمین
func (s *CelebrityService) Update(ctx context.Context, actor userEntity.Actor, id string, in celebrityPort.UpdateCelebrityInput) (*celebrityPort.CelebrityDTO, error) {
	c, err := s.CelebrityRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.UserID.String() != actor.UserID && !actor.IsAdmin() {
		config.Logger.Warn("⚠️ Celebrity update by non-owner", zap.String("userID", actor.UserID), zap.String("celebrityID", id))
		return nil, fmt.Errorf("%w: only the owner or an admin can update this profile", errs.ErrForbidden)
	}
	if in.StageName != nil {
		name := strings.TrimSpace(*in.StageName)
		in.StageName = &name
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	changes := &celebrityEntity.Celebrity{}
	var columns []string
	if in.StageName != nil {
		changes.StageName = *in.StageName
		columns = append(columns, "stage_name")
	}
	if in.Bio != nil {
		changes.Bio = *in.Bio
		columns = append(columns, "bio")
	}
	if in.Industries != nil {
		changes.Industries = *in.Industries
		columns = append(columns, "industries")
	}
	if in.SocialLinks != nil {
		changes.SocialLinks = *in.SocialLinks
		columns = append(columns, "social_links")
	}

	if err := s.CelebrityRepository.Update(ctx, id, changes, columns); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	updated, err := s.CelebrityRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return celebrityPort.ToCelebrityDTO(updated), nil
}

// SetVerified فقط ادمین؛ نقش از رکورد زنده‌ی کاربر خوانده می‌شود نه از توکن
func (s *CelebrityService) SetVerified(ctx context.Context, actor userEntity.Actor, id string, verified bool) (*celebrityPort.CelebrityDTO, error) {
	u, err := s.UserRepository.FindByID(ctx, actor.UserID)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}
	if u == nil || u.Role != userEntity.RoleAdmin || !u.IsActive {
		config.Logger.Warn("⚠️ Verification attempt by non-admin", zap.String("userID", actor.UserID))
		return nil, fmt.Errorf("%w: admin role required", errs.ErrForbidden)
	}

	if err := s.CelebrityRepository.Update(ctx, id, &celebrityEntity.Celebrity{IsVerified: verified}, []string{"is_verified"}); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	config.Logger.Info("✅ Celebrity verification changed", zap.String("celebrityID", id), zap.Bool("verified", verified))

	c, err := s.CelebrityRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return celebrityPort.ToCelebrityDTO(c), nil
}

// Followers فن‌هایی که این سلبریتی را دنبال می‌کنند
func (s *CelebrityService) Followers(ctx context.Context, id string, limit, offset int) ([]*fanPort.FanDTO, error) {
	if _, err := s.CelebrityRepository.FindByID(ctx, id); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	fans, err := s.FollowingRepository.ListFansByCelebrity(ctx, id, ClampLimit(limit, DefaultListLimit, MaxListLimit), offset)
	if err != nil {
		return nil, err
	}

	out := make([]*fanPort.FanDTO, 0, len(fans))
	for _, f := range fans {
		out = append(out, fanPort.ToFanDTO(f))
	}
	return out, nil
}

func (s *CelebrityService) invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx); err != nil {
		config.Logger.Warn("⚠️ Could not invalidate featured cache", zap.Error(err))
	}
}
