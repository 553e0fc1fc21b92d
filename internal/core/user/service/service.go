package userapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"celebnetwork/internal/config"
	"celebnetwork/internal/core/celebrity"
	"celebnetwork/internal/core/errs"
	"celebnetwork/internal/core/fan"
	userEntity "celebnetwork/internal/core/user"
	celebrityPort "celebnetwork/internal/ports/celebrity"
	fanPort "celebnetwork/internal/ports/fan"
	userPort "celebnetwork/internal/ports/user"
	"celebnetwork/internal/security"
	"celebnetwork/internal/validation"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// پیام یکسان برای همه‌ی خطاهای ورود تا وجود ایمیل لو نرود
var errInvalidCredentials = fmt.Errorf("%w: invalid email or password", errs.ErrUnauthorized)

// TokenIssuer صدور توکن برای کاربر
type TokenIssuer interface {
	Issue(userID, email, role string) (string, int64, error)
}

// UserService سرویس مدیریت کاربران
type UserService struct {
	UserRepository      userPort.UserRepository
	CelebrityRepository celebrityPort.CelebrityRepository
	FanRepository       fanPort.FanRepository
	Cache               celebrityPort.FeaturedCache // اختیاری
	tokens              TokenIssuer
	bcryptCost          int
}

func NewUserService(
	repo userPort.UserRepository,
	celebrities celebrityPort.CelebrityRepository,
	fans fanPort.FanRepository,
	tokens TokenIssuer,
	bcryptCost int,
) *UserService {
	return &UserService{
		UserRepository:      repo,
		CelebrityRepository: celebrities,
		FanRepository:       fans,
		tokens:              tokens,
		bcryptCost:          bcryptCost,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register ثبت‌نام کاربر جدید به همراه پروفایل فن یا سلبریتی
func (s *UserService) Register(ctx context.Context, in userPort.RegisterInput) (*userPort.AuthResponse, error) {
	in.Email = normalizeEmail(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.StageName = strings.TrimSpace(in.StageName)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	// bcrypt فقط 72 بایت اول را در نظر می‌گیرد
	if len(in.Password) > 72 {
		return nil, fmt.Errorf("%w: password must be at most 72 bytes", errs.ErrValidation)
	}

	var dob *time.Time
	if in.DateOfBirth != "" {
		d, err := time.Parse(fanPort.DateLayout, in.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("%w: dateOfBirth must be a date in YYYY-MM-DD format", errs.ErrValidation)
		}
		dob = &d
	}

	// بررسی اینکه آیا کاربر با این ایمیل قبلاً ثبت شده است
	if existing, err := s.UserRepository.FindByEmail(ctx, in.Email); err == nil && existing != nil {
		config.Logger.Warn("⚠️ Email already registered", zap.String("email", in.Email))
		return nil, fmt.Errorf("%w: email already registered", errs.ErrConflict)
	} else if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	hashed, err := security.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	u := &userEntity.User{
		ID:          uuid.Must(uuid.NewV4()),
		Email:       in.Email,
		Password:    hashed,
		Role:        userEntity.Role(in.Role),
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Phone:       in.Phone,
		Bio:         in.Bio,
		Avatar:      in.Avatar,
		SocialLinks: in.SocialLinks,
		IsActive:    true,
	}

	switch u.Role {
	case userEntity.RoleCelebrity:
		err = s.UserRepository.CreateCelebrity(ctx, u, &celebrity.Celebrity{
			ID:          uuid.Must(uuid.NewV4()),
			StageName:   in.StageName,
			Bio:         in.Bio,
			Industries:  in.Industries,
			SocialLinks: in.SocialLinks,
		})
	default:
		err = s.UserRepository.CreateFan(ctx, u, &fan.Fan{
			ID:          uuid.Must(uuid.NewV4()),
			Interests:   in.Interests,
			DateOfBirth: dob,
			Location:    in.Location,
		})
	}
	if err != nil {
		if errors.Is(err, errs.ErrConflict) {
			return nil, fmt.Errorf("%w: email already registered", errs.ErrConflict)
		}
		config.Logger.Error("❌ Failed to register user", zap.String("email", in.Email), zap.Error(err))
		return nil, err
	}

	config.Logger.Info("✅ User registered", zap.String("userID", u.ID.String()), zap.String("role", string(u.Role)))
	if u.Role == userEntity.RoleCelebrity && s.Cache != nil {
		// لیست برگزیده‌ی بدون فیلتر تایید باید سلبریتی تازه را هم ببیند
		if err := s.Cache.Invalidate(ctx); err != nil {
			config.Logger.Warn("⚠️ Could not invalidate featured cache", zap.Error(err))
		}
	}
	return s.authResponse(u)
}

// Login ورود کاربر و صدور توکن JWT
func (s *UserService) Login(ctx context.Context, in userPort.LoginInput) (*userPort.AuthResponse, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	u, err := s.UserRepository.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if !security.CheckPassword(u.Password, in.Password) {
		config.Logger.Warn("⚠️ Invalid password", zap.String("userID", u.ID.String()))
		return nil, errInvalidCredentials
	}
	if !u.IsActive {
		config.Logger.Warn("⚠️ Inactive user tried to log in", zap.String("userID", u.ID.String()))
		return nil, errInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.UserRepository.TouchLogin(ctx, u.ID.String(), now); err != nil {
		config.Logger.Warn("⚠️ Could not stamp last login", zap.Error(err))
	} else {
		u.LastLoginAt = &now
	}

	return s.authResponse(u)
}

func (s *UserService) authResponse(u *userEntity.User) (*userPort.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(u.ID.String(), u.Email, string(u.Role))
	if err != nil {
		config.Logger.Error("❌ Error generating JWT", zap.Error(err))
		return nil, err
	}
	return &userPort.AuthResponse{
		User:        userPort.ToUserDTO(u),
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

// Profile کاربر زنده به همراه پروفایل نقش
func (s *UserService) Profile(ctx context.Context, userID string) (*userPort.ProfileDTO, error) {
	u, err := s.UserRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := &userPort.ProfileDTO{User: userPort.ToUserDTO(u)}
	switch u.Role {
	case userEntity.RoleCelebrity:
		c, err := s.CelebrityRepository.FindByUserID(ctx, userID)
		if err != nil && !errors.Is(err, errs.ErrNotFound) {
			return nil, err
		}
		if c != nil {
			out.Celebrity = celebrityPort.ToCelebrityDTO(c)
		}
	case userEntity.RoleFan:
		f, err := s.FanRepository.FindByUserID(ctx, userID)
		if err != nil && !errors.Is(err, errs.ErrNotFound) {
			return nil, err
		}
		if f != nil {
			out.Fan = fanPort.ToFanDTO(f)
		}
	}
	return out, nil
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}

// UpdateProfile فقط فیلدهای ارسال‌شده را تغییر می‌دهد؛ ایمیل و نقش از این مسیر قابل تغییر نیستند
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in userPort.UpdateUserInput) (*userPort.UserDTO, error) {
	in.FirstName = trimmed(in.FirstName)
	in.LastName = trimmed(in.LastName)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	changes := &userEntity.User{}
	var columns []string
	if in.FirstName != nil {
		changes.FirstName = *in.FirstName
		columns = append(columns, "first_name")
	}
	if in.LastName != nil {
		changes.LastName = *in.LastName
		columns = append(columns, "last_name")
	}
	if in.Phone != nil {
		changes.Phone = *in.Phone
		columns = append(columns, "phone")
	}
	if in.Bio != nil {
		changes.Bio = *in.Bio
		columns = append(columns, "bio")
	}
	if in.Avatar != nil {
		changes.Avatar = *in.Avatar
		columns = append(columns, "avatar")
	}
	if in.SocialLinks != nil {
		changes.SocialLinks = *in.SocialLinks
		columns = append(columns, "social_links")
	}

	u, err := s.UserRepository.Update(ctx, userID, changes, columns)
	if err != nil {
		return nil, err
	}
	return userPort.ToUserDTO(u), nil
}

// CreateAdmin ساخت حساب ادمین؛ فقط از طریق CLI
func (s *UserService) CreateAdmin(ctx context.Context, email, password, firstName, lastName string) (*userPort.UserDTO, error) {
	in := struct {
		Email     string `json:"email" validate:"required,email,max=191"`
		Password  string `json:"password" validate:"required,min=8,max=72,password"`
		FirstName string `json:"firstName" validate:"required,max=64"`
		LastName  string `json:"lastName" validate:"required,max=64"`
	}{normalizeEmail(email), password, strings.TrimSpace(firstName), strings.TrimSpace(lastName)}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	hashed, err := security.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	u := &userEntity.User{
		ID:        uuid.Must(uuid.NewV4()),
		Email:     in.Email,
		Password:  hashed,
		Role:      userEntity.RoleAdmin,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		IsActive:  true,
	}
	if err := s.UserRepository.Create(ctx, u); err != nil {
		return nil, err
	}

	config.Logger.Info("✅ Admin created", zap.String("userID", u.ID.String()))
	return userPort.ToUserDTO(u), nil
}
