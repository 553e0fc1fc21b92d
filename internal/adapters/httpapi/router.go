package httpapi

import (
	"context"
	"net/http"

	"celebnetwork/internal/adapters/httpapi/middleware"
	userEntity "celebnetwork/internal/core/user"
	celebrityPort "celebnetwork/internal/ports/celebrity"
	fanPort "celebnetwork/internal/ports/fan"
	followingPort "celebnetwork/internal/ports/following"
	userPort "celebnetwork/internal/ports/user"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// UserUseCase: اینترفیسِ لازم برای کنترلر/روتر (Inbound Port)
type UserUseCase interface {
	Register(ctx context.Context, in userPort.RegisterInput) (*userPort.AuthResponse, error)
	Login(ctx context.Context, in userPort.LoginInput) (*userPort.AuthResponse, error)
	Profile(ctx context.Context, userID string) (*userPort.ProfileDTO, error)
	UpdateProfile(ctx context.Context, userID string, in userPort.UpdateUserInput) (*userPort.UserDTO, error)
}

type CelebrityUseCase interface {
	List(ctx context.Context, q celebrityPort.ListFilter) ([]*celebrityPort.CelebrityDTO, error)
	Featured(ctx context.Context, limit int, verifiedOnly bool) ([]*celebrityPort.CelebrityDTO, error)
	Get(ctx context.Context, id string) (*celebrityPort.CelebrityDTO, error)
	Update(ctx context.Context, actor userEntity.Actor, id string, in celebrityPort.UpdateCelebrityInput) (*celebrityPort.CelebrityDTO, error)
	SetVerified(ctx context.Context, actor userEntity.Actor, id string, verified bool) (*celebrityPort.CelebrityDTO, error)
	Followers(ctx context.Context, id string, limit, offset int) ([]*fanPort.FanDTO, error)
}

type FollowingUseCase interface {
	Follow(ctx context.Context, userID, celebrityID string) (*followingPort.FollowResultDTO, error)
	Unfollow(ctx context.Context, userID, celebrityID string) (*followingPort.FollowResultDTO, error)
	Status(ctx context.Context, userID, celebrityID string) (bool, error)
	Following(ctx context.Context, fanID string, limit, offset int) ([]*celebrityPort.CelebrityDTO, error)
}

type FanUseCase interface {
	Get(ctx context.Context, id string) (*fanPort.FanDTO, error)
	Update(ctx context.Context, actor userEntity.Actor, id string, in fanPort.UpdateFanInput) (*fanPort.FanDTO, error)
}

// Dependencies همه‌ی UseCaseها و وابستگی‌های روتر
type Dependencies struct {
	Users       UserUseCase
	Celebrities CelebrityUseCase
	Followings  FollowingUseCase
	Fans        FanUseCase
	Tokens      middleware.TokenVerifier
	AuthLimiter *middleware.IPRateLimiter // اختیاری
}

// فقط روتینگ: UseCase از بیرون تزریق می‌شود
func SetupRoutes(d Dependencies) *gin.Engine {
	r := gin.Default()
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	uc := NewUserController(d.Users)
	cc := NewCelebrityController(d.Celebrities, d.Followings)
	fc := NewFanController(d.Fans, d.Followings)

	auth := middleware.JWTAuth(d.Tokens)
	fanOnly := middleware.RequireRole(userEntity.RoleFan)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// مسیرهای ثبت‌نام و ورود بدون JWT Middleware
	authGroup := api.Group("/auth")
	if d.AuthLimiter != nil {
		authGroup.Use(middleware.RateLimit(d.AuthLimiter))
	}
	authGroup.POST("/register", uc.Register)
	authGroup.POST("/login", uc.Login)

	users := api.Group("/users", auth)
	users.GET("/profile", uc.Profile)
	users.PUT("/profile", uc.UpdateProfile)

	// لیست و پروفایل عمومی سلبریتی‌ها بدون احراز هویت
	celebs := api.Group("/celebrities")
	celebs.GET("", cc.List)
	celebs.GET("/featured", cc.Featured)
	celebs.GET("/:id", cc.Get)
	celebs.GET("/:id/followers", cc.Followers)
	celebs.PUT("/:id", auth, cc.Update)
	celebs.PATCH("/:id/verify", auth, middleware.RequireRole(userEntity.RoleAdmin), cc.SetVerified)
	celebs.GET("/:id/follow-status", auth, fanOnly, cc.FollowStatus)
	celebs.POST("/:id/follow", auth, fanOnly, cc.Follow)
	celebs.POST("/:id/unfollow", auth, fanOnly, cc.Unfollow)

	fans := api.Group("/fans", auth)
	fans.GET("/:id", fc.Get)
	fans.PUT("/:id", fc.Update)
	fans.GET("/:id/following", fc.Following)

	return r
}
