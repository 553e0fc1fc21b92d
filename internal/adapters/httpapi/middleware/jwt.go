package middleware

import (
	"net/http"
	"strings"

	userEntity "celebnetwork/internal/core/user"
	"celebnetwork/internal/security"

	"github.com/gin-gonic/gin"
)

// کلیدهای context که بعد از احراز هویت مقداردهی می‌شوند
const (
	CtxUserID = "userID"
	CtxEmail  = "email"
	CtxRole   = "role"
)

type TokenVerifier interface {
	Verify(token string) (*security.Claims, error)
}

// Abort پاسخ خطا با قالب یکسان {statusCode, message, error}
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"statusCode": status,
		"message":    message,
		"error":      http.StatusText(status),
	})
}

// JWTAuth توکن Bearer را بررسی و اطلاعات کاربر را در context قرار می‌دهد
func JWTAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			Abort(c, http.StatusUnauthorized, "authorization header is required")
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			Abort(c, http.StatusUnauthorized, "authorization header must be Bearer <token>")
			return
		}

		claims, err := verifier.Verify(strings.TrimSpace(token))
		if err != nil {
			Abort(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		c.Set(CtxUserID, claims.UserID())
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

// RequireRole فقط نقش‌های داده‌شده اجازه‌ی عبور دارند؛ باید بعد از JWTAuth بیاید
func RequireRole(roles ...userEntity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := userEntity.Role(c.GetString(CtxRole))
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		Abort(c, http.StatusForbidden, "insufficient role")
	}
}

// ActorFrom کاربر احراز هویت‌شده‌ی درخواست
func ActorFrom(c *gin.Context) (userEntity.Actor, bool) {
	userID := c.GetString(CtxUserID)
	if userID == "" {
		return userEntity.Actor{}, false
	}
	return userEntity.Actor{UserID: userID, Role: userEntity.Role(c.GetString(CtxRole))}, true
}
