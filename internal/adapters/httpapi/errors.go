package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"celebnetwork/internal/adapters/httpapi/middleware"
	"celebnetwork/internal/config"
	"celebnetwork/internal/core/errs"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// writeError تبدیل خطای دامنه به status و بدنه‌ی {statusCode, message, error}
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrValidation):
		middleware.Abort(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrUnauthorized):
		middleware.Abort(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, errs.ErrForbidden):
		middleware.Abort(c, http.StatusForbidden, err.Error())
	case errors.Is(err, errs.ErrNotFound):
		middleware.Abort(c, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrConflict):
		middleware.Abort(c, http.StatusConflict, err.Error())
	default:
		config.Logger.Error("❌ Unhandled error", zap.String("path", c.FullPath()), zap.Error(err))
		middleware.Abort(c, http.StatusInternalServerError, "internal server error")
	}
}

func badRequest(c *gin.Context, message string) {
	middleware.Abort(c, http.StatusBadRequest, message)
}

// queryInt مقدار خالی یا نامعتبر به def برمی‌گردد
func queryInt(c *gin.Context, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func queryBool(c *gin.Context, key string, def bool) bool {
	v := c.Query(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
