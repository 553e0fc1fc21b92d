package httpapi

import (
	"net/http"

	"celebnetwork/internal/adapters/httpapi/middleware"
	celebrityPort "celebnetwork/internal/ports/celebrity"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

type CelebrityController struct {
	cc CelebrityUseCase
	fc FollowingUseCase
}

func NewCelebrityController(cc CelebrityUseCase, fc FollowingUseCase) *CelebrityController {
	return &CelebrityController{cc: cc, fc: fc}
}

// celebrityID شناسه‌ی مسیر را اعتبارسنجی می‌کند
func celebrityID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.FromString(id); err != nil {
		badRequest(c, "invalid celebrity id")
		return "", false
	}
	return id, true
}

func (ctl *CelebrityController) List(c *gin.Context) {
	list, err := ctl.cc.List(c.Request.Context(), celebrityPort.ListFilter{
		Search:       c.Query("search"),
		Industry:     c.Query("industry"),
		VerifiedOnly: queryBool(c, "verified", false),
		Limit:        queryInt(c, "limit", 0),
		Offset:       queryInt(c, "offset", 0),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"celebrities": list, "count": len(list)})
}

func (ctl *CelebrityController) Featured(c *gin.Context) {
	list, err := ctl.cc.Featured(c.Request.Context(), queryInt(c, "limit", 0), queryBool(c, "verifiedOnly", true))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"celebrities": list})
}

func (ctl *CelebrityController) Get(c *gin.Context) {
	id, ok := celebrityID(c)
	if !ok {
		return
	}
	res, err := ctl.cc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"celebrity": res})
}

func (ctl *CelebrityController) Update(c *gin.Context) {
	id, ok := celebrityID(c)
	if !ok {
		return
	}
	var req celebrityPort.UpdateCelebrityInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid input")
		return
	}
	actor, _ := middleware.ActorFrom(c)
	res, err := ctl.cc.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"celebrity": res})
}

func (ctl *CelebrityController) SetVerified(c *gin.Context) {
	id, ok := celebrityID(c)
	if !ok {
		return
	}
	var req struct {
		Verified *bool `json:"verified" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "verified is required")
		return
	}
	actor, _ := middleware.ActorFrom(c)
	res, err := ctl.cc.SetVerified(c.Request.Context(), actor, id, *req.Verified)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"celebrity": res})
}

func (ctl *CelebrityController) Followers(c *gin.Context) {
	id, ok := celebrityID(c)
	if !ok {
		return
	}
	list, err := ctl.cc.Followers(c.Request.Context(), id, queryInt(c, "limit", 0), queryInt(c, "offset", 0))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"followers": list})
}

func (ctl *CelebrityController) FollowStatus(c *gin.Context) {
	id, ok := celebrityID(c)
	if !ok {
		return
	}
	following, err := ctl.fc.Status(c.Request.Context(), c.GetString(middleware.CtxUserID), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": following})
}

func (ctl *CelebrityController) Follow(c *gin.Context) {
	id, ok := celebrityID(c)
	if !ok {
		return
	}
	res, err := ctl.fc.Follow(c.Request.Context(), c.GetString(middleware.CtxUserID), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *CelebrityController) Unfollow(c *gin.Context) {
	id, ok := celebrityID(c)
	if !ok {
		return
	}
	res, err := ctl.fc.Unfollow(c.Request.Context(), c.GetString(middleware.CtxUserID), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
