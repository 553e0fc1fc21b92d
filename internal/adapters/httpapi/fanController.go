package httpapi

import (
	"net/http"

	"celebnetwork/internal/adapters/httpapi/middleware"
	fanPort "celebnetwork/internal/ports/fan"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

type FanController struct {
	uc FanUseCase
	fc FollowingUseCase
}

func NewFanController(uc FanUseCase, fc FollowingUseCase) *FanController {
	return &FanController{uc: uc, fc: fc}
}

func fanID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.FromString(id); err != nil {
		badRequest(c, "invalid fan id")
		return "", false
	}
	return id, true
}

func (ctl *FanController) Get(c *gin.Context) {
	id, ok := fanID(c)
	if !ok {
		return
	}
	res, err := ctl.uc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fan": res})
}

func (ctl *FanController) Update(c *gin.Context) {
	id, ok := fanID(c)
	if !ok {
		return
	}
	var req fanPort.UpdateFanInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid input")
		return
	}
	actor, _ := middleware.ActorFrom(c)
	res, err := ctl.uc.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fan": res})
}

func (ctl *FanController) Following(c *gin.Context) {
	id, ok := fanID(c)
	if !ok {
		return
	}
	list, err := ctl.fc.Following(c.Request.Context(), id, queryInt(c, "limit", 0), queryInt(c, "offset", 0))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"celebrities": list})
}
