package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/schoolmeal-backend/internal/http/response"
	"github.com/yungbote/schoolmeal-backend/internal/services"
)

type MenuHandler struct {
	menuService services.MenuService
	now         func() time.Time
}

func NewMenuHandler(menuService services.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService, now: time.Now}
}

// GET /api/menus/current
func (mh *MenuHandler) Current(c *gin.Context) {
	cur, err := mh.menuService.CurrentMenu(c.Request.Context(), mh.now())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"menu": cur})
}

// GET /api/menus/:day
func (mh *MenuHandler) Get(c *gin.Context) {
	menu, err := mh.menuService.GetMenu(c.Request.Context(), c.Param("day"))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"menu": menu})
}

// PUT /api/menus/:day/:slot
// body: { "items": ["Rice", "Beans"] }
func (mh *MenuHandler) Publish(c *gin.Context) {
	var req struct {
		Items []string `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	items, err := mh.menuService.PublishMenu(c.Request.Context(), c.Param("day"), c.Param("slot"), req.Items)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"items": items})
}
