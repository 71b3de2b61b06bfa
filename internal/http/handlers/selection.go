package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/schoolmeal-backend/internal/http/response"
	"github.com/yungbote/schoolmeal-backend/internal/platform/authz"
	"github.com/yungbote/schoolmeal-backend/internal/services"
)

type SelectionHandler struct {
	selectionService services.SelectionService
}

func NewSelectionHandler(selectionService services.SelectionService) *SelectionHandler {
	return &SelectionHandler{selectionService: selectionService}
}

// PUT /api/selections/:day
// body: { "meals": { "breakfast": ["Eggs"], "lunch": ["Rice", "Beans"] } }
func (sh *SelectionHandler) Replace(c *gin.Context) {
	var req struct {
		Meals map[string][]string `json:"meals"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	actor, err := authz.ActorFrom(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	set, err := sh.selectionService.ReplaceSelections(c.Request.Context(), actor.ID, c.Param("day"), req.Meals)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"selections": set})
}

// GET /api/selections/:day
func (sh *SelectionHandler) Get(c *gin.Context) {
	actor, err := authz.ActorFrom(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	set, err := sh.selectionService.GetSelections(c.Request.Context(), actor.ID, c.Param("day"))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"selections": set})
}

// GET /api/selections/latest
func (sh *SelectionHandler) Latest(c *gin.Context) {
	actor, err := authz.ActorFrom(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	sub, err := sh.selectionService.LatestSubmission(c.Request.Context(), actor.ID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"latest": sub})
}
