package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/schoolmeal-backend/internal/http/response"
	"github.com/yungbote/schoolmeal-backend/internal/legacy"
)

type LegacyHandler struct {
	legacy *legacy.Service
	now    func() time.Time
}

func NewLegacyHandler(svc *legacy.Service) *LegacyHandler {
	return &LegacyHandler{legacy: svc, now: time.Now}
}

// POST /api/legacy/suggest
// body: { "items": ["Rice", "Chicken"] }
func (lh *LegacyHandler) Suggest(c *gin.Context) {
	var req struct {
		Items []string `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	out, err := lh.legacy.Suggest(c.Request.Context(), req.Items)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/legacy/menu/current
func (lh *LegacyHandler) Current(c *gin.Context) {
	cur, err := lh.legacy.Current(c.Request.Context(), lh.now())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"menu": cur})
}
