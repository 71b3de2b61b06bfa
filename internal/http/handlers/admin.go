package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/schoolmeal-backend/internal/http/response"
	"github.com/yungbote/schoolmeal-backend/internal/services"
)

type AdminHandler struct {
	statsService services.StatsService
	auditService services.AuditService
}

func NewAdminHandler(statsService services.StatsService, auditService services.AuditService) *AdminHandler {
	return &AdminHandler{statsService: statsService, auditService: auditService}
}

// GET /api/admin/stats?from=YYYY-MM-DD&to=YYYY-MM-DD
func (ah *AdminHandler) Stats(c *gin.Context) {
	stats, err := ah.statsService.Stats(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"stats": stats})
}

// GET /api/admin/audit/dangling
func (ah *AdminHandler) Dangling(c *gin.Context) {
	rows, err := ah.auditService.ListDangling(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"dangling": rows, "count": len(rows)})
}

// POST /api/admin/audit/dangling/purge
func (ah *AdminHandler) Purge(c *gin.Context) {
	res, err := ah.auditService.PurgeDangling(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"purge": res})
}
