package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/schoolmeal-backend/internal/http/response"
	"github.com/yungbote/schoolmeal-backend/internal/platform/authz"
	"github.com/yungbote/schoolmeal-backend/internal/services"
)

const noSelectionsMessage = "no selections yet"

type AnalysisHandler struct {
	analysisService services.AnalysisService
}

func NewAnalysisHandler(analysisService services.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// GET /api/analysis/:day
func (ah *AnalysisHandler) Mine(c *gin.Context) {
	actor, err := authz.ActorFrom(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	ah.respond(c, actor.ID)
}

// GET /api/admin/students/:id/analysis/:day
func (ah *AnalysisHandler) ForStudent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_student_id", err)
		return
	}
	ah.respond(c, id)
}

func (ah *AnalysisHandler) respond(c *gin.Context, studentID uuid.UUID) {
	a, err := ah.analysisService.Analyze(c.Request.Context(), studentID, c.Param("day"))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	if a == nil {
		response.RespondOK(c, gin.H{"analysis": nil, "message": noSelectionsMessage})
		return
	}
	response.RespondOK(c, gin.H{"analysis": a})
}
