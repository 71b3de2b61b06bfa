package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/schoolmeal-backend/internal/http/response"
	"github.com/yungbote/schoolmeal-backend/internal/nutrition"
	"github.com/yungbote/schoolmeal-backend/internal/services"
)

type TemplateHandler struct {
	templateService services.TemplateService
}

func NewTemplateHandler(templateService services.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// GET /api/templates
func (th *TemplateHandler) List(c *gin.Context) {
	tpls, err := th.templateService.ListTemplates(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"templates": tpls})
}

// POST /api/templates
// body: { "name": "Rice", "calories": 130, "protein": "2.7", ... }
// Nutrient values may be JSON numbers or strings.
func (th *TemplateHandler) Create(c *gin.Context) {
	var raw map[string]json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	in := services.TemplateInput{Values: map[string]string{}}
	if v, ok := raw["name"]; ok {
		in.Name = rawText(v)
	}
	for _, n := range nutrition.Tracked {
		if v, ok := raw[string(n)]; ok && string(v) != "null" {
			in.Values[string(n)] = rawText(v)
		}
	}
	tpl, err := th.templateService.CreateTemplate(c.Request.Context(), in)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"template": tpl})
}

// DELETE /api/templates/:id
func (th *TemplateHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_template_id", err)
		return
	}
	if err := th.templateService.DeleteTemplate(c.Request.Context(), id); err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// rawText unquotes JSON strings and returns any other literal as written.
func rawText(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(v))
}
