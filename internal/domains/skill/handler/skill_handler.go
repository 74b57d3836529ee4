package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/domains/skill/model"
	"portfolio-backend/internal/domains/skill/service"
	"portfolio-backend/internal/shared/response"
)

type SkillHandler struct {
	service service.Service
}

func NewSkillHandler(svc service.Service) *SkillHandler {
	return &SkillHandler{service: svc}
}

func (h *SkillHandler) GetAll(c *gin.Context) {
	items, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	if items == nil {
		items = []model.Skill{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *SkillHandler) Create(c *gin.Context) {
	var req model.CreateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	item, err := h.service.CreateOne(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "item": item})
}

func (h *SkillHandler) Update(c *gin.Context) {
	var req model.UpdateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if req.ID == "" {
		response.BadRequest(c, "id is required")
		return
	}
	if err := h.service.UpdateOne(c.Request.Context(), &req); err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *SkillHandler) Delete(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		response.BadRequest(c, "id is required")
		return
	}
	if err := h.service.DeleteOne(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type reorderRequest struct {
	IDs []string `json:"ids"`
}

func (h *SkillHandler) Reorder(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.service.Reorder(c.Request.Context(), req.IDs); err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type bulkRequest struct {
	Skills json.RawMessage `json:"skills"`
}

// BulkReplace handles POST /skills/bulk {skills:[...]}. The payload must
// be an array; elements may be bare strings or {name, order} objects. The
// whole collection is replaced, not merged.
func (h *SkillHandler) BulkReplace(c *gin.Context) {
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var skills []model.BulkSkill
	if err := json.Unmarshal(req.Skills, &skills); err != nil {
		response.BadRequest(c, "skills must be an array")
		return
	}

	saved, err := h.service.ReplaceAllBulk(c.Request.Context(), skills)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "skills": saved})
}
