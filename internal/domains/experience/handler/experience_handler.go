package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/domains/experience/model"
	"portfolio-backend/internal/domains/experience/service"
	"portfolio-backend/internal/shared/response"
)

type ExperienceHandler struct {
	service service.Service
}

func NewExperienceHandler(svc service.Service) *ExperienceHandler {
	return &ExperienceHandler{service: svc}
}

func (h *ExperienceHandler) GetAll(c *gin.Context) {
	items, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	if items == nil {
		items = []model.Entry{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *ExperienceHandler) Create(c *gin.Context) {
	var req model.CreateEntryRequest
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

func (h *ExperienceHandler) Update(c *gin.Context) {
	var req model.UpdateEntryRequest
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

func (h *ExperienceHandler) Delete(c *gin.Context) {
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

func (h *ExperienceHandler) Reorder(c *gin.Context) {
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
