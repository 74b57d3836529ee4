package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/domains/project/model"
	"portfolio-backend/internal/domains/project/service"
	"portfolio-backend/internal/shared/response"
)

type ProjectHandler struct {
	service service.Service
}

func NewProjectHandler(svc service.Service) *ProjectHandler {
	return &ProjectHandler{service: svc}
}

// GetAll handles GET /projects. Public; an empty collection is an empty
// array, not an error.
func (h *ProjectHandler) GetAll(c *gin.Context) {
	items, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	if items == nil {
		items = []model.Project{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Create handles POST /projects.
func (h *ProjectHandler) Create(c *gin.Context) {
	var req model.CreateProjectRequest
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

// Update handles PUT /projects with {id, ...fields}. A featured value that
// differs from the stored state is routed to ToggleFeatured so the
// single-featured invariant has one entry point; the generic merge never
// writes the flag.
func (h *ProjectHandler) Update(c *gin.Context) {
	var req model.UpdateProjectRequest
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

	if req.Featured != nil {
		current, err := h.service.GetOne(c.Request.Context(), req.ID)
		if err != nil {
			response.FromError(c, err)
			return
		}
		if current.Featured != *req.Featured {
			if _, err := h.service.ToggleFeatured(c.Request.Context(), req.ID); err != nil {
				response.FromError(c, err)
				return
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Delete handles DELETE /projects?id=... Idempotent.
func (h *ProjectHandler) Delete(c *gin.Context) {
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

// Reorder handles POST /projects/reorder with the full id permutation.
func (h *ProjectHandler) Reorder(c *gin.Context) {
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

// ToggleFeatured handles POST /projects/:id/feature.
func (h *ProjectHandler) ToggleFeatured(c *gin.Context) {
	featured, err := h.service.ToggleFeatured(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "featured": featured})
}
