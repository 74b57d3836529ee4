package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/domains/media/service"
	"portfolio-backend/internal/shared/response"
)

type MediaHandler struct {
	service service.Service
}

func NewMediaHandler(svc service.Service) *MediaHandler {
	return &MediaHandler{service: svc}
}

// UploadImage handles POST /media/images (multipart: "file" + optional
// "folder").
func (h *MediaHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required (multipart/form-data)")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "cannot read uploaded file")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(c, "cannot read uploaded file")
		return
	}

	upload, err := h.service.UploadImage(c.Request.Context(), data, c.PostForm("folder"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"url":      upload.URL,
		"key":      upload.Key,
		"variants": upload.Variants,
	})
}
