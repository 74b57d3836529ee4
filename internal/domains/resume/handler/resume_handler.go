package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/domains/resume/service"
	"portfolio-backend/internal/shared/middleware"
	"portfolio-backend/internal/shared/response"
)

type ResumeHandler struct {
	service service.Service
}

func NewResumeHandler(svc service.Service) *ResumeHandler {
	return &ResumeHandler{service: svc}
}

// Get handles GET /resume: metadata plus recent download stats.
func (h *ResumeHandler) Get(c *gin.Context) {
	info, err := h.service.Get(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// Upload handles POST /resume (multipart, field "file").
func (h *ResumeHandler) Upload(c *gin.Context) {
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

	meta, err := h.service.Upload(c.Request.Context(), fileHeader.Filename, data)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"url":      meta.URL,
		"filename": meta.Filename,
	})
}

type trackRequest struct {
	UserAgent string `json:"userAgent"`
}

// Track handles POST /resume/download. The user agent comes from the body
// when the client sends one, otherwise from the request header; the IP is
// resolved server-side.
func (h *ResumeHandler) Track(c *gin.Context) {
	var req trackRequest
	_ = c.ShouldBindJSON(&req)
	userAgent := req.UserAgent
	if userAgent == "" {
		userAgent = c.Request.UserAgent()
	}

	ip := middleware.ClientIPFrom(c.Request.Context())
	if ip == "" {
		ip = c.ClientIP()
	}

	if err := h.service.Track(c.Request.Context(), userAgent, ip); err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Export handles GET /resume/downloads/export with an xlsx attachment.
func (h *ResumeHandler) Export(c *gin.Context) {
	data, err := h.service.ExportDownloads(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="resume-downloads.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
