package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Xaan1506/NSTrack-Backend/internal/apperror"
	"github.com/Xaan1506/NSTrack-Backend/internal/dto"
	"github.com/Xaan1506/NSTrack-Backend/internal/middleware"
	"github.com/Xaan1506/NSTrack-Backend/internal/service"
)

type ProgressHandler struct {
	Progress *service.ProgressService
}

// LogProgressHandler godoc
// @Summary Save progress
// @Description Stores any JSON object as a progress entry
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body object true "Progress payload"
// @Success 200 {object} dto.DetailResponse
// @Router /progress/ [post]
func (h *ProgressHandler) LogProgressHandler(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		_ = c.Error(apperror.Validation("payload must be a JSON object"))
		return
	}

	if err := h.Progress.Log(c.Request.Context(), middleware.CurrentUser(c).Email, payload); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.DetailResponse{Detail: "saved"})
}

// ListProgressHandler godoc
// @Summary List progress
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProgressResponse
// @Router /progress/ [get]
func (h *ProgressHandler) ListProgressHandler(c *gin.Context) {
	entries, err := h.Progress.List(c.Request.Context(), middleware.CurrentUser(c).Email)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ProgressResponse{Progress: entries})
}
