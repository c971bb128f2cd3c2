package handlers

import (
	"net/http"

	"github.com/csdept/deptsite-api/internal/models"
	"github.com/csdept/deptsite-api/internal/services"
	"github.com/gin-gonic/gin"
)

type PageHandler struct {
	service services.PageServiceInterface
}

func NewPageHandler(service services.PageServiceInterface) *PageHandler {
	return &PageHandler{service: service}
}

// ActiveNav handles GET /nav/active?path=
func (h *PageHandler) ActiveNav(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.ActiveNav(c.DefaultQuery("path", "/")))
}

// StatFrames handles GET /stats/frames?target=N
func (h *PageHandler) StatFrames(c *gin.Context) {
	if c.Query("target") == "" {
		respondError(c, http.StatusBadRequest, "target is required", nil)
		return
	}

	var q models.StatFramesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid query", ParseValidationErrors(err), err)
		return
	}

	frames, err := h.service.StatFrames(q.Target)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.JSON(http.StatusOK, frames)
}
