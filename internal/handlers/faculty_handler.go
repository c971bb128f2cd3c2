package handlers

import (
	"net/http"

	"github.com/csdept/deptsite-api/internal/models"
	"github.com/csdept/deptsite-api/internal/services"
	"github.com/gin-gonic/gin"
)

type FacultyHandler struct {
	service services.DirectoryServiceInterface
}

func NewFacultyHandler(service services.DirectoryServiceInterface) *FacultyHandler {
	return &FacultyHandler{service: service}
}

// Search handles GET /faculty?q=&category=
func (h *FacultyHandler) Search(c *gin.Context) {
	var q models.FilterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid query", ParseValidationErrors(err), err)
		return
	}

	res, err := h.service.Search(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Cache-Control", "public, max-age=60")
	c.JSON(http.StatusOK, res)
}

// Get handles GET /faculty/:id
func (h *FacultyHandler) Get(c *gin.Context) {
	member, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Cache-Control", "public, max-age=60")
	c.JSON(http.StatusOK, member)
}

// Categories handles GET /faculty/categories
func (h *FacultyHandler) Categories(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Cache-Control", "public, max-age=300")
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
