package handlers

import (
	"net/http"

	"github.com/csdept/deptsite-api/internal/models"
	"github.com/csdept/deptsite-api/internal/services"
	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	service services.ContactServiceInterface
}

func NewContactHandler(service services.ContactServiceInterface) *ContactHandler {
	return &ContactHandler{service: service}
}

// ValidateField handles POST /contact/validate for live field feedback
func (h *ContactHandler) ValidateField(c *gin.Context) {
	var req models.ValidateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request", ParseValidationErrors(err), err)
		return
	}

	res, err := h.service.ValidateField(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Submit handles POST /contact. Field rule failures are a 422 with
// per-field feedback; malformed bodies are a 400.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req models.ContactFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request", ParseValidationErrors(err), err)
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if !resp.Success {
		c.JSON(http.StatusUnprocessableEntity, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}
