package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/csdept/deptsite-api/internal/cache"
	"github.com/gin-gonic/gin"
)

// RosterStatus reports whether the faculty roster is loaded and when it
// was last refreshed
type RosterStatus interface {
	IsReady() bool
	GetMetadata() (*cache.CacheMetadata, error)
}

type HealthHandler struct {
	roster RosterStatus
	dbPing func(ctx context.Context) error
}

// NewHealthHandler creates a health handler. dbPing may be nil when the
// service runs without a database.
func NewHealthHandler(roster RosterStatus, dbPing func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{
		roster: roster,
		dbPing: dbPing,
	}
}

func (h *HealthHandler) Healthcheck(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")

	if !h.roster.IsReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"reason": "faculty roster not loaded",
		})
		return
	}

	if h.dbPing != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.dbPing(ctx); err != nil {
			attachError(c, err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"reason": "database unreachable",
			})
			return
		}
	}

	body := gin.H{"status": "ok"}
	if meta, err := h.roster.GetMetadata(); err == nil {
		body["roster"] = gin.H{
			"count":         meta.FacultyCount,
			"lastRefreshed": meta.LastRefreshTime.UTC().Format(time.RFC3339),
		}
	}
	c.JSON(http.StatusOK, body)
}
