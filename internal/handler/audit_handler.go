package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"activitymagic/internal/middleware"
	"activitymagic/internal/port"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

// AuditHandler exposes the extraction audit log.
type AuditHandler struct {
	repo port.ExtractionAuditRepository
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(repo port.ExtractionAuditRepository) *AuditHandler {
	return &AuditHandler{repo: repo}
}

// List handles GET /api/v1/audit
func (h *AuditHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultAuditLimit)))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > maxAuditLimit {
		limit = defaultAuditLimit
	}

	entries, total, err := h.repo.ListByUser(c.Request.Context(), middleware.UserID(c), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"entries": entries,
		"meta":    PagMeta{Total: total, Offset: offset, Limit: limit},
	})
}
