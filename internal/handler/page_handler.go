package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"activitymagic/internal/domain"
	"activitymagic/internal/service"
)

// PageHandler handles page content fetching.
type PageHandler struct {
	svc service.PageService
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(svc service.PageService) *PageHandler {
	return &PageHandler{svc: svc}
}

type fetchPageRequest struct {
	URL string `json:"url"`
}

// FetchPage handles POST /api/v1/pages/fetch
func (h *PageHandler) FetchPage(c *gin.Context) {
	var req fetchPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleError(c, domain.ErrInvalidRequest)
		return
	}

	page, err := h.svc.FetchPage(c.Request.Context(), req.URL)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"page":    page,
	})
}
