package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"activitymagic/internal/domain"
	"activitymagic/internal/extract"
	"activitymagic/internal/middleware"
	"activitymagic/internal/service"
)

// ExtractHandler handles the extraction endpoints. Responses follow the
// shape the mobile and web clients already consume: a flat object with a
// success flag and the task's payload under its own key.
type ExtractHandler struct {
	svc service.ExtractionService
}

// NewExtractHandler creates a new ExtractHandler.
func NewExtractHandler(svc service.ExtractionService) *ExtractHandler {
	return &ExtractHandler{svc: svc}
}

// ProcessActivity handles POST /api/v1/extract/activity
func (h *ExtractHandler) ProcessActivity(c *gin.Context) {
	var req extract.ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleError(c, domain.ErrInvalidRequest)
		return
	}

	activity, source, err := h.svc.ProcessActivity(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"activity": activity,
		"source":   source,
	})
}

// GenerateIngredients handles POST /api/v1/extract/ingredients
func (h *ExtractHandler) GenerateIngredients(c *gin.Context) {
	var req extract.IngredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleError(c, domain.ErrInvalidRequest)
		return
	}
	if req.Target == "" {
		req.Target = domain.TargetMain
	}

	ingredients, source, err := h.svc.GenerateIngredients(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"ingredients": ingredients,
		"source":      source,
	})
}

// AnalyzeRecipe handles POST /api/v1/extract/recipe
//
// Unlike the other endpoints, a fallback result here reports
// success=false: the slug-derived name is a placeholder the client
// should let the user confirm, not a trusted analysis. The fields are
// still populated so the client has something to show.
func (h *ExtractHandler) AnalyzeRecipe(c *gin.Context) {
	var req extract.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleError(c, domain.ErrInvalidRequest)
		return
	}

	analysis, source, err := h.svc.AnalyzeRecipe(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  source == domain.SourceModel,
		"category": analysis.Category,
		"details":  analysis.Details,
		"source":   source,
	})
}

// ProcessInventory handles POST /api/v1/extract/inventory
func (h *ExtractHandler) ProcessInventory(c *gin.Context) {
	var req extract.InventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleError(c, domain.ErrInvalidRequest)
		return
	}

	items, source, err := h.svc.ProcessInventory(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"items":   items,
		"source":  source,
	})
}

// SuggestMeals handles POST /api/v1/extract/meal-suggestions
func (h *ExtractHandler) SuggestMeals(c *gin.Context) {
	var req extract.SuggestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleError(c, domain.ErrInvalidRequest)
		return
	}

	suggestions, source, err := h.svc.SuggestMeals(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"suggestions": suggestions,
		"source":      source,
	})
}

// SuggestInventoryMeals handles POST /api/v1/extract/inventory-meals
func (h *ExtractHandler) SuggestInventoryMeals(c *gin.Context) {
	var req extract.InventoryMealsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleError(c, domain.ErrInvalidRequest)
		return
	}

	meals, source, err := h.svc.SuggestInventoryMeals(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"meals":   meals,
		"source":  source,
	})
}
