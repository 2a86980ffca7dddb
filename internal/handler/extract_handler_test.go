package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"activitymagic/internal/domain"
	"activitymagic/internal/handler"
	"activitymagic/mocks"
)

func setupRouter(svc *mocks.MockExtractionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewExtractHandler(svc)
	r := gin.New()
	r.POST("/extract/activity", h.ProcessActivity)
	r.POST("/extract/ingredients", h.GenerateIngredients)
	r.POST("/extract/recipe", h.AnalyzeRecipe)
	r.POST("/extract/inventory", h.ProcessInventory)
	r.POST("/extract/meal-suggestions", h.SuggestMeals)
	r.POST("/extract/inventory-meals", h.SuggestInventoryMeals)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	return w, parsed
}

func TestProcessActivity_Success(t *testing.T) {
	svc := new(mocks.MockExtractionService)
	svc.On("ProcessActivity", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.Activity{Title: "Zoo trip", Description: "A day out", Categories: []domain.Category{domain.CategoryFamily}}, domain.SourceModel, nil)

	w, parsed := doJSON(t, setupRouter(svc), "/extract/activity", `{"content": "zoo trip"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, parsed["success"])
	assert.Equal(t, "model", parsed["source"])
	activity := parsed["activity"].(map[string]interface{})
	assert.Equal(t, "Zoo trip", activity["title"])
}

func TestProcessActivity_ValidationError(t *testing.T) {
	svc := new(mocks.MockExtractionService)
	svc.On("ProcessActivity", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.ResultSource(""), domain.ErrEmptyContent)

	w, parsed := doJSON(t, setupRouter(svc), "/extract/activity", `{"content": ""}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, parsed["success"])
	errObj := parsed["error"].(map[string]interface{})
	assert.Equal(t, "EMPTY_CONTENT", errObj["code"])
}

func TestProcessActivity_MalformedBody(t *testing.T) {
	svc := new(mocks.MockExtractionService)

	w, parsed := doJSON(t, setupRouter(svc), "/extract/activity", `{not json`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, parsed["success"])
	svc.AssertNotCalled(t, "ProcessActivity", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateIngredients_DefaultsTargetToMain(t *testing.T) {
	svc := new(mocks.MockExtractionService)
	svc.On("GenerateIngredients", mock.Anything, mock.Anything, mock.MatchedBy(func(req interface{}) bool {
		return true
	})).Return([]domain.Ingredient{{Name: "Pasta", Amount: "1", Unit: "lb"}}, domain.SourceModel, nil)

	w, parsed := doJSON(t, setupRouter(svc), "/extract/ingredients", `{"category": "Pasta Night"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, parsed["success"])
	ingredients := parsed["ingredients"].([]interface{})
	require.Len(t, ingredients, 1)
}

func TestAnalyzeRecipe_FallbackReportsFailure(t *testing.T) {
	svc := new(mocks.MockExtractionService)
	svc.On("AnalyzeRecipe", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.RecipeAnalysis{Category: "beef stroganoff", Details: "Recipe details from website"}, domain.SourceFallback, nil)

	w, parsed := doJSON(t, setupRouter(svc), "/extract/recipe", `{"url": "https://example.com/recipes/beef-stroganoff"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, parsed["success"])
	assert.Equal(t, "beef stroganoff", parsed["category"])
	assert.Equal(t, "fallback", parsed["source"])
}

func TestAnalyzeRecipe_ModelPathReportsSuccess(t *testing.T) {
	svc := new(mocks.MockExtractionService)
	svc.On("AnalyzeRecipe", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.RecipeAnalysis{Category: "Beef Stroganoff", Details: "Rich and creamy"}, domain.SourceModel, nil)

	w, parsed := doJSON(t, setupRouter(svc), "/extract/recipe", `{"url": "https://example.com/recipes/beef-stroganoff"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, parsed["success"])
	assert.Equal(t, "Beef Stroganoff", parsed["category"])
}

func TestSuggestMeals_Success(t *testing.T) {
	svc := new(mocks.MockExtractionService)
	svc.On("SuggestMeals", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.MealSuggestion{{Title: "A"}, {Title: "B"}, {Title: "C"}}, domain.SourceFallback, nil)

	w, parsed := doJSON(t, setupRouter(svc), "/extract/meal-suggestions", `{"category": "Dinner"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, parsed["success"])
	suggestions := parsed["suggestions"].([]interface{})
	assert.Len(t, suggestions, 3)
}

func TestProcessInventory_MissingLocation(t *testing.T) {
	svc := new(mocks.MockExtractionService)
	svc.On("ProcessInventory", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.ResultSource(""), domain.ErrMissingLocation)

	w, parsed := doJSON(t, setupRouter(svc), "/extract/inventory", `{"raw_input": "milk"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	errObj := parsed["error"].(map[string]interface{})
	assert.Equal(t, "MISSING_LOCATION", errObj["code"])
}

func TestSuggestInventoryMeals_Success(t *testing.T) {
	svc := new(mocks.MockExtractionService)
	svc.On("SuggestInventoryMeals", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.InventoryMeal{{Title: "Fried Rice", Difficulty: domain.DifficultyEasy, Servings: 4}}, domain.SourceModel, nil)

	w, parsed := doJSON(t, setupRouter(svc), "/extract/inventory-meals", `{"ingredients": "rice, eggs"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, parsed["success"])
	meals := parsed["meals"].([]interface{})
	require.Len(t, meals, 1)
}
