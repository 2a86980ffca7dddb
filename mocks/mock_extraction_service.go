package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"activitymagic/internal/domain"
	"activitymagic/internal/extract"
)

// MockExtractionService is a mock implementation of service.ExtractionService.
type MockExtractionService struct {
	mock.Mock
}

func (m *MockExtractionService) ProcessActivity(ctx context.Context, userID uuid.UUID, req *extract.ActivityRequest) (*domain.Activity, domain.ResultSource, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Get(1).(domain.ResultSource), args.Error(2)
	}
	return args.Get(0).(*domain.Activity), args.Get(1).(domain.ResultSource), args.Error(2)
}

func (m *MockExtractionService) GenerateIngredients(ctx context.Context, userID uuid.UUID, req *extract.IngredientsRequest) ([]domain.Ingredient, domain.ResultSource, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Get(1).(domain.ResultSource), args.Error(2)
	}
	return args.Get(0).([]domain.Ingredient), args.Get(1).(domain.ResultSource), args.Error(2)
}

func (m *MockExtractionService) AnalyzeRecipe(ctx context.Context, userID uuid.UUID, req *extract.RecipeRequest) (*domain.RecipeAnalysis, domain.ResultSource, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Get(1).(domain.ResultSource), args.Error(2)
	}
	return args.Get(0).(*domain.RecipeAnalysis), args.Get(1).(domain.ResultSource), args.Error(2)
}

func (m *MockExtractionService) ProcessInventory(ctx context.Context, userID uuid.UUID, req *extract.InventoryRequest) ([]domain.InventoryItem, domain.ResultSource, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Get(1).(domain.ResultSource), args.Error(2)
	}
	return args.Get(0).([]domain.InventoryItem), args.Get(1).(domain.ResultSource), args.Error(2)
}

func (m *MockExtractionService) SuggestMeals(ctx context.Context, userID uuid.UUID, req *extract.SuggestionsRequest) ([]domain.MealSuggestion, domain.ResultSource, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Get(1).(domain.ResultSource), args.Error(2)
	}
	return args.Get(0).([]domain.MealSuggestion), args.Get(1).(domain.ResultSource), args.Error(2)
}

func (m *MockExtractionService) SuggestInventoryMeals(ctx context.Context, userID uuid.UUID, req *extract.InventoryMealsRequest) ([]domain.InventoryMeal, domain.ResultSource, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Get(1).(domain.ResultSource), args.Error(2)
	}
	return args.Get(0).([]domain.InventoryMeal), args.Get(1).(domain.ResultSource), args.Error(2)
}
