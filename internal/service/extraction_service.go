package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"activitymagic/internal/config"
	"activitymagic/internal/domain"
	"activitymagic/internal/extract"
	"activitymagic/internal/port"
)

// ExtractionService turns free text into structured records. Every
// operation follows the same shape: validate the request, try the model
// path under the task's profile, normalize the output, and degrade to
// the deterministic fallback generator when anything on the model path
// fails. Operations never return an error for model-path failures; the
// returned ResultSource tells the caller which path produced the value.
type ExtractionService interface {
	ProcessActivity(ctx context.Context, userID uuid.UUID, req *extract.ActivityRequest) (*domain.Activity, domain.ResultSource, error)
	GenerateIngredients(ctx context.Context, userID uuid.UUID, req *extract.IngredientsRequest) ([]domain.Ingredient, domain.ResultSource, error)
	AnalyzeRecipe(ctx context.Context, userID uuid.UUID, req *extract.RecipeRequest) (*domain.RecipeAnalysis, domain.ResultSource, error)
	ProcessInventory(ctx context.Context, userID uuid.UUID, req *extract.InventoryRequest) ([]domain.InventoryItem, domain.ResultSource, error)
	SuggestMeals(ctx context.Context, userID uuid.UUID, req *extract.SuggestionsRequest) ([]domain.MealSuggestion, domain.ResultSource, error)
	SuggestInventoryMeals(ctx context.Context, userID uuid.UUID, req *extract.InventoryMealsRequest) ([]domain.InventoryMeal, domain.ResultSource, error)
}

type extractionService struct {
	client    port.CompletionClient
	cfg       *config.OpenAIConfig
	auditRepo port.ExtractionAuditRepository
}

// NewExtractionService creates an ExtractionService implementation. The
// audit repository may be nil; auditing is best-effort either way.
func NewExtractionService(client port.CompletionClient, cfg *config.OpenAIConfig, auditRepo port.ExtractionAuditRepository) ExtractionService {
	return &extractionService{
		client:    client,
		cfg:       cfg,
		auditRepo: auditRepo,
	}
}

// invoke runs one completion under the profile assigned to the task.
func (s *extractionService) invoke(ctx context.Context, task domain.TaskKind, msgs []port.Message) (string, error) {
	profile := s.cfg.ProfileFor(string(task))
	return s.client.Complete(ctx, port.CompletionRequest{
		Model:       profile.Model,
		Messages:    msgs,
		MaxTokens:   profile.MaxTokens,
		Temperature: profile.Temperature,
		Timeout:     profile.Timeout(),
	})
}

// audit records an extraction in the audit log. Failures are logged but
// never block business logic.
func (s *extractionService) audit(ctx context.Context, userID uuid.UUID, task domain.TaskKind, rawInput string, source domain.ResultSource, detail string) {
	if s.auditRepo == nil {
		return
	}
	profile := s.cfg.ProfileFor(string(task))
	entry := &domain.ExtractionAuditEntry{
		ID:        uuid.New(),
		UserID:    userID,
		TaskKind:  task,
		RawInput:  rawInput,
		Source:    source,
		Model:     profile.Model,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("extractionService.audit: failed to write audit entry for %s: %v", task, err)
	}
}

func (s *extractionService) ProcessActivity(ctx context.Context, userID uuid.UUID, req *extract.ActivityRequest) (*domain.Activity, domain.ResultSource, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	raw, err := s.invoke(ctx, domain.TaskActivityFromText, extract.BuildActivityPrompt(req))
	if err == nil {
		if act, nerr := extract.NormalizeActivity(raw); nerr == nil {
			s.audit(ctx, userID, domain.TaskActivityFromText, req.Content, domain.SourceModel, "")
			return act, domain.SourceModel, nil
		} else {
			err = nerr
		}
	}

	log.Printf("extractionService.ProcessActivity: model path failed, using fallback: %v", err)
	s.audit(ctx, userID, domain.TaskActivityFromText, req.Content, domain.SourceFallback, err.Error())
	return extract.FallbackActivity(req.Content), domain.SourceFallback, nil
}

func (s *extractionService) GenerateIngredients(ctx context.Context, userID uuid.UUID, req *extract.IngredientsRequest) ([]domain.Ingredient, domain.ResultSource, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	raw, err := s.invoke(ctx, domain.TaskIngredientsForMeal, extract.BuildIngredientsPrompt(req))
	if err == nil {
		if items, nerr := extract.NormalizeIngredients(raw); nerr == nil {
			s.audit(ctx, userID, domain.TaskIngredientsForMeal, req.Category, domain.SourceModel, "")
			return items, domain.SourceModel, nil
		} else {
			err = nerr
		}
	}

	log.Printf("extractionService.GenerateIngredients: model path failed, using fallback: %v", err)
	s.audit(ctx, userID, domain.TaskIngredientsForMeal, req.Category, domain.SourceFallback, err.Error())
	return extract.FallbackIngredients(*req), domain.SourceFallback, nil
}

func (s *extractionService) AnalyzeRecipe(ctx context.Context, userID uuid.UUID, req *extract.RecipeRequest) (*domain.RecipeAnalysis, domain.ResultSource, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	raw, err := s.invoke(ctx, domain.TaskRecipeAnalysisFromURL, extract.BuildRecipePrompt(req))
	if err == nil {
		if analysis, nerr := extract.NormalizeRecipeAnalysis(raw); nerr == nil {
			s.audit(ctx, userID, domain.TaskRecipeAnalysisFromURL, req.URL, domain.SourceModel, "")
			return analysis, domain.SourceModel, nil
		} else {
			err = nerr
		}
	}

	log.Printf("extractionService.AnalyzeRecipe: model path failed, using fallback: %v", err)
	s.audit(ctx, userID, domain.TaskRecipeAnalysisFromURL, req.URL, domain.SourceFallback, err.Error())
	return extract.FallbackRecipeAnalysis(req.URL), domain.SourceFallback, nil
}

func (s *extractionService) ProcessInventory(ctx context.Context, userID uuid.UUID, req *extract.InventoryRequest) ([]domain.InventoryItem, domain.ResultSource, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	raw, err := s.invoke(ctx, domain.TaskInventoryItemsFromText, extract.BuildInventoryPrompt(req))
	if err == nil {
		if items, nerr := extract.NormalizeInventoryItems(raw); nerr == nil {
			s.audit(ctx, userID, domain.TaskInventoryItemsFromText, req.RawInput, domain.SourceModel, "")
			return items, domain.SourceModel, nil
		} else {
			err = nerr
		}
	}

	log.Printf("extractionService.ProcessInventory: model path failed, using fallback: %v", err)
	s.audit(ctx, userID, domain.TaskInventoryItemsFromText, req.RawInput, domain.SourceFallback, err.Error())
	return extract.FallbackInventoryItems(req.RawInput), domain.SourceFallback, nil
}

func (s *extractionService) SuggestMeals(ctx context.Context, userID uuid.UUID, req *extract.SuggestionsRequest) ([]domain.MealSuggestion, domain.ResultSource, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	raw, err := s.invoke(ctx, domain.TaskMealSuggestions, extract.BuildSuggestionsPrompt(req))
	if err == nil {
		if suggestions, nerr := extract.NormalizeMealSuggestions(raw, req.Category); nerr == nil {
			s.audit(ctx, userID, domain.TaskMealSuggestions, req.Category, domain.SourceModel, "")
			return suggestions, domain.SourceModel, nil
		} else {
			err = nerr
		}
	}

	log.Printf("extractionService.SuggestMeals: model path failed, using fallback: %v", err)
	s.audit(ctx, userID, domain.TaskMealSuggestions, req.Category, domain.SourceFallback, err.Error())
	return extract.FallbackSuggestions(*req), domain.SourceFallback, nil
}

func (s *extractionService) SuggestInventoryMeals(ctx context.Context, userID uuid.UUID, req *extract.InventoryMealsRequest) ([]domain.InventoryMeal, domain.ResultSource, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	raw, err := s.invoke(ctx, domain.TaskMealsFromInventory, extract.BuildInventoryMealsPrompt(req))
	if err == nil {
		if meals, nerr := extract.NormalizeInventoryMeals(raw); nerr == nil {
			s.audit(ctx, userID, domain.TaskMealsFromInventory, req.Ingredients, domain.SourceModel, "")
			return meals, domain.SourceModel, nil
		} else {
			err = nerr
		}
	}

	log.Printf("extractionService.SuggestInventoryMeals: model path failed, using fallback: %v", err)
	s.audit(ctx, userID, domain.TaskMealsFromInventory, req.Ingredients, domain.SourceFallback, err.Error())
	return extract.FallbackInventoryMeals(*req), domain.SourceFallback, nil
}
