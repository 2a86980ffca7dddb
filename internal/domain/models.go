package domain

import (
	"time"

	"github.com/google/uuid"
)

// Record size limits enforced by the normalizer and the fallback generator.
const (
	MaxActivityTitleLen       = 100
	MaxActivityDescriptionLen = 500
)

// Activity is a structured activity record extracted from free text.
// Optional fields stay empty when the source text does not state them;
// the pipeline never fills them with guesses.
type Activity struct {
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Location          string     `json:"location,omitempty"`
	Categories        []Category `json:"categories"`
	Date              string     `json:"date,omitempty"`
	Time              string     `json:"time,omitempty"`
	EstimatedDuration int        `json:"estimated_duration,omitempty"`
	CostEstimate      string     `json:"cost_estimate,omitempty"`
	AgeAppropriate    string     `json:"age_appropriate,omitempty"`
	WeatherDependent  *bool      `json:"weather_dependent,omitempty"`
}

// Ingredient is a single shopping-list entry for a meal.
// Amount is a numeric-as-string quantity ("2", "1/2"); Unit is only
// meaningful when Amount is set.
type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount,omitempty"`
	Unit   string `json:"unit,omitempty"`
	Notes  string `json:"notes,omitempty"`
}

// MealIngredient is an ingredient line within a suggested meal. Unlike
// Ingredient, amount and unit are required and repaired with defaults
// when the model omits them.
type MealIngredient struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
	Notes  string `json:"notes,omitempty"`
}

// RecipeAnalysis is the result of analyzing a recipe URL.
type RecipeAnalysis struct {
	Category string `json:"category"`
	Details  string `json:"details"`
}

// InventoryItem is a structured pantry/fridge/freezer item.
// EstimatedExpiry is set only when the source text explicitly states a
// date or relative time phrase; it is never inferred from the food type
// or the storage location.
type InventoryItem struct {
	Name            string   `json:"name"`
	Quantity        *float64 `json:"quantity,omitempty"`
	Unit            string   `json:"unit,omitempty"`
	Category        string   `json:"category,omitempty"`
	Notes           string   `json:"notes,omitempty"`
	EstimatedExpiry string   `json:"estimated_expiry,omitempty"`
}

// MealSuggestion is a single meal idea for a category.
type MealSuggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// InventoryMeal is a full meal suggestion built from available
// inventory, including a structured ingredient list.
type InventoryMeal struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Ingredients []MealIngredient `json:"ingredients"`
	Difficulty  Difficulty       `json:"difficulty"`
	PrepTime    string           `json:"prepTime"`
	Servings    int              `json:"servings"`
}

// PageContent is the readable content extracted from a fetched web page.
type PageContent struct {
	URL            string         `json:"url"`
	Content        string         `json:"content"`
	StructuredData StructuredData `json:"structured_data"`
}

// StructuredData holds Open Graph / meta tag data found on a page.
type StructuredData struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

// ExtractionAuditEntry records one extraction call for the audit log.
type ExtractionAuditEntry struct {
	ID        uuid.UUID    `db:"id" json:"id"`
	UserID    uuid.UUID    `db:"user_id" json:"user_id"`
	TaskKind  TaskKind     `db:"task_kind" json:"task_kind"`
	RawInput  string       `db:"raw_input" json:"raw_input"`
	Source    ResultSource `db:"source" json:"source"`
	Model     string       `db:"model" json:"model"`
	Detail    string       `db:"detail" json:"detail"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
}
