package domain

// TaskKind identifies one of the extraction tasks.
type TaskKind string

const (
	TaskActivityFromText       TaskKind = "activity-from-text"
	TaskIngredientsForMeal     TaskKind = "ingredients-for-meal"
	TaskRecipeAnalysisFromURL  TaskKind = "recipe-analysis-from-url"
	TaskInventoryItemsFromText TaskKind = "inventory-items-from-text"
	TaskMealSuggestions        TaskKind = "meal-suggestions-for-category"
	TaskMealsFromInventory     TaskKind = "meals-from-inventory"
)

// ValidTaskKinds enumerates every extraction task the service accepts.
var ValidTaskKinds = map[TaskKind]bool{
	TaskActivityFromText:       true,
	TaskIngredientsForMeal:     true,
	TaskRecipeAnalysisFromURL:  true,
	TaskInventoryItemsFromText: true,
	TaskMealSuggestions:        true,
	TaskMealsFromInventory:     true,
}

// Category is an activity category from the closed vocabulary.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryEntertainment Category = "entertainment"
	CategoryOutdoor       Category = "outdoor"
	CategoryCulture       Category = "culture"
	CategoryShopping      Category = "shopping"
	CategoryFamily        Category = "family"
	CategorySocial        Category = "social"
	CategorySports        Category = "sports"
	CategoryEducation     Category = "education"
	CategoryWellness      Category = "wellness"
	CategoryTravel        Category = "travel"
	CategoryGeneral       Category = "general"
)

// ValidCategories is the closed vocabulary for activity categories.
// Unrecognized labels are dropped during normalization; an empty result
// set defaults to CategoryGeneral.
var ValidCategories = map[Category]bool{
	CategoryFood:          true,
	CategoryEntertainment: true,
	CategoryOutdoor:       true,
	CategoryCulture:       true,
	CategoryShopping:      true,
	CategoryFamily:        true,
	CategorySocial:        true,
	CategorySports:        true,
	CategoryEducation:     true,
	CategoryWellness:      true,
	CategoryTravel:        true,
	CategoryGeneral:       true,
}

// ValidCategoryOrder lists the vocabulary in a stable order for code
// that must iterate deterministically.
var ValidCategoryOrder = []Category{
	CategoryFood,
	CategoryEntertainment,
	CategoryOutdoor,
	CategoryCulture,
	CategoryShopping,
	CategoryFamily,
	CategorySocial,
	CategorySports,
	CategoryEducation,
	CategoryWellness,
	CategoryTravel,
	CategoryGeneral,
}

// MealTarget selects who a generated meal is for.
type MealTarget string

const (
	TargetMain MealTarget = "main"
	TargetKids MealTarget = "kids"
)

// Servings returns the default serving count for a target audience.
func (t MealTarget) Servings() int {
	if t == TargetKids {
		return 2
	}
	return 4
}

// Difficulty grades a suggested meal.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// ValidDifficulties enumerates allowed difficulty grades.
var ValidDifficulties = map[Difficulty]bool{
	DifficultyEasy:   true,
	DifficultyMedium: true,
	DifficultyHard:   true,
}

// ResultSource records which path produced an extraction result.
type ResultSource string

const (
	SourceModel    ResultSource = "model"
	SourceFallback ResultSource = "fallback"
)
