package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activitymagic/internal/domain"
	"activitymagic/internal/extract"
)

func TestActivityRequest_Validate(t *testing.T) {
	assert.ErrorIs(t, (&extract.ActivityRequest{}).Validate(), domain.ErrEmptyContent)
	assert.ErrorIs(t, (&extract.ActivityRequest{Content: "   "}).Validate(), domain.ErrEmptyContent)
	assert.NoError(t, (&extract.ActivityRequest{Content: "zoo trip"}).Validate())
}

func TestRecipeRequest_Validate(t *testing.T) {
	assert.ErrorIs(t, (&extract.RecipeRequest{}).Validate(), domain.ErrMissingURL)
	assert.ErrorIs(t, (&extract.RecipeRequest{URL: "not a url"}).Validate(), domain.ErrInvalidURL)
	assert.NoError(t, (&extract.RecipeRequest{URL: "https://example.com/recipes/pasta"}).Validate())
}

func TestInventoryRequest_Validate(t *testing.T) {
	assert.ErrorIs(t, (&extract.InventoryRequest{RawInput: "milk"}).Validate(), domain.ErrMissingLocation)
	assert.ErrorIs(t, (&extract.InventoryRequest{LocationName: "Pantry"}).Validate(), domain.ErrMissingRawInput)
	assert.NoError(t, (&extract.InventoryRequest{LocationName: "Pantry", RawInput: "milk"}).Validate())
}

func TestBuildActivityPrompt_Deterministic(t *testing.T) {
	req := &extract.ActivityRequest{Content: "Zoo trip on Saturday"}

	first := extract.BuildActivityPrompt(req)
	second := extract.BuildActivityPrompt(req)

	assert.Equal(t, first, second)
	require.Len(t, first, 1)
	assert.Equal(t, "user", first[0].Role)
	assert.Contains(t, first[0].Content, "Zoo trip on Saturday")
	assert.Contains(t, first[0].Content, "food, entertainment, outdoor, culture, shopping, family, social, sports, education, wellness, travel, general")
}

func TestBuildActivityPrompt_URLVariant(t *testing.T) {
	msgs := extract.BuildActivityPrompt(&extract.ActivityRequest{
		Content: "check this out",
		URL:     "https://example.com/events/fair",
	})

	assert.Contains(t, msgs[0].Content, "URL to analyze: https://example.com/events/fair")
}

func TestBuildIngredientsPrompt_ScalesExampleToServings(t *testing.T) {
	main := extract.BuildIngredientsPrompt(&extract.IngredientsRequest{Category: "Pasta Night", Target: domain.TargetMain})
	kids := extract.BuildIngredientsPrompt(&extract.IngredientsRequest{Category: "Pasta Night", Target: domain.TargetKids})

	require.Len(t, main, 2)
	assert.Equal(t, "system", main[0].Role)
	assert.Contains(t, main[1].Content, "serving 4 people")
	assert.Contains(t, main[1].Content, `"amount": "1"`)
	assert.Contains(t, kids[1].Content, "serving 2 people")
	assert.Contains(t, kids[1].Content, `"amount": "0.5"`)
}

func TestBuildInventoryPrompt_ForbidsExpiryGuessing(t *testing.T) {
	msgs := extract.BuildInventoryPrompt(&extract.InventoryRequest{
		LocationName: "Garage Freezer",
		RawInput:     "two bags of peas",
	})

	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0].Content, "Garage Freezer")
	assert.Contains(t, msgs[0].Content, "Do NOT guess or estimate expiration dates")
	assert.Contains(t, msgs[1].Content, "two bags of peas")
}

func TestBuildSuggestionsPrompt_KidsVariant(t *testing.T) {
	family := extract.BuildSuggestionsPrompt(&extract.SuggestionsRequest{Category: "Dinner"})
	kids := extract.BuildSuggestionsPrompt(&extract.SuggestionsRequest{Category: "Dinner", KidsMeal: true})

	assert.NotContains(t, family[0].Content, "KIDS MEALS")
	assert.Contains(t, kids[0].Content, "KIDS MEALS")
	assert.Contains(t, kids[1].Content, "Kids meal")
}

func TestBuildSuggestionsPrompt_IncludesPreferences(t *testing.T) {
	msgs := extract.BuildSuggestionsPrompt(&extract.SuggestionsRequest{
		Category:    "Dinner",
		Preferences: "no shellfish",
	})

	assert.Contains(t, msgs[1].Content, "no shellfish")
}

func TestBuildInventoryMealsPrompt_ListsIngredients(t *testing.T) {
	msgs := extract.BuildInventoryMealsPrompt(&extract.InventoryMealsRequest{
		Ingredients: "rice, chicken, broccoli",
	})

	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0].Content, "rice, chicken, broccoli")
	assert.Contains(t, msgs[0].Content, "Generate 6 meal suggestions")
}
