package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"activitymagic/internal/domain"
)

// The normalizer turns raw model output into validated records. Model
// output is messy in predictable ways: fenced code blocks, single
// quotes, bare keys, trailing commas, prose around the JSON. Recovery is
// staged; each stage runs only if the previous one failed to yield valid
// JSON:
//
//  1. trim whitespace, strip one leading/trailing code fence
//  2. strict parse
//  3. bounded textual repairs, reparse
//  4. balanced-bracket scan for the first top-level {...} or [...] span,
//     parse that span (repaired if needed)
//
// The single-quote repair is unsound for string values that legitimately
// contain an apostrophe ("Trader Joe's" becomes invalid). It only runs
// after a strict parse has already failed, which narrows but does not
// eliminate the risk.

var (
	fenceOpenRe    = regexp.MustCompile("^```[a-zA-Z]*\\s*")
	fenceCloseRe   = regexp.MustCompile("\\s*```$")
	bareKeyRe      = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
	trailingComaRe = regexp.MustCompile(`,(\s*[}\]])`)
)

// CleanModelOutput trims whitespace and strips a single wrapping code
// fence, with or without a language tag.
func CleanModelOutput(text string) string {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "```") {
		s = fenceOpenRe.ReplaceAllString(s, "")
		s = fenceCloseRe.ReplaceAllString(s, "")
		s = strings.TrimSpace(s)
	}
	return s
}

// repairJSON applies the bounded repair set: single quotes to double
// quotes, quoted bare object keys, trailing commas removed.
func repairJSON(s string) string {
	s = strings.ReplaceAll(s, "'", `"`)
	s = bareKeyRe.ReplaceAllString(s, `$1"$2":`)
	s = trailingComaRe.ReplaceAllString(s, "$1")
	return s
}

// extractSpan locates the first top-level {...} or [...] span using a
// balanced-bracket scan that skips over string literals.
func extractSpan(s string) (string, bool) {
	start := -1
	var open, close byte
	for i := 0; i < len(s); i++ {
		if s[i] == '{' || s[i] == '[' {
			start = i
			open = s[i]
			close = '}'
			if open == '[' {
				close = ']'
			}
			break
		}
	}
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// decode runs the staged recovery pipeline and unmarshals into v.
func decode(text string, v interface{}) error {
	clean := CleanModelOutput(text)
	if clean == "" {
		return &NormalizationError{Reason: "empty model output", Raw: text}
	}

	if err := json.Unmarshal([]byte(clean), v); err == nil {
		return nil
	}
	if err := json.Unmarshal([]byte(repairJSON(clean)), v); err == nil {
		return nil
	}
	if span, ok := extractSpan(clean); ok {
		if err := json.Unmarshal([]byte(span), v); err == nil {
			return nil
		}
		if err := json.Unmarshal([]byte(repairJSON(span)), v); err == nil {
			return nil
		}
	}
	return &NormalizationError{Reason: "unparseable model output", Raw: text}
}

// flexInt unmarshals from a JSON number or a numeric string. Models
// asked for "duration in minutes" return either.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexInt(n)
	return nil
}

// flexBool unmarshals from a JSON bool or a "true"/"false" string.
// Present reports whether a usable value was seen at all.
type flexBool struct {
	Value   bool
	Present bool
}

func (f *flexBool) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	switch s {
	case "true":
		f.Value, f.Present = true, true
	case "false":
		f.Value, f.Present = false, true
	}
	return nil
}

// flexString unmarshals from a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	*f = flexString(strings.Trim(string(b), `"`))
	return nil
}

// flexFloat unmarshals from a JSON number, numeric string, or null.
type flexFloat struct {
	Value   float64
	Present bool
}

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	f.Value, f.Present = n, true
	return nil
}

// CoerceCategories maps raw category labels into the closed vocabulary.
// Unrecognized labels are dropped; duplicates collapse; an empty result
// defaults to general.
func CoerceCategories(raw []string) []domain.Category {
	var out []domain.Category
	seen := map[domain.Category]bool{}
	for _, r := range raw {
		c := domain.Category(strings.ToLower(strings.TrimSpace(r)))
		if domain.ValidCategories[c] && !seen[c] {
			out = append(out, c)
			seen[c] = true
		}
	}
	if len(out) == 0 {
		out = []domain.Category{domain.CategoryGeneral}
	}
	return out
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

// NormalizeActivity validates model output for activity extraction.
// Title and description are required; everything else stays absent when
// the model omitted it.
func NormalizeActivity(raw string) (*domain.Activity, error) {
	var loose struct {
		Title             string     `json:"title"`
		Description       string     `json:"description"`
		Location          string     `json:"location"`
		Categories        []string   `json:"categories"`
		Date              string     `json:"date"`
		Time              string     `json:"time"`
		EstimatedDuration flexInt    `json:"estimated_duration"`
		CostEstimate      flexString `json:"cost_estimate"`
		AgeAppropriate    string     `json:"age_appropriate"`
		WeatherDependent  flexBool   `json:"weather_dependent"`
	}
	if err := decode(raw, &loose); err != nil {
		return nil, err
	}
	if strings.TrimSpace(loose.Title) == "" || strings.TrimSpace(loose.Description) == "" {
		return nil, &NormalizationError{Reason: "missing required title or description", Raw: raw}
	}

	act := &domain.Activity{
		Title:             truncateRunes(strings.TrimSpace(loose.Title), domain.MaxActivityTitleLen),
		Description:       truncateRunes(strings.TrimSpace(loose.Description), domain.MaxActivityDescriptionLen),
		Location:          strings.TrimSpace(loose.Location),
		Categories:        CoerceCategories(loose.Categories),
		Date:              strings.TrimSpace(loose.Date),
		Time:              strings.TrimSpace(loose.Time),
		EstimatedDuration: int(loose.EstimatedDuration),
		CostEstimate:      string(loose.CostEstimate),
		AgeAppropriate:    strings.TrimSpace(loose.AgeAppropriate),
	}
	if loose.WeatherDependent.Present {
		v := loose.WeatherDependent.Value
		act.WeatherDependent = &v
	}
	return act, nil
}

type looseIngredient struct {
	Name   string     `json:"name"`
	Amount flexString `json:"amount"`
	Unit   string     `json:"unit"`
	Notes  flexString `json:"notes"`
}

// NormalizeIngredients validates model output for shopping list
// generation. Accepts either {"ingredients": [...]} or a bare array. An
// element without a name poisons the whole list: a partial list is worse
// than a clean fallback.
func NormalizeIngredients(raw string) ([]domain.Ingredient, error) {
	var wrapped struct {
		Ingredients []looseIngredient `json:"ingredients"`
	}
	var items []looseIngredient
	if err := decode(raw, &wrapped); err == nil && len(wrapped.Ingredients) > 0 {
		items = wrapped.Ingredients
	} else {
		if err := decode(raw, &items); err != nil {
			return nil, err
		}
	}
	if len(items) == 0 {
		return nil, &NormalizationError{Reason: "no ingredients in model output", Raw: raw}
	}

	out := make([]domain.Ingredient, 0, len(items))
	for i, it := range items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			return nil, &NormalizationError{
				Reason: fmt.Sprintf("ingredient %d missing name", i),
				Raw:    raw,
			}
		}
		ing := domain.Ingredient{
			Name:   name,
			Amount: strings.TrimSpace(string(it.Amount)),
			Notes:  strings.TrimSpace(string(it.Notes)),
		}
		// A unit is only meaningful alongside an amount.
		if ing.Amount != "" {
			ing.Unit = strings.TrimSpace(it.Unit)
		}
		out = append(out, ing)
	}
	return out, nil
}

// NormalizeRecipeAnalysis validates model output for recipe URL
// analysis. Missing fields collapse to empty strings; the call is still
// considered successful when the model responded at all.
func NormalizeRecipeAnalysis(raw string) (*domain.RecipeAnalysis, error) {
	var loose struct {
		Category string `json:"category"`
		Details  string `json:"details"`
	}
	if err := decode(raw, &loose); err != nil {
		return nil, err
	}
	return &domain.RecipeAnalysis{
		Category: strings.TrimSpace(loose.Category),
		Details:  strings.TrimSpace(loose.Details),
	}, nil
}

// NormalizeInventoryItems validates model output for inventory
// normalization. Expiry dates pass through only when the model emitted
// one; this layer never synthesizes them.
func NormalizeInventoryItems(raw string) ([]domain.InventoryItem, error) {
	var loose []struct {
		Name            string     `json:"name"`
		Quantity        flexFloat  `json:"quantity"`
		Unit            string     `json:"unit"`
		Category        string     `json:"category"`
		Notes           flexString `json:"notes"`
		EstimatedExpiry string     `json:"estimated_expiry"`
	}
	if err := decode(raw, &loose); err != nil {
		return nil, err
	}
	if len(loose) == 0 {
		return nil, &NormalizationError{Reason: "no inventory items in model output", Raw: raw}
	}

	out := make([]domain.InventoryItem, 0, len(loose))
	for i, it := range loose {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			return nil, &NormalizationError{
				Reason: fmt.Sprintf("inventory item %d missing name", i),
				Raw:    raw,
			}
		}
		item := domain.InventoryItem{
			Name:            name,
			Unit:            strings.TrimSpace(it.Unit),
			Category:        strings.TrimSpace(it.Category),
			Notes:           strings.TrimSpace(string(it.Notes)),
			EstimatedExpiry: strings.TrimSpace(it.EstimatedExpiry),
		}
		if it.Quantity.Present {
			q := it.Quantity.Value
			item.Quantity = &q
		}
		out = append(out, item)
	}
	return out, nil
}

// suggestionCount is the fixed number of meal suggestions each call
// returns. Model output is truncated or padded to match.
const suggestionCount = 3

// NormalizeMealSuggestions validates model output for meal suggestions
// and shapes it to exactly suggestionCount entries.
func NormalizeMealSuggestions(raw, category string) ([]domain.MealSuggestion, error) {
	var loose []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := decode(raw, &loose); err != nil {
		return nil, err
	}

	out := make([]domain.MealSuggestion, 0, suggestionCount)
	for _, s := range loose {
		title := strings.TrimSpace(s.Title)
		if title == "" {
			return nil, &NormalizationError{Reason: "suggestion missing title", Raw: raw}
		}
		out = append(out, domain.MealSuggestion{
			Title:       title,
			Description: strings.TrimSpace(s.Description),
		})
		if len(out) == suggestionCount {
			break
		}
	}
	if len(out) == 0 {
		return nil, &NormalizationError{Reason: "no suggestions in model output", Raw: raw}
	}
	for len(out) < suggestionCount {
		out = append(out, domain.MealSuggestion{
			Title:       fmt.Sprintf("%s Option %d", category, len(out)+1),
			Description: fmt.Sprintf("A delicious %s meal option for your family.", strings.ToLower(category)),
		})
	}
	return out, nil
}

// NormalizeInventoryMeals validates model output for inventory-based
// meal generation. Ingredient repair rules: a missing id is generated, a
// missing amount becomes "1", a missing unit becomes "portion"; a
// missing name rejects the entire response.
func NormalizeInventoryMeals(raw string) ([]domain.InventoryMeal, error) {
	var loose []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Ingredients []struct {
			ID     string     `json:"id"`
			Name   string     `json:"name"`
			Amount flexString `json:"amount"`
			Unit   string     `json:"unit"`
			Notes  flexString `json:"notes"`
		} `json:"ingredients"`
		Difficulty string  `json:"difficulty"`
		PrepTime   string  `json:"prepTime"`
		Servings   flexInt `json:"servings"`
	}
	if err := decode(raw, &loose); err != nil {
		return nil, err
	}
	if len(loose) == 0 {
		return nil, &NormalizationError{Reason: "no meals in model output", Raw: raw}
	}

	out := make([]domain.InventoryMeal, 0, len(loose))
	for _, m := range loose {
		title := strings.TrimSpace(m.Title)
		if title == "" {
			return nil, &NormalizationError{Reason: "meal missing title", Raw: raw}
		}
		if len(m.Ingredients) == 0 {
			return nil, &NormalizationError{
				Reason: fmt.Sprintf("meal %q missing ingredients", title),
				Raw:    raw,
			}
		}

		meal := domain.InventoryMeal{
			Title:       title,
			Description: strings.TrimSpace(m.Description),
			Difficulty:  domain.Difficulty(strings.TrimSpace(m.Difficulty)),
			PrepTime:    strings.TrimSpace(m.PrepTime),
			Servings:    int(m.Servings),
		}
		if !domain.ValidDifficulties[meal.Difficulty] {
			meal.Difficulty = domain.DifficultyMedium
		}
		if meal.Servings <= 0 {
			meal.Servings = baseServings
		}

		for _, ing := range m.Ingredients {
			name := strings.TrimSpace(ing.Name)
			if name == "" {
				return nil, &NormalizationError{
					Reason: fmt.Sprintf("meal %q has ingredient missing name", title),
					Raw:    raw,
				}
			}
			mi := domain.MealIngredient{
				ID:     strings.TrimSpace(ing.ID),
				Name:   name,
				Amount: strings.TrimSpace(string(ing.Amount)),
				Unit:   strings.TrimSpace(ing.Unit),
				Notes:  strings.TrimSpace(string(ing.Notes)),
			}
			if mi.ID == "" {
				mi.ID = "ing-" + uuid.NewString()[:8]
			}
			if mi.Amount == "" {
				mi.Amount = "1"
			}
			if mi.Unit == "" {
				mi.Unit = "portion"
			}
			meal.Ingredients = append(meal.Ingredients, mi)
		}
		out = append(out, meal)
	}
	return out, nil
}
