package extract

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"activitymagic/internal/domain"
)

// Fallback generators produce deterministic results when the model path
// is unavailable. They never guess at fields that cannot be derived from
// the input: no invented dates, costs, or expiry estimates.

var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bat\s+([^,.\n]+)`),
	regexp.MustCompile(`(?i)\bin\s+([^,.\n]+)`),
	regexp.MustCompile(`(?i)\bnear\s+([^,.\n]+)`),
	regexp.MustCompile(`@\s*([^,.\n]+)`),
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`),
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),
	regexp.MustCompile(`(?i)(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2},?\s+\d{4}`),
	regexp.MustCompile(`(?i)\b(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`),
}

var timePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d{1,2}:\d{2}\s*(?:am|pm)?`),
	regexp.MustCompile(`(?i)\d{1,2}\s*(?:am|pm)`),
}

var categoryKeywords = map[domain.Category][]string{
	domain.CategoryFood:          {"restaurant", "cafe", "dining", "food", "eat", "lunch", "dinner", "breakfast"},
	domain.CategoryEntertainment: {"movie", "theater", "show", "concert", "game", "entertainment"},
	domain.CategoryOutdoor:       {"park", "hiking", "beach", "outdoor", "nature", "walk", "bike", "farm", "garden", "picnic", "camping", "fishing"},
	domain.CategoryCulture:       {"museum", "gallery", "art", "culture", "exhibition", "history"},
	domain.CategoryShopping:      {"shop", "store", "mall", "market", "shopping"},
	domain.CategoryFamily:        {"family", "kids", "children", "playground", "zoo", "aquarium"},
	domain.CategorySocial:        {"party", "gathering", "meet", "social", "friends", "group"},
	domain.CategorySports:        {"sports", "soccer", "basketball", "baseball", "swim", "tennis", "gym", "match"},
	domain.CategoryEducation:     {"class", "lesson", "workshop", "library", "learn", "course", "science"},
	domain.CategoryWellness:      {"yoga", "spa", "massage", "meditation", "wellness", "relax"},
	domain.CategoryTravel:        {"trip", "travel", "flight", "hotel", "vacation", "road trip"},
}

// keyword checks respect word position loosely: a plain substring match,
// like the source text these rules grew from.
func detectCategories(content string) []domain.Category {
	lower := strings.ToLower(content)
	var out []domain.Category
	for _, c := range domain.ValidCategoryOrder {
		for _, kw := range categoryKeywords[c] {
			if strings.Contains(lower, kw) {
				out = append(out, c)
				break
			}
		}
	}
	if len(out) == 0 {
		out = []domain.Category{domain.CategoryGeneral}
	}
	return out
}

func firstMatch(patterns []*regexp.Regexp, content string) string {
	for _, p := range patterns {
		if m := p.FindString(content); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

// FallbackActivity derives an activity record from raw text without a
// model: first non-empty line becomes the title, the remainder the
// description, with location, date, time, and categories pulled out by
// pattern matching. Duration, cost, and the other inferred fields stay
// absent.
func FallbackActivity(content string) *domain.Activity {
	var lines []string
	for _, l := range strings.Split(content, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, strings.TrimSpace(l))
		}
	}

	title := "New Activity"
	description := content
	if len(lines) > 0 {
		title = lines[0]
		if rest := strings.Join(lines[1:], " "); rest != "" {
			description = rest
		}
	}

	location := ""
	for _, p := range locationPatterns {
		if m := p.FindStringSubmatch(content); m != nil {
			location = strings.TrimSpace(m[1])
			break
		}
	}

	return &domain.Activity{
		Title:       truncateRunes(title, domain.MaxActivityTitleLen),
		Description: truncateRunes(description, domain.MaxActivityDescriptionLen),
		Location:    location,
		Categories:  detectCategories(content),
		Date:        firstMatch(datePatterns, content),
		Time:        firstMatch(timePatterns, content),
	}
}

type fallbackIngredient struct {
	name   string
	amount float64
	unit   string
	notes  string
}

var ingredientTemplates = map[string][]fallbackIngredient{
	"pasta": {
		{"Pasta", 1, "lb", "any shape"},
		{"Olive oil", 2, "tbsp", ""},
		{"Garlic", 3, "cloves", "minced"},
		{"Parmesan cheese", 0.5, "cup", "grated"},
		{"Salt", 1, "tsp", ""},
		{"Black pepper", 1, "tsp", ""},
	},
	"taco": {
		{"Ground beef", 1, "lb", ""},
		{"Taco shells", 8, "count", ""},
		{"Lettuce", 0.5, "head", "shredded"},
		{"Tomatoes", 2, "count", "diced"},
		{"Cheese", 1, "cup", "shredded"},
		{"Sour cream", 0.5, "cup", ""},
	},
	"pizza": {
		{"Pizza dough", 1, "lb", ""},
		{"Pizza sauce", 1, "cup", ""},
		{"Mozzarella cheese", 2, "cup", "shredded"},
		{"Pepperoni", 0.5, "cup", "sliced"},
		{"Olive oil", 2, "tbsp", ""},
		{"Italian seasoning", 1, "tsp", ""},
	},
	"breakfast": {
		{"Eggs", 8, "count", ""},
		{"Bacon", 0.5, "lb", ""},
		{"Bread", 8, "slices", "for toast"},
		{"Butter", 2, "tbsp", ""},
		{"Milk", 0.5, "cup", ""},
		{"Salt", 1, "tsp", ""},
		{"Black pepper", 1, "tsp", ""},
	},
}

var genericIngredients = []fallbackIngredient{
	{"Protein", 1, "lb", "chicken, beef, or fish"},
	{"Vegetables", 2, "cups", "mixed vegetables"},
	{"Starch", 1, "cup", "rice, potatoes, or pasta"},
	{"Oil", 2, "tbsp", "olive oil or cooking oil"},
	{"Seasonings", 1, "tsp", "salt, pepper, herbs"},
}

// FallbackIngredients builds a shopping list from a small set of meal
// templates, scaled to the target's serving count. Every amount scales
// linearly, so a main-meal list is exactly double a kids list.
func FallbackIngredients(req IngredientsRequest) []domain.Ingredient {
	servings := req.Target.Servings()
	key := strings.ToLower(req.Category + " " + req.Title)

	template := genericIngredients
	for _, name := range []string{"pasta", "taco", "pizza", "breakfast"} {
		if strings.Contains(key, name) {
			template = ingredientTemplates[name]
			break
		}
	}

	out := make([]domain.Ingredient, 0, len(template))
	for _, t := range template {
		out = append(out, domain.Ingredient{
			Name:   t.name,
			Amount: ScaleAmount(t.amount, servings),
			Unit:   t.unit,
			Notes:  t.notes,
		})
	}
	return out
}

var fileExtRe = regexp.MustCompile(`\.[^/.]+$`)

// FallbackRecipeAnalysis derives a recipe name from the last URL path
// segment: hyphens and underscores become spaces, a trailing file
// extension is dropped.
func FallbackRecipeAnalysis(rawURL string) *domain.RecipeAnalysis {
	segment := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		segment = parts[len(parts)-1]
	}
	segment = fileExtRe.ReplaceAllString(segment, "")
	segment = strings.TrimSpace(strings.Map(func(r rune) rune {
		if r == '-' || r == '_' {
			return ' '
		}
		return r
	}, segment))

	category := segment
	if category == "" {
		category = "Recipe"
	}
	return &domain.RecipeAnalysis{
		Category: category,
		Details:  "Recipe details from website",
	}
}

// FallbackSuggestions produces the three standing suggestion shapes for
// a category, phrased for kids when requested and annotated with the
// caller's preferences.
func FallbackSuggestions(req SuggestionsRequest) []domain.MealSuggestion {
	category := req.Category
	lower := strings.ToLower(category)

	var out []domain.MealSuggestion
	if req.KidsMeal {
		out = []domain.MealSuggestion{
			{Title: category + " Delight", Description: fmt.Sprintf("Fun and tasty %s that kids will love to eat.", lower)},
			{Title: "Homestyle " + category, Description: fmt.Sprintf("Comforting %s that's familiar and easy for kids to enjoy.", lower)},
			{Title: "Quick " + category, Description: fmt.Sprintf("Fast and kid-friendly %s perfect for busy families.", lower)},
		}
	} else {
		out = []domain.MealSuggestion{
			{Title: category + " Delight", Description: fmt.Sprintf("A delicious %s meal with fresh ingredients and bold flavors.", lower)},
			{Title: "Homestyle " + category, Description: fmt.Sprintf("A comforting %s dish with familiar flavors and simple preparation.", lower)},
			{Title: "Quick " + category, Description: fmt.Sprintf("A quick %s meal that's satisfying and easy to prepare.", lower)},
		}
	}

	if req.Preferences != "" {
		out[0].Description += " Includes your preferences: " + req.Preferences + "."
		out[1].Description += " Customized to match: " + req.Preferences + "."
		out[2].Description += " Tailored for: " + req.Preferences + "."
	}
	return out
}

var inventoryUnits = map[string]bool{
	"lb": true, "lbs": true, "pound": true, "pounds": true,
	"oz": true, "kg": true, "g": true, "gallon": true, "gallons": true,
	"quart": true, "quarts": true, "liter": true, "liters": true, "ml": true,
	"cup": true, "cups": true, "can": true, "cans": true,
	"jar": true, "jars": true, "box": true, "boxes": true,
	"bag": true, "bags": true, "bottle": true, "bottles": true,
	"dozen": true, "count": true, "loaf": true, "loaves": true,
	"bunch": true, "bunches": true, "head": true, "heads": true,
	"pack": true, "packs": true, "carton": true, "cartons": true,
}

func parseQuantity(tok string) (float64, bool) {
	if n, err := strconv.ParseFloat(tok, 64); err == nil {
		return n, true
	}
	if a, b, ok := strings.Cut(tok, "/"); ok {
		num, err1 := strconv.ParseFloat(a, 64)
		den, err2 := strconv.ParseFloat(b, 64)
		if err1 == nil && err2 == nil && den != 0 {
			return num / den, true
		}
	}
	return 0, false
}

// FallbackInventoryItems parses free-text inventory without a model.
// Entries split on newlines and commas; a leading number (optionally
// followed by a recognized unit word) becomes the quantity and unit, the
// rest the item name. No expiry is ever estimated here.
func FallbackInventoryItems(rawInput string) []domain.InventoryItem {
	var out []domain.InventoryItem
	for _, chunk := range strings.FieldsFunc(rawInput, func(r rune) bool {
		return r == '\n' || r == ','
	}) {
		entry := strings.TrimSpace(chunk)
		if entry == "" {
			continue
		}

		item := domain.InventoryItem{Name: entry}
		fields := strings.Fields(entry)
		if len(fields) > 1 {
			if q, ok := parseQuantity(fields[0]); ok {
				item.Quantity = &q
				rest := fields[1:]
				if len(rest) > 1 && inventoryUnits[strings.ToLower(rest[0])] {
					item.Unit = strings.ToLower(rest[0])
					rest = rest[1:]
				}
				item.Name = strings.Join(rest, " ")
			}
		}
		if item.Name == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

// FallbackInventoryMeals builds simple meal ideas directly from the
// ingredients on hand, without a model. Each meal draws a slice of the
// available items.
func FallbackInventoryMeals(req InventoryMealsRequest) []domain.InventoryMeal {
	var names []string
	for _, chunk := range strings.FieldsFunc(req.Ingredients, func(r rune) bool {
		return r == '\n' || r == ','
	}) {
		if n := strings.TrimSpace(chunk); n != "" {
			names = append(names, n)
		}
	}

	templates := []struct {
		title       string
		description string
		prepTime    string
	}{
		{"Pantry Skillet", "A one-pan meal built from what you have on hand.", "30 minutes"},
		{"Simple Bake", "An easy oven dish using your available ingredients.", "45 minutes"},
		{"Mixed Plate", "A no-fuss plate combining your current inventory.", "20 minutes"},
	}

	var out []domain.InventoryMeal
	for i, t := range templates {
		meal := domain.InventoryMeal{
			Title:       t.title,
			Description: t.description,
			Difficulty:  domain.DifficultyEasy,
			PrepTime:    t.prepTime,
			Servings:    baseServings,
		}
		// Rotate through the inventory so the three meals differ.
		for j := 0; j < len(names) && j < 4; j++ {
			meal.Ingredients = append(meal.Ingredients, domain.MealIngredient{
				ID:     "ing-" + uuid.NewString()[:8],
				Name:   names[(i+j)%len(names)],
				Amount: "1",
				Unit:   "portion",
			})
		}
		if len(meal.Ingredients) == 0 {
			continue
		}
		out = append(out, meal)
	}
	return out
}
