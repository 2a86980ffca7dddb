package extract

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"activitymagic/internal/domain"
	"activitymagic/internal/port"
)

// baseServings is the reference serving count every quantity in prompts
// and fallback templates is expressed for. Scaling is linear in
// servings/baseServings so doubling the serving count exactly doubles
// every quantity.
const baseServings = 4

// ScaleAmount scales a base quantity (expressed for baseServings) to the
// requested serving count and formats it as a numeric string. Used by
// both the prompt builders and the fallback generator so the two paths
// agree on portions.
func ScaleAmount(base float64, servings int) string {
	scaled := base * float64(servings) / float64(baseServings)
	// Round to two decimals, then trim trailing zeros.
	scaled = math.Round(scaled*100) / 100
	return strconv.FormatFloat(scaled, 'f', -1, 64)
}

// ActivityRequest asks for a structured activity extracted from free text.
type ActivityRequest struct {
	Content string `json:"content"`
	URL     string `json:"url,omitempty"`
}

func (r *ActivityRequest) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return domain.ErrEmptyContent
	}
	return nil
}

// IngredientsRequest asks for a shopping list for a planned meal.
type IngredientsRequest struct {
	Category string            `json:"category"`
	Title    string            `json:"title,omitempty"`
	Details  string            `json:"details,omitempty"`
	Target   domain.MealTarget `json:"target"`
}

func (r *IngredientsRequest) Validate() error {
	if strings.TrimSpace(r.Category) == "" {
		return domain.ErrMissingCategory
	}
	return nil
}

// RecipeRequest asks for a name and description for a recipe URL.
type RecipeRequest struct {
	URL              string `json:"url"`
	ExistingCategory string `json:"existing_category,omitempty"`
	ExistingDetails  string `json:"existing_details,omitempty"`
}

func (r *RecipeRequest) Validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return domain.ErrMissingURL
	}
	if _, err := url.ParseRequestURI(r.URL); err != nil {
		return domain.ErrInvalidURL
	}
	return nil
}

// InventoryRequest asks for structured items from a rambling description
// of a storage location's contents.
type InventoryRequest struct {
	LocationName string `json:"location_name"`
	RawInput     string `json:"raw_input"`
}

func (r *InventoryRequest) Validate() error {
	if strings.TrimSpace(r.LocationName) == "" {
		return domain.ErrMissingLocation
	}
	if strings.TrimSpace(r.RawInput) == "" {
		return domain.ErrMissingRawInput
	}
	return nil
}

// SuggestionsRequest asks for three meal ideas for a category.
type SuggestionsRequest struct {
	Category    string `json:"category"`
	Preferences string `json:"preferences,omitempty"`
	KidsMeal    bool   `json:"is_kids_meal,omitempty"`
}

func (r *SuggestionsRequest) Validate() error {
	if strings.TrimSpace(r.Category) == "" {
		return domain.ErrMissingCategory
	}
	return nil
}

// InventoryMealsRequest asks for full meal suggestions built from the
// ingredients a household already has.
type InventoryMealsRequest struct {
	Ingredients string `json:"ingredients"`
	Location    string `json:"location,omitempty"`
}

func (r *InventoryMealsRequest) Validate() error {
	if strings.TrimSpace(r.Ingredients) == "" {
		return domain.ErrMissingInventory
	}
	return nil
}

// BuildActivityPrompt renders the extraction instruction for an activity
// description. Pure function of the request; same input, same prompt.
func BuildActivityPrompt(req *ActivityRequest) []port.Message {
	var source string
	if req.URL != "" {
		source = "URL to analyze: " + req.URL
	} else {
		source = fmt.Sprintf("Text to analyze: %q", req.Content)
	}

	user := `You are an AI assistant that extracts structured information from activity descriptions or URLs.
Analyze the following text and extract key details about an activity or event.

` + source + `

IMPORTANT: You must respond with ONLY a valid JSON object. Do not include any other text, explanations, or formatting.

Return a JSON object with this exact structure:
{
  "title": "A clear, concise title for the activity (max 100 characters)",
  "description": "A detailed description of the activity (max 500 characters)",
  "location": "The location/venue if mentioned (optional)",
  "categories": ["array", "of", "relevant", "categories"],
  "date": "YYYY-MM-DD format if date is mentioned (optional)",
  "time": "HH:MM format if time is mentioned (optional)",
  "estimated_duration": "duration in minutes if mentioned (optional)",
  "cost_estimate": "cost information if mentioned (optional)",
  "age_appropriate": "age recommendations if mentioned (optional)",
  "weather_dependent": "true/false if weather dependency is clear (optional)"
}

Categories must be from this list: food, entertainment, outdoor, culture, shopping, family, social, sports, education, wellness, travel, general

Example: "Picnic at Riverside Park on Sunday" becomes
{"title": "Picnic at Riverside Park", "description": "A relaxed picnic outing at Riverside Park.", "location": "Riverside Park", "categories": ["outdoor", "food"], "date": "Sunday"}

If information is not available or unclear, omit that field from the response.
CRITICAL: Return ONLY the JSON object, no other text.`

	return []port.Message{{Role: "user", Content: user}}
}

// BuildIngredientsPrompt renders the shopping list instruction for a
// planned meal, with example quantities scaled to the target audience.
func BuildIngredientsPrompt(req *IngredientsRequest) []port.Message {
	servings := req.Target.Servings()
	mealType := "adult meal"
	eaters := "adults"
	if req.Target == domain.TargetKids {
		mealType = "kids meal"
		eaters = "children"
	}
	title := req.Title
	if title == "" {
		title = "Not specified"
	}
	details := req.Details
	if details == "" {
		details = "Not specified"
	}

	system := "You are a helpful cooking assistant that generates ingredient lists for meal planning. Always respond with valid JSON only."

	user := fmt.Sprintf(`Generate a shopping list of ingredients for a %s serving %d people.

Meal Details:
- Category: %s
- Title: %s
- Details: %s
- Target: %s

Please provide ingredients in this exact JSON format:
{
  "ingredients": [
    {
      "name": "ingredient name",
      "amount": "quantity as string (only if it's a measurable amount)",
      "unit": "unit of measurement (only if amount is provided and it's a real unit)",
      "notes": "optional notes or preparation instructions"
    }
  ]
}

Example for %d people: {"ingredients": [{"name": "Pasta", "amount": "%s", "unit": "lb", "notes": "any shape"}, {"name": "Chicken breast"}]}

Guidelines:
- Include realistic quantities for %d %s
- Only include "amount" if it's a measurable quantity (e.g., "2", "1/2", "3")
- Only include "unit" if the amount is provided AND it's a real unit of measurement
- For whole items, omit both amount and unit (e.g., just "Chicken breast")
- For countable items, use "count" as unit (e.g., "4 eggs")
- Use common units: cups, lbs, tsp, tbsp, count, oz, etc.
- Include preparation notes when helpful (e.g., "diced", "minced", "fresh")
- For kids meals, consider simpler ingredients and smaller portions
- Be practical and specific
- Return only the JSON, no additional text`,
		mealType, servings, req.Category, title, details, mealType,
		servings, ScaleAmount(1, servings), servings, eaters)

	return []port.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}
}

// BuildRecipePrompt renders the recipe URL analysis instruction.
func BuildRecipePrompt(req *RecipeRequest) []port.Message {
	system := `You are a recipe analyzer. You can browse the web to analyze recipe URLs. Generate:
1. The specific name/title of the recipe or meal (e.g., "Pasta alla Norma", "Chicken Tikka Masala", "Caesar Salad")
2. A brief, inspiring description of the dish (1-2 sentences max)

Focus on being specific and appetizing. Extract the actual recipe name from the webpage, not a generic category. If the URL is inaccessible or unclear, try analyzing the website meta data or the actual URL to take your best guess at filling in the details. Only respond with empty strings if absolutely nothing is available.`

	user := fmt.Sprintf(`Please browse to this recipe URL and analyze it to generate the recipe name and description:

URL: %s

Respond with JSON format only:
{
  "category": "specific recipe name or meal title",
  "details": "brief description or empty string"
}`, req.URL)

	return []port.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}
}

// BuildInventoryPrompt renders the inventory normalization instruction.
// The expiry rules are the load-bearing part: the model must never
// invent expiration dates the user did not state.
func BuildInventoryPrompt(req *InventoryRequest) []port.Message {
	system := fmt.Sprintf(`You are a helpful inventory management assistant. Your job is to convert natural language descriptions of food items into structured inventory data.

The user is describing what they see in their %s. Convert their description into a list of individual food items with quantities, units, and categories.

Return your response as a JSON array of objects with this structure:
[
  {
    "name": "Specific food item name (e.g., 'Black Beans', 'Ground Beef', 'Bell Peppers')",
    "quantity": number (if specified, otherwise null),
    "unit": "Unit of measurement (e.g., 'cans', 'lbs', 'pieces', 'bags') or null if not specified",
    "category": "Food category (e.g., 'Proteins', 'Vegetables', 'Grains', 'Dairy', 'Pantry Staples', 'Frozen Foods')",
    "notes": "Any additional context or notes (e.g., 'leftover', 'half full', 'expires soon') or null if none",
    "estimated_expiry": "ONLY set this if the user explicitly mentions an expiration date, otherwise set to null"
  }
]

Guidelines:
- Break down compound descriptions into individual items
- Handle approximate quantities (e.g., "some", "half", "leftover")
- Be specific with food names (e.g., "Black Beans" not just "beans")
- If no quantity is mentioned, set quantity to null
- If no unit is mentioned, set unit to null
- If no category is mentioned, infer from the food type
- If no notes are mentioned, set notes to null
- CRITICAL: Only set estimated_expiry if the user explicitly mentions a date, time period, or expiration information
- Do NOT guess or estimate expiration dates based on food type or location
- Do NOT set expiration dates for pantry items unless specifically mentioned
- If the user says "expires Aug 25th" or "good until next week", then set the date
- If the user just says "broccoli" or "cans of beans", set estimated_expiry to null

Examples:
Input: "2 cans black beans, 1 lb ground beef, 3 bell peppers"
Output: [
  {"name": "Black Beans", "quantity": 2, "unit": "cans", "category": "Pantry Staples", "notes": null, "estimated_expiry": null},
  {"name": "Ground Beef", "quantity": 1, "unit": "lb", "category": "Proteins", "notes": null, "estimated_expiry": null},
  {"name": "Bell Peppers", "quantity": 3, "unit": "pieces", "category": "Vegetables", "notes": null, "estimated_expiry": null}
]

Input: "some leftover chicken, half a bag of spinach"
Output: [
  {"name": "Cooked Chicken", "quantity": null, "unit": null, "category": "Proteins", "notes": "leftover", "estimated_expiry": null},
  {"name": "Spinach", "quantity": 0.5, "unit": "bag", "category": "Vegetables", "notes": "half full", "estimated_expiry": null}
]`, req.LocationName)

	user := fmt.Sprintf("Location: %s\nRaw input: %q\n\nPlease convert this into structured inventory items.", req.LocationName, req.RawInput)

	return []port.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}
}

// BuildSuggestionsPrompt renders the meal suggestion instruction.
func BuildSuggestionsPrompt(req *SuggestionsRequest) []port.Message {
	kidsNote := ""
	if req.KidsMeal {
		kidsNote = "\n\nIMPORTANT: These are KIDS MEALS. Make them fun, appealing to children, and easy to eat. Use kid-friendly language and focus on familiar, comforting foods that kids typically enjoy."
	}

	system := `You are a helpful meal planning assistant. Generate 3 specific, practical meal suggestions based on the meal category and user preferences provided. Each suggestion should be a complete meal idea that a family could realistically prepare.

Return your response as a JSON array of objects with this structure:
[
  {
    "title": "Specific meal name (e.g., 'Honey Garlic Chicken Thighs with Roasted Vegetables')",
    "description": "Short, inspiring description that helps someone decide what to make (1 sentence max)"
  }
]

Focus on:
- Practical, family-friendly meals
- Clear, specific meal names (not generic)
- Short, inspiring descriptions
- Variety in cooking methods and flavors
- Consider dietary preferences if mentioned` + kidsNote

	target := "Family meal"
	friendly := "family-friendly"
	if req.KidsMeal {
		target = "Kids meal"
		friendly = "kid-friendly"
	}

	var user string
	if req.Preferences != "" {
		user = fmt.Sprintf("Category: %s\nUser preferences: %s\nTarget: %s\n\nPlease suggest 3 specific %s meals that match these preferences.",
			req.Category, req.Preferences, target, strings.ToLower(req.Category))
	} else {
		user = fmt.Sprintf("Category: %s\nTarget: %s\n\nPlease suggest 3 popular, %s %s meals.",
			req.Category, target, friendly, strings.ToLower(req.Category))
	}

	return []port.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}
}

// BuildInventoryMealsPrompt renders the inventory-based meal generation
// instruction.
func BuildInventoryMealsPrompt(req *InventoryMealsRequest) []port.Message {
	system := fmt.Sprintf(`You are a creative chef and meal planning expert. Your job is to suggest delicious, practical meals that can be made using the available ingredients.

The user has these ingredients available: %s

Generate 6 meal suggestions that:
1. Use primarily the ingredients they have
2. Are realistic and achievable for home cooking
3. Include a mix of difficulty levels and meal types
4. Provide clear, appetizing descriptions
5. List the key ingredients needed with proper amounts and units

Return your response as a JSON array of objects with this structure:
[
  {
    "title": "Creative, descriptive meal name",
    "description": "Appetizing 1-2 sentence description that makes someone want to cook this",
    "ingredients": [
      {
        "id": "unique-id-1",
        "name": "ingredient name",
        "amount": "2",
        "unit": "cups",
        "notes": "optional notes about preparation or type"
      }
    ],
    "difficulty": "Easy|Medium|Hard",
    "prepTime": "15 min|30 min|45 min|1 hour",
    "servings": 4
  }
]

Guidelines for ingredients:
- Each ingredient must have a unique "id" (use simple strings like "ing1", "ing2", etc.)
- "amount" should be a reasonable quantity (e.g., "2", "1/2", "3/4")
- "unit" should be a standard cooking unit (e.g., "cups", "tbsp", "cloves", "lb", "oz")
- "notes" is optional but helpful for preparation details (e.g., "minced", "boneless", "extra virgin")
- Focus on meals that maximize the available ingredients
- Suggest meals that are family-friendly and practical
- Include at least 2 "Easy" difficulty meals for beginners`, req.Ingredients)

	user := fmt.Sprintf(`Available ingredients: %s

Please suggest 6 delicious meals I can make with these ingredients. For each meal, provide the ingredients with proper amounts and units (e.g., "2 cups rice", "1 lb chicken breast", "3 cloves garlic").`, req.Ingredients)

	return []port.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}
}
