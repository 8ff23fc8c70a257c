package usecase

import (
	"regexp"
	"strings"
)

var recipeIntentRegex = regexp.MustCompile(`(?i)recipe|banane|how to make`)

// recipes is the small curated dish library served for recipe intents.
var recipes = map[string]string{
	"schezwan fried rice": "Ingredients: cooked rice (2 cups), Schezwan sauce (2 tbsp), " +
		"mixed vegetables (1 cup), soy sauce (1 tbsp), vinegar (1 tsp), oil and salt to taste.\n" +
		"Method: heat oil, stir-fry the veggies for 2 minutes; add Schezwan and soy sauce " +
		"with vinegar; mix in the rice and toss well; serve hot with chilli oil or ketchup.",

	"chilly garlic noodles": "Ingredients: boiled noodles (2 cups), chopped garlic (1 tbsp), " +
		"chilli flakes (1 tsp), soy sauce (1 tbsp), spring onion (2 tbsp).\n" +
		"Method: heat oil, saute garlic and chilli; add noodles and sauces; " +
		"toss 2 minutes on high flame; garnish with spring onion.",

	"paneer tikka": "Ingredients: paneer cubes (200g), hung curd (1/2 cup), tikka masala " +
		"(1 tbsp), capsicum and onion pieces (1/2 cup), oil, salt and lemon.\n" +
		"Method: mix everything and marinate the paneer for 30 minutes; grill or pan fry " +
		"till golden; sprinkle lemon juice and serve.",

	"spring roll": "Ingredients: spring roll sheets, mixed veg (1 cup), soy sauce (1 tbsp), " +
		"cornflour paste (2 tbsp).\n" +
		"Method: stir-fry the vegetables with sauces; roll in sheets and seal with paste; " +
		"deep fry till golden and crispy.",
}

// IsRecipeIntent reports whether the message asks for a recipe.
func IsRecipeIntent(message string) bool {
	return recipeIntentRegex.MatchString(message)
}

// LookupRecipe strips the recipe-intent words and finds the dish by
// substring. Returns the recipe text and whether a dish was found.
func LookupRecipe(message string) (string, bool) {
	dish := Normalize(recipeIntentRegex.ReplaceAllString(message, ""))
	for key, text := range recipes {
		if strings.Contains(dish, key) {
			return text, true
		}
	}
	return "", false
}

// RecipeSuggestions lists the dishes the library knows, for the
// not-found reply.
func RecipeSuggestions() []string {
	return []string{"Schezwan Fried Rice", "Chilly Garlic Noodles", "Paneer Tikka", "Spring Roll"}
}
