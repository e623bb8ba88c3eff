package constants

import (
	"strings"
)

type Category string

const (
	Restauration Category = "Restauration"
	Epicerie     Category = "Épicerie"
	Carburant    Category = "Carburant"
	Materiaux    Category = "Matériaux"
	Fournitures  Category = "Fournitures"
	Transport    Category = "Transport"
	Autre        Category = "Autre"
)

var allCategories = []Category{
	Restauration,
	Epicerie,
	Carburant,
	Materiaux,
	Fournitures,
	Transport,
	Autre,
}

// categoryKeywords maps each category to the vendor/item substrings that
// select it. Declaration order is the tie-break: the first category with a
// matching keyword wins. Keywords are written accent-stripped because the
// classifier receives folded text.
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{Restauration, []string{"restaurant", "resto", "cafe", "bistro", "brasserie", "pizzeria", "pizza", "sushi", "burger", "grill", "traiteur", "cantine", "deli"}},
	{Epicerie, []string{"epicerie", "supermarche", "marche", "iga", "metro", "provigo", "maxi", "costco", "super c", "grocery", "fruiterie", "boulangerie"}},
	{Carburant, []string{"essence", "carburant", "petro", "esso", "shell", "ultramar", "station-service", "diesel", "fuel"}},
	{Materiaux, []string{"quincaillerie", "materiaux", "rona", "home depot", "bmr", "canac", "patrick morin", "lumber", "beton", "gypse"}},
	{Fournitures, []string{"bureau en gros", "staples", "papeterie", "fourniture", "bureautique", "encre", "toner"}},
	{Transport, []string{"taxi", "uber", "stationnement", "parking", "peage", "stm", "rtc", "exo", "via rail"}},
}

func AsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// ClassifyExpense maps receipt text (vendor name, item names) to an expense
// category. Matching is substring based over lowercase accent-stripped input;
// callers fold the texts before calling. Always returns a category, falling
// back to Autre.
func ClassifyExpense(foldedTexts ...string) Category {
	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			for _, text := range foldedTexts {
				if text == "" {
					continue
				}
				if strings.Contains(text, kw) {
					return entry.category
				}
			}
		}
	}
	return Autre
}
