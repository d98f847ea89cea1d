package mensa

import "strings"

// MenuItem is one parsed dish/station entry. It is never mutated after
// parsing, a re-fetch produces an independent record.
type MenuItem struct {
	Category    string
	Description string
	// dietary/allergen markers in the order the page lists them,
	// duplicates kept as they appear
	Supplies  []string
	Emoticons string

	PriceStudent float64
	PriceStaff   float64
	PriceGuest   float64
}

// DailyMenu is the ordered list of items for one calendar date. An
// empty menu is a valid result, not an error.
type DailyMenu []MenuItem

var supplyEmoticons = map[string]string{
	"Schweinefleisch": "🐷",
	"Rindfleisch":     "🐮",
	"Geflügel":        "🐔",
	"Fisch":           "🐟",
	"vegetarisch":     "🥕",
	"vegan":           "🌱",
}

// emoticonsFor concatenates the emoji symbols for the known dietary
// categories among the given supply tags, in input order. Tags without
// a mapping are skipped.
func emoticonsFor(supplies []string) string {
	var out strings.Builder
	for _, supply := range supplies {
		if emoticon, ok := supplyEmoticons[supply]; ok {
			out.WriteString(emoticon)
		}
	}
	return out.String()
}
