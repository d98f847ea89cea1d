package mensa

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
)

// Extractor locates the menu section in raw markup and yields one
// node per menu item, without inspecting item internals.
type Extractor interface {
	Extract(markup []byte) ([]*goquery.Selection, error)
}

// MealPlanExtractor knows the stwdo.de page structure: a single
// div.meals-wrapper containing one div.meal-item per dish.
type MealPlanExtractor struct{}

func (MealPlanExtractor) Extract(markup []byte) ([]*goquery.Selection, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return nil, err
	}

	wrapper := doc.Find("div.meals-wrapper")
	if wrapper.Length() == 0 {
		return nil, ErrMenuNotFound
	}

	var items []*goquery.Selection
	wrapper.Find("div.meal-item").Each(func(_ int, sel *goquery.Selection) {
		items = append(items, sel)
	})
	return items, nil
}
