package mensa

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/PuerkitoBio/goquery"

	"mensabot-backend/lib/htmlutil"
)

var allergenCodesRegex = regexp.MustCompile(` ?[(](\d+[a-z]*,?)+[)]`)
var joinedCommaRegex = regexp.MustCompile(`([\p{L}\p{N}]),([\p{L}\p{N}])`)
var priceRegex = regexp.MustCompile(`(\d+),(\d+) €`)

func findItem(sel *goquery.Selection, class string) *goquery.Selection {
	return sel.Find("div.item." + class).First()
}

// cleanDescription strips the parenthesized allergen code list
// (e.g. " (5,7a,9)") and repairs commas the markup glued directly
// between words.
func cleanDescription(text string) string {
	text = allergenCodesRegex.ReplaceAllString(text, "")
	text = joinedCommaRegex.ReplaceAllString(text, "$1, $2")
	return htmlutil.CleanText(text)
}

func parsePrice(sel *goquery.Selection) (float64, error) {
	if len(sel.Nodes) == 0 {
		return 0, fmt.Errorf("%w: price section missing", ErrParse)
	}
	text := htmlutil.GetText(sel.Nodes[0])

	match := priceRegex.FindStringSubmatch(text)
	if match == nil {
		return 0, fmt.Errorf("%w: no price in %q", ErrParse, text)
	}
	euros, _ := strconv.Atoi(match[1])
	cents, _ := strconv.Atoi(match[2])
	return float64(euros) + float64(cents)/100, nil
}

// parseMenuItem converts one meal-item node into a MenuItem. Every
// required field must be present, otherwise the whole item is
// rejected.
func parseMenuItem(sel *goquery.Selection) (MenuItem, error) {
	category := findItem(sel, "category").Find("img").First().AttrOr("title", "")
	if category == "" {
		return MenuItem{}, fmt.Errorf("%w: category icon missing", ErrParse)
	}

	descriptionSel := findItem(sel, "description")
	if descriptionSel.Length() == 0 {
		return MenuItem{}, fmt.Errorf("%w: description missing", ErrParse)
	}
	description := cleanDescription(descriptionSel.Text())

	suppliesSel := findItem(sel, "supplies")
	if suppliesSel.Length() == 0 {
		return MenuItem{}, fmt.Errorf("%w: supplies section missing", ErrParse)
	}
	var supplies []string
	suppliesSel.Find("img").Each(func(_ int, img *goquery.Selection) {
		if title, ok := img.Attr("title"); ok {
			supplies = append(supplies, title)
		}
	})

	priceStudent, err := parsePrice(findItem(sel, "price.student"))
	if err != nil {
		return MenuItem{}, fmt.Errorf("student: %w", err)
	}
	priceStaff, err := parsePrice(findItem(sel, "price.staff"))
	if err != nil {
		return MenuItem{}, fmt.Errorf("staff: %w", err)
	}
	priceGuest, err := parsePrice(findItem(sel, "price.guest"))
	if err != nil {
		return MenuItem{}, fmt.Errorf("guest: %w", err)
	}

	return MenuItem{
		Category:     category,
		Description:  description,
		Supplies:     supplies,
		Emoticons:    emoticonsFor(supplies),
		PriceStudent: priceStudent,
		PriceStaff:   priceStaff,
		PriceGuest:   priceGuest,
	}, nil
}
