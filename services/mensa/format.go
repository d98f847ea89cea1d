package mensa

import (
	"strings"
	"time"
)

const menuTitle = "Speiseplan"

// side stations that only clutter the default view
var excludedCategories = map[string]bool{
	"Grillstation": true,
	"Beilagen":     true,
}

// Render produces the chat-ready markdown text for a menu. When full
// is false, items from the excluded side stations are omitted. A
// non-zero day is appended to the title. An empty (or fully filtered)
// menu renders as the title alone.
func Render(menu DailyMenu, full bool, day time.Time) string {
	var out strings.Builder
	out.WriteString("*" + menuTitle)
	if !day.IsZero() {
		out.WriteString(" " + day.Format("02.01.2006"))
	}
	out.WriteString("*")

	for _, item := range menu {
		if !full && excludedCategories[item.Category] {
			continue
		}
		out.WriteString("\n\n*" + item.Category + ":*")
		if item.Emoticons != "" {
			out.WriteString(" " + item.Emoticons)
		}
		out.WriteString("\n" + item.Description)
	}
	return out.String()
}
