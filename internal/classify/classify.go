// Package classify maps free-text orders to a decorative category.
package classify

import "strings"

type Category string

const (
	Coffee  Category = "coffee"
	Tea     Category = "tea"
	Water   Category = "water"
	Food    Category = "food"
	Default Category = "default"
)

type rule struct {
	category Category
	keywords []string
}

// Checked in order, first match wins. Matching is by substring, so
// "steak" is tea.
var rules = []rule{
	{Coffee, []string{"قهوة", "coffee", "نسكافيه", "اسبريسو"}},
	{Tea, []string{"شاي", "tea", "ينسون", "نعناع"}},
	{Water, []string{"ميه", "ماء", "water"}},
	{Food, []string{"اكل", "غدا", "ساندوتش", "food"}},
}

var glyphs = map[Category]string{
	Coffee:  "☕",
	Tea:     "🍵",
	Water:   "💧",
	Food:    "🥪",
	Default: "☕",
}

func Classify(text string) Category {
	text = strings.ToLower(text)
	for _, r := range rules {
		for _, k := range r.keywords {
			if strings.Contains(text, k) {
				return r.category
			}
		}
	}
	return Default
}

// Categories lists every category, Default last.
func Categories() []Category {
	return []Category{Coffee, Tea, Water, Food, Default}
}

// Glyph is the static icon shown when the category animation is unavailable.
func (c Category) Glyph() string {
	if g, ok := glyphs[c]; ok {
		return g
	}
	return glyphs[Default]
}

func Parse(s string) (Category, bool) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}
