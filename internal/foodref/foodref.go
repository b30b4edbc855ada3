// Package foodref provides a static food-composition reference table.
// Values are per 100g edible portion, raw weight unless noted.
package foodref

import (
	"strconv"
	"strings"
	"unicode"
)

// FoodItem holds per-100g macros for one reference food.
type FoodItem struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
}

// Table is a read-only collection of reference foods.
type Table struct {
	items []FoodItem
	index map[string]int
}

// NewTable builds the lookup index over the default reference foods.
func NewTable() *Table {
	t := &Table{items: defaultFoods}
	t.index = make(map[string]int, len(t.items))
	for i, item := range t.items {
		t.index[strings.ToLower(item.Name)] = i
	}
	return t
}

// Items returns the full table for listing endpoints.
func (t *Table) Items() []FoodItem {
	out := make([]FoodItem, len(t.items))
	copy(out, t.items)
	return out
}

// Lookup resolves a free-form food description like "brown rice 150g" or
// "2 boiled eggs" to a reference entry. The description is normalized by
// stripping quantity and unit tokens plus punctuation, then matched
// exactly and finally by substring in either direction.
func (t *Table) Lookup(description string) (FoodItem, bool) {
	key := Normalize(description)
	if key == "" {
		return FoodItem{}, false
	}

	if i, ok := t.index[key]; ok {
		return t.items[i], true
	}

	for i, item := range t.items {
		name := strings.ToLower(item.Name)
		if strings.Contains(key, name) || strings.Contains(name, key) {
			return t.items[i], true
		}
	}
	return FoodItem{}, false
}

// PromptHint serializes the table as a compact "name:calories" listing
// suitable for embedding in a generation prompt.
func (t *Table) PromptHint() string {
	var sb strings.Builder
	for i, item := range t.items {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(item.Name)
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(int(item.Calories)))
		sb.WriteString("kcal")
	}
	return sb.String()
}

var unitTokens = map[string]struct{}{
	"g": {}, "kg": {}, "mg": {}, "ml": {}, "l": {}, "oz": {}, "lb": {},
	"cup": {}, "cups": {}, "bowl": {}, "bowls": {}, "piece": {}, "pieces": {},
	"slice": {}, "slices": {}, "tbsp": {}, "tsp": {}, "serving": {}, "servings": {},
	"small": {}, "medium": {}, "large": {}, "of": {}, "a": {}, "an": {},
}

// Normalize lowercases the description and drops quantity tokens
// ("150g", "2"), unit words, and punctuation, keeping only the food name.
func Normalize(description string) string {
	lower := strings.ToLower(description)

	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, lower)

	var kept []string
	for _, tok := range strings.Fields(cleaned) {
		if isQuantityToken(tok) {
			continue
		}
		if _, unit := unitTokens[tok]; unit {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

// isQuantityToken matches pure numbers and number+unit blends ("150g",
// "2kg", "500ml").
func isQuantityToken(tok string) bool {
	i := 0
	for i < len(tok) && tok[i] >= '0' && tok[i] <= '9' {
		i++
	}
	if i == 0 {
		return false
	}
	if i == len(tok) {
		return true
	}
	_, unit := unitTokens[tok[i:]]
	return unit
}
