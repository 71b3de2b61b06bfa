package legacy

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

// RequiredCategories is the balance checklist, in reporting order.
var RequiredCategories = []string{"Carbohydrates", "Protein", "Vitamins", "Minerals", "Salt", "Water"}

const maxOptions = 3

// Lookup maps a food name to the nutrient categories it supplies. Foods keep
// the order they appear in the source file.
type Lookup struct {
	foods      []string
	categories map[string][]string
}

func LoadLookup(path string) (*Lookup, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open nutrition lookup: %w", err)
	}
	defer f.Close()
	return ParseLookup(f)
}

// ParseLookup reads a JSON object of food name to category list.
func ParseLookup(r io.Reader) (*Lookup, error) {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read nutrition lookup: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("nutrition lookup must be a JSON object")
	}
	l := &Lookup{categories: map[string][]string{}}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read nutrition lookup key: %w", err)
		}
		food, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var cats []string
		if err := dec.Decode(&cats); err != nil {
			return nil, fmt.Errorf("categories for %q: %w", food, err)
		}
		if _, dup := l.categories[food]; !dup {
			l.foods = append(l.foods, food)
		}
		l.categories[food] = cats
	}
	return l, nil
}

func (l *Lookup) Len() int { return len(l.foods) }

// Present returns the categories supplied by items. An exact name match wins;
// otherwise every food whose name contains, or is contained in, the item
// (case-insensitive) contributes.
func (l *Lookup) Present(items []string) map[string]bool {
	found := map[string]bool{}
	for _, it := range items {
		if cats, ok := l.categories[it]; ok {
			for _, c := range cats {
				found[c] = true
			}
			continue
		}
		lit := strings.ToLower(it)
		for _, food := range l.foods {
			lf := strings.ToLower(food)
			if strings.Contains(lit, lf) || strings.Contains(lf, lit) {
				for _, c := range l.categories[food] {
					found[c] = true
				}
			}
		}
	}
	return found
}

type Need struct {
	Need    string   `json:"need"`
	Options []string `json:"options"`
}

type Balance struct {
	Suggestions []Need   `json:"suggestions"`
	Present     []string `json:"present"`
}

// Suggest reports each missing required category with up to three foods
// that supply it.
func (l *Lookup) Suggest(items []string) Balance {
	present := l.Present(items)
	out := Balance{Suggestions: []Need{}, Present: []string{}}
	for _, c := range RequiredCategories {
		if present[c] {
			continue
		}
		opts := []string{}
		for _, food := range l.foods {
			if len(opts) == maxOptions {
				break
			}
			for _, fc := range l.categories[food] {
				if fc == c {
					opts = append(opts, food)
					break
				}
			}
		}
		out.Suggestions = append(out.Suggestions, Need{Need: c, Options: opts})
	}
	for _, c := range RequiredCategories {
		if present[c] {
			out.Present = append(out.Present, c)
		}
	}
	var extra []string
	for c := range present {
		if !isRequired(c) {
			extra = append(extra, c)
		}
	}
	slices.Sort(extra)
	out.Present = append(out.Present, extra...)
	return out
}

func isRequired(c string) bool {
	return slices.Contains(RequiredCategories, c)
}
