package nutrition

import (
	"math"

	"github.com/yungbote/schoolmeal-backend/internal/domain/meals"
)

// Totals maps each tracked nutrient to an accumulated amount.
type Totals map[Nutrient]float64

// NewTotals returns totals with every tracked nutrient present at zero.
func NewTotals() Totals {
	t := make(Totals, len(Tracked))
	for _, n := range Tracked {
		t[n] = 0
	}
	return t
}

func (t Totals) add(tpl *meals.FoodTemplate) {
	for _, n := range Tracked {
		t[n] += Amount(tpl, n)
	}
}

// Row is one selection joined to its template. A nil Template is a dangling
// reference and is skipped.
type Row struct {
	MealSlot string
	Template *meals.FoodTemplate
}

type MealBreakdown struct {
	Items      []string `json:"items"`
	Totals     Totals   `json:"totals"`
	Advisories []string `json:"advisories"`
}

type DailyAnalysis struct {
	Day           string                   `json:"day,omitempty"`
	Totals        Totals                   `json:"totals"`
	Percentages   Totals                   `json:"percentages"`
	Meals         map[string][]string      `json:"meals"`
	MealTotals    map[string]Totals        `json:"meal_totals"`
	Suggestions   []Suggestion             `json:"suggestions"`
	MealBreakdown map[string]MealBreakdown `json:"meal_breakdown"`

	// Skipped counts rows dropped for unresolvable templates.
	Skipped int `json:"-"`
}

// Aggregate accumulates daily and per-slot totals and percentages. It does
// not generate suggestions or advisories.
func Aggregate(cat Catalog, rows []Row) *DailyAnalysis {
	a := &DailyAnalysis{
		Totals:        NewTotals(),
		Percentages:   NewTotals(),
		Meals:         map[string][]string{},
		MealTotals:    map[string]Totals{},
		Suggestions:   []Suggestion{},
		MealBreakdown: map[string]MealBreakdown{},
	}
	for _, r := range rows {
		if r.Template == nil {
			a.Skipped++
			continue
		}
		a.Meals[r.MealSlot] = append(a.Meals[r.MealSlot], r.Template.Name)
		mt, ok := a.MealTotals[r.MealSlot]
		if !ok {
			mt = NewTotals()
			a.MealTotals[r.MealSlot] = mt
		}
		mt.add(r.Template)
		a.Totals.add(r.Template)
	}
	for _, n := range Tracked {
		a.Percentages[n] = Percent(cat, n, a.Totals[n])
	}
	return a
}

// Percent is total against the nutrient's target, clamped to [0, 100].
// Limited nutrients are measured against max, the rest against the midpoint.
func Percent(cat Catalog, n Nutrient, total float64) float64 {
	spec, ok := cat[n]
	if !ok {
		return 0
	}
	target := spec.Midpoint()
	if n.Limited() {
		target = spec.Max
	}
	if target <= 0 {
		return 0
	}
	p := total / target * 100
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	return math.Min(100, p)
}

// Analyze runs the full daily analysis over rows. candidates is the template
// pool used to rank substitutes for deficient nutrients. It returns nil when
// rows is empty: no selections is "absent", not an empty analysis.
func Analyze(cat Catalog, rows []Row, candidates []*meals.FoodTemplate) *DailyAnalysis {
	if len(rows) == 0 {
		return nil
	}
	a := Aggregate(cat, rows)
	a.Suggestions = Suggest(cat, a.Totals, a.Meals, candidates)
	for slot, items := range a.Meals {
		a.MealBreakdown[slot] = MealBreakdown{
			Items:      items,
			Totals:     a.MealTotals[slot],
			Advisories: Advise(slot, a.MealTotals[slot]),
		}
	}
	return a
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
