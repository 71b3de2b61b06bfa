package nutrition

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yungbote/schoolmeal-backend/internal/domain/meals"
)

type Kind string

const (
	KindWarning    Kind = "warning"
	KindDeficiency Kind = "deficiency"
)

// MaxCandidates bounds the ranked substitutes per deficiency.
const MaxCandidates = 3

// Suggestion is a tagged variant: exactly one of Warning or Deficiency is
// set, matching Kind.
type Suggestion struct {
	Kind       Kind        `json:"kind"`
	Nutrient   Nutrient    `json:"nutrient"`
	Message    string      `json:"message"`
	Warning    *Warning    `json:"warning,omitempty"`
	Deficiency *Deficiency `json:"deficiency,omitempty"`
}

type Warning struct {
	Current float64 `json:"current"`
	Limit   float64 `json:"limit"`
	Unit    string  `json:"unit"`
	Impact  string  `json:"impact"`
}

type Deficiency struct {
	Current    float64     `json:"current"`
	Target     float64     `json:"target"`
	Deficit    float64     `json:"deficit"`
	Unit       string      `json:"unit"`
	Benefit    string      `json:"benefit"`
	Candidates []Candidate `json:"candidates"`
}

type Candidate struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// Suggest walks the tracked nutrients in order. Limited nutrients produce a
// warning only when above max; the others produce a deficiency only when
// below min. Exceeding max on a non-limited nutrient is not reported.
func Suggest(cat Catalog, totals Totals, selected map[string][]string, pool []*meals.FoodTemplate) []Suggestion {
	out := []Suggestion{}
	for _, n := range Tracked {
		spec, ok := cat[n]
		if !ok {
			continue
		}
		total := totals[n]
		if n.Limited() {
			if total > spec.Max {
				out = append(out, Suggestion{
					Kind:     KindWarning,
					Nutrient: n,
					Message: fmt.Sprintf("%s is above the daily limit: %.1f%s of %.0f%s.",
						title(n), total, spec.Unit, spec.Max, spec.Unit),
					Warning: &Warning{
						Current: round1(total),
						Limit:   spec.Max,
						Unit:    spec.Unit,
						Impact:  spec.Impact,
					},
				})
			}
			continue
		}
		if total < spec.Min {
			deficit := spec.Min - total
			out = append(out, Suggestion{
				Kind:     KindDeficiency,
				Nutrient: n,
				Message: fmt.Sprintf("You need %.1f%s more %s to reach the daily minimum of %.0f%s.",
					deficit, spec.Unit, n, spec.Min, spec.Unit),
				Deficiency: &Deficiency{
					Current:    round1(total),
					Target:     spec.Min,
					Deficit:    round1(deficit),
					Unit:       spec.Unit,
					Benefit:    spec.Benefit,
					Candidates: Rank(n, spec.Unit, pool, selected),
				},
			})
		}
	}
	return out
}

func rankable(n Nutrient) bool {
	switch n {
	case Calories, Protein, Carbs, Fats, Fibre:
		return true
	}
	return false
}

// Rank returns up to MaxCandidates templates not already selected that day,
// highest in n first. Nutrients outside the rankable set return an empty list.
func Rank(n Nutrient, unit string, pool []*meals.FoodTemplate, selected map[string][]string) []Candidate {
	out := []Candidate{}
	if !rankable(n) {
		return out
	}
	taken := map[string]struct{}{}
	for _, items := range selected {
		for _, name := range items {
			taken[name] = struct{}{}
		}
	}
	avail := make([]*meals.FoodTemplate, 0, len(pool))
	for _, t := range pool {
		if t == nil {
			continue
		}
		if _, ok := taken[t.Name]; ok {
			continue
		}
		avail = append(avail, t)
	}
	sort.SliceStable(avail, func(i, j int) bool {
		return Amount(avail[i], n) > Amount(avail[j], n)
	})
	if len(avail) > MaxCandidates {
		avail = avail[:MaxCandidates]
	}
	for _, t := range avail {
		out = append(out, Candidate{Name: t.Name, Amount: round1(Amount(t, n)), Unit: unit})
	}
	return out
}

func title(n Nutrient) string {
	s := string(n)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
