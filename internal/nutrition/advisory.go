package nutrition

import "fmt"

// Per-meal thresholds. These are independent of the daily catalog ranges.
const (
	MealProteinFloor = 15.0
	MealFibreFloor   = 5.0
	MealSugarCeiling = 15.0
)

// Advise returns the advisories for one populated meal slot. Each check is
// independent, so a meal can trigger none or all of them.
func Advise(slot string, t Totals) []string {
	out := []string{}
	if p := t[Protein]; p < MealProteinFloor {
		out = append(out, fmt.Sprintf("Your %s is low in protein (%.1fg). Eggs, beans, dairy or lean meat would help.", slot, p))
	}
	if f := t[Fibre]; f < MealFibreFloor {
		out = append(out, fmt.Sprintf("Your %s could use more fiber (%.1fg). Try whole grains, fruit or vegetables.", slot, f))
	}
	if s := t[Sugar]; s > MealSugarCeiling {
		out = append(out, fmt.Sprintf("Your %s is high in sugar (%.1fg), which can lead to an energy crash later.", slot, s))
	}
	return out
}
