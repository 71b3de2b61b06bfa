package meals

import (
	"fmt"
	"strings"
	"time"
)

const (
	SlotBreakfast = "breakfast"
	SlotLunch     = "lunch"
	SlotDinner    = "dinner"
)

// Slots lists the meal slots in serving order.
var Slots = []string{SlotBreakfast, SlotLunch, SlotDinner}

const DayLayout = "2006-01-02"

func ValidSlot(slot string) bool {
	switch slot {
	case SlotBreakfast, SlotLunch, SlotDinner:
		return true
	}
	return false
}

// NormalizeSlot lower-cases and trims a slot name without validating it.
func NormalizeSlot(slot string) string {
	return strings.ToLower(strings.TrimSpace(slot))
}

// ParseDay validates a YYYY-MM-DD calendar day and returns it in canonical form.
func ParseDay(raw string) (string, error) {
	t, err := time.Parse(DayLayout, strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("invalid day %q: expected YYYY-MM-DD", raw)
	}
	return t.Format(DayLayout), nil
}

// DayOf returns the calendar day of t in t's own location.
func DayOf(t time.Time) string {
	return t.Format(DayLayout)
}
