package meals

import (
	"testing"
	"time"
)

func TestCurrentOrNext(t *testing.T) {
	day := func(h, m int) time.Time { return time.Date(2024, 3, 1, h, m, 0, 0, time.UTC) }
	cases := []struct {
		name       string
		now        time.Time
		wantSlot   string
		wantStatus string
		wantDay    string
	}{
		{"inside breakfast", day(7, 45), SlotBreakfast, StatusCurrent, "2024-03-01"},
		{"window end is inclusive", day(14, 0), SlotLunch, StatusCurrent, "2024-03-01"},
		{"between meals", day(9, 0), SlotLunch, StatusUpcoming, "2024-03-01"},
		{"early morning", day(5, 0), SlotBreakfast, StatusUpcoming, "2024-03-01"},
		{"after dinner", day(21, 0), SlotBreakfast, StatusTomorrow, "2024-03-02"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, ok := DefaultSchedule.CurrentOrNext(tc.now)
			if !ok {
				t.Fatalf("CurrentOrNext: no resolution")
			}
			if res.Window.Slot != tc.wantSlot || res.Status != tc.wantStatus || res.Day != tc.wantDay {
				t.Fatalf("CurrentOrNext: got (%s,%s,%s) want (%s,%s,%s)",
					res.Window.Slot, res.Status, res.Day, tc.wantSlot, tc.wantStatus, tc.wantDay)
			}
		})
	}
}

func TestWindowRange(t *testing.T) {
	w, ok := DefaultSchedule.Lookup(SlotDinner)
	if !ok {
		t.Fatalf("Lookup: dinner missing")
	}
	if got := w.Range(); got != "17:30 - 19:00" {
		t.Fatalf("Range: got %q", got)
	}
}

func TestParseDay(t *testing.T) {
	if got, err := ParseDay(" 2024-03-01 "); err != nil || got != "2024-03-01" {
		t.Fatalf("ParseDay: got %q, %v", got, err)
	}
	for _, bad := range []string{"", "2024-13-01", "03/01/2024", "2024-02-30"} {
		if _, err := ParseDay(bad); err == nil {
			t.Fatalf("ParseDay(%q): expected error", bad)
		}
	}
}
