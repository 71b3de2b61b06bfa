package meals

import (
	"fmt"
	"sort"
	"time"
)

const (
	StatusCurrent  = "current"
	StatusUpcoming = "upcoming"
	StatusTomorrow = "tomorrow"
)

// Window is the serving time of one slot, as offsets from midnight.
type Window struct {
	Slot  string
	Start time.Duration
	End   time.Duration
}

func (w Window) Range() string {
	return fmt.Sprintf("%s - %s", clock(w.Start), clock(w.End))
}

func clock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}

func At(h, m int) time.Duration {
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute
}

// Schedule is the ordered list of serving windows for one school day.
type Schedule []Window

var DefaultSchedule = Schedule{
	{Slot: SlotBreakfast, Start: At(7, 0), End: At(8, 30)},
	{Slot: SlotLunch, Start: At(12, 0), End: At(14, 0)},
	{Slot: SlotDinner, Start: At(17, 30), End: At(19, 0)},
}

// Lookup returns the window for slot.
func (s Schedule) Lookup(slot string) (Window, bool) {
	for _, w := range s {
		if w.Slot == slot {
			return w, true
		}
	}
	return Window{}, false
}

// Resolution is the meal a diner should be shown at a given moment.
type Resolution struct {
	Window Window
	Status string
	Day    string
}

// CurrentOrNext returns the window being served at now, else the next one
// later today, else the earliest window of the following day.
func (s Schedule) CurrentOrNext(now time.Time) (Resolution, bool) {
	if len(s) == 0 {
		return Resolution{}, false
	}
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	offset := now.Sub(midnight)
	today := DayOf(now)

	for _, w := range s {
		if offset >= w.Start && offset <= w.End {
			return Resolution{Window: w, Status: StatusCurrent, Day: today}, true
		}
	}

	byStart := make(Schedule, len(s))
	copy(byStart, s)
	sort.SliceStable(byStart, func(i, j int) bool { return byStart[i].Start < byStart[j].Start })

	for _, w := range byStart {
		if offset < w.Start {
			return Resolution{Window: w, Status: StatusUpcoming, Day: today}, true
		}
	}
	return Resolution{Window: byStart[0], Status: StatusTomorrow, Day: DayOf(midnight.AddDate(0, 0, 1))}, true
}
