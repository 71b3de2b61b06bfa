package legacy

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/yungbote/schoolmeal-backend/internal/domain/meals"
)

const (
	SlotSnack1 = "snack1"
	SlotSnack2 = "snack2"
)

// Slots is the five-slot school day in serving order.
var Slots = []string{meals.SlotBreakfast, SlotSnack1, meals.SlotLunch, SlotSnack2, meals.SlotDinner}

// Schedule is the legacy five-slot school timetable.
var Schedule = meals.Schedule{
	{Slot: meals.SlotBreakfast, Start: meals.At(7, 0), End: meals.At(8, 30)},
	{Slot: SlotSnack1, Start: meals.At(10, 0), End: meals.At(10, 30)},
	{Slot: meals.SlotLunch, Start: meals.At(12, 0), End: meals.At(14, 0)},
	{Slot: SlotSnack2, Start: meals.At(15, 30), End: meals.At(16, 0)},
	{Slot: meals.SlotDinner, Start: meals.At(17, 30), End: meals.At(19, 0)},
}

var dateLayouts = []string{"2006-01-02", "2006/01/02", "1/2/2006", "01/02/2006", "2006-01-02 15:04:05"}

// DayMenu maps a slot to the items served in it.
type DayMenu map[string][]string

// Menu is a CSV menu indexed by day. The first row for a day wins.
type Menu struct {
	days map[string]DayMenu
}

func LoadMenu(path string) (*Menu, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open menu csv: %w", err)
	}
	defer f.Close()
	return ParseMenu(f)
}

// ParseMenu reads a menu with a date column and one column per slot. Missing
// slot columns read as empty.
func ParseMenu(r io.Reader) (*Menu, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("menu csv is empty")
		}
		return nil, fmt.Errorf("read menu header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	dateCol, ok := cols["date"]
	if !ok {
		return nil, errors.New("menu csv has no date column")
	}

	m := &Menu{days: map[string]DayMenu{}}
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read menu line %d: %w", line, err)
		}
		day, err := parseDate(cell(rec, dateCol))
		if err != nil {
			continue
		}
		if _, seen := m.days[day]; seen {
			continue
		}
		dm := DayMenu{}
		for _, slot := range Slots {
			if i, ok := cols[slot]; ok {
				dm[slot] = ParseMealCell(cell(rec, i))
			} else {
				dm[slot] = []string{}
			}
		}
		m.days[day] = dm
	}
	return m, nil
}

func cell(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}

func parseDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return meals.DayOf(t), nil
		}
	}
	return "", fmt.Errorf("unrecognised date %q", raw)
}

// Day returns the menu for day, or nil when the CSV has no row for it.
func (m *Menu) Day(day string) DayMenu {
	if m == nil {
		return nil
	}
	return m.days[day]
}

func (m *Menu) Len() int {
	if m == nil {
		return 0
	}
	return len(m.days)
}

// ParseMealCell splits a cell on the first of ";", "+" or "," it contains.
// Only one separator kind is honoured per cell.
func ParseMealCell(raw string) []string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return []string{}
	}
	for _, sep := range []string{";", "+", ","} {
		if !strings.Contains(s, sep) {
			continue
		}
		var items []string
		for _, p := range strings.Split(s, sep) {
			if p = strings.TrimSpace(p); p != "" {
				items = append(items, p)
			}
		}
		if len(items) > 0 {
			return items
		}
		break
	}
	return []string{s}
}
