package legacy

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/schoolmeal-backend/internal/platform/apierr"
	"github.com/yungbote/schoolmeal-backend/internal/platform/ctxutil"
	"github.com/yungbote/schoolmeal-backend/internal/platform/logger"
)

const menuCSV = `date,breakfast,lunch,snack1,dinner,snack2
2024-09-02,Oatmeal;Banana,Rice+Chicken;Salad,Apple,"Pasta, Meatballs",
2024-09-03,Toast,Fish Tacos,,Soup,Yogurt
not-a-date,Ignored,Ignored,,,
2024-09-02,Duplicate,Duplicate,,,
`

const lookupJSON = `{
  "Rice": ["Carbohydrates"],
  "Chicken": ["Protein", "Minerals"],
  "Apple": ["Vitamins", "Water"],
  "Orange Juice": ["Vitamins", "Water"],
  "Spinach": ["Vitamins", "Minerals"],
  "Broccoli": ["Vitamins"],
  "Carrot": ["Vitamins", "Fibre"]
}`

func TestParseMealCell(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"  Toast ", []string{"Toast"}},
		{"Rice+Chicken;Salad", []string{"Rice+Chicken", "Salad"}},
		{"Rice+Chicken", []string{"Rice", "Chicken"}},
		{"Pasta, Meatballs", []string{"Pasta", "Meatballs"}},
		{"Eggs;;Toast;", []string{"Eggs", "Toast"}},
		{";", []string{";"}},
	}
	for _, tc := range cases {
		if got := ParseMealCell(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("ParseMealCell(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseMenu(t *testing.T) {
	m, err := ParseMenu(strings.NewReader(menuCSV))
	if err != nil {
		t.Fatalf("ParseMenu: %v", err)
	}
	if m.Len() != 2 {
		t.Fatalf("Len: want 2, got %d", m.Len())
	}
	day := m.Day("2024-09-02")
	if got := day["lunch"]; !reflect.DeepEqual(got, []string{"Rice+Chicken", "Salad"}) {
		t.Fatalf("lunch: %q", got)
	}
	if got := day["dinner"]; !reflect.DeepEqual(got, []string{"Pasta", "Meatballs"}) {
		t.Fatalf("dinner: %q", got)
	}
	if got := day[SlotSnack2]; len(got) != 0 {
		t.Fatalf("snack2 should be empty: %q", got)
	}
	if m.Day("2024-09-04") != nil {
		t.Fatalf("unknown day should be nil")
	}
}

func TestParseMenuRequiresDateColumn(t *testing.T) {
	if _, err := ParseMenu(strings.NewReader("day,lunch\n2024-09-02,Rice\n")); err == nil {
		t.Fatalf("expected error for missing date column")
	}
}

func TestLookupSuggest(t *testing.T) {
	l, err := ParseLookup(strings.NewReader(lookupJSON))
	if err != nil {
		t.Fatalf("ParseLookup: %v", err)
	}
	got := l.Suggest([]string{"Rice", "Grilled chicken"})

	wantNeeds := []Need{
		{Need: "Vitamins", Options: []string{"Apple", "Orange Juice", "Spinach"}},
		{Need: "Salt", Options: []string{}},
		{Need: "Water", Options: []string{"Apple", "Orange Juice"}},
	}
	if !reflect.DeepEqual(got.Suggestions, wantNeeds) {
		t.Fatalf("Suggestions: %+v", got.Suggestions)
	}
	if want := []string{"Carbohydrates", "Protein", "Minerals"}; !reflect.DeepEqual(got.Present, want) {
		t.Fatalf("Present: %q", got.Present)
	}
}

func TestLookupExactMatchSkipsSubstring(t *testing.T) {
	l, err := ParseLookup(strings.NewReader(`{"Apple": ["Vitamins"], "Apple Pie": ["Carbohydrates"]}`))
	if err != nil {
		t.Fatalf("ParseLookup: %v", err)
	}
	present := l.Present([]string{"Apple"})
	if !present["Vitamins"] || present["Carbohydrates"] {
		t.Fatalf("exact match must not fall back to substrings: %v", present)
	}
	present = l.Present([]string{"apple"})
	if !present["Vitamins"] || !present["Carbohydrates"] {
		t.Fatalf("substring match: %v", present)
	}
}

func TestParseLookupRejectsArray(t *testing.T) {
	if _, err := ParseLookup(strings.NewReader(`["Rice"]`)); err == nil {
		t.Fatalf("expected error for non-object lookup")
	}
}

func TestServiceCurrent(t *testing.T) {
	m, err := ParseMenu(strings.NewReader(menuCSV))
	if err != nil {
		t.Fatalf("ParseMenu: %v", err)
	}
	l, err := ParseLookup(strings.NewReader(lookupJSON))
	if err != nil {
		t.Fatalf("ParseLookup: %v", err)
	}
	svc := New(logger.Nop(), m, l)
	ctx := ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: uuid.New(), Role: "member"})

	cases := []struct {
		now    time.Time
		slot   string
		status string
		items  []string
	}{
		{time.Date(2024, 9, 2, 10, 15, 0, 0, time.UTC), SlotSnack1, "current", []string{"Apple"}},
		{time.Date(2024, 9, 2, 14, 30, 0, 0, time.UTC), SlotSnack2, "upcoming", []string{}},
		{time.Date(2024, 9, 2, 20, 0, 0, 0, time.UTC), "breakfast", "tomorrow", []string{"Toast"}},
		{time.Date(2024, 9, 3, 20, 0, 0, 0, time.UTC), "breakfast", "tomorrow", []string{}},
	}
	for _, tc := range cases {
		got, err := svc.Current(ctx, tc.now)
		if err != nil {
			t.Fatalf("Current(%s): %v", tc.now, err)
		}
		if got.MealSlot != tc.slot || got.Status != tc.status || !reflect.DeepEqual(got.Items, tc.items) {
			t.Fatalf("Current(%s): %+v", tc.now, got)
		}
	}

	if _, err := svc.Current(context.Background(), time.Now()); !errors.Is(err, apierr.ErrUnauthorized) {
		t.Fatalf("anonymous: expected unauthorized, got %v", err)
	}
}
