package envutil

import (
	"reflect"
	"testing"
	"time"
)

func TestReaders(t *testing.T) {
	t.Setenv("EU_INT", "42")
	t.Setenv("EU_BAD_INT", "forty")
	t.Setenv("EU_BOOL", "on")
	t.Setenv("EU_SECONDS", "90")
	t.Setenv("EU_FLOAT", "0.25")
	t.Setenv("EU_LIST", " a, ,b ,")

	if got := String("EU_MISSING", "def"); got != "def" {
		t.Fatalf("String default: %q", got)
	}
	if got := Int("EU_INT", 0); got != 42 {
		t.Fatalf("Int: %d", got)
	}
	if got := Int("EU_BAD_INT", 7); got != 7 {
		t.Fatalf("Int fallback: %d", got)
	}
	if !Bool("EU_BOOL", false) {
		t.Fatalf("Bool: want true")
	}
	if got := Seconds("EU_SECONDS", time.Second); got != 90*time.Second {
		t.Fatalf("Seconds: %v", got)
	}
	if got := Float("EU_FLOAT", 1); got != 0.25 {
		t.Fatalf("Float: %v", got)
	}
	if got := List("EU_LIST"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("List: %q", got)
	}
	if got := List("EU_MISSING"); got != nil {
		t.Fatalf("List missing: %q", got)
	}
}
