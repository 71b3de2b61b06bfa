package logger

import (
	"strings"
	"testing"
)

func TestSanitizeKVs(t *testing.T) {
	if !redactionOn() {
		t.Skip("LOG_REDACTION_ENABLED disables redaction in this environment")
	}
	jwtish := "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxMjM0NTY3ODkwIn0.sig"
	out := sanitizeKVs([]interface{}{
		"email", "ada@school.edu",
		"refresh_token", "abc",
		"student_id", "4a1c",
		"day", "2025-02-01",
		"note", jwtish,
		"dangling",
	})
	if len(out) != 11 {
		t.Fatalf("len: want=11 got=%d (%v)", len(out), out)
	}
	if out[1] != "[REDACTED]" || out[3] != "[REDACTED]" {
		t.Fatalf("email/token must be redacted: %v", out)
	}
	hashed, _ := out[5].(string)
	if !strings.HasPrefix(hashed, "hash:") || hashed == "hash:" || strings.Contains(hashed, "4a1c") {
		t.Fatalf("student_id must be hashed: %v", out[5])
	}
	if hashed != hashValue("4a1c") {
		t.Fatalf("hash must be stable: %v vs %v", hashed, hashValue("4a1c"))
	}
	if out[7] != "2025-02-01" {
		t.Fatalf("plain values pass through: %v", out[7])
	}
	if out[9] != "[REDACTED]" {
		t.Fatalf("jwt-looking values are redacted: %v", out[9])
	}
	if out[10] != "dangling" {
		t.Fatalf("odd trailing key kept: %v", out[10])
	}
}

func TestNopLoggerIsUsable(t *testing.T) {
	l := Nop().With("service", "test")
	l.Info("hello", "user_id", "x")
	l.Sync()
}
