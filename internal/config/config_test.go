package config

import (
	"testing"
	"time"
)

func TestGetters(t *testing.T) {
	t.Setenv("CC_PORT", " 9090 ")
	t.Setenv("CC_BAD_INT", "ten")
	t.Setenv("CC_TTL", "90m")
	t.Setenv("CC_BAD_TTL", "soon")

	if got := Get("CC_PORT", "8080"); got != "9090" {
		t.Errorf("Get = %q, want 9090", got)
	}
	if got := Get("CC_MISSING", "8080"); got != "8080" {
		t.Errorf("Get missing = %q, want 8080", got)
	}
	if got := Int("CC_PORT", 1); got != 9090 {
		t.Errorf("Int = %d, want 9090", got)
	}
	if got := Int("CC_BAD_INT", 7); got != 7 {
		t.Errorf("Int bad = %d, want 7", got)
	}
	if got := Duration("CC_TTL", time.Hour); got != 90*time.Minute {
		t.Errorf("Duration = %s, want 90m", got)
	}
	if got := Duration("CC_BAD_TTL", time.Hour); got != time.Hour {
		t.Errorf("Duration bad = %s, want 1h", got)
	}
}
