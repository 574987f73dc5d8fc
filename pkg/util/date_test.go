package util

import (
	"testing"
	"time"
)

func TestParseArrivalDate(t *testing.T) {
	got, ok := ParseArrivalDate("15/08/2025")
	if !ok {
		t.Fatalf("expected ok")
	}
	want := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseArrivalDateInvalid(t *testing.T) {
	if _, ok := ParseArrivalDate("2025-08-15"); ok {
		t.Fatalf("expected not ok for ISO date")
	}
	if _, ok := ParseArrivalDate(""); ok {
		t.Fatalf("expected not ok for empty")
	}
}

func TestParseTimeRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeDefault(t *testing.T) {
	def := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
	got := ParseTimeDefault("", def)
	if !got.Equal(def) {
		t.Fatalf("expected default")
	}
}

func TestDayKey(t *testing.T) {
	in := time.Date(2025, 8, 15, 18, 30, 0, 0, time.UTC)
	got := DayKey(in)
	want := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("unexpected day key %v", got)
	}
}
