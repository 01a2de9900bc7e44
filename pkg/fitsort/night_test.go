package fitsort

import (
	"testing"
	"time"
)

func TestNightOf(t *testing.T) {
	tests := []struct {
		date  time.Time
		clock int
		want  string
	}{
		{time.Date(2025, 7, 21, 0, 0, 0, 0, time.UTC), 0, "2025-07-21"},
		{time.Date(2025, 7, 21, 1, 30, 0, 0, time.UTC), 13000, "2025-07-21"},
		{time.Date(2025, 7, 21, 15, 59, 59, 0, time.UTC), 155959, "2025-07-21"},
		{time.Date(2025, 7, 21, 16, 0, 0, 0, time.UTC), 160000, "2025-07-22"},
		{time.Date(2025, 7, 21, 23, 59, 59, 0, time.UTC), 235959, "2025-07-22"},
		{time.Date(2025, 7, 31, 20, 0, 0, 0, time.UTC), 200000, "2025-08-01"},
		{time.Date(2024, 12, 31, 18, 0, 0, 0, time.UTC), 180000, "2025-01-01"},
	}

	for _, tc := range tests {
		f := &Frame{Captured: tc.date, Clock: tc.clock}
		if got := NightDate(NightOf(f, DefaultNightCutoff)); got != tc.want {
			t.Errorf("NightOf(%s, %06d) = %s, want %s", tc.date.Format("20060102"), tc.clock, got, tc.want)
		}
	}
}

func TestNightOfCustomCutoff(t *testing.T) {
	f := &Frame{Captured: time.Date(2025, 7, 21, 12, 0, 0, 0, time.UTC), Clock: 120000}
	if got := NightDate(NightOf(f, 120000)); got != "2025-07-22" {
		t.Errorf("NightOf(cutoff=120000) = %s, want 2025-07-22", got)
	}
	if got := NightDate(NightOf(f, 120001)); got != "2025-07-21" {
		t.Errorf("NightOf(cutoff=120001) = %s, want 2025-07-21", got)
	}
}
