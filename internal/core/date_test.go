package core

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "2026-06-25"},
		{name: "leap day", input: "2024-02-29"},
		{name: "not a leap day", input: "2025-02-29", wantErr: true},
		{name: "wrong layout", input: "25-06-2026", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDate(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDate) {
					t.Fatalf("ParseDate(%q) error = %v, want ErrInvalidDate", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.input, err)
			}
			if d.String() != tt.input {
				t.Errorf("round trip = %q, want %q", d.String(), tt.input)
			}
		})
	}
}

func TestDateOf_LocalCalendarDay(t *testing.T) {
	// 23:30 local on June 25 in a UTC+7 zone is already June 26 in UTC
	// terms only under conversion; the civil day must stay June 25.
	loc := time.FixedZone("WIB", 7*3600)
	instant := time.Date(2026, time.June, 25, 23, 30, 0, 0, loc)
	d := DateOf(instant)
	if d.String() != "2026-06-25" {
		t.Errorf("DateOf = %s, want 2026-06-25", d)
	}

	// Same instant shortly after local midnight.
	early := time.Date(2026, time.June, 25, 0, 10, 0, 0, loc)
	if got := DateOf(early); got.String() != "2026-06-25" {
		t.Errorf("DateOf just after midnight = %s, want 2026-06-25", got)
	}
}

func TestDateComparisonsAndArithmetic(t *testing.T) {
	a := NewDate(2026, time.June, 25)
	b := NewDate(2026, time.June, 26)

	if !a.Before(b) || b.Before(a) {
		t.Error("Before ordering wrong")
	}
	if !b.After(a) {
		t.Error("After ordering wrong")
	}
	if !a.Equal(NewDate(2026, time.June, 25)) {
		t.Error("Equal should hold for same components")
	}
	if got := a.AddDays(6); !got.Equal(NewDate(2026, time.July, 1)) {
		t.Errorf("AddDays(6) = %s, want 2026-07-01", got)
	}
	if got := a.AddDays(-25); !got.Equal(NewDate(2026, time.May, 31)) {
		t.Errorf("AddDays(-25) = %s, want 2026-05-31", got)
	}
	if got := a.DaysUntil(b); got != 1 {
		t.Errorf("DaysUntil = %d, want 1", got)
	}
	if got := b.DaysUntil(a); got != -1 {
		t.Errorf("DaysUntil reversed = %d, want -1", got)
	}
	if got := a.MonthKey(); got != "2026-06" {
		t.Errorf("MonthKey = %q, want 2026-06", got)
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2026, time.June, 25)
	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `"2026-06-25"` {
		t.Fatalf("marshal = %s, want \"2026-06-25\"", raw)
	}
	var back Date
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("round trip = %s, want %s", back, d)
	}

	var bad Date
	if err := json.Unmarshal([]byte(`"garbage"`), &bad); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("unmarshal garbage error = %v, want ErrInvalidDate", err)
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2026, time.January, 31},
		{2026, time.February, 28},
		{2024, time.February, 29},
		{2026, time.April, 30},
	}
	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysInMonth(%d, %s) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}
