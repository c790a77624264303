package core

import (
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantUnits int64
		wantErr   error
	}{
		{name: "integer rupiah", input: "20000", wantUnits: 2000000},
		{name: "dot separator", input: "12.34", wantUnits: 1234},
		{name: "comma separator", input: "12,34", wantUnits: 1234},
		{name: "half-up rounding", input: "12.345", wantUnits: 1235},
		{name: "rounds down below half", input: "12.344", wantUnits: 1234},
		{name: "interior whitespace", input: " 1 500 ", wantUnits: 150000},
		{name: "zero", input: "0", wantErr: ErrInvalidAmount},
		{name: "negative", input: "-5", wantErr: ErrInvalidAmount},
		{name: "rounds to zero", input: "0.001", wantErr: ErrInvalidAmount},
		{name: "garbage", input: "abc", wantErr: ErrInvalidAmount},
		{name: "empty", input: "", wantErr: ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseAmount(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) unexpected error: %v", tt.input, err)
			}
			if got.Units != tt.wantUnits {
				t.Errorf("ParseAmount(%q) = %d units, want %d", tt.input, got.Units, tt.wantUnits)
			}
		})
	}
}

func TestParseAmount_IsValidationError(t *testing.T) {
	_, err := ParseAmount("not money")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation in chain, got %v", err)
	}
}

func TestMoneyFromFloat(t *testing.T) {
	tests := []struct {
		name      string
		input     float64
		wantUnits int64
		wantErr   bool
	}{
		{name: "whole amount", input: 20000, wantUnits: 2000000},
		{name: "fractional", input: 12.34, wantUnits: 1234},
		{name: "half-up", input: 0.005, wantUnits: 1},
		{name: "zero", input: 0, wantErr: true},
		{name: "negative", input: -1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MoneyFromFloat(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAmount) {
					t.Fatalf("MoneyFromFloat(%v) error = %v, want ErrInvalidAmount", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("MoneyFromFloat(%v) unexpected error: %v", tt.input, err)
			}
			if got.Units != tt.wantUnits {
				t.Errorf("MoneyFromFloat(%v) = %d units, want %d", tt.input, got.Units, tt.wantUnits)
			}
		})
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoney(1500)
	b := NewMoney(700)

	if got := a.Add(b); got.Units != 2200 {
		t.Errorf("Add = %d, want 2200", got.Units)
	}
	if got := a.Sub(b); got.Units != 800 {
		t.Errorf("Sub = %d, want 800", got.Units)
	}
	if got := b.Sub(a); got.Units != -800 {
		t.Errorf("Sub = %d, want -800", got.Units)
	}
	if got := a.Neg(); got.Units != -1500 {
		t.Errorf("Neg = %d, want -1500", got.Units)
	}
	if !a.Equal(NewMoney(1500)) {
		t.Error("Equal should hold for same units")
	}
	if !NewMoney(0).IsZero() {
		t.Error("IsZero should hold for zero units")
	}
}

func TestMoneyString(t *testing.T) {
	tests := []struct {
		units int64
		want  string
	}{
		{2000000, "20000.00"},
		{1234, "12.34"},
		{5, "0.05"},
		{-150, "-1.50"},
	}
	for _, tt := range tests {
		if got := NewMoney(tt.units).String(); got != tt.want {
			t.Errorf("NewMoney(%d).String() = %q, want %q", tt.units, got, tt.want)
		}
	}
}
