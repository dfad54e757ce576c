package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"0", 0, true},
		{".5", 50, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestCentsOf(t *testing.T) {
	cases := []struct {
		in  float64
		out int64
	}{
		{0, 0},
		{1, 100},
		{12.34, 1234},
		{0.005, 1},
		{-0.005, -1},
		{-12.34, -1234},
	}
	for _, tc := range cases {
		if got := CentsOf(tc.in); got != tc.out {
			t.Errorf("CentsOf(%v) = %d, want %d", tc.in, got, tc.out)
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{123450, "1234.50"},
		{5, "0.05"},
		{0, "0.00"},
		{-250, "-2.50"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Errorf("Money{%d}.String() = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := Money{Cents: 200000}
	b := Money{Cents: 150000}
	if got := a.Sub(b).Cents; got != 50000 {
		t.Errorf("Sub = %d, want 50000", got)
	}
	if got := b.Sub(a).Cents; got != -50000 {
		t.Errorf("Sub negative = %d, want -50000", got)
	}
	if got := a.Add(b).Cents; got != 350000 {
		t.Errorf("Add = %d, want 350000", got)
	}
}
