package reporter

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatSEK(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "0", want: "0,00"},
		{in: "5", want: "5,00"},
		{in: "999.999", want: "1 000,00"},
		{in: "1234.5", want: "1 234,50"},
		{in: "1234.56", want: "1 234,56"},
		{in: "12500", want: "12 500,00"},
		{in: "1234567.891", want: "1 234 567,89"},
		{in: "-4321.1", want: "-4 321,10"},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got := FormatSEK(decimal.RequireFromString(tc.in))
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestFormatDecimal(t *testing.T) {
	cases := []struct {
		v      float64
		places int
		want   string
	}{
		{v: 7.26, places: 1, want: "7,3"},
		{v: 5.5, places: 1, want: "5,5"},
		{v: 0, places: 1, want: "0,0"},
		{v: 42.333, places: 1, want: "42,3"},
		{v: 90, places: 0, want: "90"},
		{v: -0.01, places: 1, want: "0,0"},
	}

	for _, tc := range cases {
		got := FormatDecimal(tc.v, tc.places)
		if got != tc.want {
			t.Fatalf("FormatDecimal(%v, %d): expected %q, got %q", tc.v, tc.places, tc.want, got)
		}
	}
}

func TestPaddingUsesDisplayWidth(t *testing.T) {
	if got := padRight("Malmö", 8); got != "Malmö   " {
		t.Fatalf("unexpected padRight result %q", got)
	}
	if got := padLeft("12", 5); got != "   12" {
		t.Fatalf("unexpected padLeft result %q", got)
	}
	if got := padRight("toolongvalue", 4); got != "toolongvalue" {
		t.Fatalf("expected long value to be kept whole, got %q", got)
	}
}

func TestJoinOrDash(t *testing.T) {
	cases := []struct {
		in   []string
		want string
	}{
		{in: nil, want: "-"},
		{in: []string{"36"}, want: "36"},
		{in: []string{"36", "37"}, want: "36, 37"},
	}

	for _, tc := range cases {
		if got := joinOrDash(tc.in); got != tc.want {
			t.Fatalf("joinOrDash(%v): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
