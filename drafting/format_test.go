package drafting_test

import (
	"math"
	"testing"

	"github.com/JaimeStill/pacto/drafting"
)

func TestNumberToWords(t *testing.T) {
	tests := []struct {
		n    float64
		want string
	}{
		{0, "cero"},
		{1, "uno"},
		{15, "quince"},
		{16, "dieciséis"},
		{20, "veinte"},
		{21, "veinte y uno"},
		{45, "cuarenta y cinco"},
		{99, "noventa y nueve"},
		{100, "cien"},
		{101, "ciento uno"},
		{200, "doscientos"},
		{500, "quinientos"},
		{735, "setecientos treinta y cinco"},
		{999, "novecientos noventa y nueve"},
		{1000, "1000"},
		{500000, "500000"},
		{999_999_999, "999999999"},
		{1_000_000_000, drafting.LargeNumber},
		{5e12, drafting.LargeNumber},
		{math.NaN(), drafting.LargeNumber},
		{-3, "-3"},
		{2.5, "2.5"},
	}

	for _, tt := range tests {
		if got := drafting.NumberToWords(tt.n); got != tt.want {
			t.Errorf("NumberToWords(%v) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"  ", 0},
		{"abc", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"1000000", 1000000},
		{" 42.5 ", 42.5},
		{"-10", -10},
	}

	for _, tt := range tests {
		if got := drafting.ParseAmount(tt.in); got != tt.want {
			t.Errorf("ParseAmount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1.000"},
		{1000000, "1.000.000"},
		{1234567.5, "1.234.567,5"},
		{0.125, "0,125"},
		{10.0004, "10"},
		{-2500, "-2.500"},
		{-0.0001, "0"},
		{math.NaN(), "0"},
	}

	for _, tt := range tests {
		if got := drafting.FormatAmount(tt.in); got != tt.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCurrency(t *testing.T) {
	if got := drafting.FormatCurrency(1200000); got != "$1.200.000" {
		t.Errorf("FormatCurrency = %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		long bool
		want string
	}{
		{"empty", "", true, drafting.InvalidDate},
		{"garbage", "mañana", true, drafting.InvalidDate},
		{"impossible day", "2025-02-30", false, drafting.InvalidDate},
		{"iso long", "2025-05-05", true, "LUNES, 5 DE MAYO DE 2025"},
		{"iso short", "2025-05-05", false, "5 DE MAYO DE 2025"},
		{"chilean dashes", "05-05-2025", false, "5 DE MAYO DE 2025"},
		{"chilean slashes", "05/05/2025", false, "5 DE MAYO DE 2025"},
		{"accented weekday", "2025-01-01", true, "MIÉRCOLES, 1 DE ENERO DE 2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := drafting.FormatDate(tt.in, tt.long, nil); got != tt.want {
				t.Errorf("FormatDate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
