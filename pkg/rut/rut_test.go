package rut_test

import (
	"errors"
	"testing"

	"github.com/JaimeStill/pacto/pkg/rut"
)

func TestClean(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"12.345.678-5", "123456785"},
		{" 6-k ", "6K"},
		{"abc", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := rut.Clean(tt.in); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"12.345.678-5", true},
		{"123456785", true},
		{"11.111.111-1", true},
		{"6-K", true},
		{"6-k", true},
		{"28-0", true},
		{"12.345.678-4", false},
		{"12.345.678-K", false},
		{"1K-5", false},
		{"5", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := rut.Validate(tt.in); got != tt.want {
			t.Errorf("Validate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCheck(t *testing.T) {
	if err := rut.Check("12.345.678-5"); err != nil {
		t.Errorf("Check valid: %v", err)
	}
	if err := rut.Check("12.345.678-0"); !errors.Is(err, rut.ErrInvalid) {
		t.Errorf("Check invalid = %v, want ErrInvalid", err)
	}
}

func TestCheckDigit(t *testing.T) {
	tests := []struct {
		body string
		want string
		ok   bool
	}{
		{"12345678", "5", true},
		{"6", "K", true},
		{"28", "0", true},
		{"", "", false},
		{"12a", "", false},
	}

	for _, tt := range tests {
		got, ok := rut.CheckDigit(tt.body)
		if got != tt.want || ok != tt.ok {
			t.Errorf("CheckDigit(%q) = %q, %v; want %q, %v", tt.body, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"123456785", "12.345.678-5"},
		{"12345678-5", "12.345.678-5"},
		{"111111111", "11.111.111-1"},
		{"9876543k", "9.876.543-K"},
		{"6k", "6-K"},
		{"1234", "123-4"},
		{"7", "7"},
	}

	for _, tt := range tests {
		if got := rut.Format(tt.in); got != tt.want {
			t.Errorf("Format(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "12.345.678-5", want: "12.345.678-5"},
		{in: " 123456785 ", want: "12.345.678-5"},
		{in: "1.000.005-k", want: "1.000.005-K"},
		{in: "7.654.321-6", want: "7.654.321-6"},
		{in: "12.345.678-4", wantErr: true},
		{in: "0-0", wantErr: true},
		{in: "6-K", wantErr: true},
		{in: "RUT: 1-9", wantErr: true},
		{in: "x12y345z678w-5", wantErr: true},
		{in: "123.456.789-2", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := rut.Parse(tt.in)
		if tt.wantErr {
			if !errors.Is(err, rut.ErrInvalid) {
				t.Errorf("Parse(%q) err = %v, want ErrInvalid", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
