package formato

import (
	"testing"
	"time"
)

func TestFormatearInventariable(t *testing.T) {
	cases := []struct {
		in       any
		expected string
	}{
		{true, "Sí"},
		{false, "No"},
		{1, "Sí"},
		{0, "No"},
		{int64(1), "Sí"},
		{"1", "Sí"},
		{"0", "No"},
		{"x", "-"},
		{nil, "-"},
		{2, "-"},
	}
	for _, tc := range cases {
		if got := FormatearInventariable(tc.in); got != tc.expected {
			t.Fatalf("FormatearInventariable(%v) = %q, esperado %q", tc.in, got, tc.expected)
		}
	}
}

func TestFormatearFecha(t *testing.T) {
	if got := FormatearFecha(time.Time{}); got != "-" {
		t.Fatalf("fecha vacía: %q", got)
	}
	f := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	if got := FormatearFecha(f); got != "09/03/2025" {
		t.Fatalf("FormatearFecha = %q", got)
	}
	if got := FechaParaInput(f); got != "2025-03-09" {
		t.Fatalf("FechaParaInput = %q", got)
	}
	if got := FechaParaInput(time.Time{}); got != "" {
		t.Fatalf("FechaParaInput con fecha vacía = %q", got)
	}
}

func TestPartesFecha(t *testing.T) {
	mes, anio := PartesFecha(time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC))
	if mes != "11" || anio != "2025" {
		t.Fatalf("PartesFecha = %q/%q", mes, anio)
	}
	mes, anio = PartesFecha(time.Time{})
	if mes != "" || anio != "" {
		t.Fatalf("PartesFecha con fecha vacía = %q/%q", mes, anio)
	}
}

func TestParsearImporte(t *testing.T) {
	cases := []struct {
		in       string
		expected string
		wantErr  bool
	}{
		{"1234.56", "1234.56", false},
		{"1234,56", "1234.56", false},
		{"1.234,56", "1234.56", false},
		{"200000", "200000", false},
		{"", "0", false},
		{"abc", "", true},
		{"12,34,56", "", true},
	}
	for _, tc := range cases {
		d, err := ParsearImporte(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParsearImporte(%q): se esperaba error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParsearImporte(%q) error: %v", tc.in, err)
		}
		if d.String() != tc.expected {
			t.Fatalf("ParsearImporte(%q) = %s, esperado %s", tc.in, d.String(), tc.expected)
		}
	}
}
