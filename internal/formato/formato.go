// Package formato reúne las utilidades de presentación y normalización de
// valores crudos (fechas, inventariable, importes) compartidas por las vistas.
package formato

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatearInventariable acepta los valores históricos 0/1 además de
// booleanos; cualquier otra cosa se muestra como "-".
func FormatearInventariable(v any) string {
	switch x := v.(type) {
	case bool:
		if x {
			return "Sí"
		}
		return "No"
	case int:
		return formatearInventariableNum(int64(x))
	case int64:
		return formatearInventariableNum(x)
	case float64:
		return formatearInventariableNum(int64(x))
	case string:
		if x == "1" {
			return "Sí"
		}
		if x == "0" {
			return "No"
		}
	}
	return "-"
}

func formatearInventariableNum(n int64) string {
	switch n {
	case 1:
		return "Sí"
	case 0:
		return "No"
	}
	return "-"
}

// FormatearFecha devuelve dd/mm/aaaa; una fecha ausente se muestra como "-".
func FormatearFecha(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006")
}

// FechaParaInput devuelve el formato que esperan los campos de fecha de los
// formularios (aaaa-mm-dd), o cadena vacía si no hay fecha.
func FechaParaInput(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// PartesFecha extrae mes ("1".."12") y año ("AAAA") para el facetado de
// fechas del filtro; una fecha ausente produce cadenas vacías.
func PartesFecha(t time.Time) (mes, anio string) {
	if t.IsZero() {
		return "", ""
	}
	return fmt.Sprintf("%d", int(t.Month())), fmt.Sprintf("%d", t.Year())
}

func ParsearFecha(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// ParsearImporte normaliza la entrada decimal con coma ("1.234,56" -> 1234.56)
// antes de convertirla.
func ParsearImporte(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("importe no válido: %q", s)
	}
	return d, nil
}
