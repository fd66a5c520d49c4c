package export

import (
	"testing"
	"time"
)

func TestNombreArchivo(t *testing.T) {
	hoy := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

	casos := []struct {
		nombre       string
		prefijo      string
		departamento string
		esperado     string
	}{
		{"con departamento", "ordenes", "Compras", "ordenes_compras_20250314.xlsx"},
		{"departamento con espacios", "ordenes", "Recursos Humanos", "ordenes_recursos_humanos_20250314.xlsx"},
		{"sin departamento", "inventario", "", "inventario_20250314.xlsx"},
		{"solo simbolos", "ordenes", "***", "ordenes_20250314.xlsx"},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			got := NombreArchivo(c.prefijo, c.departamento, hoy)
			if got != c.esperado {
				t.Fatalf("NombreArchivo(%q, %q) = %q, se esperaba %q", c.prefijo, c.departamento, got, c.esperado)
			}
		})
	}
}
