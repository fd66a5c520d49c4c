package ordenes

import "testing"

func orden(num, departamento string) OrdenVista {
	return OrdenVista{NumOrden: num, Departamento: departamento}
}

func TestSiguienteSecuencia(t *testing.T) {
	cases := []struct {
		nombre   string
		codigo   string
		ordenes  []OrdenVista
		expected int
	}{
		{"sin ordenes previas", "COM", nil, 1},
		{"otro departamento", "COM", []OrdenVista{orden("INF/004/25/0", "Informática")}, 1},
		{"incrementa el maximo", "COM", []OrdenVista{
			orden("COM/001/25/0", "Compras"),
			orden("COM/007/24/1", "Compras"),
			orden("COM/003/25/0", "Compras"),
		}, 8},
		{"segmento no numerico ignorado", "COM", []OrdenVista{
			orden("COM/abc/25/0", "Compras"),
			orden("COM/002/25/0", "Compras"),
		}, 3},
		{"codigo sin segmentos no cuenta", "COM", []OrdenVista{orden("COM", "Compras")}, 1},
	}
	for _, tc := range cases {
		if got := SiguienteSecuencia(tc.codigo, tc.ordenes); got != tc.expected {
			t.Fatalf("%s: SiguienteSecuencia = %d, esperado %d", tc.nombre, got, tc.expected)
		}
	}
}

func TestGenerarNumeroOrden(t *testing.T) {
	// Primera orden de Compras en 2025, no inventariable
	got := GenerarNumeroOrden("Compras", false, 2025, nil)
	if got != "COM/001/25/0" {
		t.Fatalf("primera orden = %q", got)
	}

	// La segunda incrementa la secuencia
	previas := []OrdenVista{orden("COM/001/25/0", "Compras")}
	got = GenerarNumeroOrden("Compras", false, 2025, previas)
	if got != "COM/002/25/0" {
		t.Fatalf("segunda orden = %q", got)
	}

	// Inventariable cambia el flag final
	got = GenerarNumeroOrden("Compras", true, 2025, previas)
	if got != "COM/002/25/1" {
		t.Fatalf("orden inventariable = %q", got)
	}

	// Sin departamento no hay código
	if got = GenerarNumeroOrden("", false, 2025, nil); got != "" {
		t.Fatalf("sin departamento = %q", got)
	}

	// El código usa las 3 primeras letras en mayúsculas
	got = GenerarNumeroOrden("informática", false, 2026, nil)
	if got != "INF/001/26/0" {
		t.Fatalf("codigo de departamento = %q", got)
	}

	// El segmento AA es el año del alta: las órdenes previas de otros años
	// no lo arrastran, solo avanzan la secuencia
	previas = []OrdenVista{orden("COM/004/25/0", "Compras")}
	got = GenerarNumeroOrden("Compras", false, 2026, previas)
	if got != "COM/005/26/0" {
		t.Fatalf("orden de un año nuevo = %q, se esperaba COM/005/26/0", got)
	}
}

func TestGenerarNumeroInversion(t *testing.T) {
	// Departamento 7 sin inversiones previas -> 7000001
	if got := GenerarNumeroInversion(7, "Mantenimiento", nil); got != 7000001 {
		t.Fatalf("primera inversion = %d", got)
	}

	inv := int64(7000001)
	previas := []OrdenVista{
		{Departamento: "Mantenimiento", NumInversion: &inv},
		{Departamento: "Mantenimiento"},           // sin inversión, no cuenta
		{Departamento: "Compras", NumInversion: &inv}, // otro departamento
	}
	if got := GenerarNumeroInversion(7, "Mantenimiento", previas); got != 7000002 {
		t.Fatalf("segunda inversion = %d", got)
	}
}
