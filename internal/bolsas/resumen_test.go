package bolsas

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"wasabi-backend/internal/models"
	"wasabi-backend/internal/ordenes"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestIndicador(t *testing.T) {
	casos := []struct {
		nombre   string
		restante string
		total    string
		esperado Color
	}{
		{"sin bolsa", "0", "0", ColorGris},
		{"total negativo", "100", "-50", ColorGris},
		{"agotada", "0", "1000", ColorRojo},
		{"por debajo del 25", "249.99", "1000", ColorRojo},
		{"justo 25 es amarillo", "250", "1000", ColorAmarillo},
		{"por debajo del 50", "499.99", "1000", ColorAmarillo},
		{"justo 50 es verde", "500", "1000", ColorVerde},
		{"holgada", "900", "1000", ColorVerde},
		{"sobregastada", "-100", "1000", ColorRojo},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			got := Indicador(dec(c.restante), dec(c.total))
			if got != c.esperado {
				t.Fatalf("Indicador(%s, %s) = %s, se esperaba %s", c.restante, c.total, got, c.esperado)
			}
		})
	}
}

func fecha(anio int, mes time.Month, dia int) time.Time {
	return time.Date(anio, mes, dia, 0, 0, 0, 0, time.UTC)
}

func TestCalcular(t *testing.T) {
	inv := int64(3000001)
	bolsas := []models.Bolsa{
		{DepartamentoID: 3, Anio: 2025, Tipo: models.TipoPresupuesto, Cantidad: dec("10000")},
		{DepartamentoID: 3, Anio: 2025, Tipo: models.TipoInversion, Cantidad: dec("5000")},
		{DepartamentoID: 3, Anio: 2024, Tipo: models.TipoPresupuesto, Cantidad: dec("8000")},
	}
	vistas := []ordenes.OrdenVista{
		{Importe: dec("1500"), Fecha: fecha(2025, time.February, 10), Estado: string(models.EstadoConfirmada)},
		{Importe: dec("2500"), Fecha: fecha(2025, time.June, 3), Estado: string(models.EstadoAnulada)},
		{Importe: dec("999"), Fecha: fecha(2024, time.December, 20), Estado: string(models.EstadoConfirmada)},
		{Importe: dec("1200"), Fecha: fecha(2025, time.April, 15), Estado: string(models.EstadoConfirmada), NumInversion: &inv},
	}

	r := Calcular(bolsas, vistas, 2025)

	if !r.Presupuesto.Total.Equal(dec("10000")) {
		t.Fatalf("total presupuesto = %s, se esperaba 10000", r.Presupuesto.Total)
	}
	if !r.Presupuesto.Gastado.Equal(dec("4000")) {
		t.Fatalf("gastado presupuesto = %s, se esperaba 4000 (las anuladas también cuentan; otros años no)", r.Presupuesto.Gastado)
	}
	if !r.Presupuesto.Restante.Equal(dec("6000")) {
		t.Fatalf("restante presupuesto = %s, se esperaba 6000", r.Presupuesto.Restante)
	}
	if r.Presupuesto.Color != ColorVerde {
		t.Fatalf("color presupuesto = %s, se esperaba verde", r.Presupuesto.Color)
	}

	if !r.Inversion.Gastado.Equal(dec("1200")) {
		t.Fatalf("gastado inversión = %s, se esperaba 1200", r.Inversion.Gastado)
	}
	if !r.Inversion.Restante.Equal(dec("3800")) {
		t.Fatalf("restante inversión = %s, se esperaba 3800", r.Inversion.Restante)
	}
	if r.Inversion.Color != ColorVerde {
		t.Fatalf("color inversión = %s, se esperaba verde", r.Inversion.Color)
	}
}

func TestContarOrdenes(t *testing.T) {
	inv := int64(3000001)
	vistas := []ordenes.OrdenVista{
		{Importe: dec("1500"), Fecha: fecha(2025, time.February, 10), Estado: string(models.EstadoConfirmada)},
		{Importe: dec("2500"), Fecha: fecha(2025, time.June, 3), Estado: string(models.EstadoAnulada)},
		{Importe: dec("999"), Fecha: fecha(2024, time.December, 20), Estado: string(models.EstadoConfirmada)},
		{Importe: dec("1200"), Fecha: fecha(2025, time.April, 15), Estado: string(models.EstadoConfirmada), NumInversion: &inv},
	}

	// El aviso lleva cuántas órdenes bloquean, no cuánto suman
	presupuesto, inversion := ContarOrdenes(vistas, 2025)
	if presupuesto != 2 {
		t.Fatalf("órdenes de presupuesto = %d, se esperaban 2 (las anuladas también cuentan)", presupuesto)
	}
	if inversion != 1 {
		t.Fatalf("órdenes de inversión = %d, se esperaba 1", inversion)
	}

	presupuesto, inversion = ContarOrdenes(vistas, 2023)
	if presupuesto != 0 || inversion != 0 {
		t.Fatalf("un año sin órdenes debe contar 0/0, fue %d/%d", presupuesto, inversion)
	}
}

func TestCalcularSinBolsa(t *testing.T) {
	vistas := []ordenes.OrdenVista{
		{Importe: dec("300"), Fecha: fecha(2025, time.May, 5), Estado: string(models.EstadoEnProceso)},
	}
	r := Calcular(nil, vistas, 2025)
	if r.Presupuesto.Color != ColorGris {
		t.Fatalf("sin bolsa el color debe ser gris, fue %s", r.Presupuesto.Color)
	}
	if !r.Presupuesto.Restante.Equal(dec("-300")) {
		t.Fatalf("restante = %s, se esperaba -300", r.Presupuesto.Restante)
	}
}

func TestValidarCantidades(t *testing.T) {
	casos := []struct {
		nombre      string
		presupuesto string
		inversion   string
		quiereError bool
	}{
		{"ambas válidas", "10000", "5000", false},
		{"solo presupuesto", "10000", "0", false},
		{"solo inversión", "0", "200000", false},
		{"ambas a cero", "0", "0", true},
		{"negativa", "-1", "100", true},
		{"por encima del tope", "200000.01", "0", true},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			err := ValidarCantidades(dec(c.presupuesto), dec(c.inversion))
			if (err != nil) != c.quiereError {
				t.Fatalf("ValidarCantidades(%s, %s) error = %v, quiereError %v", c.presupuesto, c.inversion, err, c.quiereError)
			}
		})
	}
}
