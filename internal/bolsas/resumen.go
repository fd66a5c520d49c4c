// Package bolsas calcula el resumen anual de gasto de cada departamento
// contra sus bolsas de presupuesto e inversión.
package bolsas

import (
	"github.com/shopspring/decimal"

	"wasabi-backend/internal/models"
	"wasabi-backend/internal/ordenes"
)

// Color del indicador de bolsa restante.
type Color string

const (
	ColorGris     Color = "gris"
	ColorRojo     Color = "rojo"
	ColorAmarillo Color = "amarillo"
	ColorVerde    Color = "verde"
)

var (
	umbralRojo  = decimal.NewFromInt(25)
	umbralVerde = decimal.NewFromInt(50)
	cien        = decimal.NewFromInt(100)
)

// Linea es el estado de una bolsa: lo asignado, lo gastado en el año y lo
// que queda, con el porcentaje restante y su color.
type Linea struct {
	Total      decimal.Decimal `json:"total"`
	Gastado    decimal.Decimal `json:"gastado"`
	Restante   decimal.Decimal `json:"restante"`
	Porcentaje decimal.Decimal `json:"porcentaje"`
	Color      Color           `json:"color"`
}

type Resumen struct {
	Anio        int   `json:"año"`
	Presupuesto Linea `json:"presupuesto"`
	Inversion   Linea `json:"inversion"`
}

// Indicador clasifica el restante frente al total. Sin bolsa asignada no hay
// nada que señalar (gris); por debajo del 25% restante es rojo, por debajo
// del 50% amarillo y a partir del 50% verde.
func Indicador(restante, total decimal.Decimal) Color {
	if total.LessThanOrEqual(decimal.Zero) {
		return ColorGris
	}
	pct := restante.Div(total).Mul(cien)
	switch {
	case pct.LessThan(umbralRojo):
		return ColorRojo
	case pct.LessThan(umbralVerde):
		return ColorAmarillo
	default:
		return ColorVerde
	}
}

// Calcular cruza las bolsas del año con las órdenes del departamento. Las
// órdenes con número de inversión consumen la bolsa de inversión; el resto,
// la de presupuesto. Cuenta toda orden del año, sea cual sea su estado.
func Calcular(bolsas []models.Bolsa, vistas []ordenes.OrdenVista, anio int) Resumen {
	r := Resumen{Anio: anio}

	for _, b := range bolsas {
		if b.Anio != anio {
			continue
		}
		switch b.Tipo {
		case models.TipoPresupuesto:
			r.Presupuesto.Total = r.Presupuesto.Total.Add(b.Cantidad)
		case models.TipoInversion:
			r.Inversion.Total = r.Inversion.Total.Add(b.Cantidad)
		}
	}

	for _, v := range vistas {
		if v.Fecha.Year() != anio {
			continue
		}
		if v.NumInversion != nil {
			r.Inversion.Gastado = r.Inversion.Gastado.Add(v.Importe)
		} else {
			r.Presupuesto.Gastado = r.Presupuesto.Gastado.Add(v.Importe)
		}
	}

	cerrar(&r.Presupuesto)
	cerrar(&r.Inversion)
	return r
}

func cerrar(l *Linea) {
	l.Restante = l.Total.Sub(l.Gastado)
	if l.Total.GreaterThan(decimal.Zero) {
		l.Porcentaje = l.Restante.Div(l.Total).Mul(cien).Round(2)
	}
	l.Color = Indicador(l.Restante, l.Total)
}

// ContarOrdenes cuenta las órdenes del año separadas por bolsa, para el aviso
// de bolsas con órdenes ya registradas.
func ContarOrdenes(vistas []ordenes.OrdenVista, anio int) (presupuesto, inversion int) {
	for _, v := range vistas {
		if v.Fecha.Year() != anio {
			continue
		}
		if v.NumInversion != nil {
			inversion++
		} else {
			presupuesto++
		}
	}
	return presupuesto, inversion
}

var (
	bolsaMinima = decimal.Zero
	bolsaMaxima = decimal.NewFromInt(200000)
)

// ValidarCantidades comprueba los límites de ambas bolsas y que al menos una
// tenga importe.
func ValidarCantidades(presupuesto, inversion decimal.Decimal) error {
	if presupuesto.LessThan(bolsaMinima) || presupuesto.GreaterThan(bolsaMaxima) {
		return errCantidadFueraDeRango
	}
	if inversion.LessThan(bolsaMinima) || inversion.GreaterThan(bolsaMaxima) {
		return errCantidadFueraDeRango
	}
	if presupuesto.IsZero() && inversion.IsZero() {
		return errSinCantidad
	}
	return nil
}
