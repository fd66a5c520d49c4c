package ordenes

import (
	"time"

	"wasabi-backend/internal/models"

	"github.com/shopspring/decimal"
)

// OrdenVista es el registro denormalizado sobre el que trabajan el filtro, la
// numeración y la exportación: departamento y proveedor por nombre.
// Denormalizar es el único punto donde se resuelven los nombres; un rediseño
// por ids solo tocaría esta función.
type OrdenVista struct {
	ID            uint
	NumOrden      string
	Descripcion   string
	Importe       decimal.Decimal
	Fecha         time.Time
	Inventariable bool
	Cantidad      int
	Departamento  string
	Proveedor     string
	NumInversion  *int64
	TieneFactura  bool
	NumeroFactura string
	Estado        string
}

// Denormalizar espera órdenes con Departamento y Proveedor precargados.
func Denormalizar(ordenes []models.Orden) []OrdenVista {
	vistas := make([]OrdenVista, 0, len(ordenes))
	for _, o := range ordenes {
		v := OrdenVista{
			ID:            o.ID,
			NumOrden:      o.NumOrden,
			Descripcion:   o.Descripcion,
			Importe:       o.Importe,
			Fecha:         o.Fecha,
			Inventariable: o.Inventariable,
			Cantidad:      o.Cantidad,
			Departamento:  o.Departamento.Nombre,
			Proveedor:     o.Proveedor.Nombre,
			NumInversion:  o.NumInversion,
			TieneFactura:  o.TieneFactura,
			Estado:        string(o.Estado),
		}
		if o.NumeroFactura != nil {
			v.NumeroFactura = *o.NumeroFactura
		}
		vistas = append(vistas, v)
	}
	return vistas
}
