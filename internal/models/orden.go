package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type EstadoOrden string

const (
	EstadoEnProceso  EstadoOrden = "En proceso"
	EstadoAnulada    EstadoOrden = "Anulada"
	EstadoConfirmada EstadoOrden = "Confirmada"
)

// Orden de compra. Num_orden tiene el formato DEP/SEQ/AA/F (ver paquete
// ordenes); Num_inversion presente significa gasto de inversión, ausente
// gasto de presupuesto.
type Orden struct {
	ID             uint            `gorm:"primaryKey"`
	NumOrden       string          `gorm:"size:30;index;not null"`
	Descripcion    string          `gorm:"size:255;not null"`
	Importe        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Fecha          time.Time       `gorm:"index;not null"`
	Inventariable  bool            `gorm:"not null;default:false"`
	Cantidad       int             `gorm:"not null"`
	DepartamentoID uint            `gorm:"index;not null"`
	Departamento   Departamento
	ProveedorID    uint `gorm:"index;not null"`
	Proveedor      Proveedor
	UsuarioID      uint   `gorm:"index"`
	NumInversion   *int64 `gorm:"index"`
	TieneFactura   bool   `gorm:"not null;default:false"`
	NumeroFactura  *string `gorm:"size:50"`
	Estado         EstadoOrden `gorm:"size:20;not null;default:'En proceso'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
