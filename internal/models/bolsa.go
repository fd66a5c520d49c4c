package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TipoBolsa string

const (
	TipoPresupuesto TipoBolsa = "presupuesto"
	TipoInversion   TipoBolsa = "inversion"
)

// Bolsa anual de un departamento. Como máximo una por (departamento, año,
// tipo); crear una segunda es una actualización.
type Bolsa struct {
	ID             uint      `gorm:"primaryKey"`
	DepartamentoID uint      `gorm:"not null;uniqueIndex:idx_bolsa_dep_anio_tipo"`
	Departamento   Departamento
	Anio           int       `gorm:"not null;uniqueIndex:idx_bolsa_dep_anio_tipo"`
	Tipo           TipoBolsa `gorm:"size:20;not null;uniqueIndex:idx_bolsa_dep_anio_tipo"`
	Cantidad       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
