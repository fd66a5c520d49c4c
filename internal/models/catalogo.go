package models

import "time"

// Departamento y Proveedor se referencian por nombre en las vistas; el nombre
// es único.
type Departamento struct {
	ID        uint   `gorm:"primaryKey"`
	Nombre    string `gorm:"size:100;not null;unique"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Usuarios []Usuario
}

type Proveedor struct {
	ID        uint   `gorm:"primaryKey"`
	Nombre    string `gorm:"size:100;not null;unique"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
