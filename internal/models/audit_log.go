package models

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
	AuditActionUndo   AuditAction = "undo"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// ¿Qué departamento?
	DepartamentoID *uint `json:"departamento_id"`

	// ¿Qué usuario?
	UsuarioID     uint   `json:"usuario_id"`
	UsuarioNombre string `gorm:"size:100" json:"usuario_nombre"` // nombre denormalizado

	// ¿Qué entidad? (ej: "orden", "bolsa")
	EntityType string `gorm:"size:50;index" json:"entity_type"`
	EntityID   uint   `gorm:"index" json:"entity_id"`

	// Tipo de operación: create/update/delete/undo
	Action AuditAction `gorm:"size:20" json:"action"`

	// Resumen corto opcional
	Description string `gorm:"size:255" json:"description"`

	// Estado anterior y posterior (JSON)
	BeforeData string `gorm:"type:jsonb" json:"before_data"`
	AfterData  string `gorm:"type:jsonb" json:"after_data"`

	// ¿Este log es el resultado de un undo?
	Undone bool `json:"undone"`

	// ¿Se ha deshecho este log?
	IsUndone bool `gorm:"default:false" json:"is_undone"`

	UndoneBy *uint      `json:"undone_by"`
	UndoneAt *time.Time `json:"undone_at"`
}
