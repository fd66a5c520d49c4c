// Package audit registra cada mutación de órdenes y bolsas con su estado
// anterior y posterior, y permite deshacerla.
package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"wasabi-backend/internal/database"
	"wasabi-backend/internal/models"
)

type LogOptions struct {
	DepartamentoID *uint
	UsuarioID      uint
	UsuarioNombre  string
	EntityType     string
	EntityID       uint
	Action         models.AuditAction
	Description    string
	Before         any
	After          any
}

func WriteLog(opts LogOptions) error {
	// jsonb no admite cadena vacía; sin datos se guarda el literal null
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	log := models.AuditLog{
		DepartamentoID: opts.DepartamentoID,
		UsuarioID:      opts.UsuarioID,
		UsuarioNombre:  opts.UsuarioNombre,
		EntityType:     opts.EntityType,
		EntityID:       opts.EntityID,
		Action:         opts.Action,
		Description:    opts.Description,
		BeforeData:     beforeStr,
		AfterData:      afterStr,
		Undone:         false,
		IsUndone:       false,
	}

	if err := database.DB.Create(&log).Error; err != nil {
		return fmt.Errorf("no se pudo guardar el registro de auditoría: %w", err)
	}

	return nil
}

// UndoLog deshace la operación registrada en el log indicado y deja
// constancia de la reversión en un log nuevo.
func UndoLog(logID uint, usuarioID uint, usuarioNombre string) error {
	var log models.AuditLog
	if err := database.DB.First(&log, "id = ?", logID).Error; err != nil {
		return fmt.Errorf("registro no encontrado: %w", err)
	}

	if log.IsUndone {
		return fmt.Errorf("esta operación ya fue deshecha")
	}

	switch log.Action {
	case models.AuditActionCreate:
		if err := deleteEntity(log.EntityType, log.EntityID); err != nil {
			return fmt.Errorf("no se pudo eliminar la entidad: %w", err)
		}

	case models.AuditActionUpdate:
		if err := restoreEntity(log.EntityType, log.EntityID, log.BeforeData); err != nil {
			return fmt.Errorf("no se pudo restaurar la entidad: %w", err)
		}

	case models.AuditActionDelete:
		if err := recreateEntity(log.EntityType, log.BeforeData); err != nil {
			return fmt.Errorf("no se pudo recrear la entidad: %w", err)
		}

	default:
		return fmt.Errorf("este tipo de operación no se puede deshacer")
	}

	now := time.Now()
	log.IsUndone = true
	log.UndoneBy = &usuarioID
	log.UndoneAt = &now

	if err := database.DB.Save(&log).Error; err != nil {
		return fmt.Errorf("no se pudo actualizar el registro: %w", err)
	}

	undoLog := models.AuditLog{
		DepartamentoID: log.DepartamentoID,
		UsuarioID:      usuarioID,
		UsuarioNombre:  usuarioNombre,
		EntityType:     log.EntityType,
		EntityID:       log.EntityID,
		Action:         models.AuditActionUndo,
		Description:    fmt.Sprintf("Deshecho: %s", log.Description),
		BeforeData:     log.AfterData,
		AfterData:      log.BeforeData,
		Undone:         true,
		IsUndone:       false,
	}

	if err := database.DB.Create(&undoLog).Error; err != nil {
		return fmt.Errorf("no se pudo guardar el registro de reversión: %w", err)
	}

	return nil
}

func deleteEntity(entityType string, entityID uint) error {
	switch entityType {
	case "orden":
		return database.DB.Delete(&models.Orden{}, "id = ?", entityID).Error
	case "bolsa":
		return database.DB.Delete(&models.Bolsa{}, "id = ?", entityID).Error
	default:
		return fmt.Errorf("tipo de entidad desconocido: %s", entityType)
	}
}

func recreateEntity(entityType string, dataJSON string) error {
	switch entityType {
	case "orden":
		var orden models.Orden
		if err := json.Unmarshal([]byte(dataJSON), &orden); err != nil {
			return err
		}
		orden.ID = 0
		orden.Departamento = models.Departamento{}
		orden.Proveedor = models.Proveedor{}
		return database.DB.Create(&orden).Error

	case "bolsa":
		var bolsa models.Bolsa
		if err := json.Unmarshal([]byte(dataJSON), &bolsa); err != nil {
			return err
		}
		bolsa.ID = 0
		bolsa.Departamento = models.Departamento{}
		return database.DB.Create(&bolsa).Error

	default:
		return fmt.Errorf("tipo de entidad desconocido: %s", entityType)
	}
}

func restoreEntity(entityType string, entityID uint, dataJSON string) error {
	switch entityType {
	case "orden":
		var orden models.Orden
		if err := json.Unmarshal([]byte(dataJSON), &orden); err != nil {
			return err
		}
		return database.DB.Model(&models.Orden{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"num_orden":       orden.NumOrden,
			"descripcion":     orden.Descripcion,
			"importe":         orden.Importe,
			"fecha":           orden.Fecha,
			"inventariable":   orden.Inventariable,
			"cantidad":        orden.Cantidad,
			"departamento_id": orden.DepartamentoID,
			"proveedor_id":    orden.ProveedorID,
			"num_inversion":   orden.NumInversion,
			"tiene_factura":   orden.TieneFactura,
			"numero_factura":  orden.NumeroFactura,
			"estado":          orden.Estado,
		}).Error

	case "bolsa":
		var bolsa models.Bolsa
		if err := json.Unmarshal([]byte(dataJSON), &bolsa); err != nil {
			return err
		}
		return database.DB.Model(&models.Bolsa{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"departamento_id": bolsa.DepartamentoID,
			"anio":            bolsa.Anio,
			"tipo":            bolsa.Tipo,
			"cantidad":        bolsa.Cantidad,
		}).Error

	default:
		return fmt.Errorf("tipo de entidad desconocido: %s", entityType)
	}
}
