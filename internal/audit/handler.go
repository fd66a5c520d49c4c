package audit

import (
	"fmt"

	"wasabi-backend/internal/auth"
	"wasabi-backend/internal/database"
	"wasabi-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AuditLogResponse struct {
	ID             uint               `json:"id"`
	CreatedAt      string             `json:"created_at"`
	DepartamentoID *uint              `json:"departamento_id"`
	UsuarioID      uint               `json:"usuario_id"`
	UsuarioNombre  string             `json:"usuario_nombre"`
	EntityType     string             `json:"entity_type"`
	EntityID       uint               `json:"entity_id"`
	Action         models.AuditAction `json:"action"`
	Description    string             `json:"description"`
	IsUndone       bool               `json:"is_undone"`
	UndoneBy       *uint              `json:"undone_by"`
	UndoneAt       *string            `json:"undone_at"`
}

// GET /api/audit-logs?entity_type=orden&entity_id=1&departamento_id=1
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rolVal := c.Locals(auth.CtxUserRolKey)
		rol, ok := rolVal.(models.RolUsuario)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "No se pudo determinar el rol del usuario")
		}

		// Los jefes solo ven los logs de su departamento
		var departamentoID *uint
		if rol == models.RolJefeDepartamento {
			dVal := c.Locals(auth.CtxDepartamentoIDKey)
			dPtr, ok := dVal.(*uint)
			if ok && dPtr != nil {
				departamentoID = dPtr
			}
		} else {
			didStr := c.Query("departamento_id")
			if didStr != "" {
				var did uint
				if _, err := fmt.Sscan(didStr, &did); err == nil && did > 0 {
					departamentoID = &did
				}
			}
		}

		entityType := c.Query("entity_type")
		entityIDStr := c.Query("entity_id")
		usuarioIDStr := c.Query("usuario_id")

		dbq := database.DB.Model(&models.AuditLog{})

		if departamentoID != nil {
			dbq = dbq.Where("departamento_id = ?", *departamentoID)
		}

		if usuarioIDStr != "" {
			var uid uint
			if _, err := fmt.Sscan(usuarioIDStr, &uid); err == nil && uid > 0 {
				dbq = dbq.Where("usuario_id = ?", uid)
			}
		}

		if entityType != "" {
			dbq = dbq.Where("entity_type = ?", entityType)
		}

		if entityIDStr != "" {
			var eid uint
			if _, err := fmt.Sscan(entityIDStr, &eid); err == nil && eid > 0 {
				dbq = dbq.Where("entity_id = ?", eid)
			}
		}

		var logs []models.AuditLog
		if err := dbq.Order("created_at DESC").Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los registros")
		}

		resp := make([]AuditLogResponse, 0, len(logs))
		for _, log := range logs {
			var undoneAtStr *string
			if log.UndoneAt != nil {
				formatted := log.UndoneAt.Format("2006-01-02 15:04:05")
				undoneAtStr = &formatted
			}

			resp = append(resp, AuditLogResponse{
				ID:             log.ID,
				CreatedAt:      log.CreatedAt.Format("2006-01-02 15:04:05"),
				DepartamentoID: log.DepartamentoID,
				UsuarioID:      log.UsuarioID,
				UsuarioNombre:  log.UsuarioNombre,
				EntityType:     log.EntityType,
				EntityID:       log.EntityID,
				Action:         log.Action,
				Description:    log.Description,
				IsUndone:       log.IsUndone,
				UndoneBy:       log.UndoneBy,
				UndoneAt:       undoneAtStr,
			})
		}

		return c.JSON(resp)
	}
}

// POST /api/audit-logs/:id/undo
func UndoAuditLogHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		logIDStr := c.Params("id")
		var logID uint
		if _, err := fmt.Sscan(logIDStr, &logID); err != nil || logID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID de registro no válido")
		}

		userIDVal := c.Locals(auth.CtxUserIDKey)
		userID, ok := userIDVal.(uint)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "No se pudo identificar al usuario")
		}

		rolVal := c.Locals(auth.CtxUserRolKey)
		rol, ok := rolVal.(models.RolUsuario)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "No se pudo determinar el rol del usuario")
		}

		var log models.AuditLog
		if err := database.DB.First(&log, "id = ?", logID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Registro no encontrado")
		}

		// El administrador deshace cualquier operación; el jefe solo las de
		// su departamento. El contable no deshace nada.
		if rol == models.RolAdministrador {
		} else if rol == models.RolJefeDepartamento {
			dVal := c.Locals(auth.CtxDepartamentoIDKey)
			dPtr, ok := dVal.(*uint)
			if !ok || dPtr == nil {
				return fiber.NewError(fiber.StatusForbidden, "No se encontró el departamento del usuario")
			}
			if log.DepartamentoID == nil || *log.DepartamentoID != *dPtr {
				return fiber.NewError(fiber.StatusForbidden, "Solo puedes deshacer operaciones de tu departamento")
			}
		} else {
			return fiber.NewError(fiber.StatusForbidden, "No tienes permisos para deshacer esta operación")
		}

		var usuario models.Usuario
		if err := database.DB.First(&usuario, "id = ?", userID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Usuario no encontrado")
		}

		if err := UndoLog(logID, userID, usuario.Nombre); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.JSON(fiber.Map{
			"message": "Operación deshecha correctamente",
		})
	}
}
