package admin

import (
	"strings"

	"wasabi-backend/internal/database"
	"wasabi-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ProveedorResponse struct {
	ID        uint   `json:"id"`
	Nombre    string `json:"nombre"`
	CreatedAt string `json:"created_at"`
}

type CreateProveedorRequest struct {
	Nombre string `json:"nombre"`
}

type UpdateProveedorRequest struct {
	Nombre *string `json:"nombre"`
}

// ----------------------------------------
// PROVEEDORES CRUD
// ----------------------------------------

func CreateProveedorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProveedorRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos no válidos")
		}

		body.Nombre = strings.TrimSpace(body.Nombre)
		if body.Nombre == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El nombre del proveedor no puede quedar vacío")
		}

		var existente models.Proveedor
		if err := database.DB.Where("nombre = ?", body.Nombre).First(&existente).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ya existe un proveedor con ese nombre")
		}

		prov := models.Proveedor{Nombre: body.Nombre}
		if err := database.DB.Create(&prov).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el proveedor")
		}

		return c.Status(fiber.StatusCreated).JSON(ProveedorResponse{
			ID:        prov.ID,
			Nombre:    prov.Nombre,
			CreatedAt: prov.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

func ListProveedoresHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var provs []models.Proveedor
		if err := database.DB.Order("nombre asc").Find(&provs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los proveedores")
		}

		res := make([]ProveedorResponse, 0, len(provs))
		for _, p := range provs {
			res = append(res, ProveedorResponse{
				ID:        p.ID,
				Nombre:    p.Nombre,
				CreatedAt: p.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(res)
	}
}

func UpdateProveedorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var prov models.Proveedor
		if err := database.DB.First(&prov, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Proveedor no encontrado")
		}

		var body UpdateProveedorRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos no válidos")
		}

		if body.Nombre != nil {
			nombre := strings.TrimSpace(*body.Nombre)
			if nombre == "" {
				return fiber.NewError(fiber.StatusBadRequest, "El nombre del proveedor no puede quedar vacío")
			}
			prov.Nombre = nombre
		}

		if err := database.DB.Save(&prov).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el proveedor")
		}

		return c.JSON(ProveedorResponse{
			ID:        prov.ID,
			Nombre:    prov.Nombre,
			CreatedAt: prov.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

func DeleteProveedorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var ordenes int64
		if err := database.DB.Model(&models.Orden{}).Where("proveedor_id = ?", id).Count(&ordenes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo comprobar el proveedor")
		}
		if ordenes > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "El proveedor tiene órdenes registradas y no se puede eliminar")
		}

		if err := database.DB.Delete(&models.Proveedor{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el proveedor")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
