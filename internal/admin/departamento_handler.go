// Package admin agrupa la gestión de catálogos y usuarios, reservada al
// administrador.
package admin

import (
	"strings"

	"wasabi-backend/internal/database"
	"wasabi-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type DepartamentoResponse struct {
	ID        uint   `json:"id"`
	Nombre    string `json:"nombre"`
	CreatedAt string `json:"created_at"`
}

type CreateDepartamentoRequest struct {
	Nombre string `json:"nombre"`
}

type UpdateDepartamentoRequest struct {
	Nombre *string `json:"nombre"`
}

// ----------------------------------------
// DEPARTAMENTOS CRUD
// ----------------------------------------

func CreateDepartamentoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateDepartamentoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos no válidos")
		}

		body.Nombre = strings.TrimSpace(body.Nombre)
		if body.Nombre == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El nombre del departamento no puede quedar vacío")
		}

		var existente models.Departamento
		if err := database.DB.Where("nombre = ?", body.Nombre).First(&existente).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ya existe un departamento con ese nombre")
		}

		dep := models.Departamento{Nombre: body.Nombre}
		if err := database.DB.Create(&dep).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el departamento")
		}

		return c.Status(fiber.StatusCreated).JSON(DepartamentoResponse{
			ID:        dep.ID,
			Nombre:    dep.Nombre,
			CreatedAt: dep.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

func ListDepartamentosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var deps []models.Departamento
		if err := database.DB.Order("nombre asc").Find(&deps).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los departamentos")
		}

		res := make([]DepartamentoResponse, 0, len(deps))
		for _, d := range deps {
			res = append(res, DepartamentoResponse{
				ID:        d.ID,
				Nombre:    d.Nombre,
				CreatedAt: d.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(res)
	}
}

func UpdateDepartamentoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var dep models.Departamento
		if err := database.DB.First(&dep, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Departamento no encontrado")
		}

		var body UpdateDepartamentoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos no válidos")
		}

		if body.Nombre != nil {
			nombre := strings.TrimSpace(*body.Nombre)
			if nombre == "" {
				return fiber.NewError(fiber.StatusBadRequest, "El nombre del departamento no puede quedar vacío")
			}
			dep.Nombre = nombre
		}

		if err := database.DB.Save(&dep).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el departamento")
		}

		return c.JSON(DepartamentoResponse{
			ID:        dep.ID,
			Nombre:    dep.Nombre,
			CreatedAt: dep.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

func DeleteDepartamentoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		// Con órdenes a su nombre el departamento no se puede borrar
		var ordenes int64
		if err := database.DB.Model(&models.Orden{}).Where("departamento_id = ?", id).Count(&ordenes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo comprobar el departamento")
		}
		if ordenes > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "El departamento tiene órdenes registradas y no se puede eliminar")
		}

		if err := database.DB.Delete(&models.Departamento{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el departamento")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
