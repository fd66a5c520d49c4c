package admin

import (
	"strings"

	"wasabi-backend/internal/database"
	"wasabi-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type CreateUsuarioRequest struct {
	Nombre         string `json:"nombre"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Rol            string `json:"rol"`
	DepartamentoID *uint  `json:"departamento_id"`
}

type UsuarioResponse struct {
	ID             uint   `json:"id"`
	Nombre         string `json:"nombre"`
	Email          string `json:"email"`
	Rol            string `json:"rol"`
	DepartamentoID *uint  `json:"departamento_id"`
	Departamento   string `json:"departamento"`
	CreatedAt      string `json:"created_at"`
}

// ----------------------------------------
// ALTA DE USUARIOS
// POST /api/admin/usuarios
// ----------------------------------------

func CreateUsuarioHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateUsuarioRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos no válidos")
		}

		body.Email = strings.ToLower(strings.TrimSpace(body.Email))
		body.Nombre = strings.TrimSpace(body.Nombre)

		if body.Nombre == "" || body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nombre, email y contraseña son obligatorios")
		}

		rol := models.RolUsuario(body.Rol)
		switch rol {
		case models.RolJefeDepartamento, models.RolContable:
		case models.RolAdministrador:
			return fiber.NewError(fiber.StatusBadRequest, "Los administradores no se crean desde aquí")
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Rol no válido")
		}

		// El jefe queda ligado a su departamento; el contable no lleva ninguno
		var departamento models.Departamento
		if rol == models.RolJefeDepartamento {
			if body.DepartamentoID == nil || *body.DepartamentoID == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "El jefe de departamento necesita un departamento")
			}
			if err := database.DB.First(&departamento, "id = ?", *body.DepartamentoID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Departamento no encontrado")
			}
		} else {
			body.DepartamentoID = nil
		}

		var existente models.Usuario
		if err := database.DB.Where("email = ?", body.Email).First(&existente).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ese email ya está registrado")
		}

		hash, _ := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)

		usuario := models.Usuario{
			Nombre:         body.Nombre,
			Email:          body.Email,
			PasswordHash:   string(hash),
			Rol:            rol,
			DepartamentoID: body.DepartamentoID,
		}

		if err := database.DB.Create(&usuario).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el usuario")
		}

		return c.Status(fiber.StatusCreated).JSON(UsuarioResponse{
			ID:             usuario.ID,
			Nombre:         usuario.Nombre,
			Email:          usuario.Email,
			Rol:            string(usuario.Rol),
			DepartamentoID: usuario.DepartamentoID,
			Departamento:   departamento.Nombre,
			CreatedAt:      usuario.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

// ----------------------------------------
// LISTADO DE USUARIOS
// GET /api/admin/usuarios
// ----------------------------------------

func ListUsuariosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var usuarios []models.Usuario
		if err := database.DB.Preload("Departamento").Order("created_at DESC").Find(&usuarios).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los usuarios")
		}

		res := make([]UsuarioResponse, 0, len(usuarios))
		for _, u := range usuarios {
			r := UsuarioResponse{
				ID:             u.ID,
				Nombre:         u.Nombre,
				Email:          u.Email,
				Rol:            string(u.Rol),
				DepartamentoID: u.DepartamentoID,
				CreatedAt:      u.CreatedAt.Format("2006-01-02 15:04:05"),
			}
			if u.Departamento != nil {
				r.Departamento = u.Departamento.Nombre
			}
			res = append(res, r)
		}

		return c.JSON(res)
	}
}

// ----------------------------------------
// BAJA DE USUARIOS
// DELETE /api/admin/usuarios/:id
// ----------------------------------------

func DeleteUsuarioHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var usuario models.Usuario
		if err := database.DB.First(&usuario, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Usuario no encontrado")
		}
		if usuario.Rol == models.RolAdministrador {
			return fiber.NewError(fiber.StatusBadRequest, "El administrador no se puede eliminar")
		}

		if err := database.DB.Delete(&usuario).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el usuario")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
