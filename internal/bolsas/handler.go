package bolsas

import (
	"fmt"

	"wasabi-backend/internal/audit"
	"wasabi-backend/internal/auth"
	"wasabi-backend/internal/database"
	"wasabi-backend/internal/formato"
	"wasabi-backend/internal/models"
	"wasabi-backend/internal/ordenes"

	"github.com/gofiber/fiber/v2"
)

type CrearBolsasRequest struct {
	DepartamentoID uint                    `json:"departamento_id"`
	Anio           int                     `json:"año"`
	Presupuesto    formato.ImporteFlexible `json:"presupuesto"`
	Inversion      formato.ImporteFlexible `json:"inversion"`
}

type BolsaResponse struct {
	ID             uint   `json:"id"`
	DepartamentoID uint   `json:"departamento_id"`
	Departamento   string `json:"departamento"`
	Anio           int    `json:"año"`
	Tipo           string `json:"tipo"`
	Cantidad       string `json:"cantidad"`
}

func toBolsaResponse(b models.Bolsa) BolsaResponse {
	return BolsaResponse{
		ID:             b.ID,
		DepartamentoID: b.DepartamentoID,
		Departamento:   b.Departamento.Nombre,
		Anio:           b.Anio,
		Tipo:           string(b.Tipo),
		Cantidad:       b.Cantidad.StringFixed(2),
	}
}

func getUserInfo(c *fiber.Ctx) (uint, string, models.RolUsuario, *uint, error) {
	userIDVal := c.Locals(auth.CtxUserIDKey)
	userID, ok := userIDVal.(uint)
	if !ok {
		return 0, "", "", nil, fiber.NewError(fiber.StatusForbidden, "No se pudo identificar al usuario")
	}

	var usuario models.Usuario
	if err := database.DB.First(&usuario, "id = ?", userID).Error; err != nil {
		return 0, "", "", nil, fiber.NewError(fiber.StatusInternalServerError, "Usuario no encontrado")
	}

	rolVal := c.Locals(auth.CtxUserRolKey)
	rol, ok := rolVal.(models.RolUsuario)
	if !ok {
		return 0, "", "", nil, fiber.NewError(fiber.StatusForbidden, "No se pudo determinar el rol del usuario")
	}

	var departamentoID *uint
	dVal := c.Locals(auth.CtxDepartamentoIDKey)
	if dPtr, ok := dVal.(*uint); ok && dPtr != nil {
		departamentoID = dPtr
	}

	return userID, usuario.Nombre, rol, departamentoID, nil
}

func vistasDepartamento(departamentoID uint) ([]ordenes.OrdenVista, error) {
	var filas []models.Orden
	if err := database.DB.Preload("Departamento").Preload("Proveedor").
		Where("departamento_id = ?", departamentoID).
		Find(&filas).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "No se pudieron cargar las órdenes del departamento")
	}
	return ordenes.Denormalizar(filas), nil
}

// guardarBolsa crea o actualiza la bolsa del (departamento, año, tipo); como
// máximo existe una, así que repetir el alta es una actualización.
func guardarBolsa(departamentoID uint, anio int, tipo models.TipoBolsa, cantidad formato.ImporteFlexible, userID uint, userName string) (*models.Bolsa, error) {
	var existente models.Bolsa
	err := database.DB.Where("departamento_id = ? AND anio = ? AND tipo = ?", departamentoID, anio, tipo).
		First(&existente).Error

	if err == nil {
		anterior := existente
		existente.Cantidad = cantidad.Decimal
		if err := database.DB.Save(&existente).Error; err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar la bolsa")
		}
		if logErr := audit.WriteLog(audit.LogOptions{
			DepartamentoID: &existente.DepartamentoID,
			UsuarioID:      userID,
			UsuarioNombre:  userName,
			EntityType:     "bolsa",
			EntityID:       existente.ID,
			Action:         models.AuditActionUpdate,
			Description:    fmt.Sprintf("Bolsa de %s %d actualizada a %s €", tipo, anio, existente.Cantidad.StringFixed(2)),
			Before:         anterior,
			After:          existente,
		}); logErr != nil {
			fmt.Printf("No se pudo escribir el registro de auditoría: %v\n", logErr)
		}
		return &existente, nil
	}

	nueva := models.Bolsa{
		DepartamentoID: departamentoID,
		Anio:           anio,
		Tipo:           tipo,
		Cantidad:       cantidad.Decimal,
	}
	if err := database.DB.Create(&nueva).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar la bolsa")
	}
	if logErr := audit.WriteLog(audit.LogOptions{
		DepartamentoID: &nueva.DepartamentoID,
		UsuarioID:      userID,
		UsuarioNombre:  userName,
		EntityType:     "bolsa",
		EntityID:       nueva.ID,
		Action:         models.AuditActionCreate,
		Description:    fmt.Sprintf("Bolsa de %s %d creada con %s €", tipo, anio, nueva.Cantidad.StringFixed(2)),
		Before:         nil,
		After:          nueva,
	}); logErr != nil {
		fmt.Printf("No se pudo escribir el registro de auditoría: %v\n", logErr)
	}
	return &nueva, nil
}

// -------------------------
// Alta o actualización de bolsas
// POST /api/bolsas
// -------------------------
func CrearBolsasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CrearBolsasRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición no válido")
		}

		if body.Anio < 2000 || body.Anio > 2100 {
			return fiber.NewError(fiber.StatusBadRequest, "Año no válido")
		}
		if err := ValidarCantidades(body.Presupuesto.Decimal, body.Inversion.Decimal); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		userID, userName, rol, departamentoClaims, err := getUserInfo(c)
		if err != nil {
			return err
		}

		departamentoID := body.DepartamentoID
		if rol == models.RolJefeDepartamento {
			if departamentoClaims == nil {
				return fiber.NewError(fiber.StatusForbidden, "No se encontró el departamento del usuario")
			}
			departamentoID = *departamentoClaims
		}
		if departamentoID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "departamento_id es obligatorio")
		}

		var dep models.Departamento
		if err := database.DB.First(&dep, "id = ?", departamentoID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Departamento no encontrado")
		}

		// Una bolsa cuyo año ya tiene órdenes registradas es inmutable: se
		// responde 403 con el número de órdenes que lo bloquean por tipo.
		var existentes int64
		if err := database.DB.Model(&models.Bolsa{}).
			Where("departamento_id = ? AND anio = ?", departamentoID, body.Anio).
			Count(&existentes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron comprobar las bolsas")
		}
		if existentes > 0 {
			vistas, err := vistasDepartamento(departamentoID)
			if err != nil {
				return err
			}
			presupuesto, inversion := ContarOrdenes(vistas, body.Anio)
			if presupuesto > 0 || inversion > 0 {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"tieneOrdenes": true,
					"totalOrdenes": fiber.Map{
						"presupuesto": presupuesto,
						"inversion":   inversion,
					},
				})
			}
		}

		resp := make([]BolsaResponse, 0, 2)
		if !body.Presupuesto.IsZero() {
			b, err := guardarBolsa(departamentoID, body.Anio, models.TipoPresupuesto, body.Presupuesto, userID, userName)
			if err != nil {
				return err
			}
			b.Departamento = dep
			resp = append(resp, toBolsaResponse(*b))
		}
		if !body.Inversion.IsZero() {
			b, err := guardarBolsa(departamentoID, body.Anio, models.TipoInversion, body.Inversion, userID, userName)
			if err != nil {
				return err
			}
			b.Departamento = dep
			resp = append(resp, toBolsaResponse(*b))
		}

		return c.Status(fiber.StatusCreated).JSON(resp)
	}
}

// -------------------------
// Años con bolsa de un departamento
// GET /api/bolsas/:departamento/años
// -------------------------
func ExistingYearsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		depStr := c.Params("departamento")
		var depID uint
		if _, err := fmt.Sscan(depStr, &depID); err != nil || depID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Departamento no válido")
		}

		var anios []int
		if err := database.DB.Model(&models.Bolsa{}).
			Where("departamento_id = ?", depID).
			Distinct("anio").
			Order("anio desc").
			Pluck("anio", &anios).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los años")
		}

		return c.JSON(fiber.Map{"años": anios})
	}
}

// -------------------------
// Bolsas de un departamento y año
// GET /api/bolsas/:departamento?año=2025
// -------------------------
func BolsasByYearHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		depStr := c.Params("departamento")
		var depID uint
		if _, err := fmt.Sscan(depStr, &depID); err != nil || depID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Departamento no válido")
		}

		anioStr := c.Query("año", c.Query("anio"))
		var anio int
		if _, err := fmt.Sscan(anioStr, &anio); err != nil || anio < 2000 {
			return fiber.NewError(fiber.StatusBadRequest, "Año no válido")
		}

		var filas []models.Bolsa
		if err := database.DB.Preload("Departamento").
			Where("departamento_id = ? AND anio = ?", depID, anio).
			Order("tipo asc").
			Find(&filas).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las bolsas")
		}

		resp := make([]BolsaResponse, 0, len(filas))
		for _, b := range filas {
			resp = append(resp, toBolsaResponse(b))
		}
		return c.JSON(resp)
	}
}

// -------------------------
// Resumen anual de gasto contra bolsas
// GET /api/resumen/:departamento?año=2025
// -------------------------
func ResumenHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		depStr := c.Params("departamento")
		var depID uint
		if _, err := fmt.Sscan(depStr, &depID); err != nil || depID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Departamento no válido")
		}

		_, _, rol, departamentoClaims, err := getUserInfo(c)
		if err != nil {
			return err
		}
		if rol == models.RolJefeDepartamento {
			if departamentoClaims == nil || *departamentoClaims != depID {
				return fiber.NewError(fiber.StatusForbidden, "Solo puedes consultar el resumen de tu departamento")
			}
		}

		anioStr := c.Query("año", c.Query("anio"))
		var anio int
		if _, err := fmt.Sscan(anioStr, &anio); err != nil || anio < 2000 {
			return fiber.NewError(fiber.StatusBadRequest, "Año no válido")
		}

		var filas []models.Bolsa
		if err := database.DB.Where("departamento_id = ?", depID).Find(&filas).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron cargar las bolsas")
		}

		vistas, err := vistasDepartamento(depID)
		if err != nil {
			return err
		}

		return c.JSON(Calcular(filas, vistas, anio))
	}
}
