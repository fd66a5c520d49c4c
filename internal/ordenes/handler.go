package ordenes

import (
	"fmt"
	"strings"
	"time"

	"wasabi-backend/internal/audit"
	"wasabi-backend/internal/auth"
	"wasabi-backend/internal/database"
	"wasabi-backend/internal/formato"
	"wasabi-backend/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

type CreateOrdenRequest struct {
	NumOrden       string                  `json:"Num_orden"` // vacío: se genera en el servidor
	Descripcion    string                  `json:"Descripcion" validate:"required,max=255"`
	Importe        formato.ImporteFlexible `json:"Importe"`
	Fecha          string                  `json:"Fecha" validate:"required"` // "2025-01-31"
	Inventariable  int                     `json:"Inventariable"`             // 0/1 histórico
	Cantidad       int                     `json:"Cantidad" validate:"required,gt=0"`
	DepartamentoID uint                    `json:"id_DepartamentoFK"`
	ProveedorID    uint                    `json:"id_ProveedorFK" validate:"required"`
	EsInversion    bool                    `json:"es_inversion"`
	NumInversion   *int64                  `json:"Num_inversion"`
	TieneFactura   int                     `json:"tiene_factura"`
	NumeroFactura  string                  `json:"numero_factura"`
	Estado         string                  `json:"Estado"`
}

type UpdateOrdenRequest struct {
	Descripcion   *string                  `json:"Descripcion"`
	Importe       *formato.ImporteFlexible `json:"Importe"`
	Fecha         *string                  `json:"Fecha"`
	Inventariable *int                     `json:"Inventariable"`
	Cantidad      *int                     `json:"Cantidad"`
	ProveedorID   *uint                    `json:"id_ProveedorFK"`
	TieneFactura  *int                     `json:"tiene_factura"`
	NumeroFactura *string                  `json:"numero_factura"`
	Estado        *string                  `json:"Estado"`
}

type DeleteOrdenesRequest struct {
	IDs []uint `json:"ids"`
}

// OrdenResponse conserva los nombres de campo heredados que espera el
// frontend (idOrden, Num_orden, inventariable como 0/1).
type OrdenResponse struct {
	ID             uint   `json:"idOrden"`
	NumOrden       string `json:"Num_orden"`
	Descripcion    string `json:"Descripcion"`
	Importe        string `json:"Importe"`
	Fecha          string `json:"Fecha"` // "2025-01-31"
	Inventariable  int    `json:"Inventariable"`
	Cantidad       int    `json:"Cantidad"`
	Departamento   string `json:"Departamento"`
	Proveedor      string `json:"Proveedor"`
	DepartamentoID uint   `json:"id_DepartamentoFK"`
	ProveedorID    uint   `json:"id_ProveedorFK"`
	NumInversion   *int64 `json:"Num_inversion"`
	TieneFactura   int    `json:"tiene_factura"`
	NumeroFactura  string `json:"numero_factura"`
	Estado         string `json:"Estado"`
}

type ListOrdenesResponse struct {
	Ordenes                []OrdenResponse `json:"ordenes"`
	ProveedoresDisponibles []string        `json:"proveedores_disponibles"`
	Meses                  []string        `json:"meses"`
	Anios                  []string        `json:"años"`
	Total                  int             `json:"total"`
}

func toOrdenResponse(o models.Orden) OrdenResponse {
	r := OrdenResponse{
		ID:             o.ID,
		NumOrden:       o.NumOrden,
		Descripcion:    o.Descripcion,
		Importe:        o.Importe.StringFixed(2),
		Fecha:          formato.FechaParaInput(o.Fecha),
		Cantidad:       o.Cantidad,
		Departamento:   o.Departamento.Nombre,
		Proveedor:      o.Proveedor.Nombre,
		DepartamentoID: o.DepartamentoID,
		ProveedorID:    o.ProveedorID,
		NumInversion:   o.NumInversion,
		Estado:         string(o.Estado),
	}
	if o.Inventariable {
		r.Inventariable = 1
	}
	if o.TieneFactura {
		r.TieneFactura = 1
	}
	if o.NumeroFactura != nil {
		r.NumeroFactura = *o.NumeroFactura
	}
	return r
}

// -------------------------
// Ayudante: datos del usuario autenticado
// -------------------------
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

// resolverDepartamento decide sobre qué departamento opera la petición: el
// jefe queda fijado al suyo, el resto de roles puede elegir.
func resolverDepartamento(rol models.RolUsuario, departamentoClaims *uint, solicitado uint) (uint, error) {
	if rol == models.RolJefeDepartamento {
		if departamentoClaims == nil {
			return 0, fiber.NewError(fiber.StatusForbidden, "No se encontró el departamento del usuario")
		}
		return *departamentoClaims, nil
	}
	if solicitado == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "id_DepartamentoFK es obligatorio")
	}
	return solicitado, nil
}

func nombreDepartamento(id uint) (string, error) {
	var dep models.Departamento
	if err := database.DB.First(&dep, "id = ?", id).Error; err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Departamento no encontrado")
	}
	return dep.Nombre, nil
}

// vistasDepartamento carga las órdenes existentes de un departamento, que la
// numeración necesita completas.
func vistasDepartamento(departamentoID uint) ([]OrdenVista, error) {
	var existentes []models.Orden
	if err := database.DB.Preload("Departamento").Preload("Proveedor").
		Where("departamento_id = ?", departamentoID).
		Find(&existentes).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "No se pudieron cargar las órdenes del departamento")
	}
	return Denormalizar(existentes), nil
}

// -------------------------
// Listado con filtros
// GET /api/ordenes?busqueda=...&departamento=...&proveedor=...&inventariable=...&estado=...&mes=...&año=...
// -------------------------
func ListOrdenesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, _, rol, departamentoClaims, err := getUserInfo(c)
		if err != nil {
			return err
		}

		f := Filtro{
			Busqueda:      c.Query("busqueda"),
			Departamento:  c.Query("departamento"),
			Proveedor:     c.Query("proveedor"),
			Inventariable: c.Query("inventariable"),
			Estado:        c.Query("estado"),
			Mes:           c.Query("mes"),
			Anio:          c.Query("año", c.Query("anio")),
		}

		// El jefe solo ve su departamento, elija lo que elija
		if rol == models.RolJefeDepartamento {
			if departamentoClaims == nil {
				return fiber.NewError(fiber.StatusForbidden, "No se encontró el departamento del usuario")
			}
			nombre, err := nombreDepartamento(*departamentoClaims)
			if err != nil {
				return err
			}
			if f.Departamento != nombre {
				// cambio de departamento: el proveedor elegido deja de valer
				f.Departamento = nombre
				f.Proveedor = ""
			}
		}

		var todas []models.Orden
		if err := database.DB.Preload("Departamento").Preload("Proveedor").
			Order("fecha desc, id desc").
			Find(&todas).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las órdenes")
		}
		vistas := Denormalizar(todas)

		filtradas := Aplicar(vistas, f)
		idsFiltrados := make(map[uint]bool, len(filtradas))
		for _, v := range filtradas {
			idsFiltrados[v.ID] = true
		}

		resp := ListOrdenesResponse{
			Ordenes: make([]OrdenResponse, 0, len(filtradas)),
		}
		for _, o := range todas {
			if idsFiltrados[o.ID] {
				resp.Ordenes = append(resp.Ordenes, toOrdenResponse(o))
			}
		}
		resp.Total = len(resp.Ordenes)

		var proveedores []models.Proveedor
		if err := database.DB.Order("nombre asc").Find(&proveedores).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los proveedores")
		}
		for _, p := range ProveedoresDisponibles(vistas, proveedores, f.Departamento) {
			resp.ProveedoresDisponibles = append(resp.ProveedoresDisponibles, p.Nombre)
		}

		resp.Meses, resp.Anios = FechasDisponibles(vistas, f)

		return c.JSON(resp)
	}
}

// -------------------------
// Alta de orden
// POST /api/ordenes
// -------------------------
func CreateOrdenHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateOrdenRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición no válido")
		}

		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, mensajeValidacion(err))
		}

		if body.Importe.LessThanOrEqual(decimal.Zero) {
			return fiber.NewError(fiber.StatusBadRequest, "El importe debe ser mayor que 0")
		}

		fecha, err := formato.ParsearFecha(body.Fecha)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "La fecha debe tener el formato 'AAAA-MM-DD'")
		}
		if fecha.Before(time.Now().AddDate(-5, 0, 0)) {
			return fiber.NewError(fiber.StatusBadRequest, "La fecha no puede ser anterior a 5 años")
		}

		if body.TieneFactura == 1 && strings.TrimSpace(body.NumeroFactura) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El número de factura es obligatorio cuando hay factura")
		}

		userID, userName, rol, departamentoClaims, err := getUserInfo(c)
		if err != nil {
			return err
		}

		departamentoID, err := resolverDepartamento(rol, departamentoClaims, body.DepartamentoID)
		if err != nil {
			return err
		}
		nombreDep, err := nombreDepartamento(departamentoID)
		if err != nil {
			return err
		}

		var proveedor models.Proveedor
		if err := database.DB.First(&proveedor, "id = ?", body.ProveedorID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Proveedor no encontrado")
		}

		vistas, err := vistasDepartamento(departamentoID)
		if err != nil {
			return err
		}

		numOrden := strings.TrimSpace(body.NumOrden)
		if numOrden == "" {
			// El segmento AA es el año en que se da de alta la orden, no el
			// de la fecha del formulario.
			numOrden = GenerarNumeroOrden(nombreDep, body.Inventariable == 1, time.Now().Year(), vistas)
		}

		numInversion := body.NumInversion
		if body.EsInversion && numInversion == nil {
			n := GenerarNumeroInversion(departamentoID, nombreDep, vistas)
			numInversion = &n
		}

		estado := models.EstadoEnProceso
		if body.Estado != "" {
			estado, err = parsearEstado(body.Estado)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
		}

		orden := models.Orden{
			NumOrden:       numOrden,
			Descripcion:    strings.TrimSpace(body.Descripcion),
			Importe:        body.Importe.Decimal,
			Fecha:          fecha,
			Inventariable:  body.Inventariable == 1,
			Cantidad:       body.Cantidad,
			DepartamentoID: departamentoID,
			ProveedorID:    body.ProveedorID,
			UsuarioID:      userID,
			NumInversion:   numInversion,
			TieneFactura:   body.TieneFactura == 1,
			Estado:         estado,
		}
		if nf := strings.TrimSpace(body.NumeroFactura); nf != "" {
			orden.NumeroFactura = &nf
		}

		if err := database.DB.Create(&orden).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar la orden")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			DepartamentoID: &orden.DepartamentoID,
			UsuarioID:      userID,
			UsuarioNombre:  userName,
			EntityType:     "orden",
			EntityID:       orden.ID,
			Action:         models.AuditActionCreate,
			Description:    fmt.Sprintf("Orden creada: %s - %s €", orden.NumOrden, orden.Importe.StringFixed(2)),
			Before:         nil,
			After:          orden,
		}); logErr != nil {
			fmt.Printf("No se pudo escribir el registro de auditoría: %v\n", logErr)
		}

		orden.Departamento = models.Departamento{ID: departamentoID, Nombre: nombreDep}
		orden.Proveedor = proveedor
		return c.Status(fiber.StatusCreated).JSON(toOrdenResponse(orden))
	}
}

// -------------------------
// Edición de orden
// PUT /api/ordenes/:id
// -------------------------
func UpdateOrdenHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var orden models.Orden
		if err := database.DB.Preload("Departamento").Preload("Proveedor").
			First(&orden, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Orden no encontrada")
		}

		userID, userName, rol, departamentoClaims, err := getUserInfo(c)
		if err != nil {
			return err
		}
		if rol == models.RolJefeDepartamento {
			if departamentoClaims == nil || *departamentoClaims != orden.DepartamentoID {
				return fiber.NewError(fiber.StatusForbidden, "Solo puedes editar órdenes de tu departamento")
			}
		}

		var body UpdateOrdenRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición no válido")
		}

		anterior := orden

		if body.Descripcion != nil {
			desc := strings.TrimSpace(*body.Descripcion)
			if desc == "" {
				return fiber.NewError(fiber.StatusBadRequest, "La descripción no puede quedar vacía")
			}
			orden.Descripcion = desc
		}
		if body.Importe != nil {
			if body.Importe.LessThanOrEqual(decimal.Zero) {
				return fiber.NewError(fiber.StatusBadRequest, "El importe debe ser mayor que 0")
			}
			orden.Importe = body.Importe.Decimal
		}
		if body.Fecha != nil {
			fecha, err := formato.ParsearFecha(*body.Fecha)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "La fecha debe tener el formato 'AAAA-MM-DD'")
			}
			if fecha.Before(time.Now().AddDate(-5, 0, 0)) {
				return fiber.NewError(fiber.StatusBadRequest, "La fecha no puede ser anterior a 5 años")
			}
			orden.Fecha = fecha
		}
		// El número de orden no se regenera nunca: la edición conserva el
		// código aunque cambien fecha o inventariable.
		if body.Inventariable != nil {
			orden.Inventariable = *body.Inventariable == 1
		}
		if body.Cantidad != nil {
			if *body.Cantidad <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "La cantidad debe ser mayor que 0")
			}
			orden.Cantidad = *body.Cantidad
		}
		if body.ProveedorID != nil {
			var proveedor models.Proveedor
			if err := database.DB.First(&proveedor, "id = ?", *body.ProveedorID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Proveedor no encontrado")
			}
			orden.ProveedorID = *body.ProveedorID
			orden.Proveedor = proveedor
		}
		if body.TieneFactura != nil {
			orden.TieneFactura = *body.TieneFactura == 1
			if !orden.TieneFactura {
				orden.NumeroFactura = nil
			}
		}
		if body.NumeroFactura != nil {
			nf := strings.TrimSpace(*body.NumeroFactura)
			if nf == "" {
				orden.NumeroFactura = nil
			} else {
				orden.NumeroFactura = &nf
			}
		}
		if orden.TieneFactura && orden.NumeroFactura == nil {
			return fiber.NewError(fiber.StatusBadRequest, "El número de factura es obligatorio cuando hay factura")
		}
		if body.Estado != nil {
			estado, err := parsearEstado(*body.Estado)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			orden.Estado = estado
		}

		if err := database.DB.Save(&orden).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar la orden")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			DepartamentoID: &orden.DepartamentoID,
			UsuarioID:      userID,
			UsuarioNombre:  userName,
			EntityType:     "orden",
			EntityID:       orden.ID,
			Action:         models.AuditActionUpdate,
			Description:    fmt.Sprintf("Orden editada: %s", orden.NumOrden),
			Before:         anterior,
			After:          orden,
		}); logErr != nil {
			fmt.Printf("No se pudo escribir el registro de auditoría: %v\n", logErr)
		}

		return c.JSON(toOrdenResponse(orden))
	}
}

// -------------------------
// Borrado en lote
// POST /api/ordenes/eliminar
// -------------------------
func DeleteOrdenesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body DeleteOrdenesRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición no válido")
		}
		if len(body.IDs) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "No hay órdenes seleccionadas")
		}

		userID, userName, rol, departamentoClaims, err := getUserInfo(c)
		if err != nil {
			return err
		}

		var ordenes []models.Orden
		if err := database.DB.Where("id IN ?", body.IDs).Find(&ordenes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron cargar las órdenes")
		}

		if rol == models.RolJefeDepartamento {
			if departamentoClaims == nil {
				return fiber.NewError(fiber.StatusForbidden, "No se encontró el departamento del usuario")
			}
			for _, o := range ordenes {
				if o.DepartamentoID != *departamentoClaims {
					return fiber.NewError(fiber.StatusForbidden, "Solo puedes eliminar órdenes de tu departamento")
				}
			}
		}

		deleted := 0
		for _, o := range ordenes {
			if err := database.DB.Delete(&models.Orden{}, "id = ?", o.ID).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron eliminar las órdenes")
			}
			deleted++

			if logErr := audit.WriteLog(audit.LogOptions{
				DepartamentoID: &o.DepartamentoID,
				UsuarioID:      userID,
				UsuarioNombre:  userName,
				EntityType:     "orden",
				EntityID:       o.ID,
				Action:         models.AuditActionDelete,
				Description:    fmt.Sprintf("Orden eliminada: %s", o.NumOrden),
				Before:         o,
				After:          nil,
			}); logErr != nil {
				fmt.Printf("No se pudo escribir el registro de auditoría: %v\n", logErr)
			}
		}

		return c.JSON(fiber.Map{"deletedCount": deleted})
	}
}

func parsearEstado(s string) (models.EstadoOrden, error) {
	switch models.EstadoOrden(s) {
	case models.EstadoEnProceso, models.EstadoAnulada, models.EstadoConfirmada:
		return models.EstadoOrden(s), nil
	}
	return "", fmt.Errorf("estado no válido: %q", s)
}

func mensajeValidacion(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return "Datos no válidos"
	}
	campos := make([]string, 0, len(errs))
	for _, ve := range errs {
		campos = append(campos, ve.Field())
	}
	return "Campos no válidos: " + strings.Join(campos, ", ")
}
