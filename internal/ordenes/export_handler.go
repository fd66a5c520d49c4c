package ordenes

import (
	"bytes"
	"fmt"
	"time"

	"wasabi-backend/internal/database"
	"wasabi-backend/internal/export"
	"wasabi-backend/internal/formato"
	"wasabi-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ExportOrdenesRequest struct {
	IDs    []uint `json:"ids"`
	Filtro Filtro `json:"filtro"`
}

// ColumnasOrdenes define la hoja de exportación de órdenes.
var ColumnasOrdenes = []export.Columna{
	{Titulo: "Número Orden", Ancho: 15},
	{Titulo: "Descripción", Ancho: 30},
	{Titulo: "Fecha", Ancho: 12},
	{Titulo: "Importe (€)", Ancho: 12},
	{Titulo: "Inventariable", Ancho: 12},
	{Titulo: "Cantidad", Ancho: 10},
	{Titulo: "Departamento", Ancho: 15},
	{Titulo: "Proveedor", Ancho: 20},
	{Titulo: "Número Inversión", Ancho: 15},
	{Titulo: "Factura", Ancho: 10},
	{Titulo: "Número Factura", Ancho: 12},
	{Titulo: "Estado", Ancho: 12},
}

// PlanExportacion decide qué órdenes van al fichero: las seleccionadas si
// hay selección, y si no todas las que pasan el filtro.
func PlanExportacion(vistas []OrdenVista, ids []uint, f Filtro) []OrdenVista {
	if len(ids) > 0 {
		seleccion := make(map[uint]bool, len(ids))
		for _, id := range ids {
			seleccion[id] = true
		}
		elegidas := make([]OrdenVista, 0, len(ids))
		for _, v := range vistas {
			if seleccion[v.ID] {
				elegidas = append(elegidas, v)
			}
		}
		return elegidas
	}
	return Aplicar(vistas, f)
}

// FilasOrdenes convierte las vistas en filas de la hoja, una por orden, en
// el orden recibido.
func FilasOrdenes(vistas []OrdenVista) [][]any {
	filas := make([][]any, 0, len(vistas))
	for _, v := range vistas {
		numInversion := ""
		if v.NumInversion != nil {
			numInversion = fmt.Sprintf("%d", *v.NumInversion)
		}
		factura := "No"
		if v.TieneFactura {
			factura = "Sí"
		}
		filas = append(filas, []any{
			v.NumOrden,
			v.Descripcion,
			formato.FormatearFecha(v.Fecha),
			v.Importe.StringFixed(2),
			formato.FormatearInventariable(v.Inventariable),
			v.Cantidad,
			v.Departamento,
			v.Proveedor,
			numInversion,
			factura,
			v.NumeroFactura,
			v.Estado,
		})
	}
	return filas
}

// POST /api/ordenes/exportar
func ExportOrdenesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ExportOrdenesRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición no válido")
		}

		_, _, rol, departamentoClaims, err := getUserInfo(c)
		if err != nil {
			return err
		}
		if rol == models.RolJefeDepartamento {
			if departamentoClaims == nil {
				return fiber.NewError(fiber.StatusForbidden, "No se encontró el departamento del usuario")
			}
			nombre, err := nombreDepartamento(*departamentoClaims)
			if err != nil {
				return err
			}
			body.Filtro.Departamento = nombre
		}

		var todas []models.Orden
		if err := database.DB.Preload("Departamento").Preload("Proveedor").
			Order("fecha desc, id desc").
			Find(&todas).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron cargar las órdenes")
		}
		vistas := Denormalizar(todas)

		// La selección del jefe también queda acotada a su departamento
		if rol == models.RolJefeDepartamento {
			propias := make([]OrdenVista, 0, len(vistas))
			for _, v := range vistas {
				if v.Departamento == body.Filtro.Departamento {
					propias = append(propias, v)
				}
			}
			vistas = propias
		}

		elegidas := PlanExportacion(vistas, body.IDs, body.Filtro)
		if len(elegidas) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "No hay órdenes que exportar")
		}

		hoja := export.Hoja{
			Nombre:   "Órdenes",
			Columnas: ColumnasOrdenes,
			Filas:    FilasOrdenes(elegidas),
		}

		var buf bytes.Buffer
		if err := export.EscribirXLSX(hoja, &buf); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el fichero")
		}

		nombre := export.NombreArchivo("ordenes", body.Filtro.Departamento, time.Now())
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, nombre))
		return c.Send(buf.Bytes())
	}
}
