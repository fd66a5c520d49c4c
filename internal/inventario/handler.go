// Package inventario expone la vista de inventario, una proyección de las
// órdenes: cada orden es a la vez un apunte de inventario, sin tabla propia.
package inventario

import (
	"bytes"
	"fmt"
	"time"

	"wasabi-backend/internal/auth"
	"wasabi-backend/internal/database"
	"wasabi-backend/internal/export"
	"wasabi-backend/internal/formato"
	"wasabi-backend/internal/models"
	"wasabi-backend/internal/ordenes"

	"github.com/gofiber/fiber/v2"
)

type ArticuloResponse struct {
	OrdenID       uint   `json:"idOrden"`
	Descripcion   string `json:"Descripcion"`
	Proveedor     string `json:"Proveedor"`
	Departamento  string `json:"Departamento"`
	Cantidad      int    `json:"Cantidad"`
	Inventariable int    `json:"Inventariable"`
	Fecha         string `json:"Fecha"`
	Importe       string `json:"Importe"`
}

type ListInventarioResponse struct {
	Articulos []ArticuloResponse `json:"articulos"`
	Total     int                `json:"total"`
}

var columnasInventario = []export.Columna{
	{Titulo: "ID Orden", Ancho: 10},
	{Titulo: "Descripción", Ancho: 30},
	{Titulo: "Proveedor", Ancho: 20},
	{Titulo: "Departamento", Ancho: 15},
	{Titulo: "Cantidad", Ancho: 10},
	{Titulo: "Inventariable", Ancho: 12},
	{Titulo: "Fecha", Ancho: 12},
	{Titulo: "Importe", Ancho: 12},
}

func filtroDesdeQuery(c *fiber.Ctx) ordenes.Filtro {
	return ordenes.Filtro{
		Busqueda:      c.Query("busqueda"),
		Departamento:  c.Query("departamento"),
		Proveedor:     c.Query("proveedor"),
		Inventariable: c.Query("inventariable"),
	}
}

// fijarDepartamentoJefe acota el filtro al departamento del jefe; los demás
// roles ven lo que pidan.
func fijarDepartamentoJefe(c *fiber.Ctx, f *ordenes.Filtro) error {
	rolVal := c.Locals(auth.CtxUserRolKey)
	rol, ok := rolVal.(models.RolUsuario)
	if !ok {
		return fiber.NewError(fiber.StatusForbidden, "No se pudo determinar el rol del usuario")
	}
	if rol != models.RolJefeDepartamento {
		return nil
	}

	dVal := c.Locals(auth.CtxDepartamentoIDKey)
	dPtr, ok := dVal.(*uint)
	if !ok || dPtr == nil {
		return fiber.NewError(fiber.StatusForbidden, "No se encontró el departamento del usuario")
	}
	var dep models.Departamento
	if err := database.DB.First(&dep, "id = ?", *dPtr).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Departamento no encontrado")
	}
	if f.Departamento != dep.Nombre {
		f.Departamento = dep.Nombre
		f.Proveedor = ""
	}
	return nil
}

func cargarVistas() ([]ordenes.OrdenVista, error) {
	var todas []models.Orden
	if err := database.DB.Preload("Departamento").Preload("Proveedor").
		Order("fecha desc, id desc").
		Find(&todas).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "No se pudo cargar el inventario")
	}
	return ordenes.Denormalizar(todas), nil
}

// GET /api/inventario?busqueda=...&departamento=...&proveedor=...&inventariable=...
func ListInventarioHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		f := filtroDesdeQuery(c)
		if err := fijarDepartamentoJefe(c, &f); err != nil {
			return err
		}

		vistas, err := cargarVistas()
		if err != nil {
			return err
		}
		filtradas := ordenes.Aplicar(vistas, f)

		resp := ListInventarioResponse{
			Articulos: make([]ArticuloResponse, 0, len(filtradas)),
		}
		for _, v := range filtradas {
			a := ArticuloResponse{
				OrdenID:      v.ID,
				Descripcion:  v.Descripcion,
				Proveedor:    v.Proveedor,
				Departamento: v.Departamento,
				Cantidad:     v.Cantidad,
				Fecha:        formato.FechaParaInput(v.Fecha),
				Importe:      v.Importe.StringFixed(2),
			}
			if v.Inventariable {
				a.Inventariable = 1
			}
			resp.Articulos = append(resp.Articulos, a)
		}
		resp.Total = len(resp.Articulos)

		return c.JSON(resp)
	}
}

// GET /api/inventario/exportar?busqueda=...&departamento=...
func ExportInventarioHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		f := filtroDesdeQuery(c)
		if err := fijarDepartamentoJefe(c, &f); err != nil {
			return err
		}

		vistas, err := cargarVistas()
		if err != nil {
			return err
		}
		filtradas := ordenes.Aplicar(vistas, f)
		if len(filtradas) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "No hay artículos que exportar")
		}

		filas := make([][]any, 0, len(filtradas))
		for _, v := range filtradas {
			filas = append(filas, []any{
				v.ID,
				v.Descripcion,
				v.Proveedor,
				v.Departamento,
				v.Cantidad,
				formato.FormatearInventariable(v.Inventariable),
				formato.FormatearFecha(v.Fecha),
				v.Importe.StringFixed(2),
			})
		}

		hoja := export.Hoja{
			Nombre:   "Inventario",
			Columnas: columnasInventario,
			Filas:    filas,
		}

		var buf bytes.Buffer
		if err := export.EscribirXLSX(hoja, &buf); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el fichero")
		}

		nombre := export.NombreArchivo("inventario", f.Departamento, time.Now())
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, nombre))
		return c.Send(buf.Bytes())
	}
}
