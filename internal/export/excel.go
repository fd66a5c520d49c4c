// Package export genera los ficheros XLSX de descarga. El esquema de columnas
// es tipado por contexto (órdenes, inventario): el orden y las etiquetas de
// las columnas quedan fijados en compilación, no dependen de la iteración de
// un mapa.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

type Columna struct {
	Titulo string
	Ancho  float64
}

type Hoja struct {
	Nombre   string
	Columnas []Columna
	Filas    [][]any
}

// EscribirXLSX vuelca la hoja al writer como libro .xlsx con los anchos de
// columna indicados.
func EscribirXLSX(h Hoja, w io.Writer) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	hoja := f.GetSheetName(f.GetActiveSheetIndex())
	if h.Nombre != "" {
		if err := f.SetSheetName(hoja, h.Nombre); err != nil {
			return fmt.Errorf("no se pudo renombrar la hoja: %w", err)
		}
		hoja = h.Nombre
	}

	cabecera := make([]any, 0, len(h.Columnas))
	for i, col := range h.Columnas {
		cabecera = append(cabecera, col.Titulo)
		if col.Ancho > 0 {
			nombre, err := excelize.ColumnNumberToName(i + 1)
			if err != nil {
				return err
			}
			if err := f.SetColWidth(hoja, nombre, nombre, col.Ancho); err != nil {
				return err
			}
		}
	}
	if err := f.SetSheetRow(hoja, "A1", &cabecera); err != nil {
		return fmt.Errorf("no se pudo escribir la cabecera: %w", err)
	}

	for i := range h.Filas {
		celda, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(hoja, celda, &h.Filas[i]); err != nil {
			return fmt.Errorf("no se pudo escribir la fila %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("no se pudo escribir el libro: %w", err)
	}
	return nil
}

// NombreArchivo compone <prefijo>_<departamento>_<aaaammdd>.xlsx; el nombre
// del departamento se normaliza a minúsculas y guiones bajos.
func NombreArchivo(prefijo, departamento string, hoy time.Time) string {
	nombre := prefijo
	if dep := limpiarNombre(departamento); dep != "" {
		nombre = nombre + "_" + dep
	}
	return fmt.Sprintf("%s_%s.xlsx", nombre, hoy.Format("20060102"))
}

func limpiarNombre(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	previoGuion := false
	for _, r := range s {
		esAlfanum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if esAlfanum {
			b.WriteRune(r)
			previoGuion = false
			continue
		}
		if !previoGuion && b.Len() > 0 {
			b.WriteRune('_')
			previoGuion = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
