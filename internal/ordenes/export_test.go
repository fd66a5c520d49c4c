package ordenes

import (
	"testing"
)

func TestPlanExportacionConSeleccion(t *testing.T) {
	vistas := fixtureOrdenes()

	elegidas := PlanExportacion(vistas, []uint{1, 3, 5}, Filtro{})
	if len(elegidas) != 3 {
		t.Fatalf("con 3 seleccionadas se esperaban 3 filas, hubo %d", len(elegidas))
	}
	for _, v := range elegidas {
		if v.ID != 1 && v.ID != 3 && v.ID != 5 {
			t.Fatalf("orden inesperada en la exportación: %d", v.ID)
		}
	}
}

func TestPlanExportacionSinSeleccionUsaElFiltro(t *testing.T) {
	vistas := fixtureOrdenes()
	f := Filtro{Departamento: "Informática"}

	filtradas := Aplicar(vistas, f)
	elegidas := PlanExportacion(vistas, nil, f)

	if len(elegidas) != len(filtradas) {
		t.Fatalf("sin selección deben exportarse las filtradas: %d != %d", len(elegidas), len(filtradas))
	}
}

func TestPlanExportacionSeleccionIgnoraElFiltro(t *testing.T) {
	vistas := fixtureOrdenes()

	// la selección manda aunque el filtro excluya esas órdenes
	elegidas := PlanExportacion(vistas, []uint{2}, Filtro{Departamento: "Informática"})
	if len(elegidas) != 1 || elegidas[0].ID != 2 {
		t.Fatalf("la selección debe prevalecer sobre el filtro, se obtuvo %v", elegidas)
	}
}

func TestFilasOrdenes(t *testing.T) {
	vistas := fixtureOrdenes()
	filas := FilasOrdenes(vistas[:1])

	if len(filas) != 1 {
		t.Fatalf("se esperaba 1 fila, hubo %d", len(filas))
	}
	if len(filas[0]) != len(ColumnasOrdenes) {
		t.Fatalf("la fila tiene %d celdas y la hoja %d columnas", len(filas[0]), len(ColumnasOrdenes))
	}
	if filas[0][0] != vistas[0].NumOrden {
		t.Fatalf("la primera celda debe ser el número de orden, fue %v", filas[0][0])
	}
}
