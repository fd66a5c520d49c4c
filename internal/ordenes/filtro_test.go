package ordenes

import (
	"reflect"
	"testing"
	"time"

	"wasabi-backend/internal/models"

	"github.com/shopspring/decimal"
)

func fixtureOrdenes() []OrdenVista {
	inv := int64(7000001)
	return []OrdenVista{
		{ID: 1, NumOrden: "COM/001/25/0", Descripcion: "Tóner impresora", Departamento: "Compras", Proveedor: "Officemax",
			Fecha: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), Estado: "En proceso", Importe: decimal.NewFromInt(100)},
		{ID: 2, NumOrden: "COM/002/25/1", Descripcion: "Silla ergonómica", Departamento: "Compras", Proveedor: "Mobiliaria Ruiz",
			Fecha: time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC), Inventariable: true, Estado: "Confirmada", Importe: decimal.NewFromInt(250)},
		{ID: 3, NumOrden: "INF/001/25/1", Descripcion: "Servidor rack", Departamento: "Informática", Proveedor: "TecnoSur",
			Fecha: time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC), Inventariable: true, NumInversion: &inv, Estado: "En proceso", Importe: decimal.NewFromInt(3000)},
		{ID: 4, NumOrden: "INF/002/24/0", Descripcion: "Licencias ofimática", Departamento: "Informática", Proveedor: "TecnoSur",
			Fecha: time.Date(2024, 11, 5, 0, 0, 0, 0, time.UTC), Estado: "Anulada", Importe: decimal.NewFromInt(600)},
		{ID: 5, NumOrden: "MAN/001/25/0", Descripcion: "Repuestos caldera", Departamento: "Mantenimiento", Proveedor: "Officemax",
			Estado: "En proceso", Importe: decimal.NewFromInt(80)}, // sin fecha
	}
}

func ids(vs []OrdenVista) []uint {
	res := make([]uint, 0, len(vs))
	for _, v := range vs {
		res = append(res, v.ID)
	}
	return res
}

func TestAplicarConjuncion(t *testing.T) {
	ordenes := fixtureOrdenes()

	cases := []struct {
		nombre   string
		f        Filtro
		esperado []uint
	}{
		{"sin filtros pasa todo", Filtro{}, []uint{1, 2, 3, 4, 5}},
		{"departamento", Filtro{Departamento: "Informática"}, []uint{3, 4}},
		{"departamento y proveedor", Filtro{Departamento: "Compras", Proveedor: "Officemax"}, []uint{1}},
		{"estado", Filtro{Estado: "Anulada"}, []uint{4}},
		{"inventariable", Filtro{Inventariable: FiltroInventariable}, []uint{2, 3}},
		{"no inventariable", Filtro{Inventariable: FiltroNoInventariable}, []uint{1, 4, 5}},
		{"busqueda por descripcion", Filtro{Busqueda: "silla"}, []uint{2}},
		{"busqueda por numero de orden", Filtro{Busqueda: "inf/001"}, []uint{3}},
		{"busqueda por numero de inversion", Filtro{Busqueda: "7000001"}, []uint{3}},
		{"mes y año", Filtro{Mes: "4", Anio: "2025"}, []uint{2, 3}},
		{"solo año", Filtro{Anio: "2024"}, []uint{4}},
		{"conjuncion completa", Filtro{Departamento: "Informática", Inventariable: FiltroInventariable, Anio: "2025"}, []uint{3}},
	}

	for _, tc := range cases {
		got := ids(Aplicar(ordenes, tc.f))
		if !reflect.DeepEqual(got, tc.esperado) {
			t.Fatalf("%s: Aplicar = %v, esperado %v", tc.nombre, got, tc.esperado)
		}
	}
}

func TestAplicarEsIdempotente(t *testing.T) {
	ordenes := fixtureOrdenes()
	f := Filtro{Departamento: "Informática", Anio: "2025"}

	una := Aplicar(ordenes, f)
	dos := Aplicar(una, f)
	if !reflect.DeepEqual(una, dos) {
		t.Fatalf("Aplicar no es idempotente: %v != %v", ids(una), ids(dos))
	}
}

func TestFechaInvalidaConFiltroDeFecha(t *testing.T) {
	ordenes := fixtureOrdenes()

	// La orden 5 no tiene fecha: pasa sin filtro de fecha, falla con él
	got := ids(Aplicar(ordenes, Filtro{Departamento: "Mantenimiento"}))
	if !reflect.DeepEqual(got, []uint{5}) {
		t.Fatalf("sin filtro de fecha = %v", got)
	}
	got = ids(Aplicar(ordenes, Filtro{Departamento: "Mantenimiento", Anio: "2025"}))
	if len(got) != 0 {
		t.Fatalf("con filtro de fecha = %v, esperado vacío", got)
	}
}

func TestProveedoresDisponibles(t *testing.T) {
	ordenes := fixtureOrdenes()
	proveedores := []models.Proveedor{
		{ID: 1, Nombre: "Officemax"},
		{ID: 2, Nombre: "Mobiliaria Ruiz"},
		{ID: 3, Nombre: "TecnoSur"},
		{ID: 4, Nombre: "Sin Órdenes SL"},
	}

	// Con departamento: solo los que coexisten con él
	got := ProveedoresDisponibles(ordenes, proveedores, "Compras")
	if len(got) != 2 || got[0].Nombre != "Officemax" || got[1].Nombre != "Mobiliaria Ruiz" {
		t.Fatalf("proveedores de Compras = %v", got)
	}

	// Sin departamento: los presentes en alguna orden (nunca los huérfanos)
	got = ProveedoresDisponibles(ordenes, proveedores, "")
	if len(got) != 3 {
		t.Fatalf("proveedores sin departamento = %v", got)
	}
}

func TestCambiarDepartamentoReseteaProveedor(t *testing.T) {
	v := NuevaVista()
	v.CambiarDepartamento("Compras")
	v.Filtro.Proveedor = "Officemax"

	v.CambiarDepartamento("Informática")
	if v.Filtro.Proveedor != "" {
		t.Fatalf("el proveedor debe resetearse al cambiar de departamento, quedó %q", v.Filtro.Proveedor)
	}
	if v.Filtro.Departamento != "Informática" {
		t.Fatalf("departamento = %q", v.Filtro.Departamento)
	}
}

func TestDepartamentoFijadoPorRol(t *testing.T) {
	v := NuevaVista()
	v.FijarDepartamento("Compras")

	// El Jefe de Departamento no puede ampliar el ámbito
	v.CambiarDepartamento("Informática")
	if v.Filtro.Departamento != "Compras" {
		t.Fatalf("el departamento fijado no debe cambiar, quedó %q", v.Filtro.Departamento)
	}

	// Limpiar filtros conserva el departamento fijado
	v.Filtro.Proveedor = "Officemax"
	v.Filtro.Anio = "2025"
	v.LimpiarFiltros()
	if v.Filtro.Departamento != "Compras" || v.Filtro.Proveedor != "" || v.Filtro.Anio != "" {
		t.Fatalf("LimpiarFiltros: %+v", v.Filtro)
	}
}

func TestSeleccion(t *testing.T) {
	v := NuevaVista()
	filtrados := []uint{1, 2, 3}

	// Seleccionar todo sobre el conjunto filtrado
	v.AlternarSeleccionTodo(filtrados)
	if got := v.IDsSeleccionados(); !reflect.DeepEqual(got, []uint{1, 2, 3}) {
		t.Fatalf("seleccionar todo = %v", got)
	}

	// Estrechar el filtro no toca la selección: los ocultos siguen marcados
	if !v.Seleccion[3] {
		t.Fatal("la selección debe ser independiente de la visibilidad")
	}

	// Alternar de nuevo con el mismo conjunto la vacía
	v.AlternarSeleccionTodo(filtrados)
	if len(v.Seleccion) != 0 {
		t.Fatalf("la segunda alternancia debe vaciar, quedó %v", v.IDsSeleccionados())
	}

	v.AlternarSeleccion(2)
	v.AlternarSeleccion(5)
	v.AlternarSeleccion(2)
	if got := v.IDsSeleccionados(); !reflect.DeepEqual(got, []uint{5}) {
		t.Fatalf("alternar individual = %v", got)
	}
}

func TestFechasDisponibles(t *testing.T) {
	ordenes := fixtureOrdenes()

	meses, anios := FechasDisponibles(ordenes, Filtro{})
	if !reflect.DeepEqual(meses, []string{"3", "4", "11"}) {
		t.Fatalf("meses = %v", meses)
	}
	if !reflect.DeepEqual(anios, []string{"2024", "2025"}) {
		t.Fatalf("años = %v", anios)
	}

	// Con un año activo solo se ofrecen sus meses
	meses, anios = FechasDisponibles(ordenes, Filtro{Anio: "2024"})
	if !reflect.DeepEqual(meses, []string{"11"}) || !reflect.DeepEqual(anios, []string{"2024"}) {
		t.Fatalf("facetas con año = %v / %v", meses, anios)
	}
}
