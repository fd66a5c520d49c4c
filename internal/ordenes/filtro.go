package ordenes

import (
	"sort"
	"strconv"
	"strings"

	"wasabi-backend/internal/formato"
	"wasabi-backend/internal/models"
)

// Valores del filtro inventariable (tercer estado: cadena vacía = todos).
const (
	FiltroInventariable   = "inventariable"
	FiltroNoInventariable = "no-inventariable"
)

// Filtro es el estado de filtrado de la vista de órdenes. Un campo vacío no
// restringe; una orden pasa si satisface la conjunción de los campos activos.
type Filtro struct {
	Busqueda      string `json:"busqueda"`
	Departamento  string `json:"departamento"`
	Proveedor     string `json:"proveedor"`
	Inventariable string `json:"inventariable"`
	Estado        string `json:"estado"`
	Mes           string `json:"mes"`
	Anio          string `json:"año"`
}

func (f Filtro) pasa(o OrdenVista) bool {
	if f.Busqueda != "" {
		q := strings.ToLower(f.Busqueda)
		numInv := ""
		if o.NumInversion != nil {
			numInv = strconv.FormatInt(*o.NumInversion, 10)
		}
		if !strings.Contains(strings.ToLower(o.NumOrden), q) &&
			!strings.Contains(strings.ToLower(o.Descripcion), q) &&
			!strings.Contains(numInv, q) {
			return false
		}
	}

	if f.Departamento != "" && o.Departamento != f.Departamento {
		return false
	}
	if f.Proveedor != "" && o.Proveedor != f.Proveedor {
		return false
	}
	if f.Estado != "" && o.Estado != f.Estado {
		return false
	}

	switch f.Inventariable {
	case FiltroInventariable:
		if !o.Inventariable {
			return false
		}
	case FiltroNoInventariable:
		if o.Inventariable {
			return false
		}
	}

	// Los filtros de fecha exigen una fecha válida; sin filtro de fecha una
	// orden sin fecha pasa.
	if f.Mes != "" || f.Anio != "" {
		mes, anio := formato.PartesFecha(o.Fecha)
		if mes == "" {
			return false
		}
		if f.Mes != "" && mes != f.Mes {
			return false
		}
		if f.Anio != "" && anio != f.Anio {
			return false
		}
	}

	return true
}

// Aplicar es pura e idempotente; se puede recalcular en cada cambio de estado.
func Aplicar(ordenes []OrdenVista, f Filtro) []OrdenVista {
	res := make([]OrdenVista, 0, len(ordenes))
	for _, o := range ordenes {
		if f.pasa(o) {
			res = append(res, o)
		}
	}
	return res
}

// ProveedoresDisponibles limita las opciones de proveedor a los que coexisten
// con el departamento seleccionado en al menos una orden; sin departamento,
// a los que aparecen en alguna orden.
func ProveedoresDisponibles(ordenes []OrdenVista, proveedores []models.Proveedor, departamento string) []models.Proveedor {
	enOrdenes := make(map[string]bool)
	for _, o := range ordenes {
		if departamento == "" || o.Departamento == departamento {
			enOrdenes[o.Proveedor] = true
		}
	}

	res := make([]models.Proveedor, 0, len(proveedores))
	for _, p := range proveedores {
		if enOrdenes[p.Nombre] {
			res = append(res, p)
		}
	}
	return res
}

// FechasDisponibles devuelve los meses y años presentes en las órdenes que
// pasan los filtros de fecha actuales, ordenados numéricamente.
func FechasDisponibles(ordenes []OrdenVista, f Filtro) (meses, anios []string) {
	vistosMes := make(map[string]bool)
	vistosAnio := make(map[string]bool)

	for _, o := range ordenes {
		mes, anio := formato.PartesFecha(o.Fecha)
		if mes == "" {
			continue
		}
		if f.Mes != "" && mes != f.Mes {
			continue
		}
		if f.Anio != "" && anio != f.Anio {
			continue
		}
		if !vistosMes[mes] {
			vistosMes[mes] = true
			meses = append(meses, mes)
		}
		if !vistosAnio[anio] {
			vistosAnio[anio] = true
			anios = append(anios, anio)
		}
	}

	ordenarNumerico(meses)
	ordenarNumerico(anios)
	return meses, anios
}

func ordenarNumerico(vals []string) {
	sort.Slice(vals, func(i, j int) bool {
		a, _ := strconv.Atoi(vals[i])
		b, _ := strconv.Atoi(vals[j])
		return a < b
	})
}

// Vista agrupa el estado de filtro y selección de la página de órdenes. Las
// transiciones son métodos puros sobre el estado (evento -> nuevo estado) para
// que el motor de filtrado sea verificable sin UI.
type Vista struct {
	Filtro    Filtro
	Seleccion map[uint]bool

	// Departamento fijado por rol (Jefe de Departamento): el selector queda
	// bloqueado y LimpiarFiltros lo conserva.
	departamentoFijado string
}

func NuevaVista() *Vista {
	return &Vista{Seleccion: make(map[uint]bool)}
}

func (v *Vista) FijarDepartamento(departamento string) {
	v.departamentoFijado = departamento
	v.Filtro.Departamento = departamento
	v.Filtro.Proveedor = ""
}

// CambiarDepartamento cambia el filtro y resetea el proveedor: la selección de
// proveedor no sobrevive a un cambio de departamento. Con departamento fijado
// por rol el cambio se ignora.
func (v *Vista) CambiarDepartamento(departamento string) {
	if v.departamentoFijado != "" {
		return
	}
	v.Filtro.Departamento = departamento
	v.Filtro.Proveedor = ""
}

func (v *Vista) AlternarSeleccion(id uint) {
	if v.Seleccion[id] {
		delete(v.Seleccion, id)
		return
	}
	v.Seleccion[id] = true
}

// AlternarSeleccionTodo alterna entre la selección vacía y el conjunto de ids
// filtrado completo. La selección es independiente de la visibilidad: ids
// seleccionados y luego ocultados por un filtro siguen seleccionados.
func (v *Vista) AlternarSeleccionTodo(idsFiltrados []uint) {
	if len(v.Seleccion) == len(idsFiltrados) && len(idsFiltrados) > 0 {
		v.Seleccion = make(map[uint]bool)
		return
	}
	v.Seleccion = make(map[uint]bool, len(idsFiltrados))
	for _, id := range idsFiltrados {
		v.Seleccion[id] = true
	}
}

func (v *Vista) LimpiarFiltros() {
	v.Filtro = Filtro{Departamento: v.departamentoFijado}
	v.Seleccion = make(map[uint]bool)
}

// IDsSeleccionados devuelve la selección en orden estable.
func (v *Vista) IDsSeleccionados() []uint {
	ids := make([]uint, 0, len(v.Seleccion))
	for id := range v.Seleccion {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
