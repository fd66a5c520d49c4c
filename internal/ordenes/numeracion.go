package ordenes

import (
	"fmt"
	"strconv"
	"strings"
)

// Numeración derivada de órdenes e inversiones. La secuencia se calcula sobre
// la lista de órdenes cargada en memoria: dos altas partiendo de la misma foto
// pueden producir el mismo código, y no hay índice único que lo impida.

// CodigoDepartamento son las 3 primeras letras del nombre, en mayúsculas.
// Dos departamentos que compartan prefijo no se desambiguan.
func CodigoDepartamento(nombre string) string {
	r := []rune(strings.TrimSpace(nombre))
	if len(r) > 3 {
		r = r[:3]
	}
	return strings.ToUpper(string(r))
}

// SiguienteSecuencia devuelve 1 si ninguna orden lleva el prefijo del
// departamento; si no, el máximo del segmento numérico central más uno.
func SiguienteSecuencia(codigoDep string, ordenes []OrdenVista) int {
	max := 0
	encontrada := false
	for _, o := range ordenes {
		partes := strings.Split(o.NumOrden, "/")
		if len(partes) < 2 || partes[0] != codigoDep {
			continue
		}
		encontrada = true
		n, err := strconv.Atoi(partes[1])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	if !encontrada {
		return 1
	}
	return max + 1
}

// GenerarNumeroOrden produce el código DEP/SEQ/AA/F, donde F es 1 si la orden
// es inventariable. Solo se usa en modo alta; la edición conserva el código
// original.
func GenerarNumeroOrden(departamento string, inventariable bool, anio int, ordenes []OrdenVista) string {
	if strings.TrimSpace(departamento) == "" {
		return ""
	}

	codigo := CodigoDepartamento(departamento)
	secuencia := SiguienteSecuencia(codigo, ordenes)

	flag := "0"
	if inventariable {
		flag = "1"
	}

	return fmt.Sprintf("%s/%03d/%02d/%s", codigo, secuencia, anio%100, flag)
}

// GenerarNumeroInversion concatena el id del departamento con una secuencia de
// 6 dígitos: la cuenta de órdenes del departamento que ya llevan número de
// inversión, más uno.
func GenerarNumeroInversion(idDepartamento uint, departamento string, ordenes []OrdenVista) int64 {
	cuenta := 0
	for _, o := range ordenes {
		if o.Departamento == departamento && o.NumInversion != nil {
			cuenta++
		}
	}

	numero, err := strconv.ParseInt(fmt.Sprintf("%d%06d", idDepartamento, cuenta+1), 10, 64)
	if err != nil {
		return 0
	}
	return numero
}
