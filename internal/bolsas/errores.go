package bolsas

import "errors"

var (
	errCantidadFueraDeRango = errors.New("la cantidad debe estar entre 0 y 200000")
	errSinCantidad          = errors.New("debe indicar al menos una cantidad")
)
