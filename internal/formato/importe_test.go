package formato

import (
	"encoding/json"
	"testing"
)

func TestImporteFlexibleUnmarshal(t *testing.T) {
	casos := []struct {
		nombre      string
		entrada     string
		esperado    string
		quiereError bool
	}{
		{"número", `{"importe": 1234.56}`, "1234.56", false},
		{"entero", `{"importe": 500}`, "500", false},
		{"cadena con coma", `{"importe": "1.234,56"}`, "1234.56", false},
		{"cadena con punto", `{"importe": "99.95"}`, "99.95", false},
		{"cadena vacía", `{"importe": ""}`, "0", false},
		{"null", `{"importe": null}`, "0", false},
		{"texto no numérico", `{"importe": "abc"}`, "", true},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			var cuerpo struct {
				Importe ImporteFlexible `json:"importe"`
			}
			err := json.Unmarshal([]byte(c.entrada), &cuerpo)
			if c.quiereError {
				if err == nil {
					t.Fatalf("se esperaba error para %s", c.entrada)
				}
				return
			}
			if err != nil {
				t.Fatalf("error inesperado: %v", err)
			}
			if cuerpo.Importe.String() != c.esperado {
				t.Fatalf("importe = %s, se esperaba %s", cuerpo.Importe.String(), c.esperado)
			}
		})
	}
}
