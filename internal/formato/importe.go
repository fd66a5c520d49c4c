package formato

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// ImporteFlexible es un decimal que acepta en JSON tanto números como cadenas
// con coma decimal ("1.234,56"), el formato con el que llegan los importes de
// los formularios.
type ImporteFlexible struct {
	decimal.Decimal
}

func (i *ImporteFlexible) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		i.Decimal = decimal.Zero
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var texto string
		if err := json.Unmarshal(data, &texto); err != nil {
			return err
		}
		d, err := ParsearImporte(texto)
		if err != nil {
			return err
		}
		i.Decimal = d
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return err
	}
	i.Decimal = d
	return nil
}

func (i ImporteFlexible) MarshalJSON() ([]byte, error) {
	return i.Decimal.MarshalJSON()
}
