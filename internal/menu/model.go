package menu

import (
	"encoding/json"

	"github.com/Goblincake/delicatessenV8/internal/numeric"
)

// ModifierToggle is the only modifier kind that affects pricing. Other
// kinds (choice, multiple) are accepted in catalog data but currently
// never change the unit price.
const ModifierToggle = "toggle"

type Modifier struct {
	ID         string  `json:"id"`
	Label      string  `json:"label"`
	Kind       string  `json:"type"`
	PriceDelta float64 `json:"price_delta"`
	Default    bool    `json:"default"`
}

type MenuItem struct {
	Price     float64    `json:"price"`
	Cost      float64    `json:"cost"`
	CostPrice *float64   `json:"cost_price,omitempty"`
	Modifiers []Modifier `json:"modifiers,omitempty"`
}

// UnitCost resolves the item's built-in unit cost, preferring the explicit
// cost_price field over cost.
func (it MenuItem) UnitCost() float64 {
	if it.CostPrice != nil {
		return *it.CostPrice
	}
	return it.Cost
}

// UnmarshalJSON decodes a catalog item tolerantly: unparsable numeric
// fields become 0 and malformed modifier entries are dropped rather than
// failing the whole catalog load.
func (it *MenuItem) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		// bare-number form: the item is just its price
		var price any
		if err2 := json.Unmarshal(data, &price); err2 != nil {
			return err
		}
		*it = MenuItem{Price: numeric.Float(price, 0)}
		return nil
	}

	item := MenuItem{
		Price: numeric.Float(raw["price"], 0),
		Cost:  numeric.Float(raw["cost"], 0),
	}
	if v, ok := raw["cost_price"]; ok {
		cp := numeric.Float(v, 0)
		item.CostPrice = &cp
	}

	if mods, ok := raw["modifiers"].([]any); ok {
		for _, m := range mods {
			entry, ok := m.(map[string]any)
			if !ok {
				continue
			}
			id, _ := entry["id"].(string)
			if id == "" {
				continue
			}
			label, _ := entry["label"].(string)
			kind, _ := entry["type"].(string)
			item.Modifiers = append(item.Modifiers, Modifier{
				ID:         id,
				Label:      label,
				Kind:       kind,
				PriceDelta: numeric.Float(entry["price_delta"], 0),
				Default:    numeric.Truthy(entry["default"]),
			})
		}
	}

	*it = item
	return nil
}
