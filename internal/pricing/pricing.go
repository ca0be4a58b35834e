package pricing

import (
	"encoding/json"

	"github.com/Goblincake/delicatessenV8/internal/menu"
	"github.com/Goblincake/delicatessenV8/internal/numeric"
)

// ErrItemNotFound is the breakdown error flag for unresolvable items. The
// engine never fails on unknown items; it prices them at zero and flags
// the result instead.
const ErrItemNotFound = "item-not-found"

type AppliedModifier struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Delta float64 `json:"delta"`
}

// Breakdown explains how a line total was computed. Quantity echoes the
// caller's raw value even when it is zero or negative; only the line total
// clamps it to a minimum of 1.
type Breakdown struct {
	Err       string            `json:"error,omitempty"`
	Base      float64           `json:"base"`
	Modifiers []AppliedModifier `json:"modifiers"`
	PerUnit   float64           `json:"per_unit"`
	Quantity  int               `json:"quantity"`
	LineTotal float64           `json:"line_total"`
}

// MarshalJSON keeps a flagged breakdown to the error key alone, so the
// zero prices never read as computed values.
func (b Breakdown) MarshalJSON() ([]byte, error) {
	if b.Err != "" {
		return json.Marshal(map[string]string{"error": b.Err})
	}
	type plain Breakdown
	return json.Marshal(plain(b))
}

// Quote resolves an item reference plus a quantity/options payload into a
// line total, per-unit price and breakdown. Pure function over the catalog
// and the request; it never fails, degrading to a zero-priced flagged
// result on unknown items.
func Quote(catalog menu.Catalog, itemName string, req LineRequest) (lineTotal, perUnit float64, bd Breakdown) {
	item, ok := catalog.Find(itemName)
	if !ok && req.Structured && req.OriginalName != "" {
		// the UI may send a display-renamed key; retry with the
		// canonical name it carries
		item, ok = catalog.Find(req.OriginalName)
	}
	if !ok {
		return 0, 0, Breakdown{Err: ErrItemNotFound}
	}

	qty := req.quantity()
	perUnit = item.Price
	bd = Breakdown{Base: item.Price, Modifiers: []AppliedModifier{}}

	for _, mod := range item.Modifiers {
		if mod.ID == "" || mod.Kind != menu.ModifierToggle {
			continue
		}
		if !numeric.Truthy(req.Options[mod.ID]) {
			continue
		}
		perUnit += mod.PriceDelta
		bd.Modifiers = append(bd.Modifiers, AppliedModifier{
			ID:    mod.ID,
			Label: mod.Label,
			Delta: mod.PriceDelta,
		})
	}

	lineTotal = perUnit * float64(max(qty, 1))
	bd.PerUnit = perUnit
	bd.Quantity = qty
	bd.LineTotal = lineTotal
	return lineTotal, perUnit, bd
}
