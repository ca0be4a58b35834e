package pricing

import (
	"encoding/json"

	"github.com/Goblincake/delicatessenV8/internal/numeric"
)

// LineRequest is the boundary shape of one order line. Clients send either
// a bare number (quantity only) or an object carrying quantity, toggle
// options and optionally the canonical catalog name when the display key
// was renamed. Both forms normalize into this one record before any engine
// logic runs.
type LineRequest struct {
	// Structured is true when the payload was an object rather than a
	// bare value.
	Structured bool
	// Quantity holds the raw decoded value as sent; coercion happens at
	// use sites so the breakdown can echo the caller's value untouched.
	Quantity     any
	Options      map[string]any
	OriginalName string
}

func (r *LineRequest) UnmarshalJSON(data []byte) error {
	var obj struct {
		Quantity     any            `json:"quantity"`
		Options      map[string]any `json:"options"`
		OriginalName string         `json:"original_name"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		*r = LineRequest{
			Structured:   true,
			Quantity:     obj.Quantity,
			Options:      obj.Options,
			OriginalName: obj.OriginalName,
		}
		return nil
	}

	var bare any
	if err := json.Unmarshal(data, &bare); err != nil {
		return err
	}
	*r = LineRequest{Quantity: bare}
	return nil
}

// BareQuantity builds the bare-number form programmatically.
func BareQuantity(n int) LineRequest {
	return LineRequest{Quantity: n}
}

// quantity applies the original extraction rules: structured records treat
// a missing or falsy quantity as 1, bare values coerce with fallback 1 and
// keep a literal 0.
func (r LineRequest) quantity() int {
	if r.Structured && !numeric.Truthy(r.Quantity) {
		return 1
	}
	return numeric.Int(r.Quantity, 1)
}
