package orders

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Goblincake/delicatessenV8/internal/numeric"
)

const (
	StatusPending = "pending"
	// StatusFinished is the legacy terminal status still accepted by the
	// generic status update and by analytics.
	StatusFinished  = "finished"
	StatusCompleted = "completed"

	// WalkInCustomer is the label applied when no customer name is given.
	WalkInCustomer = "Cliente Ocasional"

	defaultAssignmentTTL = 30
)

var (
	ErrEmptyOrder     = errors.New("order has no items")
	ErrOrderNotFound  = errors.New("order not found")
	ErrInvalidStatus  = errors.New("invalid status")
	ErrDriverRequired = errors.New("driver required")
	ErrTTLRequired    = errors.New("add_minutes or new_ttl required")
	ErrInvalidTTL     = errors.New("invalid new_ttl")
)

// OrderLine is one validated line inside a stored order. Price duplicates
// PerUnit for consumers that still read the old field name.
type OrderLine struct {
	Quantity  int            `json:"quantity"`
	PerUnit   float64        `json:"per_unit"`
	Price     float64        `json:"price"`
	LineTotal float64        `json:"line_total"`
	Options   map[string]any `json:"options"`
}

// UnmarshalJSON tolerates legacy log entries where a line is a bare number
// meaning quantity-only; those normalize to a zero-priced record.
func (l *OrderLine) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err == nil {
		opts, _ := raw["options"].(map[string]any)
		*l = OrderLine{
			Quantity:  numeric.Int(raw["quantity"], 0),
			PerUnit:   numeric.Float(raw["per_unit"], 0),
			Price:     numeric.Float(raw["price"], 0),
			LineTotal: numeric.Float(raw["line_total"], 0),
			Options:   opts,
		}
		return nil
	}

	var bare any
	if err := json.Unmarshal(data, &bare); err != nil {
		return err
	}
	*l = OrderLine{Quantity: numeric.Int(bare, 0)}
	return nil
}

type Order struct {
	ID          int                  `json:"id"`
	Code        string               `json:"code"`
	Timestamp   string               `json:"timestamp"`
	Customer    string               `json:"customer"`
	Address     string               `json:"address"`
	Items       map[string]OrderLine `json:"items"`
	Notes       string               `json:"notes"`
	Total       float64              `json:"total"`
	Status      string               `json:"status"`
	Driver      string               `json:"driver,omitempty"`
	AssignedAt  string               `json:"assigned_at,omitempty"`
	AssignedTTL *int                 `json:"assigned_ttl,omitempty"`
	FinishedAt  string               `json:"finished_at,omitempty"`
}

// CodeFor derives the printable order code from an order id.
func CodeFor(id int) string {
	return fmt.Sprintf("P%03d", id)
}

// Completed reports whether the order counts as completed for analytics,
// accepting the legacy finished status.
func (o Order) Completed() bool {
	return o.Status == StatusCompleted || o.Status == StatusFinished
}
