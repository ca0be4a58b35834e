package orders

import "context"

// Mirror receives best-effort copies of order mutations for external
// analytics tooling. The order log stays the source of truth: mirror
// failures are logged by the caller and never surface to clients.
type Mirror interface {
	RecordOrder(ctx context.Context, order Order) error
	UpdateStatus(ctx context.Context, orderID int, status string) error
	AssignDriver(ctx context.Context, orderID int, driver string) error
	UnassignDriver(ctx context.Context, orderID int) error
}

type noopMirror struct{}

// NewNoopMirror returns a mirror that drops every write, used when no
// database is configured.
func NewNoopMirror() Mirror {
	return noopMirror{}
}

func (noopMirror) RecordOrder(context.Context, Order) error         { return nil }
func (noopMirror) UpdateStatus(context.Context, int, string) error  { return nil }
func (noopMirror) AssignDriver(context.Context, int, string) error  { return nil }
func (noopMirror) UnassignDriver(context.Context, int) error        { return nil }
