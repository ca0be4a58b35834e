package orders

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Goblincake/delicatessenV8/internal/menu"
	"github.com/Goblincake/delicatessenV8/internal/pricing"
)

type failingMirror struct{}

var errMirrorDown = errors.New("mirror down")

func (failingMirror) RecordOrder(context.Context, Order) error        { return errMirrorDown }
func (failingMirror) UpdateStatus(context.Context, int, string) error { return errMirrorDown }
func (failingMirror) AssignDriver(context.Context, int, string) error { return errMirrorDown }
func (failingMirror) UnassignDriver(context.Context, int) error       { return errMirrorDown }

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestService(t *testing.T, mirror Mirror) *Service {
	t.Helper()
	catalog, err := menu.Load("")
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}
	store := NewStore(filepath.Join(t.TempDir(), "orders.json"))
	svc := NewService(store, catalog, mirror, quietLogger())
	svc.now = func() time.Time {
		return time.Date(2024, 3, 1, 12, 30, 45, 0, time.Local)
	}
	return svc
}

func TestCreateFirstOrder(t *testing.T) {
	svc := newTestService(t, NewNoopMirror())

	order, err := svc.Create(context.Background(), CreateRequest{
		Items: map[string]pricing.LineRequest{
			"Hamburguesa Simple": pricing.BareQuantity(2),
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if order.ID != 1 || order.Code != "P001" {
		t.Errorf("id/code = %d/%q, want 1/P001", order.ID, order.Code)
	}
	if order.Total != 3600 {
		t.Errorf("total = %v, want 3600", order.Total)
	}
	if order.Status != StatusPending {
		t.Errorf("status = %q, want pending", order.Status)
	}
	if order.Customer != WalkInCustomer {
		t.Errorf("blank customer should default, got %q", order.Customer)
	}
	if order.Timestamp != "2024-03-01 12:30:45" {
		t.Errorf("timestamp = %q", order.Timestamp)
	}

	line := order.Items["Hamburguesa Simple"]
	if line.Quantity != 2 || line.PerUnit != 1800 || line.Price != 1800 || line.LineTotal != 3600 {
		t.Errorf("unexpected line record: %+v", line)
	}

	stored := svc.List()
	if len(stored) != 1 || stored[0].Code != "P001" {
		t.Fatalf("order not persisted: %+v", stored)
	}
}

func TestCreateEmptyOrderFails(t *testing.T) {
	svc := newTestService(t, NewNoopMirror())

	if _, err := svc.Create(context.Background(), CreateRequest{}); !errors.Is(err, ErrEmptyOrder) {
		t.Fatalf("err = %v, want ErrEmptyOrder", err)
	}
	if len(svc.List()) != 0 {
		t.Error("failed create must not persist anything")
	}
}

func TestCreateUnknownItemDegradesToZero(t *testing.T) {
	svc := newTestService(t, NewNoopMirror())

	order, err := svc.Create(context.Background(), CreateRequest{
		Items: map[string]pricing.LineRequest{
			"Plato Fantasma": pricing.BareQuantity(3),
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if order.Total != 0 {
		t.Errorf("unknown item should contribute 0, total = %v", order.Total)
	}
	line := order.Items["Plato Fantasma"]
	if line.Quantity != 1 {
		t.Errorf("unresolved line quantity = %d, want the default 1", line.Quantity)
	}
	if line.PerUnit != 0 || line.LineTotal != 0 {
		t.Errorf("unresolved line should price at zero, got %+v", line)
	}
}

func TestClearHistoryResetsIDCounter(t *testing.T) {
	svc := newTestService(t, NewNoopMirror())
	ctx := context.Background()
	req := CreateRequest{Items: map[string]pricing.LineRequest{"Hamburguesa Simple": pricing.BareQuantity(1)}}

	if _, err := svc.Create(ctx, req); err != nil {
		t.Fatal(err)
	}
	second, err := svc.Create(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	if second.ID != 2 {
		t.Fatalf("second order id = %d, want 2", second.ID)
	}

	if err := svc.Clear(); err != nil {
		t.Fatal(err)
	}
	again, err := svc.Create(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	if again.ID != 1 || again.Code != "P001" {
		t.Errorf("after clear: id/code = %d/%q, want 1/P001", again.ID, again.Code)
	}
}

func TestUpdateStatus(t *testing.T) {
	svc := newTestService(t, NewNoopMirror())
	ctx := context.Background()
	order, err := svc.Create(ctx, CreateRequest{
		Items: map[string]pricing.LineRequest{"Hamburguesa Simple": pricing.BareQuantity(1)},
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.UpdateStatus(ctx, order.ID, "delivered"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("unknown status: err = %v, want ErrInvalidStatus", err)
	}
	if got := svc.List()[0]; got.Status != StatusPending || got.FinishedAt != "" {
		t.Errorf("rejected update must leave order unmodified: %+v", got)
	}

	// completed is reserved for the dedicated complete operation
	if _, err := svc.UpdateStatus(ctx, order.ID, StatusCompleted); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("completed via generic update: err = %v, want ErrInvalidStatus", err)
	}

	updated, err := svc.UpdateStatus(ctx, order.ID, StatusFinished)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != StatusFinished || updated.FinishedAt == "" {
		t.Errorf("finished order should stamp finished_at: %+v", updated)
	}

	back, err := svc.UpdateStatus(ctx, order.ID, StatusPending)
	if err != nil {
		t.Fatal(err)
	}
	if back.FinishedAt != "" {
		t.Errorf("returning to pending should clear finished_at, got %q", back.FinishedAt)
	}

	if _, err := svc.UpdateStatus(ctx, 99, StatusFinished); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("unknown id: err = %v, want ErrOrderNotFound", err)
	}
}

func TestComplete(t *testing.T) {
	svc := newTestService(t, NewNoopMirror())
	ctx := context.Background()
	order, err := svc.Create(ctx, CreateRequest{
		Items: map[string]pricing.LineRequest{"Hamburguesa Simple": pricing.BareQuantity(1)},
	})
	if err != nil {
		t.Fatal(err)
	}

	done, err := svc.Complete(ctx, order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if done.Status != StatusCompleted || done.FinishedAt == "" {
		t.Errorf("complete: %+v", done)
	}

	if _, err := svc.Complete(ctx, 42); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("unknown id: err = %v, want ErrOrderNotFound", err)
	}
}

func TestDriverAssignment(t *testing.T) {
	svc := newTestService(t, NewNoopMirror())
	ctx := context.Background()
	order, err := svc.Create(ctx, CreateRequest{
		Items: map[string]pricing.LineRequest{"Hamburguesa Simple": pricing.BareQuantity(1)},
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.AssignDriver(ctx, order.ID, "   "); !errors.Is(err, ErrDriverRequired) {
		t.Fatalf("blank driver: err = %v, want ErrDriverRequired", err)
	}
	if err := svc.AssignDriver(ctx, 99, "Juan"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("unknown id: err = %v, want ErrOrderNotFound", err)
	}

	if err := svc.AssignDriver(ctx, order.ID, "Juan"); err != nil {
		t.Fatal(err)
	}
	got := svc.List()[0]
	if got.Driver != "Juan" || got.AssignedAt == "" {
		t.Errorf("assignment not recorded: %+v", got)
	}
	if got.AssignedTTL == nil || *got.AssignedTTL != 30 {
		t.Errorf("TTL should default to 30, got %v", got.AssignedTTL)
	}

	// unassign removes the field; doing it again is a no-op success
	if err := svc.UnassignDriver(ctx, order.ID); err != nil {
		t.Fatal(err)
	}
	if got := svc.List()[0]; got.Driver != "" {
		t.Errorf("driver should be removed, got %q", got.Driver)
	}
	if err := svc.UnassignDriver(ctx, order.ID); err != nil {
		t.Fatalf("absent-driver unassign should succeed, got %v", err)
	}
}

func TestExtendAssignment(t *testing.T) {
	svc := newTestService(t, NewNoopMirror())
	ctx := context.Background()
	order, err := svc.Create(ctx, CreateRequest{
		Items: map[string]pricing.LineRequest{"Hamburguesa Simple": pricing.BareQuantity(1)},
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.ExtendAssignment(ctx, order.ID, nil, nil); !errors.Is(err, ErrTTLRequired) {
		t.Fatalf("no params: err = %v, want ErrTTLRequired", err)
	}
	if _, err := svc.ExtendAssignment(ctx, 99, 10.0, nil); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("unknown id: err = %v, want ErrOrderNotFound", err)
	}

	// unset TTL counts as 30 before the addition
	ttl, err := svc.ExtendAssignment(ctx, order.ID, 15.0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if ttl != 45 {
		t.Errorf("30+15 = %d, want 45", ttl)
	}

	// unparsable add_minutes adds nothing
	ttl, err = svc.ExtendAssignment(ctx, order.ID, "soon", nil)
	if err != nil {
		t.Fatal(err)
	}
	if ttl != 45 {
		t.Errorf("unparsable add should keep %d, got %d", 45, ttl)
	}

	ttl, err = svc.ExtendAssignment(ctx, order.ID, nil, 20.0)
	if err != nil {
		t.Fatal(err)
	}
	if ttl != 20 {
		t.Errorf("new_ttl = %d, want 20", ttl)
	}

	if _, err := svc.ExtendAssignment(ctx, order.ID, nil, "whenever"); !errors.Is(err, ErrInvalidTTL) {
		t.Fatalf("bad new_ttl: err = %v, want ErrInvalidTTL", err)
	}
}

func TestMirrorFailuresAreSwallowed(t *testing.T) {
	svc := newTestService(t, failingMirror{})
	ctx := context.Background()

	order, err := svc.Create(ctx, CreateRequest{
		Items: map[string]pricing.LineRequest{"Hamburguesa Simple": pricing.BareQuantity(1)},
	})
	if err != nil {
		t.Fatalf("create must succeed despite mirror failure: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, order.ID, StatusFinished); err != nil {
		t.Fatalf("status update must succeed despite mirror failure: %v", err)
	}
	if err := svc.AssignDriver(ctx, order.ID, "Ana"); err != nil {
		t.Fatalf("assignment must succeed despite mirror failure: %v", err)
	}
	if err := svc.UnassignDriver(ctx, order.ID); err != nil {
		t.Fatalf("unassignment must succeed despite mirror failure: %v", err)
	}
}
