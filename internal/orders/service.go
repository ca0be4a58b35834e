package orders

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Goblincake/delicatessenV8/internal/menu"
	"github.com/Goblincake/delicatessenV8/internal/numeric"
	"github.com/Goblincake/delicatessenV8/internal/pricing"
)

const timestampLayout = "2006-01-02 15:04:05"

// Service owns the order log. Every mutation is a read-modify-write cycle
// over the whole log; the mutex serializes those cycles so concurrent
// callers cannot overwrite each other.
type Service struct {
	mu      sync.Mutex
	store   *Store
	catalog menu.Catalog
	mirror  Mirror
	logger  *logrus.Logger
	now     func() time.Time
}

func NewService(store *Store, catalog menu.Catalog, mirror Mirror, logger *logrus.Logger) *Service {
	return &Service{
		store:   store,
		catalog: catalog,
		mirror:  mirror,
		logger:  logger,
		now:     time.Now,
	}
}

type CreateRequest struct {
	Customer string                         `json:"customer"`
	Address  string                         `json:"address"`
	Notes    string                         `json:"notes"`
	Items    map[string]pricing.LineRequest `json:"items"`
}

// Create validates and prices a raw order request, appends the resulting
// order to the log and mirrors it best-effort.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Order, error) {
	if len(req.Items) == 0 {
		return Order{}, ErrEmptyOrder
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.store.LoadAll()
	id := len(history) + 1

	items := make(map[string]OrderLine, len(req.Items))
	total := 0.0
	for name, details := range req.Items {
		lineTotal, perUnit, bd := pricing.Quote(s.catalog, name, details)
		options := details.Options
		if options == nil {
			options = map[string]any{}
		}
		quantity := bd.Quantity
		if bd.Err != "" {
			// a flagged breakdown carries no quantity; record the line as 1
			quantity = 1
		}
		items[name] = OrderLine{
			Quantity:  quantity,
			PerUnit:   perUnit,
			Price:     perUnit,
			LineTotal: lineTotal,
			Options:   options,
		}
		total += lineTotal
	}

	customer := strings.TrimSpace(req.Customer)
	if customer == "" {
		customer = WalkInCustomer
	}

	order := Order{
		ID:        id,
		Code:      CodeFor(id),
		Timestamp: s.now().Format(timestampLayout),
		Customer:  customer,
		Address:   strings.TrimSpace(req.Address),
		Items:     items,
		Notes:     strings.TrimSpace(req.Notes),
		Total:     total,
		Status:    StatusPending,
	}

	history = append(history, order)
	if err := s.store.SaveAll(history); err != nil {
		return Order{}, err
	}

	if err := s.mirror.RecordOrder(ctx, order); err != nil {
		s.logger.WithError(err).WithField("order", order.Code).Warn("mirror write failed")
	}
	return order, nil
}

// List returns the full order log, oldest first.
func (s *Service) List() []Order {
	return s.store.LoadAll()
}

// Clear empties the order log. The next created order gets id 1 again.
func (s *Service) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.SaveAll([]Order{})
}

// UpdateStatus moves an order between pending and the legacy finished
// status. Leaving pending stamps finished_at; returning to pending clears
// it.
func (s *Service) UpdateStatus(ctx context.Context, orderID int, status string) (Order, error) {
	if status != StatusPending && status != StatusFinished {
		return Order{}, ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.store.LoadAll()
	idx := findOrder(history, orderID)
	if idx < 0 {
		return Order{}, ErrOrderNotFound
	}

	history[idx].Status = status
	if status != StatusPending {
		history[idx].FinishedAt = s.now().Format(timestampLayout)
	} else {
		history[idx].FinishedAt = ""
	}
	if err := s.store.SaveAll(history); err != nil {
		return Order{}, err
	}

	if err := s.mirror.UpdateStatus(ctx, orderID, status); err != nil {
		s.logger.WithError(err).WithField("order_id", orderID).Warn("mirror status update failed")
	}
	return history[idx], nil
}

// Complete unconditionally marks the order completed.
func (s *Service) Complete(ctx context.Context, orderID int) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.store.LoadAll()
	idx := findOrder(history, orderID)
	if idx < 0 {
		return Order{}, ErrOrderNotFound
	}

	history[idx].Status = StatusCompleted
	history[idx].FinishedAt = s.now().Format(timestampLayout)
	if err := s.store.SaveAll(history); err != nil {
		return Order{}, err
	}

	if err := s.mirror.UpdateStatus(ctx, orderID, StatusCompleted); err != nil {
		s.logger.WithError(err).WithField("order_id", orderID).Warn("mirror status update failed")
	}
	return history[idx], nil
}

// AssignDriver sets the courier on an order and starts the delivery timer:
// assigned_at is stamped and the TTL keeps its current value, defaulting
// to 30 minutes when unset.
func (s *Service) AssignDriver(ctx context.Context, orderID int, driver string) error {
	driver = strings.TrimSpace(driver)
	if driver == "" {
		return ErrDriverRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.store.LoadAll()
	idx := findOrder(history, orderID)
	if idx < 0 {
		return ErrOrderNotFound
	}

	history[idx].Driver = driver
	history[idx].AssignedAt = s.now().Format(timestampLayout)
	ttl := currentTTL(history[idx])
	history[idx].AssignedTTL = &ttl
	if err := s.store.SaveAll(history); err != nil {
		return err
	}

	if err := s.mirror.AssignDriver(ctx, orderID, driver); err != nil {
		s.logger.WithError(err).WithField("order_id", orderID).Warn("mirror driver assignment failed")
	}
	return nil
}

// UnassignDriver removes the courier field entirely. Unassigning an order
// with no driver is a no-op success.
func (s *Service) UnassignDriver(ctx context.Context, orderID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.store.LoadAll()
	idx := findOrder(history, orderID)
	if idx < 0 {
		return ErrOrderNotFound
	}

	if history[idx].Driver != "" {
		history[idx].Driver = ""
		if err := s.store.SaveAll(history); err != nil {
			return err
		}
	}

	if err := s.mirror.UnassignDriver(ctx, orderID); err != nil {
		s.logger.WithError(err).WithField("order_id", orderID).Warn("mirror driver unassignment failed")
	}
	return nil
}

// ExtendAssignment adjusts the delivery timer: addMinutes adds to the
// current TTL (itself defaulting to 30), newTTL replaces it outright. At
// least one must be supplied; addMinutes wins when both are. Returns the
// resulting TTL in minutes.
func (s *Service) ExtendAssignment(ctx context.Context, orderID int, addMinutes, newTTL any) (int, error) {
	if addMinutes == nil && newTTL == nil {
		return 0, ErrTTLRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.store.LoadAll()
	idx := findOrder(history, orderID)
	if idx < 0 {
		return 0, ErrOrderNotFound
	}

	current := currentTTL(history[idx])
	if addMinutes != nil {
		current += numeric.Int(addMinutes, 0)
	} else {
		n, ok := numeric.IntOK(newTTL)
		if !ok {
			return 0, ErrInvalidTTL
		}
		current = n
	}

	history[idx].AssignedTTL = &current
	if err := s.store.SaveAll(history); err != nil {
		return 0, err
	}
	return current, nil
}

func findOrder(history []Order, orderID int) int {
	for i := range history {
		if history[i].ID == orderID {
			return i
		}
	}
	return -1
}

func currentTTL(o Order) int {
	if o.AssignedTTL == nil || *o.AssignedTTL == 0 {
		return defaultAssignmentTTL
	}
	return *o.AssignedTTL
}
