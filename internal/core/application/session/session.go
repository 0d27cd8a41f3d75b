package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"pos/internal/core/application/usecases/commands"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
	"pos/internal/pkg/errs"
)

// Session is the controller for one terminal. The current order is either a
// stored active order opened for editing or a new order that exists only here
// until its first save. Edits to a stored order stay local until the next
// save, which happens on Save, before a transition and when switching away.
//
// Example:
//
//	s, err := session.New(deps, session.Config{TaxRate: rate, MaxLocations: 14}, logger)
//	loc, _ := kernel.ParseLocationID("mesa_3")
//	if _, err := s.SelectLocation(ctx, loc); err != nil {
//	    return err
//	}
//	_, _ = s.AddItem(ctx, productID)
//	_, _ = s.Save(ctx)
type Session struct {
	mu      sync.Mutex
	deps    Dependencies
	cfg     Config
	logger  *slog.Logger
	current *order.Order
	// dirty marks edits to a stored current order that were not saved yet.
	dirty bool
}

func New(deps Dependencies, cfg Config, logger *slog.Logger) (*Session, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if cfg.MaxLocations <= 0 {
		cfg.MaxLocations = kernel.DefaultMaxLocationIndex
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Session{
		deps:   deps,
		cfg:    cfg,
		logger: logger.With("component", "Session"),
	}, nil
}

// Current returns the order being edited.
func (s *Session) Current() (order.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return order.Snapshot{}, false
	}
	return s.current.Snapshot(), true
}

// SelectLocation opens loc. The active order stored for loc is resumed for
// editing; a location without one gets a fresh empty order and is marked
// occupied. Leaving an order that was never saved discards it and frees its
// location. Leaving a stored order with pending edits saves them first; if
// that save fails the session stays on the current order.
func (s *Session) SelectLocation(ctx context.Context, loc kernel.Location) (order.Snapshot, error) {
	if err := s.checkLocation(loc); err != nil {
		return order.Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && s.current.IsAt(loc) {
		return s.current.Snapshot(), nil
	}

	stored, err := s.deps.Orders.GetActiveByLocation(ctx, loc)
	switch {
	case err == nil:
		if err := s.leave(ctx); err != nil {
			return order.Snapshot{}, err
		}
		s.setCurrent(stored)
		s.deps.Registry.MarkOccupied(loc)
		s.logger.Info("resumed order", "order_id", stored.ID().String(), "location", loc.ID())
		return stored.Snapshot(), nil
	case !errors.Is(err, errs.ErrObjectNotFound):
		return order.Snapshot{}, err
	}

	o, err := order.NewOrder(loc, s.cfg.TaxRate, s.cfg.Now())
	if err != nil {
		return order.Snapshot{}, err
	}
	if err := s.leave(ctx); err != nil {
		return order.Snapshot{}, err
	}
	s.setCurrent(o)
	s.deps.Registry.MarkOccupied(loc)
	return o.Snapshot(), nil
}

// StartNewOrder opens a fresh order on loc and fails with LocationOccupied
// when loc already holds an order, including one this session is editing.
func (s *Session) StartNewOrder(ctx context.Context, loc kernel.Location) (order.Snapshot, error) {
	if err := s.checkLocation(loc); err != nil {
		return order.Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.deps.Registry.Claim(loc) {
		return order.Snapshot{}, errs.NewLocationOccupiedError(loc.ID())
	}

	// The registry may lag behind the store until the next rebuild.
	_, err := s.deps.Orders.GetActiveByLocation(ctx, loc)
	switch {
	case err == nil:
		return order.Snapshot{}, errs.NewLocationOccupiedError(loc.ID())
	case !errors.Is(err, errs.ErrObjectNotFound):
		s.deps.Registry.MarkFree(loc)
		return order.Snapshot{}, err
	}

	o, err := order.NewOrder(loc, s.cfg.TaxRate, s.cfg.Now())
	if err != nil {
		s.deps.Registry.MarkFree(loc)
		return order.Snapshot{}, err
	}
	if err := s.leave(ctx); err != nil {
		s.deps.Registry.MarkFree(loc)
		return order.Snapshot{}, err
	}
	s.setCurrent(o)
	return o.Snapshot(), nil
}

// AddItem adds one unit of the product. Products without stock are skipped
// and the order is returned unchanged.
func (s *Session) AddItem(ctx context.Context, productID kernel.UUID) (order.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return order.Snapshot{}, ErrNoOrderSelected
	}
	p, err := s.deps.Catalog.Product(ctx, productID)
	if err != nil {
		return order.Snapshot{}, err
	}
	added, err := s.current.AddItem(p, s.cfg.Now())
	if err != nil {
		return order.Snapshot{}, err
	}
	if !added {
		s.logger.Debug("product out of stock", "product_id", productID.String(), "name", p.Name())
	} else {
		s.dirty = true
	}
	return s.current.Snapshot(), nil
}

func (s *Session) ChangeQuantity(_ context.Context, productID kernel.UUID, delta int) (order.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return order.Snapshot{}, ErrNoOrderSelected
	}
	if err := s.current.ChangeQuantity(productID, delta, s.cfg.Now()); err != nil {
		return order.Snapshot{}, err
	}
	if delta != 0 {
		s.dirty = true
	}
	return s.current.Snapshot(), nil
}

// Save stores the current order. The first save assigns its identifier.
func (s *Session) Save(ctx context.Context) (order.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return order.Snapshot{}, ErrNoOrderSelected
	}
	if err := s.save(ctx); err != nil {
		return order.Snapshot{}, err
	}
	return s.current.Snapshot(), nil
}

// PrintKitchenTicket sends the ticket and, once it was accepted, flags the
// order so its items can no longer be removed. The flag is persisted.
//
// The kitchen cannot take a ticket back, so when the send succeeds but the
// save fails the flag stays set on the current order and the error is
// returned. The flag is written with the next successful save.
func (s *Session) PrintKitchenTicket(ctx context.Context) (order.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return order.Snapshot{}, ErrNoOrderSelected
	}
	if s.current.IsEmpty() {
		return order.Snapshot{}, errs.NewValueIsRequiredError("order items")
	}
	if err := s.deps.Kitchen.SendKitchenTicket(ctx, s.current.Snapshot()); err != nil {
		return order.Snapshot{}, err
	}
	if err := s.current.MarkKitchenTicketPrinted(s.cfg.Now()); err != nil {
		return order.Snapshot{}, err
	}
	s.dirty = true
	if err := s.save(ctx); err != nil {
		return order.Snapshot{}, err
	}
	return s.current.Snapshot(), nil
}

func (s *Session) PrintReceipt(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return ErrNoOrderSelected
	}
	if s.current.IsEmpty() {
		return errs.NewValueIsRequiredError("order items")
	}
	return s.deps.Receipts.PrintReceipt(ctx, s.current.Snapshot())
}

// Transition moves a stored order to target. When it is the current order its
// pending edits are saved first, the session follows it, and lets go of it
// once it is terminal.
func (s *Session) Transition(ctx context.Context, orderID kernel.UUID, target order.Status) (order.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.transition(ctx, orderID, target)
}

// TransitionCurrent saves the current order if it was never stored or has
// pending edits and then moves it to target.
func (s *Session) TransitionCurrent(ctx context.Context, target order.Status) (order.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return order.Snapshot{}, ErrNoOrderSelected
	}
	if err := s.current.ValidateTransition(target); err != nil {
		return order.Snapshot{}, err
	}
	if !s.current.IsPersisted() {
		if err := s.save(ctx); err != nil {
			return order.Snapshot{}, err
		}
	}
	return s.transition(ctx, s.current.ID(), target)
}

// Clear leaves the current order without saving. An order that was never
// saved is discarded and its location freed; pending edits to a stored order
// are dropped and the stored copy stays as it was.
func (s *Session) Clear(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.discardUnsaved()
	s.setCurrent(nil)
}

// RebuildOccupancy recomputes the registry from stored orders. The location
// of an unsaved current order stays occupied. Orders are read under the
// session lock so a transition cannot commit between the read and the
// rebuild.
func (s *Session) RebuildOccupancy(ctx context.Context) ([]kernel.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.deps.Orders.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	s.deps.Registry.Rebuild(orders)
	if s.current != nil && !s.current.IsPersisted() {
		if loc, ok := s.current.Location(); ok {
			s.deps.Registry.MarkOccupied(loc)
		}
	}
	return s.deps.Registry.Occupied(), nil
}

// LocationStatus is one cell of the location board.
type LocationStatus struct {
	Location kernel.Location
	Occupied bool
	Current  bool
}

// Locations lists every location of typ up to the configured maximum.
func (s *Session) Locations(typ kernel.LocationType) ([]LocationStatus, error) {
	if err := typ.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all := kernel.AllLocations(typ, s.cfg.MaxLocations)
	out := make([]LocationStatus, 0, len(all))
	for _, loc := range all {
		out = append(out, LocationStatus{
			Location: loc,
			Occupied: s.deps.Registry.IsOccupied(loc),
			Current:  s.current != nil && s.current.IsAt(loc),
		})
	}
	return out, nil
}

func (s *Session) save(ctx context.Context) error {
	cmd, err := commands.NewSaveOrderCommand(s.current)
	if err != nil {
		return err
	}
	id, err := s.deps.Saver.Handle(ctx, cmd)
	if err != nil {
		return err
	}
	s.dirty = false
	s.logger.Info("order saved", "order_id", id.String(), "location", s.current.Snapshot().LocationName())
	return nil
}

func (s *Session) transition(ctx context.Context, orderID kernel.UUID, target order.Status) (order.Snapshot, error) {
	cmd, err := commands.NewTransitionOrderCommand(orderID, target, s.cfg.Now())
	if err != nil {
		return order.Snapshot{}, err
	}

	editing := s.isCurrent(orderID)
	if editing && s.dirty {
		if err := s.current.ValidateTransition(target); err != nil {
			return order.Snapshot{}, err
		}
		if err := s.save(ctx); err != nil {
			return order.Snapshot{}, err
		}
	}

	snapshot, err := s.deps.Transitioner.Handle(ctx, cmd)
	if err != nil {
		return order.Snapshot{}, err
	}

	if editing {
		if target.IsTerminal() {
			s.setCurrent(nil)
		} else if err := s.reloadCurrent(ctx); err != nil {
			return order.Snapshot{}, err
		}
	}

	s.logger.Info("order status changed", "order_id", orderID.String(), "status", target.String())
	return snapshot, nil
}

func (s *Session) reloadCurrent(ctx context.Context) error {
	o, err := s.deps.Orders.Get(ctx, s.current.ID())
	if err != nil {
		return err
	}
	s.setCurrent(o)
	return nil
}

func (s *Session) isCurrent(orderID kernel.UUID) bool {
	return s.current != nil && s.current.IsPersisted() && s.current.ID().IsEqual(orderID)
}

func (s *Session) setCurrent(o *order.Order) {
	s.current = o
	s.dirty = false
}

// leave lets go of the current order before another one is opened.
func (s *Session) leave(ctx context.Context) error {
	if s.current == nil {
		return nil
	}
	if !s.current.IsPersisted() {
		s.discardUnsaved()
		return nil
	}
	if s.dirty {
		if err := s.save(ctx); err != nil {
			return err
		}
	}
	s.setCurrent(nil)
	return nil
}

func (s *Session) discardUnsaved() {
	if s.current == nil || s.current.IsPersisted() {
		return
	}
	if loc, ok := s.current.Location(); ok {
		s.deps.Registry.MarkFree(loc)
	}
	s.setCurrent(nil)
}

func (s *Session) checkLocation(loc kernel.Location) error {
	if err := loc.Validate(); err != nil {
		return err
	}
	if loc.Index() > s.cfg.MaxLocations {
		return errs.NewValueIsOutOfRangeError("location", loc.Index(), 1, s.cfg.MaxLocations)
	}
	return nil
}
