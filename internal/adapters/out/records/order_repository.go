package records

import (
	"context"
	"slices"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
	"pos/internal/core/ports"
	"pos/internal/pkg/errs"
)

var _ ports.OrderRepository = (*OrderRepository)(nil)

// OrderRepository keeps all orders in the "orders" record.
type OrderRepository struct {
	store ports.RecordStore
}

func NewOrderRepository(store ports.RecordStore) *OrderRepository {
	return &OrderRepository{store: store}
}

func (r *OrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if !aggregate.IsPersisted() {
		return errs.NewValueIsRequiredError("order id")
	}

	list, err := loadList[OrderRecord](ctx, r.store, ports.OrdersKey)
	if err != nil {
		return err
	}
	rec := OrderFromSnapshot(aggregate.Snapshot())
	if indexOfOrder(list, aggregate.ID()) >= 0 {
		return errs.NewValueIsInvalidError("order " + rec.ID + " already exists")
	}

	return saveList(ctx, r.store, ports.OrdersKey, append(list, rec))
}

func (r *OrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	list, err := loadList[OrderRecord](ctx, r.store, ports.OrdersKey)
	if err != nil {
		return err
	}
	i := indexOfOrder(list, aggregate.ID())
	if i < 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	list[i] = OrderFromSnapshot(aggregate.Snapshot())
	return saveList(ctx, r.store, ports.OrdersKey, list)
}

func (r *OrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	list, err := loadList[OrderRecord](ctx, r.store, ports.OrdersKey)
	if err != nil {
		return nil, err
	}
	i := indexOfOrder(list, id)
	if i < 0 {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return decodeOrder(list[i])
}

func (r *OrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	return r.find(ctx, func(*order.Order) bool { return true })
}

func (r *OrderRepository) GetAllActive(ctx context.Context) ([]*order.Order, error) {
	return r.find(ctx, func(o *order.Order) bool { return o.Status().IsActive() })
}

func (r *OrderRepository) GetActiveByLocation(ctx context.Context, loc kernel.Location) (*order.Order, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}

	found, err := r.find(ctx, func(o *order.Order) bool {
		return o.Status().IsActive() && o.IsAt(loc)
	})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, errs.NewObjectNotFoundError("active order at location", loc.ID())
	}
	// The newest one wins if a store ever held two.
	return found[len(found)-1], nil
}

func (r *OrderRepository) find(ctx context.Context, keep func(*order.Order) bool) ([]*order.Order, error) {
	list, err := loadList[OrderRecord](ctx, r.store, ports.OrdersKey)
	if err != nil {
		return nil, err
	}

	out := make([]*order.Order, 0, len(list))
	for _, rec := range list {
		o, err := decodeOrder(rec)
		if err != nil {
			return nil, err
		}
		if keep(o) {
			out = append(out, o)
		}
	}
	return out, nil
}

func decodeOrder(rec OrderRecord) (*order.Order, error) {
	o, err := orderToDomain(rec)
	if err != nil {
		return nil, errs.NewPersistenceFailureError("decode order "+rec.ID, err)
	}
	return o, nil
}

func indexOfOrder(list []OrderRecord, id kernel.UUID) int {
	return slices.IndexFunc(list, func(rec OrderRecord) bool {
		parsed, err := ParseID(rec.ID)
		return err == nil && parsed.IsEqual(id)
	})
}
