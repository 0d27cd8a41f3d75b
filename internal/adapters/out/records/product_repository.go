package records

import (
	"context"
	"slices"

	"pos/internal/core/domain/model/catalog"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/ports"
	"pos/internal/pkg/errs"
)

var _ ports.ProductRepository = (*ProductRepository)(nil)

// ProductRepository keeps the flat product list in the "products" record.
type ProductRepository struct {
	store ports.RecordStore
}

func NewProductRepository(store ports.RecordStore) *ProductRepository {
	return &ProductRepository{store: store}
}

func (r *ProductRepository) Add(ctx context.Context, product *catalog.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	list, err := loadList[ProductRecord](ctx, r.store, ports.ProductsKey)
	if err != nil {
		return err
	}
	if indexOfProduct(list, product.ID()) >= 0 {
		return errs.NewValueIsInvalidError("product " + product.ID().String() + " already exists")
	}

	return saveList(ctx, r.store, ports.ProductsKey, append(list, ProductFromDomain(product)))
}

func (r *ProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	list, err := loadList[ProductRecord](ctx, r.store, ports.ProductsKey)
	if err != nil {
		return err
	}
	i := indexOfProduct(list, product.ID())
	if i < 0 {
		return errs.NewObjectNotFoundError("product", product.ID().String())
	}

	list[i] = ProductFromDomain(product)
	return saveList(ctx, r.store, ports.ProductsKey, list)
}

func (r *ProductRepository) Delete(ctx context.Context, id kernel.UUID) error {
	list, err := loadList[ProductRecord](ctx, r.store, ports.ProductsKey)
	if err != nil {
		return err
	}
	i := indexOfProduct(list, id)
	if i < 0 {
		return errs.NewObjectNotFoundError("product", id.String())
	}

	return saveList(ctx, r.store, ports.ProductsKey, slices.Delete(list, i, i+1))
}

func (r *ProductRepository) Get(ctx context.Context, id kernel.UUID) (*catalog.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	list, err := loadList[ProductRecord](ctx, r.store, ports.ProductsKey)
	if err != nil {
		return nil, err
	}
	i := indexOfProduct(list, id)
	if i < 0 {
		return nil, errs.NewObjectNotFoundError("product", id.String())
	}
	return decodeProduct(list[i])
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]*catalog.Product, error) {
	list, err := loadList[ProductRecord](ctx, r.store, ports.ProductsKey)
	if err != nil {
		return nil, err
	}

	out := make([]*catalog.Product, 0, len(list))
	for _, rec := range list {
		p, err := decodeProduct(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func decodeProduct(rec ProductRecord) (*catalog.Product, error) {
	p, err := productToDomain(rec)
	if err != nil {
		return nil, errs.NewPersistenceFailureError("decode product "+rec.ID, err)
	}
	return p, nil
}

func indexOfProduct(list []ProductRecord, id kernel.UUID) int {
	return slices.IndexFunc(list, func(rec ProductRecord) bool {
		parsed, err := ParseID(rec.ID)
		return err == nil && parsed.IsEqual(id)
	})
}
