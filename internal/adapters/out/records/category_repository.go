package records

import (
	"context"

	"pos/internal/core/domain/model/catalog"
	"pos/internal/core/ports"
	"pos/internal/pkg/errs"
)

var _ ports.CategoryRepository = (*CategoryRepository)(nil)

type CategoryRepository struct {
	store ports.RecordStore
}

func NewCategoryRepository(store ports.RecordStore) *CategoryRepository {
	return &CategoryRepository{store: store}
}

// GetAll returns the stored categories, or catalog.DefaultCategories when the
// "categories" record is missing or empty.
func (r *CategoryRepository) GetAll(ctx context.Context) ([]catalog.Category, error) {
	list, err := loadList[CategoryRecord](ctx, r.store, ports.CategoriesKey)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return catalog.DefaultCategories(), nil
	}

	out := make([]catalog.Category, 0, len(list))
	for _, rec := range list {
		c, err := categoryToDomain(rec)
		if err != nil {
			return nil, errs.NewPersistenceFailureError("decode category "+rec.ID, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// Save replaces the stored category list.
func (r *CategoryRepository) Save(ctx context.Context, categories []catalog.Category) error {
	list := make([]CategoryRecord, 0, len(categories))
	for _, c := range categories {
		if err := c.Validate(); err != nil {
			return err
		}
		list = append(list, CategoryFromDomain(c))
	}
	return saveList(ctx, r.store, ports.CategoriesKey, list)
}
