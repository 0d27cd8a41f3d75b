package records

import (
	"context"
	"encoding/json"
	"errors"

	"pos/internal/core/ports"
	"pos/internal/pkg/errs"
)

// loadList decodes the JSON array stored under key. A missing key is an
// empty list.
func loadList[T any](ctx context.Context, store ports.RecordStore, key string) ([]T, error) {
	raw, found, err := store.Get(ctx, key)
	if err != nil {
		return nil, storeFailure("read "+key, err)
	}
	if !found || len(raw) == 0 {
		return nil, nil
	}

	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, errs.NewPersistenceFailureError("decode "+key, err)
	}
	return out, nil
}

func saveList[T any](ctx context.Context, store ports.RecordStore, key string, list []T) error {
	if list == nil {
		list = []T{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return errs.NewPersistenceFailureError("encode "+key, err)
	}
	if err := store.Set(ctx, key, raw); err != nil {
		return storeFailure("write "+key, err)
	}
	return nil
}

// storeFailure keeps an error the store already reported as a persistence
// failure and wraps anything else.
func storeFailure(operation string, err error) error {
	if errors.Is(err, errs.ErrPersistenceFailure) {
		return err
	}
	return errs.NewPersistenceFailureError(operation, err)
}
