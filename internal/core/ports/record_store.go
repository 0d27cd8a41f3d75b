// Package ports defines the contracts between the point-of-sale core and its
// infrastructure: persistence, printing and event publishing.
package ports

import "context"

// Record keys used by the repositories.
const (
	ProductsKey   = "products"
	OrdersKey     = "orders"
	CategoriesKey = "categories"
)

// RecordStore reads and writes named records. A record is an opaque byte
// value; the repositories store JSON in it.
type RecordStore interface {
	// Get returns the value stored under key. found is false when the key
	// has never been written or was deleted.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
