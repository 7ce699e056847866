package ports

import "context"

// KeyValueStore is durable string storage. Both operations may fail when the
// backing medium is unavailable; callers treat a failed Get as "absent" and a
// failed Set as a no-op.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}
