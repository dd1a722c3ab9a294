// Package credentials persists the session's bearer credentials in local
// key-value storage. The session store is the only writer; the storage keys
// are fixed (KeyAccessToken, KeyRefreshToken).
package credentials

import "context"

// Storage keys for the primary and secondary credential.
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
)

// Repository is the injected key-value capability the session store uses for
// durable credential storage. Get returns "" without error for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
