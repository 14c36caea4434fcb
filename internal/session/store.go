// internal/session/store.go
package session

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("session not found")

// Data is what the server keeps per live session.
type Data struct {
	UserID    uint      `json:"user_id"`
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
}

// Store keeps live sessions. A session missing from the store is revoked
// even when the cookie carrying its id is still validly signed.
type Store interface {
	Create(ctx context.Context, id string, data Data, ttl time.Duration) error
	Get(ctx context.Context, id string) (*Data, error)
	Delete(ctx context.Context, id string) error
}
