// internal/session/manager.go
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/javajoker/perfume-store/internal/utils"
)

var ErrInvalidToken = errors.New("invalid session token")

// Manager issues signed session tokens backed by a Store entry.
type Manager struct {
	store  Store
	signer *utils.TokenSigner
}

func NewManager(store Store, secret string, ttl time.Duration) *Manager {
	return &Manager{
		store:  store,
		signer: utils.NewTokenSigner(secret, ttl),
	}
}

func (m *Manager) TTL() time.Duration {
	return m.signer.TTL()
}

// Issue starts a session for the user and returns the token to hand out.
func (m *Manager) Issue(ctx context.Context, userID uint, isStaff bool) (string, error) {
	id := uuid.NewString()

	data := Data{UserID: userID, IsStaff: isStaff, CreatedAt: time.Now().UTC()}
	if err := m.store.Create(ctx, id, data, m.signer.TTL()); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	token, err := m.signer.Sign(id, userID, isStaff)
	if err != nil {
		m.store.Delete(ctx, id)
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return token, nil
}

// Resolve checks the signature and that the session is still live.
func (m *Manager) Resolve(ctx context.Context, token string) (*utils.SessionClaims, error) {
	claims, err := m.signer.Parse(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	data, err := m.store.Get(ctx, claims.SessionID)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	if data.UserID != claims.UserID {
		return nil, ErrInvalidToken
	}

	// staff flag follows the stored session, not the token
	claims.IsStaff = data.IsStaff
	return claims, nil
}

// Revoke ends the session behind token. Unknown or malformed tokens are
// ignored.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	claims, err := m.signer.Parse(token)
	if err != nil {
		return nil
	}
	return m.store.Delete(ctx, claims.SessionID)
}
