package ports

import (
	"context"

	"github.com/hyrosy/tripdesk/internal/domain"
)

// SessionStore persists the single authenticated session across runs.
// Load returns domain.ErrSessionNotFound when no usable session exists;
// a malformed or incomplete persisted record reads as absent, never as a
// decode error.
type SessionStore interface {
	Load(ctx context.Context) (domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
	Clear(ctx context.Context) error
}
