package repository

import (
	"context"

	"github.com/reklai/harpoon-telescope/internal/domain/entity"
)

// SessionRepository persists the named sessions under a single key.
type SessionRepository interface {
	// LoadSessions returns every stored session in insertion order.
	LoadSessions(ctx context.Context) (entity.SessionList, error)

	// SaveSessions replaces the stored sessions.
	SaveSessions(ctx context.Context, sessions entity.SessionList) error
}
