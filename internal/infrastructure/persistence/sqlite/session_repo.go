package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/reklai/harpoon-telescope/internal/domain/entity"
	"github.com/reklai/harpoon-telescope/internal/domain/repository"
	"github.com/reklai/harpoon-telescope/internal/logging"
)

// SessionsKey is the record holding the saved sessions.
const SessionsKey = "sessions"

type sessionRepo struct {
	kv *KVStore
}

// NewSessionRepository creates a new SQLite-backed session repository.
func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &sessionRepo{kv: NewKVStore(db)}
}

// LoadSessions returns the stored sessions, dropping any that fail validation.
func (r *sessionRepo) LoadSessions(ctx context.Context) (entity.SessionList, error) {
	log := logging.FromContext(ctx)

	raw, ok, err := r.kv.Get(ctx, SessionsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return entity.SessionList{}, nil
	}

	var stored entity.SessionList
	if err := json.Unmarshal(raw, &stored); err != nil {
		log.Warn().Err(err).Msg("discarding unreadable session record")
		return entity.SessionList{}, nil
	}

	sessions := make(entity.SessionList, 0, len(stored))
	for i := range stored {
		if err := stored[i].Validate(); err != nil {
			log.Warn().Err(err).Str("session", stored[i].Name).Msg("dropping invalid session")
			continue
		}
		if sessions.Index(stored[i].Name) >= 0 {
			log.Warn().Str("session", stored[i].Name).Msg("dropping duplicate session name")
			continue
		}
		if len(sessions) == entity.MaxSessions {
			log.Warn().Int("stored", len(stored)).Msg("stored sessions exceed the cap, truncating")
			break
		}
		sessions = append(sessions, stored[i])
	}
	return sessions, nil
}

func (r *sessionRepo) SaveSessions(ctx context.Context, sessions entity.SessionList) error {
	if sessions == nil {
		sessions = entity.SessionList{}
	}
	raw, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("encode sessions: %w", err)
	}
	logging.FromContext(ctx).Debug().Int("count", len(sessions)).Msg("saving sessions")
	return r.kv.Put(ctx, SessionsKey, raw)
}
