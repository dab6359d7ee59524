package sqlite

import (
	"context"
	"sync"

	"github.com/reklai/harpoon-telescope/internal/application/port"
	"github.com/reklai/harpoon-telescope/internal/domain/entity"
	"github.com/reklai/harpoon-telescope/internal/domain/repository"
)

// LazySlotRepository opens the database on first use.
type LazySlotRepository struct {
	provider port.DatabaseProvider
	repo     repository.SlotRepository
	once     sync.Once
	initErr  error
}

// NewLazySlotRepository creates a slot repository that opens the database on first use.
func NewLazySlotRepository(provider port.DatabaseProvider) repository.SlotRepository {
	return &LazySlotRepository{provider: provider}
}

func (r *LazySlotRepository) init(ctx context.Context) error {
	r.once.Do(func() {
		db, err := r.provider.DB(ctx)
		if err != nil {
			r.initErr = err
			return
		}
		r.repo = NewSlotRepository(db)
	})
	return r.initErr
}

func (r *LazySlotRepository) LoadSlots(ctx context.Context) (entity.SlotList, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.LoadSlots(ctx)
}

func (r *LazySlotRepository) SaveSlots(ctx context.Context, slots entity.SlotList) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.SaveSlots(ctx, slots)
}

// LazySessionRepository opens the database on first use.
type LazySessionRepository struct {
	provider port.DatabaseProvider
	repo     repository.SessionRepository
	once     sync.Once
	initErr  error
}

// NewLazySessionRepository creates a session repository that opens the database on first use.
func NewLazySessionRepository(provider port.DatabaseProvider) repository.SessionRepository {
	return &LazySessionRepository{provider: provider}
}

func (r *LazySessionRepository) init(ctx context.Context) error {
	r.once.Do(func() {
		db, err := r.provider.DB(ctx)
		if err != nil {
			r.initErr = err
			return
		}
		r.repo = NewSessionRepository(db)
	})
	return r.initErr
}

func (r *LazySessionRepository) LoadSessions(ctx context.Context) (entity.SessionList, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.LoadSessions(ctx)
}

func (r *LazySessionRepository) SaveSessions(ctx context.Context, sessions entity.SessionList) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.SaveSessions(ctx, sessions)
}
