package repository

import (
	"context"

	"github.com/reklai/harpoon-telescope/internal/domain/entity"
)

// SlotRepository persists the pinned slot list under a single key.
type SlotRepository interface {
	// LoadSlots returns the stored list, or an empty list when nothing was saved yet.
	LoadSlots(ctx context.Context) (entity.SlotList, error)

	// SaveSlots replaces the stored list.
	SaveSlots(ctx context.Context, slots entity.SlotList) error
}
