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

// SlotsKey is the record holding the slot list.
const SlotsKey = "slots"

type slotRepo struct {
	kv *KVStore
}

// NewSlotRepository creates a new SQLite-backed slot repository.
func NewSlotRepository(db *sql.DB) repository.SlotRepository {
	return &slotRepo{kv: NewKVStore(db)}
}

// LoadSlots returns the stored list. A missing or unreadable record yields an
// empty list; a stored list that breaks the slot invariants is repaired.
func (r *slotRepo) LoadSlots(ctx context.Context) (entity.SlotList, error) {
	log := logging.FromContext(ctx)

	raw, ok, err := r.kv.Get(ctx, SlotsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return entity.SlotList{}, nil
	}

	var slots entity.SlotList
	if err := json.Unmarshal(raw, &slots); err != nil {
		log.Warn().Err(err).Msg("discarding unreadable slot record")
		return entity.SlotList{}, nil
	}
	if err := slots.Validate(); err != nil {
		log.Warn().Err(err).Msg("repairing stored slot list")
		slots = slots.Sanitize()
	}
	return slots, nil
}

func (r *slotRepo) SaveSlots(ctx context.Context, slots entity.SlotList) error {
	if slots == nil {
		slots = entity.SlotList{}
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("encode slots: %w", err)
	}
	logging.FromContext(ctx).Debug().Int("count", len(slots)).Msg("saving slots")
	return r.kv.Put(ctx, SlotsKey, raw)
}
