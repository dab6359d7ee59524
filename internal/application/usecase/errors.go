package usecase

import (
	"errors"
	"fmt"

	"github.com/reklai/harpoon-telescope/internal/domain/entity"
)

var (
	ErrSessionExists   = errors.New("a session with that name already exists")
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionsFull    = fmt.Errorf("sessions full (max %d)", entity.MaxSessions)
	ErrEmptySlots      = errors.New("no slots to save")
	ErrEmptyName       = entity.ErrEmptyName
)

// userFacing lists errors that describe a rejected request rather than a
// failure of the daemon.
var userFacing = []error{
	ErrSessionExists,
	ErrSessionNotFound,
	ErrSessionsFull,
	ErrEmptySlots,
	ErrEmptyName,
}

// FailureReason returns the message to show for a rejected request.
// ok is false when err is an infrastructure failure.
func FailureReason(err error) (reason string, ok bool) {
	for _, target := range userFacing {
		if errors.Is(err, target) {
			return target.Error(), true
		}
	}
	return "", false
}
