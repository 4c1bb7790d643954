package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActivityEntry is one line of a user's audit feed. Entries are written
// asynchronously after mutating operations.
type ActivityEntry struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	Action   string    `json:"action"`
	Entity   string    `json:"entity"`
	EntityID uuid.UUID `json:"entity_id"`
	At       time.Time `json:"at"`
}
