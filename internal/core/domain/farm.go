package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrFarmNotFound = errors.New("farm not found")
var ErrLotNotFound = errors.New("lot not found")
var ErrLotExists = errors.New("lot name already used in this farm")
var ErrAccessExists = errors.New("user already has access to this farm")
var ErrAccessNotFound = errors.New("farm access not found")

// Farm is a finca owned by a user.
type Farm struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Location     string    `json:"location,omitempty"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	AreaHectares *float64  `json:"area_hectares,omitempty"`
	ContactInfo  string    `json:"contact_info,omitempty"`
	OwnerUserID  uuid.UUID `json:"owner_user_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FarmAccess is a grant that lets a non-owner work with a farm and the
// animals located on it. A grant with an expiry in the past is ignored.
type FarmAccess struct {
	UserID           uuid.UUID  `json:"user_id"`
	FarmID           uuid.UUID  `json:"farm_id"`
	AssignedByUserID uuid.UUID  `json:"assigned_by_user_id"`
	AssignedAt       time.Time  `json:"assigned_at"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
}

// Lot is a physical section of a farm (paddock). Name is unique per farm.
type Lot struct {
	ID          uuid.UUID `json:"id"`
	FarmID      uuid.UUID `json:"farm_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
