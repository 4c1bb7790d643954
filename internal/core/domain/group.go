package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrGroupNotFound = errors.New("group not found")
var ErrAlreadyAssigned = errors.New("animal already assigned to this group")
var ErrAssignmentNotFound = errors.New("group assignment not found")

// Group is a lote: a dynamic grouping of animals for a procedure or event
// (e.g. the June deworming batch). Purpose references master data of
// category group_purpose.
type Group struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description,omitempty"`
	PurposeID       *uuid.UUID `json:"purpose_id,omitempty"`
	CreatedByUserID uuid.UUID  `json:"created_by_user_id"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// GroupAssignment is the membership of an animal in a group, tracked with
// entry (assigned) and exit (removed) dates.
type GroupAssignment struct {
	GroupID      uuid.UUID  `json:"grupo_id"`
	AnimalID     uuid.UUID  `json:"animal_id"`
	AssignedDate time.Time  `json:"assigned_date"`
	RemovedDate  *time.Time `json:"removed_date,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
