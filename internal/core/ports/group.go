package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mifinca/fincamanager/internal/core/domain"
)

// GroupInput carries the fields of a lote.
type GroupInput struct {
	Name        string
	Description string
	PurposeID   *uuid.UUID
}

// AssignAnimalInput adds an animal to a group.
type AssignAnimalInput struct {
	AnimalID     uuid.UUID
	AssignedDate time.Time
	Notes        string
}

// GroupService defines use cases for lotes and their memberships.
type GroupService interface {
	CreateGroup(ctx context.Context, actor Actor, in GroupInput) (*domain.Group, error)
	GetGroup(ctx context.Context, actor Actor, id uuid.UUID) (*domain.Group, error)
	ListGroups(ctx context.Context, actor Actor) ([]*domain.Group, error)
	UpdateGroup(ctx context.Context, actor Actor, id uuid.UUID, in GroupInput) (*domain.Group, error)
	DeleteGroup(ctx context.Context, actor Actor, id uuid.UUID) error

	AssignAnimal(ctx context.Context, actor Actor, groupID uuid.UUID, in AssignAnimalInput) (*domain.GroupAssignment, error)
	// RemoveAnimal closes the membership by setting its removed date.
	RemoveAnimal(ctx context.Context, actor Actor, groupID, animalID uuid.UUID, removedDate time.Time) error
	ListAssignments(ctx context.Context, actor Actor, groupID uuid.UUID) ([]*domain.GroupAssignment, error)
}

// GroupRepository defines persistence for groups and group assignments.
type GroupRepository interface {
	Create(ctx context.Context, g *domain.Group) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Group, error)
	ListByCreator(ctx context.Context, userID uuid.UUID) ([]*domain.Group, error)
	Update(ctx context.Context, g *domain.Group) error
	Delete(ctx context.Context, id uuid.UUID) error

	InsertAssignment(ctx context.Context, a *domain.GroupAssignment) error
	SetRemovedDate(ctx context.Context, groupID, animalID uuid.UUID, removedDate time.Time) error
	ListAssignmentsByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.GroupAssignment, error)
}
