package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mifinca/fincamanager/internal/core/domain"
)

// CreateAnimalInput carries all data needed to register an animal.
type CreateAnimalInput struct {
	TagID         string
	Name          string
	SpeciesID     *uuid.UUID
	BreedID       *uuid.UUID
	Sex           domain.Sex
	DateOfBirth   *time.Time
	CurrentStatus domain.AnimalStatus
	Origin        domain.AnimalOrigin
	MotherID      *uuid.UUID
	FatherID      *uuid.UUID
	Description   string
	PhotoURL      string
	CurrentLotID  *uuid.UUID
}

// UpdateAnimalInput is a partial update; nil fields are left untouched.
type UpdateAnimalInput struct {
	Name          *string
	SpeciesID     *uuid.UUID
	BreedID       *uuid.UUID
	DateOfBirth   *time.Time
	CurrentStatus *domain.AnimalStatus
	Description   *string
	PhotoURL      *string
	CurrentLotID  *uuid.UUID
}

// ListAnimalsFilter carries the query parameters of the list endpoint.
// The owner is always enforced by the service.
type ListAnimalsFilter struct {
	OwnerUserID uuid.UUID
	Status      string     // optional: filter by current_status
	SpeciesID   *uuid.UUID // optional
	LotID       *uuid.UUID // optional
	Search      string     // optional: partial match on tag_id or name
	Page        int        // 1-based
	Limit       int        // capped at 100 by the service
}

// ListAnimalsResult is a page of animals plus pagination totals.
type ListAnimalsResult struct {
	Items      []*domain.Animal
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// AnimalService defines use-case operations for animals.
type AnimalService interface {
	CreateAnimal(ctx context.Context, actor Actor, in CreateAnimalInput) (*domain.Animal, error)
	GetAnimal(ctx context.Context, actor Actor, id uuid.UUID) (*domain.Animal, error)
	ListAnimals(ctx context.Context, actor Actor, filter ListAnimalsFilter) (*ListAnimalsResult, error)
	UpdateAnimal(ctx context.Context, actor Actor, id uuid.UUID, in UpdateAnimalInput) (*domain.Animal, error)
	DeleteAnimal(ctx context.Context, actor Actor, id uuid.UUID) error
}

// AnimalRepository defines persistence operations for animals.
type AnimalRepository interface {
	Create(ctx context.Context, a *domain.Animal) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Animal, error)
	// List returns a page of animals matching filter and the total count.
	List(ctx context.Context, filter ListAnimalsFilter) ([]*domain.Animal, int64, error)
	Update(ctx context.Context, a *domain.Animal) error
	Delete(ctx context.Context, id uuid.UUID) error
}
