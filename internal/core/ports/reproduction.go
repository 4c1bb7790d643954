package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mifinca/fincamanager/internal/core/domain"
)

// ReproductiveEventInput carries a reproduction-cycle event for a female
// animal.
type ReproductiveEventInput struct {
	AnimalID             uuid.UUID
	EventType            domain.ReproductiveEventType
	EventDate            time.Time
	SireAnimalID         *uuid.UUID
	GestationResult      *domain.GestationResult
	ExpectedDeliveryDate *time.Time
	ActualDeliveryDate   *time.Time
	NumberOfOffspring    *int
	Notes                string
}

// ReproductionService defines use cases for reproductive events and their
// offspring links.
type ReproductionService interface {
	CreateEvent(ctx context.Context, actor Actor, in ReproductiveEventInput) (*domain.ReproductiveEvent, error)
	GetEvent(ctx context.Context, actor Actor, id uuid.UUID) (*domain.ReproductiveEvent, error)
	ListEvents(ctx context.Context, actor Actor, animalID uuid.UUID) ([]*domain.ReproductiveEvent, error)
	DeleteEvent(ctx context.Context, actor Actor, id uuid.UUID) error

	// AddOffspring links a newborn animal record to a birth event.
	AddOffspring(ctx context.Context, actor Actor, eventID, offspringAnimalID uuid.UUID) (*domain.OffspringBorn, error)
	ListOffspring(ctx context.Context, actor Actor, eventID uuid.UUID) ([]*domain.OffspringBorn, error)
}

// ReproductionRepository defines persistence for reproductive events and
// offspring rows.
type ReproductionRepository interface {
	InsertEvent(ctx context.Context, e *domain.ReproductiveEvent) error
	FindEvent(ctx context.Context, id uuid.UUID) (*domain.ReproductiveEvent, error)
	ListEventsByAnimal(ctx context.Context, animalID uuid.UUID) ([]*domain.ReproductiveEvent, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error

	InsertOffspring(ctx context.Context, o *domain.OffspringBorn) error
	ListOffspringByEvent(ctx context.Context, eventID uuid.UUID) ([]*domain.OffspringBorn, error)
}
