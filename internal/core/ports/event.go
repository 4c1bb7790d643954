package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mifinca/fincamanager/internal/core/domain"
)

// HealthEventInput carries a health intervention applied to one or more
// animals.
type HealthEventInput struct {
	EventType domain.HealthEventType
	EventDate time.Time
	ProductID *uuid.UUID
	Dosage    string
	Diagnosis string
	Notes     string
	AnimalIDs []uuid.UUID
}

// FeedingInput carries a feed ration given to one or more animals.
type FeedingInput struct {
	FeedingDate  time.Time
	FeedTypeID   uuid.UUID
	QuantityKg   float64
	SupplementID *uuid.UUID
	Notes        string
	AnimalIDs    []uuid.UUID
}

// EventService defines use cases for the multi-animal record types
// (health events and feedings). The caller must own every referenced animal.
type EventService interface {
	CreateHealthEvent(ctx context.Context, actor Actor, in HealthEventInput) (*domain.HealthEvent, error)
	GetHealthEvent(ctx context.Context, actor Actor, id uuid.UUID) (*domain.HealthEvent, error)
	ListHealthEvents(ctx context.Context, actor Actor, animalID uuid.UUID) ([]*domain.HealthEvent, error)
	DeleteHealthEvent(ctx context.Context, actor Actor, id uuid.UUID) error

	CreateFeeding(ctx context.Context, actor Actor, in FeedingInput) (*domain.Feeding, error)
	GetFeeding(ctx context.Context, actor Actor, id uuid.UUID) (*domain.Feeding, error)
	ListFeedings(ctx context.Context, actor Actor, animalID uuid.UUID) ([]*domain.Feeding, error)
	DeleteFeeding(ctx context.Context, actor Actor, id uuid.UUID) error
}

// EventRepository defines persistence for health events and feedings.
// Insert operations write the event row and its animal pivot rows in one
// transaction.
type EventRepository interface {
	InsertHealthEvent(ctx context.Context, e *domain.HealthEvent) error
	FindHealthEvent(ctx context.Context, id uuid.UUID) (*domain.HealthEvent, error)
	ListHealthEventsByAnimal(ctx context.Context, animalID uuid.UUID) ([]*domain.HealthEvent, error)
	DeleteHealthEvent(ctx context.Context, id uuid.UUID) error

	InsertFeeding(ctx context.Context, f *domain.Feeding) error
	FindFeeding(ctx context.Context, id uuid.UUID) (*domain.Feeding, error)
	ListFeedingsByAnimal(ctx context.Context, animalID uuid.UUID) ([]*domain.Feeding, error)
	DeleteFeeding(ctx context.Context, id uuid.UUID) error
}
