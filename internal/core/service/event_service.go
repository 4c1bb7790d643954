package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mifinca/fincamanager/internal/api/metrics"
	"github.com/mifinca/fincamanager/internal/core/domain"
	"github.com/mifinca/fincamanager/internal/core/ports"
)

// EventService implements the multi-animal record types: health events and
// feedings. Every animal referenced by an event must be owned by the caller
// or sit on a farm shared with them.
type EventService struct {
	repo       ports.EventRepository
	animals    ports.AnimalRepository
	farms      ports.FarmRepository
	masterData ports.MasterDataRepository
	activity   ports.ActivityRecorder
	log        zerolog.Logger
}

func NewEventService(
	repo ports.EventRepository,
	animals ports.AnimalRepository,
	farms ports.FarmRepository,
	masterData ports.MasterDataRepository,
	activity ports.ActivityRecorder,
	log zerolog.Logger,
) *EventService {
	return &EventService{repo: repo, animals: animals, farms: farms, masterData: masterData, activity: activity, log: log}
}

func (s *EventService) CreateHealthEvent(ctx context.Context, actor ports.Actor, in ports.HealthEventInput) (*domain.HealthEvent, error) {
	if !in.EventType.Valid() || len(in.AnimalIDs) == 0 {
		return nil, domain.ErrInvalidRecord
	}
	if err := s.ownAnimals(ctx, actor, in.AnimalIDs); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, in.ProductID, domain.CategoryProduct); err != nil {
		return nil, err
	}

	e := &domain.HealthEvent{
		ID:                   uuid.New(),
		EventType:            in.EventType,
		EventDate:            in.EventDate,
		ProductID:            in.ProductID,
		Dosage:               in.Dosage,
		AdministeredByUserID: actor.UserID,
		Diagnosis:            in.Diagnosis,
		Notes:                in.Notes,
		AnimalIDs:            in.AnimalIDs,
		CreatedAt:            time.Now().UTC(),
	}
	if err := s.repo.InsertHealthEvent(ctx, e); err != nil {
		return nil, err
	}

	metrics.RecordsCreatedTotal.WithLabelValues("health_event").Inc()
	s.log.Info().
		Str("event_id", e.ID.String()).
		Str("event_type", string(e.EventType)).
		Int("animals", len(e.AnimalIDs)).
		Msg("health event recorded")
	s.record(actor, "create", "health_event", e.ID)
	return e, nil
}

func (s *EventService) GetHealthEvent(ctx context.Context, actor ports.Actor, id uuid.UUID) (*domain.HealthEvent, error) {
	e, err := s.repo.FindHealthEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.AdministeredByUserID != actor.UserID && actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return e, nil
}

func (s *EventService) ListHealthEvents(ctx context.Context, actor ports.Actor, animalID uuid.UUID) ([]*domain.HealthEvent, error) {
	if err := s.ownAnimals(ctx, actor, []uuid.UUID{animalID}); err != nil {
		return nil, err
	}
	return s.repo.ListHealthEventsByAnimal(ctx, animalID)
}

func (s *EventService) DeleteHealthEvent(ctx context.Context, actor ports.Actor, id uuid.UUID) error {
	e, err := s.repo.FindHealthEvent(ctx, id)
	if err != nil {
		return err
	}
	if e.AdministeredByUserID != actor.UserID && actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	if err := s.repo.DeleteHealthEvent(ctx, id); err != nil {
		return err
	}
	s.record(actor, "delete", "health_event", id)
	return nil
}

func (s *EventService) CreateFeeding(ctx context.Context, actor ports.Actor, in ports.FeedingInput) (*domain.Feeding, error) {
	if in.QuantityKg <= 0 || len(in.AnimalIDs) == 0 {
		return nil, domain.ErrInvalidRecord
	}
	if err := s.ownAnimals(ctx, actor, in.AnimalIDs); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, &in.FeedTypeID, domain.CategoryFeedType); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, in.SupplementID, domain.CategorySupplement); err != nil {
		return nil, err
	}

	f := &domain.Feeding{
		ID:                   uuid.New(),
		FeedingDate:          in.FeedingDate,
		FeedTypeID:           in.FeedTypeID,
		QuantityKg:           in.QuantityKg,
		SupplementID:         in.SupplementID,
		AdministeredByUserID: actor.UserID,
		Notes:                in.Notes,
		AnimalIDs:            in.AnimalIDs,
		CreatedAt:            time.Now().UTC(),
	}
	if err := s.repo.InsertFeeding(ctx, f); err != nil {
		return nil, err
	}

	metrics.RecordsCreatedTotal.WithLabelValues("feeding").Inc()
	s.record(actor, "create", "feeding", f.ID)
	return f, nil
}

func (s *EventService) GetFeeding(ctx context.Context, actor ports.Actor, id uuid.UUID) (*domain.Feeding, error) {
	f, err := s.repo.FindFeeding(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.AdministeredByUserID != actor.UserID && actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return f, nil
}

func (s *EventService) ListFeedings(ctx context.Context, actor ports.Actor, animalID uuid.UUID) ([]*domain.Feeding, error) {
	if err := s.ownAnimals(ctx, actor, []uuid.UUID{animalID}); err != nil {
		return nil, err
	}
	return s.repo.ListFeedingsByAnimal(ctx, animalID)
}

func (s *EventService) DeleteFeeding(ctx context.Context, actor ports.Actor, id uuid.UUID) error {
	f, err := s.repo.FindFeeding(ctx, id)
	if err != nil {
		return err
	}
	if f.AdministeredByUserID != actor.UserID && actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	if err := s.repo.DeleteFeeding(ctx, id); err != nil {
		return err
	}
	s.record(actor, "delete", "feeding", id)
	return nil
}

// ownAnimals verifies each referenced animal exists and is accessible to
// the actor.
func (s *EventService) ownAnimals(ctx context.Context, actor ports.Actor, ids []uuid.UUID) error {
	for _, id := range ids {
		animal, err := s.animals.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := animalAccessible(ctx, s.farms, actor, animal); err != nil {
			return err
		}
	}
	return nil
}

func (s *EventService) checkCategory(ctx context.Context, id *uuid.UUID, category string) error {
	if id == nil {
		return nil
	}
	md, err := s.masterData.FindByID(ctx, *id)
	if err != nil {
		return err
	}
	if md.Category != category {
		return domain.ErrMasterDataNotFound
	}
	return nil
}

func (s *EventService) record(actor ports.Actor, action, entity string, id uuid.UUID) {
	s.activity.Record(domain.ActivityEntry{
		UserID:   actor.UserID,
		Action:   action,
		Entity:   entity,
		EntityID: id,
		At:       time.Now().UTC(),
	})
}
