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

// ReproductionService implements reproductive events and their offspring
// links. Events attach to the dam; the sire reference is optional and must
// be a male owned by the caller.
type ReproductionService struct {
	repo     ports.ReproductionRepository
	animals  ports.AnimalRepository
	farms    ports.FarmRepository
	activity ports.ActivityRecorder
	log      zerolog.Logger
}

func NewReproductionService(
	repo ports.ReproductionRepository,
	animals ports.AnimalRepository,
	farms ports.FarmRepository,
	activity ports.ActivityRecorder,
	log zerolog.Logger,
) *ReproductionService {
	return &ReproductionService{repo: repo, animals: animals, farms: farms, activity: activity, log: log}
}

func (s *ReproductionService) CreateEvent(ctx context.Context, actor ports.Actor, in ports.ReproductiveEventInput) (*domain.ReproductiveEvent, error) {
	if !in.EventType.Valid() {
		return nil, domain.ErrInvalidRecord
	}
	if in.GestationResult != nil && !in.GestationResult.Valid() {
		return nil, domain.ErrInvalidRecord
	}
	if _, err := s.ownedAnimal(ctx, actor, in.AnimalID); err != nil {
		return nil, err
	}
	if in.SireAnimalID != nil {
		if _, err := s.ownedAnimal(ctx, actor, *in.SireAnimalID); err != nil {
			return nil, err
		}
	}

	e := &domain.ReproductiveEvent{
		ID:                   uuid.New(),
		AnimalID:             in.AnimalID,
		EventType:            in.EventType,
		EventDate:            in.EventDate,
		SireAnimalID:         in.SireAnimalID,
		GestationResult:      in.GestationResult,
		ExpectedDeliveryDate: in.ExpectedDeliveryDate,
		ActualDeliveryDate:   in.ActualDeliveryDate,
		NumberOfOffspring:    in.NumberOfOffspring,
		Notes:                in.Notes,
		CreatedByUserID:      actor.UserID,
		CreatedAt:            time.Now().UTC(),
	}
	if err := s.repo.InsertEvent(ctx, e); err != nil {
		return nil, err
	}

	metrics.RecordsCreatedTotal.WithLabelValues("reproductive_event").Inc()
	s.log.Info().
		Str("event_id", e.ID.String()).
		Str("event_type", string(e.EventType)).
		Msg("reproductive event recorded")
	s.record(actor, "create", "reproductive_event", e.ID)
	return e, nil
}

func (s *ReproductionService) GetEvent(ctx context.Context, actor ports.Actor, id uuid.UUID) (*domain.ReproductiveEvent, error) {
	return s.ownedEvent(ctx, actor, id)
}

func (s *ReproductionService) ListEvents(ctx context.Context, actor ports.Actor, animalID uuid.UUID) ([]*domain.ReproductiveEvent, error) {
	if _, err := s.ownedAnimal(ctx, actor, animalID); err != nil {
		return nil, err
	}
	return s.repo.ListEventsByAnimal(ctx, animalID)
}

func (s *ReproductionService) DeleteEvent(ctx context.Context, actor ports.Actor, id uuid.UUID) error {
	if _, err := s.ownedEvent(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.DeleteEvent(ctx, id); err != nil {
		return err
	}
	s.record(actor, "delete", "reproductive_event", id)
	return nil
}

func (s *ReproductionService) AddOffspring(ctx context.Context, actor ports.Actor, eventID, offspringAnimalID uuid.UUID) (*domain.OffspringBorn, error) {
	if _, err := s.ownedEvent(ctx, actor, eventID); err != nil {
		return nil, err
	}
	if _, err := s.ownedAnimal(ctx, actor, offspringAnimalID); err != nil {
		return nil, err
	}

	o := &domain.OffspringBorn{
		ID:                  uuid.New(),
		ReproductiveEventID: eventID,
		OffspringAnimalID:   offspringAnimalID,
		CreatedAt:           time.Now().UTC(),
	}
	if err := s.repo.InsertOffspring(ctx, o); err != nil {
		return nil, err
	}
	s.record(actor, "create", "offspring_born", o.ID)
	return o, nil
}

func (s *ReproductionService) ListOffspring(ctx context.Context, actor ports.Actor, eventID uuid.UUID) ([]*domain.OffspringBorn, error) {
	if _, err := s.ownedEvent(ctx, actor, eventID); err != nil {
		return nil, err
	}
	return s.repo.ListOffspringByEvent(ctx, eventID)
}

// ownedEvent loads the event and checks ownership through the dam.
func (s *ReproductionService) ownedEvent(ctx context.Context, actor ports.Actor, id uuid.UUID) (*domain.ReproductiveEvent, error) {
	e, err := s.repo.FindEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedAnimal(ctx, actor, e.AnimalID); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *ReproductionService) ownedAnimal(ctx context.Context, actor ports.Actor, id uuid.UUID) (*domain.Animal, error) {
	animal, err := s.animals.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := animalAccessible(ctx, s.farms, actor, animal); err != nil {
		return nil, err
	}
	return animal, nil
}

func (s *ReproductionService) record(actor ports.Actor, action, entity string, id uuid.UUID) {
	s.activity.Record(domain.ActivityEntry{
		UserID:   actor.UserID,
		Action:   action,
		Entity:   entity,
		EntityID: id,
		At:       time.Now().UTC(),
	})
}
