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

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// AnimalService implements animal registration and herd queries. Creation
// runs the reference validation chain the API contract requires: species and
// breed must be master data of the right category, the target lot's farm
// must be owned by or shared with the caller, and declared parents must
// exist and be owned by the caller.
type AnimalService struct {
	repo       ports.AnimalRepository
	farms      ports.FarmRepository
	masterData ports.MasterDataRepository
	activity   ports.ActivityRecorder
	log        zerolog.Logger
}

func NewAnimalService(
	repo ports.AnimalRepository,
	farms ports.FarmRepository,
	masterData ports.MasterDataRepository,
	activity ports.ActivityRecorder,
	log zerolog.Logger,
) *AnimalService {
	return &AnimalService{repo: repo, farms: farms, masterData: masterData, activity: activity, log: log}
}

func (s *AnimalService) CreateAnimal(ctx context.Context, actor ports.Actor, in ports.CreateAnimalInput) (*domain.Animal, error) {
	if in.TagID == "" || !in.Sex.Valid() || !in.CurrentStatus.Valid() || !in.Origin.Valid() {
		return nil, domain.ErrInvalidAnimal
	}

	if err := s.checkCategory(ctx, in.SpeciesID, domain.CategorySpecies); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, in.BreedID, domain.CategoryBreed); err != nil {
		return nil, err
	}
	if err := s.checkLot(ctx, actor, in.CurrentLotID); err != nil {
		return nil, err
	}
	if err := s.checkParent(ctx, actor, in.MotherID); err != nil {
		return nil, err
	}
	if err := s.checkParent(ctx, actor, in.FatherID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	animal := &domain.Animal{
		ID:            uuid.New(),
		TagID:         in.TagID,
		Name:          in.Name,
		SpeciesID:     in.SpeciesID,
		BreedID:       in.BreedID,
		Sex:           in.Sex,
		DateOfBirth:   in.DateOfBirth,
		CurrentStatus: in.CurrentStatus,
		Origin:        in.Origin,
		OwnerUserID:   actor.UserID,
		MotherID:      in.MotherID,
		FatherID:      in.FatherID,
		Description:   in.Description,
		PhotoURL:      in.PhotoURL,
		CurrentLotID:  in.CurrentLotID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, animal); err != nil {
		return nil, err
	}

	metrics.AnimalsCreatedTotal.WithLabelValues(string(animal.Origin)).Inc()
	s.log.Info().Str("animal_id", animal.ID.String()).Str("tag_id", animal.TagID).Msg("animal registered")
	s.record(actor, "create", "animal", animal.ID)
	return animal, nil
}

func (s *AnimalService) GetAnimal(ctx context.Context, actor ports.Actor, id uuid.UUID) (*domain.Animal, error) {
	return s.ownedAnimal(ctx, actor, id)
}

func (s *AnimalService) ListAnimals(ctx context.Context, actor ports.Actor, filter ports.ListAnimalsFilter) (*ports.ListAnimalsResult, error) {
	filter.OwnerUserID = actor.UserID
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &ports.ListAnimalsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *AnimalService) UpdateAnimal(ctx context.Context, actor ports.Actor, id uuid.UUID, in ports.UpdateAnimalInput) (*domain.Animal, error) {
	animal, err := s.ownedAnimal(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if in.SpeciesID != nil {
		if err := s.checkCategory(ctx, in.SpeciesID, domain.CategorySpecies); err != nil {
			return nil, err
		}
		animal.SpeciesID = in.SpeciesID
	}
	if in.BreedID != nil {
		if err := s.checkCategory(ctx, in.BreedID, domain.CategoryBreed); err != nil {
			return nil, err
		}
		animal.BreedID = in.BreedID
	}
	if in.CurrentLotID != nil {
		if err := s.checkLot(ctx, actor, in.CurrentLotID); err != nil {
			return nil, err
		}
		animal.CurrentLotID = in.CurrentLotID
	}
	if in.CurrentStatus != nil {
		if !in.CurrentStatus.Valid() {
			return nil, domain.ErrInvalidAnimal
		}
		animal.CurrentStatus = *in.CurrentStatus
	}
	if in.Name != nil {
		animal.Name = *in.Name
	}
	if in.DateOfBirth != nil {
		animal.DateOfBirth = in.DateOfBirth
	}
	if in.Description != nil {
		animal.Description = *in.Description
	}
	if in.PhotoURL != nil {
		animal.PhotoURL = *in.PhotoURL
	}
	animal.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, animal); err != nil {
		return nil, err
	}
	s.record(actor, "update", "animal", animal.ID)
	return animal, nil
}

func (s *AnimalService) DeleteAnimal(ctx context.Context, actor ports.Actor, id uuid.UUID) error {
	if _, err := s.ownedAnimal(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(actor, "delete", "animal", id)
	return nil
}

// ownedAnimal loads the animal and enforces access: the owner, an admin, or
// a user the animal's current farm is shared with.
func (s *AnimalService) ownedAnimal(ctx context.Context, actor ports.Actor, id uuid.UUID) (*domain.Animal, error) {
	animal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := animalAccessible(ctx, s.farms, actor, animal); err != nil {
		return nil, err
	}
	return animal, nil
}

// checkCategory verifies that id references master data of the given
// category. A wrong category reads as not-found, matching the API contract.
func (s *AnimalService) checkCategory(ctx context.Context, id *uuid.UUID, category string) error {
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

// checkLot verifies that the lot exists and its farm is owned by or shared
// with the actor.
func (s *AnimalService) checkLot(ctx context.Context, actor ports.Actor, lotID *uuid.UUID) error {
	if lotID == nil {
		return nil
	}
	return lotAccessible(ctx, s.farms, actor, *lotID)
}

// checkParent verifies that the declared mother/father exists and is owned
// by the actor.
func (s *AnimalService) checkParent(ctx context.Context, actor ports.Actor, parentID *uuid.UUID) error {
	if parentID == nil {
		return nil
	}
	parent, err := s.repo.FindByID(ctx, *parentID)
	if err != nil {
		return err
	}
	if parent.OwnerUserID != actor.UserID && actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return nil
}

func (s *AnimalService) record(actor ports.Actor, action, entity string, id uuid.UUID) {
	s.activity.Record(domain.ActivityEntry{
		UserID:   actor.UserID,
		Action:   action,
		Entity:   entity,
		EntityID: id,
		At:       time.Now().UTC(),
	})
}
