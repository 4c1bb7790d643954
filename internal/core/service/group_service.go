package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mifinca/fincamanager/internal/core/domain"
	"github.com/mifinca/fincamanager/internal/core/ports"
)

// GroupService implements lotes and their animal memberships. Groups belong
// to their creator; membership changes also require access to the animal.
type GroupService struct {
	repo       ports.GroupRepository
	animals    ports.AnimalRepository
	farms      ports.FarmRepository
	masterData ports.MasterDataRepository
	activity   ports.ActivityRecorder
	log        zerolog.Logger
}

func NewGroupService(
	repo ports.GroupRepository,
	animals ports.AnimalRepository,
	farms ports.FarmRepository,
	masterData ports.MasterDataRepository,
	activity ports.ActivityRecorder,
	log zerolog.Logger,
) *GroupService {
	return &GroupService{repo: repo, animals: animals, farms: farms, masterData: masterData, activity: activity, log: log}
}

func (s *GroupService) CreateGroup(ctx context.Context, actor ports.Actor, in ports.GroupInput) (*domain.Group, error) {
	if err := s.checkPurpose(ctx, in.PurposeID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	g := &domain.Group{
		ID:              uuid.New(),
		Name:            in.Name,
		Description:     in.Description,
		PurposeID:       in.PurposeID,
		CreatedByUserID: actor.UserID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	s.record(actor, "create", "group", g.ID)
	return g, nil
}

func (s *GroupService) GetGroup(ctx context.Context, actor ports.Actor, id uuid.UUID) (*domain.Group, error) {
	return s.ownedGroup(ctx, actor, id)
}

func (s *GroupService) ListGroups(ctx context.Context, actor ports.Actor) ([]*domain.Group, error) {
	return s.repo.ListByCreator(ctx, actor.UserID)
}

func (s *GroupService) UpdateGroup(ctx context.Context, actor ports.Actor, id uuid.UUID, in ports.GroupInput) (*domain.Group, error) {
	g, err := s.ownedGroup(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkPurpose(ctx, in.PurposeID); err != nil {
		return nil, err
	}

	g.Name = in.Name
	g.Description = in.Description
	g.PurposeID = in.PurposeID
	g.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	s.record(actor, "update", "group", g.ID)
	return g, nil
}

func (s *GroupService) DeleteGroup(ctx context.Context, actor ports.Actor, id uuid.UUID) error {
	if _, err := s.ownedGroup(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(actor, "delete", "group", id)
	return nil
}

func (s *GroupService) AssignAnimal(ctx context.Context, actor ports.Actor, groupID uuid.UUID, in ports.AssignAnimalInput) (*domain.GroupAssignment, error) {
	if _, err := s.ownedGroup(ctx, actor, groupID); err != nil {
		return nil, err
	}
	if err := s.ownAnimal(ctx, actor, in.AnimalID); err != nil {
		return nil, err
	}

	a := &domain.GroupAssignment{
		GroupID:      groupID,
		AnimalID:     in.AnimalID,
		AssignedDate: in.AssignedDate,
		Notes:        in.Notes,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.InsertAssignment(ctx, a); err != nil {
		return nil, err
	}
	s.record(actor, "create", "group_assignment", in.AnimalID)
	return a, nil
}

func (s *GroupService) RemoveAnimal(ctx context.Context, actor ports.Actor, groupID, animalID uuid.UUID, removedDate time.Time) error {
	if _, err := s.ownedGroup(ctx, actor, groupID); err != nil {
		return err
	}
	if err := s.repo.SetRemovedDate(ctx, groupID, animalID, removedDate); err != nil {
		return err
	}
	s.record(actor, "update", "group_assignment", animalID)
	return nil
}

func (s *GroupService) ListAssignments(ctx context.Context, actor ports.Actor, groupID uuid.UUID) ([]*domain.GroupAssignment, error) {
	if _, err := s.ownedGroup(ctx, actor, groupID); err != nil {
		return nil, err
	}
	return s.repo.ListAssignmentsByGroup(ctx, groupID)
}

func (s *GroupService) ownedGroup(ctx context.Context, actor ports.Actor, id uuid.UUID) (*domain.Group, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.CreatedByUserID != actor.UserID && actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return g, nil
}

func (s *GroupService) ownAnimal(ctx context.Context, actor ports.Actor, id uuid.UUID) error {
	animal, err := s.animals.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return animalAccessible(ctx, s.farms, actor, animal)
}

// checkPurpose verifies the purpose references master data of category
// group_purpose.
func (s *GroupService) checkPurpose(ctx context.Context, purposeID *uuid.UUID) error {
	if purposeID == nil {
		return nil
	}
	md, err := s.masterData.FindByID(ctx, *purposeID)
	if err != nil {
		return err
	}
	if md.Category != domain.CategoryGroupPurpose {
		return domain.ErrMasterDataNotFound
	}
	return nil
}

func (s *GroupService) record(actor ports.Actor, action, entity string, id uuid.UUID) {
	s.activity.Record(domain.ActivityEntry{
		UserID:   actor.UserID,
		Action:   action,
		Entity:   entity,
		EntityID: id,
		At:       time.Now().UTC(),
	})
}
