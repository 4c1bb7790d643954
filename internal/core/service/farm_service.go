package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mifinca/fincamanager/internal/core/domain"
	"github.com/mifinca/fincamanager/internal/core/ports"
)

// FarmService implements finca and lot management. Mutations require the
// owner (or an admin); reads also accept users the owner has shared the
// farm with.
type FarmService struct {
	repo     ports.FarmRepository
	activity ports.ActivityRecorder
	log      zerolog.Logger
}

func NewFarmService(repo ports.FarmRepository, activity ports.ActivityRecorder, log zerolog.Logger) *FarmService {
	return &FarmService{repo: repo, activity: activity, log: log}
}

func (s *FarmService) CreateFarm(ctx context.Context, actor ports.Actor, in ports.CreateFarmInput) (*domain.Farm, error) {
	now := time.Now().UTC()
	farm := &domain.Farm{
		ID:           uuid.New(),
		Name:         in.Name,
		Location:     in.Location,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		AreaHectares: in.AreaHectares,
		ContactInfo:  in.ContactInfo,
		OwnerUserID:  actor.UserID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, farm); err != nil {
		return nil, err
	}

	s.log.Info().Str("farm_id", farm.ID.String()).Str("owner", actor.UserID.String()).Msg("farm created")
	s.record(actor, "create", "farm", farm.ID)
	return farm, nil
}

func (s *FarmService) GetFarm(ctx context.Context, actor ports.Actor, id uuid.UUID) (*domain.Farm, error) {
	return s.accessibleFarm(ctx, actor, id)
}

func (s *FarmService) ListFarms(ctx context.Context, actor ports.Actor) ([]*domain.Farm, error) {
	return s.repo.ListByOwner(ctx, actor.UserID)
}

func (s *FarmService) UpdateFarm(ctx context.Context, actor ports.Actor, id uuid.UUID, in ports.UpdateFarmInput) (*domain.Farm, error) {
	farm, err := s.ownedFarm(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		farm.Name = *in.Name
	}
	if in.Location != nil {
		farm.Location = *in.Location
	}
	if in.Latitude != nil {
		farm.Latitude = in.Latitude
	}
	if in.Longitude != nil {
		farm.Longitude = in.Longitude
	}
	if in.AreaHectares != nil {
		farm.AreaHectares = in.AreaHectares
	}
	if in.ContactInfo != nil {
		farm.ContactInfo = *in.ContactInfo
	}
	farm.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, farm); err != nil {
		return nil, err
	}
	s.record(actor, "update", "farm", farm.ID)
	return farm, nil
}

func (s *FarmService) DeleteFarm(ctx context.Context, actor ports.Actor, id uuid.UUID) error {
	if _, err := s.ownedFarm(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(actor, "delete", "farm", id)
	return nil
}

func (s *FarmService) CreateLot(ctx context.Context, actor ports.Actor, farmID uuid.UUID, in ports.LotInput) (*domain.Lot, error) {
	if _, err := s.ownedFarm(ctx, actor, farmID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	lot := &domain.Lot{
		ID:          uuid.New(),
		FarmID:      farmID,
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateLot(ctx, lot); err != nil {
		return nil, err
	}
	s.record(actor, "create", "lot", lot.ID)
	return lot, nil
}

func (s *FarmService) ListLots(ctx context.Context, actor ports.Actor, farmID uuid.UUID) ([]*domain.Lot, error) {
	if _, err := s.accessibleFarm(ctx, actor, farmID); err != nil {
		return nil, err
	}
	return s.repo.ListLotsByFarm(ctx, farmID)
}

func (s *FarmService) UpdateLot(ctx context.Context, actor ports.Actor, farmID, lotID uuid.UUID, in ports.LotInput) (*domain.Lot, error) {
	if _, err := s.ownedFarm(ctx, actor, farmID); err != nil {
		return nil, err
	}

	lot, err := s.repo.FindLotByID(ctx, lotID)
	if err != nil {
		return nil, err
	}
	if lot.FarmID != farmID {
		return nil, domain.ErrLotNotFound
	}

	lot.Name = in.Name
	lot.Description = in.Description
	lot.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateLot(ctx, lot); err != nil {
		return nil, err
	}
	s.record(actor, "update", "lot", lot.ID)
	return lot, nil
}

func (s *FarmService) DeleteLot(ctx context.Context, actor ports.Actor, farmID, lotID uuid.UUID) error {
	if _, err := s.ownedFarm(ctx, actor, farmID); err != nil {
		return err
	}

	lot, err := s.repo.FindLotByID(ctx, lotID)
	if err != nil {
		return err
	}
	if lot.FarmID != farmID {
		return domain.ErrLotNotFound
	}

	if err := s.repo.DeleteLot(ctx, lotID); err != nil {
		return err
	}
	s.record(actor, "delete", "lot", lotID)
	return nil
}

func (s *FarmService) GrantAccess(ctx context.Context, actor ports.Actor, farmID uuid.UUID, in ports.GrantAccessInput) (*domain.FarmAccess, error) {
	farm, err := s.ownedFarm(ctx, actor, farmID)
	if err != nil {
		return nil, err
	}
	if in.UserID == farm.OwnerUserID {
		return nil, domain.ErrAccessExists
	}

	a := &domain.FarmAccess{
		UserID:           in.UserID,
		FarmID:           farmID,
		AssignedByUserID: actor.UserID,
		AssignedAt:       time.Now().UTC(),
		ExpiresAt:        in.ExpiresAt,
	}
	if err := s.repo.GrantAccess(ctx, a); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("farm_id", farmID.String()).
		Str("user_id", in.UserID.String()).
		Msg("farm access granted")
	s.record(actor, "create", "farm_access", in.UserID)
	return a, nil
}

func (s *FarmService) RevokeAccess(ctx context.Context, actor ports.Actor, farmID, userID uuid.UUID) error {
	if _, err := s.ownedFarm(ctx, actor, farmID); err != nil {
		return err
	}
	if err := s.repo.RevokeAccess(ctx, farmID, userID); err != nil {
		return err
	}
	s.record(actor, "delete", "farm_access", userID)
	return nil
}

func (s *FarmService) ListAccess(ctx context.Context, actor ports.Actor, farmID uuid.UUID) ([]*domain.FarmAccess, error) {
	if _, err := s.ownedFarm(ctx, actor, farmID); err != nil {
		return nil, err
	}
	return s.repo.ListAccessByFarm(ctx, farmID)
}

// ownedFarm loads the farm and enforces that the actor owns it.
func (s *FarmService) ownedFarm(ctx context.Context, actor ports.Actor, id uuid.UUID) (*domain.Farm, error) {
	farm, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if farm.OwnerUserID != actor.UserID && actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return farm, nil
}

// accessibleFarm loads the farm for the owner, an admin, or a user holding
// a shared-access grant.
func (s *FarmService) accessibleFarm(ctx context.Context, actor ports.Actor, id uuid.UUID) (*domain.Farm, error) {
	farm, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ok, err := farmAccessible(ctx, s.repo, actor, farm)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}
	return farm, nil
}

func (s *FarmService) record(actor ports.Actor, action, entity string, id uuid.UUID) {
	s.activity.Record(domain.ActivityEntry{
		UserID:   actor.UserID,
		Action:   action,
		Entity:   entity,
		EntityID: id,
		At:       time.Now().UTC(),
	})
}
