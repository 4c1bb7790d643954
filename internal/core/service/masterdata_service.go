package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mifinca/fincamanager/internal/core/domain"
	"github.com/mifinca/fincamanager/internal/core/ports"
)

// MasterDataService implements catalog rows and configuration parameters.
// Writes are restricted to admins; any authenticated user can read.
type MasterDataService struct {
	repo     ports.MasterDataRepository
	activity ports.ActivityRecorder
	log      zerolog.Logger
}

func NewMasterDataService(repo ports.MasterDataRepository, activity ports.ActivityRecorder, log zerolog.Logger) *MasterDataService {
	return &MasterDataService{repo: repo, activity: activity, log: log}
}

func (s *MasterDataService) Create(ctx context.Context, actor ports.Actor, in ports.MasterDataInput) (*domain.MasterData, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	now := time.Now().UTC()
	m := &domain.MasterData{
		ID:              uuid.New(),
		Category:        in.Category,
		Name:            in.Name,
		Description:     in.Description,
		Properties:      in.Properties,
		IsActive:        true,
		CreatedByUserID: actor.UserID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	s.log.Info().Str("category", m.Category).Str("name", m.Name).Msg("master data created")
	s.record(actor, "create", "master_data", m.ID)
	return m, nil
}

func (s *MasterDataService) Get(ctx context.Context, id uuid.UUID) (*domain.MasterData, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *MasterDataService) List(ctx context.Context, category string) ([]*domain.MasterData, error) {
	return s.repo.List(ctx, category)
}

func (s *MasterDataService) Update(ctx context.Context, actor ports.Actor, id uuid.UUID, in ports.UpdateMasterDataInput) (*domain.MasterData, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		m.Name = *in.Name
	}
	if in.Description != nil {
		m.Description = *in.Description
	}
	if in.Properties != nil {
		m.Properties = in.Properties
	}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}
	m.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	s.record(actor, "update", "master_data", m.ID)
	return m, nil
}

func (s *MasterDataService) Delete(ctx context.Context, actor ports.Actor, id uuid.UUID) error {
	if actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(actor, "delete", "master_data", id)
	return nil
}

// SetParameter creates or replaces a configuration parameter. The value must
// parse as the declared data type.
func (s *MasterDataService) SetParameter(ctx context.Context, actor ports.Actor, in ports.ConfigParameterInput) (*domain.ConfigParameter, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if !in.DataType.Valid() {
		return nil, domain.ErrParamValueMismatch
	}
	if err := in.DataType.CheckValue(in.Value); err != nil {
		return nil, err
	}

	p := &domain.ConfigParameter{
		ID:                  uuid.New(),
		Name:                in.Name,
		Value:               in.Value,
		DataType:            in.DataType,
		Description:         in.Description,
		LastUpdatedByUserID: actor.UserID,
		UpdatedAt:           time.Now().UTC(),
	}
	if err := s.repo.UpsertParameter(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info().Str("parameter", p.Name).Str("data_type", string(p.DataType)).Msg("configuration parameter set")
	s.record(actor, "update", "config_parameter", p.ID)
	return p, nil
}

func (s *MasterDataService) GetParameter(ctx context.Context, name string) (*domain.ConfigParameter, error) {
	return s.repo.FindParameterByName(ctx, name)
}

func (s *MasterDataService) ListParameters(ctx context.Context) ([]*domain.ConfigParameter, error) {
	return s.repo.ListParameters(ctx)
}

func (s *MasterDataService) DeleteParameter(ctx context.Context, actor ports.Actor, name string) error {
	if actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	if err := s.repo.DeleteParameter(ctx, name); err != nil {
		return err
	}
	s.record(actor, "delete", "config_parameter", uuid.Nil)
	return nil
}

func (s *MasterDataService) record(actor ports.Actor, action, entity string, id uuid.UUID) {
	s.activity.Record(domain.ActivityEntry{
		UserID:   actor.UserID,
		Action:   action,
		Entity:   entity,
		EntityID: id,
		At:       time.Now().UTC(),
	})
}
