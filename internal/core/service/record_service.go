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

// RecordService implements per-animal husbandry records: weighings,
// transactions and location history. Every operation verifies that the
// caller owns the referenced animal or has shared access to its farm.
type RecordService struct {
	repo     ports.RecordRepository
	animals  ports.AnimalRepository
	farms    ports.FarmRepository
	activity ports.ActivityRecorder
	log      zerolog.Logger
}

func NewRecordService(
	repo ports.RecordRepository,
	animals ports.AnimalRepository,
	farms ports.FarmRepository,
	activity ports.ActivityRecorder,
	log zerolog.Logger,
) *RecordService {
	return &RecordService{repo: repo, animals: animals, farms: farms, activity: activity, log: log}
}

func (s *RecordService) CreateWeighing(ctx context.Context, actor ports.Actor, in ports.WeighingInput) (*domain.Weighing, error) {
	if in.WeightKg <= 0 {
		return nil, domain.ErrInvalidRecord
	}
	if _, err := s.ownedAnimal(ctx, actor, in.AnimalID); err != nil {
		return nil, err
	}

	w := &domain.Weighing{
		ID:              uuid.New(),
		AnimalID:        in.AnimalID,
		WeighingDate:    in.WeighingDate,
		WeightKg:        in.WeightKg,
		Notes:           in.Notes,
		CreatedByUserID: actor.UserID,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.repo.InsertWeighing(ctx, w); err != nil {
		return nil, err
	}

	metrics.RecordsCreatedTotal.WithLabelValues("weighing").Inc()
	s.record(actor, "create", "weighing", w.ID)
	return w, nil
}

func (s *RecordService) GetWeighing(ctx context.Context, actor ports.Actor, id uuid.UUID) (*domain.Weighing, error) {
	w, err := s.repo.FindWeighing(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedAnimal(ctx, actor, w.AnimalID); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *RecordService) ListWeighings(ctx context.Context, actor ports.Actor, animalID uuid.UUID) ([]*domain.Weighing, error) {
	if _, err := s.ownedAnimal(ctx, actor, animalID); err != nil {
		return nil, err
	}
	return s.repo.ListWeighingsByAnimal(ctx, animalID)
}

func (s *RecordService) DeleteWeighing(ctx context.Context, actor ports.Actor, id uuid.UUID) error {
	w, err := s.repo.FindWeighing(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.ownedAnimal(ctx, actor, w.AnimalID); err != nil {
		return err
	}
	if err := s.repo.DeleteWeighing(ctx, id); err != nil {
		return err
	}
	s.record(actor, "delete", "weighing", id)
	return nil
}

func (s *RecordService) CreateTransaction(ctx context.Context, actor ports.Actor, in ports.TransactionInput) (*domain.Transaction, error) {
	if !in.Type.Valid() {
		return nil, domain.ErrInvalidRecord
	}
	if _, err := s.ownedAnimal(ctx, actor, in.AnimalID); err != nil {
		return nil, err
	}
	if err := s.checkFarm(ctx, in.FromFarmID); err != nil {
		return nil, err
	}
	if err := s.checkFarm(ctx, in.ToFarmID); err != nil {
		return nil, err
	}

	t := &domain.Transaction{
		ID:              uuid.New(),
		Type:            in.Type,
		TransactionDate: in.TransactionDate,
		AnimalID:        in.AnimalID,
		FromFarmID:      in.FromFarmID,
		ToFarmID:        in.ToFarmID,
		FromOwnerUserID: actor.UserID,
		ToOwnerUserID:   in.ToOwnerUserID,
		PriceValue:      in.PriceValue,
		Reason:          in.Reason,
		TransportInfo:   in.TransportInfo,
		Notes:           in.Notes,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.repo.InsertTransaction(ctx, t); err != nil {
		return nil, err
	}

	metrics.RecordsCreatedTotal.WithLabelValues("transaction").Inc()
	s.log.Info().Str("transaction_id", t.ID.String()).Str("type", string(t.Type)).Msg("transaction recorded")
	s.record(actor, "create", "transaction", t.ID)
	return t, nil
}

func (s *RecordService) GetTransaction(ctx context.Context, actor ports.Actor, id uuid.UUID) (*domain.Transaction, error) {
	t, err := s.repo.FindTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedAnimal(ctx, actor, t.AnimalID); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *RecordService) ListTransactions(ctx context.Context, actor ports.Actor, animalID uuid.UUID) ([]*domain.Transaction, error) {
	if _, err := s.ownedAnimal(ctx, actor, animalID); err != nil {
		return nil, err
	}
	return s.repo.ListTransactionsByAnimal(ctx, animalID)
}

func (s *RecordService) DeleteTransaction(ctx context.Context, actor ports.Actor, id uuid.UUID) error {
	t, err := s.repo.FindTransaction(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.ownedAnimal(ctx, actor, t.AnimalID); err != nil {
		return err
	}
	if err := s.repo.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	s.record(actor, "delete", "transaction", id)
	return nil
}

func (s *RecordService) CreateLocationEntry(ctx context.Context, actor ports.Actor, in ports.LocationEntryInput) (*domain.LocationEntry, error) {
	if _, err := s.ownedAnimal(ctx, actor, in.AnimalID); err != nil {
		return nil, err
	}
	if err := s.checkFarm(ctx, &in.FarmID); err != nil {
		return nil, err
	}

	e := &domain.LocationEntry{
		ID:              uuid.New(),
		AnimalID:        in.AnimalID,
		FarmID:          in.FarmID,
		EntryDate:       in.EntryDate,
		ExitDate:        in.ExitDate,
		Reason:          in.Reason,
		Notes:           in.Notes,
		CreatedByUserID: actor.UserID,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.repo.InsertLocationEntry(ctx, e); err != nil {
		return nil, err
	}

	metrics.RecordsCreatedTotal.WithLabelValues("location_entry").Inc()
	s.record(actor, "create", "location_entry", e.ID)
	return e, nil
}

func (s *RecordService) GetLocationEntry(ctx context.Context, actor ports.Actor, id uuid.UUID) (*domain.LocationEntry, error) {
	e, err := s.repo.FindLocationEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedAnimal(ctx, actor, e.AnimalID); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *RecordService) CloseLocationEntry(ctx context.Context, actor ports.Actor, id uuid.UUID, exitDate time.Time) (*domain.LocationEntry, error) {
	e, err := s.repo.FindLocationEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedAnimal(ctx, actor, e.AnimalID); err != nil {
		return nil, err
	}
	if err := s.repo.SetLocationExit(ctx, id, exitDate); err != nil {
		return nil, err
	}
	e.ExitDate = &exitDate
	s.record(actor, "update", "location_entry", id)
	return e, nil
}

func (s *RecordService) ListLocationHistory(ctx context.Context, actor ports.Actor, animalID uuid.UUID) ([]*domain.LocationEntry, error) {
	if _, err := s.ownedAnimal(ctx, actor, animalID); err != nil {
		return nil, err
	}
	return s.repo.ListLocationHistoryByAnimal(ctx, animalID)
}

func (s *RecordService) DeleteLocationEntry(ctx context.Context, actor ports.Actor, id uuid.UUID) error {
	e, err := s.repo.FindLocationEntry(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.ownedAnimal(ctx, actor, e.AnimalID); err != nil {
		return err
	}
	if err := s.repo.DeleteLocationEntry(ctx, id); err != nil {
		return err
	}
	s.record(actor, "delete", "location_entry", id)
	return nil
}

func (s *RecordService) ownedAnimal(ctx context.Context, actor ports.Actor, id uuid.UUID) (*domain.Animal, error) {
	animal, err := s.animals.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := animalAccessible(ctx, s.farms, actor, animal); err != nil {
		return nil, err
	}
	return animal, nil
}

func (s *RecordService) checkFarm(ctx context.Context, farmID *uuid.UUID) error {
	if farmID == nil {
		return nil
	}
	_, err := s.farms.FindByID(ctx, *farmID)
	return err
}

func (s *RecordService) record(actor ports.Actor, action, entity string, id uuid.UUID) {
	s.activity.Record(domain.ActivityEntry{
		UserID:   actor.UserID,
		Action:   action,
		Entity:   entity,
		EntityID: id,
		At:       time.Now().UTC(),
	})
}
