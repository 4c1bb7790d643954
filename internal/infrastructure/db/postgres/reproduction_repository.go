package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/mifinca/fincamanager/internal/core/domain"
)

// ReproductionRepository persists reproductive events and offspring links.
type ReproductionRepository struct {
	db *sql.DB
}

func NewReproductionRepository(db *sql.DB) *ReproductionRepository {
	return &ReproductionRepository{db: db}
}

func (r *ReproductionRepository) InsertEvent(ctx context.Context, e *domain.ReproductiveEvent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reproductive_events (
			id, animal_id, event_type, event_date, sire_animal_id,
			gestation_diagnosis_result, expected_delivery_date,
			actual_delivery_date, number_of_offspring, notes,
			created_by_user_id, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		e.ID,
		e.AnimalID,
		e.EventType,
		e.EventDate,
		e.SireAnimalID,
		e.GestationResult,
		e.ExpectedDeliveryDate,
		e.ActualDeliveryDate,
		e.NumberOfOffspring,
		e.Notes,
		e.CreatedByUserID,
		e.CreatedAt,
	)
	return err
}

func (r *ReproductionRepository) FindEvent(ctx context.Context, id uuid.UUID) (*domain.ReproductiveEvent, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, animal_id, event_type, event_date, sire_animal_id,
		       gestation_diagnosis_result, expected_delivery_date,
		       actual_delivery_date, number_of_offspring, notes,
		       created_by_user_id, created_at
		FROM reproductive_events
		WHERE id = $1
	`, id)

	e, err := scanReproductiveEvent(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *ReproductionRepository) ListEventsByAnimal(ctx context.Context, animalID uuid.UUID) ([]*domain.ReproductiveEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, animal_id, event_type, event_date, sire_animal_id,
		       gestation_diagnosis_result, expected_delivery_date,
		       actual_delivery_date, number_of_offspring, notes,
		       created_by_user_id, created_at
		FROM reproductive_events
		WHERE animal_id = $1
		ORDER BY event_date DESC
	`, animalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.ReproductiveEvent
	for rows.Next() {
		e, err := scanReproductiveEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *ReproductionRepository) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reproductive_events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (r *ReproductionRepository) InsertOffspring(ctx context.Context, o *domain.OffspringBorn) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO offspring_born (id, reproductive_event_id, offspring_animal_id, created_at)
		VALUES ($1,$2,$3,$4)
	`,
		o.ID,
		o.ReproductiveEventID,
		o.OffspringAnimalID,
		o.CreatedAt,
	)
	return conflictErr(err, domain.ErrOffspringExists)
}

func (r *ReproductionRepository) ListOffspringByEvent(ctx context.Context, eventID uuid.UUID) ([]*domain.OffspringBorn, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, reproductive_event_id, offspring_animal_id, created_at
		FROM offspring_born
		WHERE reproductive_event_id = $1
		ORDER BY created_at
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offspring []*domain.OffspringBorn
	for rows.Next() {
		var o domain.OffspringBorn
		if err := rows.Scan(&o.ID, &o.ReproductiveEventID, &o.OffspringAnimalID, &o.CreatedAt); err != nil {
			return nil, err
		}
		offspring = append(offspring, &o)
	}
	return offspring, rows.Err()
}

func scanReproductiveEvent(scan func(...any) error) (*domain.ReproductiveEvent, error) {
	var e domain.ReproductiveEvent
	err := scan(
		&e.ID,
		&e.AnimalID,
		&e.EventType,
		&e.EventDate,
		&e.SireAnimalID,
		&e.GestationResult,
		&e.ExpectedDeliveryDate,
		&e.ActualDeliveryDate,
		&e.NumberOfOffspring,
		&e.Notes,
		&e.CreatedByUserID,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
