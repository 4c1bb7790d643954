package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mifinca/fincamanager/internal/core/domain"
)

// EventRepository persists health events and feedings together with their
// animal pivot rows.
type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// InsertHealthEvent writes the event row and its pivot rows in one
// transaction so an event never exists without its animals.
func (r *EventRepository) InsertHealthEvent(ctx context.Context, e *domain.HealthEvent) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO health_events (
				id, event_type, event_date, product_id, dosage,
				administered_by_user_id, diagnosis, notes, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		`,
			e.ID,
			e.EventType,
			e.EventDate,
			e.ProductID,
			e.Dosage,
			e.AdministeredByUserID,
			e.Diagnosis,
			e.Notes,
			e.CreatedAt,
		)
		if err != nil {
			return err
		}
		for _, animalID := range e.AnimalIDs {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO animal_health_event_pivot (health_event_id, animal_id)
				VALUES ($1,$2)
			`, e.ID, animalID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *EventRepository) FindHealthEvent(ctx context.Context, id uuid.UUID) (*domain.HealthEvent, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, event_type, event_date, product_id, dosage,
		       administered_by_user_id, diagnosis, notes, created_at
		FROM health_events
		WHERE id = $1
	`, id)

	var e domain.HealthEvent
	err := row.Scan(
		&e.ID,
		&e.EventType,
		&e.EventDate,
		&e.ProductID,
		&e.Dosage,
		&e.AdministeredByUserID,
		&e.Diagnosis,
		&e.Notes,
		&e.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	e.AnimalIDs, err = r.pivotAnimals(ctx, "animal_health_event_pivot", "health_event_id", id)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EventRepository) ListHealthEventsByAnimal(ctx context.Context, animalID uuid.UUID) ([]*domain.HealthEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT e.id, e.event_type, e.event_date, e.product_id, e.dosage,
		       e.administered_by_user_id, e.diagnosis, e.notes, e.created_at
		FROM health_events e
		JOIN animal_health_event_pivot p ON p.health_event_id = e.id
		WHERE p.animal_id = $1
		ORDER BY e.event_date DESC
	`, animalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.HealthEvent
	for rows.Next() {
		var e domain.HealthEvent
		if err := rows.Scan(
			&e.ID,
			&e.EventType,
			&e.EventDate,
			&e.ProductID,
			&e.Dosage,
			&e.AdministeredByUserID,
			&e.Diagnosis,
			&e.Notes,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, e := range events {
		e.AnimalIDs, err = r.pivotAnimals(ctx, "animal_health_event_pivot", "health_event_id", e.ID)
		if err != nil {
			return nil, err
		}
	}
	return events, nil
}

func (r *EventRepository) DeleteHealthEvent(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM health_events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

// InsertFeeding writes the feeding row and its pivot rows in one transaction.
func (r *EventRepository) InsertFeeding(ctx context.Context, f *domain.Feeding) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO feedings (
				id, feeding_date, feed_type_id, quantity_kg,
				supplement_id, administered_by_user_id, notes, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		`,
			f.ID,
			f.FeedingDate,
			f.FeedTypeID,
			f.QuantityKg,
			f.SupplementID,
			f.AdministeredByUserID,
			f.Notes,
			f.CreatedAt,
		)
		if err != nil {
			return err
		}
		for _, animalID := range f.AnimalIDs {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO animal_feeding_pivot (feeding_id, animal_id)
				VALUES ($1,$2)
			`, f.ID, animalID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *EventRepository) FindFeeding(ctx context.Context, id uuid.UUID) (*domain.Feeding, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, feeding_date, feed_type_id, quantity_kg,
		       supplement_id, administered_by_user_id, notes, created_at
		FROM feedings
		WHERE id = $1
	`, id)

	var f domain.Feeding
	err := row.Scan(
		&f.ID,
		&f.FeedingDate,
		&f.FeedTypeID,
		&f.QuantityKg,
		&f.SupplementID,
		&f.AdministeredByUserID,
		&f.Notes,
		&f.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	f.AnimalIDs, err = r.pivotAnimals(ctx, "animal_feeding_pivot", "feeding_id", id)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *EventRepository) ListFeedingsByAnimal(ctx context.Context, animalID uuid.UUID) ([]*domain.Feeding, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT f.id, f.feeding_date, f.feed_type_id, f.quantity_kg,
		       f.supplement_id, f.administered_by_user_id, f.notes, f.created_at
		FROM feedings f
		JOIN animal_feeding_pivot p ON p.feeding_id = f.id
		WHERE p.animal_id = $1
		ORDER BY f.feeding_date DESC
	`, animalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var feedings []*domain.Feeding
	for rows.Next() {
		var f domain.Feeding
		if err := rows.Scan(
			&f.ID,
			&f.FeedingDate,
			&f.FeedTypeID,
			&f.QuantityKg,
			&f.SupplementID,
			&f.AdministeredByUserID,
			&f.Notes,
			&f.CreatedAt,
		); err != nil {
			return nil, err
		}
		feedings = append(feedings, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, f := range feedings {
		f.AnimalIDs, err = r.pivotAnimals(ctx, "animal_feeding_pivot", "feeding_id", f.ID)
		if err != nil {
			return nil, err
		}
	}
	return feedings, nil
}

func (r *EventRepository) DeleteFeeding(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM feedings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (r *EventRepository) pivotAnimals(ctx context.Context, table, column string, id uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT animal_id FROM %s WHERE %s = $1 ORDER BY animal_id`, table, column), id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var animalID uuid.UUID
		if err := rows.Scan(&animalID); err != nil {
			return nil, err
		}
		ids = append(ids, animalID)
	}
	return ids, rows.Err()
}

func (r *EventRepository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
