package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mifinca/fincamanager/internal/core/domain"
)

// RecordRepository persists weighings, transactions and location history.
type RecordRepository struct {
	db *sql.DB
}

func NewRecordRepository(db *sql.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

func (r *RecordRepository) InsertWeighing(ctx context.Context, w *domain.Weighing) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO weighings (
			id, animal_id, weighing_date, weight_kg, notes,
			created_by_user_id, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		w.ID,
		w.AnimalID,
		w.WeighingDate,
		w.WeightKg,
		w.Notes,
		w.CreatedByUserID,
		w.CreatedAt,
	)
	return err
}

func (r *RecordRepository) FindWeighing(ctx context.Context, id uuid.UUID) (*domain.Weighing, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, animal_id, weighing_date, weight_kg, notes,
		       created_by_user_id, created_at
		FROM weighings
		WHERE id = $1
	`, id)

	var w domain.Weighing
	err := row.Scan(&w.ID, &w.AnimalID, &w.WeighingDate, &w.WeightKg, &w.Notes, &w.CreatedByUserID, &w.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *RecordRepository) ListWeighingsByAnimal(ctx context.Context, animalID uuid.UUID) ([]*domain.Weighing, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, animal_id, weighing_date, weight_kg, notes,
		       created_by_user_id, created_at
		FROM weighings
		WHERE animal_id = $1
		ORDER BY weighing_date DESC
	`, animalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var weighings []*domain.Weighing
	for rows.Next() {
		var w domain.Weighing
		if err := rows.Scan(&w.ID, &w.AnimalID, &w.WeighingDate, &w.WeightKg, &w.Notes, &w.CreatedByUserID, &w.CreatedAt); err != nil {
			return nil, err
		}
		weighings = append(weighings, &w)
	}
	return weighings, rows.Err()
}

func (r *RecordRepository) DeleteWeighing(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM weighings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (r *RecordRepository) InsertTransaction(ctx context.Context, t *domain.Transaction) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (
			id, transaction_type, transaction_date, animal_id,
			from_farm_id, to_farm_id, from_owner_user_id, to_owner_user_id,
			price_value, reason_for_movement, transport_info, notes, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		t.ID,
		t.Type,
		t.TransactionDate,
		t.AnimalID,
		t.FromFarmID,
		t.ToFarmID,
		t.FromOwnerUserID,
		t.ToOwnerUserID,
		t.PriceValue,
		t.Reason,
		t.TransportInfo,
		t.Notes,
		t.CreatedAt,
	)
	return err
}

func (r *RecordRepository) FindTransaction(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, transaction_type, transaction_date, animal_id,
		       from_farm_id, to_farm_id, from_owner_user_id, to_owner_user_id,
		       price_value, reason_for_movement, transport_info, notes, created_at
		FROM transactions
		WHERE id = $1
	`, id)

	var t domain.Transaction
	err := row.Scan(
		&t.ID,
		&t.Type,
		&t.TransactionDate,
		&t.AnimalID,
		&t.FromFarmID,
		&t.ToFarmID,
		&t.FromOwnerUserID,
		&t.ToOwnerUserID,
		&t.PriceValue,
		&t.Reason,
		&t.TransportInfo,
		&t.Notes,
		&t.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *RecordRepository) ListTransactionsByAnimal(ctx context.Context, animalID uuid.UUID) ([]*domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, transaction_type, transaction_date, animal_id,
		       from_farm_id, to_farm_id, from_owner_user_id, to_owner_user_id,
		       price_value, reason_for_movement, transport_info, notes, created_at
		FROM transactions
		WHERE animal_id = $1
		ORDER BY transaction_date DESC
	`, animalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []*domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(
			&t.ID,
			&t.Type,
			&t.TransactionDate,
			&t.AnimalID,
			&t.FromFarmID,
			&t.ToFarmID,
			&t.FromOwnerUserID,
			&t.ToOwnerUserID,
			&t.PriceValue,
			&t.Reason,
			&t.TransportInfo,
			&t.Notes,
			&t.CreatedAt,
		); err != nil {
			return nil, err
		}
		txs = append(txs, &t)
	}
	return txs, rows.Err()
}

func (r *RecordRepository) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (r *RecordRepository) InsertLocationEntry(ctx context.Context, e *domain.LocationEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animal_location_history (
			id, animal_id, farm_id, entry_date, exit_date,
			reason, notes, created_by_user_id, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		e.ID,
		e.AnimalID,
		e.FarmID,
		e.EntryDate,
		e.ExitDate,
		e.Reason,
		e.Notes,
		e.CreatedByUserID,
		e.CreatedAt,
	)
	return conflictErr(err, domain.ErrDuplicateLocationEntry)
}

func (r *RecordRepository) FindLocationEntry(ctx context.Context, id uuid.UUID) (*domain.LocationEntry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, animal_id, farm_id, entry_date, exit_date,
		       reason, notes, created_by_user_id, created_at
		FROM animal_location_history
		WHERE id = $1
	`, id)

	var e domain.LocationEntry
	err := row.Scan(&e.ID, &e.AnimalID, &e.FarmID, &e.EntryDate, &e.ExitDate, &e.Reason, &e.Notes, &e.CreatedByUserID, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *RecordRepository) SetLocationExit(ctx context.Context, id uuid.UUID, exitDate time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animal_location_history
		SET exit_date = $2
		WHERE id = $1
	`, id, exitDate)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (r *RecordRepository) DeleteLocationEntry(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM animal_location_history WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (r *RecordRepository) ListLocationHistoryByAnimal(ctx context.Context, animalID uuid.UUID) ([]*domain.LocationEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, animal_id, farm_id, entry_date, exit_date,
		       reason, notes, created_by_user_id, created_at
		FROM animal_location_history
		WHERE animal_id = $1
		ORDER BY entry_date DESC
	`, animalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.LocationEntry
	for rows.Next() {
		var e domain.LocationEntry
		if err := rows.Scan(&e.ID, &e.AnimalID, &e.FarmID, &e.EntryDate, &e.ExitDate, &e.Reason, &e.Notes, &e.CreatedByUserID, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
