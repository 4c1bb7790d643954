package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/mifinca/fincamanager/internal/core/domain"
)

// FarmRepository persists farms, their lots and shared-access grants in
// Postgres.
type FarmRepository struct {
	db *sql.DB
}

func NewFarmRepository(db *sql.DB) *FarmRepository {
	return &FarmRepository{db: db}
}

func (r *FarmRepository) Create(ctx context.Context, f *domain.Farm) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO farms (
			id, name, location, latitude, longitude,
			area_hectares, contact_info, owner_user_id,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		f.ID,
		f.Name,
		f.Location,
		f.Latitude,
		f.Longitude,
		f.AreaHectares,
		f.ContactInfo,
		f.OwnerUserID,
		f.CreatedAt,
		f.UpdatedAt,
	)
	return err
}

func (r *FarmRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Farm, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, location, latitude, longitude,
		       area_hectares, contact_info, owner_user_id,
		       created_at, updated_at
		FROM farms
		WHERE id = $1
	`, id)

	var f domain.Farm
	err := row.Scan(
		&f.ID,
		&f.Name,
		&f.Location,
		&f.Latitude,
		&f.Longitude,
		&f.AreaHectares,
		&f.ContactInfo,
		&f.OwnerUserID,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrFarmNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FarmRepository) ListByOwner(ctx context.Context, ownerUserID uuid.UUID) ([]*domain.Farm, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, location, latitude, longitude,
		       area_hectares, contact_info, owner_user_id,
		       created_at, updated_at
		FROM farms
		WHERE owner_user_id = $1
		ORDER BY created_at
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var farms []*domain.Farm
	for rows.Next() {
		var f domain.Farm
		if err := rows.Scan(
			&f.ID,
			&f.Name,
			&f.Location,
			&f.Latitude,
			&f.Longitude,
			&f.AreaHectares,
			&f.ContactInfo,
			&f.OwnerUserID,
			&f.CreatedAt,
			&f.UpdatedAt,
		); err != nil {
			return nil, err
		}
		farms = append(farms, &f)
	}
	return farms, rows.Err()
}

func (r *FarmRepository) Update(ctx context.Context, f *domain.Farm) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE farms
		SET name = $2,
		    location = $3,
		    latitude = $4,
		    longitude = $5,
		    area_hectares = $6,
		    contact_info = $7,
		    updated_at = $8
		WHERE id = $1
	`,
		f.ID,
		f.Name,
		f.Location,
		f.Latitude,
		f.Longitude,
		f.AreaHectares,
		f.ContactInfo,
		f.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrFarmNotFound
	}
	return nil
}

func (r *FarmRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM farms WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrFarmNotFound
	}
	return nil
}

func (r *FarmRepository) CreateLot(ctx context.Context, l *domain.Lot) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO lots (id, farm_id, name, description, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		l.ID,
		l.FarmID,
		l.Name,
		l.Description,
		l.CreatedAt,
		l.UpdatedAt,
	)
	return conflictErr(err, domain.ErrLotExists)
}

func (r *FarmRepository) FindLotByID(ctx context.Context, id uuid.UUID) (*domain.Lot, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, farm_id, name, description, created_at, updated_at
		FROM lots
		WHERE id = $1
	`, id)

	var l domain.Lot
	err := row.Scan(&l.ID, &l.FarmID, &l.Name, &l.Description, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrLotNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *FarmRepository) ListLotsByFarm(ctx context.Context, farmID uuid.UUID) ([]*domain.Lot, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, farm_id, name, description, created_at, updated_at
		FROM lots
		WHERE farm_id = $1
		ORDER BY name
	`, farmID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lots []*domain.Lot
	for rows.Next() {
		var l domain.Lot
		if err := rows.Scan(&l.ID, &l.FarmID, &l.Name, &l.Description, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		lots = append(lots, &l)
	}
	return lots, rows.Err()
}

func (r *FarmRepository) UpdateLot(ctx context.Context, l *domain.Lot) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE lots
		SET name = $2,
		    description = $3,
		    updated_at = $4
		WHERE id = $1
	`,
		l.ID,
		l.Name,
		l.Description,
		l.UpdatedAt,
	)
	if err != nil {
		return conflictErr(err, domain.ErrLotExists)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrLotNotFound
	}
	return nil
}

func (r *FarmRepository) DeleteLot(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM lots WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrLotNotFound
	}
	return nil
}

func (r *FarmRepository) GrantAccess(ctx context.Context, a *domain.FarmAccess) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_farm_access (
			user_id, farm_id, assigned_by_user_id, assigned_at, expires_at
		) VALUES ($1,$2,$3,$4,$5)
	`,
		a.UserID,
		a.FarmID,
		a.AssignedByUserID,
		a.AssignedAt,
		a.ExpiresAt,
	)
	return conflictErr(err, domain.ErrAccessExists)
}

func (r *FarmRepository) RevokeAccess(ctx context.Context, farmID, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM user_farm_access
		WHERE farm_id = $1 AND user_id = $2
	`, farmID, userID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrAccessNotFound
	}
	return nil
}

func (r *FarmRepository) HasAccess(ctx context.Context, farmID, userID uuid.UUID) (bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM user_farm_access
			WHERE farm_id = $1 AND user_id = $2
			  AND (expires_at IS NULL OR expires_at > now())
		)
	`, farmID, userID)

	var ok bool
	if err := row.Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (r *FarmRepository) ListAccessByFarm(ctx context.Context, farmID uuid.UUID) ([]*domain.FarmAccess, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, farm_id, assigned_by_user_id, assigned_at, expires_at
		FROM user_farm_access
		WHERE farm_id = $1
		ORDER BY assigned_at DESC
	`, farmID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grants []*domain.FarmAccess
	for rows.Next() {
		var a domain.FarmAccess
		if err := rows.Scan(&a.UserID, &a.FarmID, &a.AssignedByUserID, &a.AssignedAt, &a.ExpiresAt); err != nil {
			return nil, err
		}
		grants = append(grants, &a)
	}
	return grants, rows.Err()
}
